package wire

import (
	"encoding/binary"
	"unicode/utf8"
)

// primitiveLenSize is the width, in bytes, of the length prefix carried by
// string and blob primitives (same layout as the frame length prefix, but
// scoped to a single primitive value).
const primitiveLenSize = 4

// PutUint32 appends the little-endian encoding of x to buf and returns the
// result.
func PutUint32(buf []byte, x uint32) []byte {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], x)
	return append(buf, tmp[:]...)
}

// GetUint32 decodes a uint32 from the front of data, returning the value
// and the remaining unconsumed bytes.
func GetUint32(data []byte) (uint32, []byte, error) {
	if len(data) < 4 {
		return 0, nil, newCodecError("decode uint32", errTruncated)
	}
	return binary.LittleEndian.Uint32(data), data[4:], nil
}

// PutBlob appends the length-prefixed encoding of b to buf and returns the
// result.
func PutBlob(buf []byte, b []byte) []byte {
	buf = PutUint32(buf, uint32(len(b)))
	return append(buf, b...)
}

// GetBlob decodes a length-prefixed blob from the front of data, returning
// the blob bytes (a fresh copy, not a slice into data) and the remaining
// unconsumed bytes.
func GetBlob(data []byte) ([]byte, []byte, error) {
	n, rest, err := GetUint32(data)
	if err != nil {
		return nil, nil, newCodecError("decode blob", err)
	}
	if uint64(len(rest)) < uint64(n) {
		return nil, nil, newCodecError("decode blob", errLengthOverrun)
	}
	out := make([]byte, n)
	copy(out, rest[:n])
	return out, rest[n:], nil
}

// PutString appends the length-prefixed, UTF-8 encoding of s to buf and
// returns the result.
func PutString(buf []byte, s string) []byte {
	return PutBlob(buf, []byte(s))
}

// GetString decodes a length-prefixed UTF-8 string from the front of data,
// returning the string and the remaining unconsumed bytes. Decoding fails
// with a CodecError if the bytes are not strict UTF-8.
func GetString(data []byte) (string, []byte, error) {
	b, rest, err := GetBlob(data)
	if err != nil {
		return "", nil, newCodecError("decode string", err)
	}
	if !utf8.Valid(b) {
		return "", nil, newCodecError("decode string", errInvalidUTF8)
	}
	return string(b), rest, nil
}
