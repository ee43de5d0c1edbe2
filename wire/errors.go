// Copyright (c) 2024 The fcatalog developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package wire implements the fcatalog-server framing, primitive codec, and
// message protocol: length-prefixed frames over a byte stream, four
// wire-stable message types, and the encode/decode logic that translates
// between them.
package wire

import "errors"

// CodecError is returned for any malformed frame, truncated primitive,
// invalid UTF-8 string, or length-prefix overrun encountered while
// decoding. The Session layer treats every CodecError as fatal to the
// connection: it never attempts to resynchronize a corrupted stream.
type CodecError struct {
	// Op names the operation that failed, e.g. "decode string".
	Op string
	// Err is the underlying cause.
	Err error
}

func (e *CodecError) Error() string {
	return "wire: " + e.Op + ": " + e.Err.Error()
}

func (e *CodecError) Unwrap() error {
	return e.Err
}

func newCodecError(op string, err error) *CodecError {
	return &CodecError{Op: op, Err: err}
}

// Sentinel causes wrapped by CodecError.Err.
var (
	errTruncated     = errors.New("truncated data")
	errLengthOverrun = errors.New("declared length overruns buffer")
	errInvalidUTF8   = errors.New("invalid UTF-8 string")
)
