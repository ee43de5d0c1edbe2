package funcsdb

import (
	"fmt"

	"github.com/xorpd/fcatalog-server/catalog1"
	"github.com/xorpd/fcatalog-server/wire"
)

// Record is one stored entry of a catalog: a body's strong hash, its human
// labels, and its catalog1 signature.
type Record struct {
	StrongHash [catalog1.HashSize]byte
	Name       string
	Comment    string
	Signature  []uint32
}

// encodeRecord serializes a Record's value (everything but its key, the
// strong hash) using the same primitive codec the wire protocol uses —
// the codec is protocol-agnostic by design (spec.md §4.2).
func encodeRecord(r *Record) []byte {
	buf := wire.PutString(nil, r.Name)
	buf = wire.PutString(buf, r.Comment)
	buf = wire.PutUint32(buf, uint32(len(r.Signature)))
	for _, c := range r.Signature {
		buf = wire.PutUint32(buf, c)
	}
	return buf
}

// decodeRecord deserializes a Record's value. The caller fills in
// StrongHash from the storage key, since it is never duplicated into the
// value.
func decodeRecord(data []byte) (*Record, error) {
	name, rest, err := wire.GetString(data)
	if err != nil {
		return nil, fmt.Errorf("funcsdb: decode record: %w", err)
	}
	comment, rest, err := wire.GetString(rest)
	if err != nil {
		return nil, fmt.Errorf("funcsdb: decode record: %w", err)
	}
	n, rest, err := wire.GetUint32(rest)
	if err != nil {
		return nil, fmt.Errorf("funcsdb: decode record: %w", err)
	}

	sig := make([]uint32, n)
	for i := range sig {
		v, r, err := wire.GetUint32(rest)
		if err != nil {
			return nil, fmt.Errorf("funcsdb: decode record: %w", err)
		}
		sig[i] = v
		rest = r
	}

	return &Record{Name: name, Comment: comment, Signature: sig}, nil
}
