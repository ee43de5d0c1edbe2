package catalog1

import "github.com/decred/dcrd/crypto/blake256"

// HashSize is the width, in bytes, of the strong hash returned by
// StrongHash. It is the Record primary key width for every catalog.
const HashSize = blake256.Size

// StrongHash returns the strong, collision-resistant content hash of body.
// It is independent of Sign and of NumHashes: the same body always hashes
// to the same value, regardless of which catalog it is stored in.
//
// Blake-256 is used rather than SHA-256 (spec.md's reference choice);
// spec.md permits any hash of at least 128 bits provided it stays fixed for
// the lifetime of a shared persisted store, which this package guarantees.
func StrongHash(body []byte) [HashSize]byte {
	return blake256.Sum256(body)
}
