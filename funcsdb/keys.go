package funcsdb

import "encoding/binary"

// Storage key layout. A single leveldb keyspace holds three disjoint
// families, distinguished by their first byte:
//
//	'm'                                             -> catalog metadata
//	'r' + strong_hash                                -> Record value
//	'c' + coord index (2B BE) + coord value (4B BE) + strong_hash -> (empty)
//
// The 'c' family is the direct analogue of the original SQLite schema's
// one CREATE INDEX per signature coordinate column (funcs_db.py): a
// leveldb prefix scan over 'c'+index+value finds every Record agreeing
// with a query signature at that coordinate, without touching Records
// that don't.
const (
	keyPrefixMeta   = 'm'
	keyPrefixRecord = 'r'
	keyPrefixCoord  = 'c'
)

var metaKey = []byte{keyPrefixMeta}

func recordKey(hash []byte) []byte {
	key := make([]byte, 1+len(hash))
	key[0] = keyPrefixRecord
	copy(key[1:], hash)
	return key
}

// coordPrefix returns the key prefix identifying every Record whose
// signature agrees with value at coordinate coordIdx.
func coordPrefix(coordIdx uint32, value uint32) []byte {
	prefix := make([]byte, 1+2+4)
	prefix[0] = keyPrefixCoord
	binary.BigEndian.PutUint16(prefix[1:3], uint16(coordIdx))
	binary.BigEndian.PutUint32(prefix[3:7], value)
	return prefix
}

func coordKey(coordIdx uint32, value uint32, hash []byte) []byte {
	prefix := coordPrefix(coordIdx, value)
	key := make([]byte, len(prefix)+len(hash))
	copy(key, prefix)
	copy(key[len(prefix):], hash)
	return key
}

// hashFromCoordKey extracts the trailing strong-hash bytes from a 'c'
// family key, given the hash width.
func hashFromCoordKey(key []byte, hashSize int) []byte {
	return key[len(key)-hashSize:]
}
