package funcsdb

import (
	"encoding/hex"

	"github.com/decred/dcrd/lru"
	"github.com/golang/snappy"
)

// recordCache is a bounded, per-handle cache of recently touched Records,
// keyed by the hex-encoded strong hash. It is purely an accelerator: a
// miss always falls back to goleveldb. Only one handle can have a catalog
// directory open at a time, and every write through that handle updates
// the cache, so a hit never returns a stale Record.
//
// Cached record bodies are snappy-compressed. Signatures are small and
// compress poorly, so only the (rarely large) Name/Comment text benefits,
// but compressing uniformly keeps the cache entry format one shape for
// catalogs of large reversed-function bodies carried in Name/Comment
// metadata.
type recordCache struct {
	m *lru.Map[string, []byte]
}

func newRecordCache(limit uint) *recordCache {
	return &recordCache{m: lru.NewMap[string, []byte](limit)}
}

func (c *recordCache) get(key string) (*Record, bool) {
	compressed, ok := c.m.Get(key)
	if !ok {
		return nil, false
	}
	raw, err := snappy.Decode(nil, compressed)
	if err != nil {
		// A corrupt cache entry is never a correctness problem: treat it
		// as a miss and let the caller fall back to goleveldb.
		log.Warnf("cache: discarding corrupt entry %s: %v", key, err)
		return nil, false
	}
	rec, err := decodeRecord(raw)
	if err != nil {
		log.Warnf("cache: discarding corrupt entry %s: %v", key, err)
		return nil, false
	}

	// decodeRecord never populates StrongHash (it isn't duplicated into the
	// encoded value); restore it from the cache key, the same as the
	// goleveldb path in lookupByHash does from the storage key.
	hash, err := hex.DecodeString(key)
	if err != nil {
		log.Warnf("cache: discarding entry with unparsable key %s: %v", key, err)
		return nil, false
	}
	copy(rec.StrongHash[:], hash)

	return rec, true
}

func (c *recordCache) put(key string, rec *Record) {
	raw := encodeRecord(rec)
	compressed := snappy.Encode(nil, raw)
	c.m.Put(key, compressed)
}

func (c *recordCache) delete(key string) {
	c.m.Delete(key)
}
