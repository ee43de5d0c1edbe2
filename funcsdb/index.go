package funcsdb

import (
	"encoding/hex"
	"fmt"
	"path/filepath"
	"sort"
	"sync"

	"github.com/davecgh/go-spew/spew"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/util"

	"github.com/xorpd/fcatalog-server/catalog1"
)

// maxNumHashes bounds NumHashes to what fits in the 2-byte coordinate
// index field of a 'c' family key (see keys.go).
const maxNumHashes = 1<<16 - 1

// Index is one open catalog: a goleveldb handle plus the NumHashes that
// parameterizes every signature stored in it.
type Index struct {
	mu        sync.Mutex
	db        *leveldb.DB
	numHashes uint32
	cache     *recordCache
	closed    bool
}

// Open opens the catalog named name under dbBasePath, creating it
// (parameterized by numHashes) if it does not already exist. Opening an
// existing catalog whose stored NumHashes disagrees with numHashes fails
// with an IndexError, per spec.md §4.3's compatibility invariant.
//
// Open does not itself validate name against the catalog-name alphabet;
// that is the Session's responsibility (spec.md §5) since it is the seam
// that ever sees untrusted input.
func Open(dbBasePath, name string, numHashes uint32) (*Index, error) {
	if numHashes < catalog1.MinNumPerms || numHashes > maxNumHashes {
		return nil, newIndexError("open", fmt.Errorf("numHashes %d out of range [%d, %d]", numHashes, catalog1.MinNumPerms, maxNumHashes))
	}

	path := filepath.Join(dbBasePath, name)
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, newIndexError("open", err)
	}

	idx := &Index{
		db:        db,
		numHashes: numHashes,
		cache:     newRecordCache(DefaultCacheSize),
	}

	storedNumHashes, err := idx.readMetaNumHashes()
	switch {
	case err == errNoMeta:
		if err := idx.writeMetaNumHashes(numHashes); err != nil {
			_ = db.Close()
			return nil, err
		}
	case err != nil:
		_ = db.Close()
		return nil, err
	case storedNumHashes != numHashes:
		_ = db.Close()
		return nil, newIndexError("open", fmt.Errorf(
			"catalog %q was created with NumHashes=%d, cannot reopen with NumHashes=%d",
			name, storedNumHashes, numHashes))
	}

	return idx, nil
}

func (idx *Index) readMetaNumHashes() (uint32, error) {
	val, err := idx.db.Get(metaKey, nil)
	if err == leveldb.ErrNotFound {
		return 0, errNoMeta
	}
	if err != nil {
		return 0, newIndexError("read metadata", err)
	}
	if len(val) != 4 {
		return 0, newIndexError("read metadata", fmt.Errorf("corrupt metadata record (%d bytes)", len(val)))
	}
	return uint32(val[0]) | uint32(val[1])<<8 | uint32(val[2])<<16 | uint32(val[3])<<24, nil
}

func (idx *Index) writeMetaNumHashes(numHashes uint32) error {
	val := []byte{byte(numHashes), byte(numHashes >> 8), byte(numHashes >> 16), byte(numHashes >> 24)}
	if err := idx.db.Put(metaKey, val, nil); err != nil {
		return newIndexError("write metadata", err)
	}
	return nil
}

// NumHashes returns this catalog's immutable signature length.
func (idx *Index) NumHashes() uint32 {
	return idx.numHashes
}

func hashKey(hash []byte) string {
	return hex.EncodeToString(hash)
}

// lookupByHash returns the Record stored under hash, or (nil, nil) if no
// such Record exists.
func (idx *Index) lookupByHash(hash []byte) (*Record, error) {
	key := hashKey(hash)
	if rec, ok := idx.cache.get(key); ok {
		return rec, nil
	}

	val, err := idx.db.Get(recordKey(hash), nil)
	if err == leveldb.ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, newIndexError("get record", err)
	}

	rec, err := decodeRecord(val)
	if err != nil {
		return nil, newIndexError("get record", err)
	}
	copy(rec.StrongHash[:], hash)
	idx.cache.put(key, rec)
	return rec, nil
}

// Add computes the signature and strong hash of body and upserts the
// resulting Record into the catalog, replacing wholesale any Record
// previously stored under the same strong hash. Add commits before
// returning; it is its own transaction, with no batching across calls.
func (idx *Index) Add(name string, body []byte, comment string) error {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	if idx.closed {
		return ErrClosed
	}

	sig, err := catalog1.Sign(body, idx.numHashes)
	if err != nil {
		return newIndexError("add", err)
	}
	hash := catalog1.StrongHash(body)

	old, err := idx.lookupByHash(hash[:])
	if err != nil {
		return err
	}

	batch := new(leveldb.Batch)
	if old != nil {
		for i, c := range old.Signature {
			batch.Delete(coordKey(uint32(i), c, hash[:]))
		}
	}

	rec := &Record{StrongHash: hash, Name: name, Comment: comment, Signature: sig}
	batch.Put(recordKey(hash[:]), encodeRecord(rec))
	for i, c := range sig {
		batch.Put(coordKey(uint32(i), c, hash[:]), nil)
	}

	if err := idx.db.Write(batch, nil); err != nil {
		return newIndexError("add", err)
	}

	idx.cache.put(hashKey(hash[:]), rec)
	log.Tracef("Added record %q: %s", name, spew.Sdump(rec))
	return nil
}

// SimilarResult is one ranked entry of a Similars response.
type SimilarResult struct {
	StrongHash [catalog1.HashSize]byte
	Name       string
	Comment    string
	Signature  []uint32
	Grade      int
}

// Similars returns up to k Records most similar to body, ordered by grade
// descending, with an exact strong-hash match (if any) always first. See
// spec.md §4.3 for the candidate-generation and ordering contract.
func (idx *Index) Similars(body []byte, k int) ([]SimilarResult, error) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	if idx.closed {
		return nil, ErrClosed
	}

	sig, err := catalog1.Sign(body, idx.numHashes)
	if err != nil {
		return nil, newIndexError("similars", err)
	}
	hash := catalog1.StrongHash(body)

	candidates := make(map[string]*Record)

	exact, err := idx.lookupByHash(hash[:])
	if err != nil {
		return nil, err
	}
	if exact != nil {
		candidates[hashKey(hash[:])] = exact
	}

	for i, coordVal := range sig {
		iter := idx.db.NewIterator(util.BytesPrefix(coordPrefix(uint32(i), coordVal)), nil)
		for iter.Next() {
			h := hashFromCoordKey(iter.Key(), catalog1.HashSize)
			key := hashKey(h)
			if _, ok := candidates[key]; ok {
				continue
			}
			rec, err := idx.lookupByHash(h)
			if err != nil {
				iter.Release()
				return nil, err
			}
			if rec != nil {
				candidates[key] = rec
			}
		}
		releaseErr := iter.Error()
		iter.Release()
		if releaseErr != nil {
			return nil, newIndexError("similars", releaseErr)
		}
	}

	results := make([]SimilarResult, 0, len(candidates))
	exactKey := hashKey(hash[:])
	for key, rec := range candidates {
		grade := catalog1.Grade(rec.Signature, sig)
		if key == exactKey {
			grade = int(idx.numHashes)
		}
		results = append(results, SimilarResult{
			StrongHash: rec.StrongHash,
			Name:       rec.Name,
			Comment:    rec.Comment,
			Signature:  rec.Signature,
			Grade:      grade,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		iExact := results[i].StrongHash == hash
		jExact := results[j].StrongHash == hash
		if iExact != jExact {
			return iExact
		}
		return results[i].Grade > results[j].Grade
	})

	if k < 0 {
		k = 0
	}
	if k < len(results) {
		results = results[:k]
	}
	return results, nil
}

// Count returns the number of Records currently stored in the catalog.
func (idx *Index) Count() (int, error) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	if idx.closed {
		return 0, ErrClosed
	}

	iter := idx.db.NewIterator(util.BytesPrefix([]byte{keyPrefixRecord}), nil)
	defer iter.Release()

	n := 0
	for iter.Next() {
		n++
	}
	if err := iter.Error(); err != nil {
		return 0, newIndexError("count", err)
	}
	return n, nil
}

// Close flushes and releases the catalog. Further operations on a closed
// Index return ErrClosed. Close is idempotent.
func (idx *Index) Close() error {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	if idx.closed {
		return nil
	}
	idx.closed = true
	if err := idx.db.Close(); err != nil {
		return newIndexError("close", err)
	}
	return nil
}
