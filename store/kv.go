// Package store layers a bbolt-backed cache over a repository. The core
// access layer keeps no cache of its own; embedders that resolve the same
// refs or re-classify the same objects repeatedly wrap it with this one.
package store

import (
	"errors"

	"go.etcd.io/bbolt"

	"github.com/javanhut/muninn/githash"
)

// Buckets
var (
	BucketResolvedRefs = []byte("ref->hash")  // spec ref path -> digest bytes
	BucketObjectKinds  = []byte("hash->kind") // digest bytes -> kind word
)

type DB struct{ *bbolt.DB }

// Open opens (creating if needed) the cache database at path.
func Open(path string) (*DB, error) {
	db, err := bbolt.Open(path, 0666, nil)
	if err != nil {
		return nil, err
	}
	// Ensure buckets exist
	if err := db.Update(func(tx *bbolt.Tx) error {
		if _, e := tx.CreateBucketIfNotExists(BucketResolvedRefs); e != nil {
			return e
		}
		if _, e := tx.CreateBucketIfNotExists(BucketObjectKinds); e != nil {
			return e
		}
		return nil
	}); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &DB{db}, nil
}

func (db *DB) Close() error { return db.DB.Close() }

// PutResolved records the digest a spec ref path resolved to.
func (db *DB) PutResolved(spec string, h githash.Hash) error {
	return db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(BucketResolvedRefs).Put([]byte(spec), h.Bytes())
	})
}

// GetResolved looks a spec ref path up in the cache.
func (db *DB) GetResolved(spec string) (githash.Hash, bool, error) {
	var h githash.Hash
	found := false
	err := db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket(BucketResolvedRefs).Get([]byte(spec))
		if v == nil {
			return nil
		}
		parsed, err := githash.FromBytes(v)
		if err != nil {
			return errors.New("corrupt cached ref entry")
		}
		h = parsed
		found = true
		return nil
	})
	return h, found, err
}

// DropResolved forgets a cached resolution, e.g. after the ref moved.
func (db *DB) DropResolved(spec string) error {
	return db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(BucketResolvedRefs).Delete([]byte(spec))
	})
}

// PutKind records an object's kind word ("commit", "tree", "blob").
func (db *DB) PutKind(h githash.Hash, kind string) error {
	return db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(BucketObjectKinds).Put(h.Bytes(), []byte(kind))
	})
}

// GetKind looks an object's kind word up in the cache.
func (db *DB) GetKind(h githash.Hash) (string, bool, error) {
	var kind string
	found := false
	err := db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket(BucketObjectKinds).Get(h.Bytes())
		if v != nil {
			kind = string(v)
			found = true
		}
		return nil
	})
	return kind, found, err
}
