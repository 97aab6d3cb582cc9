package store

import (
	"github.com/javanhut/muninn/gitfs"
	"github.com/javanhut/muninn/githash"
	"github.com/javanhut/muninn/objects"
	"github.com/javanhut/muninn/refs"
)

// CachedRepo wraps a repository with the bbolt cache. Resolution results
// and object kinds are remembered across processes; everything else
// delegates straight through. The cache never invalidates itself: callers
// that know a ref moved call DropResolved on the DB.
type CachedRepo struct {
	gitfs.Repository
	db *DB
}

// NewCachedRepo wraps repo with db.
func NewCachedRepo(repo gitfs.Repository, db *DB) *CachedRepo {
	return &CachedRepo{Repository: repo, db: db}
}

// Resolve answers from the cache when warm, otherwise follows the chain
// and remembers the result.
func (c *CachedRepo) Resolve(spec refs.SpecRef) (githash.Hash, error) {
	if h, ok, err := c.db.GetResolved(spec.Path()); err == nil && ok {
		return h, nil
	}
	h, err := c.Repository.Resolve(spec)
	if err != nil {
		return githash.Hash{}, err
	}
	if err := c.db.PutResolved(spec.Path(), h); err != nil {
		return githash.Hash{}, err
	}
	return h, nil
}

// GetObject delegates and records the object's kind on the way out.
func (c *CachedRepo) GetObject(h githash.Hash) (objects.Object, error) {
	o, err := c.Repository.GetObject(h)
	if err != nil {
		return nil, err
	}
	if err := c.db.PutKind(h, o.Kind().String()); err != nil {
		return nil, err
	}
	return o, nil
}

// ObjectKind answers from the cache when warm; a cold lookup fetches the
// object once to learn its kind.
func (c *CachedRepo) ObjectKind(h githash.Hash) (string, error) {
	if kind, ok, err := c.db.GetKind(h); err == nil && ok {
		return kind, nil
	}
	o, err := c.GetObject(h)
	if err != nil {
		return "", err
	}
	return o.Kind().String(), nil
}
