package store

import (
	"path/filepath"
	"testing"

	"github.com/javanhut/muninn/gitfs"
	"github.com/javanhut/muninn/githash"
	"github.com/javanhut/muninn/objects"
	"github.com/javanhut/muninn/refs"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestResolvedRoundTrip(t *testing.T) {
	db := openTestDB(t)
	h := githash.Sum([]byte("tip"))

	if _, ok, err := db.GetResolved("refs/heads/master"); err != nil || ok {
		t.Fatalf("empty cache lookup = (%v, %v)", ok, err)
	}
	if err := db.PutResolved("refs/heads/master", h); err != nil {
		t.Fatalf("PutResolved failed: %v", err)
	}
	got, ok, err := db.GetResolved("refs/heads/master")
	if err != nil || !ok {
		t.Fatalf("GetResolved = (%v, %v)", ok, err)
	}
	if got != h {
		t.Errorf("cached hash = %s, want %s", got, h)
	}

	if err := db.DropResolved("refs/heads/master"); err != nil {
		t.Fatalf("DropResolved failed: %v", err)
	}
	if _, ok, _ := db.GetResolved("refs/heads/master"); ok {
		t.Error("dropped entry should be gone")
	}
}

func TestKindRoundTrip(t *testing.T) {
	db := openTestDB(t)
	h := githash.Sum([]byte("an object"))
	if err := db.PutKind(h, "commit"); err != nil {
		t.Fatalf("PutKind failed: %v", err)
	}
	kind, ok, err := db.GetKind(h)
	if err != nil || !ok || kind != "commit" {
		t.Fatalf("GetKind = (%q, %v, %v)", kind, ok, err)
	}
}

// fakeRepo counts calls so the tests can observe cache hits.
type fakeRepo struct {
	gitfs.Repository // nil methods are never reached in these tests

	resolved  githash.Hash
	resolves  int
	object    objects.Object
	fetches   int
}

func (f *fakeRepo) Resolve(refs.SpecRef) (githash.Hash, error) {
	f.resolves++
	return f.resolved, nil
}

func (f *fakeRepo) GetObject(githash.Hash) (objects.Object, error) {
	f.fetches++
	return f.object, nil
}

func TestCachedRepoResolve(t *testing.T) {
	db := openTestDB(t)
	tip := githash.Sum([]byte("branch tip"))
	inner := &fakeRepo{resolved: tip}
	repo := NewCachedRepo(inner, db)

	for i := 0; i < 3; i++ {
		h, err := repo.Resolve(refs.Branch("master"))
		if err != nil {
			t.Fatalf("Resolve failed: %v", err)
		}
		if h != tip {
			t.Errorf("Resolve = %s, want %s", h, tip)
		}
	}
	if inner.resolves != 1 {
		t.Errorf("inner repository resolved %d times, want 1", inner.resolves)
	}
}

func TestCachedRepoObjectKind(t *testing.T) {
	db := openTestDB(t)
	blob := objects.NewBlob([]byte("data"))
	inner := &fakeRepo{object: blob}
	repo := NewCachedRepo(inner, db)
	h := objects.HashOf(blob)

	for i := 0; i < 3; i++ {
		kind, err := repo.ObjectKind(h)
		if err != nil {
			t.Fatalf("ObjectKind failed: %v", err)
		}
		if kind != "blob" {
			t.Errorf("kind = %q, want blob", kind)
		}
	}
	if inner.fetches != 1 {
		t.Errorf("inner repository fetched %d times, want 1", inner.fetches)
	}
}
