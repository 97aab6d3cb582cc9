// Package gitfs is the on-disk access layer: it opens a repository
// directory, fetches and decodes loose objects, follows references and
// answers hash-prefix lookups across the loose store and pack indexes.
//
// All operations are synchronous reads; a GitFS handle is logically
// immutable and safe for concurrent readers as long as no writer mutates
// the underlying directory.
package gitfs

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/klauspost/compress/zlib"
	"github.com/sirupsen/logrus"

	"github.com/javanhut/muninn/gitfs/pack"
	"github.com/javanhut/muninn/githash"
	"github.com/javanhut/muninn/giterr"
	"github.com/javanhut/muninn/objects"
	"github.com/javanhut/muninn/refs"
)

// MaxRefDepth bounds symbolic reference chains. Reference files can form
// cycles on a corrupt disk; resolution gives up past this depth.
const MaxRefDepth = 16

// Repository is the contract the core exposes to its embedder.
type Repository interface {
	IsValid() error
	Description() (string, error)
	GetRef(refs.SpecRef) (refs.Ref, error)
	Resolve(refs.SpecRef) (githash.Hash, error)
	GetObject(githash.Hash) (objects.Object, error)
	GetCommit(objects.CommitRef) (*objects.Commit, error)
	GetTree(objects.TreeRef) (*objects.Tree, error)
	GetBlob(objects.BlobRef) (*objects.Blob, error)
	ListBranches() ([]refs.SpecRef, error)
	ListTags() ([]refs.SpecRef, error)
	ListRemotes() ([]refs.SpecRef, error)
	Head() (refs.Ref, error)
	LookupHash(githash.Partial) ([]githash.Hash, error)
}

// GitFS reads a repository directory (a ".git" directory or a bare repo).
type GitFS struct {
	root string
	log  *logrus.Entry
}

var _ Repository = (*GitFS)(nil)

// Open validates root and returns a handle on it.
func Open(root string) (*GitFS, error) {
	g := &GitFS{
		root: root,
		log:  logrus.WithField("repo", root),
	}
	if err := g.IsValid(); err != nil {
		return nil, err
	}
	return g, nil
}

// Root returns the directory the handle was opened on.
func (g *GitFS) Root() string { return g.root }

func (g *GitFS) refsDir() string    { return filepath.Join(g.root, "refs") }
func (g *GitFS) objectsDir() string { return filepath.Join(g.root, "objects") }

// IsValid checks the directory has the layout of a repository: the refs,
// objects, info and hooks directories and the config, description and
// HEAD files.
func (g *GitFS) IsValid() error {
	dirs := []string{"refs", "objects", "info", "hooks"}
	for _, d := range dirs {
		p := filepath.Join(g.root, d)
		if fi, err := os.Stat(p); err != nil || !fi.IsDir() {
			return &giterr.MissingDirectory{Path: p}
		}
	}
	files := []string{"config", "description", "HEAD"}
	for _, f := range files {
		p := filepath.Join(g.root, f)
		if fi, err := os.Stat(p); err != nil || fi.IsDir() {
			return &giterr.MissingFile{Path: p}
		}
	}
	return nil
}

// Description reads the repository description file.
func (g *GitFS) Description() (string, error) {
	b, err := os.ReadFile(filepath.Join(g.root, "description"))
	if err != nil {
		return "", fmt.Errorf("read description: %w", err)
	}
	return string(b), nil
}

// GetRef reads and parses the reference file named by spec.
func (g *GitFS) GetRef(spec refs.SpecRef) (refs.Ref, error) {
	p := filepath.Join(g.root, filepath.FromSlash(spec.Path()))
	b, err := os.ReadFile(p)
	if err != nil {
		if os.IsNotExist(err) {
			return refs.Ref{}, &giterr.InvalidRef{Name: spec.String()}
		}
		return refs.Ref{}, fmt.Errorf("read ref %s: %w", spec, err)
	}
	return refs.ParseRef(string(b))
}

// Resolve follows symbolic links from spec down to an object id. The walk
// is bounded by MaxRefDepth to survive cyclic reference files.
func (g *GitFS) Resolve(spec refs.SpecRef) (githash.Hash, error) {
	for depth := 0; depth < MaxRefDepth; depth++ {
		r, err := g.GetRef(spec)
		if err != nil {
			return githash.Hash{}, err
		}
		if h, ok := r.Hash(); ok {
			g.log.WithFields(logrus.Fields{"ref": spec.String(), "hash": h.Hex()}).
				Debug("resolved ref")
			return h, nil
		}
		spec, _ = r.Link()
	}
	return githash.Hash{}, fmt.Errorf("resolve %s: %w", spec,
		&giterr.OutOfBound{Got: MaxRefDepth, Max: MaxRefDepth})
}

// Head reads the HEAD reference.
func (g *GitFS) Head() (refs.Ref, error) { return g.GetRef(refs.Head()) }

// loosePath maps an id to its loose-object file.
func (g *GitFS) loosePath(h githash.Hash) string {
	hex := h.Hex()
	return filepath.Join(g.objectsDir(), hex[:2], hex[2:])
}

// readLoose opens and inflates a loose object.
func (g *GitFS) readLoose(h githash.Hash) ([]byte, error) {
	f, err := os.Open(g.loosePath(h))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &giterr.InvalidRef{Name: h.Hex()}
		}
		return nil, fmt.Errorf("open object %s: %w", h, err)
	}
	defer f.Close()
	zr, err := zlib.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("inflate object %s: %w", h, err)
	}
	defer zr.Close()
	b, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("inflate object %s: %w", h, err)
	}
	return b, nil
}

// GetObject fetches and decodes the object with id h.
func (g *GitFS) GetObject(h githash.Hash) (objects.Object, error) {
	b, err := g.readLoose(h)
	if err != nil {
		return nil, err
	}
	o, _, err := objects.DecodeObject(b)
	if err != nil {
		return nil, fmt.Errorf("decode object %s: %w", h, err)
	}
	g.log.WithFields(logrus.Fields{"hash": h.Hex(), "kind": o.Kind().String()}).
		Debug("read loose object")
	return o, nil
}

// GetCommit fetches a commit by its typed id.
func (g *GitFS) GetCommit(r objects.CommitRef) (*objects.Commit, error) {
	o, err := g.GetObject(r.Hash())
	if err != nil {
		return nil, err
	}
	c, ok := o.(*objects.Commit)
	if !ok {
		return nil, giterr.Parsef("object %s is a %s, not a commit", r, o.Kind())
	}
	return c, nil
}

// GetTree fetches a tree by its typed id.
func (g *GitFS) GetTree(r objects.TreeRef) (*objects.Tree, error) {
	o, err := g.GetObject(r.Hash())
	if err != nil {
		return nil, err
	}
	t, ok := o.(*objects.Tree)
	if !ok {
		return nil, giterr.Parsef("object %s is a %s, not a tree", r, o.Kind())
	}
	return t, nil
}

// GetBlob fetches a blob by its typed id.
func (g *GitFS) GetBlob(r objects.BlobRef) (*objects.Blob, error) {
	o, err := g.GetObject(r.Hash())
	if err != nil {
		return nil, err
	}
	b, ok := o.(*objects.Blob)
	if !ok {
		return nil, giterr.Parsef("object %s is a %s, not a blob", r, o.Kind())
	}
	return b, nil
}

// ListBranches enumerates refs/heads.
func (g *GitFS) ListBranches() ([]refs.SpecRef, error) {
	names, err := walkFiles(filepath.Join(g.refsDir(), "heads"))
	if err != nil {
		return nil, err
	}
	out := make([]refs.SpecRef, 0, len(names))
	for _, n := range names {
		out = append(out, refs.Branch(n))
	}
	return out, nil
}

// ListTags enumerates refs/tags.
func (g *GitFS) ListTags() ([]refs.SpecRef, error) {
	names, err := walkFiles(filepath.Join(g.refsDir(), "tags"))
	if err != nil {
		return nil, err
	}
	out := make([]refs.SpecRef, 0, len(names))
	for _, n := range names {
		out = append(out, refs.Tag(n))
	}
	return out, nil
}

// ListRemotes enumerates refs/remotes. The first path component is the
// remote name, the remainder the branch.
func (g *GitFS) ListRemotes() ([]refs.SpecRef, error) {
	names, err := walkFiles(filepath.Join(g.refsDir(), "remotes"))
	if err != nil {
		return nil, err
	}
	out := make([]refs.SpecRef, 0, len(names))
	for _, n := range names {
		remote, branch, ok := strings.Cut(n, "/")
		if !ok {
			return nil, &giterr.InvalidRemote{Name: n}
		}
		out = append(out, refs.Remote(remote, branch))
	}
	return out, nil
}

// lookupLoose collects loose-object ids matching the prefix.
func (g *GitFS) lookupLoose(p githash.Partial) ([]githash.Hash, error) {
	entries, err := os.ReadDir(g.objectsDir())
	if err != nil {
		return nil, fmt.Errorf("scan objects: %w", err)
	}
	var out []githash.Hash
	for _, dir := range entries {
		name := dir.Name()
		if !dir.IsDir() || len(name) != 2 {
			// two-char fan directories only; pack and info don't qualify
			continue
		}
		files, err := os.ReadDir(filepath.Join(g.objectsDir(), name))
		if err != nil {
			return nil, fmt.Errorf("scan objects/%s: %w", name, err)
		}
		for _, f := range files {
			h, err := githash.FromHex(name + f.Name())
			if err != nil {
				continue
			}
			if p.IsPrefixOf(h) {
				out = append(out, h)
			}
		}
	}
	return out, nil
}

// LookupHash gathers every object id matching the prefix, from the loose
// store and from every pack index, deduplicated and sorted.
func (g *GitFS) LookupHash(p githash.Partial) ([]githash.Hash, error) {
	found, err := g.lookupLoose(p)
	if err != nil {
		return nil, err
	}
	idxs, err := pack.ListIndexes(g.objectsDir())
	if err != nil {
		return nil, err
	}
	for _, ref := range idxs {
		ix, err := pack.ParseIndexFile(filepath.Join(g.objectsDir(), "pack", ref.FileName()))
		if err != nil {
			return nil, fmt.Errorf("pack %s: %w", ref, err)
		}
		found = append(found, ix.PrefixSearch(p)...)
	}
	sort.Slice(found, func(i, j int) bool { return found[i].Compare(found[j]) < 0 })
	out := found[:0]
	for i, h := range found {
		if i == 0 || found[i-1] != h {
			out = append(out, h)
		}
	}
	g.log.WithFields(logrus.Fields{"prefix": p.Hex(), "matches": len(out)}).
		Debug("hash prefix lookup")
	return out, nil
}
