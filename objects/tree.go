package objects

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/javanhut/muninn/codec"
	"github.com/javanhut/muninn/githash"
	"github.com/javanhut/muninn/giterr"
)

// EntKind distinguishes the two tree entry cases.
type EntKind uint8

const (
	// EntBlob is a regular file entry, mode prefix "10".
	EntBlob EntKind = iota
	// EntTree is a subdirectory entry, mode prefix "4".
	EntTree
)

// TreeEnt is one entry of a Tree: permissions, a path name and the id of
// the blob or subtree it points at.
//
// Wire form: the mode-prefix digits ("10" for a file, "4" for a directory),
// four octal permission digits, a space, the name, a NUL, then the raw
// digest bytes. The prefix must be matched longest-first or "100644" reads
// as a "1" followed by garbage.
type TreeEnt struct {
	Kind  EntKind
	Perms Permissions
	Name  string

	id githash.Hash
}

// NewBlobEnt builds a file entry.
func NewBlobEnt(perms Permissions, name string, ref BlobRef) TreeEnt {
	return TreeEnt{Kind: EntBlob, Perms: perms, Name: name, id: ref.Hash()}
}

// NewTreeEnt builds a subdirectory entry.
func NewTreeEnt(perms Permissions, name string, ref TreeRef) TreeEnt {
	return TreeEnt{Kind: EntTree, Perms: perms, Name: name, id: ref.Hash()}
}

// Hash returns the entry's raw object id.
func (e TreeEnt) Hash() githash.Hash { return e.id }

// Blob returns the entry's id as a blob id when the entry is a file.
func (e TreeEnt) Blob() (BlobRef, bool) {
	if e.Kind != EntBlob {
		return BlobRef{}, false
	}
	return NewBlobRef(e.id), true
}

// Tree returns the entry's id as a tree id when the entry is a directory.
func (e TreeEnt) Tree() (TreeRef, bool) {
	if e.Kind != EntTree {
		return TreeRef{}, false
	}
	return NewTreeRef(e.id), true
}

func (e TreeEnt) modePrefix() string {
	if e.Kind == EntBlob {
		return "10"
	}
	return "4"
}

// String renders the entry the way ls-tree would.
func (e TreeEnt) String() string {
	kind := "blob"
	if e.Kind == EntTree {
		kind = "tree"
	}
	return fmt.Sprintf("%s%s %s %s\t%s", e.modePrefix(), e.Perms, kind, e.id, e.Name)
}

// DecodeTreeEnt reads one entry from the front of b.
func DecodeTreeEnt(b []byte) (TreeEnt, []byte, error) {
	var e TreeEnt
	// longest tag first: "10" before "4"
	if rest, err := codec.Tag(b, "10"); err == nil {
		e.Kind = EntBlob
		b = rest
	} else if rest, err := codec.Tag(b, "4"); err == nil {
		e.Kind = EntTree
		b = rest
	} else {
		return TreeEnt{}, nil, giterr.Parsef("invalid tree entry mode")
	}
	perms, b, err := DecodePermissions(b)
	if err != nil {
		return TreeEnt{}, nil, err
	}
	e.Perms = perms
	b, err = codec.Byte(b, ' ')
	if err != nil {
		return TreeEnt{}, nil, fmt.Errorf("tree entry: %w", err)
	}
	name, b, err := codec.Until(b, "\x00")
	if err != nil {
		return TreeEnt{}, nil, fmt.Errorf("tree entry name: %w", err)
	}
	e.Name = string(name)
	e.id, b, err = githash.DecodeBytes(b)
	if err != nil {
		return TreeEnt{}, nil, fmt.Errorf("tree entry hash: %w", err)
	}
	return e, b, nil
}

// Decode implements codec.Decoder.
func (e *TreeEnt) Decode(b []byte) ([]byte, error) {
	v, rest, err := DecodeTreeEnt(b)
	if err != nil {
		return nil, err
	}
	*e = v
	return rest, nil
}

// Encode implements codec.Encoder.
func (e TreeEnt) Encode(w io.Writer) (int, error) {
	n, err := fmt.Fprintf(w, "%s%s %s\x00", e.modePrefix(), e.Perms, e.Name)
	if err != nil {
		return n, err
	}
	m, err := e.id.EncodeBytes(w)
	return n + m, err
}

// EncodedSize implements codec.Encoder.
func (e TreeEnt) EncodedSize() int {
	return len(e.modePrefix()) + 4 + 1 + len(e.Name) + 1 + githash.DigestSize
}

// Tree is a set of entries unique by name, iterated and encoded in
// ascending name order.
type Tree struct {
	ents []TreeEnt
}

// NewTree returns an empty tree.
func NewTree() *Tree { return &Tree{} }

// Len returns the number of entries.
func (t *Tree) Len() int { return len(t.ents) }

// Entries returns the entries in ascending name order. The slice is shared;
// callers must not mutate it.
func (t *Tree) Entries() []TreeEnt { return t.ents }

// Get finds an entry by name.
func (t *Tree) Get(name string) (TreeEnt, bool) {
	i := sort.Search(len(t.ents), func(i int) bool { return t.ents[i].Name >= name })
	if i < len(t.ents) && t.ents[i].Name == name {
		return t.ents[i], true
	}
	return TreeEnt{}, false
}

// Insert adds an entry. Inserting a name already present is rejected.
func (t *Tree) Insert(e TreeEnt) error {
	i := sort.Search(len(t.ents), func(i int) bool { return t.ents[i].Name >= e.Name })
	if i < len(t.ents) && t.ents[i].Name == e.Name {
		return giterr.Parsef("duplicate tree entry %q", e.Name)
	}
	t.ents = append(t.ents, TreeEnt{})
	copy(t.ents[i+1:], t.ents[i:])
	t.ents[i] = e
	return nil
}

// replace inserts or overwrites; used while decoding, where the last
// occurrence of a name wins.
func (t *Tree) replace(e TreeEnt) {
	i := sort.Search(len(t.ents), func(i int) bool { return t.ents[i].Name >= e.Name })
	if i < len(t.ents) && t.ents[i].Name == e.Name {
		t.ents[i] = e
		return
	}
	t.ents = append(t.ents, TreeEnt{})
	copy(t.ents[i+1:], t.ents[i:])
	t.ents[i] = e
}

// Kind implements Object.
func (t *Tree) Kind() Kind { return KindTree }

func (t *Tree) payloadSize() int {
	sum := 0
	for _, e := range t.ents {
		sum += e.EncodedSize()
	}
	return sum
}

// DecodeTree reads a framed tree ("tree <len>\0" then entries) from the
// front of b.
func DecodeTree(b []byte) (*Tree, []byte, error) {
	b, err := codec.Tag(b, "tree ")
	if err != nil {
		return nil, nil, err
	}
	size, b, err := codec.Digits(b)
	if err != nil {
		return nil, nil, fmt.Errorf("tree size: %w", err)
	}
	b, err = codec.Byte(b, 0)
	if err != nil {
		return nil, nil, fmt.Errorf("tree header: %w", err)
	}
	payload, rest, err := codec.Take(b, int(size))
	if err != nil {
		return nil, nil, fmt.Errorf("tree payload: %w", err)
	}
	t := NewTree()
	for len(payload) > 0 {
		e, p, err := DecodeTreeEnt(payload)
		if err != nil {
			return nil, nil, err
		}
		t.replace(e)
		payload = p
	}
	return t, rest, nil
}

// Decode implements codec.Decoder.
func (t *Tree) Decode(b []byte) ([]byte, error) {
	v, rest, err := DecodeTree(b)
	if err != nil {
		return nil, err
	}
	*t = *v
	return rest, nil
}

// Encode implements codec.Encoder.
func (t *Tree) Encode(w io.Writer) (int, error) {
	total, err := fmt.Fprintf(w, "tree %d\x00", t.payloadSize())
	if err != nil {
		return total, err
	}
	for _, e := range t.ents {
		n, err := e.Encode(w)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// EncodedSize implements codec.Encoder.
func (t *Tree) EncodedSize() int {
	n := t.payloadSize()
	return 5 + len(strconv.Itoa(n)) + 1 + n
}
