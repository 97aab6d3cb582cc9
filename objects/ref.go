// Package objects implements the typed object model of the store and the
// byte-exact wire codecs for every object kind and sub-element.
//
// A decoded value re-encodes to the identical bytes it came from. That
// property is what makes the store content-addressed: hash the encoded
// form of an object and you get its id back.
package objects

import (
	"github.com/javanhut/muninn/githash"
)

// CommitRef is a commit id. It is a distinct type from TreeRef and BlobRef
// so an API cannot be handed the wrong kind of object id.
type CommitRef githash.Hash

// NewCommitRef wraps a raw digest as a commit id.
func NewCommitRef(h githash.Hash) CommitRef { return CommitRef(h) }

// Hash unwraps the raw digest.
func (r CommitRef) Hash() githash.Hash { return githash.Hash(r) }

// Hex returns the lowercase hexadecimal form.
func (r CommitRef) Hex() string { return githash.Hash(r).Hex() }

func (r CommitRef) String() string { return r.Hex() }

// TreeRef is a tree id.
type TreeRef githash.Hash

// NewTreeRef wraps a raw digest as a tree id.
func NewTreeRef(h githash.Hash) TreeRef { return TreeRef(h) }

// Hash unwraps the raw digest.
func (r TreeRef) Hash() githash.Hash { return githash.Hash(r) }

// Hex returns the lowercase hexadecimal form.
func (r TreeRef) Hex() string { return githash.Hash(r).Hex() }

func (r TreeRef) String() string { return r.Hex() }

// BlobRef is a blob id.
type BlobRef githash.Hash

// NewBlobRef wraps a raw digest as a blob id.
func NewBlobRef(h githash.Hash) BlobRef { return BlobRef(h) }

// Hash unwraps the raw digest.
func (r BlobRef) Hash() githash.Hash { return githash.Hash(r) }

// Hex returns the lowercase hexadecimal form.
func (r BlobRef) Hex() string { return githash.Hash(r).Hex() }

func (r BlobRef) String() string { return r.Hex() }
