package objects

import (
	"bytes"

	"github.com/javanhut/muninn/codec"
	"github.com/javanhut/muninn/githash"
	"github.com/javanhut/muninn/giterr"
)

// Kind discriminates the object variants by their wire tag.
type Kind uint8

const (
	KindCommit Kind = iota
	KindTree
	KindBlob
)

// String returns the wire tag word.
func (k Kind) String() string {
	switch k {
	case KindCommit:
		return "commit"
	case KindTree:
		return "tree"
	case KindBlob:
		return "blob"
	}
	return "unknown"
}

// Object is the polymorphic store object: one of *Commit, *Tree, *Blob.
// Every object encodes as "<tag> <payload-len>\0<payload>".
type Object interface {
	codec.Encoder
	Kind() Kind
}

// DecodeObject dispatches on the leading type tag and decodes the framed
// object at the front of b.
func DecodeObject(b []byte) (Object, []byte, error) {
	switch {
	case bytes.HasPrefix(b, []byte("commit ")):
		return DecodeCommit(b)
	case bytes.HasPrefix(b, []byte("tree ")):
		return DecodeTree(b)
	case bytes.HasPrefix(b, []byte("blob ")):
		return DecodeBlob(b)
	}
	if len(b) < 7 {
		return nil, nil, &giterr.Incomplete{}
	}
	return nil, nil, giterr.Parsef("unknown object tag %q", b[:7])
}

// HashOf computes an object's id: the digest of its framed encoding.
func HashOf(o Object) githash.Hash {
	var buf bytes.Buffer
	buf.Grow(o.EncodedSize())
	o.Encode(&buf)
	return githash.Sum(buf.Bytes())
}

// every wire type satisfies both codec contracts
var (
	_ Object = (*Commit)(nil)
	_ Object = (*Tree)(nil)
	_ Object = (*Blob)(nil)

	_ codec.Decoder = (*Commit)(nil)
	_ codec.Decoder = (*Tree)(nil)
	_ codec.Decoder = (*Blob)(nil)
	_ codec.Decoder = (*TreeEnt)(nil)
	_ codec.Decoder = (*Date)(nil)
	_ codec.Decoder = (*Person)(nil)
	_ codec.Decoder = (*Permissions)(nil)
	_ codec.Decoder = (*Extras)(nil)

	_ codec.Encoder = (*TreeEnt)(nil)
	_ codec.Encoder = (*Date)(nil)
	_ codec.Encoder = (*Person)(nil)
	_ codec.Encoder = (*Permissions)(nil)
	_ codec.Encoder = (*Extras)(nil)
)
