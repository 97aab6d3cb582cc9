package refs

import (
	"path"
	"strings"

	"github.com/javanhut/muninn/githash"
)

// Ref is the value stored in a reference file: either a concrete object id
// or a symbolic link to another reference. File forms are "<hex>\n" and
// "ref: <spec>\n".
type Ref struct {
	hash   githash.Hash
	link   SpecRef
	isLink bool
}

// HashRef wraps a concrete object id.
func HashRef(h githash.Hash) Ref { return Ref{hash: h} }

// LinkRef wraps a symbolic link.
func LinkRef(s SpecRef) Ref { return Ref{link: s, isLink: true} }

// IsLink reports whether the ref is symbolic.
func (r Ref) IsLink() bool { return r.isLink }

// Hash returns the object id of a concrete ref.
func (r Ref) Hash() (githash.Hash, bool) {
	if r.isLink {
		return githash.Hash{}, false
	}
	return r.hash, true
}

// Link returns the target of a symbolic ref.
func (r Ref) Link() (SpecRef, bool) {
	if !r.isLink {
		return SpecRef{}, false
	}
	return r.link, true
}

// ParseRef parses the content of a reference file.
func ParseRef(s string) (Ref, error) {
	if strings.HasPrefix(s, "ref: ") {
		spec, err := ParseSpecRef(s[5:])
		if err != nil {
			return Ref{}, err
		}
		return LinkRef(spec), nil
	}
	h, err := githash.FromHex(strings.TrimSpace(s))
	if err != nil {
		return Ref{}, err
	}
	return HashRef(h), nil
}

// String returns the file content form without the trailing newline.
func (r Ref) String() string {
	if r.isLink {
		return "ref: " + r.link.String()
	}
	return r.hash.Hex()
}

// Path returns the repository-relative path the ref points into: the
// loose-object path for a concrete id, the reference file path for a link.
// Slash form; callers join it with filepath.FromSlash.
func (r Ref) Path() string {
	if r.isLink {
		return r.link.Path()
	}
	hex := r.hash.Hex()
	return path.Join("objects", hex[:2], hex[2:])
}
