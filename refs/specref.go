// Package refs models the named references of a repository: the structured
// symbolic names (branches, tags, remotes, HEAD and friends) and the ref
// values stored under them, which are either object ids or links to other
// symbolic names.
package refs

import (
	"path"
	"strings"

	"github.com/javanhut/muninn/giterr"
)

// Kind discriminates the symbolic reference variants.
type Kind uint8

const (
	KindTag Kind = iota
	KindBranch
	KindRemote
	KindPatch
	KindStash
	KindHead
	KindOriginHead
	KindFetchHead
)

// SpecRef is a structured symbolic reference name. The zero value is not
// meaningful; build one with the constructors or ParseSpecRef.
type SpecRef struct {
	kind   Kind
	name   string // tag, branch or patch name; branch part for remotes
	remote string // remote name, KindRemote only
}

// Tag names refs/tags/<name>.
func Tag(name string) SpecRef { return SpecRef{kind: KindTag, name: name} }

// Branch names refs/heads/<name>.
func Branch(name string) SpecRef { return SpecRef{kind: KindBranch, name: name} }

// Remote names refs/remotes/<remote>/<branch>.
func Remote(remote, branch string) SpecRef {
	return SpecRef{kind: KindRemote, name: branch, remote: remote}
}

// Patch names refs/patches/<name>.
func Patch(name string) SpecRef { return SpecRef{kind: KindPatch, name: name} }

// Stash names refs/stash.
func Stash() SpecRef { return SpecRef{kind: KindStash} }

// Head names HEAD.
func Head() SpecRef { return SpecRef{kind: KindHead} }

// OriginHead names ORIG_HEAD.
func OriginHead() SpecRef { return SpecRef{kind: KindOriginHead} }

// FetchHead names FETCH_HEAD.
func FetchHead() SpecRef { return SpecRef{kind: KindFetchHead} }

// Kind returns the variant.
func (s SpecRef) Kind() Kind { return s.kind }

// Name returns the tag, branch or patch name. For remotes it is the
// branch part.
func (s SpecRef) Name() string { return s.name }

// RemoteName returns the remote part of a remote reference.
func (s SpecRef) RemoteName() string { return s.remote }

// ParseSpecRef parses a slash-separated reference path, tolerating
// trailing whitespace. Unknown shapes fail with InvalidRef.
func ParseSpecRef(s string) (SpecRef, error) {
	trimmed := strings.TrimRight(s, " \t\r\n")
	parts := strings.Split(trimmed, "/")
	switch parts[0] {
	case "HEAD":
		if len(parts) == 1 {
			return Head(), nil
		}
	case "ORIG_HEAD":
		if len(parts) == 1 {
			return OriginHead(), nil
		}
	case "FETCH_HEAD":
		if len(parts) == 1 {
			return FetchHead(), nil
		}
	case "refs":
		if len(parts) < 2 {
			break
		}
		tail := strings.Join(parts[2:], "/")
		switch parts[1] {
		case "tags":
			if tail != "" {
				return Tag(tail), nil
			}
		case "heads":
			if tail != "" {
				return Branch(tail), nil
			}
		case "patches":
			if tail != "" {
				return Patch(tail), nil
			}
		case "stash":
			if tail == "" {
				return Stash(), nil
			}
		case "remotes":
			if len(parts) >= 4 && parts[2] != "" {
				branch := strings.Join(parts[3:], "/")
				if branch != "" {
					return Remote(parts[2], branch), nil
				}
			}
		}
	}
	return SpecRef{}, &giterr.InvalidRef{Name: trimmed}
}

// String returns the canonical reference path, slash-separated and
// relative to the repository root.
func (s SpecRef) String() string {
	switch s.kind {
	case KindTag:
		return path.Join("refs/tags", s.name)
	case KindBranch:
		return path.Join("refs/heads", s.name)
	case KindRemote:
		return path.Join("refs/remotes", s.remote, s.name)
	case KindPatch:
		return path.Join("refs/patches", s.name)
	case KindStash:
		return "refs/stash"
	case KindHead:
		return "HEAD"
	case KindOriginHead:
		return "ORIG_HEAD"
	}
	return "FETCH_HEAD"
}

// Path returns the file path of the reference relative to the repository
// root, in slash form; callers join it with filepath.FromSlash.
func (s SpecRef) Path() string { return s.String() }
