package objects

import (
	"fmt"
	"io"

	"github.com/javanhut/muninn/codec"
	"github.com/javanhut/muninn/giterr"
)

// Permission is one POSIX access bit. The values are the octal digit
// weights, so a PermissionSet renders as a single octal digit directly.
type Permission uint8

const (
	Read       Permission = 4
	Write      Permission = 2
	Executable Permission = 1
)

// PermissionSet is a subset of {Read, Write, Executable}.
type PermissionSet uint8

// NewPermissionSet combines permissions into a set.
func NewPermissionSet(ps ...Permission) PermissionSet {
	var s PermissionSet
	for _, p := range ps {
		s |= PermissionSet(p)
	}
	return s
}

// Has reports whether the set grants p.
func (s PermissionSet) Has(p Permission) bool { return s&PermissionSet(p) != 0 }

// With returns the set with p added.
func (s PermissionSet) With(p Permission) PermissionSet { return s | PermissionSet(p) }

// Digit renders the set as its octal digit.
func (s PermissionSet) Digit() byte { return '0' + byte(s&7) }

func permissionSetFromDigit(c byte) (PermissionSet, error) {
	if c < '0' || c > '7' {
		return 0, giterr.Parsef("invalid permission digit %q", c)
	}
	return PermissionSet(c - '0'), nil
}

// Permissions holds the user, group and other permission sets of a tree
// entry. Wire form: a leading '0' then three octal digits.
type Permissions struct {
	User  PermissionSet
	Group PermissionSet
	Other PermissionSet
}

// DecodePermissions reads four octal digits from the front of b.
func DecodePermissions(b []byte) (Permissions, []byte, error) {
	raw, b, err := codec.Take(b, 4)
	if err != nil {
		return Permissions{}, nil, fmt.Errorf("permissions: %w", err)
	}
	if raw[0] != '0' {
		return Permissions{}, nil, giterr.Parsef("invalid permission prefix %q", raw[0])
	}
	var p Permissions
	for i, dst := range []*PermissionSet{&p.User, &p.Group, &p.Other} {
		set, err := permissionSetFromDigit(raw[i+1])
		if err != nil {
			return Permissions{}, nil, err
		}
		*dst = set
	}
	return p, b, nil
}

// Decode implements codec.Decoder.
func (p *Permissions) Decode(b []byte) ([]byte, error) {
	v, rest, err := DecodePermissions(b)
	if err != nil {
		return nil, err
	}
	*p = v
	return rest, nil
}

// String renders the four octal digits.
func (p Permissions) String() string {
	return string([]byte{'0', p.User.Digit(), p.Group.Digit(), p.Other.Digit()})
}

// Encode implements codec.Encoder.
func (p Permissions) Encode(w io.Writer) (int, error) {
	return io.WriteString(w, p.String())
}

// EncodedSize implements codec.Encoder.
func (p Permissions) EncodedSize() int { return 4 }
