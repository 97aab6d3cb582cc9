package githash

import (
	"strings"

	"github.com/javanhut/muninn/giterr"
)

// Partial is a hexadecimal digest prefix, 1 to HexSize characters,
// used to look objects up when only part of an id is known.
type Partial struct {
	hex string
}

// PartialFromHex validates and normalizes a hex prefix.
func PartialFromHex(s string) (Partial, error) {
	if len(s) == 0 || len(s) > HexSize {
		return Partial{}, &giterr.InvalidHashSize{Expected: HexSize, Actual: len(s)}
	}
	s = strings.ToLower(s)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return Partial{}, giterr.Parsef("invalid hexadecimal prefix %q", s)
		}
	}
	return Partial{hex: s}, nil
}

// IsPrefixOf reports whether the partial matches the front of h's hex form.
func (p Partial) IsPrefixOf(h Hash) bool {
	return strings.HasPrefix(h.Hex(), p.hex)
}

// Hex returns the normalized prefix characters.
func (p Partial) Hex() string { return p.hex }

// String implements fmt.Stringer.
func (p Partial) String() string { return p.hex }

// ByteRange returns the inclusive range of leading-byte values a matching
// digest can have. A prefix of two or more characters pins a single byte;
// a one-character prefix spans sixteen.
func (p Partial) ByteRange() (lo, hi byte) {
	hexVal := func(c byte) byte {
		if c <= '9' {
			return c - '0'
		}
		return c - 'a' + 10
	}
	if len(p.hex) >= 2 {
		b := hexVal(p.hex[0])<<4 | hexVal(p.hex[1])
		return b, b
	}
	n := hexVal(p.hex[0])
	return n << 4, n<<4 | 0x0f
}
