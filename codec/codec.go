// Package codec defines the two codec contracts every wire type in muninn
// implements, plus the byte-scanning helpers the hand-rolled parsers share.
//
// Decoding consumes a prefix of the input and returns the remainder, so
// containers can chain element decoders without copying. Encoding writes to
// an io.Writer and must know its exact output size up front: object framing
// puts a decimal length before the payload, and the size lets the framer
// write the header without buffering the body first.
package codec

import (
	"bytes"
	"io"

	"github.com/javanhut/muninn/giterr"
)

// Decoder consumes a prefix of b and returns the unread remainder.
// On failure the error is either *giterr.Incomplete (more input needed)
// or *giterr.ParseError (malformed input).
type Decoder interface {
	Decode(b []byte) (rest []byte, err error)
}

// Encoder writes the wire form of a value.
// EncodedSize must equal exactly the number of bytes Encode writes;
// a mismatch is a programming error, not an I/O condition.
type Encoder interface {
	Encode(w io.Writer) (n int, err error)
	EncodedSize() int
}

// Tag consumes the literal tag at the start of b.
func Tag(b []byte, tag string) (rest []byte, err error) {
	if len(b) < len(tag) {
		if bytes.HasPrefix([]byte(tag), b) {
			return nil, &giterr.Incomplete{Needed: len(tag) - len(b)}
		}
		return nil, giterr.Parsef("expected %q", tag)
	}
	if string(b[:len(tag)]) != tag {
		return nil, giterr.Parsef("expected %q, found %q", tag, b[:len(tag)])
	}
	return b[len(tag):], nil
}

// Until consumes bytes up to and including the delimiter and returns the
// bytes before it. Fails with Incomplete when the delimiter never shows up.
func Until(b []byte, delim string) (value, rest []byte, err error) {
	i := bytes.Index(b, []byte(delim))
	if i < 0 {
		return nil, nil, &giterr.Incomplete{}
	}
	return b[:i], b[i+len(delim):], nil
}

// Byte consumes a single expected byte.
func Byte(b []byte, c byte) (rest []byte, err error) {
	if len(b) == 0 {
		return nil, &giterr.Incomplete{Needed: 1}
	}
	if b[0] != c {
		return nil, giterr.Parsef("expected %q, found %q", c, b[0])
	}
	return b[1:], nil
}

// Digits consumes a run of ASCII decimal digits and returns its value.
// The run must be non-empty and is accumulated into an int64 without
// overflow checking beyond what the callers' length prefixes need.
func Digits(b []byte) (v int64, rest []byte, err error) {
	n := 0
	for n < len(b) && b[n] >= '0' && b[n] <= '9' {
		v = v*10 + int64(b[n]-'0')
		n++
	}
	if n == 0 {
		if len(b) == 0 {
			return 0, nil, &giterr.Incomplete{Needed: 1}
		}
		return 0, nil, giterr.Parsef("expected digits, found %q", b[0])
	}
	return v, b[n:], nil
}

// SignedDigits consumes an optional '-' or '+' sign followed by digits.
func SignedDigits(b []byte) (v int64, rest []byte, err error) {
	neg := false
	if len(b) > 0 && (b[0] == '-' || b[0] == '+') {
		neg = b[0] == '-'
		b = b[1:]
	}
	v, rest, err = Digits(b)
	if err != nil {
		return 0, nil, err
	}
	if neg {
		v = -v
	}
	return v, rest, nil
}

// Take consumes exactly n bytes.
func Take(b []byte, n int) (value, rest []byte, err error) {
	if len(b) < n {
		return nil, nil, &giterr.Incomplete{Needed: n - len(b)}
	}
	return b[:n], b[n:], nil
}
