// Package githash implements the fixed-size digest the object store is
// addressed by, its hex and raw-byte codecs, and the partial (hex prefix)
// form used for lookups.
//
// The store's native algorithm is SHA-1, so a digest is 20 bytes. A
// BLAKE3-160 helper is provided for stores that re-hash content with a
// modern algorithm; both produce the same Hash value type so everything
// downstream is algorithm-agnostic.
package githash

import (
	"bytes"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"io"

	"lukechampine.com/blake3"

	"github.com/javanhut/muninn/giterr"
)

// DigestSize is the byte length of a digest.
const DigestSize = sha1.Size

// HexSize is the length of a digest rendered as lowercase hexadecimal.
const HexSize = DigestSize * 2

// Hash is a 20-byte content digest. Ordered by lexical byte comparison.
type Hash [DigestSize]byte

// Sum computes the SHA-1 digest of data.
func Sum(data []byte) Hash {
	return sha1.Sum(data)
}

// SumBlake3 computes a BLAKE3-160 digest of data: the first 20 bytes of
// the BLAKE3 output stream, sized to match the store's native digests.
func SumBlake3(data []byte) Hash {
	var h Hash
	d := blake3.Sum256(data)
	copy(h[:], d[:DigestSize])
	return h
}

// HashReader streams r through SHA-1.
func HashReader(r io.Reader) (Hash, error) {
	st := sha1.New()
	if _, err := io.Copy(st, r); err != nil {
		return Hash{}, fmt.Errorf("hash stream: %w", err)
	}
	var h Hash
	copy(h[:], st.Sum(nil))
	return h, nil
}

// FromBytes builds a Hash from exactly DigestSize raw bytes.
func FromBytes(b []byte) (Hash, error) {
	if len(b) != DigestSize {
		return Hash{}, &giterr.InvalidHashSize{Expected: DigestSize, Actual: len(b)}
	}
	var h Hash
	copy(h[:], b)
	return h, nil
}

// FromHex builds a Hash from exactly HexSize hexadecimal characters.
// Uppercase input is accepted and normalized.
func FromHex(s string) (Hash, error) {
	if len(s) != HexSize {
		return Hash{}, &giterr.InvalidHashSize{Expected: HexSize, Actual: len(s)}
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return Hash{}, giterr.Parsef("invalid hexadecimal %q", s)
	}
	return FromBytes(b)
}

// Bytes returns the raw digest bytes.
func (h Hash) Bytes() []byte { return h[:] }

// Hex returns the lowercase hexadecimal form.
func (h Hash) Hex() string { return hex.EncodeToString(h[:]) }

// String implements fmt.Stringer as the hex form.
func (h Hash) String() string { return h.Hex() }

// Compare orders two hashes by lexical byte comparison.
func (h Hash) Compare(o Hash) int { return bytes.Compare(h[:], o[:]) }

// IsZero reports whether h is the all-zero digest.
func (h Hash) IsZero() bool { return h == Hash{} }

// DecodeBytes reads DigestSize raw bytes from the front of b.
func DecodeBytes(b []byte) (Hash, []byte, error) {
	if len(b) < DigestSize {
		return Hash{}, nil, &giterr.Incomplete{Needed: DigestSize - len(b)}
	}
	var h Hash
	copy(h[:], b[:DigestSize])
	return h, b[DigestSize:], nil
}

// EncodeBytes writes the raw digest bytes.
func (h Hash) EncodeBytes(w io.Writer) (int, error) {
	return w.Write(h[:])
}

// DecodeHex reads HexSize hexadecimal characters from the front of b.
func DecodeHex(b []byte) (Hash, []byte, error) {
	if len(b) < HexSize {
		return Hash{}, nil, &giterr.Incomplete{Needed: HexSize - len(b)}
	}
	h, err := FromHex(string(b[:HexSize]))
	if err != nil {
		return Hash{}, nil, err
	}
	return h, b[HexSize:], nil
}

// EncodeHex writes the lowercase hexadecimal form.
func (h Hash) EncodeHex(w io.Writer) (int, error) {
	return io.WriteString(w, h.Hex())
}
