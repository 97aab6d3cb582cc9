// Package pack reads packfile indexes (version 2 ".idx" files).
//
// An index file is: a 1032-byte header (magic, version, 256-entry fan-out),
// the sorted hash table, the CRC32 table, the 31-bit offset table with
// escapes into a 64-bit offset table, and a trailer holding the packfile
// hash and the index's own hash. Pack *content* is out of scope here; the
// index alone answers membership and prefix queries.
package pack

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/javanhut/muninn/githash"
	"github.com/javanhut/muninn/giterr"
)

// Magic is the version-2 index signature, "\xfftOc".
const Magic uint32 = 0xff744f63

// Version is the only index version understood here.
const Version uint32 = 2

const (
	headerSize  = 4 + 4 + 256*4
	largeEscape = 0x80000000
)

// IndexRef identifies a pack by the hash embedded in its file names
// (pack-<hex>.pack / pack-<hex>.idx).
type IndexRef githash.Hash

// Hex returns the hash portion of the pack file names.
func (r IndexRef) Hex() string { return githash.Hash(r).Hex() }

func (r IndexRef) String() string { return r.Hex() }

// FileName returns the index file name for the pack.
func (r IndexRef) FileName() string { return "pack-" + r.Hex() + ".idx" }

// Index is a fully decoded packfile index.
type Index struct {
	version   uint32
	fanout    [256]uint32
	hashes    []githash.Hash
	crcs      []uint32
	offsets   []uint64
	packHash  githash.Hash
	indexHash githash.Hash
}

// Count returns the number of objects in the pack.
func (ix *Index) Count() int { return int(ix.fanout[255]) }

// Hashes returns the sorted object hashes. The slice is shared.
func (ix *Index) Hashes() []githash.Hash { return ix.hashes }

// CRC returns the CRC32 recorded for the i-th object.
func (ix *Index) CRC(i int) uint32 { return ix.crcs[i] }

// Offset returns the pack-file offset of the i-th object, with 64-bit
// escapes already resolved.
func (ix *Index) Offset(i int) uint64 { return ix.offsets[i] }

// PackHash returns the trailer hash of the packfile the index describes.
func (ix *Index) PackHash() githash.Hash { return ix.packHash }

// IndexHash returns the index file's own trailer hash.
func (ix *Index) IndexHash() githash.Hash { return ix.indexHash }

// band returns the [start, end) hash-table range for first bytes lo..hi.
func (ix *Index) band(lo, hi byte) (int, int) {
	start := 0
	if lo > 0 {
		start = int(ix.fanout[lo-1])
	}
	return start, int(ix.fanout[hi])
}

// PrefixSearch returns the hashes matching the prefix, narrowed through
// the fan-out band before the linear filter.
func (ix *Index) PrefixSearch(p githash.Partial) []githash.Hash {
	lo, hi := p.ByteRange()
	start, end := ix.band(lo, hi)
	var out []githash.Hash
	for _, h := range ix.hashes[start:end] {
		if p.IsPrefixOf(h) {
			out = append(out, h)
		}
	}
	return out
}

// Contains looks up a full hash and returns its pack offset.
func (ix *Index) Contains(h githash.Hash) (uint64, bool) {
	start, end := ix.band(h[0], h[0])
	sub := ix.hashes[start:end]
	i := sort.Search(len(sub), func(i int) bool { return sub[i].Compare(h) >= 0 })
	if i < len(sub) && sub[i] == h {
		return ix.offsets[start+i], true
	}
	return 0, false
}

// ParseIndex decodes a complete index file image.
func ParseIndex(b []byte) (*Index, error) {
	if len(b) < headerSize {
		return nil, &giterr.Incomplete{Needed: headerSize - len(b)}
	}
	ix := &Index{}
	if magic := binary.BigEndian.Uint32(b); magic != Magic {
		return nil, giterr.Parsef("bad index magic %08x", magic)
	}
	ix.version = binary.BigEndian.Uint32(b[4:])
	if ix.version != Version {
		return nil, giterr.Parsef("unsupported index version %d", ix.version)
	}
	prev := uint32(0)
	for i := 0; i < 256; i++ {
		v := binary.BigEndian.Uint32(b[8+4*i:])
		if v < prev {
			return nil, giterr.Parsef("fan-out not monotonic at byte %02x", i)
		}
		ix.fanout[i] = v
		prev = v
	}
	b = b[headerSize:]

	n := ix.Count()
	need := n*githash.DigestSize + n*4 + n*4 + 2*githash.DigestSize
	if len(b) < need {
		return nil, &giterr.Incomplete{Needed: need - len(b)}
	}

	ix.hashes = make([]githash.Hash, n)
	for i := range ix.hashes {
		copy(ix.hashes[i][:], b[i*githash.DigestSize:])
	}
	for i := 1; i < n; i++ {
		if ix.hashes[i-1].Compare(ix.hashes[i]) >= 0 {
			return nil, giterr.Parsef("hash table not sorted at entry %d", i)
		}
	}
	b = b[n*githash.DigestSize:]

	ix.crcs = make([]uint32, n)
	for i := range ix.crcs {
		ix.crcs[i] = binary.BigEndian.Uint32(b[4*i:])
	}
	b = b[n*4:]

	small := make([]uint32, n)
	for i := range small {
		small[i] = binary.BigEndian.Uint32(b[4*i:])
	}
	b = b[n*4:]

	// everything before the two trailer hashes is the 64-bit offset table
	largeLen := len(b) - 2*githash.DigestSize
	if largeLen < 0 || largeLen%8 != 0 {
		return nil, giterr.Parsef("malformed large-offset table (%d bytes)", largeLen)
	}
	large := make([]uint64, largeLen/8)
	for i := range large {
		large[i] = binary.BigEndian.Uint64(b[8*i:])
	}
	b = b[largeLen:]

	ix.offsets = make([]uint64, n)
	for i, v := range small {
		if v&largeEscape == 0 {
			ix.offsets[i] = uint64(v)
			continue
		}
		j := int(v &^ largeEscape)
		if j >= len(large) {
			return nil, &giterr.OutOfBound{Got: j, Max: len(large) - 1}
		}
		ix.offsets[i] = large[j]
	}

	var err error
	if ix.packHash, b, err = githash.DecodeBytes(b); err != nil {
		return nil, fmt.Errorf("index trailer: %w", err)
	}
	if ix.indexHash, _, err = githash.DecodeBytes(b); err != nil {
		return nil, fmt.Errorf("index trailer: %w", err)
	}
	return ix, nil
}

// ParseIndexFile reads and decodes the index at path.
func ParseIndexFile(path string) (*Index, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read pack index: %w", err)
	}
	return ParseIndex(b)
}

// ListIndexes scans a repository's objects/pack directory and returns the
// pack identities of every index file found. A missing pack directory is
// an empty result, not an error.
func ListIndexes(objectsDir string) ([]IndexRef, error) {
	packDir := filepath.Join(objectsDir, "pack")
	entries, err := os.ReadDir(packDir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan pack dir: %w", err)
	}
	var out []IndexRef
	for _, ent := range entries {
		name := ent.Name()
		if ent.IsDir() || !strings.HasPrefix(name, "pack-") || !strings.HasSuffix(name, ".idx") {
			continue
		}
		h, err := githash.FromHex(name[5 : len(name)-4])
		if err != nil {
			continue
		}
		out = append(out, IndexRef(h))
	}
	return out, nil
}
