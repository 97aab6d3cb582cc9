package objects

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/javanhut/muninn/codec"
	"github.com/javanhut/muninn/githash"
	"github.com/javanhut/muninn/giterr"
)

// Encoding is the optional charset declaration of a commit message.
// Restricted to alphanumerics, space, tab, hyphen and underscore.
type Encoding string

func isEncodingChar(c byte) bool {
	return c >= '0' && c <= '9' ||
		c >= 'a' && c <= 'z' ||
		c >= 'A' && c <= 'Z' ||
		c == ' ' || c == '\t' || c == '-' || c == '_'
}

// Valid reports whether the value is non-empty and within the charset.
func (e Encoding) Valid() bool {
	if len(e) == 0 {
		return false
	}
	for i := 0; i < len(e); i++ {
		if !isEncodingChar(e[i]) {
			return false
		}
	}
	return true
}

func decodeEncoding(b []byte) (Encoding, []byte, error) {
	b, err := codec.Tag(b, "encoding ")
	if err != nil {
		return "", nil, err
	}
	n := 0
	for n < len(b) && isEncodingChar(b[n]) {
		n++
	}
	if n == 0 {
		return "", nil, giterr.Parsef("empty encoding value")
	}
	return Encoding(b[:n]), b[n:], nil
}

// Extras holds the auxiliary commit headers that follow the committer (and
// optional encoding) lines. Keys are kept sorted; values are line lists,
// each line emitted as a continuation line prefixed by a single space.
type Extras struct {
	keys []string
	vals map[string][]string
}

// Len returns the number of keys.
func (x *Extras) Len() int { return len(x.keys) }

// Keys returns the keys in sorted order. The slice is shared.
func (x *Extras) Keys() []string { return x.keys }

// Get returns the value lines stored under key.
func (x *Extras) Get(key string) ([]string, bool) {
	v, ok := x.vals[key]
	return v, ok
}

// Set stores value lines under key, replacing any previous value and
// keeping the key order sorted.
func (x *Extras) Set(key string, lines ...string) {
	if x.vals == nil {
		x.vals = make(map[string][]string)
	}
	if _, ok := x.vals[key]; !ok {
		i := sort.SearchStrings(x.keys, key)
		x.keys = append(x.keys, "")
		copy(x.keys[i+1:], x.keys[i:])
		x.keys[i] = key
	}
	x.vals[key] = lines
}

func isExtraKeyChar(c byte) bool { return isEncodingChar(c) }

// Decode implements codec.Decoder: zero or more "key\n" records, each
// followed by continuation lines beginning with exactly one space.
func (x *Extras) Decode(b []byte) ([]byte, error) {
	for {
		n := 0
		for n < len(b) && isExtraKeyChar(b[n]) {
			n++
		}
		if n == 0 || n >= len(b) || b[n] != '\n' {
			return b, nil
		}
		key := string(b[:n])
		b = b[n+1:]
		var lines []string
		for len(b) > 0 && b[0] == ' ' {
			line, rest, err := codec.Until(b[1:], "\n")
			if err != nil {
				return nil, fmt.Errorf("extra %q continuation: %w", key, err)
			}
			lines = append(lines, string(line))
			b = rest
		}
		x.Set(key, lines...)
	}
}

// Encode implements codec.Encoder.
func (x *Extras) Encode(w io.Writer) (int, error) {
	total := 0
	for _, key := range x.keys {
		n, err := fmt.Fprintf(w, "%s\n", key)
		total += n
		if err != nil {
			return total, err
		}
		for _, line := range x.vals[key] {
			n, err := fmt.Fprintf(w, " %s\n", line)
			total += n
			if err != nil {
				return total, err
			}
		}
	}
	return total, nil
}

// EncodedSize implements codec.Encoder.
func (x *Extras) EncodedSize() int {
	sum := 0
	for _, key := range x.keys {
		sum += len(key) + 1
		for _, line := range x.vals[key] {
			sum += 1 + len(line) + 1
		}
	}
	return sum
}

// Commit ties a tree to its history: the tree id, the parent commit ids in
// mainline-first order, author and committer identities, an optional
// message encoding, auxiliary headers and the message itself. The message
// is everything after the blank header separator, preserved verbatim.
type Commit struct {
	Tree      TreeRef
	Parents   []CommitRef
	Author    Person
	Committer Person
	Encoding  Encoding // empty when absent
	Extras    Extras
	Message   string
}

// Kind implements Object.
func (c *Commit) Kind() Kind { return KindCommit }

func (c *Commit) payloadSize() int {
	sum := 5 + githash.HexSize + 1                  // "tree <hex>\n"
	sum += len(c.Parents) * (7 + githash.HexSize + 1) // "parent <hex>\n"
	sum += 7 + c.Author.EncodedSize() + 1
	sum += 10 + c.Committer.EncodedSize() + 1
	if c.Encoding != "" {
		sum += 9 + len(c.Encoding) + 1
	}
	sum += c.Extras.EncodedSize()
	sum += 1 // blank separator
	sum += len(c.Message)
	return sum
}

// String renders the unframed payload.
func (c *Commit) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "tree %s\n", c.Tree.Hex())
	for _, p := range c.Parents {
		fmt.Fprintf(&sb, "parent %s\n", p.Hex())
	}
	fmt.Fprintf(&sb, "author %s\ncommitter %s\n", c.Author, c.Committer)
	if c.Encoding != "" {
		fmt.Fprintf(&sb, "encoding %s\n", c.Encoding)
	}
	c.Extras.Encode(&sb)
	sb.WriteByte('\n')
	sb.WriteString(c.Message)
	return sb.String()
}

// DecodeCommit reads a framed commit ("commit <len>\0" then the header
// block and message) from the front of b.
func DecodeCommit(b []byte) (*Commit, []byte, error) {
	b, err := codec.Tag(b, "commit ")
	if err != nil {
		return nil, nil, err
	}
	size, b, err := codec.Digits(b)
	if err != nil {
		return nil, nil, fmt.Errorf("commit size: %w", err)
	}
	b, err = codec.Byte(b, 0)
	if err != nil {
		return nil, nil, fmt.Errorf("commit header: %w", err)
	}
	payload, rest, err := codec.Take(b, int(size))
	if err != nil {
		return nil, nil, fmt.Errorf("commit payload: %w", err)
	}

	c := &Commit{}
	p, err := codec.Tag(payload, "tree ")
	if err != nil {
		return nil, nil, err
	}
	treeHash, p, err := githash.DecodeHex(p)
	if err != nil {
		return nil, nil, fmt.Errorf("commit tree: %w", err)
	}
	c.Tree = NewTreeRef(treeHash)
	if p, err = codec.Byte(p, '\n'); err != nil {
		return nil, nil, err
	}
	for {
		after, err := codec.Tag(p, "parent ")
		if err != nil {
			break
		}
		h, after, err := githash.DecodeHex(after)
		if err != nil {
			return nil, nil, fmt.Errorf("commit parent: %w", err)
		}
		if after, err = codec.Byte(after, '\n'); err != nil {
			return nil, nil, err
		}
		c.Parents = append(c.Parents, NewCommitRef(h))
		p = after
	}
	if p, err = codec.Tag(p, "author "); err != nil {
		return nil, nil, err
	}
	if c.Author, p, err = DecodePerson(p); err != nil {
		return nil, nil, err
	}
	if p, err = codec.Byte(p, '\n'); err != nil {
		return nil, nil, err
	}
	if p, err = codec.Tag(p, "committer "); err != nil {
		return nil, nil, err
	}
	if c.Committer, p, err = DecodePerson(p); err != nil {
		return nil, nil, err
	}
	if p, err = codec.Byte(p, '\n'); err != nil {
		return nil, nil, err
	}
	if enc, after, err := decodeEncoding(p); err == nil {
		if after, err = codec.Byte(after, '\n'); err == nil {
			c.Encoding = enc
			p = after
		}
	}
	if p, err = c.Extras.Decode(p); err != nil {
		return nil, nil, err
	}
	if p, err = codec.Byte(p, '\n'); err != nil {
		return nil, nil, fmt.Errorf("commit message separator: %w", err)
	}
	c.Message = string(p)
	return c, rest, nil
}

// Decode implements codec.Decoder.
func (c *Commit) Decode(b []byte) ([]byte, error) {
	v, rest, err := DecodeCommit(b)
	if err != nil {
		return nil, err
	}
	*c = *v
	return rest, nil
}

// Encode implements codec.Encoder.
func (c *Commit) Encode(w io.Writer) (int, error) {
	payload := c.String()
	n, err := fmt.Fprintf(w, "commit %d\x00", len(payload))
	if err != nil {
		return n, err
	}
	m, err := io.WriteString(w, payload)
	return n + m, err
}

// EncodedSize implements codec.Encoder.
func (c *Commit) EncodedSize() int {
	n := c.payloadSize()
	return 7 + len(strconv.Itoa(n)) + 1 + n
}
