package objects

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/javanhut/muninn/githash"
)

func mustHash(t *testing.T, hex string) githash.Hash {
	t.Helper()
	h, err := githash.FromHex(hex)
	if err != nil {
		t.Fatalf("bad test hash %q: %v", hex, err)
	}
	return h
}

func sampleTree(t *testing.T) *Tree {
	t.Helper()
	blobHash := mustHash(t, "2aae6c35c94fcfb415dbe95f408b9ce91ee846ed")
	treeHash := mustHash(t, "3351570ee30575ccfc99b2ef17348515c54289e8")
	tr := NewTree()
	if err := tr.Insert(NewBlobEnt(Permissions{User: NewPermissionSet(Read, Write), Group: NewPermissionSet(Read), Other: NewPermissionSet(Read)}, "README.md", NewBlobRef(blobHash))); err != nil {
		t.Fatalf("Insert blob entry: %v", err)
	}
	if err := tr.Insert(NewTreeEnt(Permissions{}, "src", NewTreeRef(treeHash))); err != nil {
		t.Fatalf("Insert tree entry: %v", err)
	}
	return tr
}

func TestTreeEncodeLayout(t *testing.T) {
	tr := sampleTree(t)
	blobHash := mustHash(t, "2aae6c35c94fcfb415dbe95f408b9ce91ee846ed")
	treeHash := mustHash(t, "3351570ee30575ccfc99b2ef17348515c54289e8")

	var want bytes.Buffer
	payload := "100644 README.md\x00" + string(blobHash.Bytes()) +
		"40000 src\x00" + string(treeHash.Bytes())
	fmt.Fprintf(&want, "tree %d\x00%s", len(payload), payload)

	var got bytes.Buffer
	n, err := tr.Encode(&got)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if !bytes.Equal(got.Bytes(), want.Bytes()) {
		t.Errorf("Encode = %q, want %q", got.Bytes(), want.Bytes())
	}
	if n != want.Len() || tr.EncodedSize() != want.Len() {
		t.Errorf("size bookkeeping: wrote %d, EncodedSize %d, want %d", n, tr.EncodedSize(), want.Len())
	}
}

func TestTreeRoundTrip(t *testing.T) {
	tr := sampleTree(t)
	var buf bytes.Buffer
	tr.Encode(&buf)
	encoded := append([]byte(nil), buf.Bytes()...)

	decoded, rest, err := DecodeTree(encoded)
	if err != nil {
		t.Fatalf("DecodeTree failed: %v", err)
	}
	if len(rest) != 0 {
		t.Fatalf("left %d bytes unread", len(rest))
	}
	var again bytes.Buffer
	decoded.Encode(&again)
	if !bytes.Equal(again.Bytes(), encoded) {
		t.Error("decode/encode should reproduce the source bytes")
	}
}

func TestTreeEntryOrderAndKinds(t *testing.T) {
	tr := sampleTree(t)
	ents := tr.Entries()
	if len(ents) != 2 {
		t.Fatalf("Len = %d, want 2", len(ents))
	}
	// ascending name order: "README.md" < "src"
	if ents[0].Name != "README.md" || ents[1].Name != "src" {
		t.Errorf("entries out of order: %q, %q", ents[0].Name, ents[1].Name)
	}
	if _, ok := ents[0].Blob(); !ok {
		t.Error("README.md should be a blob entry")
	}
	if _, ok := ents[0].Tree(); ok {
		t.Error("README.md should not be a tree entry")
	}
	if _, ok := ents[1].Tree(); !ok {
		t.Error("src should be a tree entry")
	}
}

func TestTreeInsertDuplicateRejected(t *testing.T) {
	tr := sampleTree(t)
	h := mustHash(t, "48234be6fe82eebd92f70a8add2a1fbab64f6707")
	err := tr.Insert(NewBlobEnt(Permissions{}, "src", NewBlobRef(h)))
	if err == nil {
		t.Fatal("inserting a duplicate name should be rejected")
	}
	if tr.Len() != 2 {
		t.Errorf("Len = %d after rejected insert, want 2", tr.Len())
	}
}

func TestTreeGet(t *testing.T) {
	tr := sampleTree(t)
	e, ok := tr.Get("src")
	if !ok || e.Name != "src" {
		t.Errorf("Get(src) = (%v, %v)", e, ok)
	}
	if _, ok := tr.Get("missing"); ok {
		t.Error("Get(missing) should report absence")
	}
}

func TestEmptyTree(t *testing.T) {
	tr := NewTree()
	var buf bytes.Buffer
	tr.Encode(&buf)
	if buf.String() != "tree 0\x00" {
		t.Errorf("empty tree encodes as %q", buf.Bytes())
	}
	decoded, _, err := DecodeTree(buf.Bytes())
	if err != nil {
		t.Fatalf("DecodeTree failed: %v", err)
	}
	if decoded.Len() != 0 {
		t.Errorf("decoded empty tree has %d entries", decoded.Len())
	}
}

func TestTreeEntModeNotMisread(t *testing.T) {
	// "10" must win over "1"+"0...": a file entry's permissions begin right
	// after the two mode digits.
	h := mustHash(t, "2aae6c35c94fcfb415dbe95f408b9ce91ee846ed")
	raw := "100755 run.sh\x00" + string(h.Bytes())
	e, rest, err := DecodeTreeEnt([]byte(raw))
	if err != nil {
		t.Fatalf("DecodeTreeEnt failed: %v", err)
	}
	if len(rest) != 0 {
		t.Fatalf("left %q unread", rest)
	}
	if e.Kind != EntBlob {
		t.Error("mode prefix 10 is a regular file")
	}
	if !e.Perms.User.Has(Executable) {
		t.Error("permissions should carry the executable bit")
	}
}
