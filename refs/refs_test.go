package refs

import (
	"errors"
	"testing"

	"github.com/javanhut/muninn/githash"
	"github.com/javanhut/muninn/giterr"
)

func allSpecRefs() []SpecRef {
	return []SpecRef{
		Tag("v-1.1"),
		Branch("master"),
		Branch("dev/stage"),
		Remote("origin", "master"),
		Remote("origin", "feature/x"),
		Patch("patch-file"),
		Stash(),
		Head(),
		OriginHead(),
		FetchHead(),
	}
}

func TestSpecRefEncodeDecode(t *testing.T) {
	for _, sr := range allSpecRefs() {
		s := sr.String()
		parsed, err := ParseSpecRef(s)
		if err != nil {
			t.Errorf("ParseSpecRef(%q) failed: %v", s, err)
			continue
		}
		if parsed != sr {
			t.Errorf("ParseSpecRef(%q) = %v, want %v", s, parsed, sr)
		}
		if parsed.String() != s {
			t.Errorf("String() = %q, want %q", parsed.String(), s)
		}
	}
}

func TestSpecRefPaths(t *testing.T) {
	cases := map[string]SpecRef{
		"refs/tags/v1":            Tag("v1"),
		"refs/heads/master":       Branch("master"),
		"refs/remotes/origin/dev": Remote("origin", "dev"),
		"refs/patches/p1":         Patch("p1"),
		"refs/stash":              Stash(),
		"HEAD":                    Head(),
		"ORIG_HEAD":               OriginHead(),
		"FETCH_HEAD":              FetchHead(),
	}
	for path, want := range cases {
		if want.Path() != path {
			t.Errorf("Path() = %q, want %q", want.Path(), path)
		}
	}
}

func TestSpecRefTrailingWhitespace(t *testing.T) {
	sr, err := ParseSpecRef("refs/heads/master\n")
	if err != nil {
		t.Fatalf("ParseSpecRef failed: %v", err)
	}
	if sr != Branch("master") {
		t.Errorf("parsed = %v", sr)
	}
}

func TestSpecRefRejects(t *testing.T) {
	for _, bad := range []string{
		"",
		"foo",
		"refs",
		"refs/unknown/x",
		"refs/heads",
		"refs/remotes/origin",
		"HEAD/extra",
	} {
		if _, err := ParseSpecRef(bad); err == nil {
			t.Errorf("ParseSpecRef(%q) should fail", bad)
		}
	}
	_, err := ParseSpecRef("nonsense")
	var ir *giterr.InvalidRef
	if !errors.As(err, &ir) {
		t.Errorf("error should be InvalidRef, got %v", err)
	}
}

func TestRefParseHash(t *testing.T) {
	hex := "2aae6c35c94fcfb415dbe95f408b9ce91ee846ed"
	r, err := ParseRef(hex + "\n")
	if err != nil {
		t.Fatalf("ParseRef failed: %v", err)
	}
	h, ok := r.Hash()
	if !ok || h.Hex() != hex {
		t.Errorf("Hash() = (%v, %v)", h, ok)
	}
	if r.IsLink() {
		t.Error("a hash ref is not a link")
	}
	if r.Path() != "objects/2a/ae6c35c94fcfb415dbe95f408b9ce91ee846ed" {
		t.Errorf("Path() = %q", r.Path())
	}
}

func TestRefParseLink(t *testing.T) {
	r, err := ParseRef("ref: refs/heads/master\n")
	if err != nil {
		t.Fatalf("ParseRef failed: %v", err)
	}
	link, ok := r.Link()
	if !ok || link != Branch("master") {
		t.Errorf("Link() = (%v, %v)", link, ok)
	}
	if r.String() != "ref: refs/heads/master" {
		t.Errorf("String() = %q", r.String())
	}
	if r.Path() != "refs/heads/master" {
		t.Errorf("Path() = %q", r.Path())
	}
}

func TestRefEncodeDecode(t *testing.T) {
	cases := []Ref{
		HashRef(githash.Sum([]byte("x"))),
		LinkRef(Branch("master")),
		LinkRef(Remote("origin", "master")),
		LinkRef(Head()),
	}
	for _, r := range cases {
		parsed, err := ParseRef(r.String())
		if err != nil {
			t.Errorf("ParseRef(%q) failed: %v", r.String(), err)
			continue
		}
		if parsed != r {
			t.Errorf("ParseRef(%q) = %v, want %v", r.String(), parsed, r)
		}
	}
}

func TestRefParseRejects(t *testing.T) {
	for _, bad := range []string{"", "not a hash", "ref: bogus", "2aae"} {
		if _, err := ParseRef(bad); err == nil {
			t.Errorf("ParseRef(%q) should fail", bad)
		}
	}
}
