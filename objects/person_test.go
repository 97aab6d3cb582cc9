package objects

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestPersonDecodeEncode(t *testing.T) {
	in := "Kevin Flynn <kev@flynn.io> 1464729412 +0100"
	p, rest, err := DecodePerson([]byte(in))
	if err != nil {
		t.Fatalf("DecodePerson failed: %v", err)
	}
	if len(rest) != 0 {
		t.Fatalf("left %q unread", rest)
	}
	want := NewPerson("Kevin Flynn", "kev@flynn.io", NewDate(1464729412, 3600))
	if diff := cmp.Diff(want, p); diff != "" {
		t.Errorf("decoded person mismatch (-want +got):\n%s", diff)
	}

	var buf bytes.Buffer
	n, err := p.Encode(&buf)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if buf.String() != in {
		t.Errorf("Encode = %q, want %q", buf.String(), in)
	}
	if n != len(in) || p.EncodedSize() != len(in) {
		t.Errorf("size bookkeeping: wrote %d, EncodedSize %d, want %d", n, p.EncodedSize(), len(in))
	}
}

func TestPersonNoEmailValidation(t *testing.T) {
	// the codec does not care what the email looks like
	in := "x <not an email at all> 0 +0000"
	p, _, err := DecodePerson([]byte(in))
	if err != nil {
		t.Fatalf("DecodePerson failed: %v", err)
	}
	if p.Email != "not an email at all" {
		t.Errorf("email = %q", p.Email)
	}
}

func TestPersonDecodeRejects(t *testing.T) {
	for _, bad := range []string{"", "name only", "name <email 123 +0000"} {
		if _, _, err := DecodePerson([]byte(bad)); err == nil {
			t.Errorf("DecodePerson(%q) should fail", bad)
		}
	}
}
