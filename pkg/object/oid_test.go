package object

import (
	"errors"
	"strings"
	"testing"
)

// Test 1: parse/format round-trips through canonical lowercase hex.
func TestOid_ParseRoundTrip(t *testing.T) {
	cases := []string{
		"0000000000000000000000000000000000000000",
		"da39a3ee5e6b4b0d3255bfef95601890afd80709",
		"ffffffffffffffffffffffffffffffffffffffff",
		"0123456789abcdef0123456789abcdef01234567",
	}
	for _, hex := range cases {
		id, err := ParseOid(hex)
		if err != nil {
			t.Fatalf("ParseOid(%q): %v", hex, err)
		}
		if got := id.String(); got != hex {
			t.Errorf("ParseOid(%q).String() = %q, want %q", hex, got, hex)
		}
	}
}

// Test 2: uppercase input parses; the canonical form is lowercase.
func TestOid_ParseUppercase(t *testing.T) {
	upper := "DA39A3EE5E6B4B0D3255BFEF95601890AFD80709"
	id, err := ParseOid(upper)
	if err != nil {
		t.Fatalf("ParseOid(%q): %v", upper, err)
	}
	if got := id.String(); got != strings.ToLower(upper) {
		t.Errorf("String() = %q, want lowercase %q", got, strings.ToLower(upper))
	}
}

// Test 3: wrong length, bad charset, and empty input all fail with
// ErrMalformedIdentifier.
func TestOid_ParseMalformed(t *testing.T) {
	cases := []string{
		"",
		"abc",
		"da39a3ee5e6b4b0d3255bfef95601890afd8070",    // 39 chars
		"da39a3ee5e6b4b0d3255bfef95601890afd807090a", // 42 chars
		"zz39a3ee5e6b4b0d3255bfef95601890afd80709",   // bad charset
		"da39a3ee5e6b4b0d3255bfef95601890afd8070g",   // bad final char
	}
	for _, hex := range cases {
		if _, err := ParseOid(hex); !errors.Is(err, ErrMalformedIdentifier) {
			t.Errorf("ParseOid(%q) = %v, want ErrMalformedIdentifier", hex, err)
		}
	}
}

// Test 4: equality is value equality, ordering is byte-wise.
func TestOid_CompareAndEquality(t *testing.T) {
	a, _ := ParseOid("0000000000000000000000000000000000000001")
	b, _ := ParseOid("0000000000000000000000000000000000000002")
	a2, _ := ParseOid("0000000000000000000000000000000000000001")

	if a != a2 {
		t.Errorf("equal identifiers compare unequal")
	}
	if a.Compare(b) != -1 {
		t.Errorf("a.Compare(b) = %d, want -1", a.Compare(b))
	}
	if b.Compare(a) != 1 {
		t.Errorf("b.Compare(a) = %d, want 1", b.Compare(a))
	}
	if a.Compare(a2) != 0 {
		t.Errorf("a.Compare(a2) = %d, want 0", a.Compare(a2))
	}
}

// Test 5: IsZero distinguishes the zero identifier.
func TestOid_IsZero(t *testing.T) {
	var zero Oid
	if !zero.IsZero() {
		t.Errorf("zero Oid: IsZero() = false")
	}
	id, _ := ParseOid("da39a3ee5e6b4b0d3255bfef95601890afd80709")
	if id.IsZero() {
		t.Errorf("nonzero Oid: IsZero() = true")
	}
}

// Test 6: OidFromBytes requires exactly OidSize bytes.
func TestOid_FromBytes(t *testing.T) {
	b := make([]byte, OidSize)
	b[OidSize-1] = 0x7f
	id, err := OidFromBytes(b)
	if err != nil {
		t.Fatalf("OidFromBytes: %v", err)
	}
	if id.String() != "000000000000000000000000000000000000007f" {
		t.Errorf("OidFromBytes = %s", id)
	}

	if _, err := OidFromBytes(b[:19]); !errors.Is(err, ErrMalformedIdentifier) {
		t.Errorf("OidFromBytes(19 bytes) = %v, want ErrMalformedIdentifier", err)
	}
}

// Test 7: HashObject is deterministic and depends on the type tag.
func TestHashObject(t *testing.T) {
	data := []byte("hello world\n")
	asBlob := HashObject(TypeBlob, data)
	asBlob2 := HashObject(TypeBlob, data)
	asCommit := HashObject(TypeCommit, data)

	if asBlob != asBlob2 {
		t.Errorf("HashObject not deterministic: %s vs %s", asBlob, asBlob2)
	}
	if asBlob == asCommit {
		t.Errorf("HashObject ignores type tag: %s", asBlob)
	}
	if asBlob.IsZero() {
		t.Errorf("HashObject returned zero identifier")
	}
}
