package object

import (
	"strings"
	"testing"
	"time"
)

func testSig() Signature {
	return Signature{
		Name:  "Ada Lovelace",
		Email: "ada@example.com",
		When:  time.Unix(1700000000, 0).In(time.FixedZone("", -7*3600)),
	}
}

func mustOid(t *testing.T, hex string) Oid {
	t.Helper()
	id, err := ParseOid(hex)
	if err != nil {
		t.Fatalf("ParseOid(%q): %v", hex, err)
	}
	return id
}

// Test 1: signature format/parse round trip preserves identity and
// the recorded instant with its offset.
func TestSignature_RoundTrip(t *testing.T) {
	sig := testSig()
	formatted := FormatSignature(sig)
	if formatted != "Ada Lovelace <ada@example.com> 1700000000 -0700" {
		t.Fatalf("FormatSignature = %q", formatted)
	}

	parsed, err := ParseSignature(formatted)
	if err != nil {
		t.Fatalf("ParseSignature: %v", err)
	}
	if parsed.Name != sig.Name || parsed.Email != sig.Email {
		t.Errorf("parsed identity = %q <%q>", parsed.Name, parsed.Email)
	}
	if parsed.When.Unix() != sig.When.Unix() {
		t.Errorf("parsed time = %d, want %d", parsed.When.Unix(), sig.When.Unix())
	}
	if FormatSignature(parsed) != formatted {
		t.Errorf("reformat = %q, want %q", FormatSignature(parsed), formatted)
	}
}

// Test 2: commit round trip with parents and a multi-line message.
func TestCommit_RoundTrip(t *testing.T) {
	c := &CommitData{
		TreeID: mustOid(t, "1111111111111111111111111111111111111111"),
		ParentIDs: []Oid{
			mustOid(t, "2222222222222222222222222222222222222222"),
			mustOid(t, "3333333333333333333333333333333333333333"),
		},
		Author:    testSig(),
		Committer: testSig(),
		Message:   "merge feature\n\nlonger body\n",
	}

	parsed, err := UnmarshalCommit(MarshalCommit(c))
	if err != nil {
		t.Fatalf("UnmarshalCommit: %v", err)
	}
	if parsed.TreeID != c.TreeID {
		t.Errorf("TreeID = %s, want %s", parsed.TreeID, c.TreeID)
	}
	if len(parsed.ParentIDs) != 2 || parsed.ParentIDs[0] != c.ParentIDs[0] || parsed.ParentIDs[1] != c.ParentIDs[1] {
		t.Errorf("ParentIDs = %v", parsed.ParentIDs)
	}
	if parsed.Message != c.Message {
		t.Errorf("Message = %q, want %q", parsed.Message, c.Message)
	}
	if parsed.Author.Email != "ada@example.com" {
		t.Errorf("Author = %+v", parsed.Author)
	}
}

// Test 3: tree entries serialize sorted by name and round trip.
func TestTree_RoundTripSorted(t *testing.T) {
	tr := &TreeData{Entries: []TreeEntry{
		{Name: "zebra.go", Mode: TreeModeFile, ID: mustOid(t, "2222222222222222222222222222222222222222")},
		{Name: "alpha", Mode: TreeModeDir, ID: mustOid(t, "1111111111111111111111111111111111111111")},
		{Name: "run.sh", Mode: TreeModeExecutable, ID: mustOid(t, "3333333333333333333333333333333333333333")},
	}}

	parsed, err := UnmarshalTree(MarshalTree(tr))
	if err != nil {
		t.Fatalf("UnmarshalTree: %v", err)
	}
	if len(parsed.Entries) != 3 {
		t.Fatalf("Entries = %d, want 3", len(parsed.Entries))
	}
	names := []string{parsed.Entries[0].Name, parsed.Entries[1].Name, parsed.Entries[2].Name}
	if names[0] != "alpha" || names[1] != "run.sh" || names[2] != "zebra.go" {
		t.Errorf("entry order = %v, want sorted", names)
	}
	if parsed.Entries[0].Mode != TreeModeDir {
		t.Errorf("alpha mode = %q", parsed.Entries[0].Mode)
	}
}

// Test 4: empty tree round-trips to zero entries.
func TestTree_Empty(t *testing.T) {
	parsed, err := UnmarshalTree(MarshalTree(&TreeData{}))
	if err != nil {
		t.Fatalf("UnmarshalTree: %v", err)
	}
	if len(parsed.Entries) != 0 {
		t.Errorf("Entries = %d, want 0", len(parsed.Entries))
	}
}

// Test 5: tag round trip preserves target type and message.
func TestTag_RoundTrip(t *testing.T) {
	tag := &TagData{
		TargetID:   mustOid(t, "4444444444444444444444444444444444444444"),
		TargetType: TypeCommit,
		Name:       "v1.0.0",
		Tagger:     testSig(),
		Message:    "first release\n",
	}

	parsed, err := UnmarshalTag(MarshalTag(tag))
	if err != nil {
		t.Fatalf("UnmarshalTag: %v", err)
	}
	if parsed.TargetID != tag.TargetID || parsed.TargetType != TypeCommit {
		t.Errorf("target = %s %s", parsed.TargetID, parsed.TargetType)
	}
	if parsed.Name != "v1.0.0" || parsed.Message != "first release\n" {
		t.Errorf("tag = %q message %q", parsed.Name, parsed.Message)
	}
}

// Test 6: malformed payloads are rejected, not misparsed.
func TestUnmarshal_Malformed(t *testing.T) {
	if _, err := UnmarshalCommit([]byte("tree abc")); err == nil {
		t.Errorf("UnmarshalCommit without separator: want error")
	}
	if _, err := UnmarshalCommit([]byte("tree notahash\n\nmsg")); err == nil {
		t.Errorf("UnmarshalCommit with bad tree hash: want error")
	}
	if _, err := UnmarshalCommit([]byte("bogus value\n\nmsg")); err == nil ||
		!strings.Contains(err.Error(), "unknown header key") {
		t.Errorf("UnmarshalCommit with unknown key: got %v", err)
	}
	if _, err := UnmarshalTree([]byte("100644 onlytwo\n")); err == nil {
		t.Errorf("UnmarshalTree with short entry: want error")
	}
	if _, err := UnmarshalTag([]byte("object abc")); err == nil {
		t.Errorf("UnmarshalTag without separator: want error")
	}
}

// Test 7: type names map both ways; wildcard and invalid are not
// storable.
func TestType_Mapping(t *testing.T) {
	for _, typ := range []Type{TypeCommit, TypeTree, TypeBlob, TypeTag} {
		back, err := TypeFromName(typ.String())
		if err != nil {
			t.Fatalf("TypeFromName(%s): %v", typ, err)
		}
		if back != typ {
			t.Errorf("TypeFromName(%s) = %d, want %d", typ, back, typ)
		}
		if !typ.Storable() {
			t.Errorf("%s: Storable() = false", typ)
		}
	}

	if TypeAny.Storable() || TypeInvalid.Storable() {
		t.Errorf("wildcard/invalid types report storable")
	}
	if _, err := TypeFromName("any"); err == nil {
		t.Errorf("TypeFromName(any): want error, wildcard is not storable")
	}
	if _, err := TypeFromName("gadget"); err == nil {
		t.Errorf("TypeFromName(gadget): want error")
	}
}
