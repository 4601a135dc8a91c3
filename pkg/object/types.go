package object

import (
	"fmt"
	"time"
)

// Type identifies the kind of object stored. The numeric values are the
// store's native discriminant tags and must not be renumbered.
type Type int8

const (
	// TypeAny is a lookup-time wildcard. It is never stored.
	TypeAny Type = -2
	// TypeInvalid is the sentinel for unrecognized tags.
	TypeInvalid Type = -1

	TypeCommit Type = 1
	TypeTree   Type = 2
	TypeBlob   Type = 3
	TypeTag    Type = 4
)

// String returns the storage name of the type ("commit", "tree", ...).
func (t Type) String() string {
	switch t {
	case TypeAny:
		return "any"
	case TypeCommit:
		return "commit"
	case TypeTree:
		return "tree"
	case TypeBlob:
		return "blob"
	case TypeTag:
		return "tag"
	}
	return "invalid"
}

// Storable reports whether t names a concrete storable variant, as
// opposed to the Any wildcard or an invalid tag.
func (t Type) Storable() bool {
	switch t {
	case TypeCommit, TypeTree, TypeBlob, TypeTag:
		return true
	}
	return false
}

// TypeFromName maps a storage name back to its Type.
func TypeFromName(name string) (Type, error) {
	switch name {
	case "commit":
		return TypeCommit, nil
	case "tree":
		return TypeTree, nil
	case "blob":
		return TypeBlob, nil
	case "tag":
		return TypeTag, nil
	}
	return TypeInvalid, fmt.Errorf("unknown object type %q", name)
}

// Signature is the author/committer/tagger identity stamp on a commit
// or tag.
type Signature struct {
	Name  string
	Email string
	When  time.Time
}

// CommitData is the parsed payload of a commit object.
type CommitData struct {
	TreeID    Oid
	ParentIDs []Oid
	Author    Signature
	Committer Signature
	Message   string
}

// Tree mode constants compatible with Git's canonical mode strings.
const (
	TreeModeDir        = "40000"
	TreeModeFile       = "100644"
	TreeModeExecutable = "100755"
	TreeModeSymlink    = "120000"
)

// TreeEntry is one entry in a tree object.
type TreeEntry struct {
	Name string
	Mode string
	ID   Oid
}

// TreeData is the parsed payload of a tree object. Entries are sorted
// by Name.
type TreeData struct {
	Entries []TreeEntry
}

// TagData is the parsed payload of an annotated tag object.
type TagData struct {
	TargetID   Oid
	TargetType Type
	Name       string
	Tagger     Signature
	Message    string
}

// BlobData is the payload of a blob object: raw file bytes.
type BlobData struct {
	Contents []byte
}
