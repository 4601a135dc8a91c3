package repo

import (
	"fmt"

	"github.com/keelvcs/keel/pkg/object"
	"github.com/keelvcs/keel/pkg/odb"
)

// Object is one stored object variant: *Commit, *Tree, *Blob, or *Tag.
// Every object carries its identifier and a borrowed reference to the
// owning Repository; it never owns the handle, and using it after the
// owner is freed is a contract violation.
type Object interface {
	ID() object.Oid
	Type() object.Type
	Owner() *Repository
}

type baseObject struct {
	id    object.Oid
	owner *Repository
}

func (o *baseObject) ID() object.Oid     { return o.id }
func (o *baseObject) Owner() *Repository { return o.owner }

// Commit is a looked-up commit object.
type Commit struct {
	baseObject
	object.CommitData
}

func (c *Commit) Type() object.Type { return object.TypeCommit }

// Tree looks up the commit's root tree through the owning repository.
func (c *Commit) Tree() (*Tree, error) {
	return LookupAs[*Tree](c.owner, c.TreeID)
}

// ParentCount returns the number of parent commits.
func (c *Commit) ParentCount() int { return len(c.ParentIDs) }

// Parent looks up the i-th parent commit.
func (c *Commit) Parent(i int) (*Commit, error) {
	if i < 0 || i >= len(c.ParentIDs) {
		return nil, fmt.Errorf("commit %s: no parent %d", c.id, i)
	}
	return LookupAs[*Commit](c.owner, c.ParentIDs[i])
}

// Tree is a looked-up tree object.
type Tree struct {
	baseObject
	object.TreeData
}

func (t *Tree) Type() object.Type { return object.TypeTree }

// EntryCount returns the number of entries.
func (t *Tree) EntryCount() int { return len(t.Entries) }

// EntryByName returns the named entry, or nil when absent.
func (t *Tree) EntryByName(name string) *object.TreeEntry {
	for i := range t.Entries {
		if t.Entries[i].Name == name {
			return &t.Entries[i]
		}
	}
	return nil
}

// Blob is a looked-up blob object.
type Blob struct {
	baseObject
	object.BlobData
}

func (b *Blob) Type() object.Type { return object.TypeBlob }

// Size returns the blob's content length in bytes.
func (b *Blob) Size() int64 { return int64(len(b.Contents)) }

// Tag is a looked-up annotated tag object.
type Tag struct {
	baseObject
	object.TagData
}

func (t *Tag) Type() object.Type { return object.TypeTag }

// Target looks up the tagged object through the owning repository.
func (t *Tag) Target() (Object, error) {
	return t.owner.Lookup(t.TargetID, t.TargetType)
}

// typeFor maps a requested result type to the store's native
// discriminant. The table is closed; requesting an unregistered type
// is a programming error and panics. The Object interface itself maps
// to the Any wildcard.
func typeFor[T Object]() object.Type {
	var zero T
	switch any(zero).(type) {
	case *Commit:
		return object.TypeCommit
	case *Tree:
		return object.TypeTree
	case *Blob:
		return object.TypeBlob
	case *Tag:
		return object.TypeTag
	case nil:
		return object.TypeAny
	default:
		panic(fmt.Sprintf("keel: unregistered object type %T", zero))
	}
}

// wrap constructs the typed wrapper variant for a raw lookup result.
func (r *Repository) wrap(raw *odb.Raw) (Object, error) {
	base := baseObject{id: raw.ID, owner: r}
	switch raw.Type {
	case object.TypeCommit:
		data, err := object.UnmarshalCommit(raw.Data)
		if err != nil {
			return nil, fmt.Errorf("lookup %s: %w", raw.ID, err)
		}
		return &Commit{baseObject: base, CommitData: *data}, nil
	case object.TypeTree:
		data, err := object.UnmarshalTree(raw.Data)
		if err != nil {
			return nil, fmt.Errorf("lookup %s: %w", raw.ID, err)
		}
		return &Tree{baseObject: base, TreeData: *data}, nil
	case object.TypeBlob:
		data, err := object.UnmarshalBlob(raw.Data)
		if err != nil {
			return nil, fmt.Errorf("lookup %s: %w", raw.ID, err)
		}
		return &Blob{baseObject: base, BlobData: *data}, nil
	case object.TypeTag:
		data, err := object.UnmarshalTag(raw.Data)
		if err != nil {
			return nil, fmt.Errorf("lookup %s: %w", raw.ID, err)
		}
		return &Tag{baseObject: base, TagData: *data}, nil
	}
	return nil, fmt.Errorf("lookup %s: unrecognized stored type %d", raw.ID, raw.Type)
}
