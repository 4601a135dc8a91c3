package repo

import (
	"testing"
	"time"

	"github.com/keelvcs/keel/pkg/object"
)

// newTestRepo creates and opens a fresh repository in a temp dir.
func newTestRepo(t *testing.T) *Repository {
	t.Helper()
	r, err := Open(t.TempDir(), &Options{CreateIfMissing: true})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(r.Free)
	return r
}

func testSig() object.Signature {
	return object.Signature{
		Name:  "Test Author",
		Email: "test@example.com",
		When:  time.Unix(1700000000, 0).UTC(),
	}
}

// writeTestBlob stores a blob and returns its identifier.
func writeTestBlob(t *testing.T, r *Repository, contents string) object.Oid {
	t.Helper()
	id, err := r.Database().Write(object.TypeBlob, []byte(contents))
	if err != nil {
		t.Fatalf("write blob: %v", err)
	}
	return id
}

// writeTestTree stores a single-file tree over the given blob.
func writeTestTree(t *testing.T, r *Repository, blobID object.Oid) object.Oid {
	t.Helper()
	tree := &object.TreeData{Entries: []object.TreeEntry{
		{Name: "file.txt", Mode: object.TreeModeFile, ID: blobID},
	}}
	id, err := r.Database().Write(object.TypeTree, object.MarshalTree(tree))
	if err != nil {
		t.Fatalf("write tree: %v", err)
	}
	return id
}

// writeTestCommit stores a commit whose tree wraps a blob holding msg.
func writeTestCommit(t *testing.T, r *Repository, parents []object.Oid, msg string) object.Oid {
	t.Helper()
	treeID := writeTestTree(t, r, writeTestBlob(t, r, msg))
	c := &object.CommitData{
		TreeID:    treeID,
		ParentIDs: parents,
		Author:    testSig(),
		Committer: testSig(),
		Message:   msg,
	}
	id, err := r.Database().Write(object.TypeCommit, object.MarshalCommit(c))
	if err != nil {
		t.Fatalf("write commit: %v", err)
	}
	return id
}

// setBranch points refs/heads/<name> at id.
func setBranch(t *testing.T, r *Repository, name string, id object.Oid) {
	t.Helper()
	if err := r.References().Update("refs/heads/"+name, id); err != nil {
		t.Fatalf("update ref %s: %v", name, err)
	}
}
