package repo

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/keelvcs/keel/pkg/object"
)

// Reference is a named pointer to an object identifier. Name is the
// full slash-separated form, e.g. "refs/heads/main".
type Reference struct {
	Name   string
	Target object.Oid
}

// ReferenceCollection is an enumerable view over the repository's
// references. It borrows the handle and is constructed once per
// Repository.
type ReferenceCollection struct {
	repo *Repository
}

// All enumerates every stored reference, sorted by name.
func (c *ReferenceCollection) All() ([]*Reference, error) {
	c.repo.ensureLive()

	root := filepath.Join(c.repo.storeDir, "refs")
	var refs []*Reference
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(c.repo.storeDir, path)
		if err != nil {
			return err
		}
		ref, err := readReference(path, filepath.ToSlash(rel))
		if err != nil {
			return err
		}
		refs = append(refs, ref)
		return nil
	})
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list refs: %w", err)
	}

	sort.Slice(refs, func(i, j int) bool { return refs[i].Name < refs[j].Name })
	return refs, nil
}

// Get returns the named reference. Name is the full "refs/..." form.
// A missing reference fails with ErrReferenceNotFound.
func (c *ReferenceCollection) Get(name string) (*Reference, error) {
	c.repo.ensureLive()

	path := filepath.Join(c.repo.storeDir, filepath.FromSlash(name))
	ref, err := readReference(path, name)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("ref %q: %w", name, ErrReferenceNotFound)
		}
		return nil, fmt.Errorf("ref %q: %w", name, err)
	}
	return ref, nil
}

// Head resolves the symbolic head pointer to its underlying commit
// identifier. For a symbolic HEAD the returned reference carries the
// target ref's name; for a detached HEAD the name is "HEAD". A
// symbolic target that does not exist yet fails with ErrUnbornHead.
func (c *ReferenceCollection) Head() (*Reference, error) {
	c.repo.ensureLive()

	data, err := os.ReadFile(filepath.Join(c.repo.storeDir, "HEAD"))
	if err != nil {
		return nil, fmt.Errorf("head: %w", err)
	}
	content := strings.TrimRight(string(data), "\n")

	if target, ok := strings.CutPrefix(content, "ref: "); ok {
		ref, err := c.Get(target)
		if err != nil {
			if errors.Is(err, ErrReferenceNotFound) {
				return nil, fmt.Errorf("head %q: %w", target, ErrUnbornHead)
			}
			return nil, err
		}
		return ref, nil
	}

	// Detached HEAD: the content is a raw identifier.
	id, err := object.ParseOid(content)
	if err != nil {
		return nil, fmt.Errorf("head: %w", err)
	}
	return &Reference{Name: "HEAD", Target: id}, nil
}

// Update points the named reference at target, creating it if absent.
// The write is atomic (temp file + rename). Parent directories are
// created as needed.
func (c *ReferenceCollection) Update(name string, target object.Oid) error {
	c.repo.ensureLive()

	refPath := filepath.Join(c.repo.storeDir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(refPath), 0o755); err != nil {
		return fmt.Errorf("update ref %q: mkdir: %w", name, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(refPath), ".ref-tmp-*")
	if err != nil {
		return fmt.Errorf("update ref %q: tmpfile: %w", name, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(target.String() + "\n"); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("update ref %q: write: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("update ref %q: close: %w", name, err)
	}
	if err := os.Rename(tmpName, refPath); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("update ref %q: rename: %w", name, err)
	}
	return nil
}

// readReference reads one loose ref file into a Reference.
func readReference(path, name string) (*Reference, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	id, err := object.ParseOid(strings.TrimSpace(string(data)))
	if err != nil {
		return nil, err
	}
	return &Reference{Name: name, Target: id}, nil
}
