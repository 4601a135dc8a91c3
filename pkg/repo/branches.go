package repo

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const branchRefPrefix = "refs/heads/"

// Branch is a branch-shaped reference. Name is the short form
// ("main"), Ref the underlying reference.
type Branch struct {
	Name string
	Ref  *Reference
}

// BranchCollection is an enumerable view layered over References,
// filtered to branch-shaped references. It borrows the handle and is
// constructed once per Repository.
type BranchCollection struct {
	repo *Repository
}

// All enumerates the branches, sorted by name.
func (c *BranchCollection) All() ([]*Branch, error) {
	refs, err := c.repo.References().All()
	if err != nil {
		return nil, fmt.Errorf("list branches: %w", err)
	}

	var branches []*Branch
	for _, ref := range refs {
		if name, ok := strings.CutPrefix(ref.Name, branchRefPrefix); ok {
			branches = append(branches, &Branch{Name: name, Ref: ref})
		}
	}
	return branches, nil
}

// Get returns the named branch (short name), or ErrReferenceNotFound.
func (c *BranchCollection) Get(name string) (*Branch, error) {
	ref, err := c.repo.References().Get(branchRefPrefix + name)
	if err != nil {
		return nil, err
	}
	return &Branch{Name: name, Ref: ref}, nil
}

// Current returns the branch HEAD symbolically points at, or "" when
// HEAD is detached. The branch itself may be unborn (no commits yet).
func (c *BranchCollection) Current() (string, error) {
	c.repo.ensureLive()

	data, err := os.ReadFile(filepath.Join(c.repo.storeDir, "HEAD"))
	if err != nil {
		return "", fmt.Errorf("current branch: %w", err)
	}
	content := strings.TrimRight(string(data), "\n")

	if target, ok := strings.CutPrefix(content, "ref: "); ok {
		if name, ok := strings.CutPrefix(target, branchRefPrefix); ok {
			return name, nil
		}
	}
	return "", nil
}
