package repo

import (
	"errors"
	"fmt"
	"io"

	"github.com/keelvcs/keel/pkg/object"
)

// CommitCollection is the commit history view. It is live, not a
// snapshot: Walk and List re-resolve HEAD on every call, so two
// traversals separated by a head update start at different commits.
type CommitCollection struct {
	repo *Repository
}

// Walk starts a history traversal rooted at the current head. On a
// repository with no commits yet the walker is empty.
func (c *CommitCollection) Walk() (*CommitWalker, error) {
	c.repo.ensureLive()

	head, err := c.repo.References().Head()
	if err != nil {
		if errors.Is(err, ErrUnbornHead) {
			return &CommitWalker{repo: c.repo}, nil
		}
		return nil, fmt.Errorf("commits: %w", err)
	}

	return &CommitWalker{
		repo:  c.repo,
		stack: []object.Oid{head.Target},
		seen:  make(map[object.Oid]struct{}),
	}, nil
}

// List returns up to limit commits from a fresh traversal. A
// non-positive limit means no bound.
func (c *CommitCollection) List(limit int) ([]*Commit, error) {
	w, err := c.Walk()
	if err != nil {
		return nil, err
	}

	var out []*Commit
	for limit <= 0 || len(out) < limit {
		commit, err := w.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		out = append(out, commit)
	}
	return out, nil
}

// CommitWalker traverses history from a fixed starting point,
// following all parents with a seen set so merged history is visited
// once. Next returns io.EOF when the traversal is exhausted.
type CommitWalker struct {
	repo  *Repository
	stack []object.Oid
	seen  map[object.Oid]struct{}
}

// Next returns the next commit in the traversal.
func (w *CommitWalker) Next() (*Commit, error) {
	for len(w.stack) > 0 {
		id := w.stack[len(w.stack)-1]
		w.stack = w.stack[:len(w.stack)-1]
		if _, ok := w.seen[id]; ok {
			continue
		}
		w.seen[id] = struct{}{}

		commit, err := w.repo.LookupCommit(id)
		if err != nil {
			return nil, fmt.Errorf("walk: %w", err)
		}

		// Push parents in reverse so the first parent is visited
		// next, keeping mainline history contiguous.
		for i := len(commit.ParentIDs) - 1; i >= 0; i-- {
			w.stack = append(w.stack, commit.ParentIDs[i])
		}
		return commit, nil
	}
	return nil, io.EOF
}
