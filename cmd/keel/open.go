package main

import (
	"github.com/keelvcs/keel/pkg/repo"
)

// openRepository discovers the repository containing the current
// directory and opens it. Callers must Free the returned handle on
// every exit path.
func openRepository() (*repo.Repository, error) {
	root, err := repo.Discover(".")
	if err != nil {
		return nil, err
	}
	return repo.Open(root, nil)
}
