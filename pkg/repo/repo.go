// Package repo is a safe, typed front-end over a content-addressable
// object store. A Repository owns exactly one store handle; looked-up
// objects and derived collections borrow that handle and must not
// outlive it.
//
// A Repository and everything holding a back-reference to it must be
// confined to one goroutine at a time. The package does no internal
// locking; serialization is the caller's responsibility.
package repo

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/keelvcs/keel/pkg/object"
	"github.com/keelvcs/keel/pkg/odb"
)

// StoreDirName is the repository store directory for non-bare
// repositories, created under the working directory root.
const StoreDirName = ".keel"

// DefaultBranch is the branch HEAD points at in a newly created
// repository.
const DefaultBranch = "main"

var (
	// ErrRepositoryNotFound reports an Open without CreateIfMissing
	// against a path with no repository.
	ErrRepositoryNotFound = errors.New("repository not found")

	// ErrObjectNotFound reports a strict lookup miss. Errors carrying
	// the missing identifier match it with errors.Is.
	ErrObjectNotFound = errors.New("object not found")

	// ErrUnbornHead reports a HEAD whose symbolic target does not
	// exist yet (a repository with no commits).
	ErrUnbornHead = errors.New("reference underlying HEAD is unborn")

	// ErrReferenceNotFound reports a missing named reference.
	ErrReferenceNotFound = errors.New("reference not found")
)

// ObjectNotFoundError is a strict lookup miss carrying the missing
// identifier. It matches ErrObjectNotFound with errors.Is.
type ObjectNotFoundError struct {
	ID object.Oid
}

func (e *ObjectNotFoundError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("object %s not found", e.ID)
}

func (e *ObjectNotFoundError) Is(target error) bool {
	return target == ErrObjectNotFound
}

// Options configures Open.
type Options struct {
	// CreateIfMissing initializes a new repository when none exists
	// at the path. Without it, Open fails with ErrRepositoryNotFound.
	CreateIfMissing bool

	// Bare lays the store out at the path itself instead of under a
	// .keel subdirectory, with no working directory.
	Bare bool
}

// Repository is an open handle on an object store. It is created by
// Open and released by Free; using a freed Repository panics.
type Repository struct {
	db       odb.Database
	root     string // native-separator root path
	storeDir string // .keel directory, or root itself when bare
	bare     bool
	created  bool // whether Open initialized a new store
	config   *Config

	releaseOnce sync.Once
	freed       bool

	refs     *ReferenceCollection
	branches *BranchCollection
	commits  *CommitCollection
}

// Open opens the repository at path, or initializes one there when
// opts.CreateIfMissing is set. A nil opts means open-existing,
// non-bare. The returned handle must be released with Free; a
// finalizer releases it as a last resort if the owner forgot.
func Open(path string, opts *Options) (*Repository, error) {
	if opts == nil {
		opts = &Options{}
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("open: abs path: %w", err)
	}

	storeDir := abs
	if !opts.Bare {
		storeDir = filepath.Join(abs, StoreDirName)
	}

	// Decide existence before touching the store engine, so a failed
	// open leaks nothing.
	present := isStoreDir(storeDir)
	if !present && !opts.CreateIfMissing {
		return nil, fmt.Errorf("open %s: %w", abs, ErrRepositoryNotFound)
	}

	var db odb.Database
	var cfg *Config
	if present {
		db, err = odb.Open(storeDir)
		if err != nil {
			return nil, err
		}
		cfg, err = readConfig(storeDir)
		if err != nil {
			return nil, err
		}
	} else {
		db, cfg, err = initStore(storeDir, opts.Bare)
		if err != nil {
			return nil, err
		}
	}

	r := &Repository{
		db:       db,
		root:     abs,
		storeDir: storeDir,
		bare:     cfg.Core.Bare,
		created:  !present,
		config:   cfg,
	}
	r.refs = &ReferenceCollection{repo: r}
	r.branches = &BranchCollection{repo: r}
	r.commits = &CommitCollection{repo: r}

	// Safety net for owners that forget Free. The explicit path and
	// the finalizer path share one sync.Once, so a double release is
	// a no-op.
	runtime.SetFinalizer(r, (*Repository).Free)
	return r, nil
}

// initStore lays out a new store: objects/, refs/heads/, refs/tags/,
// HEAD pointing at the default branch, and the config file.
func initStore(storeDir string, bare bool) (odb.Database, *Config, error) {
	db, err := odb.Init(storeDir)
	if err != nil {
		return nil, nil, err
	}

	for _, d := range []string{
		filepath.Join(storeDir, "refs", "heads"),
		filepath.Join(storeDir, "refs", "tags"),
	} {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return nil, nil, fmt.Errorf("init: mkdir %s: %w", d, err)
		}
	}

	cfg := &Config{}
	cfg.Core.Bare = bare
	cfg.Core.DefaultBranch = DefaultBranch
	if err := writeConfig(storeDir, cfg); err != nil {
		return nil, nil, err
	}

	head := fmt.Sprintf("ref: refs/heads/%s\n", cfg.Core.DefaultBranch)
	if err := os.WriteFile(filepath.Join(storeDir, "HEAD"), []byte(head), 0o644); err != nil {
		return nil, nil, fmt.Errorf("init: write HEAD: %w", err)
	}

	return db, cfg, nil
}

// isStoreDir reports whether dir looks like a repository store: it
// must carry a HEAD file and an objects directory.
func isStoreDir(dir string) bool {
	if _, err := os.Stat(filepath.Join(dir, "HEAD")); err != nil {
		return false
	}
	info, err := os.Stat(filepath.Join(dir, "objects"))
	return err == nil && info.IsDir()
}

// Discover searches upward from path for a repository root (a
// directory containing a .keel store) and returns that root.
func Discover(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("discover: abs path: %w", err)
	}

	cur := abs
	for {
		if isStoreDir(filepath.Join(cur, StoreDirName)) {
			return cur, nil
		}
		parent := filepath.Dir(cur)
		if parent == cur {
			return "", fmt.Errorf("discover %s: %w", abs, ErrRepositoryNotFound)
		}
		cur = parent
	}
}

// Free releases the underlying store handle. It is idempotent: the
// first call releases, every later call (explicit or from the
// finalizer) is a no-op. Free never fails; engine close errors are
// swallowed by contract.
func (r *Repository) Free() {
	r.releaseOnce.Do(func() {
		runtime.SetFinalizer(r, nil)
		r.freed = true
		_ = r.db.Close()
	})
}

// ensureLive panics when the handle has been freed. Operating on a
// freed Repository is a programming error, not a recoverable one.
func (r *Repository) ensureLive() {
	if r.freed {
		panic("keel: use of freed Repository")
	}
}

// Database returns the underlying object database handle. The caller
// borrows it; releasing it is the Repository's job alone.
func (r *Repository) Database() odb.Database {
	r.ensureLive()
	return r.db
}

// Exists reports whether an object with the given identifier is
// stored. Absence is not an error; only a freed handle is.
func (r *Repository) Exists(id object.Oid) bool {
	return r.Database().Exists(id)
}

// ExistsHex parses hex and reports whether the addressed object is
// stored. Malformed input (including the empty string) fails with
// ErrMalformedIdentifier.
func (r *Repository) ExistsHex(hex string) (bool, error) {
	r.ensureLive()
	id, err := object.ParseOid(hex)
	if err != nil {
		return false, err
	}
	return r.Exists(id), nil
}

// Path returns the repository root in native-separator form. For a
// bare repository this is the store directory itself.
func (r *Repository) Path() string { return r.root }

// NormalizedPath returns the repository root with forward slashes, for
// sub-operations that need a platform-neutral path string.
func (r *Repository) NormalizedPath() string { return filepath.ToSlash(r.root) }

// StoreDir returns the store directory (.keel, or the root when bare).
func (r *Repository) StoreDir() string { return r.storeDir }

// Bare reports whether the repository has no working directory.
func (r *Repository) Bare() bool { return r.bare }

// Created reports whether Open initialized a new store rather than
// opening an existing one.
func (r *Repository) Created() bool { return r.created }

// References returns the reference view bound to this handle. It is
// constructed once per handle and lives as long as the repository.
func (r *Repository) References() *ReferenceCollection {
	r.ensureLive()
	return r.refs
}

// Branches returns the branch view layered over References.
func (r *Repository) Branches() *BranchCollection {
	r.ensureLive()
	return r.branches
}

// Commits returns the commit history view. The view is live: each
// traversal re-resolves HEAD, so it always starts at the current head.
func (r *Repository) Commits() *CommitCollection {
	r.ensureLive()
	return r.commits
}
