package odb

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zlib"

	"github.com/keelvcs/keel/pkg/object"
)

// Loose is a content-addressed object database storing each object as a
// zlib-compressed loose file with a 2-character fan-out directory
// layout: objects/ab/cdef0123...
//
// The on-disk payload, before compression, is "type len\0content"; the
// object's address is the SHA-1 of that envelope.
type Loose struct {
	root string
}

var _ Database = (*Loose)(nil)

// Open opens an existing loose store rooted at dir.
func Open(dir string) (*Loose, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, &StoreError{Op: fmt.Sprintf("open %s", dir), Code: CodeNotFound, Err: err}
	}
	if !info.IsDir() {
		return nil, &StoreError{Op: fmt.Sprintf("open %s", dir), Code: CodeError,
			Err: fmt.Errorf("not a directory")}
	}
	return &Loose{root: dir}, nil
}

// Init creates a new loose store rooted at dir and opens it. The
// objects/ fan-out subdirectories are created lazily on first write.
func Init(dir string) (*Loose, error) {
	if err := os.MkdirAll(filepath.Join(dir, "objects"), 0o755); err != nil {
		return nil, &StoreError{Op: fmt.Sprintf("init %s", dir), Code: CodeError, Err: err}
	}
	return &Loose{root: dir}, nil
}

// Path returns the store's root directory.
func (s *Loose) Path() string { return s.root }

// Close releases the store. A loose store holds no long-lived OS
// resources, so this never fails; closing twice is a no-op.
func (s *Loose) Close() error {
	return nil
}

func (s *Loose) objectPath(id object.Oid) string {
	hex := id.String()
	return filepath.Join(s.root, "objects", hex[:2], hex[2:])
}

// Exists reports whether the store contains an object with the given
// identifier.
func (s *Loose) Exists(id object.Oid) bool {
	_, err := os.Stat(s.objectPath(id))
	return err == nil
}

// Lookup retrieves an object by identifier. A miss is reported as a
// StoreError wrapping ErrNotFound; a declared-kind mismatch as one
// wrapping ErrTypeMismatch.
func (s *Loose) Lookup(id object.Oid, want object.Type) (*Raw, error) {
	raw, err := os.ReadFile(s.objectPath(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &StoreError{Op: fmt.Sprintf("lookup %s", id), Code: CodeNotFound, Err: ErrNotFound}
		}
		return nil, &StoreError{Op: fmt.Sprintf("lookup %s", id), Code: CodeError, Err: err}
	}

	zr, err := zlib.NewReader(bytes.NewReader(raw))
	if err != nil {
		return nil, &StoreError{Op: fmt.Sprintf("lookup %s", id), Code: CodeCorrupt, Err: err}
	}
	envelope, err := io.ReadAll(zr)
	zr.Close()
	if err != nil {
		return nil, &StoreError{Op: fmt.Sprintf("lookup %s", id), Code: CodeCorrupt, Err: err}
	}

	typ, content, err := parseEnvelope(envelope)
	if err != nil {
		return nil, &StoreError{Op: fmt.Sprintf("lookup %s", id), Code: CodeCorrupt, Err: err}
	}
	if want != object.TypeAny && typ != want {
		return nil, &StoreError{
			Op:   fmt.Sprintf("lookup %s", id),
			Code: CodeTypeMismatch,
			Err:  fmt.Errorf("%w: stored %s, requested %s", ErrTypeMismatch, typ, want),
		}
	}

	return &Raw{ID: id, Type: typ, Data: content}, nil
}

// Write stores a payload under its content address. Writes are atomic:
// data is compressed to a temp file and then renamed into place.
func (s *Loose) Write(t object.Type, data []byte) (object.Oid, error) {
	if !t.Storable() {
		return object.Oid{}, &StoreError{Op: "write", Code: CodeError,
			Err: fmt.Errorf("type %s is not storable", t)}
	}

	id := object.HashObject(t, data)

	// Fast path: already exists.
	if s.Exists(id) {
		return id, nil
	}

	hex := id.String()
	dir := filepath.Join(s.root, "objects", hex[:2])
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return object.Oid{}, &StoreError{Op: fmt.Sprintf("write %s", id), Code: CodeError, Err: err}
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return object.Oid{}, &StoreError{Op: fmt.Sprintf("write %s", id), Code: CodeError, Err: err}
	}
	tmpName := tmp.Name()

	zw := zlib.NewWriter(tmp)
	fmt.Fprintf(zw, "%s %d\x00", t, len(data))
	if _, err := zw.Write(data); err == nil {
		err = zw.Close()
	} else {
		zw.Close()
	}
	if err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return object.Oid{}, &StoreError{Op: fmt.Sprintf("write %s", id), Code: CodeError, Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return object.Oid{}, &StoreError{Op: fmt.Sprintf("write %s", id), Code: CodeError, Err: err}
	}

	if err := os.Rename(tmpName, s.objectPath(id)); err != nil {
		os.Remove(tmpName)
		return object.Oid{}, &StoreError{Op: fmt.Sprintf("write %s", id), Code: CodeError, Err: err}
	}

	return id, nil
}

// parseEnvelope splits "type len\0content" and validates the declared
// length against the actual content.
func parseEnvelope(envelope []byte) (object.Type, []byte, error) {
	nulIdx := bytes.IndexByte(envelope, 0)
	if nulIdx < 0 {
		return object.TypeInvalid, nil, fmt.Errorf("invalid envelope (no NUL)")
	}
	header := string(envelope[:nulIdx])
	content := envelope[nulIdx+1:]

	name, lenStr, ok := strings.Cut(header, " ")
	if !ok {
		return object.TypeInvalid, nil, fmt.Errorf("invalid envelope header %q", header)
	}
	typ, err := object.TypeFromName(name)
	if err != nil {
		return object.TypeInvalid, nil, err
	}
	length, err := strconv.Atoi(lenStr)
	if err != nil {
		return object.TypeInvalid, nil, fmt.Errorf("invalid envelope length %q: %w", lenStr, err)
	}
	if len(content) != length {
		return object.TypeInvalid, nil, fmt.Errorf("envelope length mismatch (header=%d, actual=%d)", length, len(content))
	}
	return typ, content, nil
}
