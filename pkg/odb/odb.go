// Package odb defines the object-database boundary: the capability
// surface the repository front-end consumes, and a loose-object
// filesystem implementation of it.
//
// A Database is not safe for concurrent use; callers serialize access.
package odb

import (
	"errors"
	"fmt"

	"github.com/keelvcs/keel/pkg/object"
)

var (
	// ErrNotFound reports a lookup or existence miss.
	ErrNotFound = errors.New("object not found")

	// ErrTypeMismatch reports a lookup whose declared kind does not
	// match the stored object's kind.
	ErrTypeMismatch = errors.New("object type mismatch")
)

// Code classifies a store failure. Negative values mirror the native
// engine convention.
type Code int

const (
	CodeError        Code = -1
	CodeNotFound     Code = -3
	CodeExists       Code = -4
	CodeCorrupt      Code = -6
	CodeTypeMismatch Code = -7
)

// StoreError is a failure reported by the object database. Code is
// preserved verbatim so callers can decide whether to retry.
type StoreError struct {
	Op   string
	Code Code
	Err  error
}

func (e *StoreError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("odb: %s (code %d): %v", e.Op, e.Code, e.Err)
}

func (e *StoreError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Raw is an object as stored: its address, kind discriminant, and
// uncompressed payload bytes.
type Raw struct {
	ID   object.Oid
	Type object.Type
	Data []byte
}

// Database is the object-store engine handle. Lookup with a concrete
// want kind fails with ErrTypeMismatch when the stored kind differs;
// object.TypeAny accepts any stored kind.
type Database interface {
	// Path returns the store's root directory.
	Path() string

	// Lookup retrieves an object by identifier. A miss is reported as
	// an error wrapping ErrNotFound.
	Lookup(id object.Oid, want object.Type) (*Raw, error)

	// Exists reports whether the store contains an object with the
	// given identifier.
	Exists(id object.Oid) bool

	// Write stores a payload under its content address and returns
	// the address. Writing an already-present object is a no-op.
	Write(t object.Type, data []byte) (object.Oid, error)

	// Close releases the underlying store resources. Closing twice is
	// a no-op.
	Close() error
}
