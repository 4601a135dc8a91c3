package repo

import (
	"errors"
	"fmt"

	"github.com/keelvcs/keel/pkg/object"
	"github.com/keelvcs/keel/pkg/odb"
)

// lookup is the single resolution primitive. strict decides whether a
// miss is an ObjectNotFoundError or an empty (nil, nil) result; every
// other engine failure propagates verbatim. Each call is independent
// and leaves no state behind.
func (r *Repository) lookup(id object.Oid, want object.Type, strict bool) (Object, error) {
	r.ensureLive()
	if want != object.TypeAny && !want.Storable() {
		panic(fmt.Sprintf("keel: invalid lookup type %d", want))
	}

	raw, err := r.db.Lookup(id, want)
	if err != nil {
		if errors.Is(err, odb.ErrNotFound) {
			if strict {
				return nil, &ObjectNotFoundError{ID: id}
			}
			return nil, nil
		}
		return nil, err
	}
	return r.wrap(raw)
}

// Lookup retrieves the object with the given identifier, expecting the
// given kind (object.TypeAny accepts any stored kind). A miss fails
// with an error matching ErrObjectNotFound.
func (r *Repository) Lookup(id object.Oid, want object.Type) (Object, error) {
	return r.lookup(id, want, true)
}

// TryLookup is the tolerant counterpart of Lookup: a miss returns
// (nil, nil) instead of an error. All other behavior is identical.
func (r *Repository) TryLookup(id object.Oid, want object.Type) (Object, error) {
	return r.lookup(id, want, false)
}

// LookupHex parses hex and looks the object up strictly. Malformed
// input fails with ErrMalformedIdentifier.
func (r *Repository) LookupHex(hex string, want object.Type) (Object, error) {
	r.ensureLive()
	id, err := object.ParseOid(hex)
	if err != nil {
		return nil, err
	}
	return r.lookup(id, want, true)
}

// TryLookupHex parses hex and looks the object up tolerantly.
// Malformed input still fails with ErrMalformedIdentifier; only a
// well-formed miss is an empty result.
func (r *Repository) TryLookupHex(hex string, want object.Type) (Object, error) {
	r.ensureLive()
	id, err := object.ParseOid(hex)
	if err != nil {
		return nil, err
	}
	return r.lookup(id, want, false)
}

// LookupCommit retrieves a commit strictly.
func (r *Repository) LookupCommit(id object.Oid) (*Commit, error) {
	return LookupAs[*Commit](r, id)
}

// LookupTree retrieves a tree strictly.
func (r *Repository) LookupTree(id object.Oid) (*Tree, error) {
	return LookupAs[*Tree](r, id)
}

// LookupBlob retrieves a blob strictly.
func (r *Repository) LookupBlob(id object.Oid) (*Blob, error) {
	return LookupAs[*Blob](r, id)
}

// LookupTag retrieves an annotated tag strictly.
func (r *Repository) LookupTag(id object.Oid) (*Tag, error) {
	return LookupAs[*Tag](r, id)
}

// LookupAs retrieves an object strictly, with the expected kind
// inferred from the requested result type. The store enforces the
// kind during lookup, so the final cast can only fail on an internal
// inconsistency, which panics.
func LookupAs[T Object](r *Repository, id object.Oid) (T, error) {
	var zero T
	obj, err := r.lookup(id, typeFor[T](), true)
	if err != nil {
		return zero, err
	}
	return castObject[T](obj), nil
}

// TryLookupAs is the tolerant counterpart of LookupAs: a miss returns
// the zero value of T with a nil error.
func TryLookupAs[T Object](r *Repository, id object.Oid) (T, error) {
	var zero T
	obj, err := r.lookup(id, typeFor[T](), false)
	if err != nil || obj == nil {
		return zero, err
	}
	return castObject[T](obj), nil
}

// LookupHexAs parses hex and retrieves the object strictly for the
// requested result type.
func LookupHexAs[T Object](r *Repository, hex string) (T, error) {
	var zero T
	r.ensureLive()
	id, err := object.ParseOid(hex)
	if err != nil {
		return zero, err
	}
	return LookupAs[T](r, id)
}

func castObject[T Object](obj Object) T {
	v, ok := obj.(T)
	if !ok {
		var zero T
		panic(fmt.Sprintf("keel: lookup produced %T for requested %T", obj, zero))
	}
	return v
}
