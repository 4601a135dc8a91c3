package object

import (
	"bytes"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
)

// OidSize is the width of a raw object identifier in bytes.
const OidSize = 20

// OidHexSize is the length of the canonical hex form of an Oid.
const OidHexSize = OidSize * 2

// ErrMalformedIdentifier reports hex input that cannot be an object
// identifier: wrong length, bad characters, or empty.
var ErrMalformedIdentifier = errors.New("malformed object identifier")

// Oid is a fixed-width content address. It is a value type: comparison
// with == and ordering by Compare are both byte-wise.
type Oid [OidSize]byte

// ParseOid parses a 40-character hex string into an Oid. The canonical
// form produced by String is always lowercase.
func ParseOid(s string) (Oid, error) {
	var id Oid
	if len(s) != OidHexSize {
		return id, fmt.Errorf("parse oid %q: %w: want %d hex characters, got %d",
			s, ErrMalformedIdentifier, OidHexSize, len(s))
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return id, fmt.Errorf("parse oid %q: %w: %v", s, ErrMalformedIdentifier, err)
	}
	copy(id[:], b)
	return id, nil
}

// OidFromBytes builds an Oid from a raw 20-byte slice.
func OidFromBytes(b []byte) (Oid, error) {
	var id Oid
	if len(b) != OidSize {
		return id, fmt.Errorf("oid from bytes: %w: want %d bytes, got %d",
			ErrMalformedIdentifier, OidSize, len(b))
	}
	copy(id[:], b)
	return id, nil
}

// String returns the canonical lowercase hex form.
func (id Oid) String() string {
	return hex.EncodeToString(id[:])
}

// IsZero reports whether the identifier is all zero bytes.
func (id Oid) IsZero() bool {
	return id == Oid{}
}

// Compare orders two identifiers byte-wise. It returns -1, 0, or 1.
func (id Oid) Compare(other Oid) int {
	return bytes.Compare(id[:], other[:])
}

// HashObject computes the content address of an object: the SHA-1 of
// the envelope "type len\0content", matching the on-disk loose format.
func HashObject(t Type, data []byte) Oid {
	h := sha1.New()
	fmt.Fprintf(h, "%s %d\x00", t, len(data))
	h.Write(data)
	var id Oid
	copy(id[:], h.Sum(nil))
	return id
}
