package repository

import (
	"context"
	"errors"
	"fmt"
)

// Document is the free-form property map a vertex round-trips through the
// store as. Metadata keys mirror what a graph/document store reports about a
// record and are managed by the adapter, never by callers.
type Document map[string]any

// Metadata keys reserved on every Document.
const (
	KeyID          = "id"
	KeyRID         = "@rid"
	KeyClass       = "@class"
	KeyVersion     = "@version"
	KeyCreatedDate = "created_date"
)

// ClassVertexBase is the base class every vertex belongs to, whatever its
// concrete class. Lookups against it match any vertex.
const ClassVertexBase = "V"

// IsReservedKey reports whether k is store-managed metadata.
func IsReservedKey(k string) bool {
	switch k {
	case KeyID, KeyRID, KeyClass, KeyVersion, KeyCreatedDate:
		return true
	}
	return false
}

// ID returns the document's identifier, if assigned.
func (d Document) ID() string {
	if v, ok := d[KeyID].(string); ok {
		return v
	}
	return ""
}

// Without returns a copy of the document with the given keys removed.
// Used to strip the password hash from outward representations.
func (d Document) Without(keys ...string) Document {
	out := make(Document, len(d))
	for k, v := range d {
		out[k] = v
	}
	for _, k := range keys {
		delete(out, k)
	}
	return out
}

// VertexRepository is the contract the core consumes against the vertex
// store. The core never issues raw queries; it only does property-equality
// lookups, filtered class scans and whole-document writes.
type VertexRepository interface {
	// FindOneByProperty returns the first vertex of the class whose property
	// equals value, or nil when there is no match.
	FindOneByProperty(ctx context.Context, class, property string, value any) (Document, error)
	// FindByClass returns all vertices of the class matching every filter.
	FindByClass(ctx context.Context, class string, filters []Filter) ([]Document, error)
	// Create inserts a new vertex and returns it with store-assigned metadata.
	Create(ctx context.Context, class string, doc Document) (Document, error)
	// Replace overwrites the whole record identified by id. This is
	// create-or-replace semantics' replace half: unspecified fields are gone
	// after the call, so callers supply the full document.
	Replace(ctx context.Context, class, id string, doc Document) (Document, error)
}

// StoreError wraps any adapter-level failure. Callers translate it into a
// 500-class response; the underlying error is preserved for logs.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("vertex store: %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// WrapStoreErr wraps err in a StoreError unless it is nil or already one.
func WrapStoreErr(op string, err error) error {
	if err == nil {
		return nil
	}
	var se *StoreError
	if errors.As(err, &se) {
		return err
	}
	return &StoreError{Op: op, Err: err}
}

// ErrRecordNotFound is returned by Replace when no record carries the id.
var ErrRecordNotFound = errors.New("record not found")
