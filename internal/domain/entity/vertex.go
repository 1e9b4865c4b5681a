package entity

import (
	"github.com/vertexlabs/go-auth-boilerplate/internal/domain/repository"
)

// ClassPerson is the vertex class registered users are stored under.
const ClassPerson = "Person"

// Vertex carries the store-managed metadata every record shares: the opaque
// identifier (immutable once assigned), the store-native record reference,
// the class tag, a version counter and the creation timestamp. Concrete
// record types embed it rather than inherit behavior from it.
type Vertex struct {
	ID          string
	RID         string
	Class       string
	Version     int64
	CreatedDate string
}

// VertexFromDocument lifts the metadata keys out of a store document.
func VertexFromDocument(doc repository.Document) Vertex {
	v := Vertex{}
	if doc == nil {
		return v
	}
	v.ID = doc.ID()
	if s, ok := doc[repository.KeyRID].(string); ok {
		v.RID = s
	}
	if s, ok := doc[repository.KeyClass].(string); ok {
		v.Class = s
	}
	switch n := doc[repository.KeyVersion].(type) {
	case int64:
		v.Version = n
	case int:
		v.Version = int64(n)
	case float64:
		v.Version = int64(n)
	}
	if s, ok := doc[repository.KeyCreatedDate].(string); ok {
		v.CreatedDate = s
	}
	return v
}

// MergeInto writes the metadata back onto a document, skipping zero values
// so a not-yet-persisted vertex produces a clean insert payload.
func (v Vertex) MergeInto(doc repository.Document) {
	if v.ID != "" {
		doc[repository.KeyID] = v.ID
	}
	if v.RID != "" {
		doc[repository.KeyRID] = v.RID
	}
	if v.Class != "" {
		doc[repository.KeyClass] = v.Class
	}
	if v.Version != 0 {
		doc[repository.KeyVersion] = v.Version
	}
	if v.CreatedDate != "" {
		doc[repository.KeyCreatedDate] = v.CreatedDate
	}
}
