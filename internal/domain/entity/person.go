package entity

import (
	"errors"
	"strings"

	"github.com/vertexlabs/go-auth-boilerplate/internal/domain/repository"

	"github.com/vertexlabs/go-auth-boilerplate/pkg/helpers"
)

var (
	// ErrMissingPassword is returned when a caller compares against an empty
	// plaintext password.
	ErrMissingPassword = errors.New("you must provide a password to compare with")
	// ErrNoStoredPassword is returned when the entity was never loaded from
	// the store (or was built from a redacted document) and has no hash.
	ErrNoStoredPassword = errors.New("person has no stored password")
)

// Person is a Vertex specialized to a registered user. Password always holds
// a bcrypt hash once the record has been through the store; plaintext exists
// only inside request payloads and the hashing calls.
type Person struct {
	Vertex
	FirstName string
	LastName  string
	Email     string
	Password  string
	// Extra keeps free-form vertex properties (e.g. avatar_url) so a
	// whole-document replace does not drop them.
	Extra repository.Document
}

// Person property keys as they appear on the wire and in the store.
const (
	KeyFirstName = "first_name"
	KeyLastName  = "last_name"
	KeyEmail     = "email"
	KeyPassword  = "password"
)

// NormalizeEmail lower-cases an email address; Person uniqueness is defined
// over this form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// PersonFromDocument builds a Person from a store document. Returns nil for
// a nil document so lookups can be chained.
func PersonFromDocument(doc repository.Document) *Person {
	if doc == nil {
		return nil
	}
	p := &Person{Vertex: VertexFromDocument(doc), Extra: repository.Document{}}
	for k, v := range doc {
		if repository.IsReservedKey(k) {
			continue
		}
		s, _ := v.(string)
		switch k {
		case KeyFirstName:
			p.FirstName = s
		case KeyLastName:
			p.LastName = s
		case KeyEmail:
			p.Email = s
		case KeyPassword:
			p.Password = s
		default:
			p.Extra[k] = v
		}
	}
	return p
}

// Document returns the full persistence representation, password hash
// included. Only the store adapter should ever see this form.
func (p *Person) Document() repository.Document {
	doc := repository.Document{}
	for k, v := range p.Extra {
		doc[k] = v
	}
	doc[KeyFirstName] = p.FirstName
	doc[KeyLastName] = p.LastName
	doc[KeyEmail] = p.Email
	if p.Password != "" {
		doc[KeyPassword] = p.Password
	}
	p.Vertex.MergeInto(doc)
	return doc
}

// PublicDocument is the outward-facing representation: identical to
// Document but with the password hash stripped. Every HTTP response that
// carries a person goes through this.
func (p *Person) PublicDocument() repository.Document {
	return p.Document().Without(KeyPassword)
}

// DisplayName renders "First Last: <email>" for log lines.
func (p *Person) DisplayName() string {
	return p.FirstName + " " + p.LastName + ": <" + p.Email + ">"
}

// ComparePassword checks a plaintext password against the stored hash.
func (p *Person) ComparePassword(plain string) (bool, error) {
	if plain == "" {
		return false, ErrMissingPassword
	}
	if p.Password == "" {
		return false, ErrNoStoredPassword
	}
	return helpers.VerifyPassword(plain, p.Password)
}
