package application

import (
	"context"
	"fmt"

	"github.com/vertexlabs/go-auth-boilerplate/internal/domain/entity"
	"github.com/vertexlabs/go-auth-boilerplate/internal/domain/repository"
)

// PersonStore is the persistence gateway for Person vertices. It sits between
// the services and the vertex repository so callers never touch raw documents.
type PersonStore struct {
	Repo repository.VertexRepository
}

func NewPersonStore(repo repository.VertexRepository) *PersonStore {
	return &PersonStore{Repo: repo}
}

// FindByEmail looks a person up by normalized email. Returns (nil, nil) when
// no such person exists.
func (s *PersonStore) FindByEmail(ctx context.Context, email string) (*entity.Person, error) {
	if email == "" {
		return nil, fmt.Errorf("an email address is required to find a person")
	}
	doc, err := s.Repo.FindOneByProperty(ctx, entity.ClassPerson, entity.KeyEmail, entity.NormalizeEmail(email))
	if err != nil {
		return nil, err
	}
	return entity.PersonFromDocument(doc), nil
}

// FindByID looks a person up by vertex id. Returns (nil, nil) when absent.
func (s *PersonStore) FindByID(ctx context.Context, id string) (*entity.Person, error) {
	if id == "" {
		return nil, fmt.Errorf("an id is required to find a person")
	}
	doc, err := s.Repo.FindOneByProperty(ctx, entity.ClassPerson, repository.KeyID, id)
	if err != nil {
		return nil, err
	}
	return entity.PersonFromDocument(doc), nil
}

// Save persists a person: create when it has no id yet, whole-document
// replace otherwise. The returned person carries the store-assigned metadata.
func (s *PersonStore) Save(ctx context.Context, p *entity.Person) (*entity.Person, error) {
	if p == nil {
		return nil, fmt.Errorf("cannot save a nil person")
	}
	var (
		doc repository.Document
		err error
	)
	if p.ID == "" {
		doc, err = s.Repo.Create(ctx, entity.ClassPerson, p.Document())
	} else {
		doc, err = s.Repo.Replace(ctx, entity.ClassPerson, p.ID, p.Document())
	}
	if err != nil {
		return nil, err
	}
	return entity.PersonFromDocument(doc), nil
}
