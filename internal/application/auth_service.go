package application

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/vertexlabs/go-auth-boilerplate/internal/domain/entity"
	"github.com/vertexlabs/go-auth-boilerplate/pkg/helpers"
)

// AuthService implements login and registration over the person store.
type AuthService struct {
	People     *PersonStore
	Log        *logrus.Logger
	BcryptCost int
}

// RegisterInput is the registration payload after transport-level validation.
type RegisterInput struct {
	FirstName      string
	LastName       string
	Email          string
	Password       string
	VerifyPassword string
}

func NewAuthService(people *PersonStore, log *logrus.Logger, bcryptCost int) *AuthService {
	if bcryptCost <= 0 {
		bcryptCost = helpers.DefaultHashCost
	}
	return &AuthService{People: people, Log: log, BcryptCost: bcryptCost}
}

// Login checks the credentials and returns the matching person. An unknown
// email and a wrong password produce distinct AuthError messages on purpose;
// that is the behavior clients were built against.
func (s *AuthService) Login(ctx context.Context, email, password string) (*entity.Person, error) {
	person, err := s.People.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if person == nil {
		return nil, &AuthError{Message: fmt.Sprintf("Email Address %q not found", email)}
	}
	ok, err := person.ComparePassword(password)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &AuthError{Message: "Incorrect Password"}
	}
	s.Log.WithField("user_id", person.ID).Infof("Logged In: %s", person.DisplayName())
	return person, nil
}

// Register creates a new person. The password pair is checked before email
// uniqueness, so mismatched passwords win when both problems are present.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*entity.Person, error) {
	if in.Password != in.VerifyPassword {
		return nil, &ValidationError{Message: "Passwords don't match"}
	}
	email := entity.NormalizeEmail(in.Email)
	existing, err := s.People.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, &ValidationError{
			Message: fmt.Sprintf("User with email address %s already exists!", email),
			Code:    CodeDuplicateEmail,
		}
	}
	hash, err := helpers.HashPasswordWithCost(in.Password, s.BcryptCost)
	if err != nil {
		return nil, err
	}
	person := &entity.Person{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     email,
		Password:  hash,
	}
	saved, err := s.People.Save(ctx, person)
	if err != nil {
		return nil, err
	}
	s.Log.WithField("user_id", saved.ID).Infof("Registered: %s", saved.DisplayName())
	return saved, nil
}
