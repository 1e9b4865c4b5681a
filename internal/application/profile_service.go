package application

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/vertexlabs/go-auth-boilerplate/internal/domain/entity"
	"github.com/vertexlabs/go-auth-boilerplate/internal/domain/repository"
	"github.com/vertexlabs/go-auth-boilerplate/pkg/helpers"
)

// Payload keys that drive a password change. They are consumed here and
// never written to the store.
const (
	KeyNewPassword    = "new_password"
	KeyVerifyPassword = "verify_password"
)

// ProfileService applies profile updates as field-level overlays on the
// stored record, so keys absent from the payload keep their stored values.
type ProfileService struct {
	People     *PersonStore
	Log        *logrus.Logger
	BcryptCost int
}

func NewProfileService(people *PersonStore, log *logrus.Logger, bcryptCost int) *ProfileService {
	if bcryptCost <= 0 {
		bcryptCost = helpers.DefaultHashCost
	}
	return &ProfileService{People: people, Log: log, BcryptCost: bcryptCost}
}

// Update overlays the payload onto the stored person identified by routeID
// and persists the result. The payload's id, when present, must match the
// route; the stored password hash survives unless a valid new_password /
// verify_password pair replaces it.
func (s *ProfileService) Update(ctx context.Context, routeID string, payload repository.Document) (*entity.Person, error) {
	if routeID == "" {
		return nil, fmt.Errorf("an id is required to update a profile")
	}
	if pid := payload.ID(); pid != "" && pid != routeID {
		return nil, &IDMismatchError{PayloadID: pid, RouteID: routeID}
	}

	// The password only changes when both halves of the pair are submitted.
	// A lone new_password or verify_password is ignored.
	newPass, _ := payload[KeyNewPassword].(string)
	verifyPass, _ := payload[KeyVerifyPassword].(string)
	changePassword := newPass != "" && verifyPass != ""
	if changePassword && newPass != verifyPass {
		return nil, &ValidationError{Message: "Passwords don't match"}
	}

	stored, err := s.People.FindByID(ctx, routeID)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		return nil, &NotFoundError{Message: fmt.Sprintf("No record found for id %s", routeID)}
	}

	if email, ok := payload[entity.KeyEmail].(string); ok && email != "" {
		email = entity.NormalizeEmail(email)
		if email != stored.Email {
			other, err := s.People.FindByEmail(ctx, email)
			if err != nil {
				return nil, err
			}
			if other != nil && other.ID != routeID {
				return nil, &ValidationError{
					Message: fmt.Sprintf("User with email address %s already exists!", email),
					Code:    CodeDuplicateEmail,
				}
			}
		}
		stored.Email = email
	}
	if v, ok := payload[entity.KeyFirstName].(string); ok {
		stored.FirstName = v
	}
	if v, ok := payload[entity.KeyLastName].(string); ok {
		stored.LastName = v
	}
	for k, v := range payload {
		if repository.IsReservedKey(k) {
			continue
		}
		switch k {
		case entity.KeyFirstName, entity.KeyLastName, entity.KeyEmail,
			entity.KeyPassword, KeyNewPassword, KeyVerifyPassword:
			continue
		}
		stored.Extra[k] = v
	}
	if changePassword {
		hash, err := helpers.HashPasswordWithCost(newPass, s.BcryptCost)
		if err != nil {
			return nil, err
		}
		stored.Password = hash
	}

	saved, err := s.People.Save(ctx, stored)
	if err != nil {
		return nil, err
	}
	s.Log.WithField("user_id", saved.ID).Infof("Profile updated: %s", saved.DisplayName())
	return saved, nil
}
