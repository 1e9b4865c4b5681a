package application

import (
	"context"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/vertexlabs/go-auth-boilerplate/internal/domain/entity"
	"github.com/vertexlabs/go-auth-boilerplate/internal/infrastructure/memstore"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newAuthService() *AuthService {
	people := NewPersonStore(memstore.New())
	return NewAuthService(people, quietLogger(), bcrypt.MinCost)
}

func register(t *testing.T, svc *AuthService, email, password string) *entity.Person {
	t.Helper()
	p, err := svc.Register(context.Background(), RegisterInput{
		FirstName:      "Ada",
		LastName:       "Lovelace",
		Email:          email,
		Password:       password,
		VerifyPassword: password,
	})
	require.NoError(t, err)
	return p
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newAuthService()
	p := register(t, svc, "ada@example.com", "pw123456")
	assert.NotEmpty(t, p.ID)
	assert.NotEqual(t, "pw123456", p.Password)

	got, err := svc.Login(context.Background(), "ada@example.com", "pw123456")
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc := newAuthService()
	_, err := svc.Login(context.Background(), "nobody@example.com", "pw")
	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, `Email Address "nobody@example.com" not found`, authErr.Message)
}

func TestLoginWrongPassword(t *testing.T) {
	svc := newAuthService()
	register(t, svc, "ada@example.com", "pw123456")

	_, err := svc.Login(context.Background(), "ada@example.com", "wrong")
	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, "Incorrect Password", authErr.Message)
}

func TestRegisterPasswordMismatch(t *testing.T) {
	svc := newAuthService()
	_, err := svc.Register(context.Background(), RegisterInput{
		FirstName:      "Ada",
		LastName:       "Lovelace",
		Email:          "ada@example.com",
		Password:       "one",
		VerifyPassword: "two",
	})
	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "Passwords don't match", valErr.Message)
	assert.Empty(t, valErr.Code)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newAuthService()
	register(t, svc, "ada@example.com", "pw123456")

	_, err := svc.Register(context.Background(), RegisterInput{
		FirstName:      "Other",
		LastName:       "Person",
		Email:          "ada@example.com",
		Password:       "pw",
		VerifyPassword: "pw",
	})
	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "User with email address ada@example.com already exists!", valErr.Message)
	assert.Equal(t, CodeDuplicateEmail, valErr.Code)
}

func TestRegisterDuplicateEmailCaseInsensitive(t *testing.T) {
	svc := newAuthService()
	register(t, svc, "ada@example.com", "pw123456")

	_, err := svc.Register(context.Background(), RegisterInput{
		FirstName:      "Other",
		LastName:       "Person",
		Email:          "ADA@Example.com",
		Password:       "pw",
		VerifyPassword: "pw",
	})
	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, CodeDuplicateEmail, valErr.Code)
}

// When the password pair and the email are both bad, the password mismatch
// wins; it is checked first.
func TestRegisterPasswordMismatchTakesPrecedence(t *testing.T) {
	svc := newAuthService()
	register(t, svc, "ada@example.com", "pw123456")

	_, err := svc.Register(context.Background(), RegisterInput{
		FirstName:      "Other",
		LastName:       "Person",
		Email:          "ada@example.com",
		Password:       "one",
		VerifyPassword: "two",
	})
	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "Passwords don't match", valErr.Message)
	assert.Empty(t, valErr.Code)
}

func TestRegisterNormalizesEmail(t *testing.T) {
	svc := newAuthService()
	p := register(t, svc, " Ada@Example.COM ", "pw123456")
	assert.Equal(t, "ada@example.com", p.Email)

	got, err := svc.Login(context.Background(), "ada@example.com", "pw123456")
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)
}
