package helpers

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// DefaultHashCost is the bcrypt work factor used for stored credentials.
const DefaultHashCost = 13

var (
	ErrEmptyPassword = errors.New("password must not be empty")
	ErrEmptyHash     = errors.New("password hash must not be empty")
)

// HashPassword hashes the plain text password using bcrypt at DefaultHashCost.
// The salt is randomized per call, so hashing the same input twice yields
// different strings; hashes are only ever checked via VerifyPassword.
func HashPassword(plain string) (string, error) {
	return HashPasswordWithCost(plain, DefaultHashCost)
}

// HashPasswordWithCost hashes with an explicit bcrypt cost. Callers that need
// faster hashing (tests, tooling) pass bcrypt.MinCost.
func HashPasswordWithCost(plain string, cost int) (string, error) {
	if plain == "" {
		return "", ErrEmptyPassword
	}
	if cost == 0 {
		cost = DefaultHashCost
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword reports whether plain matches the bcrypt hash.
func VerifyPassword(plain, hash string) (bool, error) {
	if plain == "" {
		return false, ErrEmptyPassword
	}
	if hash == "" {
		return false, ErrEmptyHash
	}
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
