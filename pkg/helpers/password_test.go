package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPasswordWithCost("s3cret", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", hash)

	ok, err := VerifyPassword("s3cret", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword("wrong", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashPasswordSaltsEachCall(t *testing.T) {
	h1, err := HashPasswordWithCost("same input", bcrypt.MinCost)
	require.NoError(t, err)
	h2, err := HashPasswordWithCost("same input", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2)
}

func TestPasswordEmptyInputs(t *testing.T) {
	_, err := HashPasswordWithCost("", bcrypt.MinCost)
	assert.ErrorIs(t, err, ErrEmptyPassword)

	_, err = VerifyPassword("", "some-hash")
	assert.ErrorIs(t, err, ErrEmptyPassword)

	_, err = VerifyPassword("pw", "")
	assert.ErrorIs(t, err, ErrEmptyHash)
}
