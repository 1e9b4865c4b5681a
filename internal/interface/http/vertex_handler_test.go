package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeClass(t *testing.T) {
	assert.Equal(t, "Person", NormalizeClass("person"))
	assert.Equal(t, "Person", NormalizeClass("persons"))
	assert.Equal(t, "Person", NormalizeClass("people"))
	assert.Equal(t, "V", NormalizeClass("v"))
	assert.Equal(t, "V", NormalizeClass("vertices"))
	assert.Equal(t, "Company", NormalizeClass("company"))
}

func TestListPersons(t *testing.T) {
	r := newTestRouter(t)
	_, cookie := registerUser(t, r, "ada@example.com")
	registerUser(t, r, "grace@example.com")

	w := doJSON(r, http.MethodGet, "/api/vertices/persons", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)

	var env listEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	require.True(t, env.Success)
	assert.Len(t, env.Data, 2)
	for _, doc := range env.Data {
		assert.NotContains(t, doc, "password")
	}
}

func TestListPersonsWithFilter(t *testing.T) {
	r := newTestRouter(t)
	_, cookie := registerUser(t, r, "ada@example.com")
	registerUser(t, r, "grace@example.com")

	w := doJSON(r, http.MethodGet, "/api/vertices/persons?email=grace@example.com", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)

	var env listEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	require.Len(t, env.Data, 1)
	assert.Equal(t, "grace@example.com", env.Data[0]["email"])
}

func TestListPersonsWithOperator(t *testing.T) {
	r := newTestRouter(t)
	_, cookie := registerUser(t, r, "ada@x.co")
	registerUser(t, r, "grace@y.co")

	w := doJSON(r, http.MethodGet, "/api/vertices/persons?email=x.co&op=endswith", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)

	var env listEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	require.Len(t, env.Data, 1)
	assert.Equal(t, "ada@x.co", env.Data[0]["email"])
}

func TestListRejectsBadOperator(t *testing.T) {
	r := newTestRouter(t)
	_, cookie := registerUser(t, r, "ada@example.com")

	w := doJSON(r, http.MethodGet, "/api/vertices/persons?email=x&op=drop", nil, cookie)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetVertexByID(t *testing.T) {
	r := newTestRouter(t)
	env, cookie := registerUser(t, r, "ada@example.com")
	id := env.Data["id"].(string)

	w := doJSON(r, http.MethodGet, "/api/vertex/"+id, nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	got := decode(t, w)
	assert.Equal(t, id, got.Data["id"])
	assert.NotContains(t, got.Data, "password")

}

func TestGetVertexNotFound(t *testing.T) {
	r := newTestRouter(t)
	_, cookie := registerUser(t, r, "ada@example.com")

	w := doJSON(r, http.MethodGet, "/api/vertex/no-such-id", nil, cookie)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateProfile(t *testing.T) {
	r := newTestRouter(t)
	env, cookie := registerUser(t, r, "ada@example.com")
	id := env.Data["id"].(string)

	w := doJSON(r, http.MethodPut, "/api/vertex/"+id, gin.H{
		"id":         id,
		"first_name": "Augusta",
	}, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	got := decode(t, w)
	require.True(t, got.Success)
	assert.Equal(t, "Augusta", got.Data["first_name"])
	assert.Equal(t, "Lovelace", got.Data["last_name"])
	assert.NotContains(t, got.Data, "password")
}

func TestUpdateProfileIDMismatchIs400(t *testing.T) {
	r := newTestRouter(t)
	env, cookie := registerUser(t, r, "ada@example.com")
	id := env.Data["id"].(string)

	w := doJSON(r, http.MethodPut, "/api/vertex/"+id, gin.H{"id": "other-id"}, cookie)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	got := decode(t, w)
	assert.Contains(t, got.Message, "other-id")
	assert.Contains(t, got.Message, id)
}

func TestUpdateProfileEmailConflictIs400(t *testing.T) {
	r := newTestRouter(t)
	env, cookie := registerUser(t, r, "ada@example.com")
	registerUser(t, r, "grace@example.com")
	id := env.Data["id"].(string)

	w := doJSON(r, http.MethodPut, "/api/vertex/"+id, gin.H{"email": "grace@example.com"}, cookie)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	got := decode(t, w)
	assert.Equal(t, "01", got.Code)
}

func TestUpdateProfilePasswordMismatchIs200(t *testing.T) {
	r := newTestRouter(t)
	env, cookie := registerUser(t, r, "ada@example.com")
	id := env.Data["id"].(string)

	w := doJSON(r, http.MethodPut, "/api/vertex/"+id, gin.H{
		"new_password":    "one11111",
		"verify_password": "two22222",
	}, cookie)
	assert.Equal(t, http.StatusOK, w.Code)
	got := decode(t, w)
	assert.False(t, got.Success)
	assert.Equal(t, "Passwords don't match", got.Message)
}

func TestUpdateProfileChangePassword(t *testing.T) {
	r := newTestRouter(t)
	env, cookie := registerUser(t, r, "ada@example.com")
	id := env.Data["id"].(string)

	w := doJSON(r, http.MethodPut, "/api/vertex/"+id, gin.H{
		"new_password":    "newpw9876",
		"verify_password": "newpw9876",
	}, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, decode(t, w).Success)

	w2 := doJSON(r, http.MethodPost, "/login", gin.H{"email": "ada@example.com", "password": "newpw9876"})
	require.Equal(t, http.StatusOK, w2.Code)
	assert.True(t, decode(t, w2).Success)
}

func TestUpdateMissingPersonIs404(t *testing.T) {
	r := newTestRouter(t)
	_, cookie := registerUser(t, r, "ada@example.com")

	w := doJSON(r, http.MethodPut, "/api/vertex/no-such-id", gin.H{"first_name": "X"}, cookie)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSearchUnavailableWithoutElasticsearch(t *testing.T) {
	r := newTestRouter(t)
	_, cookie := registerUser(t, r, "ada@example.com")

	w := doJSON(r, http.MethodGet, "/api/persons/search?q=ada", nil, cookie)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestSearchRequiresQuery(t *testing.T) {
	r := newTestRouter(t)
	_, cookie := registerUser(t, r, "ada@example.com")

	w := doJSON(r, http.MethodGet, "/api/persons/search", nil, cookie)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAvatarUploadUnconfiguredIs503(t *testing.T) {
	r := newTestRouter(t)
	_, cookie := registerUser(t, r, "ada@example.com")

	w := doJSON(r, http.MethodPost, "/api/profile/avatar", nil, cookie)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
