package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/vertexlabs/go-auth-boilerplate/config"
	"github.com/vertexlabs/go-auth-boilerplate/internal/application"
	"github.com/vertexlabs/go-auth-boilerplate/internal/infrastructure/memstore"
	"github.com/vertexlabs/go-auth-boilerplate/internal/interface/middleware"
	"github.com/vertexlabs/go-auth-boilerplate/pkg/session"
	"github.com/vertexlabs/go-auth-boilerplate/pkg/validation"
)

// envelope mirrors the response shape for assertions.
type envelope struct {
	Status  int            `json:"status"`
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Code    string         `json:"code"`
	Data    map[string]any `json:"data"`
}

type listEnvelope struct {
	Success bool             `json:"success"`
	Data    []map[string]any `json:"data"`
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validation.Init()

	log := logrus.New()
	log.SetOutput(io.Discard)
	cfg := &config.Config{BcryptCost: bcrypt.MinCost, ESPersonsIndex: "persons"}

	repo := memstore.New()
	sessions := session.NewManager(session.NewMemoryStore(), "test-secret", "graph.sid", "", false, time.Hour)

	people := application.NewPersonStore(repo)
	indexer := application.NewPersonIndexer(nil, cfg.ESPersonsIndex, log)
	auth := application.NewAuthService(people, log, bcrypt.MinCost)
	profiles := application.NewProfileService(people, log, bcrypt.MinCost)

	authHandler := NewAuthHandler(auth, sessions, log, cfg, nil, indexer)
	vertexHandler := NewVertexHandler(repo, people, profiles, indexer, nil, log, cfg)

	r := gin.New()
	r.POST("/login", authHandler.Login)
	r.POST("/register", authHandler.Register)
	r.GET("/logout", authHandler.Logout)

	api := r.Group("/api")
	api.Use(middleware.SessionGate(sessions))
	api.GET("/profile", vertexHandler.Profile)
	api.POST("/profile/avatar", vertexHandler.UploadAvatar)
	api.GET("/persons/search", vertexHandler.SearchPersons)
	api.GET("/vertices/:vertexType", vertexHandler.List)
	api.GET("/vertex/:vertexId", vertexHandler.Get)
	api.PUT("/vertex/:vertexId", vertexHandler.Update)
	return r
}

func doJSON(r *gin.Engine, method, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func registerUser(t *testing.T, r *gin.Engine, email string) (envelope, *http.Cookie) {
	t.Helper()
	w := doJSON(r, http.MethodPost, "/register", gin.H{
		"first_name":      "Ada",
		"last_name":       "Lovelace",
		"email":           email,
		"password":        "pw123456",
		"verify_password": "pw123456",
	})
	require.Equal(t, http.StatusOK, w.Code)
	env := decode(t, w)
	require.True(t, env.Success)
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	return env, cookies[0]
}

func TestRegisterHappyPath(t *testing.T) {
	r := newTestRouter(t)
	env, cookie := registerUser(t, r, "ada@example.com")

	assert.Equal(t, "success", env.Message)
	assert.NotEmpty(t, env.Data["id"])
	assert.Equal(t, "ada@example.com", env.Data["email"])
	assert.NotContains(t, env.Data, "password")
	assert.Equal(t, "graph.sid", cookie.Name)
}

func TestRegisterDuplicateEmailIs200WithCode(t *testing.T) {
	r := newTestRouter(t)
	registerUser(t, r, "ada@example.com")

	w := doJSON(r, http.MethodPost, "/register", gin.H{
		"first_name":      "Other",
		"last_name":       "Person",
		"email":           "ada@example.com",
		"password":        "pw123456",
		"verify_password": "pw123456",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	env := decode(t, w)
	assert.False(t, env.Success)
	assert.Equal(t, "User with email address ada@example.com already exists!", env.Message)
	assert.Equal(t, "01", env.Code)
}

func TestRegisterPasswordMismatchIs200(t *testing.T) {
	r := newTestRouter(t)
	w := doJSON(r, http.MethodPost, "/register", gin.H{
		"first_name":      "Ada",
		"last_name":       "Lovelace",
		"email":           "ada@example.com",
		"password":        "one11111",
		"verify_password": "two22222",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	env := decode(t, w)
	assert.False(t, env.Success)
	assert.Equal(t, "Passwords don't match", env.Message)
	assert.Empty(t, env.Code)
}

func TestRegisterInvalidPayload(t *testing.T) {
	r := newTestRouter(t)
	w := doJSON(r, http.MethodPost, "/register", gin.H{"email": "not-an-email"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginUnknownEmailIs200(t *testing.T) {
	r := newTestRouter(t)
	w := doJSON(r, http.MethodPost, "/login", gin.H{"email": "nobody@example.com", "password": "pw"})
	assert.Equal(t, http.StatusOK, w.Code)
	env := decode(t, w)
	assert.False(t, env.Success)
	assert.Equal(t, `Email Address "nobody@example.com" not found`, env.Message)
}

func TestLoginWrongPasswordIs200(t *testing.T) {
	r := newTestRouter(t)
	registerUser(t, r, "ada@example.com")

	w := doJSON(r, http.MethodPost, "/login", gin.H{"email": "ada@example.com", "password": "wrongwrong"})
	assert.Equal(t, http.StatusOK, w.Code)
	env := decode(t, w)
	assert.False(t, env.Success)
	assert.Equal(t, "Incorrect Password", env.Message)
}

func TestLoginThenProfile(t *testing.T) {
	r := newTestRouter(t)
	registerUser(t, r, "ada@example.com")

	w := doJSON(r, http.MethodPost, "/login", gin.H{"email": "ada@example.com", "password": "pw123456"})
	require.Equal(t, http.StatusOK, w.Code)
	env := decode(t, w)
	require.True(t, env.Success)
	cookie := w.Result().Cookies()[0]

	w2 := doJSON(r, http.MethodGet, "/api/profile", nil, cookie)
	assert.Equal(t, http.StatusOK, w2.Code)
	env2 := decode(t, w2)
	assert.Equal(t, "ada@example.com", env2.Data["email"])
	assert.NotContains(t, env2.Data, "password")
}

func TestAPIRequiresSession(t *testing.T) {
	r := newTestRouter(t)
	w := doJSON(r, http.MethodGet, "/api/profile", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	env := decode(t, w)
	assert.Equal(t, "Not Authenticated", env.Message)
}

func TestLogoutDestroysSession(t *testing.T) {
	r := newTestRouter(t)
	_, cookie := registerUser(t, r, "ada@example.com")

	w := doJSON(r, http.MethodGet, "/logout", nil, cookie)
	assert.Equal(t, http.StatusOK, w.Code)
	env := decode(t, w)
	assert.True(t, env.Success)
	assert.Equal(t, "success", env.Message)

	w2 := doJSON(r, http.MethodGet, "/api/profile", nil, cookie)
	assert.Equal(t, http.StatusUnauthorized, w2.Code)
}

func TestLogoutWithoutSessionIs401(t *testing.T) {
	r := newTestRouter(t)
	w := doJSON(r, http.MethodGet, "/logout", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	env := decode(t, w)
	assert.Equal(t, "Not Authenticated", env.Message)
}
