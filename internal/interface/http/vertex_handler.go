package handlers

import (
	"errors"
	"net/http"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/vertexlabs/go-auth-boilerplate/config"
	"github.com/vertexlabs/go-auth-boilerplate/internal/application"
	"github.com/vertexlabs/go-auth-boilerplate/internal/domain/entity"
	"github.com/vertexlabs/go-auth-boilerplate/internal/domain/repository"
	"github.com/vertexlabs/go-auth-boilerplate/internal/interface/middleware"
	"github.com/vertexlabs/go-auth-boilerplate/pkg/helpers"
	"github.com/vertexlabs/go-auth-boilerplate/pkg/response"
)

// VertexHandler serves the authenticated vertex API: listing and fetching
// records by class, profile reads and updates, avatar uploads and person
// search. Every outward document has the password hash stripped.
type VertexHandler struct {
	Repo     repository.VertexRepository
	People   *application.PersonStore
	Profiles *application.ProfileService
	Indexer  *application.PersonIndexer
	GCS      *storage.Client
	Logger   *logrus.Logger
	Cfg      *config.Config
}

func NewVertexHandler(repo repository.VertexRepository, people *application.PersonStore, profiles *application.ProfileService, indexer *application.PersonIndexer, gcs *storage.Client, logger *logrus.Logger, cfg *config.Config) *VertexHandler {
	return &VertexHandler{Repo: repo, People: people, Profiles: profiles, Indexer: indexer, GCS: gcs, Logger: logger, Cfg: cfg}
}

// classAliases maps URL path segments to vertex classes. Unlisted segments
// are title-cased, so /api/company lists the Company class.
var classAliases = map[string]string{
	"person":   entity.ClassPerson,
	"persons":  entity.ClassPerson,
	"people":   entity.ClassPerson,
	"v":        repository.ClassVertexBase,
	"vertex":   repository.ClassVertexBase,
	"vertices": repository.ClassVertexBase,
}

// NormalizeClass resolves a URL path segment to a vertex class name.
func NormalizeClass(segment string) string {
	s := strings.ToLower(strings.TrimSpace(segment))
	if class, ok := classAliases[s]; ok {
		return class
	}
	if s == "" {
		return repository.ClassVertexBase
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func redact(doc repository.Document) repository.Document {
	return doc.Without(entity.KeyPassword)
}

// List GET /api/vertices/:vertexType
// Query parameters become property filters; the reserved "op" parameter
// selects the comparison operator.
func (h *VertexHandler) List(c *gin.Context) {
	class := NormalizeClass(c.Param("vertexType"))
	filters, err := repository.FiltersFromQuery(c.Request.URL.Query())
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	docs, err := h.Repo.FindByClass(c.Request.Context(), class, filters)
	if err != nil {
		h.Logger.WithError(err).Error("vertex query failed")
		response.Error[any](c, http.StatusInternalServerError, "query failed", nil)
		return
	}
	out := make([]repository.Document, 0, len(docs))
	for _, d := range docs {
		out = append(out, redact(d))
	}
	response.Success(c, http.StatusOK, out, "success", gin.H{"count": len(out)})
}

// Get GET /api/vertex/:vertexId
// The lookup runs against the base class, so any record is reachable by id
// whatever its class.
func (h *VertexHandler) Get(c *gin.Context) {
	id := c.Param("vertexId")
	doc, err := h.Repo.FindOneByProperty(c.Request.Context(), repository.ClassVertexBase, repository.KeyID, id)
	if err != nil {
		h.Logger.WithError(err).Error("vertex lookup failed")
		response.Error[any](c, http.StatusInternalServerError, "lookup failed", nil)
		return
	}
	if doc == nil {
		response.Error[any](c, http.StatusNotFound, "No record found for id "+id, nil)
		return
	}
	response.Success(c, http.StatusOK, redact(doc), "success", nil)
}

// Update PUT /api/vertex/:vertexId
// The stored record decides the rules: Person updates go through the profile
// service (password pair, email uniqueness); other classes get a plain
// whole-document replace.
func (h *VertexHandler) Update(c *gin.Context) {
	id := c.Param("vertexId")

	var payload repository.Document
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", nil)
		return
	}

	existing, err := h.Repo.FindOneByProperty(c.Request.Context(), repository.ClassVertexBase, repository.KeyID, id)
	if err != nil {
		h.Logger.WithError(err).Error("vertex lookup failed")
		response.Error[any](c, http.StatusInternalServerError, "update failed", nil)
		return
	}
	if existing == nil {
		response.Error[any](c, http.StatusNotFound, "No record found for id "+id, nil)
		return
	}
	class, _ := existing[repository.KeyClass].(string)

	if class == entity.ClassPerson {
		person, err := h.Profiles.Update(c.Request.Context(), id, payload)
		if err != nil {
			h.writeUpdateError(c, err)
			return
		}
		h.Indexer.IndexPerson(c.Request.Context(), person)
		response.Success(c, http.StatusOK, person.PublicDocument(), "success", nil)
		return
	}

	if pid := payload.ID(); pid != "" && pid != id {
		h.writeUpdateError(c, &application.IDMismatchError{PayloadID: pid, RouteID: id})
		return
	}
	doc, err := h.Repo.Replace(c.Request.Context(), class, id, payload)
	if err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			response.Error[any](c, http.StatusNotFound, "No record found for id "+id, nil)
			return
		}
		h.Logger.WithError(err).Error("vertex replace failed")
		response.Error[any](c, http.StatusInternalServerError, "update failed", nil)
		return
	}
	response.Success(c, http.StatusOK, redact(doc), "success", nil)
}

// writeUpdateError maps profile update errors onto the response contract:
// id and email conflicts are 400s, a failed password pair stays a 200 with
// an error body, missing records are 404s.
func (h *VertexHandler) writeUpdateError(c *gin.Context, err error) {
	var (
		mismatch *application.IDMismatchError
		valErr   *application.ValidationError
		notFound *application.NotFoundError
	)
	switch {
	case errors.As(err, &mismatch):
		response.Error[any](c, http.StatusBadRequest, mismatch.Error(), nil)
	case errors.As(err, &valErr):
		status := http.StatusOK
		if valErr.Code == application.CodeDuplicateEmail {
			status = http.StatusBadRequest
		}
		response.ErrorWithCode[any](c, status, valErr.Message, valErr.Code, nil)
	case errors.As(err, &notFound):
		response.Error[any](c, http.StatusNotFound, notFound.Message, nil)
	default:
		h.Logger.WithError(err).Error("profile update failed")
		response.Error[any](c, http.StatusInternalServerError, "update failed", nil)
	}
}

// Profile GET /api/profile
// Returns the record behind the current session.
func (h *VertexHandler) Profile(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserID)
	person, err := h.People.FindByID(c.Request.Context(), uid)
	if err != nil {
		h.Logger.WithError(err).Error("profile lookup failed")
		response.Error[any](c, http.StatusInternalServerError, "lookup failed", nil)
		return
	}
	if person == nil {
		response.Error[any](c, http.StatusNotFound, "No record found for id "+uid, nil)
		return
	}
	response.Success(c, http.StatusOK, person.PublicDocument(), "success", nil)
}

// UploadAvatar POST /api/profile/avatar
// Stores the file in the avatar bucket and writes its public URL onto the
// person record.
func (h *VertexHandler) UploadAvatar(c *gin.Context) {
	if h.GCS == nil || h.Cfg.GCSBucket == "" {
		response.Error[any](c, http.StatusServiceUnavailable, "avatar storage is not configured", nil)
		return
	}
	uid := c.GetString(middleware.CtxUserID)

	fh, err := c.FormFile("avatar")
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "an avatar file is required", nil)
		return
	}
	f, err := fh.Open()
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "could not read the avatar file", nil)
		return
	}
	defer f.Close()

	contentType := fh.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	objectPath := "avatars/" + uid + "/" + uuid.NewString() + filepath.Ext(fh.Filename)
	url, err := helpers.UploadObject(c.Request.Context(), h.GCS, h.Cfg.GCSBucket, objectPath, contentType, f)
	if err != nil {
		h.Logger.WithError(err).Error("avatar upload failed")
		response.Error[any](c, http.StatusInternalServerError, "avatar upload failed", nil)
		return
	}

	person, err := h.Profiles.Update(c.Request.Context(), uid, repository.Document{"avatar_url": url})
	if err != nil {
		h.writeUpdateError(c, err)
		return
	}
	h.Indexer.IndexPerson(c.Request.Context(), person)
	response.Success(c, http.StatusOK, person.PublicDocument(), "success", nil)
}

// SearchPersons GET /api/persons/search?q=
func (h *VertexHandler) SearchPersons(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		response.Error[any](c, http.StatusBadRequest, "query parameter q is required", nil)
		return
	}
	docs, err := h.Indexer.SearchPersons(c.Request.Context(), q)
	if err != nil {
		h.Logger.WithError(err).Error("person search failed")
		response.Error[any](c, http.StatusServiceUnavailable, "search is unavailable", nil)
		return
	}
	response.Success(c, http.StatusOK, docs, "success", gin.H{"count": len(docs)})
}
