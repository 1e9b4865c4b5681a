package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/vertexlabs/go-auth-boilerplate/config"
	"github.com/vertexlabs/go-auth-boilerplate/internal/application"
	"github.com/vertexlabs/go-auth-boilerplate/internal/domain/entity"
	"github.com/vertexlabs/go-auth-boilerplate/pkg/helpers"
	"github.com/vertexlabs/go-auth-boilerplate/pkg/mailer"
	"github.com/vertexlabs/go-auth-boilerplate/pkg/response"
	"github.com/vertexlabs/go-auth-boilerplate/pkg/session"
	"github.com/vertexlabs/go-auth-boilerplate/pkg/validation"
)

// AuthHandler serves login, registration and logout. Failed credential and
// duplicate-registration checks answer 200 with an error-shaped body; the
// front end branches on the message and code fields, not the status line.
type AuthHandler struct {
	Auth     *application.AuthService
	Sessions *session.Manager
	Logger   *logrus.Logger
	Cfg      *config.Config
	Pub      *helpers.RabbitPublisher
	Indexer  *application.PersonIndexer
}

func NewAuthHandler(auth *application.AuthService, sessions *session.Manager, logger *logrus.Logger, cfg *config.Config, pub *helpers.RabbitPublisher, indexer *application.PersonIndexer) *AuthHandler {
	return &AuthHandler{Auth: auth, Sessions: sessions, Logger: logger, Cfg: cfg, Pub: pub, Indexer: indexer}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type registerRequest struct {
	FirstName      string `json:"first_name" binding:"required"`
	LastName       string `json:"last_name" binding:"required"`
	Email          string `json:"email" binding:"required,email"`
	Password       string `json:"password" binding:"required"`
	VerifyPassword string `json:"verify_password" binding:"required"`
}

// establish opens a session for the person and sets the cookie.
func (h *AuthHandler) establish(c *gin.Context, p *entity.Person) error {
	_, err := h.Sessions.Establish(c, session.Data{
		UserID: p.ID,
		Email:  p.Email,
		Name:   p.FirstName + " " + p.LastName,
	})
	return err
}

// queueWelcomeEmail drops a welcome job on the email queue. Best effort; a
// broker outage must not fail registration.
func (h *AuthHandler) queueWelcomeEmail(c *gin.Context, p *entity.Person) {
	if h.Pub == nil || !h.Cfg.MailSendEnabled {
		return
	}
	job := mailer.EmailJob{
		To:       p.Email,
		Template: mailer.TemplateWelcome,
		Data:     map[string]any{"first_name": p.FirstName},
	}
	if err := h.Pub.PublishJSON(c.Request.Context(), job); err != nil {
		h.Logger.WithError(err).Warn("failed to queue welcome email")
	}
}

// Login POST /login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	person, err := h.Auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		var authErr *application.AuthError
		if errors.As(err, &authErr) {
			response.Error[any](c, http.StatusOK, authErr.Message, nil)
			return
		}
		h.Logger.WithError(err).Error("login failed")
		response.Error[any](c, http.StatusInternalServerError, "login failed", nil)
		return
	}
	if err := h.establish(c, person); err != nil {
		h.Logger.WithError(err).Error("failed to establish session")
		response.Error[any](c, http.StatusInternalServerError, "failed to establish session", nil)
		return
	}
	response.Success(c, http.StatusOK, person.PublicDocument(), "success", nil)
}

// Register POST /register
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	person, err := h.Auth.Register(c.Request.Context(), application.RegisterInput{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		Password:       req.Password,
		VerifyPassword: req.VerifyPassword,
	})
	if err != nil {
		var valErr *application.ValidationError
		if errors.As(err, &valErr) {
			response.ErrorWithCode[any](c, http.StatusOK, valErr.Message, valErr.Code, nil)
			return
		}
		h.Logger.WithError(err).Error("registration failed")
		response.Error[any](c, http.StatusInternalServerError, "registration failed", nil)
		return
	}
	if err := h.establish(c, person); err != nil {
		h.Logger.WithError(err).Error("failed to establish session")
		response.Error[any](c, http.StatusInternalServerError, "failed to establish session", nil)
		return
	}
	h.Indexer.IndexPerson(c.Request.Context(), person)
	h.queueWelcomeEmail(c, person)
	response.Success(c, http.StatusOK, person.PublicDocument(), "success", nil)
}

// Logout GET /logout. A failed store delete is a 500, never a silent
// success; logging out without a session is a 401 like any other
// unauthenticated call.
func (h *AuthHandler) Logout(c *gin.Context) {
	err := h.Sessions.Destroy(c)
	if errors.Is(err, session.ErrNoSession) {
		response.Error[any](c, http.StatusUnauthorized, "Not Authenticated", nil)
		return
	}
	if err != nil {
		h.Logger.WithError(err).Error("failed to destroy session")
		response.Error[any](c, http.StatusInternalServerError, "logout failed", nil)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "success", nil)
}
