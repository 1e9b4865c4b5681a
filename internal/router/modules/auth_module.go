package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vertexlabs/go-auth-boilerplate/internal/container"
	handlers "github.com/vertexlabs/go-auth-boilerplate/internal/interface/http"
	"github.com/vertexlabs/go-auth-boilerplate/internal/interface/middleware"
)

// AuthModule registers the public authentication endpoints at the site root.
type AuthModule struct {
	Handler *handlers.AuthHandler
}

func NewAuthModule(h *handlers.AuthHandler) *AuthModule {
	return &AuthModule{Handler: h}
}

func (m *AuthModule) Register(root *gin.RouterGroup, api *gin.RouterGroup) {
	// Credential endpoints get tight per-IP limits; logout is cheap.
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIPAndPath(), middleware.AllowPrivateIP())
	registerLimiter := middleware.RateLimit(container.GetRedis(), 5, time.Minute, middleware.KeyByIPAndPath(), middleware.AllowPrivateIP())

	root.POST("/login", loginLimiter, m.Handler.Login)
	root.POST("/register", registerLimiter, m.Handler.Register)
	root.GET("/logout", m.Handler.Logout)
}
