package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vertexlabs/go-auth-boilerplate/internal/container"
	handlers "github.com/vertexlabs/go-auth-boilerplate/internal/interface/http"
	"github.com/vertexlabs/go-auth-boilerplate/internal/interface/middleware"
)

// VertexModule registers the session-gated vertex API.
type VertexModule struct {
	Handler *handlers.VertexHandler
}

func NewVertexModule(h *handlers.VertexHandler) *VertexModule {
	return &VertexModule{Handler: h}
}

func (m *VertexModule) Register(root *gin.RouterGroup, api *gin.RouterGroup) {
	limiter := middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyBySession(), middleware.AllowPrivateIP())

	api.GET("/profile", limiter, m.Handler.Profile)
	api.POST("/profile/avatar", limiter, m.Handler.UploadAvatar)
	api.GET("/persons/search", limiter, m.Handler.SearchPersons)

	api.GET("/vertices/:vertexType", limiter, m.Handler.List)
	api.GET("/vertex/:vertexId", limiter, m.Handler.Get)
	api.PUT("/vertex/:vertexId", limiter, m.Handler.Update)
}
