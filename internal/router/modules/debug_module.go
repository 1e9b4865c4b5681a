package modules

import (
	"expvar"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vertexlabs/go-auth-boilerplate/internal/container"
	"github.com/vertexlabs/go-auth-boilerplate/internal/interface/middleware"
)

// DebugModule exposes runtime counters at /api/debug/vars. It rides inside
// the API group, so the session gate applies.
type DebugModule struct{}

func NewDebugModule() *DebugModule { return &DebugModule{} }

func (m *DebugModule) Register(root *gin.RouterGroup, api *gin.RouterGroup) {
	rl := middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByIPAndPath(), middleware.AllowPrivateIP())
	api.GET("/debug/vars", rl, gin.WrapH(expvar.Handler()))
}
