package router

import "github.com/gin-gonic/gin"

// Module describes a feature module that registers its routes. Public routes
// go on root, session-gated routes on api.
type Module interface {
	Register(root *gin.RouterGroup, api *gin.RouterGroup)
}
