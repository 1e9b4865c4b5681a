package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vertexlabs/go-auth-boilerplate/pkg/response"
	"github.com/vertexlabs/go-auth-boilerplate/pkg/session"
)

// Context keys set by SessionGate for downstream handlers.
const (
	CtxUserID    = "userID"
	CtxUserEmail = "userEmail"
	CtxUserName  = "userName"
)

// SessionGate rejects requests that do not carry a valid session. Auth state
// lives entirely server-side; the cookie is only a signed pointer to it, so
// a bad signature and a missing store record are both "not authenticated".
func SessionGate(mgr *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		data, ok, err := mgr.Current(c)
		if err != nil {
			response.Error[any](c, http.StatusInternalServerError, "session lookup failed", err.Error())
			c.Abort()
			return
		}
		if !ok {
			response.Error[any](c, http.StatusUnauthorized, "Not Authenticated", nil)
			c.Abort()
			return
		}
		c.Set(CtxUserID, data.UserID)
		c.Set(CtxUserEmail, data.Email)
		c.Set(CtxUserName, data.Name)
		c.Next()
	}
}
