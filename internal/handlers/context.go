package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/bookhaven/backend/internal/middleware"
)

// currentUserID returns the authenticated account id placed in the request
// context by the auth middleware.
func currentUserID(c *gin.Context) (string, bool) {
	v, ok := c.Get(middleware.CtxUserIDKey)
	if !ok {
		return "", false
	}
	id, _ := v.(string)
	return id, id != ""
}
