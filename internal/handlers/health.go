package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	appErrors "github.com/bookhaven/backend/pkg/errors"
	"github.com/bookhaven/backend/pkg/response"
)

// Health reports service liveness and database reachability.
func Health(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if db != nil {
			if sqlDB, err := db.DB(); err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
				response.Error(c, appErrors.New(
					"SERVICE_UNAVAILABLE",
					"Service degraded.",
					http.StatusServiceUnavailable,
				))
				return
			}
		}

		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	}
}
