package api

import (
	"github.com/gin-gonic/gin"

	"github.com/bookhaven/backend/internal/handlers"
)

func registerRestaurantRoutes(engine *gin.Engine, requireAuth gin.HandlerFunc, h *handlers.RestaurantHandler) {
	restaurants := engine.Group("/api/restaurants")
	{
		restaurants.GET("", h.List)
		restaurants.GET("/:id", h.Get)
		restaurants.POST("", requireAuth, h.Create)
		restaurants.PUT("/:id", requireAuth, h.Update)
		restaurants.DELETE("/:id", requireAuth, h.Delete)
	}
}
