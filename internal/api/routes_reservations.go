package api

import (
	"github.com/gin-gonic/gin"

	"github.com/bookhaven/backend/internal/handlers"
)

func registerReservationRoutes(engine *gin.Engine, requireAuth gin.HandlerFunc, h *handlers.ReservationHandler) {
	reservations := engine.Group("/api/reservations")
	{
		reservations.GET("", h.List)
		reservations.GET("/:id", h.Get)
		reservations.GET("/user/:userID", h.ListByUser)
		reservations.GET("/restaurant/:restaurantID", h.ListByRestaurant)
		reservations.POST("", requireAuth, h.Create)
		reservations.PUT("/:id", requireAuth, h.Update)
		reservations.DELETE("/:id", requireAuth, h.Delete)
	}
}
