package api

import (
	"github.com/gin-gonic/gin"

	"github.com/bookhaven/backend/internal/handlers"
)

func registerBookRoutes(engine *gin.Engine, requireAuth gin.HandlerFunc, h *handlers.BookHandler) {
	books := engine.Group("/api/books")
	{
		books.GET("", h.List)
		books.GET("/:id", h.Get)
		books.POST("", requireAuth, h.Create)
		books.PUT("/:id", requireAuth, h.Update)
		books.DELETE("/:id", requireAuth, h.Delete)
	}
}
