package api

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/bookhaven/backend/internal/app"
	iauth "github.com/bookhaven/backend/internal/auth"
	"github.com/bookhaven/backend/internal/handlers"
	"github.com/bookhaven/backend/internal/middleware"
)

// NewRouter builds the Gin engine, wires global middleware, and registers
// every route group.
func NewRouter(db *gorm.DB, tokens *iauth.TokenService, authSvc *iauth.Service, cfg *app.Config) (*gin.Engine, error) {
	if db == nil {
		return nil, fmt.Errorf("database handle must be provided")
	}
	if tokens == nil {
		return nil, fmt.Errorf("token service must be provided")
	}
	if authSvc == nil {
		return nil, fmt.Errorf("auth service must be provided")
	}
	if cfg == nil {
		return nil, fmt.Errorf("config must be provided")
	}

	r := gin.New()

	r.Use(middleware.Recovery())
	r.Use(middleware.Logger())
	r.Use(middleware.Metrics())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS())
	r.Use(middleware.RateLimit(cfg.Server.RateLimit.MaxRequests, cfg.Server.RateLimit.Window))

	r.GET("/health", handlers.Health(db))

	if cfg.Monitoring.Prometheus.Enabled {
		r.GET(cfg.Monitoring.Prometheus.Endpoint, gin.WrapH(promhttp.Handler()))
	}

	requireAuth := middleware.Auth(tokens)

	authHandler, err := handlers.NewAuthHandler(authSvc)
	if err != nil {
		return nil, err
	}
	registerAuthRoutes(r, requireAuth, authHandler)

	bookHandler, err := handlers.NewBookHandler(db)
	if err != nil {
		return nil, err
	}
	registerBookRoutes(r, requireAuth, bookHandler)

	restaurantHandler, err := handlers.NewRestaurantHandler(db)
	if err != nil {
		return nil, err
	}
	registerRestaurantRoutes(r, requireAuth, restaurantHandler)

	reservationHandler, err := handlers.NewReservationHandler(db)
	if err != nil {
		return nil, err
	}
	registerReservationRoutes(r, requireAuth, reservationHandler)

	r.NoRoute(middleware.NotFoundHandler)

	return r, nil
}
