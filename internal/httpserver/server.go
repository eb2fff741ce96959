package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/pitchlane/startup-analytics-service/internal/auth"
	"github.com/pitchlane/startup-analytics-service/internal/config"
	"github.com/pitchlane/startup-analytics-service/internal/handlers"
	"github.com/pitchlane/startup-analytics-service/internal/store"
)

// NewRouter wires public endpoints and authenticated APIs.
// Public: /health, /ready
// API-key (tenant widget/SDK): /track-event
// Bearer JWT (founder dashboard): /initial-dashboard
func NewRouter(cfg config.Config, st *store.ReviewStore, tracker handlers.EventTracker, builder handlers.DashboardBuilder, log *logrus.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())

	// Liveness: confirms the process is running.
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Readiness: confirms the DB dependency is reachable.
	r.GET("/ready", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), time.Second)
		defer cancel()

		if err := st.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	// Ingestion group enforces tenant context via X-API-Key.
	ingestGroup := r.Group("/")
	ingestGroup.Use(auth.APIKeyMiddleware(cfg.APIKeys))
	handlers.RegisterTrackRoutes(ingestGroup, tracker, log)

	// Dashboard group enforces tenant context via Bearer JWT.
	dashGroup := r.Group("/")
	dashGroup.Use(auth.JWTMiddleware(cfg.JWTSecret))
	handlers.RegisterDashboardRoutes(dashGroup, builder, log)

	return r
}
