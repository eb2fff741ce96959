package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/pitchlane/startup-analytics-service/internal/auth"
	"github.com/pitchlane/startup-analytics-service/internal/dashboard"
)

// DashboardBuilder computes the analytics dashboard for one tenant.
type DashboardBuilder interface {
	BuildDashboard(ctx context.Context, tenantID string) (*dashboard.Dashboard, error)
}

// RegisterDashboardRoutes registers the serving-path endpoint.
//
// GET /initial-dashboard
// - Requires a Bearer token (tenant context)
// - Always 200 with a zero-filled body when the event provider is down;
//   500 only when review data cannot be read
func RegisterDashboardRoutes(r gin.IRoutes, builder DashboardBuilder, log *logrus.Logger) {
	r.GET("/initial-dashboard", func(c *gin.Context) {
		tenantID := auth.TenantID(c)
		if tenantID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		board, err := builder.BuildDashboard(c.Request.Context(), tenantID)
		if err != nil {
			log.WithError(err).WithField("tenant_id", tenantID).Error("dashboard build failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "dashboard build failed"})
			return
		}

		c.JSON(http.StatusOK, board)
	})
}
