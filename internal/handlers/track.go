package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/pitchlane/startup-analytics-service/internal/auth"
	"github.com/pitchlane/startup-analytics-service/internal/models"
)

// EventTracker forwards one event to the analytics provider.
type EventTracker interface {
	Track(ctx context.Context, distinctID, eventName string, properties map[string]interface{}) error
}

// RegisterTrackRoutes registers the ingestion-path endpoint.
//
// POST /track-event
// - Requires X-API-Key (tenant context)
// - Stamps the tenant id into the event properties so the dashboard
//   export can filter on it, and a generated $insert_id so provider-side
//   retries dedupe
func RegisterTrackRoutes(r gin.IRoutes, tracker EventTracker, log *logrus.Logger) {
	r.POST("/track-event", func(c *gin.Context) {
		tenantID := auth.TenantID(c)
		if tenantID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		var req models.TrackEventRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON payload"})
			return
		}

		if req.EventName == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "event_name required"})
			return
		}
		if req.DistinctID == "" {
			req.DistinctID = "anonymous"
		}

		props := make(map[string]interface{}, len(req.Properties)+2)
		for k, v := range req.Properties {
			props[k] = v
		}
		props[models.PropTenantID] = tenantID

		insertID := uuid.New().String()
		props["$insert_id"] = insertID

		if err := tracker.Track(c.Request.Context(), req.DistinctID, req.EventName, props); err != nil {
			log.WithError(err).WithFields(logrus.Fields{
				"tenant_id":  tenantID,
				"event_name": req.EventName,
			}).Error("event forward failed")
			c.JSON(http.StatusBadGateway, gin.H{"error": "event tracking failed"})
			return
		}

		c.JSON(http.StatusOK, models.TrackEventResponse{InsertID: insertID})
	})
}
