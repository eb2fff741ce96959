// Package cache provides a Redis read-through layer in front of the
// event provider, so repeated dashboard loads within the TTL reuse one
// export call instead of re-fetching a year of raw events.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"

	"github.com/pitchlane/startup-analytics-service/internal/dashboard"
	"github.com/pitchlane/startup-analytics-service/internal/models"
)

// DefaultTTL matches the three-hour freshness the product tolerates for
// dashboard analytics.
const DefaultTTL = 3 * time.Hour

// EventCache wraps an EventSource with a per-tenant Redis cache. Every
// cache failure degrades to a direct provider fetch; the cache can never
// make the dashboard less available than the provider itself.
type EventCache struct {
	inner dashboard.EventSource
	rdb   *redis.Client
	ttl   time.Duration
	log   *logrus.Logger
}

var _ dashboard.EventSource = (*EventCache)(nil)

// NewEventCache builds the read-through wrapper.
func NewEventCache(inner dashboard.EventSource, rdb *redis.Client, ttl time.Duration, log *logrus.Logger) *EventCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if log == nil {
		log = logrus.New()
	}
	return &EventCache{inner: inner, rdb: rdb, ttl: ttl, log: log}
}

// FetchEvents serves the tenant's cached event snapshot when present,
// otherwise fetches from the provider and stores the result.
//
// The key deliberately ignores from/to: all callers use the same
// trailing window, and within one TTL the window drifts by at most the
// TTL itself.
func (c *EventCache) FetchEvents(ctx context.Context, tenantID string, from, to time.Time, kinds []models.EventKind) ([]models.RawEvent, error) {
	key := "dashboard_events:" + tenantID

	data, err := c.rdb.Get(ctx, key).Result()
	switch {
	case err == nil:
		var events []models.RawEvent
		if jsonErr := json.Unmarshal([]byte(data), &events); jsonErr == nil {
			return events, nil
		}
		// Corrupt entry: drop it and fall through to a real fetch.
		c.rdb.Del(ctx, key)
	case err != redis.Nil:
		c.log.WithError(err).Warn("event cache read failed, fetching from provider")
	}

	events, err := c.inner.FetchEvents(ctx, tenantID, from, to, kinds)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(events); err == nil {
		if err := c.rdb.Set(ctx, key, payload, c.ttl).Err(); err != nil {
			c.log.WithError(err).Warn("event cache write failed")
		}
	}

	return events, nil
}
