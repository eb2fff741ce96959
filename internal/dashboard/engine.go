package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/pitchlane/startup-analytics-service/internal/models"
)

// fetchWindowDays is how far back the engine asks the event provider for
// raw events on every dashboard build.
const fetchWindowDays = 365

// fetchTimeout bounds the provider call; the provider itself specifies
// no timeout contract.
const fetchTimeout = 15 * time.Second

// EventSource returns the raw, unordered event list for one tenant and
// time range. A read-through cache may wrap the real provider client.
type EventSource interface {
	FetchEvents(ctx context.Context, tenantID string, from, to time.Time, kinds []models.EventKind) ([]models.RawEvent, error)
}

// ReviewLookup returns every active review for a tenant. The engine
// batches reviews up front instead of issuing per-visitor point reads.
type ReviewLookup interface {
	FindAllReviews(ctx context.Context, tenantID string) ([]models.Review, error)
}

// Engine computes the analytics dashboard from one snapshot of raw
// events. It holds no mutable state between calls: every build fetches
// fresh input and runs pure aggregation passes over it.
type Engine struct {
	events  EventSource
	reviews ReviewLookup
	now     func() time.Time
	log     *logrus.Logger
}

// NewEngine wires the engine to its collaborators.
func NewEngine(events EventSource, reviews ReviewLookup, log *logrus.Logger) *Engine {
	if log == nil {
		log = logrus.New()
	}
	return &Engine{
		events:  events,
		reviews: reviews,
		now:     time.Now,
		log:     log,
	}
}

// BuildDashboard assembles the full dashboard payload for one tenant.
//
// Provider failures degrade to an empty window: every total is zero,
// every bucket array stays fully zero-filled, and both activity lists
// are empty. Analytics is supplementary, so the dashboard renders with
// zeros instead of an error page when the provider is down.
//
// Review-lookup failures are returned as errors: serving profiles
// without review data would expose the email of reviewers who asked to
// stay anonymous.
func (e *Engine) BuildDashboard(ctx context.Context, tenantID string) (*Dashboard, error) {
	now := e.now().UTC()
	from := now.AddDate(0, 0, -fetchWindowDays)

	fetchCtx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	events, err := e.events.FetchEvents(fetchCtx, tenantID, from, now, models.TrackedKinds)
	if err != nil {
		e.log.WithError(err).WithField("tenant_id", tenantID).
			Warn("event fetch failed, serving empty dashboard window")
		events = nil
	}

	reviewList, err := e.reviews.FindAllReviews(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("fetch reviews for tenant %s: %w", tenantID, err)
	}
	reviews := make(map[string]models.Review, len(reviewList))
	for _, r := range reviewList {
		reviews[r.Email] = r
	}

	headline := headlineCounts(events, now)

	return &Dashboard{
		InitialDashBoard: InitialDashboard{
			TotalVisitor:   headline[models.KindPageVisit],
			PitchViews:     headline[models.KindPitchDeck],
			VideoViews:     headline[models.KindVideo],
			TotalShare:     headline[models.KindTotalShares],
			RecentActivity: recentActivity(events, reviews, now),
			PageVisit:      metricWindows(events, models.KindPageVisit, now),
			PitchDeckView:  metricWindows(events, models.KindPitchDeck, now),
			TotalShares:    metricWindows(events, models.KindTotalShares, now),
			VideoView:      metricWindows(events, models.KindVideo, now),
		},
		ReviewsDashBoard: engagementProfiles(events, reviews, now),
	}, nil
}
