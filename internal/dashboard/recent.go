package dashboard

import (
	"sort"
	"time"

	"github.com/pitchlane/startup-analytics-service/internal/models"
)

// recentActivityLimit caps the recent-activity list at the four most
// recently active visitors.
const recentActivityLimit = 4

// anonymousIdentity replaces a visitor's email whenever their review
// asked for anonymity.
const anonymousIdentity = "anonymous"

// recentActivity groups events by visitor email, ranks visitors by how
// recently they were seen, and returns the top entries. Events without
// an email are excluded. The stable sort plus first-seen tiebreak keeps
// the output deterministic for identical input.
func recentActivity(events []models.RawEvent, reviews map[string]models.Review, now time.Time) []RecentActivityEntry {
	type visitor struct {
		count int
		last  time.Time
	}

	byEmail := make(map[string]*visitor)
	var order []string

	for _, ev := range events {
		email, ok := asString(ev.Properties[models.PropEmail])
		if !ok || email == "" {
			continue
		}
		ts, ok := eventTime(ev)
		if !ok {
			continue
		}
		v := byEmail[email]
		if v == nil {
			v = &visitor{}
			byEmail[email] = v
			order = append(order, email)
		}
		v.count++
		if ts.After(v.last) {
			v.last = ts
		}
	}

	entries := make([]RecentActivityEntry, 0, len(order))
	for _, email := range order {
		v := byEmail[email]
		identity := email
		if review, ok := reviews[email]; ok && review.IsAnonymous {
			identity = anonymousIdentity
		}
		entries = append(entries, RecentActivityEntry{
			Email:       identity,
			TotalVisits: v.count,
			LastVisit:   now.Sub(v.last).Seconds(),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].LastVisit < entries[j].LastVisit
	})

	if len(entries) > recentActivityLimit {
		entries = entries[:recentActivityLimit]
	}
	return entries
}
