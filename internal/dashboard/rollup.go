package dashboard

import (
	"time"

	"github.com/pitchlane/startup-analytics-service/internal/models"
)

// headlineKinds are the four metrics surfaced on the dashboard's front
// page. The remaining tracked kinds feed only the engagement profiles.
var headlineKinds = []models.EventKind{
	models.KindPageVisit,
	models.KindPitchDeck,
	models.KindVideo,
	models.KindTotalShares,
}

// headlineCounts computes the all-time total and trailing-24h count for
// each headline metric in one pass over the raw list.
//
// Window-start comparisons here and in windowRollup are inclusive (>=):
// an event exactly at the boundary counts.
func headlineCounts(events []models.RawEvent, now time.Time) map[models.EventKind]HeadlineCount {
	cutoff := now.Add(-24 * time.Hour)

	counts := make(map[models.EventKind]HeadlineCount, len(headlineKinds))
	for _, kind := range headlineKinds {
		counts[kind] = HeadlineCount{}
	}

	for _, ev := range events {
		kind := models.EventKind(ev.Name)
		c, tracked := counts[kind]
		if !tracked {
			continue
		}
		ts, ok := eventTime(ev)
		if !ok {
			continue
		}
		c.Total++
		if !ts.Before(cutoff) {
			c.Last24Hours++
		}
		counts[kind] = c
	}

	return counts
}

// windowRollup builds one metric's rollup for one window: Total counts
// every matching event in the fetched range; buckets count only events
// on or after start whose label falls inside the window skeleton.
func windowRollup(events []models.RawEvent, kind models.EventKind, start time.Time, labels []string, layout string) WindowRollup {
	byLabel := make(map[string]int, len(labels))
	total := 0

	for _, ev := range events {
		if models.EventKind(ev.Name) != kind {
			continue
		}
		ts, ok := eventTime(ev)
		if !ok {
			continue
		}
		total++
		if ts.Before(start) {
			continue
		}
		byLabel[ts.Format(layout)]++
	}

	rollup := WindowRollup{Total: total}
	if layout == monthLayout {
		rollup.Months = zeroFill(labels, byLabel)
	} else {
		rollup.Days = zeroFill(labels, byLabel)
	}
	return rollup
}

// metricWindows assembles the four fixed windows for one metric over the
// shared raw list. Day windows trail by exact hours, month windows by
// calendar months.
func metricWindows(events []models.RawEvent, kind models.EventKind, now time.Time) MetricWindows {
	return MetricWindows{
		LastWeek:     windowRollup(events, kind, now.AddDate(0, 0, -7), dayLabels(now, 7), dayLayout),
		LastMonth:    windowRollup(events, kind, now.AddDate(0, 0, -30), dayLabels(now, 30), dayLayout),
		LastSixMonth: windowRollup(events, kind, monthWindowStart(now, 6), monthLabels(now, 6), monthLayout),
		LastYear:     windowRollup(events, kind, monthWindowStart(now, 12), monthLabels(now, 12), monthLayout),
	}
}
