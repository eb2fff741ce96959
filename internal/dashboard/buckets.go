package dashboard

import "time"

// Bucket labels are computed in UTC. The upstream dashboard used the
// host's local wall clock, which shifts day boundaries across regions
// and seasons; pinning UTC keeps labels stable wherever this runs.
const (
	dayLayout   = "2006-01-02"
	monthLayout = "2006-01"
)

// dayLabels returns n calendar-day labels ending at now's own day,
// in ascending chronological order.
func dayLabels(now time.Time, n int) []string {
	now = now.UTC()
	labels := make([]string, 0, n)
	for i := n - 1; i >= 0; i-- {
		labels = append(labels, now.AddDate(0, 0, -i).Format(dayLayout))
	}
	return labels
}

// monthLabels returns n calendar-month labels ending at now's own month,
// in ascending chronological order. Months are stepped from the first of
// the current month: stepping from day 29-31 would skip short months.
func monthLabels(now time.Time, n int) []string {
	now = now.UTC()
	anchor := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	labels := make([]string, 0, n)
	for i := n - 1; i >= 0; i-- {
		labels = append(labels, anchor.AddDate(0, -i, 0).Format(monthLayout))
	}
	return labels
}

// monthWindowStart returns midnight on the first day of the oldest
// month in an n-month skeleton, so the window covers every day whose
// label monthLabels emits. Stepping back from now itself would
// normalize month-end days past that boundary (Aug 31 minus six months
// lands on Mar 2, cutting off the start of March).
func monthWindowStart(now time.Time, n int) time.Time {
	now = now.UTC()
	anchor := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	return anchor.AddDate(0, -(n - 1), 0)
}

// zeroFill expands a label sequence into buckets, taking counts from m
// and zero for labels m never saw.
func zeroFill(labels []string, m map[string]int) []TimeBucket {
	buckets := make([]TimeBucket, 0, len(labels))
	for _, label := range labels {
		buckets = append(buckets, TimeBucket{Date: label, Qty: m[label]})
	}
	return buckets
}
