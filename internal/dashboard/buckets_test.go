package dashboard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayLabelsAscendingAndComplete(t *testing.T) {
	now := time.Date(2024, 6, 15, 10, 30, 0, 0, time.UTC)

	labels := dayLabels(now, 7)
	require.Len(t, labels, 7)

	assert.Equal(t, "2024-06-09", labels[0])
	assert.Equal(t, "2024-06-15", labels[6])

	seen := map[string]bool{}
	for i := 1; i < len(labels); i++ {
		assert.Less(t, labels[i-1], labels[i], "labels must ascend")
	}
	for _, l := range labels {
		assert.False(t, seen[l], "duplicate label %s", l)
		seen[l] = true
	}
}

func TestDayLabelsCrossMonthBoundary(t *testing.T) {
	now := time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)

	labels := dayLabels(now, 7)
	assert.Equal(t, []string{
		"2024-02-25", "2024-02-26", "2024-02-27", "2024-02-28",
		"2024-02-29", "2024-03-01", "2024-03-02",
	}, labels)
}

func TestDayLabelsUseUTC(t *testing.T) {
	// 23:30 in UTC-5 is already the next day in UTC; labels must follow UTC.
	loc := time.FixedZone("UTC-5", -5*60*60)
	now := time.Date(2024, 6, 14, 23, 30, 0, 0, loc)

	labels := dayLabels(now, 1)
	assert.Equal(t, []string{"2024-06-15"}, labels)
}

func TestMonthLabelsAscendingAndComplete(t *testing.T) {
	now := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)

	labels := monthLabels(now, 12)
	require.Len(t, labels, 12)
	assert.Equal(t, "2023-07", labels[0])
	assert.Equal(t, "2024-06", labels[11])
}

func TestMonthLabelsFromMonthEndDoNotSkipShortMonths(t *testing.T) {
	// Stepping back from March 31 must still yield February.
	now := time.Date(2024, 3, 31, 12, 0, 0, 0, time.UTC)

	labels := monthLabels(now, 6)
	assert.Equal(t, []string{
		"2023-10", "2023-11", "2023-12", "2024-01", "2024-02", "2024-03",
	}, labels)
}

func TestZeroFillDefaultsMissingLabels(t *testing.T) {
	buckets := zeroFill([]string{"a", "b", "c"}, map[string]int{"b": 2})

	assert.Equal(t, []TimeBucket{
		{Date: "a", Qty: 0},
		{Date: "b", Qty: 2},
		{Date: "c", Qty: 0},
	}, buckets)
}
