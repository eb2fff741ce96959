package dashboard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pitchlane/startup-analytics-service/internal/models"
)

func TestEngagementProfilesScenario(t *testing.T) {
	events := []models.RawEvent{
		ev(models.KindPageVisit, testNow.AddDate(0, 0, -1), "a@x.com", map[string]interface{}{models.PropTimeOnPage: 30}),
		ev(models.KindPageVisit, testNow.AddDate(0, 0, -2), "a@x.com", map[string]interface{}{models.PropTimeOnPage: 45}),
		ev(models.KindTotalShares, testNow.AddDate(0, 0, -1), "a@x.com", map[string]interface{}{models.PropShareCount: 2}),
	}

	profiles := engagementProfiles(events, nil, testNow)

	require.Len(t, profiles, 1)
	p := profiles[0]
	assert.Equal(t, "a@x.com", p.Email)
	assert.Equal(t, 3, p.TotalVisits)
	assert.Equal(t, float64(75), p.TotalTimeSpentOnPages)
	assert.Equal(t, float64(2), p.TotalShares)
	assert.Nil(t, p.Review)
	assert.InDelta(t, (24 * time.Hour).Seconds(), p.LastVisit, 0.01)
}

func TestEngagementLatestWinsWithOutOfOrderInput(t *testing.T) {
	// Newest event first in the input; its browser snapshot must still win.
	events := []models.RawEvent{
		ev(models.KindPageVisit, testNow.Add(-time.Hour), "a@x.com", map[string]interface{}{
			models.PropBrowser:    "Firefox",
			models.PropDeviceType: "desktop",
			models.PropOS:         "Linux",
		}),
		ev(models.KindPageVisit, testNow.Add(-3*time.Hour), "a@x.com", map[string]interface{}{
			models.PropBrowser:    "Safari",
			models.PropDeviceType: "mobile",
			models.PropOS:         "iOS",
		}),
		ev(models.KindPageVisit, testNow.Add(-2*time.Hour), "a@x.com", map[string]interface{}{
			models.PropBrowser:    "Chrome",
			models.PropDeviceType: "tablet",
			models.PropOS:         "Android",
		}),
	}

	profiles := engagementProfiles(events, nil, testNow)

	require.Len(t, profiles, 1)
	p := profiles[0]
	require.NotNil(t, p.UserBrowser)
	assert.Equal(t, "Firefox", *p.UserBrowser)
	assert.Equal(t, "desktop", *p.UserDeviceType)
	assert.Equal(t, "Linux", *p.UserOs)
}

func TestEngagementEqualTimestampLaterRecordWins(t *testing.T) {
	ts := testNow.Add(-time.Hour)
	events := []models.RawEvent{
		ev(models.KindVideo, ts, "a@x.com", map[string]interface{}{models.PropTimeOnVideo: 10}),
		ev(models.KindVideo, ts, "a@x.com", map[string]interface{}{models.PropTimeOnVideo: 99}),
	}

	profiles := engagementProfiles(events, nil, testNow)

	require.Len(t, profiles, 1)
	require.NotNil(t, profiles[0].LatestVideo.TotalTimeSpentOnVideo)
	assert.Equal(t, float64(99), *profiles[0].LatestVideo.TotalTimeSpentOnVideo)
}

func TestEngagementNumericCoercionAndFailSoft(t *testing.T) {
	events := []models.RawEvent{
		// Numeric string coerces.
		ev(models.KindPageVisit, testNow.Add(-3*time.Hour), "a@x.com", map[string]interface{}{models.PropTimeOnPage: "45"}),
		// Garbage is skipped, not fatal, and the event still counts as a visit.
		ev(models.KindPageVisit, testNow.Add(-2*time.Hour), "a@x.com", map[string]interface{}{models.PropTimeOnPage: "lots"}),
		// Missing share count defaults to one share.
		ev(models.KindTotalShares, testNow.Add(-time.Hour), "a@x.com", nil),
		// Numeric-string share count coerces.
		ev(models.KindTotalShares, testNow.Add(-time.Hour), "a@x.com", map[string]interface{}{models.PropShareCount: "3"}),
		// Garbage share count adds nothing.
		ev(models.KindTotalShares, testNow.Add(-time.Hour), "a@x.com", map[string]interface{}{models.PropShareCount: "many"}),
	}

	profiles := engagementProfiles(events, nil, testNow)

	require.Len(t, profiles, 1)
	p := profiles[0]
	assert.Equal(t, 5, p.TotalVisits)
	assert.Equal(t, float64(45), p.TotalTimeSpentOnPages)
	assert.Equal(t, float64(4), p.TotalShares)
}

func TestEngagementPitchDeckSnapshotReshaping(t *testing.T) {
	events := []models.RawEvent{
		ev(models.KindPitchDeck, testNow.Add(-time.Hour), "a@x.com", map[string]interface{}{
			models.PropSlidesViewed: float64(3),
			models.PropTotalTime:    float64(120),
			models.PropTimePerSlide: map[string]interface{}{
				"2":    float64(50),
				"0":    float64(30),
				"1":    "40",    // numeric string coerces
				"oops": "junk",  // bad key dropped
				"3":    "weird", // bad value dropped
			},
		}),
	}

	profiles := engagementProfiles(events, nil, testNow)

	require.Len(t, profiles, 1)
	snap := profiles[0].LatestPitchDeck
	require.NotNil(t, snap.NumberSlidesViewed)
	assert.Equal(t, float64(3), *snap.NumberSlidesViewed)
	require.NotNil(t, snap.TotalTime)
	assert.Equal(t, float64(120), *snap.TotalTime)
	assert.Equal(t, []SlideTime{
		{Slide: 0, Time: 30},
		{Slide: 1, Time: 40},
		{Slide: 2, Time: 50},
	}, snap.TimeSpentPerSlide)
}

func TestEngagementKindSnapshotsAndFlags(t *testing.T) {
	events := []models.RawEvent{
		ev(models.KindVideo, testNow.Add(-4*time.Hour), "a@x.com", map[string]interface{}{
			models.PropTimeOnVideo:   float64(80),
			models.PropFinishedVideo: true,
		}),
		ev(models.KindDeckDownload, testNow.Add(-3*time.Hour), "a@x.com", map[string]interface{}{
			models.PropDeckDownloaded: "yes",
		}),
		ev(models.KindPassButton, testNow.Add(-2*time.Hour), "a@x.com", map[string]interface{}{
			models.PropPassYes: false,
		}),
		ev(models.KindConnectBtn, testNow.Add(-time.Hour), "a@x.com", map[string]interface{}{
			models.PropConnectYes: float64(1),
		}),
	}

	profiles := engagementProfiles(events, nil, testNow)

	require.Len(t, profiles, 1)
	p := profiles[0]
	require.NotNil(t, p.LatestVideo.FinishedVideo)
	assert.True(t, *p.LatestVideo.FinishedVideo)
	require.NotNil(t, p.LatestDeckDownload.DeckDownloadYes)
	assert.True(t, *p.LatestDeckDownload.DeckDownloadYes)
	require.NotNil(t, p.LatestPassButton.PassYes)
	assert.False(t, *p.LatestPassButton.PassYes)
	require.NotNil(t, p.LatestConnectButton.ConnectYes)
	assert.True(t, *p.LatestConnectButton.ConnectYes)
}

func TestEngagementStaleSnapshotDoesNotOverwrite(t *testing.T) {
	events := []models.RawEvent{
		ev(models.KindDeckDownload, testNow.Add(-time.Hour), "a@x.com", map[string]interface{}{
			models.PropDeckDownloaded: true,
		}),
		// Older event arriving later must not clobber the newer snapshot.
		ev(models.KindDeckDownload, testNow.Add(-5*time.Hour), "a@x.com", map[string]interface{}{
			models.PropDeckDownloaded: false,
		}),
	}

	profiles := engagementProfiles(events, nil, testNow)

	require.Len(t, profiles, 1)
	require.NotNil(t, profiles[0].LatestDeckDownload.DeckDownloadYes)
	assert.True(t, *profiles[0].LatestDeckDownload.DeckDownloadYes)
}

func TestEngagementReviewAttachmentAndAnonymization(t *testing.T) {
	five := 5
	events := []models.RawEvent{
		ev(models.KindPageVisit, testNow.Add(-time.Hour), "a@x.com", nil),
		ev(models.KindPageVisit, testNow.Add(-time.Hour), "b@x.com", nil),
	}
	reviews := map[string]models.Review{
		"a@x.com": {Email: "a@x.com", OveralRating: 4, TeamValue: &five, IsAnonymous: true},
		"b@x.com": {Email: "b@x.com", OveralRating: 3},
	}

	profiles := engagementProfiles(events, reviews, testNow)

	require.Len(t, profiles, 2)

	anon := profiles[0]
	assert.Equal(t, "anonymous", anon.Email)
	require.NotNil(t, anon.Review)
	// The attached review must not leak the address either.
	assert.Equal(t, "anonymous", anon.Review.Email)
	assert.Equal(t, 4, anon.Review.OveralRating)
	require.NotNil(t, anon.Review.TeamValue)
	assert.Equal(t, 5, *anon.Review.TeamValue)

	named := profiles[1]
	assert.Equal(t, "b@x.com", named.Email)
	require.NotNil(t, named.Review)
	assert.Equal(t, "b@x.com", named.Review.Email)
}

func TestEngagementMalformedEventDoesNotPoisonOtherActors(t *testing.T) {
	events := []models.RawEvent{
		ev(models.KindPageVisit, testNow.Add(-time.Hour), "a@x.com", map[string]interface{}{models.PropTimeOnPage: 10}),
		// No parseable timestamp: skipped entirely.
		{Name: string(models.KindPageVisit), Properties: map[string]interface{}{models.PropEmail: "b@x.com"}},
		ev(models.KindPageVisit, testNow.Add(-time.Hour), "c@x.com", map[string]interface{}{models.PropTimeOnPage: 20}),
	}

	profiles := engagementProfiles(events, nil, testNow)

	require.Len(t, profiles, 2)
	assert.Equal(t, "a@x.com", profiles[0].Email)
	assert.Equal(t, "c@x.com", profiles[1].Email)
}
