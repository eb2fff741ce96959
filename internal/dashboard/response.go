package dashboard

import (
	"github.com/pitchlane/startup-analytics-service/internal/models"
)

// Field names in these types are the stable public contract of the
// dashboard endpoint; renaming a JSON tag is a breaking change.

// HeadlineCount is an all-time total plus a trailing 24-hour count.
type HeadlineCount struct {
	Total       int `json:"total"`
	Last24Hours int `json:"last_24_hours"`
}

// TimeBucket is one calendar day or month slot within a window.
// Date is "2006-01-02" for day buckets and "2006-01" for month buckets.
type TimeBucket struct {
	Date string `json:"date"`
	Qty  int    `json:"qty"`
}

// WindowRollup is the per-window section of one metric: the metric's
// all-time total within the fetched range plus zero-filled buckets in
// ascending chronological order. Day windows populate Days, month
// windows populate Months.
type WindowRollup struct {
	Total  int          `json:"total"`
	Days   []TimeBucket `json:"days,omitempty"`
	Months []TimeBucket `json:"months,omitempty"`
}

// MetricWindows holds the four fixed trailing windows for one metric.
type MetricWindows struct {
	LastWeek     WindowRollup `json:"lastWeek"`
	LastMonth    WindowRollup `json:"lastMonth"`
	LastSixMonth WindowRollup `json:"lastSixMonth"`
	LastYear     WindowRollup `json:"lastYear"`
}

// RecentActivityEntry is one row of the top-4 most recently active
// visitors. Email is the literal "anonymous" when the visitor's review
// asked for anonymity. LastVisit is seconds since the visitor's most
// recent event.
type RecentActivityEntry struct {
	Email       string  `json:"email"`
	TotalVisits int     `json:"totalVisits"`
	LastVisit   float64 `json:"lastVisit"`
}

// SlideTime is the time a visitor spent on one pitch-deck slide.
type SlideTime struct {
	Slide int     `json:"slide"`
	Time  float64 `json:"time"`
}

// PitchDeckSnapshot is the latest pitch-deck interaction for a visitor.
type PitchDeckSnapshot struct {
	NumberSlidesViewed *float64    `json:"numberSlidesViewed"`
	TimeSpentPerSlide  []SlideTime `json:"timeSpentPerSlide"`
	TotalTime          *float64    `json:"totalTime"`
}

// VideoSnapshot is the latest video interaction for a visitor.
type VideoSnapshot struct {
	TotalTimeSpentOnVideo *float64 `json:"totalTimeSpentOnVideo"`
	FinishedVideo         *bool    `json:"finishedVideo"`
}

// DeckDownloadSnapshot is the latest deck-download flag for a visitor.
type DeckDownloadSnapshot struct {
	DeckDownloadYes *bool `json:"deckDownloadYes"`
}

// PassButtonSnapshot is the latest pass decision for a visitor.
type PassButtonSnapshot struct {
	PassYes *bool `json:"passYes"`
}

// ConnectButtonSnapshot is the latest connect decision for a visitor.
type ConnectButtonSnapshot struct {
	ConnectYes *bool `json:"connectYes"`
}

// EngagementProfile is the merged per-visitor view served in
// reviewsDashBoard. Exactly one profile exists per distinct email.
// Review is nil (JSON null) when no review is on file.
type EngagementProfile struct {
	Email                 string                `json:"email"`
	Review                *models.Review        `json:"review"`
	TotalVisits           int                   `json:"totalVisits"`
	TotalTimeSpentOnPages float64               `json:"totalTimeSpentOnPages"`
	UserBrowser           *string               `json:"userBrowser"`
	UserDeviceType        *string               `json:"userDeviceType"`
	UserOs                *string               `json:"userOs"`
	LatestPitchDeck       PitchDeckSnapshot     `json:"latestPitchDeck"`
	LatestVideo           VideoSnapshot         `json:"latestVideo"`
	LatestDeckDownload    DeckDownloadSnapshot  `json:"latestDeckDownload"`
	LatestPassButton      PassButtonSnapshot    `json:"latestPassButton"`
	LatestConnectButton   ConnectButtonSnapshot `json:"latestConnectButton"`
	TotalShares           float64               `json:"totalShares"`
	LastVisit             float64               `json:"lastVisit"`
}

// InitialDashboard is the headline half of the dashboard payload.
type InitialDashboard struct {
	TotalVisitor   HeadlineCount         `json:"totalVisitor"`
	PitchViews     HeadlineCount         `json:"pitchViews"`
	VideoViews     HeadlineCount         `json:"videoViews"`
	TotalShare     HeadlineCount         `json:"totalShare"`
	RecentActivity []RecentActivityEntry `json:"recentActivity"`
	PageVisit      MetricWindows         `json:"pageVisit"`
	PitchDeckView  MetricWindows         `json:"pitchDeckView"`
	TotalShares    MetricWindows         `json:"totalShares"`
	VideoView      MetricWindows         `json:"videoView"`
}

// Dashboard is the full response body of GET /initial-dashboard.
type Dashboard struct {
	InitialDashBoard InitialDashboard    `json:"initialDashBoard"`
	ReviewsDashBoard []EngagementProfile `json:"reviewsDashBoard"`
}
