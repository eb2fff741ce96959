package models

// EventKind is one of the seven event names the dashboard tracks.
// Raw feeds may carry other names; the aggregation layer ignores them.
type EventKind string

const (
	KindPageVisit    EventKind = "Visit_Startup_Page"
	KindPitchDeck    EventKind = "Click_Pitch_Deck"
	KindVideo        EventKind = "Click_Video"
	KindDeckDownload EventKind = "Deck_Download"
	KindPassButton   EventKind = "Click_Pass_Startup_Button"
	KindConnectBtn   EventKind = "Click_Connect_Startup_Button"
	KindTotalShares  EventKind = "Total_Shares"
)

// TrackedKinds lists every kind requested from the event provider.
// Order matters only for the export query string, which is stable for caching.
var TrackedKinds = []EventKind{
	KindPageVisit,
	KindPitchDeck,
	KindVideo,
	KindDeckDownload,
	KindPassButton,
	KindConnectBtn,
	KindTotalShares,
}

// Well-known property keys inside a raw event's property bag.
const (
	PropTime           = "time"
	PropEmail          = "email_as_user_id"
	PropTimeOnPage     = "time_spent_on_page"
	PropBrowser        = "user_browser"
	PropDeviceType     = "user_device_type"
	PropOS             = "user_os"
	PropSlidesViewed   = "number_slides_viewed"
	PropTimePerSlide   = "time_spent_per_slide"
	PropTotalTime      = "total_time"
	PropTimeOnVideo    = "total_time_spent_on_video"
	PropFinishedVideo  = "finished_video"
	PropDeckDownloaded = "deck_download_yes"
	PropPassYes        = "pass_yes"
	PropConnectYes     = "connect_yes"
	PropShareCount     = "count"
	PropTenantID       = "startup_id"
)

// RawEvent is one record from the provider's export feed.
// Properties is schemaless: values may arrive as numbers, numeric strings,
// or be missing entirely, so consumers must coerce defensively.
type RawEvent struct {
	Name       string                 `json:"event"`
	Properties map[string]interface{} `json:"properties"`
}

// TrackEventRequest is the POST /track-event payload.
type TrackEventRequest struct {
	EventName  string                 `json:"event_name"`
	DistinctID string                 `json:"distinct_id,omitempty"`
	Properties map[string]interface{} `json:"properties,omitempty"`
}

// TrackEventResponse is returned by POST /track-event.
type TrackEventResponse struct {
	InsertID string `json:"insert_id"`
}
