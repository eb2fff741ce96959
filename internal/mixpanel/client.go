// Package mixpanel talks to the external analytics provider: the raw
// event export API feeding the dashboard, and the ingestion API used by
// the tracking endpoint.
package mixpanel

import (
	"bufio"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/pitchlane/startup-analytics-service/internal/models"
)

const (
	defaultExportBaseURL = "https://data.mixpanel.com"
	defaultTrackBaseURL  = "https://api.mixpanel.com"

	exportDateLayout = "2006-01-02"

	// Export responses stream one JSON object per line; single events
	// with large property bags still fit well under this.
	maxLineBytes = 1 << 20
)

// Config holds provider credentials and endpoint overrides. Base URLs
// default to the hosted provider and are overridden in tests.
type Config struct {
	APISecret     string
	Token         string
	ExportBaseURL string
	TrackBaseURL  string
}

// Client is the provider client. It is constructed once in main and
// passed to whoever needs it; nothing here is process-global.
type Client struct {
	httpClient *http.Client
	exportBase string
	trackBase  string
	apiSecret  string
	token      string
	log        *logrus.Logger
}

// NewClient builds a provider client with a bounded request timeout.
func NewClient(cfg Config, log *logrus.Logger) *Client {
	if log == nil {
		log = logrus.New()
	}
	exportBase := cfg.ExportBaseURL
	if exportBase == "" {
		exportBase = defaultExportBaseURL
	}
	trackBase := cfg.TrackBaseURL
	if trackBase == "" {
		trackBase = defaultTrackBaseURL
	}
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		exportBase: strings.TrimRight(exportBase, "/"),
		trackBase:  strings.TrimRight(trackBase, "/"),
		apiSecret:  cfg.APISecret,
		token:      cfg.Token,
		log:        log,
	}
}

// FetchEvents pulls the tenant's raw events for [from, to] from the
// export API. The response is newline-delimited JSON; a line that fails
// to parse is skipped so one corrupt record never empties the feed.
func (c *Client) FetchEvents(ctx context.Context, tenantID string, from, to time.Time, kinds []models.EventKind) ([]models.RawEvent, error) {
	names := make([]string, 0, len(kinds))
	for _, k := range kinds {
		names = append(names, string(k))
	}
	eventFilter, err := json.Marshal(names)
	if err != nil {
		return nil, fmt.Errorf("encode event filter: %w", err)
	}

	params := url.Values{}
	params.Set("from_date", from.UTC().Format(exportDateLayout))
	params.Set("to_date", to.UTC().Format(exportDateLayout))
	params.Set("event", string(eventFilter))
	params.Set("where", fmt.Sprintf(`properties["%s"] == "%s"`, models.PropTenantID, tenantID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.exportBase+"/api/2.0/export/?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", basicAuth(c.apiSecret))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("export request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("export request: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var events []models.RawEvent

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var ev models.RawEvent
		if err := json.Unmarshal([]byte(line), &ev); err != nil {
			c.log.WithError(err).Debug("skipping malformed export line")
			continue
		}
		events = append(events, ev)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read export stream: %w", err)
	}

	return events, nil
}

// Track sends one event to the ingestion API. Properties are shallow
// copied before the token is stamped in, so the caller's map is never
// mutated.
func (c *Client) Track(ctx context.Context, distinctID, eventName string, properties map[string]interface{}) error {
	props := make(map[string]interface{}, len(properties)+3)
	for k, v := range properties {
		props[k] = v
	}
	props["token"] = c.token
	props["distinct_id"] = distinctID
	if _, ok := props[models.PropTime]; !ok {
		props[models.PropTime] = time.Now().Unix()
	}

	payload, err := json.Marshal(map[string]interface{}{
		"event":      eventName,
		"properties": props,
	})
	if err != nil {
		return fmt.Errorf("encode track payload: %w", err)
	}

	form := url.Values{}
	form.Set("data", base64.StdEncoding.EncodeToString(payload))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.trackBase+"/track", strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("track request: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("track request: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	// The ingestion API reports acceptance as a literal "1" body.
	if strings.TrimSpace(string(body)) != "1" {
		return fmt.Errorf("track request rejected: %s", strings.TrimSpace(string(body)))
	}
	return nil
}

// basicAuth builds the export API's secret-as-username credential.
func basicAuth(secret string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(secret+":"))
}
