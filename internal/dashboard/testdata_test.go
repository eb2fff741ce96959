package dashboard

import (
	"time"

	"github.com/pitchlane/startup-analytics-service/internal/models"
)

// ev builds a raw event the way the provider's export encodes one:
// the timestamp rides inside the property bag as a JSON number.
func ev(kind models.EventKind, ts time.Time, email string, extra map[string]interface{}) models.RawEvent {
	props := map[string]interface{}{
		models.PropTime: float64(ts.Unix()),
	}
	if email != "" {
		props[models.PropEmail] = email
	}
	for k, v := range extra {
		props[k] = v
	}
	return models.RawEvent{Name: string(kind), Properties: props}
}
