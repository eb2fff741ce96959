package dashboard

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/pitchlane/startup-analytics-service/internal/models"
)

// Property bags from the event provider are type-unstable: the same key
// may arrive as a number, a numeric string, or be missing. All defensive
// coercion lives here so every use site applies the same rules.

// asFloat coerces numbers and numeric strings. Anything else reports false.
func asFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// asFloatPtr is asFloat for nullable output fields.
func asFloatPtr(v interface{}) *float64 {
	f, ok := asFloat(v)
	if !ok {
		return nil
	}
	return &f
}

// asString reports false for non-string values rather than stringifying
// them, so a numeric junk value never becomes an aggregation key.
func asString(v interface{}) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

// asStringPtr is asString for nullable output fields.
func asStringPtr(v interface{}) *string {
	s, ok := asString(v)
	if !ok {
		return nil
	}
	return &s
}

// asBoolPtr coerces boolean-ish values: real booleans, yes/no and
// true/false strings, and numbers (non-zero is true). Missing or
// unrecognizable values yield nil.
func asBoolPtr(v interface{}) *bool {
	var b bool
	switch t := v.(type) {
	case bool:
		b = t
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "true", "yes", "y", "1":
			b = true
		case "false", "no", "n", "0":
			b = false
		default:
			return nil
		}
	default:
		f, ok := asFloat(v)
		if !ok {
			return nil
		}
		b = f != 0
	}
	return &b
}

// eventTime extracts the event's Unix timestamp from its property bag.
// Events whose timestamp is missing or unparseable report false and are
// skipped by every aggregation pass, never failing the whole computation.
func eventTime(ev models.RawEvent) (time.Time, bool) {
	f, ok := asFloat(ev.Properties[models.PropTime])
	if !ok {
		return time.Time{}, false
	}
	return time.Unix(int64(f), 0).UTC(), true
}
