package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config contains runtime configuration required by the service.
type Config struct {
	DBURL   string
	APIKeys map[string]string // apiKey -> tenantID

	JWTSecret string

	MixpanelToken     string
	MixpanelAPISecret string
	MixpanelExportURL string // override only in tests/dev
	MixpanelTrackURL  string

	RedisURL      string // empty disables the event cache
	EventCacheTTL time.Duration

	Port string
}

// Load reads required values from environment variables.
// API_KEYS format: "tenant1:key1,tenant2:key2"
func Load() (Config, error) {
	dbURL := strings.TrimSpace(os.Getenv("DB_URL"))
	if dbURL == "" {
		return Config{}, errors.New("DB_URL required")
	}

	jwtSecret := strings.TrimSpace(os.Getenv("JWT_SECRET"))
	if jwtSecret == "" {
		return Config{}, errors.New("JWT_SECRET required")
	}

	apiSecret := strings.TrimSpace(os.Getenv("MIXPANEL_API_SECRET"))
	if apiSecret == "" {
		return Config{}, errors.New("MIXPANEL_API_SECRET required")
	}

	apiKeys, err := parseAPIKeys(os.Getenv("API_KEYS"))
	if err != nil {
		return Config{}, err
	}

	cacheTTL := 3 * time.Hour
	if raw := strings.TrimSpace(os.Getenv("EVENT_CACHE_TTL_SECONDS")); raw != "" {
		secs, err := strconv.Atoi(raw)
		if err != nil || secs <= 0 {
			return Config{}, errors.New("EVENT_CACHE_TTL_SECONDS must be a positive integer")
		}
		cacheTTL = time.Duration(secs) * time.Second
	}

	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	return Config{
		DBURL:             dbURL,
		APIKeys:           apiKeys,
		JWTSecret:         jwtSecret,
		MixpanelToken:     strings.TrimSpace(os.Getenv("MIXPANEL_TOKEN")),
		MixpanelAPISecret: apiSecret,
		MixpanelExportURL: strings.TrimSpace(os.Getenv("MIXPANEL_EXPORT_URL")),
		MixpanelTrackURL:  strings.TrimSpace(os.Getenv("MIXPANEL_TRACK_URL")),
		RedisURL:          strings.TrimSpace(os.Getenv("REDIS_URL")),
		EventCacheTTL:     cacheTTL,
		Port:              port,
	}, nil
}

func parseAPIKeys(raw string) (map[string]string, error) {
	apiKeys := map[string]string{}

	for _, p := range strings.Split(strings.TrimSpace(raw), ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		parts := strings.SplitN(p, ":", 2)
		if len(parts) != 2 {
			return nil, errors.New(`API_KEYS must be "tenant:key,tenant:key"`)
		}
		tenant := strings.TrimSpace(parts[0])
		key := strings.TrimSpace(parts[1])
		if tenant == "" || key == "" {
			return nil, errors.New(`API_KEYS must be "tenant:key,tenant:key"`)
		}
		apiKeys[key] = tenant
	}

	// Local dev fallback so the service runs out-of-the-box.
	if len(apiKeys) == 0 {
		apiKeys["tenant-key-123"] = "tenant1"
	}

	return apiKeys, nil
}
