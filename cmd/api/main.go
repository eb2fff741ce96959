package main

import (
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/pitchlane/startup-analytics-service/internal/cache"
	"github.com/pitchlane/startup-analytics-service/internal/config"
	"github.com/pitchlane/startup-analytics-service/internal/dashboard"
	"github.com/pitchlane/startup-analytics-service/internal/httpserver"
	"github.com/pitchlane/startup-analytics-service/internal/mixpanel"
	"github.com/pitchlane/startup-analytics-service/internal/store"
)

// main boots the service: config → DB → schema → provider client →
// engine → HTTP server.
func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// .env is optional; real deployments set the environment directly.
	if err := godotenv.Load(); err != nil {
		log.WithError(err).Debug("no .env file loaded")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	// Reviews live in Postgres; the dashboard joins them to visitors.
	db, err := store.NewReviewStore(cfg.DBURL)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	// Ensure required tables/indexes exist so `docker compose up --build` is enough.
	if err := db.EnsureSchema(); err != nil {
		log.Fatal(err)
	}

	mp := mixpanel.NewClient(mixpanel.Config{
		APISecret:     cfg.MixpanelAPISecret,
		Token:         cfg.MixpanelToken,
		ExportBaseURL: cfg.MixpanelExportURL,
		TrackBaseURL:  cfg.MixpanelTrackURL,
	}, log)

	// The raw event feed is expensive to pull; with REDIS_URL set, reuse
	// one export per tenant for the cache TTL.
	var events dashboard.EventSource = mp
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatalf("invalid REDIS_URL: %v", err)
		}
		events = cache.NewEventCache(mp, redis.NewClient(opts), cfg.EventCacheTTL, log)
	}

	engine := dashboard.NewEngine(events, db, log)

	router := httpserver.NewRouter(cfg, db, mp, engine, log)

	log.Infof("server started on :%s", cfg.Port)
	log.Fatal(router.Run(":" + cfg.Port))
}
