package main

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/dealspot/backend/config"
	"github.com/dealspot/backend/internal/adapters/fakestore"
	"github.com/dealspot/backend/internal/adapters/rapidapi"
	"github.com/dealspot/backend/internal/adapters/scrape"
	"github.com/dealspot/backend/internal/adapters/serpapi"
	"github.com/dealspot/backend/internal/aggregate"
	httpDelivery "github.com/dealspot/backend/internal/delivery/http"
	"github.com/dealspot/backend/internal/domain"
	"github.com/dealspot/backend/internal/infrastructure/cache"
	"github.com/dealspot/backend/internal/linkres"
	"github.com/dealspot/backend/internal/logging"
	"github.com/dealspot/backend/internal/scheduler"
	"github.com/dealspot/backend/internal/wishlist"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	logging.Setup(logging.Config{
		Level:      cfg.Log.Level,
		JSONFormat: cfg.Log.Format == "json",
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
	})

	logrus.WithFields(logrus.Fields{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
	}).Info("starting dealspot backend")

	resolver := linkres.NewResolver()
	adapters := buildAdapters(cfg, resolver)

	cleaner := aggregate.NewCleaner(resolver)
	orchestrator := aggregate.NewOrchestrator(adapters, cleaner, resolver, aggregate.Config{
		AdapterTimeout: cfg.Aggregation.AdapterTimeout,
		MaxResults:     cfg.Aggregation.MaxResults,
	})

	memoryCache := cache.NewMemoryCache()
	wishlistStore := wishlist.NewMemoryStore()

	if cfg.Warmer.Enabled && len(cfg.Warmer.Queries) > 0 {
		warmer := scheduler.NewWarmer(orchestrator, memoryCache, cfg.Warmer.Queries, 2*cfg.Cache.TTL)
		if err := warmer.Start(cfg.Warmer.Schedule); err != nil {
			logrus.Fatalf("Failed to start cache warmer: %v", err)
		}
		defer warmer.Stop()
	}

	handler := httpDelivery.NewHandler(orchestrator, memoryCache, wishlistStore, cfg.Cache.TTL)
	router := httpDelivery.SetupRouter(cfg, handler)

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	logrus.WithField("addr", addr).Info("server listening")

	if err := router.Run(addr); err != nil {
		logrus.Fatalf("Failed to start server: %v", err)
	}
}

// buildAdapters assembles the source adapter registry from configuration.
// API-backed sources are always registered (missing keys skip themselves at
// call time); the deal-page scrapers are opt-in.
func buildAdapters(cfg *config.Config, resolver *linkres.Resolver) []domain.SourceAdapter {
	timeout := cfg.Aggregation.AdapterTimeout

	adapters := []domain.SourceAdapter{
		rapidapi.NewClient(cfg.Sources.RapidAPI.APIKey, cfg.Sources.RapidAPI.BaseURL, cfg.Sources.RapidAPI.Host, timeout, resolver),
		serpapi.NewClient(cfg.Sources.SerpAPI.APIKey, cfg.Sources.SerpAPI.BaseURL, timeout, resolver),
		fakestore.NewClient(cfg.Sources.FakeStore.BaseURL, timeout, resolver),
	}

	if cfg.Scrape.Enabled {
		fetcher := scrape.NewHTTPFetcher(cfg.Scrape.Timeout, cfg.Scrape.UserAgent)
		adapters = append(adapters, scrape.Adapters(fetcher, resolver)...)
	}

	if cfg.Sources.RapidAPI.APIKey == "" {
		logrus.Warn("RapidAPI key not configured; source will skip itself")
	}
	if cfg.Sources.SerpAPI.APIKey == "" {
		logrus.Warn("SerpAPI key not configured; source will skip itself")
	}

	logrus.WithField("adapters", len(adapters)).Info("source adapters registered")
	return adapters
}
