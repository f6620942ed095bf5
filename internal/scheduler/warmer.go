// Package scheduler keeps hot queries warm. The original deal sources are
// slow and flaky; re-aggregating a configured list of popular queries on a
// cron schedule keeps their cached responses fresh so interactive requests
// rarely pay the fan-out cost.
package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/dealspot/backend/internal/aggregate"
	"github.com/dealspot/backend/internal/domain"
)

// Aggregator is the slice of the orchestrator the warmer needs.
type Aggregator interface {
	Aggregate(ctx context.Context, query, sourceFilter string, maxResults int) (domain.AggregationResult, error)
}

// Warmer periodically re-aggregates popular queries and primes the response
// cache.
type Warmer struct {
	cron    *cron.Cron
	agg     Aggregator
	cache   domain.CacheRepository
	queries []string
	ttl     time.Duration
	timeout time.Duration
}

// NewWarmer creates a warmer over the given queries. ttl is how long a
// warmed response stays cached; it should comfortably exceed the schedule
// interval.
func NewWarmer(agg Aggregator, cache domain.CacheRepository, queries []string, ttl time.Duration) *Warmer {
	return &Warmer{
		agg:     agg,
		cache:   cache,
		queries: queries,
		ttl:     ttl,
		timeout: 60 * time.Second,
	}
}

// Start registers the warm run on the cron schedule and starts the scheduler.
func (w *Warmer) Start(schedule string) error {
	w.cron = cron.New()
	if _, err := w.cron.AddFunc(schedule, w.run); err != nil {
		return err
	}
	w.cron.Start()
	logrus.WithFields(logrus.Fields{"schedule": schedule, "queries": len(w.queries)}).Info("cache warmer started")
	return nil
}

// Stop halts the scheduler, waiting for a running warm pass to finish.
func (w *Warmer) Stop() {
	if w.cron != nil {
		<-w.cron.Stop().Done()
	}
}

func (w *Warmer) run() {
	for _, query := range w.queries {
		w.warmOne(query)
	}
}

func (w *Warmer) warmOne(query string) {
	ctx, cancel := context.WithTimeout(context.Background(), w.timeout)
	defer cancel()

	result, err := w.agg.Aggregate(ctx, query, "", aggregate.DefaultMaxResults)
	if err != nil {
		logrus.WithField("query", query).WithError(err).Warn("cache warm failed")
		return
	}

	key := aggregate.CacheKey(query, "", aggregate.DefaultMaxResults)
	if err := w.cache.Set(ctx, key, result, w.ttl); err != nil {
		logrus.WithField("query", query).WithError(err).Warn("cache warm store failed")
		return
	}
	logrus.WithFields(logrus.Fields{"query": query, "results": len(result)}).Debug("cache warmed")
}
