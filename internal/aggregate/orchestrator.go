// Package aggregate fans a product query out to every configured source
// adapter, merges whatever settles, heals partial output, and ranks the
// result. One adapter failing (or all of them) never fails the request.
package aggregate

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/dealspot/backend/internal/domain"
	"github.com/dealspot/backend/internal/linkres"
)

// DefaultMaxResults caps the final record list when the caller does not
// specify a limit.
const DefaultMaxResults = 20

// Outcome records how one adapter call settled, for diagnostics only.
type Outcome struct {
	Adapter string
	Count   int
	Err     error
}

// Config holds orchestrator tuning.
type Config struct {
	// AdapterTimeout bounds each adapter call. Zero selects 10s.
	AdapterTimeout time.Duration
	// MaxResults is the default result cap. Zero selects DefaultMaxResults.
	MaxResults int
}

// Orchestrator coordinates the source adapters and the post-processing
// pipeline. It holds no per-request state; every Aggregate call builds its
// own record list.
type Orchestrator struct {
	adapters       []domain.SourceAdapter
	cleaner        *Cleaner
	resolver       *linkres.Resolver
	adapterTimeout time.Duration
	maxResults     int
}

// NewOrchestrator creates an orchestrator over the given adapters.
func NewOrchestrator(adapters []domain.SourceAdapter, cleaner *Cleaner, resolver *linkres.Resolver, cfg Config) *Orchestrator {
	timeout := cfg.AdapterTimeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}
	return &Orchestrator{
		adapters:       adapters,
		cleaner:        cleaner,
		resolver:       resolver,
		adapterTimeout: timeout,
		maxResults:     maxResults,
	}
}

// Aggregate runs the query against the selected adapters concurrently and
// returns the cleaned, deduplicated, discount-ranked record list capped at
// maxResults. An empty query is the only error; every other failure mode
// degrades to the fallback set.
func (o *Orchestrator) Aggregate(ctx context.Context, query, sourceFilter string, maxResults int) (domain.AggregationResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, domain.ErrEmptyQuery
	}
	if maxResults <= 0 {
		maxResults = o.maxResults
	}

	selected := o.selectAdapters(sourceFilter)

	merged, outcomes := o.fanOut(ctx, selected, query)

	for _, outcome := range outcomes {
		if outcome.Err != nil {
			logrus.WithFields(logrus.Fields{
				"adapter": outcome.Adapter,
				"query":   query,
			}).WithError(outcome.Err).Warn("source adapter failed")
		}
	}

	if len(merged) == 0 {
		logrus.WithField("query", query).Info("all sources empty, serving fallback set")
		merged = fallbackRecords(query, o.resolver)
	}

	merged = o.cleaner.Clean(merged)
	merged = dedupByID(merged)
	sortByDiscount(merged)

	if len(merged) > maxResults {
		merged = merged[:maxResults]
	}

	logrus.WithFields(logrus.Fields{
		"query":   query,
		"sources": len(selected),
		"results": len(merged),
	}).Info("aggregation complete")

	return merged, nil
}

// selectAdapters returns the adapters matching sourceFilter, or all of them
// when the filter is empty. An unknown filter selects nothing, which flows
// into the fallback path.
func (o *Orchestrator) selectAdapters(sourceFilter string) []domain.SourceAdapter {
	if sourceFilter == "" {
		return o.adapters
	}
	var selected []domain.SourceAdapter
	for _, a := range o.adapters {
		if strings.EqualFold(a.Name(), sourceFilter) {
			selected = append(selected, a)
		}
	}
	return selected
}

// fanOut issues the query to every adapter concurrently and waits for all of
// them to settle. Each call carries its own timeout; a slow or failing
// adapter neither cancels its siblings nor aborts the join. Panicking
// adapters are captured as failures.
func (o *Orchestrator) fanOut(ctx context.Context, adapters []domain.SourceAdapter, query string) ([]domain.ProductRecord, []Outcome) {
	var (
		mu       sync.Mutex
		wg       sync.WaitGroup
		merged   []domain.ProductRecord
		outcomes []Outcome
	)

	for _, adapter := range adapters {
		wg.Add(1)
		go func(a domain.SourceAdapter) {
			defer wg.Done()

			actx, cancel := context.WithTimeout(ctx, o.adapterTimeout)
			defer cancel()

			records, err := o.fetchOne(actx, a, query)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				outcomes = append(outcomes, Outcome{Adapter: a.Name(), Err: err})
				return
			}
			merged = append(merged, records...)
			outcomes = append(outcomes, Outcome{Adapter: a.Name(), Count: len(records)})
		}(adapter)
	}
	wg.Wait()

	return merged, outcomes
}

// fetchOne invokes a single adapter, converting panics into errors so a
// misbehaving adapter cannot take the whole aggregation down.
func (o *Orchestrator) fetchOne(ctx context.Context, a domain.SourceAdapter, query string) (records []domain.ProductRecord, err error) {
	defer func() {
		if r := recover(); r != nil {
			records = nil
			err = fmt.Errorf("adapter panic: %v", r)
		}
	}()
	return a.Fetch(ctx, query)
}
