// Package health runs the dependency probes concurrently and rolls their
// results into a single system status.
package health

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/readykit/pulse/pkg/models"
	"github.com/readykit/pulse/pkg/probes"
)

const gateTimeout = 5 * time.Second

// Gate is the authorization pre-check that runs before any probe fires.
// If it fails or times out the whole aggregation short-circuits to
// unhealthy.
type Gate interface {
	Authorize(ctx context.Context) error
}

// GateFunc adapts a plain function to the Gate interface.
type GateFunc func(ctx context.Context) error

func (f GateFunc) Authorize(ctx context.Context) error { return f(ctx) }

// Entry binds a prober to its timeout and the canned fallback substituted
// when the timeout wins the race.
type Entry struct {
	Prober   probes.Prober
	Timeout  time.Duration
	Fallback models.ServiceHealth
}

// NewEntry builds an Entry with the standard timed-out fallback.
func NewEntry(p probes.Prober, timeout time.Duration) Entry {
	return Entry{
		Prober:  p,
		Timeout: timeout,
		Fallback: models.ServiceHealth{
			Name:      p.Name(),
			Status:    models.StatusUnhealthy,
			LatencyMS: timeout.Milliseconds(),
			Message:   fmt.Sprintf("timed out after %s", timeout),
		},
	}
}

// Aggregator fans out the probe roster and reduces the results.
type Aggregator struct {
	gate    Gate
	entries []Entry
}

func NewAggregator(gate Gate, entries []Entry) *Aggregator {
	return &Aggregator{
		gate:    gate,
		entries: entries,
	}
}

// Check runs one full aggregation pass. Per-probe failures never surface as
// errors; they become degraded or unhealthy service entries. The call is
// bounded by the longest configured probe timeout plus the gate budget.
func (a *Aggregator) Check(ctx context.Context) *models.SystemHealth {
	if err := a.authorize(ctx); err != nil {
		return &models.SystemHealth{
			Overall: models.StatusUnhealthy,
			Services: []models.ServiceHealth{{
				Name:      "authorization",
				Status:    models.StatusUnhealthy,
				Message:   fmt.Sprintf("authorization gate failed: %v", err),
				CheckedAt: time.Now().UTC(),
			}},
			CheckedAt: time.Now().UTC(),
		}
	}

	results := make([]models.ServiceHealth, len(a.entries))

	var wg sync.WaitGroup

	for i := range a.entries {
		wg.Add(1)

		go func(idx int, entry Entry) {
			defer wg.Done()

			results[idx] = runProbe(ctx, entry)
		}(i, a.entries[i])
	}

	wg.Wait()

	return &models.SystemHealth{
		Overall:   models.Rollup(results),
		Services:  results,
		CheckedAt: time.Now().UTC(),
	}
}

func (a *Aggregator) authorize(ctx context.Context) error {
	if a.gate == nil {
		return nil
	}

	gctx, cancel := context.WithTimeout(ctx, gateTimeout)
	defer cancel()

	return a.gate.Authorize(gctx)
}

// runProbe races a single probe against its timeout. Losing the race yields
// the entry's fallback; the probe's context is cancelled so its underlying
// request is torn down rather than leaked.
func runProbe(ctx context.Context, entry Entry) models.ServiceHealth {
	pctx, cancel := context.WithTimeout(ctx, entry.Timeout)
	defer cancel()

	done := make(chan models.ServiceHealth, 1)

	go func() {
		done <- entry.Prober.Probe(pctx)
	}()

	select {
	case h := <-done:
		return h
	case <-pctx.Done():
		fallback := entry.Fallback
		fallback.CheckedAt = time.Now().UTC()

		return fallback
	}
}
