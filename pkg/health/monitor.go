package health

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/readykit/pulse/pkg/alerts"
	"github.com/readykit/pulse/pkg/models"
)

const cleanupInterval = time.Hour

// Monitor drives periodic aggregation, keeps the latest snapshot, persists
// history, broadcasts updates to subscribers and fires alerts on overall
// status transitions.
type Monitor struct {
	agg       *Aggregator
	store     HistoryStore
	alerter   alerts.AlertService
	interval  time.Duration
	retention time.Duration

	mu     sync.RWMutex
	latest *models.SystemHealth
	subs   map[chan *models.SystemHealth]struct{}
}

func NewMonitor(agg *Aggregator, store HistoryStore, alerter alerts.AlertService, interval, retention time.Duration) *Monitor {
	return &Monitor{
		agg:       agg,
		store:     store,
		alerter:   alerter,
		interval:  interval,
		retention: retention,
		subs:      make(map[chan *models.SystemHealth]struct{}),
	}
}

// Start runs the aggregation loop until ctx is cancelled. An initial check
// runs immediately so the API never serves an empty snapshot for long.
func (m *Monitor) Start(ctx context.Context) error {
	log.Printf("Starting health monitor with interval %v", m.interval)

	m.Refresh(ctx)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	cleanup := time.NewTicker(cleanupInterval)
	defer cleanup.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			m.Refresh(ctx)
		case <-cleanup.C:
			if m.store == nil {
				continue
			}

			if err := m.store.CleanOldData(m.retention); err != nil {
				log.Printf("Error cleaning old health history: %v", err)
			}
		}
	}
}

// Refresh runs one aggregation pass now and returns the new snapshot. If
// ctx was cancelled the probes all lose their races and the pass reports
// timeouts that never happened, so such a snapshot is discarded: not kept
// as latest, not persisted, no alerts.
func (m *Monitor) Refresh(ctx context.Context) *models.SystemHealth {
	snapshot := m.agg.Check(ctx)

	if ctx.Err() != nil {
		return m.Latest()
	}

	m.mu.Lock()
	prev := m.latest
	m.latest = snapshot
	m.mu.Unlock()

	if m.store != nil {
		if err := m.store.SaveSnapshot(snapshot); err != nil {
			log.Printf("Error saving health snapshot: %v", err)
		}
	}

	m.alertOnTransition(ctx, prev, snapshot)
	m.broadcast(snapshot)

	return snapshot
}

// Latest returns the most recent snapshot, or nil before the first check.
func (m *Monitor) Latest() *models.SystemHealth {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.latest
}

// Subscribe registers a channel that receives every new snapshot. The
// returned func unsubscribes and must be called to avoid leaking the
// channel.
func (m *Monitor) Subscribe() (<-chan *models.SystemHealth, func()) {
	ch := make(chan *models.SystemHealth, 1)

	m.mu.Lock()
	m.subs[ch] = struct{}{}
	m.mu.Unlock()

	return ch, func() {
		m.mu.Lock()
		delete(m.subs, ch)
		m.mu.Unlock()
	}
}

func (m *Monitor) broadcast(snapshot *models.SystemHealth) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for ch := range m.subs {
		select {
		case ch <- snapshot:
		default:
			// Slow subscriber; drop rather than block the monitor.
		}
	}
}

func (m *Monitor) alertOnTransition(ctx context.Context, prev, current *models.SystemHealth) {
	if m.alerter == nil || !m.alerter.IsEnabled() {
		return
	}

	prevOverall := models.StatusUnknown
	if prev != nil {
		prevOverall = prev.Overall
	}

	switch {
	case current.Overall == models.StatusUnhealthy && prevOverall != models.StatusUnhealthy:
		m.sendAlert(ctx, &alerts.WebhookAlert{
			Level:   alerts.Error,
			Title:   "System Unhealthy",
			Message: "One or more platform services are unhealthy: " + strings.Join(unhealthyNames(current), ", "),
			Details: transitionDetails(current),
		})
	case current.Overall != models.StatusUnhealthy && prevOverall == models.StatusUnhealthy:
		m.sendAlert(ctx, &alerts.WebhookAlert{
			Level:   alerts.Info,
			Title:   "System Recovered",
			Message: "All platform services are back to " + string(current.Overall),
			Details: transitionDetails(current),
		})
	}
}

func (m *Monitor) sendAlert(ctx context.Context, alert *alerts.WebhookAlert) {
	if err := m.alerter.Alert(ctx, alert); err != nil {
		if errors.Is(err, alerts.ErrWebhookCooldown) {
			return
		}

		log.Printf("Error sending health alert: %v", err)
	}
}

func unhealthyNames(snapshot *models.SystemHealth) []string {
	names := make([]string, 0, len(snapshot.Services))

	for _, svc := range snapshot.Services {
		if svc.Status == models.StatusUnhealthy {
			names = append(names, svc.Name)
		}
	}

	return names
}

func transitionDetails(snapshot *models.SystemHealth) map[string]any {
	details := make(map[string]any, len(snapshot.Services)+1)
	details["overall"] = string(snapshot.Overall)

	for _, svc := range snapshot.Services {
		details[svc.Name] = string(svc.Status)
	}

	return details
}
