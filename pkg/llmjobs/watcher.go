package llmjobs

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/readykit/pulse/pkg/models"
)

const (
	// DefaultWatchInterval matches the dashboard's 2s polling cadence.
	DefaultWatchInterval = 2 * time.Second

	watchLimit = 50
)

// Watcher polls the job list while any job is queued or processing and
// broadcasts each page to subscribers. After a pass with nothing running it
// goes idle until kicked, so a quiet queue costs no outbound traffic.
type Watcher struct {
	lister   JobService
	interval time.Duration
	kick     chan struct{}

	mu   sync.RWMutex
	subs map[chan *models.JobsPage]struct{}
	last *models.JobsPage
}

func NewWatcher(lister JobService, interval time.Duration) *Watcher {
	if interval <= 0 {
		interval = DefaultWatchInterval
	}

	return &Watcher{
		lister:   lister,
		interval: interval,
		kick:     make(chan struct{}, 1),
		subs:     make(map[chan *models.JobsPage]struct{}),
	}
}

// Start runs the polling loop until ctx is cancelled.
func (w *Watcher) Start(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	active := true

	for {
		if !active {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-w.kick:
				active = true
			}
		}

		page, err := w.lister.ListJobs(ctx, FilterAll, watchLimit)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}

			log.Printf("Job watcher poll failed: %v", err)
		} else {
			w.broadcast(page)

			// Stop polling once nothing is running; a Kick resumes it.
			active = page.HasRunning()
		}

		if !active {
			continue
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		case <-w.kick:
		}
	}
}

// Kick wakes an idle watcher, e.g. after a new job is enqueued or a client
// subscribes. Safe to call from any goroutine; never blocks.
func (w *Watcher) Kick() {
	select {
	case w.kick <- struct{}{}:
	default:
	}
}

// Subscribe registers a channel that receives every polled page, primed
// with the last known page if there is one. The returned func
// unsubscribes.
func (w *Watcher) Subscribe() (<-chan *models.JobsPage, func()) {
	ch := make(chan *models.JobsPage, 1)

	w.mu.Lock()
	if w.last != nil {
		ch <- w.last
	}

	w.subs[ch] = struct{}{}
	w.mu.Unlock()

	w.Kick()

	return ch, func() {
		w.mu.Lock()
		delete(w.subs, ch)
		w.mu.Unlock()
	}
}

func (w *Watcher) broadcast(page *models.JobsPage) {
	w.mu.Lock()
	w.last = page

	for ch := range w.subs {
		select {
		case ch <- page:
		default:
			// Slow subscriber; drop this update.
		}
	}
	w.mu.Unlock()
}
