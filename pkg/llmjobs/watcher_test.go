package llmjobs

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/readykit/pulse/pkg/models"
)

// scriptedLister returns prepared pages in order and counts calls.
type scriptedLister struct {
	mu    sync.Mutex
	pages []*models.JobsPage
	calls int
}

func (s *scriptedLister) ListJobs(_ context.Context, _ string, _ int) (*models.JobsPage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	page := s.pages[0]
	if len(s.pages) > 1 {
		s.pages = s.pages[1:]
	}

	s.calls++

	return page, nil
}

func (s *scriptedLister) JobDetail(context.Context, string) (*models.LLMJobDetail, error) {
	return nil, nil
}

func (s *scriptedLister) BulkDelete(context.Context, []string) (*models.BulkDeleteResult, error) {
	return nil, nil
}

func (s *scriptedLister) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.calls
}

func runningPage() *models.JobsPage {
	return &models.JobsPage{
		Jobs:  []models.LLMJob{{JobID: "a", Status: models.JobProcessing}},
		Total: 1,
	}
}

func quietPage() *models.JobsPage {
	return &models.JobsPage{
		Jobs:  []models.LLMJob{{JobID: "a", Status: models.JobCompleted}},
		Total: 1,
	}
}

func TestWatcher_PollsWhileRunning(t *testing.T) {
	lister := &scriptedLister{pages: []*models.JobsPage{runningPage(), runningPage(), quietPage()}}
	w := NewWatcher(lister, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, unsub := w.Subscribe()
	defer unsub()

	go func() { _ = w.Start(ctx) }()

	deadline := time.After(time.Second)

	// Two running pages then a quiet one; after that the watcher idles.
	for i := 0; i < 3; i++ {
		select {
		case <-ch:
		case <-deadline:
			t.Fatal("watcher stopped broadcasting early")
		}
	}

	idleCalls := lister.callCount()
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, idleCalls, lister.callCount(), "idle watcher must not poll")
}

func TestWatcher_KickWakesIdle(t *testing.T) {
	lister := &scriptedLister{pages: []*models.JobsPage{quietPage()}}
	w := NewWatcher(lister, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, unsub := w.Subscribe()
	defer unsub()

	go func() { _ = w.Start(ctx) }()

	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatal("no initial broadcast")
	}

	// idle now
	time.Sleep(50 * time.Millisecond)
	before := lister.callCount()

	w.Kick()

	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatal("kick did not wake the watcher")
	}

	assert.Greater(t, lister.callCount(), before)
}

func TestWatcher_SubscribePrimesWithLastPage(t *testing.T) {
	w := NewWatcher(&scriptedLister{pages: []*models.JobsPage{quietPage()}}, time.Minute)

	page := quietPage()
	w.broadcast(page)

	ch, unsub := w.Subscribe()
	defer unsub()

	select {
	case got := <-ch:
		assert.Same(t, page, got)
	case <-time.After(time.Second):
		t.Fatal("subscriber was not primed")
	}
}

func TestWatcher_StopsOnContextCancel(t *testing.T) {
	lister := &scriptedLister{pages: []*models.JobsPage{runningPage()}}
	w := NewWatcher(lister, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)

	go func() { done <- w.Start(ctx) }()

	time.Sleep(30 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("watcher did not stop on cancel")
	}
}
