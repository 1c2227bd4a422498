package health

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/readykit/pulse/pkg/alerts"
	"github.com/readykit/pulse/pkg/models"
)

func newTestMonitor(store HistoryStore, alerter alerts.AlertService, probe *fakeProbe) *Monitor {
	agg := NewAggregator(nil, []Entry{NewEntry(probe, time.Second)})

	return NewMonitor(agg, store, alerter, time.Minute, 24*time.Hour)
}

func TestMonitorRefresh_SavesAndServesLatest(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := NewMockHistoryStore(ctrl)
	store.EXPECT().SaveSnapshot(gomock.Any()).Return(nil)

	m := newTestMonitor(store, nil, &fakeProbe{name: "database", status: models.StatusHealthy})

	assert.Nil(t, m.Latest())

	got := m.Refresh(context.Background())

	require.NotNil(t, got)
	assert.Equal(t, models.StatusHealthy, got.Overall)
	assert.Same(t, got, m.Latest())
}

func TestMonitorRefresh_StoreErrorDoesNotFail(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := NewMockHistoryStore(ctrl)
	store.EXPECT().SaveSnapshot(gomock.Any()).Return(assert.AnError)

	m := newTestMonitor(store, nil, &fakeProbe{name: "database", status: models.StatusHealthy})

	got := m.Refresh(context.Background())

	// persistence failures are logged, the snapshot is still served
	require.NotNil(t, got)
	assert.Same(t, got, m.Latest())
}

func TestMonitorSubscribe(t *testing.T) {
	m := newTestMonitor(nil, nil, &fakeProbe{name: "database", status: models.StatusHealthy})

	ch, unsub := m.Subscribe()
	defer unsub()

	snapshot := m.Refresh(context.Background())

	select {
	case got := <-ch:
		assert.Same(t, snapshot, got)
	case <-time.After(time.Second):
		t.Fatal("subscriber never received the snapshot")
	}

	unsub()
	m.Refresh(context.Background())
	// no assertion needed; the broadcast must just not block or panic
}

func TestMonitorRefresh_CancelledContextDiscarded(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := NewMockHistoryStore(ctrl)
	store.EXPECT().SaveSnapshot(gomock.Any()).Return(nil)

	alerter := alerts.NewMockAlertService(ctrl)
	alerter.EXPECT().IsEnabled().Return(true).AnyTimes()

	probe := &fakeProbe{name: "database", status: models.StatusHealthy}
	agg := NewAggregator(nil, []Entry{NewEntry(probe, time.Second)})
	m := NewMonitor(agg, store, alerter, time.Minute, 24*time.Hour)

	baseline := m.Refresh(context.Background())
	require.NotNil(t, baseline)
	assert.Equal(t, models.StatusHealthy, baseline.Overall)

	// A cancelled context makes every probe lose its race instantly; the
	// resulting all-timed-out snapshot must be discarded, not persisted,
	// and must not fire an unhealthy alert.
	cancelled, cancel := context.WithCancel(context.Background())
	cancel()

	got := m.Refresh(cancelled)

	assert.Same(t, baseline, got)
	assert.Same(t, baseline, m.Latest())
}

func TestMonitorAlerts_OnTransitions(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	probe := &fakeProbe{name: "database", status: models.StatusUnhealthy}

	alerter := alerts.NewMockAlertService(ctrl)
	alerter.EXPECT().IsEnabled().Return(true).AnyTimes()

	m := newTestMonitor(nil, alerter, probe)

	// healthy -> unhealthy fires an error alert naming the service
	alerter.EXPECT().
		Alert(gomock.Any(), gomock.Any()).
		Do(func(_ context.Context, alert *alerts.WebhookAlert) {
			assert.Equal(t, alerts.Error, alert.Level)
			assert.Contains(t, alert.Message, "database")
		}).
		Return(nil)

	m.Refresh(context.Background())

	// still unhealthy: no second alert
	m.Refresh(context.Background())

	// recovery fires an info alert
	probe.status = models.StatusHealthy

	alerter.EXPECT().
		Alert(gomock.Any(), gomock.Any()).
		Do(func(_ context.Context, alert *alerts.WebhookAlert) {
			assert.Equal(t, alerts.Info, alert.Level)
		}).
		Return(nil)

	m.Refresh(context.Background())
}

func TestMonitorAlerts_CooldownIgnored(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	alerter := alerts.NewMockAlertService(ctrl)
	alerter.EXPECT().IsEnabled().Return(true)
	alerter.EXPECT().Alert(gomock.Any(), gomock.Any()).Return(alerts.ErrWebhookCooldown)

	m := newTestMonitor(nil, alerter, &fakeProbe{name: "database", status: models.StatusUnhealthy})

	// cooldown errors are swallowed silently
	m.Refresh(context.Background())
}
