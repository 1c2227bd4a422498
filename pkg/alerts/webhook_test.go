package alerts

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWebhookAlerter_Alert(t *testing.T) {
	var received WebhookAlert

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "secret-token", r.Header.Get("X-Token"))

		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	alerter := NewWebhookAlerter(WebhookConfig{
		Enabled: true,
		URL:     srv.URL,
		Headers: []Header{{Key: "X-Token", Value: "secret-token"}},
	})

	err := alerter.Alert(context.Background(), &WebhookAlert{
		Level:   Error,
		Title:   "System Unhealthy",
		Message: "database is unreachable",
		Details: map[string]any{"database": "unhealthy"},
	})
	require.NoError(t, err)

	assert.Equal(t, Error, received.Level)
	assert.Equal(t, "System Unhealthy", received.Title)
	assert.NotEmpty(t, received.Timestamp)
	assert.Equal(t, "unhealthy", received.Details["database"])
}

func TestWebhookAlerter_Disabled(t *testing.T) {
	alerter := NewWebhookAlerter(WebhookConfig{Enabled: false})

	err := alerter.Alert(context.Background(), &WebhookAlert{Title: "test"})
	assert.ErrorIs(t, err, ErrWebhookDisabled)
}

func TestWebhookAlerter_Cooldown(t *testing.T) {
	calls := 0

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	alerter := NewWebhookAlerter(WebhookConfig{
		Enabled:  true,
		URL:      srv.URL,
		Cooldown: time.Minute,
	})

	alert := &WebhookAlert{Level: Error, Title: "System Unhealthy"}

	require.NoError(t, alerter.Alert(context.Background(), alert))

	err := alerter.Alert(context.Background(), alert)
	assert.ErrorIs(t, err, ErrWebhookCooldown)

	// a different title is tracked separately
	require.NoError(t, alerter.Alert(context.Background(), &WebhookAlert{Level: Info, Title: "System Recovered"}))

	assert.Equal(t, 2, calls)
}

func TestWebhookAlerter_Template(t *testing.T) {
	var body map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(data, &body))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	alerter := NewWebhookAlerter(WebhookConfig{
		Enabled:  true,
		URL:      srv.URL,
		Template: `{"text": "{{.alert.Title}}: {{.alert.Message}}"}`,
	})

	err := alerter.Alert(context.Background(), &WebhookAlert{
		Title:   "System Unhealthy",
		Message: "redis is unreachable",
	})
	require.NoError(t, err)

	assert.Equal(t, "System Unhealthy: redis is unreachable", body["text"])
}

func TestWebhookAlerter_TemplateMustProduceJSON(t *testing.T) {
	alerter := NewWebhookAlerter(WebhookConfig{
		Enabled:  true,
		URL:      "http://localhost:1",
		Template: `not json at all: {{.alert.Title}}`,
	})

	err := alerter.Alert(context.Background(), &WebhookAlert{Title: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid JSON")
}

func TestWebhookAlerter_Non200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer srv.Close()

	alerter := NewWebhookAlerter(WebhookConfig{Enabled: true, URL: srv.URL})

	err := alerter.Alert(context.Background(), &WebhookAlert{Title: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status=502")
}

func TestDiscordWebhook(t *testing.T) {
	var body map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	alerter := NewDiscordWebhook(srv.URL, 0)

	err := alerter.Alert(context.Background(), &WebhookAlert{
		Level:   Error,
		Title:   "System Unhealthy",
		Message: "stripe is unhealthy",
		Service: "stripe",
		Details: map[string]any{"stripe": "unhealthy"},
	})
	require.NoError(t, err)

	embeds, ok := body["embeds"].([]any)
	require.True(t, ok)
	require.Len(t, embeds, 1)

	embed := embeds[0].(map[string]any)
	assert.Equal(t, "System Unhealthy", embed["title"])
	assert.Equal(t, float64(DiscordColorRed), embed["color"])
}

func TestWebhookConfig_UnmarshalCooldown(t *testing.T) {
	var cfg WebhookConfig

	require.NoError(t, json.Unmarshal([]byte(`{
		"enabled": true,
		"url": "http://hooks.internal/pulse",
		"cooldown": "5m"
	}`), &cfg))

	assert.True(t, cfg.Enabled)
	assert.Equal(t, 5*time.Minute, cfg.Cooldown)
}
