package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "pulse.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestDurationUnmarshal(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Duration
		wantErr bool
	}{
		{name: "string form", input: `"5s"`, want: 5 * time.Second},
		{name: "compound string", input: `"1m30s"`, want: 90 * time.Second},
		{name: "numeric nanoseconds", input: `2000000000`, want: 2 * time.Second},
		{name: "bad string", input: `"not-a-duration"`, wantErr: true},
		{name: "wrong type", input: `true`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Duration

			err := json.Unmarshal([]byte(tt.input), &d)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, time.Duration(d))
		})
	}
}

func TestLoadAndValidate(t *testing.T) {
	path := writeConfigFile(t, `{
		"listen_addr": ":8090",
		"db_path": "/tmp/pulse.db",
		"check_interval": "15s",
		"llm_service": {
			"base_url": "http://llm.internal:8000",
			"timeout": "7s"
		},
		"stripe": {"api_key": "sk_test_123"}
	}`)

	var cfg Config

	require.NoError(t, LoadAndValidate(path, &cfg))

	assert.Equal(t, ":8090", cfg.ListenAddr)
	assert.Equal(t, 15*time.Second, time.Duration(cfg.CheckInterval))
	assert.Equal(t, "http://llm.internal:8000", cfg.LLM.BaseURL)
	assert.Equal(t, 7*time.Second, time.Duration(cfg.LLM.Timeout))

	// unset durations fall back to defaults
	assert.Equal(t, 5*time.Second, time.Duration(cfg.Stripe.Timeout))
	assert.Equal(t, 7*24*time.Hour, time.Duration(cfg.HistoryRetention))
}

func TestValidate_RequiredFields(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "missing listen_addr",
			content: `{"db_path": "/tmp/p.db", "llm_service": {"base_url": "http://x"}}`,
			wantErr: "listen_addr is required",
		},
		{
			name:    "missing db_path",
			content: `{"listen_addr": ":8090", "llm_service": {"base_url": "http://x"}}`,
			wantErr: "db_path is required",
		},
		{
			name:    "missing llm base url",
			content: `{"listen_addr": ":8090", "db_path": "/tmp/p.db"}`,
			wantErr: "llm_service.base_url is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cfg Config

			err := LoadAndValidate(writeConfigFile(t, tt.content), &cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidate_EnvOverrides(t *testing.T) {
	t.Setenv("PULSE_LLM_API_SECRET", "env-secret")
	t.Setenv("PULSE_POSTGRES_URL", "postgres://env/db")
	t.Setenv("PULSE_API_KEY", "env-api-key")

	path := writeConfigFile(t, `{
		"listen_addr": ":8090",
		"db_path": "/tmp/pulse.db",
		"llm_service": {"base_url": "http://llm.internal:8000", "api_secret": "file-secret"}
	}`)

	var cfg Config

	require.NoError(t, LoadAndValidate(path, &cfg))

	assert.Equal(t, "env-secret", cfg.LLM.APISecret)
	assert.Equal(t, "postgres://env/db", cfg.Postgres.URL)
	assert.Equal(t, "env-api-key", cfg.Auth.APIKey)
}

func TestLoadFile_Missing(t *testing.T) {
	var cfg Config

	err := LoadFile("/nonexistent/pulse.json", &cfg)
	assert.Error(t, err)
}
