package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Duration wraps time.Duration so configs can say "5s" or "2m".
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		// parse numeric as nanoseconds
		*d = Duration(time.Duration(value))
		return nil
	case string:
		dur, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration: %w", err)
		}

		*d = Duration(dur)

		return nil
	default:
		return errInvalidDuration
	}
}

// APIProbeConfig configures one outbound REST probe (Stripe, Resend, ...).
type APIProbeConfig struct {
	BaseURL string   `json:"base_url,omitempty"` // override for tests/staging
	APIKey  string   `json:"api_key,omitempty"`
	Timeout Duration `json:"timeout,omitempty"`
}

// SupabaseConfig configures the auth health probe.
type SupabaseConfig struct {
	URL     string   `json:"url"`
	AnonKey string   `json:"anon_key,omitempty"`
	Timeout Duration `json:"timeout,omitempty"`
}

// WeatherConfig configures the WeatherAPI probe.
type WeatherConfig struct {
	BaseURL  string   `json:"base_url,omitempty"`
	APIKey   string   `json:"api_key,omitempty"`
	Location string   `json:"location,omitempty"` // query for current.json, e.g. "Seattle"
	Timeout  Duration `json:"timeout,omitempty"`
}

// RedisConfig configures the job broker probe.
type RedisConfig struct {
	Addr      string   `json:"addr"`
	Password  string   `json:"password,omitempty"`
	DB        int      `json:"db,omitempty"`
	QueueName string   `json:"queue_name,omitempty"` // broker list to measure depth on
	DepthWarn int64    `json:"depth_warn,omitempty"` // queue depth that degrades the probe
	Timeout   Duration `json:"timeout,omitempty"`
}

// LLMServiceConfig configures the workflow microservice client: both the
// /health probe and the job queue proxy use it.
type LLMServiceConfig struct {
	BaseURL   string   `json:"base_url"`
	APISecret string   `json:"api_secret,omitempty"` // X-API-Secret; PULSE_LLM_API_SECRET overrides
	Timeout   Duration `json:"timeout,omitempty"`
}

// PostgresConfig configures the platform database connection.
type PostgresConfig struct {
	URL            string   `json:"url,omitempty"` // PULSE_POSTGRES_URL overrides
	ConnectTimeout Duration `json:"connect_timeout,omitempty"`
	MaxConns       int32    `json:"max_conns,omitempty"`
}

// AuthConfig configures the admin gate on the HTTP API.
type AuthConfig struct {
	APIKey    string `json:"api_key,omitempty"`    // static X-API-Key; PULSE_API_KEY overrides
	JWTSecret string `json:"jwt_secret,omitempty"` // HMAC secret for bearer tokens; PULSE_JWT_SECRET overrides
}

const (
	defaultProbeTimeout  = 5 * time.Second
	defaultLLMTimeout    = 7 * time.Second
	defaultCheckInterval = 30 * time.Second
	defaultRetention     = 7 * 24 * time.Hour
)

// Config is the top-level pulse daemon configuration.
type Config struct {
	ListenAddr       string           `json:"listen_addr"`
	GrpcAddr         string           `json:"grpc_addr,omitempty"`
	DBPath           string           `json:"db_path"`
	CheckInterval    Duration         `json:"check_interval,omitempty"`
	HistoryRetention Duration         `json:"history_retention,omitempty"`
	Auth             AuthConfig       `json:"auth"`
	Postgres         PostgresConfig   `json:"postgres"`
	Redis            RedisConfig      `json:"redis"`
	LLM              LLMServiceConfig `json:"llm_service"`
	Supabase         SupabaseConfig   `json:"supabase"`
	Stripe           APIProbeConfig   `json:"stripe"`
	Resend           APIProbeConfig   `json:"resend"`
	OpenRouter       APIProbeConfig   `json:"openrouter"`
	Weather          WeatherConfig    `json:"weather"`
	Webhooks         []WebhookConfig  `json:"webhooks,omitempty"`
}

// WebhookConfig mirrors alerts.WebhookConfig at the config layer so the
// config package stays dependency-free.
type WebhookConfig struct {
	Enabled  bool     `json:"enabled"`
	URL      string   `json:"url"`
	Cooldown Duration `json:"cooldown,omitempty"`
	Template string   `json:"template,omitempty"`
	Headers  []Header `json:"headers,omitempty"`
}

// Header represents a custom HTTP header.
type Header struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Validate implements the Validator interface. Secrets left empty in the
// file are picked up from the environment so they stay out of config files.
func (c *Config) Validate() error {
	if c.ListenAddr == "" {
		return fmt.Errorf("listen_addr is required")
	}

	if c.DBPath == "" {
		return fmt.Errorf("db_path is required")
	}

	if c.LLM.BaseURL == "" {
		return fmt.Errorf("llm_service.base_url is required")
	}

	if env := os.Getenv("PULSE_LLM_API_SECRET"); env != "" {
		c.LLM.APISecret = env
	}

	if env := os.Getenv("PULSE_POSTGRES_URL"); env != "" {
		c.Postgres.URL = env
	}

	if env := os.Getenv("PULSE_API_KEY"); env != "" {
		c.Auth.APIKey = env
	}

	if env := os.Getenv("PULSE_JWT_SECRET"); env != "" {
		c.Auth.JWTSecret = env
	}

	if time.Duration(c.CheckInterval) == 0 {
		c.CheckInterval = Duration(defaultCheckInterval)
	}

	if time.Duration(c.HistoryRetention) == 0 {
		c.HistoryRetention = Duration(defaultRetention)
	}

	if time.Duration(c.LLM.Timeout) == 0 {
		c.LLM.Timeout = Duration(defaultLLMTimeout)
	}

	for _, d := range []*Duration{
		&c.Supabase.Timeout, &c.Stripe.Timeout, &c.Resend.Timeout,
		&c.OpenRouter.Timeout, &c.Weather.Timeout, &c.Redis.Timeout,
		&c.Postgres.ConnectTimeout,
	} {
		if time.Duration(*d) == 0 {
			*d = Duration(defaultProbeTimeout)
		}
	}

	return nil
}
