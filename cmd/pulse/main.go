package main

import (
	"context"
	"flag"
	"log"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/readykit/pulse/pkg/alerts"
	"github.com/readykit/pulse/pkg/api"
	"github.com/readykit/pulse/pkg/config"
	"github.com/readykit/pulse/pkg/db"
	"github.com/readykit/pulse/pkg/health"
	httpx "github.com/readykit/pulse/pkg/http"
	"github.com/readykit/pulse/pkg/lifecycle"
	"github.com/readykit/pulse/pkg/llmjobs"
	"github.com/readykit/pulse/pkg/platform"
	"github.com/readykit/pulse/pkg/probes"
)

func main() {
	configPath := flag.String("config", "/etc/pulse/pulse.json", "Path to config file")
	flag.Parse()

	var cfg config.Config
	if err := config.LoadAndValidate(*configPath, &cfg); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()

	if cfg.Postgres.URL == "" {
		log.Fatalf("Platform database URL is required (postgres.url or PULSE_POSTGRES_URL)")
	}

	platformDB, err := platform.Connect(ctx, cfg.Postgres.URL,
		time.Duration(cfg.Postgres.ConnectTimeout), cfg.Postgres.MaxConns)
	if err != nil {
		log.Fatalf("Failed to connect to platform database: %v", err)
	}
	defer platformDB.Close()

	historyDB, err := db.New(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open history store: %v", err)
	}

	defer func() {
		if err := historyDB.Close(); err != nil {
			log.Printf("Error closing history store: %v", err)
		}
	}()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Printf("Error closing redis client: %v", err)
		}
	}()

	aggregator := health.NewAggregator(
		health.GateFunc(platformDB.Ping),
		buildRoster(&cfg, platformDB, redisClient),
	)

	monitor := health.NewMonitor(
		aggregator,
		historyDB,
		buildAlerter(&cfg),
		time.Duration(cfg.CheckInterval),
		time.Duration(cfg.HistoryRetention),
	)

	jobsClient := llmjobs.NewClient(
		cfg.LLM.BaseURL,
		cfg.LLM.APISecret,
		time.Duration(cfg.LLM.Timeout),
		platformDB,
	)

	watcher := llmjobs.NewWatcher(jobsClient, llmjobs.DefaultWatchInterval)

	apiServer := api.NewAPIServer(
		monitor,
		historyDB,
		jobsClient,
		watcher,
		platformDB,
		&httpx.AdminAuth{APIKey: cfg.Auth.APIKey, JWTSecret: cfg.Auth.JWTSecret},
	)

	err = lifecycle.RunServer(ctx, &lifecycle.ServerOptions{
		ListenAddr:  cfg.ListenAddr,
		GrpcAddr:    cfg.GrpcAddr,
		ServiceName: "pulse",
		Handler:     apiServer.Router(),
		Runners:     []lifecycle.Runner{monitor, watcher},
	})
	if err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// buildRoster assembles the fixed probe set. Per-probe timeouts double as
// the race window the aggregator enforces.
func buildRoster(cfg *config.Config, platformDB platform.Service, redisClient *redis.Client) []health.Entry {
	return []health.Entry{
		health.NewEntry(&probes.PostgresProbe{DB: platformDB},
			time.Duration(cfg.Postgres.ConnectTimeout)),
		health.NewEntry(probes.NewSupabaseProbe(cfg.Supabase.URL, cfg.Supabase.AnonKey,
			time.Duration(cfg.Supabase.Timeout)), time.Duration(cfg.Supabase.Timeout)),
		health.NewEntry(probes.NewStripeProbe(cfg.Stripe.BaseURL, cfg.Stripe.APIKey,
			time.Duration(cfg.Stripe.Timeout)), time.Duration(cfg.Stripe.Timeout)),
		health.NewEntry(probes.NewResendProbe(cfg.Resend.BaseURL, cfg.Resend.APIKey,
			time.Duration(cfg.Resend.Timeout)), time.Duration(cfg.Resend.Timeout)),
		health.NewEntry(probes.NewOpenRouterProbe(cfg.OpenRouter.BaseURL, cfg.OpenRouter.APIKey,
			time.Duration(cfg.OpenRouter.Timeout)), time.Duration(cfg.OpenRouter.Timeout)),
		health.NewEntry(probes.NewWeatherProbe(cfg.Weather.BaseURL, cfg.Weather.APIKey,
			cfg.Weather.Location, time.Duration(cfg.Weather.Timeout)), time.Duration(cfg.Weather.Timeout)),
		health.NewEntry(probes.NewLLMServiceProbe(cfg.LLM.BaseURL,
			time.Duration(cfg.LLM.Timeout)), time.Duration(cfg.LLM.Timeout)),
		health.NewEntry(probes.NewRedisBrokerProbe(redisClient, cfg.Redis.QueueName,
			cfg.Redis.DepthWarn), time.Duration(cfg.Redis.Timeout)),
	}
}

// buildAlerter wires the first enabled webhook from config, if any.
// Discord webhook URLs without an explicit template get the Discord embed
// template.
func buildAlerter(cfg *config.Config) alerts.AlertService {
	for _, hook := range cfg.Webhooks {
		if !hook.Enabled {
			continue
		}

		if hook.Template == "" && strings.Contains(hook.URL, "discord.com/api/webhooks") {
			return alerts.NewDiscordWebhook(hook.URL, time.Duration(hook.Cooldown))
		}

		headers := make([]alerts.Header, 0, len(hook.Headers))
		for _, h := range hook.Headers {
			headers = append(headers, alerts.Header{Key: h.Key, Value: h.Value})
		}

		return alerts.NewWebhookAlerter(alerts.WebhookConfig{
			Enabled:  true,
			URL:      hook.URL,
			Headers:  headers,
			Template: hook.Template,
			Cooldown: time.Duration(hook.Cooldown),
		})
	}

	return nil
}
