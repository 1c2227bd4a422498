package probes

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/readykit/pulse/pkg/models"
)

// SupabaseProbe checks the auth service health endpoint.
type SupabaseProbe struct {
	url     string
	anonKey string
	client  *http.Client
}

func NewSupabaseProbe(baseURL, anonKey string, timeout time.Duration) *SupabaseProbe {
	var url string
	if baseURL != "" {
		url = strings.TrimRight(baseURL, "/") + "/auth/v1/health"
	}

	return &SupabaseProbe{
		url:     url,
		anonKey: anonKey,
		client:  newHTTPClient(timeout),
	}
}

func (*SupabaseProbe) Name() string { return "auth" }

func (s *SupabaseProbe) Probe(ctx context.Context) models.ServiceHealth {
	start := time.Now()

	if s.url == "" {
		return result(s.Name(), models.StatusUnknown, start, "no URL configured")
	}

	headers := map[string]string{}
	if s.anonKey != "" {
		headers["apikey"] = s.anonKey
	}

	var body struct {
		Name        string `json:"name"`
		Version     string `json:"version"`
		Description string `json:"description"`
	}

	if _, err := getJSON(ctx, s.client, s.url, headers, &body); err != nil {
		return result(s.Name(), classify(err), start, fmt.Sprintf("auth health check failed: %v", err))
	}

	h := result(s.Name(), models.StatusHealthy, start, "auth service responding")
	if body.Version != "" {
		h = withDetails(h, map[string]string{"version": body.Version})
	}

	return h
}
