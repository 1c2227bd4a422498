package probes

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/readykit/pulse/pkg/models"
)

// LLMServiceProbe checks the workflow microservice's own /health endpoint
// and adopts its self-reported status.
type LLMServiceProbe struct {
	url    string
	client *http.Client
}

func NewLLMServiceProbe(baseURL string, timeout time.Duration) *LLMServiceProbe {
	return &LLMServiceProbe{
		url:    strings.TrimRight(baseURL, "/") + "/health",
		client: newHTTPClient(timeout),
	}
}

func (*LLMServiceProbe) Name() string { return "llm_service" }

func (l *LLMServiceProbe) Probe(ctx context.Context) models.ServiceHealth {
	start := time.Now()

	var body struct {
		Status   string                     `json:"status"`
		Services map[string]json.RawMessage `json:"services"`
	}

	if _, err := getJSON(ctx, l.client, l.url, nil, &body); err != nil {
		return result(l.Name(), classify(err), start, fmt.Sprintf("health endpoint unreachable: %v", err))
	}

	var status models.Status

	switch body.Status {
	case "healthy":
		status = models.StatusHealthy
	case "degraded":
		status = models.StatusDegraded
	case "unhealthy":
		status = models.StatusUnhealthy
	default:
		status = models.StatusUnknown
	}

	h := result(l.Name(), status, start, fmt.Sprintf("service reports %q", body.Status))
	if len(body.Services) > 0 {
		h = withDetails(h, body.Services)
	}

	return h
}
