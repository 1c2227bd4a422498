package probes

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/readykit/pulse/pkg/models"
)

const openRouterDefaultBaseURL = "https://openrouter.ai"

// OpenRouterProbe checks the LLM gateway credit balance. An exhausted
// balance degrades the probe: the API is up but workflows will fail.
type OpenRouterProbe struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewOpenRouterProbe(baseURL, apiKey string, timeout time.Duration) *OpenRouterProbe {
	if baseURL == "" {
		baseURL = openRouterDefaultBaseURL
	}

	return &OpenRouterProbe{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  newHTTPClient(timeout),
	}
}

func (*OpenRouterProbe) Name() string { return "openrouter" }

func (o *OpenRouterProbe) Probe(ctx context.Context) models.ServiceHealth {
	start := time.Now()

	if o.apiKey == "" {
		return result(o.Name(), models.StatusUnknown, start, "no API key configured")
	}

	var credits struct {
		Data struct {
			TotalCredits float64 `json:"total_credits"`
			TotalUsage   float64 `json:"total_usage"`
		} `json:"data"`
	}

	headers := map[string]string{"Authorization": "Bearer " + o.apiKey}

	if _, err := getJSON(ctx, o.client, o.baseURL+"/api/v1/credits", headers, &credits); err != nil {
		return result(o.Name(), classify(err), start, fmt.Sprintf("credit check failed: %v", err))
	}

	remaining := credits.Data.TotalCredits - credits.Data.TotalUsage

	status := models.StatusHealthy
	msg := fmt.Sprintf("%.2f credits remaining", remaining)

	if remaining <= 0 {
		status = models.StatusDegraded
		msg = "credit balance exhausted"
	}

	h := result(o.Name(), status, start, msg)

	return withDetails(h, map[string]float64{
		"total_credits": credits.Data.TotalCredits,
		"total_usage":   credits.Data.TotalUsage,
	})
}
