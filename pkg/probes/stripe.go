package probes

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/readykit/pulse/pkg/models"
)

const stripeDefaultBaseURL = "https://api.stripe.com"

// StripeProbe retrieves the account balance as a cheap authenticated
// round-trip through the billing API.
type StripeProbe struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewStripeProbe(baseURL, apiKey string, timeout time.Duration) *StripeProbe {
	if baseURL == "" {
		baseURL = stripeDefaultBaseURL
	}

	return &StripeProbe{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  newHTTPClient(timeout),
	}
}

func (*StripeProbe) Name() string { return "stripe" }

func (s *StripeProbe) Probe(ctx context.Context) models.ServiceHealth {
	start := time.Now()

	if s.apiKey == "" {
		return result(s.Name(), models.StatusUnknown, start, "no API key configured")
	}

	var balance struct {
		Livemode  bool `json:"livemode"`
		Available []struct {
			Amount   int64  `json:"amount"`
			Currency string `json:"currency"`
		} `json:"available"`
	}

	headers := map[string]string{"Authorization": "Bearer " + s.apiKey}

	if _, err := getJSON(ctx, s.client, s.baseURL+"/v1/balance", headers, &balance); err != nil {
		return result(s.Name(), classify(err), start, fmt.Sprintf("balance retrieval failed: %v", err))
	}

	h := result(s.Name(), models.StatusHealthy, start, "billing API responding")

	return withDetails(h, map[string]interface{}{
		"livemode":           balance.Livemode,
		"balances_available": len(balance.Available),
	})
}
