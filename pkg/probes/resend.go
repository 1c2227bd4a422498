package probes

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/readykit/pulse/pkg/models"
)

const resendDefaultBaseURL = "https://api.resend.com"

// ResendProbe lists sending domains to verify the email API and key.
type ResendProbe struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewResendProbe(baseURL, apiKey string, timeout time.Duration) *ResendProbe {
	if baseURL == "" {
		baseURL = resendDefaultBaseURL
	}

	return &ResendProbe{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  newHTTPClient(timeout),
	}
}

func (*ResendProbe) Name() string { return "resend" }

func (r *ResendProbe) Probe(ctx context.Context) models.ServiceHealth {
	start := time.Now()

	if r.apiKey == "" {
		return result(r.Name(), models.StatusUnknown, start, "no API key configured")
	}

	var domains struct {
		Data []struct {
			Name   string `json:"name"`
			Status string `json:"status"`
		} `json:"data"`
	}

	headers := map[string]string{"Authorization": "Bearer " + r.apiKey}

	if _, err := getJSON(ctx, r.client, r.baseURL+"/domains", headers, &domains); err != nil {
		return result(r.Name(), classify(err), start, fmt.Sprintf("domain listing failed: %v", err))
	}

	verified := 0

	for _, d := range domains.Data {
		if d.Status == "verified" {
			verified++
		}
	}

	status := models.StatusHealthy
	msg := "email API responding"

	if len(domains.Data) > 0 && verified == 0 {
		// Key works but nothing can actually send.
		status = models.StatusDegraded
		msg = "no verified sending domains"
	}

	h := result(r.Name(), status, start, msg)

	return withDetails(h, map[string]interface{}{
		"domains":  len(domains.Data),
		"verified": verified,
	})
}
