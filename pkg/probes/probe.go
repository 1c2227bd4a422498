// Package probes contains one prober per platform dependency. Each probe
// issues a single outbound check and maps the outcome into a ServiceHealth
// value; it never returns an error to the aggregator.
package probes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/readykit/pulse/pkg/models"
)

var (
	errUnexpectedStatus = errors.New("unexpected HTTP status")
	errUnauthorized     = errors.New("authentication rejected")
)

// Prober defines how to check one dependency's status.
type Prober interface {
	Name() string
	Probe(ctx context.Context) models.ServiceHealth
}

func newHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}

// result builds a ServiceHealth with latency measured from start.
func result(name string, status models.Status, start time.Time, msg string) models.ServiceHealth {
	return models.ServiceHealth{
		Name:      name,
		Status:    status,
		LatencyMS: time.Since(start).Milliseconds(),
		Message:   msg,
		CheckedAt: time.Now().UTC(),
	}
}

func withDetails(h models.ServiceHealth, v interface{}) models.ServiceHealth {
	data, err := json.Marshal(v)
	if err != nil {
		return h
	}

	h.Details = data

	return h
}

// getJSON performs an authenticated GET and decodes the body into dst when
// dst is non-nil. The status code is returned even on decode failure so
// callers can classify auth errors.
func getJSON(ctx context.Context, client *http.Client, url string, headers map[string]string, dst interface{}) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			log.Printf("Error closing response body: %v", err)
		}
	}()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return resp.StatusCode, fmt.Errorf("%w: status=%d", errUnauthorized, resp.StatusCode)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))

		return resp.StatusCode, fmt.Errorf("%w: status=%d body=%s", errUnexpectedStatus, resp.StatusCode, body)
	}

	if dst == nil {
		return resp.StatusCode, nil
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return resp.StatusCode, fmt.Errorf("failed to decode response: %w", err)
	}

	return resp.StatusCode, nil
}

// classify maps a probe call error to degraded or unhealthy: rejected
// credentials and timeouts mean the dependency is effectively down for us,
// anything else is a degradation.
func classify(err error) models.Status {
	if errors.Is(err, errUnauthorized) || errors.Is(err, context.DeadlineExceeded) {
		return models.StatusUnhealthy
	}

	return models.StatusDegraded
}
