// Package models pkg/models/health.go contains shared types for health aggregation.
package models

import (
	"encoding/json"
	"time"
)

// Status represents the health state of a single service or of the system.
type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusDegraded  Status = "degraded"
	StatusUnhealthy Status = "unhealthy"
	StatusUnknown   Status = "unknown"
)

// ServiceHealth is the result of a single probe. It is transient: built fresh
// on every aggregation and never mutated afterwards.
type ServiceHealth struct {
	Name      string          `json:"name"`
	Status    Status          `json:"status"`
	LatencyMS int64           `json:"latency_ms,omitempty"`
	Message   string          `json:"message,omitempty"`
	Details   json.RawMessage `json:"details,omitempty"`
	CheckedAt time.Time       `json:"checked_at"`
}

// SystemHealth is the rollup of one aggregation pass.
type SystemHealth struct {
	Overall   Status          `json:"overall"`
	Services  []ServiceHealth `json:"services"`
	CheckedAt time.Time       `json:"checked_at"`
}

// Rollup computes the overall status from a set of service results:
// unhealthy if any service is unhealthy, else degraded if any is degraded
// or unknown, else healthy.
func Rollup(services []ServiceHealth) Status {
	overall := StatusHealthy

	for _, svc := range services {
		switch svc.Status {
		case StatusUnhealthy:
			return StatusUnhealthy
		case StatusDegraded, StatusUnknown:
			overall = StatusDegraded
		case StatusHealthy:
		}
	}

	return overall
}
