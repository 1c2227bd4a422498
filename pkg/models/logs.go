// Package models pkg/models/logs.go contains the system log row shape.
package models

import (
	"encoding/json"
	"time"
)

// SystemLogEntry is a persisted error/event row written by other parts of
// the platform. This service only reads, filters and marks rows resolved.
type SystemLogEntry struct {
	ID         string          `json:"id"`
	Level      string          `json:"level"`
	Source     string          `json:"source"`
	Message    string          `json:"message"`
	Details    json.RawMessage `json:"details,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
	Resolved   bool            `json:"resolved"`
	ResolvedAt *time.Time      `json:"resolved_at,omitempty"`
}
