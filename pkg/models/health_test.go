package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRollup(t *testing.T) {
	tests := []struct {
		name     string
		statuses []Status
		want     Status
	}{
		{
			name:     "all healthy",
			statuses: []Status{StatusHealthy, StatusHealthy, StatusHealthy},
			want:     StatusHealthy,
		},
		{
			name:     "one degraded",
			statuses: []Status{StatusHealthy, StatusDegraded, StatusHealthy},
			want:     StatusDegraded,
		},
		{
			name:     "unknown counts as degraded",
			statuses: []Status{StatusHealthy, StatusUnknown},
			want:     StatusDegraded,
		},
		{
			name:     "one unhealthy wins over degraded",
			statuses: []Status{StatusDegraded, StatusUnhealthy, StatusHealthy},
			want:     StatusUnhealthy,
		},
		{
			name:     "unhealthy after degraded still wins",
			statuses: []Status{StatusDegraded, StatusDegraded, StatusUnhealthy},
			want:     StatusUnhealthy,
		},
		{
			name:     "empty set is healthy",
			statuses: nil,
			want:     StatusHealthy,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			services := make([]ServiceHealth, 0, len(tt.statuses))
			for _, s := range tt.statuses {
				services = append(services, ServiceHealth{Name: "svc", Status: s})
			}

			assert.Equal(t, tt.want, Rollup(services))
		})
	}
}
