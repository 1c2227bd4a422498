package probes

import (
	"context"
	"fmt"
	"time"

	"github.com/readykit/pulse/pkg/models"
)

// Pinger is the slice of the platform database this probe needs.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PostgresProbe verifies connectivity to the platform Postgres.
type PostgresProbe struct {
	DB Pinger
}

func (*PostgresProbe) Name() string { return "database" }

func (p *PostgresProbe) Probe(ctx context.Context) models.ServiceHealth {
	start := time.Now()

	if err := p.DB.Ping(ctx); err != nil {
		return result(p.Name(), models.StatusUnhealthy, start, fmt.Sprintf("ping failed: %v", err))
	}

	h := result(p.Name(), models.StatusHealthy, start, "connected")

	return withDetails(h, map[string]interface{}{"type": "postgresql"})
}
