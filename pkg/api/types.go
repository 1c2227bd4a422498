//go:generate mockgen -destination=mock_api.go -package=api github.com/readykit/pulse/pkg/api HealthService,JobsSubscriber
package api

import (
	"context"

	"github.com/readykit/pulse/pkg/models"
)

// HealthService is the slice of the health monitor the API consumes.
type HealthService interface {
	Latest() *models.SystemHealth
	Refresh(ctx context.Context) *models.SystemHealth
	Subscribe() (<-chan *models.SystemHealth, func())
}

// JobsSubscriber is the slice of the job watcher the API consumes.
type JobsSubscriber interface {
	Subscribe() (<-chan *models.JobsPage, func())
	Kick()
}

type errorResponse struct {
	Error string `json:"error"`
}

type bulkDeleteRequest struct {
	JobIDs []string `json:"job_ids"`
}

type resolveResponse struct {
	ID       string `json:"id"`
	Resolved bool   `json:"resolved"`
}
