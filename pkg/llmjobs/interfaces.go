// Package llmjobs pkg/llmjobs/interfaces.go

//go:generate mockgen -destination=mock_llmjobs.go -package=llmjobs github.com/readykit/pulse/pkg/llmjobs UserDirectory,JobService

package llmjobs

import (
	"context"

	"github.com/readykit/pulse/pkg/models"
)

// UserDirectory resolves user ids to emails from the platform database in
// one batched lookup.
type UserDirectory interface {
	EmailsByID(ctx context.Context, ids []string) (map[string]string, error)
}

// JobService is the proxy surface the API layer and watcher consume.
type JobService interface {
	ListJobs(ctx context.Context, statusFilter string, limit int) (*models.JobsPage, error)
	JobDetail(ctx context.Context, jobID string) (*models.LLMJobDetail, error)
	BulkDelete(ctx context.Context, jobIDs []string) (*models.BulkDeleteResult, error)
}
