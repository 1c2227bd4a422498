// Package models pkg/models/jobs.go contains types for the LLM workflow
// microservice job queue. The remote service is authoritative for these
// records; we only read and delete them.
package models

import (
	"encoding/json"
	"time"
)

// JobStatus values reported by the workflow service.
const (
	JobPending    = "pending"
	JobQueued     = "queued"
	JobProcessing = "processing"
	JobCompleted  = "completed"
	JobFailed     = "failed"
	JobCancelled  = "cancelled"
)

// LLMJob is a lightweight job summary as returned by GET /api/v1/jobs.
// UserEmail is attached locally from the platform user table and is not
// part of the remote payload.
type LLMJob struct {
	JobID        string     `json:"job_id"`
	WorkflowName string     `json:"workflow_name"`
	Status       string     `json:"status"`
	Priority     int        `json:"priority"`
	UserID       *string    `json:"user_id,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	StartedAt    *time.Time `json:"started_at,omitempty"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
	DurationMS   *int64     `json:"duration_ms,omitempty"`
	ErrorMessage *string    `json:"error_message,omitempty"`
	UserEmail    string     `json:"user_email,omitempty"`
}

// Running reports whether the job is still being worked on.
func (j *LLMJob) Running() bool {
	return j.Status == JobQueued || j.Status == JobProcessing
}

// JobsPage is one page of job summaries.
type JobsPage struct {
	Jobs   []LLMJob `json:"jobs"`
	Total  int      `json:"total"`
	Limit  int      `json:"limit"`
	Offset int      `json:"offset"`
}

// HasRunning reports whether any job on the page is queued or processing.
func (p *JobsPage) HasRunning() bool {
	for i := range p.Jobs {
		if p.Jobs[i].Running() {
			return true
		}
	}

	return false
}

// JobCost is the token usage and cost block of a completed job.
type JobCost struct {
	Provider     string  `json:"provider"`
	Model        string  `json:"model"`
	InputTokens  int64   `json:"input_tokens"`
	OutputTokens int64   `json:"output_tokens"`
	TotalTokens  int64   `json:"total_tokens"`
	CostUSD      float64 `json:"cost_usd"`
}

// LLMJobDetail is the full record from GET /api/v1/status/{job_id},
// including result and input payloads that the list view omits.
type LLMJobDetail struct {
	LLMJob
	Result    json.RawMessage `json:"result,omitempty"`
	InputData json.RawMessage `json:"input_data,omitempty"`
	Cost      *JobCost        `json:"cost,omitempty"`
}

// BulkDeleteResult is the remote service's response to a bulk delete.
// Counts are passed through verbatim; deletion consistency is entirely
// delegated to the remote service.
type BulkDeleteResult struct {
	Success      bool `json:"success"`
	DeletedCount int  `json:"deleted_count"`
	TasksRevoked *int `json:"tasks_revoked,omitempty"`
	RedisRemoved *int `json:"redis_removed,omitempty"`
}
