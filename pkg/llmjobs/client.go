// Package llmjobs proxies job queue operations to the remote LLM workflow
// microservice. The remote service owns the records; this package only
// reads and deletes them, attaching locally-known user emails on the way
// through.
package llmjobs

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/readykit/pulse/pkg/models"
)

const (
	defaultLimit = 50
	maxLimit     = 200

	secretHeader = "X-API-Secret"
)

// Status filter values accepted by the remote jobs endpoint.
const (
	FilterRunning   = "running"
	FilterCompleted = "completed"
	FilterFailed    = "failed"
	FilterAll       = "all"
)

var (
	ErrInvalidStatusFilter = errors.New("invalid status filter")
	ErrInvalidJobID        = errors.New("invalid job id")
	ErrNoJobIDs            = errors.New("no job ids provided")
	errRemoteStatus        = errors.New("workflow service returned non-200 status")
)

// Client talks to the workflow microservice with a shared secret header.
type Client struct {
	baseURL   string
	apiSecret string
	client    *http.Client
	users     UserDirectory
}

// NewClient creates a proxy client. users may be nil, in which case jobs
// are returned without email enrichment.
func NewClient(baseURL, apiSecret string, timeout time.Duration, users UserDirectory) *Client {
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		apiSecret: apiSecret,
		client:    &http.Client{Timeout: timeout},
		users:     users,
	}
}

// ListJobs forwards to GET /api/v1/jobs and attaches user_email to every
// job whose user_id resolves in the platform user table. The returned page
// never holds more than limit jobs.
func (c *Client) ListJobs(ctx context.Context, statusFilter string, limit int) (*models.JobsPage, error) {
	switch statusFilter {
	case "", FilterAll, FilterRunning, FilterCompleted, FilterFailed:
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatusFilter, statusFilter)
	}

	if limit <= 0 {
		limit = defaultLimit
	}

	if limit > maxLimit {
		limit = maxLimit
	}

	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))

	if statusFilter != "" && statusFilter != FilterAll {
		q.Set("status", statusFilter)
	}

	var page models.JobsPage
	if err := c.do(ctx, http.MethodGet, "/api/v1/jobs?"+q.Encode(), nil, &page); err != nil {
		return nil, err
	}

	if len(page.Jobs) > limit {
		page.Jobs = page.Jobs[:limit]
	}

	if err := c.attachEmails(ctx, page.Jobs); err != nil {
		return nil, err
	}

	return &page, nil
}

// JobDetail forwards to GET /api/v1/status/{job_id}.
func (c *Client) JobDetail(ctx context.Context, jobID string) (*models.LLMJobDetail, error) {
	if _, err := uuid.Parse(jobID); err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidJobID, jobID)
	}

	var detail models.LLMJobDetail
	if err := c.do(ctx, http.MethodGet, "/api/v1/status/"+jobID, nil, &detail); err != nil {
		return nil, err
	}

	if detail.UserID != nil && c.users != nil {
		emails, err := c.users.EmailsByID(ctx, []string{*detail.UserID})
		if err != nil {
			return nil, fmt.Errorf("failed to resolve user email: %w", err)
		}

		detail.UserEmail = emails[*detail.UserID]
	}

	return &detail, nil
}

// BulkDelete forwards to DELETE /api/v1/jobs/bulk and passes the remote
// counts through verbatim. Deleting already-deleted ids is not an error;
// the remote reports deleted_count 0.
func (c *Client) BulkDelete(ctx context.Context, jobIDs []string) (*models.BulkDeleteResult, error) {
	if len(jobIDs) == 0 {
		return nil, ErrNoJobIDs
	}

	for _, id := range jobIDs {
		if _, err := uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidJobID, id)
		}
	}

	body := struct {
		JobIDs []string `json:"job_ids"`
	}{JobIDs: jobIDs}

	var res models.BulkDeleteResult
	if err := c.do(ctx, http.MethodDelete, "/api/v1/jobs/bulk", body, &res); err != nil {
		return nil, err
	}

	return &res, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, dst interface{}) error {
	var reader io.Reader

	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}

		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set(secretHeader, c.apiSecret)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("workflow service request failed: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			log.Printf("Error closing response body: %v", err)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))

		return fmt.Errorf("%w: status=%d body=%s", errRemoteStatus, resp.StatusCode, snippet)
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// attachEmails does one batched lookup for all distinct user ids on the
// page, avoiding a query per job.
func (c *Client) attachEmails(ctx context.Context, jobs []models.LLMJob) error {
	if c.users == nil {
		return nil
	}

	seen := make(map[string]struct{})
	ids := make([]string, 0, len(jobs))

	for i := range jobs {
		if jobs[i].UserID == nil {
			continue
		}

		id := *jobs[i].UserID
		if _, ok := seen[id]; ok {
			continue
		}

		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	if len(ids) == 0 {
		return nil
	}

	emails, err := c.users.EmailsByID(ctx, ids)
	if err != nil {
		return fmt.Errorf("failed to resolve user emails: %w", err)
	}

	for i := range jobs {
		if jobs[i].UserID != nil {
			jobs[i].UserEmail = emails[*jobs[i].UserID]
		}
	}

	return nil
}
