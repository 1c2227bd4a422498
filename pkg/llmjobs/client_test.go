package llmjobs

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/readykit/pulse/pkg/models"
)

const testSecret = "test-secret"

func strPtr(s string) *string { return &s }

func newJobsServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, testSecret, r.Header.Get("X-API-Secret"))
		handler(w, r)
	}))
}

func TestClientListJobs(t *testing.T) {
	userA := uuid.NewString()
	userB := uuid.NewString()

	srv := newJobsServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/v1/jobs", r.URL.Path)
		assert.Equal(t, "processing", r.URL.Query().Get("status"))
		assert.Equal(t, "25", r.URL.Query().Get("limit"))

		page := models.JobsPage{
			Jobs: []models.LLMJob{
				{JobID: uuid.NewString(), Status: models.JobProcessing, UserID: strPtr(userA)},
				{JobID: uuid.NewString(), Status: models.JobProcessing, UserID: strPtr(userA)},
				{JobID: uuid.NewString(), Status: models.JobQueued, UserID: strPtr(userB)},
				{JobID: uuid.NewString(), Status: models.JobQueued},
			},
			Total: 4,
			Limit: 25,
		}
		require.NoError(t, json.NewEncoder(w).Encode(&page))
	})
	defer srv.Close()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	users := NewMockUserDirectory(ctrl)

	// one batched lookup with distinct ids only
	users.EXPECT().
		EmailsByID(gomock.Any(), gomock.Len(2)).
		Return(map[string]string{userA: "a@example.com", userB: "b@example.com"}, nil)

	c := NewClient(srv.URL, testSecret, time.Second, users)

	page, err := c.ListJobs(context.Background(), "processing", 25)
	require.NoError(t, err)
	require.Len(t, page.Jobs, 4)
	assert.Equal(t, "a@example.com", page.Jobs[0].UserEmail)
	assert.Equal(t, "a@example.com", page.Jobs[1].UserEmail)
	assert.Equal(t, "b@example.com", page.Jobs[2].UserEmail)
	assert.Empty(t, page.Jobs[3].UserEmail)
}

func TestClientListJobs_LimitClamping(t *testing.T) {
	tests := []struct {
		name      string
		limit     int
		wantLimit string
	}{
		{name: "zero uses default", limit: 0, wantLimit: "50"},
		{name: "negative uses default", limit: -5, wantLimit: "50"},
		{name: "over max is clamped", limit: 1000, wantLimit: "200"},
		{name: "in range passes through", limit: 10, wantLimit: "10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newJobsServer(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, tt.wantLimit, r.URL.Query().Get("limit"))
				require.NoError(t, json.NewEncoder(w).Encode(&models.JobsPage{}))
			})
			defer srv.Close()

			c := NewClient(srv.URL, testSecret, time.Second, nil)

			_, err := c.ListJobs(context.Background(), FilterAll, tt.limit)
			require.NoError(t, err)
		})
	}
}

func TestClientListJobs_NeverExceedsLimit(t *testing.T) {
	srv := newJobsServer(t, func(w http.ResponseWriter, _ *http.Request) {
		// a misbehaving remote returns more rows than requested
		page := models.JobsPage{Total: 3}
		for i := 0; i < 3; i++ {
			page.Jobs = append(page.Jobs, models.LLMJob{JobID: uuid.NewString(), Status: models.JobCompleted})
		}

		require.NoError(t, json.NewEncoder(w).Encode(&page))
	})
	defer srv.Close()

	c := NewClient(srv.URL, testSecret, time.Second, nil)

	page, err := c.ListJobs(context.Background(), FilterAll, 2)
	require.NoError(t, err)
	assert.Len(t, page.Jobs, 2)
}

func TestClientListJobs_InvalidFilter(t *testing.T) {
	c := NewClient("http://localhost:1", testSecret, time.Second, nil)

	_, err := c.ListJobs(context.Background(), "exploded", 10)
	assert.ErrorIs(t, err, ErrInvalidStatusFilter)
}

func TestClientListJobs_RemoteError(t *testing.T) {
	srv := newJobsServer(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "internal error", http.StatusInternalServerError)
	})
	defer srv.Close()

	c := NewClient(srv.URL, testSecret, time.Second, nil)

	_, err := c.ListJobs(context.Background(), FilterAll, 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status=500")
}

func TestClientListJobs_EmailLookupFailure(t *testing.T) {
	srv := newJobsServer(t, func(w http.ResponseWriter, _ *http.Request) {
		page := models.JobsPage{
			Jobs:  []models.LLMJob{{JobID: uuid.NewString(), UserID: strPtr(uuid.NewString())}},
			Total: 1,
		}
		require.NoError(t, json.NewEncoder(w).Encode(&page))
	})
	defer srv.Close()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	users := NewMockUserDirectory(ctrl)
	users.EXPECT().EmailsByID(gomock.Any(), gomock.Any()).Return(nil, assert.AnError)

	c := NewClient(srv.URL, testSecret, time.Second, users)

	_, err := c.ListJobs(context.Background(), FilterAll, 10)
	assert.Error(t, err)
}

func TestClientJobDetail(t *testing.T) {
	jobID := uuid.NewString()
	userID := uuid.NewString()

	srv := newJobsServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/status/"+jobID, r.URL.Path)

		detail := models.LLMJobDetail{
			LLMJob: models.LLMJob{JobID: jobID, Status: models.JobCompleted, UserID: strPtr(userID)},
			Result: json.RawMessage(`{"summary":"ok"}`),
			Cost:   &models.JobCost{Provider: "openrouter", TotalTokens: 1200, CostUSD: 0.03},
		}
		require.NoError(t, json.NewEncoder(w).Encode(&detail))
	})
	defer srv.Close()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	users := NewMockUserDirectory(ctrl)
	users.EXPECT().
		EmailsByID(gomock.Any(), []string{userID}).
		Return(map[string]string{userID: "a@example.com"}, nil)

	c := NewClient(srv.URL, testSecret, time.Second, users)

	detail, err := c.JobDetail(context.Background(), jobID)
	require.NoError(t, err)
	assert.Equal(t, jobID, detail.JobID)
	assert.Equal(t, "a@example.com", detail.UserEmail)
	require.NotNil(t, detail.Cost)
	assert.Equal(t, int64(1200), detail.Cost.TotalTokens)
}

func TestClientJobDetail_InvalidID(t *testing.T) {
	c := NewClient("http://localhost:1", testSecret, time.Second, nil)

	_, err := c.JobDetail(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, ErrInvalidJobID)
}

func TestClientBulkDelete(t *testing.T) {
	ids := []string{uuid.NewString(), uuid.NewString()}

	srv := newJobsServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/v1/jobs/bulk", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body struct {
			JobIDs []string `json:"job_ids"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, ids, body.JobIDs)

		revoked := 1
		res := models.BulkDeleteResult{Success: true, DeletedCount: 2, TasksRevoked: &revoked}
		require.NoError(t, json.NewEncoder(w).Encode(&res))
	})
	defer srv.Close()

	c := NewClient(srv.URL, testSecret, time.Second, nil)

	res, err := c.BulkDelete(context.Background(), ids)
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, 2, res.DeletedCount)
	require.NotNil(t, res.TasksRevoked)
	assert.Equal(t, 1, *res.TasksRevoked)
}

func TestClientBulkDelete_Validation(t *testing.T) {
	c := NewClient("http://localhost:1", testSecret, time.Second, nil)

	_, err := c.BulkDelete(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNoJobIDs)

	_, err = c.BulkDelete(context.Background(), []string{"nope"})
	assert.ErrorIs(t, err, ErrInvalidJobID)
}

func TestClientBulkDelete_AlreadyDeleted(t *testing.T) {
	srv := newJobsServer(t, func(w http.ResponseWriter, _ *http.Request) {
		// the remote treats unknown ids as a no-op, not an error
		res := models.BulkDeleteResult{Success: true, DeletedCount: 0}
		require.NoError(t, json.NewEncoder(w).Encode(&res))
	})
	defer srv.Close()

	c := NewClient(srv.URL, testSecret, time.Second, nil)

	res, err := c.BulkDelete(context.Background(), []string{uuid.NewString()})
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Zero(t, res.DeletedCount)
}
