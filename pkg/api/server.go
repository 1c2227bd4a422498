// Package api pkg/api/server.go serves the diagnostics dashboard API.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"golang.org/x/time/rate"

	"github.com/readykit/pulse/pkg/db"
	httpx "github.com/readykit/pulse/pkg/http"
	"github.com/readykit/pulse/pkg/llmjobs"
	"github.com/readykit/pulse/pkg/platform"
)

// Refresh is rate limited so a dashboard stuck in a reload loop cannot
// hammer every upstream dependency.
const (
	refreshPerSecond = 0.5
	refreshBurst     = 2
)

type APIServer struct {
	router         *mux.Router
	monitor        HealthService
	history        db.Service
	jobs           llmjobs.JobService
	watcher        JobsSubscriber
	platform       platform.Service
	auth           *httpx.AdminAuth
	refreshLimiter *rate.Limiter
}

func NewAPIServer(
	monitor HealthService,
	history db.Service,
	jobs llmjobs.JobService,
	watcher JobsSubscriber,
	platformDB platform.Service,
	auth *httpx.AdminAuth,
) *APIServer {
	s := &APIServer{
		router:         mux.NewRouter(),
		monitor:        monitor,
		history:        history,
		jobs:           jobs,
		watcher:        watcher,
		platform:       platformDB,
		auth:           auth,
		refreshLimiter: rate.NewLimiter(rate.Limit(refreshPerSecond), refreshBurst),
	}
	s.setupRoutes()

	return s
}

func (s *APIServer) setupRoutes() {
	s.router.Use(httpx.CommonMiddleware)

	if s.auth != nil {
		s.router.Use(s.auth.Middleware)
	}

	// Health endpoints
	s.router.HandleFunc("/api/health", s.getHealth).Methods("GET")
	s.router.HandleFunc("/api/health/refresh", s.refreshHealth).Methods("POST")
	s.router.HandleFunc("/api/health/services", s.getServices).Methods("GET")
	s.router.HandleFunc("/api/health/services/{name}", s.getService).Methods("GET")
	s.router.HandleFunc("/api/health/services/{name}/history", s.getServiceHistory).Methods("GET")
	s.router.HandleFunc("/api/health/history", s.getHistory).Methods("GET")

	// Job queue proxy endpoints
	s.router.HandleFunc("/api/jobs", s.getJobs).Methods("GET")
	s.router.HandleFunc("/api/jobs/bulk", s.bulkDeleteJobs).Methods("DELETE")
	s.router.HandleFunc("/api/jobs/{id}", s.getJobDetail).Methods("GET")

	// System log view
	s.router.HandleFunc("/api/logs", s.getLogs).Methods("GET")
	s.router.HandleFunc("/api/logs/{id}/resolve", s.resolveLog).Methods("POST")

	// Live updates
	s.router.HandleFunc("/api/ws", s.serveWS).Methods("GET")
}

// Router exposes the configured handler for the HTTP server.
func (s *APIServer) Router() http.Handler {
	return s.router
}

func (s *APIServer) getHealth(w http.ResponseWriter, r *http.Request) {
	snapshot := s.monitor.Latest()
	if snapshot == nil {
		writeError(w, http.StatusServiceUnavailable, "no health snapshot available yet")
		return
	}

	writeJSON(w, http.StatusOK, snapshot)
}

func (s *APIServer) refreshHealth(w http.ResponseWriter, r *http.Request) {
	if !s.refreshLimiter.Allow() {
		writeError(w, http.StatusTooManyRequests, "refresh rate limit exceeded")
		return
	}

	// Detached from the request context: a client disconnect mid-refresh
	// must not cancel the probes, or every service would report a
	// fabricated timeout.
	writeJSON(w, http.StatusOK, s.monitor.Refresh(context.WithoutCancel(r.Context())))
}

func (s *APIServer) getServices(w http.ResponseWriter, r *http.Request) {
	snapshot := s.monitor.Latest()
	if snapshot == nil {
		writeError(w, http.StatusServiceUnavailable, "no health snapshot available yet")
		return
	}

	writeJSON(w, http.StatusOK, snapshot.Services)
}

func (s *APIServer) getService(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	snapshot := s.monitor.Latest()
	if snapshot == nil {
		writeError(w, http.StatusServiceUnavailable, "no health snapshot available yet")
		return
	}

	for _, svc := range snapshot.Services {
		if svc.Name == name {
			writeJSON(w, http.StatusOK, svc)
			return
		}
	}

	writeError(w, http.StatusNotFound, "service not found")
}

func (s *APIServer) getServiceHistory(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	history, err := s.history.GetServiceHistory(name, queryLimit(r))
	if err != nil {
		log.Printf("Error fetching history for service %s: %v", name, err)
		writeError(w, http.StatusInternalServerError, "failed to fetch service history")

		return
	}

	writeJSON(w, http.StatusOK, history)
}

func (s *APIServer) getHistory(w http.ResponseWriter, r *http.Request) {
	snapshots, err := s.history.GetSnapshots(queryLimit(r))
	if err != nil {
		log.Printf("Error fetching health history: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to fetch health history")

		return
	}

	writeJSON(w, http.StatusOK, snapshots)
}

func (s *APIServer) getJobs(w http.ResponseWriter, r *http.Request) {
	statusFilter := r.URL.Query().Get("status")

	page, err := s.jobs.ListJobs(r.Context(), statusFilter, queryLimit(r))
	if err != nil {
		if errors.Is(err, llmjobs.ErrInvalidStatusFilter) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		log.Printf("Error listing jobs: %v", err)
		writeError(w, http.StatusBadGateway, "workflow service unavailable")

		return
	}

	writeJSON(w, http.StatusOK, page)
}

func (s *APIServer) getJobDetail(w http.ResponseWriter, r *http.Request) {
	jobID := mux.Vars(r)["id"]

	detail, err := s.jobs.JobDetail(r.Context(), jobID)
	if err != nil {
		if errors.Is(err, llmjobs.ErrInvalidJobID) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		log.Printf("Error fetching job %s: %v", jobID, err)
		writeError(w, http.StatusBadGateway, "workflow service unavailable")

		return
	}

	writeJSON(w, http.StatusOK, detail)
}

func (s *APIServer) bulkDeleteJobs(w http.ResponseWriter, r *http.Request) {
	var req bulkDeleteRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := s.jobs.BulkDelete(r.Context(), req.JobIDs)
	if err != nil {
		switch {
		case errors.Is(err, llmjobs.ErrNoJobIDs), errors.Is(err, llmjobs.ErrInvalidJobID):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			log.Printf("Error bulk deleting jobs: %v", err)
			writeError(w, http.StatusBadGateway, "workflow service unavailable")
		}

		return
	}

	if s.watcher != nil {
		// Wake the watcher so subscribers see the shrunken queue promptly.
		s.watcher.Kick()
	}

	writeJSON(w, http.StatusOK, result)
}

func (s *APIServer) getLogs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := platform.LogFilter{
		Level:          q.Get("level"),
		Source:         q.Get("source"),
		UnresolvedOnly: q.Get("unresolved") == "true",
		Limit:          queryLimit(r),
	}

	entries, err := s.platform.ListSystemLogs(r.Context(), filter)
	if err != nil {
		log.Printf("Error listing system logs: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to fetch system logs")

		return
	}

	writeJSON(w, http.StatusOK, entries)
}

func (s *APIServer) resolveLog(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := s.platform.ResolveSystemLog(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, platform.ErrInvalidLogID):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, platform.ErrLogNotFound):
			writeError(w, http.StatusNotFound, "system log entry not found")
		default:
			log.Printf("Error resolving system log %s: %v", id, err)
			writeError(w, http.StatusInternalServerError, "failed to resolve system log")
		}

		return
	}

	writeJSON(w, http.StatusOK, resolveResponse{ID: id, Resolved: true})
}

func queryLimit(r *http.Request) int {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return 0
	}

	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		return 0
	}

	return limit
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
