// Package httpapi exposes the asynchronous search API over HTTP for
// local integrations. Endpoints mirror the job lifecycle: submit,
// poll status, fetch results.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/custodia-labs/courtcheck/internal/core/domain"
	"github.com/custodia-labs/courtcheck/internal/core/ports/driving"
	"github.com/custodia-labs/courtcheck/internal/logger"
)

// ErrMissingJobService is returned when the job service is not provided.
var ErrMissingJobService = errors.New("httpapi: job service is required")

// Server is the HTTP API server for courtcheck.
type Server struct {
	jobs driving.JobService
	mux  *http.ServeMux
}

// NewServer creates an HTTP API server around the job service.
func NewServer(jobs driving.JobService) (*Server, error) {
	if jobs == nil {
		return nil, ErrMissingJobService
	}

	s := &Server{
		jobs: jobs,
		mux:  http.NewServeMux(),
	}
	s.mux.HandleFunc("POST /api/search", s.handleSubmit)
	s.mux.HandleFunc("GET /api/status/{id}", s.handleStatus)
	s.mux.HandleFunc("GET /api/results/{id}", s.handleResults)
	s.mux.HandleFunc("GET /api/counties", s.handleCounties)

	return s, nil
}

// Handler returns the routed handler, exposed for tests.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Run starts the HTTP server on the specified address.
// It blocks until the context is cancelled or an error occurs.
func (s *Server) Run(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown when context is cancelled
	go func() {
		<-ctx.Done()
		httpServer.Shutdown(context.Background()) //nolint:errcheck
	}()

	logger.Info("HTTP API listening on %s", addr)
	err := httpServer.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// submitRequest is the JSON body accepted by POST /api/search.
type submitRequest struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	MiddleName  string `json:"middle_name"`
	DateOfBirth string `json:"date_of_birth"`
	County      string `json:"county"`
}

// handleSubmit accepts a search request and responds 202 with the job id.
func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	criteria := domain.SearchCriteria{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		MiddleName:  req.MiddleName,
		DateOfBirth: req.DateOfBirth,
		County:      req.County,
	}

	jobID, err := s.jobs.Submit(r.Context(), criteria)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]string{"job_id": jobID})
}

// handleStatus reports the job's current state and progress message.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	info, err := s.jobs.Status(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "job not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, info)
}

// handleResults returns the assembled response for a completed job. A
// still-running or errored job yields 400 with the current status so
// pollers know to keep waiting or give up.
func (s *Server) handleResults(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	result, err := s.jobs.Result(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "job not found")
			return
		}
		if errors.Is(err, domain.ErrJobNotComplete) {
			info, statusErr := s.jobs.Status(r.Context(), id)
			status := ""
			if statusErr == nil {
				status = string(info.Status)
			}
			writeJSON(w, http.StatusBadRequest, map[string]string{
				"error":  "job is not complete",
				"status": status,
			})
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// handleCounties lists the registered county keys.
func (s *Server) handleCounties(w http.ResponseWriter, _ *http.Request) {
	counties := s.jobs.Counties()
	if counties == nil {
		counties = []string{}
	}
	writeJSON(w, http.StatusOK, map[string][]string{"counties": counties})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Warn("httpapi: encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// Addr formats a listen address from a port number.
func Addr(port int) string {
	return fmt.Sprintf(":%d", port)
}
