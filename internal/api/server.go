// Package api exposes the simulation and auth services over a JSON HTTP
// API. Scenario documents are submitted as YAML request bodies; everything
// returned is JSON.
package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mreece/fincast/internal/auth"
	"github.com/mreece/fincast/internal/config"
	"github.com/mreece/fincast/internal/engine"
	"github.com/mreece/fincast/internal/middleware"
	"github.com/mreece/fincast/internal/model"
	"github.com/mreece/fincast/internal/service"
	"github.com/mreece/fincast/internal/storage"
)

// maxScenarioBytes caps the accepted scenario document size.
const maxScenarioBytes = 1 << 20

// Server routes HTTP requests to the simulation and auth services.
type Server struct {
	simulations *service.SimulationService
	auth        *service.AuthService
	mux         *http.ServeMux
}

// NewServer builds the HTTP routing table. Run submission and retrieval
// require a valid bearer token; registration, login, health, and metrics
// do not.
func NewServer(simulations *service.SimulationService, authSvc *service.AuthService, jwtManager *auth.JWTManager) *Server {
	s := &Server{
		simulations: simulations,
		auth:        authSvc,
		mux:         http.NewServeMux(),
	}

	requireAuth := middleware.RequireAuth(jwtManager)

	s.mux.HandleFunc("POST /v1/register", s.handleRegister)
	s.mux.HandleFunc("POST /v1/login", s.handleLogin)
	s.mux.Handle("GET /v1/me", requireAuth(http.HandlerFunc(s.handleMe)))
	s.mux.Handle("POST /v1/runs", requireAuth(http.HandlerFunc(s.handleCreateRun)))
	s.mux.Handle("GET /v1/runs", requireAuth(http.HandlerFunc(s.handleListRuns)))
	s.mux.Handle("GET /v1/runs/{id}", requireAuth(http.HandlerFunc(s.handleGetRun)))
	s.mux.Handle("GET /v1/runs/{id}/snapshots", requireAuth(http.HandlerFunc(s.handleListSnapshots)))
	s.mux.Handle("GET /metrics", promhttp.Handler())
	s.mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

type credentialsRequest struct {
	Email       string `json:"email"`
	DisplayName string `json:"display_name,omitempty"`
	Password    string `json:"password"`
}

type sessionResponse struct {
	User  userResponse `json:"user"`
	Token string       `json:"token"`
}

type userResponse struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	CreatedAt   int64  `json:"created_at"`
}

func toUserResponse(u *model.User) userResponse {
	return userResponse{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		CreatedAt:   u.CreatedAt,
	}
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpError(w, http.StatusBadRequest, "invalid payload: "+err.Error())
		return
	}

	user, token, err := s.auth.Register(r.Context(), req.Email, req.DisplayName, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrEmailExists):
			httpError(w, http.StatusConflict, err.Error())
		case errors.Is(err, auth.ErrWeakPassword), errors.Is(err, auth.ErrInvalidCredentials):
			httpError(w, http.StatusBadRequest, err.Error())
		default:
			httpError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	writeJSON(w, http.StatusCreated, sessionResponse{User: toUserResponse(user), Token: token})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpError(w, http.StatusBadRequest, "invalid payload: "+err.Error())
		return
	}

	user, token, err := s.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		httpError(w, http.StatusUnauthorized, auth.ErrInvalidCredentials.Error())
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{User: toUserResponse(user), Token: token})
}

// handleMe returns the identity carried by the bearer token, letting
// clients check whether a stored token is still valid.
func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"id":    middleware.GetUserID(r.Context()),
		"email": middleware.GetEmail(r.Context()),
	})
}

type runResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedBy string `json:"created_by,omitempty"`
	StartYear int    `json:"start_year"`
	EndYear   int    `json:"end_year"`
	Insolvent bool   `json:"insolvent"`
	CreatedAt int64  `json:"created_at"`
}

type createRunResponse struct {
	Run       runResponse       `json:"run"`
	Snapshots []engine.Snapshot `json:"snapshots"`
}

func toRunResponse(run *storage.Run) runResponse {
	return runResponse{
		ID:        run.ID,
		Name:      run.Name,
		CreatedBy: run.CreatedBy,
		StartYear: run.StartYear,
		EndYear:   run.EndYear,
		Insolvent: run.Insolvent,
		CreatedAt: run.CreatedAt,
	}
}

// handleCreateRun accepts a YAML scenario document, simulates it to the
// horizon, persists the run, and returns it with the full snapshot
// sequence.
func (s *Server) handleCreateRun(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxScenarioBytes))
	if err != nil {
		httpError(w, http.StatusBadRequest, "failed to read scenario: "+err.Error())
		return
	}

	scenario, err := config.Parse(body)
	if err != nil {
		httpError(w, http.StatusBadRequest, err.Error())
		return
	}

	run, snapshots, err := s.simulations.Run(r.Context(), scenario, middleware.GetUserID(r.Context()))
	if err != nil {
		if errors.Is(err, engine.ErrStatutoryViolation) {
			httpError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		httpError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, createRunResponse{Run: toRunResponse(run), Snapshots: snapshots})
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	runs, err := s.simulations.ListRuns(r.Context())
	if err != nil {
		httpError(w, http.StatusInternalServerError, err.Error())
		return
	}
	out := make([]runResponse, len(runs))
	for i, run := range runs {
		out[i] = toRunResponse(run)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	run, err := s.simulations.GetRun(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			httpError(w, http.StatusNotFound, "run not found")
			return
		}
		httpError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, toRunResponse(run))
}

func (s *Server) handleListSnapshots(w http.ResponseWriter, r *http.Request) {
	snapshots, err := s.simulations.ListSnapshots(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			httpError(w, http.StatusNotFound, "run not found")
			return
		}
		httpError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, snapshots)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func httpError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error":  http.StatusText(status),
		"detail": msg,
	})
}
