package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/jonathan/proposal-assistant/internal/server/middleware"
	"github.com/jonathan/proposal-assistant/internal/types"
)

// MeResponse represents the response for /api/me
type MeResponse struct {
	ID             string `json:"id"`
	Email          string `json:"email"`
	Status         string `json:"status"`
	TrialRemaining *int   `json:"trial_remaining"`
	TrialLimit     int    `json:"trial_limit"`
}

// handleAnalyze runs the full analysis for the authenticated user.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req types.AnalyzeRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		s.writeError(w, r, &ErrBadRequest{Err: err})
		return
	}

	result, err := s.analyzer.Analyze(r.Context(), userID, req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, result)
}

// handleAnalyzeTest lets the extension check connectivity without auth.
func (s *Server) handleAnalyzeTest(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{
		"message":   "analyze endpoint is reachable",
		"timestamp": s.now().UTC().Format(time.RFC3339),
	})
}

// handleMe reports the caller's entitlement status.
func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	decision, err := s.access.CheckAccess(r.Context(), userID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	limit := decision.Limit
	if limit == 0 {
		limit = s.access.TrialLimit()
	}

	s.jsonResponse(w, http.StatusOK, MeResponse{
		ID:             userID.String(),
		Email:          middleware.GetEmail(r),
		Status:         decision.Status(),
		TrialRemaining: decision.Remaining,
		TrialLimit:     limit,
	})
}

// handleSelectors serves the DOM selectors the extension scrapes with.
func (s *Server) handleSelectors(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, s.selectors)
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"timestamp": s.now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleNotFound(w http.ResponseWriter, _ *http.Request) {
	s.errorResponse(w, http.StatusNotFound, "not found")
}
