// Package handlers implements the HTTP handlers for the query API.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/fplchat/query-engine/internal/history"
	"github.com/fplchat/query-engine/internal/observability"
	"github.com/fplchat/query-engine/internal/snapshot"
	"github.com/fplchat/query-engine/pkg/engine"
)

const maxQueryLength = 500

// QueryRequest is the body of POST /api/v1/query.
type QueryRequest struct {
	SessionID string `json:"session_id"`
	Query     string `json:"query"`
}

// AnswerRequest is the body of POST /api/v1/answer.
type AnswerRequest struct {
	SessionID string `json:"session_id"`
	TurnIndex int    `json:"turn_index"`
	Answer    string `json:"answer"`
}

// ErrorResponse is the error envelope all handlers share.
type ErrorResponse struct {
	Error string `json:"error"`
}

// QueryHandler serves query and session endpoints.
type QueryHandler struct {
	engine *engine.Engine
	logger *observability.Logger
}

// NewQueryHandler creates a QueryHandler.
func NewQueryHandler(eng *engine.Engine, logger *observability.Logger) *QueryHandler {
	return &QueryHandler{engine: eng, logger: logger}
}

// Query handles POST /api/v1/query.
func (h *QueryHandler) Query(w http.ResponseWriter, r *http.Request) {
	var req QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.Query = strings.TrimSpace(req.Query)
	if req.Query == "" {
		writeError(w, http.StatusBadRequest, "query is required")
		return
	}
	if len(req.Query) > maxQueryLength {
		writeError(w, http.StatusBadRequest, "query too long")
		return
	}
	if req.SessionID == "" {
		req.SessionID = engine.NewSessionID()
	}

	resp, err := h.engine.Query(r.Context(), req.SessionID, req.Query)
	if err != nil {
		if errors.Is(err, snapshot.ErrNoSnapshot) {
			writeError(w, http.StatusServiceUnavailable, "dataset not loaded yet")
			return
		}
		h.logger.WithContext(r.Context()).Error().Err(err).Msg("query failed")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// RecordAnswer handles POST /api/v1/answer.
func (h *QueryHandler) RecordAnswer(w http.ResponseWriter, r *http.Request) {
	var req AnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.SessionID == "" || req.TurnIndex < 1 {
		writeError(w, http.StatusBadRequest, "session_id and turn_index are required")
		return
	}

	err := h.engine.RecordAnswer(r.Context(), req.SessionID, req.TurnIndex, req.Answer)
	if errors.Is(err, history.ErrSessionNotFound) {
		writeError(w, http.StatusNotFound, "turn not found")
		return
	}
	if err != nil {
		h.logger.WithContext(r.Context()).Error().Err(err).Msg("record answer failed")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ClearSession handles DELETE /api/v1/sessions/{sessionID}.
func (h *QueryHandler) ClearSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	if sessionID == "" {
		writeError(w, http.StatusBadRequest, "session id is required")
		return
	}

	if err := h.engine.ClearSession(r.Context(), sessionID); err != nil {
		h.logger.WithContext(r.Context()).Error().Err(err).Msg("clear session failed")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}
