package gateway

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/harun/aruna/internal/observability"
	"github.com/harun/aruna/pkg/agent"
	"github.com/harun/aruna/pkg/session"
)

func (s *Server) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// writeError maps core error kinds to HTTP statuses: validation errors are
// the caller's to fix (400), not-found is 404, everything else is 500.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, session.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, session.ErrNotFound):
		status = http.StatusNotFound
	}
	s.writeJSON(w, status, errorResponse{Error: err.Error()})
}

func (s *Server) writeBadRequest(w http.ResponseWriter, msg string) {
	s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: msg})
}

// handleChat appends the user turn, invokes the model provider on the full
// session history, appends the assistant turn and returns the reply
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeBadRequest(w, "invalid JSON body")
		return
	}
	if req.Message == "" {
		s.writeBadRequest(w, "message is required")
		return
	}

	if s.provider == nil {
		s.writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "model provider not configured"})
		return
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	s.manager.AppendMessage(sessionID, session.Message{
		Role:      "user",
		Content:   req.Message,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})

	history := s.manager.GetMessages(sessionID)

	start := time.Now()
	response, err := s.provider.Call(r.Context(), agent.LLMRequest{
		Model:        s.options.Model.Name,
		Messages:     history,
		Temperature:  s.options.Model.Temperature,
		MaxTokens:    s.options.Model.MaxTokens,
		SystemPrompt: s.options.Model.SystemPrompt,
	})
	observability.RecordProviderRun(s.provider.Provider(), time.Since(start), err == nil)

	if err != nil {
		s.logger.Error().
			Err(err).
			Str("session_id", sessionID).
			Msg("Model invocation failed")
		s.writeJSON(w, http.StatusBadGateway, errorResponse{Error: "model invocation failed"})
		return
	}

	s.manager.AppendMessage(sessionID, session.Message{
		Role:      "assistant",
		Content:   response.Content,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})

	s.writeJSON(w, http.StatusOK, chatResponse{
		SessionID: sessionID,
		Reply:     response.Content,
	})
}

// handleListSessions handles GET /v1/sessions with optional min_messages,
// max_messages and since query filters
func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	var filter session.ListFilter

	query := r.URL.Query()
	if raw := query.Get("min_messages"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			s.writeBadRequest(w, fmt.Sprintf("invalid min_messages %q", raw))
			return
		}
		filter.MinMessages = &n
	}
	if raw := query.Get("max_messages"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			s.writeBadRequest(w, fmt.Sprintf("invalid max_messages %q", raw))
			return
		}
		filter.MaxMessages = &n
	}
	filter.Since = query.Get("since")

	summaries := s.manager.ListSessions(filter)
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"sessions": summaries,
		"count":    len(summaries),
	})
}

// handleStats handles GET /v1/sessions/stats
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.manager.Stats())
}

// handleAppendMessage handles POST /v1/sessions/{id}/messages
func (s *Server) handleAppendMessage(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("id")

	var req appendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeBadRequest(w, "invalid JSON body")
		return
	}
	if req.Role == "" {
		s.writeBadRequest(w, "role is required")
		return
	}
	if req.Content == nil {
		s.writeBadRequest(w, "content is required")
		return
	}

	s.manager.AppendMessage(sessionID, session.Message{
		Role:      req.Role,
		Content:   *req.Content,
		Timestamp: req.Timestamp,
	})

	s.writeJSON(w, http.StatusCreated, map[string]interface{}{
		"session_id": sessionID,
		"messages":   len(s.manager.GetMessages(sessionID)),
	})
}

// handleExport handles GET /v1/sessions/{id}/export?format=json|csv|markdown
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("id")

	formatName := r.URL.Query().Get("format")
	if formatName == "" {
		formatName = string(session.FormatJSON)
	}
	format, err := session.ParseExportFormat(formatName)
	if err != nil {
		s.writeError(w, err)
		return
	}

	out, err := s.manager.ExportSession(sessionID, format)
	if err != nil {
		s.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", exportContentType(format))
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, out)
}

func exportContentType(format session.Format) string {
	switch format {
	case session.FormatCSV:
		return "text/csv; charset=utf-8"
	case session.FormatMarkdown:
		return "text/markdown; charset=utf-8"
	default:
		return "application/json"
	}
}

// handleImport handles POST /v1/sessions/{id}/import?format=json|csv; the
// imported messages append to any existing session content
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("id")

	formatName := r.URL.Query().Get("format")
	if formatName == "" {
		formatName = string(session.FormatJSON)
	}
	format, err := session.ParseImportFormat(formatName)
	if err != nil {
		s.writeError(w, err)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		s.writeBadRequest(w, "failed to read request body")
		return
	}

	imported, err := s.manager.ImportSession(sessionID, format, string(body))
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"session_id": sessionID,
		"imported":   imported,
	})
}

// handleDeleteSession handles DELETE /v1/sessions/{id}; deleting an absent
// session is not an error, the response just reports deleted=false
func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("id")
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"session_id": sessionID,
		"deleted":    s.manager.DeleteSession(sessionID),
	})
}

// handleBulkDelete handles POST /v1/sessions/bulk-delete
func (s *Server) handleBulkDelete(w http.ResponseWriter, r *http.Request) {
	var req bulkDeleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeBadRequest(w, "invalid JSON body")
		return
	}
	if req.SessionIDs == nil {
		s.writeBadRequest(w, "session_ids is required")
		return
	}

	s.writeJSON(w, http.StatusOK, s.manager.DeleteSessions(req.SessionIDs))
}

// handleClearAll handles DELETE /v1/sessions
func (s *Server) handleClearAll(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"cleared": s.manager.ClearAll(),
	})
}
