package server

import (
	"io"
	"net/http"

	"github.com/meridian/fund-console/internal/schemas"
)

const maxDraftBytes = 256 << 10

// handleGetDraft returns the stored snapshot for a form, verbatim.
func (s *Server) handleGetDraft(w http.ResponseWriter, r *http.Request) {
	formID := r.PathValue("form_id")

	data, ok, err := s.drafts.Get(r.Context(), formID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Draft store error: "+err.Error())
		return
	}
	if !ok {
		s.errorResponse(w, http.StatusNotFound, "No draft for form")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(data) //nolint:errcheck
}

// handlePutDraft writes a snapshot directly, bypassing the debounce. The
// payload must satisfy the snapshot schema; drafts that cannot round-trip
// are rejected rather than stored.
func (s *Server) handlePutDraft(w http.ResponseWriter, r *http.Request) {
	formID := r.PathValue("form_id")

	body, err := io.ReadAll(io.LimitReader(r.Body, maxDraftBytes))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Failed to read body")
		return
	}
	if err := schemas.Validate(schemas.DraftSnapshot, body); err != nil {
		s.errorResponse(w, HTTPStatus(err), "Snapshot rejected: "+err.Error())
		return
	}

	if err := s.drafts.Set(r.Context(), formID, body); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Draft store error: "+err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "saved"})
}

// handleDeleteDraft discards a form's draft and its live session if any.
func (s *Server) handleDeleteDraft(w http.ResponseWriter, r *http.Request) {
	formID := r.PathValue("form_id")

	if err := s.sessions.Drop(r.Context(), formID); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Draft store error: "+err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "cleared"})
}
