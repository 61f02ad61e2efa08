package server

import (
	"net/http"

	"github.com/meridian/fund-console/internal/forms"
	"github.com/meridian/fund-console/internal/types"
)

// sessionResponse is the common shape returned by form session endpoints.
func sessionResponse(s *forms.Session, extra map[string]any) map[string]any {
	resp := map[string]any{
		"form_id":  s.ID,
		"state":    s.Controller.State(),
		"snapshot": s.Form.Snapshot(),
	}
	for k, v := range extra {
		resp[k] = v
	}
	return resp
}

// handleOpenForm opens (or resumes) a form session, restoring any saved
// draft on first open.
func (s *Server) handleOpenForm(w http.ResponseWriter, r *http.Request) {
	session := s.sessions.Get(r.Context(), r.PathValue("form_id"))
	s.jsonResponse(w, http.StatusOK, sessionResponse(session, nil))
}

type formChangesRequest struct {
	Fields map[string]any `json:"fields"`
}

// handleFormChanges applies user edits to a form. Each edit counts as
// interaction and arms the debounced save.
func (s *Server) handleFormChanges(w http.ResponseWriter, r *http.Request) {
	var req formChangesRequest
	if err := decodeJSON(r, &req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if len(req.Fields) == 0 {
		s.errorResponse(w, http.StatusBadRequest, "No fields in change set")
		return
	}

	session := s.sessions.Get(r.Context(), r.PathValue("form_id"))
	for name, value := range req.Fields {
		session.SetField(name, value)
	}
	s.jsonResponse(w, http.StatusOK, sessionResponse(session, nil))
}

type formPasteRequest struct {
	Variant string `json:"variant" validate:"required,oneof=memo diligence"`
	Text    string `json:"text"`
}

// handleFormPaste parses pasted text and applies every extracted field to the
// form. Saves stay blocked while fields are being applied so a half-applied
// paste is never snapshotted.
func (s *Server) handleFormPaste(w http.ResponseWriter, r *http.Request) {
	var req formPasteRequest
	if err := decodeJSON(r, &req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	session := s.sessions.Get(r.Context(), r.PathValue("form_id"))

	var result *types.ExtractionResult
	session.BeginPaste()
	if req.Variant == "memo" {
		result = s.engine.Parse(req.Text)
	} else {
		var err error
		result, err = s.engine.ParseDiligence(r.Context(), req.Text)
		if err != nil {
			session.EndPaste()
			s.errorResponse(w, http.StatusServiceUnavailable, "Parse interrupted: "+err.Error())
			return
		}
	}
	for name, value := range result.Fields {
		session.SetField(string(name), value)
	}
	session.EndPaste()

	s.jsonResponse(w, http.StatusOK, sessionResponse(session, map[string]any{
		"extraction": result,
	}))
}

// handleFormFlush persists any pending changes immediately.
func (s *Server) handleFormFlush(w http.ResponseWriter, r *http.Request) {
	session := s.sessions.Get(r.Context(), r.PathValue("form_id"))
	session.Controller.Flush()
	s.jsonResponse(w, http.StatusOK, sessionResponse(session, map[string]any{
		"writes": session.Controller.WriteCount(),
	}))
}

// handleClearForm discards the form's draft and session.
func (s *Server) handleClearForm(w http.ResponseWriter, r *http.Request) {
	formID := r.PathValue("form_id")
	if err := s.sessions.Drop(r.Context(), formID); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Draft store error: "+err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"form_id": formID, "status": "cleared"})
}
