package server

import (
	"net/http"
	"strings"
)

// parseRequest is the payload for both paste variants.
type parseRequest struct {
	Text string `json:"text"`
}

// handleParseMemo extracts investment-memo fields from pasted text.
// Unusable text is not an error; the response just lists every field as
// failed so the client can fall back to manual entry.
func (s *Server) handleParseMemo(w http.ResponseWriter, r *http.Request) {
	var req parseRequest
	if err := decodeJSON(r, &req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	result := s.engine.Parse(req.Text)
	s.jsonResponse(w, http.StatusOK, result)
}

// handleParseDiligence extracts founder and formation fields, including the
// normalized HQ address. The only error path is cancellation while waiting on
// the geocoder.
func (s *Server) handleParseDiligence(w http.ResponseWriter, r *http.Request) {
	var req parseRequest
	if err := decodeJSON(r, &req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	result, err := s.engine.ParseDiligence(r.Context(), req.Text)
	if err != nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "Parse interrupted: "+err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, result)
}

// addressRequest carries a raw address for normalization.
type addressRequest struct {
	Address string `json:"address"`
}

// handleNormalizeAddress runs a raw address through the normalization chain.
func (s *Server) handleNormalizeAddress(w http.ResponseWriter, r *http.Request) {
	var req addressRequest
	if err := decodeJSON(r, &req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Address) == "" {
		s.errorResponse(w, http.StatusBadRequest, "Address is required")
		return
	}
	if s.addr == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "Address normalization not configured")
		return
	}

	result := s.addr.Normalize(r.Context(), req.Address)
	s.jsonResponse(w, http.StatusOK, result)
}
