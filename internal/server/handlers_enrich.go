package server

import (
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// requireEnricher guards routes that need the LLM client.
func (s *Server) requireEnricher(w http.ResponseWriter) bool {
	if s.enricher == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "Enrichment not configured")
		return false
	}
	return true
}

// handleEnrichCompany generates tagline, tags, and keywords for a company and
// stores them on the record.
func (s *Server) handleEnrichCompany(w http.ResponseWriter, r *http.Request) {
	if !s.requireDB(w) || !s.requireEnricher(w) {
		return
	}
	companyID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid company ID")
		return
	}

	company, err := s.db.GetCompanyByID(r.Context(), companyID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if company == nil {
		s.errorResponse(w, http.StatusNotFound, "Company not found")
		return
	}

	description := ""
	if company.Description != nil {
		description = *company.Description
	}

	result, err := s.enricher.EnrichCompany(r.Context(), company.Name, description)
	if err != nil {
		s.log.Warn("enrichment failed", zap.String("company", company.Name), zap.Error(err))
		s.errorResponse(w, HTTPStatus(err), "Enrichment failed: "+err.Error())
		return
	}

	company.Tagline = &result.Tagline
	company.Tags = result.Tags
	company.Keywords = result.Keywords
	if err := s.db.UpdateCompany(r.Context(), company); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	if s.toasts != nil {
		s.toasts.Success("Enrichment complete for " + company.Name + ".")
	}
	s.jsonResponse(w, http.StatusOK, company)
}

type rationaleRequest struct {
	Notes string `json:"notes" validate:"required,min=1,max=20000"`
}

// handleGenerateRationale drafts an investment rationale from deal notes.
// The result is returned for review, not stored; the admin edits it into the
// investment record.
func (s *Server) handleGenerateRationale(w http.ResponseWriter, r *http.Request) {
	if !s.requireDB(w) || !s.requireEnricher(w) {
		return
	}
	companyID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid company ID")
		return
	}

	var req rationaleRequest
	if err := decodeJSON(r, &req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	company, err := s.db.GetCompanyByID(r.Context(), companyID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if company == nil {
		s.errorResponse(w, http.StatusNotFound, "Company not found")
		return
	}

	description := ""
	if company.Description != nil {
		description = *company.Description
	}

	rationale, err := s.enricher.GenerateRationale(r.Context(), company.Name, description, req.Notes)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), "Generation failed: "+err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"rationale": rationale})
}
