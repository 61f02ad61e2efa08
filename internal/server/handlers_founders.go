package server

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/meridian/fund-console/internal/db"
)

type founderRequest struct {
	Name     string  `json:"name" validate:"required,min=1,max=200"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email"`
	Role     string  `json:"role" validate:"required,oneof=founder cofounder"`
	LinkedIn *string `json:"linkedin,omitempty" validate:"omitempty,url"`
	Bio      *string `json:"bio,omitempty" validate:"omitempty,max=5000"`
}

// handleListFounders lists founders for a company.
func (s *Server) handleListFounders(w http.ResponseWriter, r *http.Request) {
	if !s.requireDB(w) {
		return
	}
	companyID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid company ID")
		return
	}

	founders, err := s.db.ListFounders(r.Context(), companyID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"founders": founders,
		"count":    len(founders),
	})
}

// handleCreateFounder attaches a founder to a company.
func (s *Server) handleCreateFounder(w http.ResponseWriter, r *http.Request) {
	if !s.requireDB(w) {
		return
	}
	companyID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid company ID")
		return
	}

	var req founderRequest
	if err := decodeJSON(r, &req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	founder, err := s.db.CreateFounder(r.Context(), &db.Founder{
		CompanyID: companyID,
		Name:      req.Name,
		Email:     req.Email,
		Role:      req.Role,
		LinkedIn:  req.LinkedIn,
		Bio:       req.Bio,
	})
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	s.jsonResponse(w, http.StatusCreated, founder)
}

// handleUpdateFounder replaces a founder's editable fields.
func (s *Server) handleUpdateFounder(w http.ResponseWriter, r *http.Request) {
	if !s.requireDB(w) {
		return
	}
	founderID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid founder ID")
		return
	}

	var req founderRequest
	if err := decodeJSON(r, &req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	founder := &db.Founder{
		ID:       founderID,
		Name:     req.Name,
		Email:    req.Email,
		Role:     req.Role,
		LinkedIn: req.LinkedIn,
		Bio:      req.Bio,
	}
	if err := s.db.UpdateFounder(r.Context(), founder); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, founder)
}

// handleDeleteFounder removes a founder.
func (s *Server) handleDeleteFounder(w http.ResponseWriter, r *http.Request) {
	if !s.requireDB(w) {
		return
	}
	founderID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid founder ID")
		return
	}

	if err := s.db.DeleteFounder(r.Context(), founderID); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "deleted"})
}
