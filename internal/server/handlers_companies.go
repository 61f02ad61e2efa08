package server

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/meridian/fund-console/internal/db"
)

// parseQueryInt parses an integer query parameter with default and max values
func parseQueryInt(r *http.Request, key string, defaultValue, maxValue int) int {
	valStr := r.URL.Query().Get(key)
	if valStr == "" {
		return defaultValue
	}
	val, err := strconv.Atoi(valStr)
	if err != nil || val < 0 {
		return defaultValue
	}
	if maxValue > 0 && val > maxValue {
		return maxValue
	}
	return val
}

// requireDB guards routes that need Postgres.
func (s *Server) requireDB(w http.ResponseWriter) bool {
	if s.db == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "Database not configured")
		return false
	}
	return true
}

type createCompanyRequest struct {
	Name        string  `json:"name" validate:"required,min=1,max=200"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=5000"`
}

// handleCreateCompany creates (or revives) a company by name.
func (s *Server) handleCreateCompany(w http.ResponseWriter, r *http.Request) {
	if !s.requireDB(w) {
		return
	}
	var req createCompanyRequest
	if err := decodeJSON(r, &req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	company, err := s.db.CreateCompany(r.Context(), req.Name)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if req.Description != nil {
		company.Description = req.Description
		if err := s.db.UpdateCompany(r.Context(), company); err != nil {
			s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
			return
		}
	}

	s.jsonResponse(w, http.StatusCreated, company)
}

// handleListCompanies lists companies in the portfolio
func (s *Server) handleListCompanies(w http.ResponseWriter, r *http.Request) {
	if !s.requireDB(w) {
		return
	}
	limit := parseQueryInt(r, "limit", 50, 100)
	offset := parseQueryInt(r, "offset", 0, 0)

	companies, err := s.db.ListCompanies(r.Context(), limit, offset)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"companies": companies,
		"count":     len(companies),
		"limit":     limit,
		"offset":    offset,
	})
}

// handleGetCompany retrieves a company by ID
func (s *Server) handleGetCompany(w http.ResponseWriter, r *http.Request) {
	if !s.requireDB(w) {
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

	s.jsonResponse(w, http.StatusOK, company)
}

// handleGetCompanyByName retrieves a company by normalized name.
// Query parameter rather than a path segment; /companies/by-name/{name}
// would collide with /companies/{id} in the mux.
func (s *Server) handleGetCompanyByName(w http.ResponseWriter, r *http.Request) {
	if !s.requireDB(w) {
		return
	}
	name := r.URL.Query().Get("name")
	if name == "" {
		s.errorResponse(w, http.StatusBadRequest, "Company name is required")
		return
	}
	if db.NormalizeName(name) == "" {
		s.errorResponse(w, http.StatusBadRequest, "Invalid company name")
		return
	}

	company, err := s.db.GetCompanyByName(r.Context(), name)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if company == nil {
		s.errorResponse(w, http.StatusNotFound, "Company not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, company)
}

type updateCompanyRequest struct {
	Name          *string  `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Description   *string  `json:"description,omitempty" validate:"omitempty,max=5000"`
	Tagline       *string  `json:"tagline,omitempty" validate:"omitempty,max=300"`
	Tags          []string `json:"tags,omitempty" validate:"omitempty,dive,min=1,max=60"`
	Keywords      []string `json:"keywords,omitempty" validate:"omitempty,dive,min=1,max=60"`
	Country       *string  `json:"country,omitempty" validate:"omitempty,max=80"`
	Incorporation *string  `json:"incorporation,omitempty" validate:"omitempty,oneof=c_corp s_corp llc ltd"`
	HQLine1       *string  `json:"hq_line1,omitempty"`
	HQCity        *string  `json:"hq_city,omitempty"`
	HQState       *string  `json:"hq_state,omitempty"`
	HQZip         *string  `json:"hq_zip,omitempty"`
	HQCountry     *string  `json:"hq_country,omitempty"`
	Latitude      *float64 `json:"latitude,omitempty" validate:"omitempty,gte=-90,lte=90"`
	Longitude     *float64 `json:"longitude,omitempty" validate:"omitempty,gte=-180,lte=180"`
}

// handleUpdateCompany applies a partial update to a company record.
func (s *Server) handleUpdateCompany(w http.ResponseWriter, r *http.Request) {
	if !s.requireDB(w) {
		return
	}
	companyID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid company ID")
		return
	}

	var req updateCompanyRequest
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

	if req.Name != nil {
		company.Name = *req.Name
		company.NameNormalized = db.NormalizeName(*req.Name)
	}
	if req.Description != nil {
		company.Description = req.Description
	}
	if req.Tagline != nil {
		company.Tagline = req.Tagline
	}
	if req.Tags != nil {
		company.Tags = req.Tags
	}
	if req.Keywords != nil {
		company.Keywords = req.Keywords
	}
	if req.Country != nil {
		company.Country = req.Country
	}
	if req.Incorporation != nil {
		company.Incorporation = req.Incorporation
	}
	if req.HQLine1 != nil {
		company.HQLine1 = req.HQLine1
	}
	if req.HQCity != nil {
		company.HQCity = req.HQCity
	}
	if req.HQState != nil {
		company.HQState = req.HQState
	}
	if req.HQZip != nil {
		company.HQZip = req.HQZip
	}
	if req.HQCountry != nil {
		company.HQCountry = req.HQCountry
	}
	if req.Latitude != nil {
		company.Latitude = req.Latitude
	}
	if req.Longitude != nil {
		company.Longitude = req.Longitude
	}

	if err := s.db.UpdateCompany(r.Context(), company); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, company)
}

// handleDeleteCompany removes a company and its dependents.
func (s *Server) handleDeleteCompany(w http.ResponseWriter, r *http.Request) {
	if !s.requireDB(w) {
		return
	}
	companyID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid company ID")
		return
	}

	if err := s.db.DeleteCompany(r.Context(), companyID); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "deleted"})
}
