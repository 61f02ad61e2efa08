package server

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/meridian/fund-console/internal/db"
)

type investmentRequest struct {
	Amount          *float64 `json:"amount,omitempty" validate:"omitempty,gt=0"`
	Instrument      *string  `json:"instrument,omitempty" validate:"omitempty,oneof=safe_post safe_pre convertible_note priced_equity"`
	RoundSize       *float64 `json:"round_size,omitempty" validate:"omitempty,gt=0"`
	ConversionCap   *float64 `json:"conversion_cap,omitempty" validate:"omitempty,gt=0"`
	DiscountPercent *float64 `json:"discount_percent,omitempty" validate:"omitempty,gte=0,lte=100"`
	ProRata         *bool    `json:"pro_rata,omitempty"`
	InvestedOn      *string  `json:"invested_on,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Rationale       *string  `json:"rationale,omitempty" validate:"omitempty,max=10000"`
}

func (req *investmentRequest) apply(inv *db.Investment) {
	inv.Amount = req.Amount
	inv.Instrument = req.Instrument
	inv.RoundSize = req.RoundSize
	inv.ConversionCap = req.ConversionCap
	inv.DiscountPercent = req.DiscountPercent
	inv.ProRata = req.ProRata
	inv.InvestedOn = req.InvestedOn
	inv.Rationale = req.Rationale
}

// handleListInvestments lists investments into a company.
func (s *Server) handleListInvestments(w http.ResponseWriter, r *http.Request) {
	if !s.requireDB(w) {
		return
	}
	companyID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid company ID")
		return
	}

	investments, err := s.db.ListInvestments(r.Context(), companyID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"investments": investments,
		"count":       len(investments),
	})
}

// handleCreateInvestment records a new investment into a company.
func (s *Server) handleCreateInvestment(w http.ResponseWriter, r *http.Request) {
	if !s.requireDB(w) {
		return
	}
	companyID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid company ID")
		return
	}

	var req investmentRequest
	if err := decodeJSON(r, &req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	inv := &db.Investment{CompanyID: companyID}
	req.apply(inv)

	created, err := s.db.CreateInvestment(r.Context(), inv)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	s.jsonResponse(w, http.StatusCreated, created)
}

// handleGetInvestment retrieves one investment.
func (s *Server) handleGetInvestment(w http.ResponseWriter, r *http.Request) {
	if !s.requireDB(w) {
		return
	}
	invID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid investment ID")
		return
	}

	inv, err := s.db.GetInvestment(r.Context(), invID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if inv == nil {
		s.errorResponse(w, http.StatusNotFound, "Investment not found")
		return
	}
	s.jsonResponse(w, http.StatusOK, inv)
}

// handleUpdateInvestment replaces an investment's editable fields.
func (s *Server) handleUpdateInvestment(w http.ResponseWriter, r *http.Request) {
	if !s.requireDB(w) {
		return
	}
	invID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid investment ID")
		return
	}

	var req investmentRequest
	if err := decodeJSON(r, &req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	inv, err := s.db.GetInvestment(r.Context(), invID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if inv == nil {
		s.errorResponse(w, http.StatusNotFound, "Investment not found")
		return
	}

	req.apply(inv)
	if err := s.db.UpdateInvestment(r.Context(), inv); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, inv)
}

// handleDeleteInvestment removes an investment.
func (s *Server) handleDeleteInvestment(w http.ResponseWriter, r *http.Request) {
	if !s.requireDB(w) {
		return
	}
	invID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid investment ID")
		return
	}

	if err := s.db.DeleteInvestment(r.Context(), invID); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "deleted"})
}
