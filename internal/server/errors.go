package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/meridian/fund-console/internal/enrich"
	"github.com/meridian/fund-console/internal/schemas"
)

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error("encoding JSON response", zap.Error(err))
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// decodeJSON decodes a request body into dst, rejecting unknown fields.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// HTTPStatus maps domain errors to response codes.
func HTTPStatus(err error) int {
	var (
		schemaErr    *schemas.ValidationError
		enrichValErr *enrich.ValidationError
		enrichParse  *enrich.ParseError
		enrichGen    *enrich.GenerationError
	)
	switch {
	case errors.As(err, &schemaErr):
		return http.StatusUnprocessableEntity
	case errors.As(err, &enrichValErr):
		return http.StatusBadRequest
	case errors.As(err, &enrichParse), errors.As(err, &enrichGen):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
