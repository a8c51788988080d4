package handler

import (
	"errors"
	"net/http"

	"github.com/efreitasn/resexchange/internal/domain"
)

// writeDomainError maps domain errors to HTTP responses.
func writeDomainError(w http.ResponseWriter, err error) {
	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		WriteError(w, http.StatusBadRequest, "validation_error", validationErr.Message)
		return
	}

	switch {
	case errors.Is(err, domain.ErrAgentNotFound):
		WriteError(w, http.StatusNotFound, "agent_not_found", err.Error())
	case errors.Is(err, domain.ErrBufferNotFound):
		WriteError(w, http.StatusNotFound, "buffer_not_found", err.Error())
	case errors.Is(err, domain.ErrPortfolioNotFound):
		WriteError(w, http.StatusNotFound, "portfolio_not_found", err.Error())
	case errors.Is(err, domain.ErrResourceNotFound):
		WriteError(w, http.StatusNotFound, "resource_not_found", err.Error())
	case errors.Is(err, domain.ErrBufferExists):
		WriteError(w, http.StatusConflict, "buffer_already_exists", err.Error())
	case errors.Is(err, domain.ErrPortfolioExists):
		WriteError(w, http.StatusConflict, "portfolio_already_submitted", err.Error())
	case errors.Is(err, domain.ErrKeyExists):
		WriteError(w, http.StatusConflict, "key_exists", err.Error())
	case errors.Is(err, domain.ErrInvariantViolation):
		WriteError(w, http.StatusConflict, "invariant_violation", err.Error())
	case errors.Is(err, domain.ErrCapacityViolation):
		WriteError(w, http.StatusUnprocessableEntity, "capacity_violation", err.Error())
	case errors.Is(err, domain.ErrBufferEmpty):
		WriteError(w, http.StatusUnprocessableEntity, "buffer_empty", err.Error())
	default:
		WriteError(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
	}
}
