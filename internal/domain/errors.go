package domain

import "errors"

// Sentinel errors for domain-level error handling.
// Operations wrap these with context; the handler layer maps them to HTTP
// status codes with errors.Is.
var (
	ErrInvariantViolation = errors.New("invariant_violation")
	ErrCapacityViolation  = errors.New("capacity_violation")
	ErrKeyExists          = errors.New("key_exists")
	ErrBufferEmpty        = errors.New("buffer_empty")
	ErrResourceNotFound   = errors.New("resource_not_found")
	ErrAgentNotFound      = errors.New("agent_not_found")
	ErrBufferNotFound     = errors.New("buffer_not_found")
	ErrBufferExists       = errors.New("buffer_already_exists")
	ErrPortfolioNotFound  = errors.New("portfolio_not_found")
	ErrPortfolioExists    = errors.New("portfolio_already_submitted")
)

// ValidationError represents a request validation failure.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
