package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"careride/internal/domain"
	"careride/internal/geo"
	"careride/internal/repository"
	"careride/internal/service"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError sends an error response with the appropriate HTTP status code.
func respondError(c *gin.Context, err error) {
	code := mapErrorToHTTPStatus(err)
	c.JSON(code, ErrorResponse{Error: err.Error()})
}

// respondJSON sends a JSON response with the given status code.
func respondJSON(c *gin.Context, code int, data any) {
	c.JSON(code, data)
}

// mapErrorToHTTPStatus maps service/repository errors to HTTP status codes.
// The error kind, not its message, drives the response.
func mapErrorToHTTPStatus(err error) int {
	var transitionErr *domain.InvalidTransitionError

	switch {
	// Unknown ids
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound

	// Validation errors - Bad Request
	case errors.Is(err, service.ErrInvalidRideID),
		errors.Is(err, service.ErrInvalidRequesterID),
		errors.Is(err, service.ErrInvalidAddress),
		errors.Is(err, service.ErrInvalidRequestedTime):
		return http.StatusBadRequest

	// Referential integrity violations
	case errors.Is(err, service.ErrUnknownRequester),
		errors.Is(err, service.ErrUnknownVolunteer):
		return http.StatusUnprocessableEntity

	// Lifecycle and write conflicts
	case errors.As(err, &transitionErr),
		errors.Is(err, repository.ErrConcurrentModification):
		return http.StatusConflict

	// Upstream and matching failures
	case errors.Is(err, geo.ErrRouteUnavailable),
		errors.Is(err, geo.ErrUpstreamTimeout),
		errors.Is(err, service.ErrNoVolunteerAvailable):
		return http.StatusServiceUnavailable

	default:
		return http.StatusInternalServerError
	}
}
