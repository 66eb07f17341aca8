package decisions

import (
	"errors"
	"net/http"
)

// Domain errors for decision log operations.
var (
	ErrNotFound  = errors.New("decision log not found")
	ErrDuplicate = errors.New("decision log already exists")
)

// MapHTTPStatus maps decision log domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}
