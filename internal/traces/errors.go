package traces

import (
	"errors"
	"net/http"
)

// Domain errors for trace operations.
var (
	ErrNotFound    = errors.New("trace not found")
	ErrDuplicate   = errors.New("trace already exists")
	ErrMissingLink = errors.New("trace requires classification, agent result, and action result identifiers")
)

// MapHTTPStatus maps trace domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrMissingLink) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
