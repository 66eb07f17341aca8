package results

import (
	"errors"
	"net/http"
)

// Domain errors for agent result operations.
var (
	ErrNotFound         = errors.New("agent result not found")
	ErrDuplicate        = errors.New("agent result already exists")
	ErrInvalidAgentType = errors.New("unrecognized agent type")
)

// MapHTTPStatus maps agent result domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrInvalidAgentType) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
