package actions

import (
	"errors"
	"net/http"
)

// Domain errors for action result operations.
var (
	ErrNotFound  = errors.New("action result not found")
	ErrDuplicate = errors.New("action result already exists")
)

// MapHTTPStatus maps action result domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}
