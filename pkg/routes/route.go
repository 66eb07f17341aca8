// Package routes declares HTTP routes as data so feature packages can expose
// their endpoints without touching a mux directly.
package routes

import "net/http"

// Route binds an HTTP method and pattern to a handler.
type Route struct {
	Method  string
	Pattern string
	Handler http.HandlerFunc
}
