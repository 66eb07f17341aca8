// Package module mounts feature routers under path prefixes with per-module
// middleware stacks.
package module

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/intakehq/intake/pkg/middleware"
)

// Module is an HTTP handler mounted at a single-level path prefix. Requests
// are dispatched to the inner router with the prefix stripped.
type Module struct {
	prefix     string
	router     http.Handler
	middleware *middleware.Stack
}

// New creates a Module at the given prefix (e.g. "/api"). Panics if the
// prefix is empty, missing a leading slash, or multi-level.
func New(prefix string, router http.Handler) *Module {
	if err := validatePrefix(prefix); err != nil {
		panic(err)
	}
	return &Module{
		prefix:     prefix,
		router:     router,
		middleware: middleware.New(),
	}
}

// Handler returns the inner router wrapped with the module's middleware stack.
func (m *Module) Handler() http.Handler {
	return m.middleware.Apply(m.router)
}

// Prefix returns the module's path prefix.
func (m *Module) Prefix() string {
	return m.prefix
}

// Serve strips the module prefix from the request path and dispatches to the
// inner router.
func (m *Module) Serve(w http.ResponseWriter, req *http.Request) {
	stripped := req.Clone(req.Context())
	stripped.URL.Path = trimPrefix(req.URL.Path, m.prefix)
	stripped.URL.RawPath = ""
	m.Handler().ServeHTTP(w, stripped)
}

// Use adds middleware to the module's stack.
func (m *Module) Use(mw func(http.Handler) http.Handler) {
	m.middleware.Use(mw)
}

func trimPrefix(fullPath, prefix string) string {
	path := fullPath[len(prefix):]
	if path == "" {
		return "/"
	}
	return path
}

func validatePrefix(prefix string) error {
	if prefix == "" {
		return fmt.Errorf("module prefix cannot be empty")
	}
	if !strings.HasPrefix(prefix, "/") {
		return fmt.Errorf("module prefix must start with /: %s", prefix)
	}
	if strings.Count(prefix, "/") != 1 {
		return fmt.Errorf("module prefix must be single-level sub-path: %s", prefix)
	}
	return nil
}
