// Package middleware provides the HTTP middleware stack shared by mounted
// modules: request logging and CORS.
package middleware

import "net/http"

// Stack is an ordered list of HTTP middleware. The first middleware added is
// the outermost wrapper.
type Stack struct {
	wrappers []func(http.Handler) http.Handler
}

// New creates an empty Stack.
func New() *Stack {
	return &Stack{}
}

// Use appends a middleware to the stack.
func (s *Stack) Use(fn func(http.Handler) http.Handler) {
	s.wrappers = append(s.wrappers, fn)
}

// Apply wraps handler with the stack in registration order.
func (s *Stack) Apply(handler http.Handler) http.Handler {
	for i := len(s.wrappers) - 1; i >= 0; i-- {
		handler = s.wrappers[i](handler)
	}
	return handler
}
