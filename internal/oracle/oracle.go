// Package oracle abstracts the LLM text-completion capability used by the
// classifier and format agents. The oracle is treated as an untrusted,
// fallible collaborator: every call site pairs it with a deterministic
// fallback and reports which path produced the result.
package oracle

import (
	"context"
	"errors"
)

// ErrUnavailable indicates the oracle cannot serve completions.
var ErrUnavailable = errors.New("oracle unavailable")

// Completion defaults applied when a Request leaves them zero.
const (
	DefaultMaxTokens   = 500
	DefaultTemperature = 0.3
)

// Request is one completion call. MaxTokens and Temperature fall back to the
// package defaults when zero; JSONResponse asks the provider for a JSON
// object body.
type Request struct {
	Prompt       string
	JSONResponse bool
	MaxTokens    int
	Temperature  float64
}

// JSON returns a Request for a JSON-object completion with default limits.
func JSON(prompt string) Request {
	return Request{Prompt: prompt, JSONResponse: true}
}

// TextOracle is the single capability the pipeline requires from an LLM:
// a structured completion. Callers request JSON output through the request
// flag and parse the response themselves.
type TextOracle interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// Disabled is the TextOracle used when no language model is configured.
// Every call reports unavailability so callers engage their fallbacks.
type Disabled struct{}

func (Disabled) Complete(context.Context, Request) (string, error) {
	return "", ErrUnavailable
}

// Source identifies which path produced an oracle-backed value.
type Source string

const (
	// SourceOracle means the oracle call succeeded and its response was used.
	SourceOracle Source = "oracle"
	// SourceFallback means the oracle failed and the deterministic
	// fallback heuristic produced the value instead.
	SourceFallback Source = "fallback"
	// SourceDetected means the value was supplied by the caller (a file
	// extension or content type) and no inference ran at all.
	SourceDetected Source = "detected"
)
