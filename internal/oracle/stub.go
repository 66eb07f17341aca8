package oracle

import "context"

// StaticOracle returns a fixed response for every request. Used in tests to
// exercise the oracle-success path; it records each request for assertions.
type StaticOracle struct {
	Response string
	Requests []Request
	Prompts  []string
}

func (o *StaticOracle) Complete(_ context.Context, req Request) (string, error) {
	o.Requests = append(o.Requests, req)
	o.Prompts = append(o.Prompts, req.Prompt)
	return o.Response, nil
}

// FailingOracle fails every call. Used in tests to exercise fallback paths.
type FailingOracle struct{}

func (FailingOracle) Complete(context.Context, Request) (string, error) {
	return "", ErrUnavailable
}
