package pipeline

import (
	"context"
	"fmt"
	"time"

	gaoconfig "github.com/JaimeStill/go-agents-orchestration/pkg/config"
	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/intakehq/intake/internal/classifications"
	"github.com/intakehq/intake/internal/classifier"
	"github.com/intakehq/intake/internal/results"
	"github.com/intakehq/intake/internal/router"
	"github.com/intakehq/intake/internal/traces"
)

// Result is the complete output of one pipeline invocation.
type Result struct {
	Classification *classifier.Outcome  `json:"classification"`
	AgentResult    any                  `json:"agent_result"`
	AgentRecord    *results.AgentResult `json:"agent_record"`
	Routing        *router.Outcome      `json:"routing"`
	Trace          *traces.Trace        `json:"trace"`
	Duration       float64              `json:"duration"`
}

// Execute runs the full pipeline for a single document. detectedFormat may
// be empty, in which case the classifier infers it. On any stage failure the
// wrapped stage error is returned and no trace row exists for the invocation.
func Execute(
	ctx context.Context,
	rt *Runtime,
	content string,
	detectedFormat classifications.Format,
) (*Result, error) {
	started := time.Now()

	graph, err := buildGraph(rt)
	if err != nil {
		return nil, fmt.Errorf("build graph: %w", err)
	}

	initialState := state.New(nil)
	initialState = initialState.Set(KeyContent, content)
	initialState = initialState.Set(KeyStartedAt, started)
	if detectedFormat != "" {
		initialState = initialState.Set(KeyDetectedFormat, detectedFormat)
	}

	finalState, err := graph.Execute(ctx, initialState)
	if err != nil {
		rt.Metrics.DocumentsProcessed.WithLabelValues(string(detectedFormat), "failed").Inc()
		return nil, err
	}

	result, err := extractResult(finalState, started)
	if err != nil {
		return nil, err
	}

	rt.Metrics.DocumentsProcessed.WithLabelValues(string(result.Classification.Format), "completed").Inc()
	rt.Metrics.PipelineSeconds.Observe(result.Duration)

	rt.Logger.Info("document processed",
		"trace_id", result.Trace.ID,
		"format", result.Classification.Format,
		"intent", result.Classification.Intent,
		"duration", result.Duration,
	)
	return result, nil
}

func buildGraph(rt *Runtime) (state.StateGraph, error) {
	cfg := gaoconfig.DefaultGraphConfig("intake-process")
	cfg.Observer = "noop"

	graph, err := state.NewGraph(cfg)
	if err != nil {
		return nil, err
	}

	if err := graph.AddNode("classify", ClassifyNode(rt)); err != nil {
		return nil, err
	}

	if err := graph.AddNode("email", EmailNode(rt)); err != nil {
		return nil, err
	}

	if err := graph.AddNode("json", JSONNode(rt)); err != nil {
		return nil, err
	}

	if err := graph.AddNode("pdf", PDFNode(rt)); err != nil {
		return nil, err
	}

	if err := graph.AddNode("route", RouteNode(rt)); err != nil {
		return nil, err
	}

	if err := graph.AddNode("trace", TraceNode(rt)); err != nil {
		return nil, err
	}

	// classify → agent branch selected by the classified format
	if err := graph.AddEdge("classify", "email", formatIs(classifications.FormatEmail)); err != nil {
		return nil, err
	}

	if err := graph.AddEdge("classify", "json", formatIs(classifications.FormatJSON)); err != nil {
		return nil, err
	}

	if err := graph.AddEdge("classify", "pdf", formatIs(classifications.FormatPDF)); err != nil {
		return nil, err
	}

	// every agent branch converges on route → trace
	for _, agent := range []string{"email", "json", "pdf"} {
		if err := graph.AddEdge(agent, "route", nil); err != nil {
			return nil, err
		}
	}

	if err := graph.AddEdge("route", "trace", nil); err != nil {
		return nil, err
	}

	if err := graph.SetEntryPoint("classify"); err != nil {
		return nil, err
	}

	if err := graph.SetExitPoint("trace"); err != nil {
		return nil, err
	}

	return graph, nil
}

func formatIs(format classifications.Format) func(state.State) bool {
	return func(s state.State) bool {
		outcome, err := stateClassification(s)
		if err != nil {
			return false
		}
		return outcome.Format == format
	}
}

func extractResult(s state.State, started time.Time) (*Result, error) {
	outcome, err := stateClassification(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTraceFailed, err)
	}

	record, err := stateAgentRecord(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTraceFailed, err)
	}

	resultVal, ok := s.Get(KeyAgentResult)
	if !ok {
		return nil, fmt.Errorf("%w: missing %s in final state", ErrTraceFailed, KeyAgentResult)
	}

	routingVal, ok := s.Get(KeyRouting)
	if !ok {
		return nil, fmt.Errorf("%w: missing %s in final state", ErrTraceFailed, KeyRouting)
	}
	routing, ok := routingVal.(*router.Outcome)
	if !ok {
		return nil, fmt.Errorf("%w: %s is not *router.Outcome", ErrTraceFailed, KeyRouting)
	}

	traceVal, ok := s.Get(KeyTrace)
	if !ok {
		return nil, fmt.Errorf("%w: missing %s in final state", ErrTraceFailed, KeyTrace)
	}
	trace, ok := traceVal.(*traces.Trace)
	if !ok {
		return nil, fmt.Errorf("%w: %s is not *traces.Trace", ErrTraceFailed, KeyTrace)
	}

	return &Result{
		Classification: outcome,
		AgentResult:    resultVal,
		AgentRecord:    record,
		Routing:        routing,
		Trace:          trace,
		Duration:       time.Since(started).Seconds(),
	}, nil
}
