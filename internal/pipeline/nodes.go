package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/intakehq/intake/internal/classifications"
	"github.com/intakehq/intake/internal/classifier"
	"github.com/intakehq/intake/internal/results"
	"github.com/intakehq/intake/internal/router"
	"github.com/intakehq/intake/internal/traces"
)

// ClassifyNode classifies the document and stores the classification record.
func ClassifyNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		content, err := stateString(s, KeyContent)
		if err != nil {
			return s, fmt.Errorf("%w: %w", ErrClassifyFailed, err)
		}

		var detected classifications.Format
		if val, ok := s.Get(KeyDetectedFormat); ok {
			if f, ok := val.(classifications.Format); ok {
				detected = f
			}
		}

		outcome, err := rt.Classifier.Classify(ctx, content, detected)
		if err != nil {
			return s, fmt.Errorf("%w: %w", ErrClassifyFailed, err)
		}

		if !outcome.Format.Valid() {
			return s, fmt.Errorf("%w: %s", ErrUnsupportedFormat, outcome.Format)
		}

		s = s.Set(KeyClassification, outcome)
		return s, nil
	})
}

// EmailNode runs the email agent on the classified content.
func EmailNode(rt *Runtime) state.StateNode {
	return agentNode(func(ctx context.Context, content string, outcome *classifier.Outcome) (any, *results.AgentResult, error) {
		return rt.Email.Process(ctx, content, outcome.Record.ID)
	})
}

// JSONNode runs the JSON agent on the classified content.
func JSONNode(rt *Runtime) state.StateNode {
	return agentNode(func(ctx context.Context, content string, outcome *classifier.Outcome) (any, *results.AgentResult, error) {
		return rt.JSON.Process(ctx, content, outcome.Record.ID)
	})
}

// PDFNode runs the PDF agent on the classified content.
func PDFNode(rt *Runtime) state.StateNode {
	return agentNode(func(ctx context.Context, content string, outcome *classifier.Outcome) (any, *results.AgentResult, error) {
		return rt.PDF.Process(ctx, content, outcome.Record.ID)
	})
}

func agentNode(
	process func(ctx context.Context, content string, outcome *classifier.Outcome) (any, *results.AgentResult, error),
) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		content, err := stateString(s, KeyContent)
		if err != nil {
			return s, fmt.Errorf("%w: %w", ErrAgentFailed, err)
		}

		outcome, err := stateClassification(s)
		if err != nil {
			return s, fmt.Errorf("%w: %w", ErrAgentFailed, err)
		}

		result, record, err := process(ctx, content, outcome)
		if err != nil {
			return s, fmt.Errorf("%w: %w", ErrAgentFailed, err)
		}

		s = s.Set(KeyAgentResult, result)
		s = s.Set(KeyAgentRecord, record)
		return s, nil
	})
}

// RouteNode executes the follow-up actions for the agent result.
func RouteNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		outcome, err := stateClassification(s)
		if err != nil {
			return s, fmt.Errorf("%w: %w", ErrRouteFailed, err)
		}

		resultVal, ok := s.Get(KeyAgentResult)
		if !ok {
			return s, fmt.Errorf("%w: missing %s in state", ErrRouteFailed, KeyAgentResult)
		}

		record, err := stateAgentRecord(s)
		if err != nil {
			return s, fmt.Errorf("%w: %w", ErrRouteFailed, err)
		}

		routing, err := rt.Router.Route(ctx, resultVal, record, outcome.Record)
		if err != nil {
			return s, fmt.Errorf("%w: %w", ErrRouteFailed, err)
		}

		s = s.Set(KeyRouting, routing)
		return s, nil
	})
}

// TraceNode writes the capstone trace row linking the three stored records
// by their explicit identifiers.
func TraceNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		outcome, err := stateClassification(s)
		if err != nil {
			return s, fmt.Errorf("%w: %w", ErrTraceFailed, err)
		}

		record, err := stateAgentRecord(s)
		if err != nil {
			return s, fmt.Errorf("%w: %w", ErrTraceFailed, err)
		}

		routingVal, ok := s.Get(KeyRouting)
		if !ok {
			return s, fmt.Errorf("%w: missing %s in state", ErrTraceFailed, KeyRouting)
		}
		routing, ok := routingVal.(*router.Outcome)
		if !ok {
			return s, fmt.Errorf("%w: %s is not *router.Outcome", ErrTraceFailed, KeyRouting)
		}

		startedVal, ok := s.Get(KeyStartedAt)
		if !ok {
			return s, fmt.Errorf("%w: missing %s in state", ErrTraceFailed, KeyStartedAt)
		}
		started, ok := startedVal.(time.Time)
		if !ok {
			return s, fmt.Errorf("%w: %s is not time.Time", ErrTraceFailed, KeyStartedAt)
		}

		trace, err := rt.Traces.Create(ctx, traces.CreateCommand{
			ClassificationID:    outcome.Record.ID,
			AgentResultID:       record.ID,
			ActionResultID:      routing.Record.ID,
			Status:              traces.StatusCompleted,
			TotalProcessingTime: time.Since(started).Seconds(),
		})
		if err != nil {
			return s, fmt.Errorf("%w: %w", ErrTraceFailed, err)
		}

		s = s.Set(KeyTrace, trace)
		return s, nil
	})
}

func stateString(s state.State, key string) (string, error) {
	val, ok := s.Get(key)
	if !ok {
		return "", fmt.Errorf("missing %s in state", key)
	}

	str, ok := val.(string)
	if !ok {
		return "", fmt.Errorf("%s is not string", key)
	}
	return str, nil
}

func stateClassification(s state.State) (*classifier.Outcome, error) {
	val, ok := s.Get(KeyClassification)
	if !ok {
		return nil, fmt.Errorf("missing %s in state", KeyClassification)
	}

	outcome, ok := val.(*classifier.Outcome)
	if !ok {
		return nil, fmt.Errorf("%s is not *classifier.Outcome", KeyClassification)
	}
	return outcome, nil
}

func stateAgentRecord(s state.State) (*results.AgentResult, error) {
	val, ok := s.Get(KeyAgentRecord)
	if !ok {
		return nil, fmt.Errorf("missing %s in state", KeyAgentRecord)
	}

	record, ok := val.(*results.AgentResult)
	if !ok {
		return nil, fmt.Errorf("%s is not *results.AgentResult", KeyAgentRecord)
	}
	return record, nil
}
