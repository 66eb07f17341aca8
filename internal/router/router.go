package router

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/intakehq/intake/internal/actions"
	"github.com/intakehq/intake/internal/classifications"
	"github.com/intakehq/intake/internal/decisions"
	"github.com/intakehq/intake/internal/downstream"
	"github.com/intakehq/intake/internal/results"
	"github.com/intakehq/intake/pkg/metrics"
)

// Executed records the outcome of one action execution, in order.
type Executed struct {
	ActionType string               `json:"action_type"`
	Priority   string               `json:"priority"`
	Success    bool                 `json:"success"`
	Response   *downstream.Response `json:"response,omitempty"`
	Error      string               `json:"error,omitempty"`
	ExecutedAt time.Time            `json:"executed_at"`
}

// Outcome is the complete result of routing one agent result.
type Outcome struct {
	Actions  []Action              `json:"actions"`
	Executed []Executed            `json:"executed"`
	Record   *actions.ActionResult `json:"record"`
}

// Router executes follow-up actions and records the results.
type Router struct {
	client    *downstream.Client
	actions   actions.System
	decisions decisions.System
	logger    *slog.Logger
	metrics   *metrics.Metrics
}

// New creates a Router.
func New(
	client *downstream.Client,
	actionStore actions.System,
	decisionStore decisions.System,
	logger *slog.Logger,
	m *metrics.Metrics,
) *Router {
	return &Router{
		client:    client,
		actions:   actionStore,
		decisions: decisionStore,
		logger:    logger.With("system", "router"),
		metrics:   m,
	}
}

// Route determines the actions for agentResult, executes them in order, and
// persists the action result plus one decision log entry. Individual action
// failures are recorded, never raised; the returned error covers only rule
// dispatch and storage.
func (rt *Router) Route(
	ctx context.Context,
	agentResult any,
	agentRecord *results.AgentResult,
	classification *classifications.Classification,
) (*Outcome, error) {
	planned, err := ActionsFor(agentResult)
	if err != nil {
		return nil, err
	}

	executed := make([]Executed, 0, len(planned))
	var successes int
	for _, action := range planned {
		e := rt.execute(ctx, action, agentRecord, classification)
		if e.Success {
			successes++
		}
		executed = append(executed, e)
	}

	record, err := rt.actions.Create(ctx, actions.CreateCommand{
		AgentResultID:    agentRecord.ID,
		ActionsTriggered: executed,
		SuccessCount:     successes,
		FailureCount:     len(executed) - successes,
	})
	if err != nil {
		return nil, fmt.Errorf("store action result: %w", err)
	}

	types := make([]string, len(planned))
	for i, a := range planned {
		types[i] = a.Type
	}

	if _, err := rt.decisions.Create(ctx, decisions.CreateCommand{
		Component:    decisions.ComponentActionRouter,
		DecisionType: decisions.TypeActionRouting,
		DecisionData: map[string]any{
			"agent_type": agentRecord.AgentType,
			"classification": map[string]any{
				"format": classification.Format,
				"intent": classification.Intent,
			},
			"actions_determined": types,
		},
		Reasoning: fmt.Sprintf("Determined %d actions based on agent results", len(planned)),
	}); err != nil {
		return nil, fmt.Errorf("store routing decision: %w", err)
	}

	rt.logger.Info("actions routed",
		"action_result_id", record.ID,
		"agent_result_id", agentRecord.ID,
		"actions", types,
		"successes", successes,
		"failures", len(executed)-successes,
	)

	return &Outcome{Actions: planned, Executed: executed, Record: record}, nil
}

// execute resolves one action to its downstream call. Unknown action types
// and transport failures produce failed Executed entries.
func (rt *Router) execute(
	ctx context.Context,
	action Action,
	agentRecord *results.AgentResult,
	classification *classifications.Classification,
) Executed {
	e := Executed{
		ActionType: action.Type,
		Priority:   action.Priority,
		ExecutedAt: time.Now().UTC(),
	}

	payload := map[string]any{
		"priority":     action.Priority,
		"timestamp":    e.ExecutedAt.Format(time.RFC3339),
		"source_agent": agentRecord.AgentType,
		"classification": map[string]any{
			"format": classification.Format,
			"intent": classification.Intent,
		},
		"action_data": action.Data,
	}

	var path string
	switch action.Type {
	case TypeCRMEscalate:
		path = downstream.PathCRMEscalate
	case TypeCRMLog:
		path = downstream.PathCRMLog
	case TypeRiskAlert:
		path = downstream.PathRiskAlert
	case TypeComplianceFlag:
		path = downstream.PathComplianceFlag
	case TypeLogOnly:
		e.Success = true
		e.Response = &downstream.Response{Success: true, Message: "Logged for audit purposes"}
		rt.metrics.ActionsExecuted.WithLabelValues(action.Type, "success").Inc()
		return e
	default:
		e.Error = fmt.Sprintf("Unknown action type: %s", action.Type)
		rt.metrics.ActionsExecuted.WithLabelValues(action.Type, "failure").Inc()
		return e
	}

	response, err := rt.client.Post(ctx, path, payload)
	if err != nil {
		e.Error = err.Error()
		rt.logger.Warn("action execution failed", "action_type", action.Type, "error", err)
		rt.metrics.ActionsExecuted.WithLabelValues(action.Type, "failure").Inc()
		return e
	}

	e.Success = response.Success
	e.Response = response

	outcome := "failure"
	if e.Success {
		outcome = "success"
	}
	rt.metrics.ActionsExecuted.WithLabelValues(action.Type, outcome).Inc()
	return e
}
