// Package router determines and executes follow-up actions for agent
// results. The routing rules are pure functions over agent outputs; no
// runtime state can alter which actions a given result produces.
package router

import (
	"fmt"

	"github.com/intakehq/intake/internal/agents/email"
	"github.com/intakehq/intake/internal/agents/jsondoc"
	"github.com/intakehq/intake/internal/agents/pdfdoc"
)

// Action types resolvable by the executor.
const (
	TypeCRMEscalate    = "crm_escalate"
	TypeCRMLog         = "crm_log"
	TypeRiskAlert      = "risk_alert"
	TypeComplianceFlag = "compliance_flag"
	TypeLogOnly        = "log_only"
)

// Priorities.
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// Action is one follow-up action to execute.
type Action struct {
	Type     string         `json:"action_type"`
	Priority string         `json:"priority"`
	Data     map[string]any `json:"data"`
}

// ActionsFor dispatches to the rule function matching the agent result type.
func ActionsFor(result any) ([]Action, error) {
	switch r := result.(type) {
	case *email.Result:
		return EmailActions(r), nil
	case *jsondoc.Result:
		return JSONActions(r), nil
	case *pdfdoc.Result:
		return PDFActions(r), nil
	}
	return nil, fmt.Errorf("no routing rules for result type %T", result)
}

// EmailActions maps the recommended email action to downstream calls.
// Immediate escalations raise both a CRM escalation and a risk alert.
func EmailActions(r *email.Result) []Action {
	switch r.RecommendedAction {
	case email.ActionEscalateImmediate:
		return []Action{
			{
				Type:     TypeCRMEscalate,
				Priority: PriorityHigh,
				Data: map[string]any{
					"urgency":    r.UrgencyLevel,
					"tone":       r.ToneAnalysis.Tone,
					"sender":     r.ExtractedFields.Sender,
					"issue_type": r.ExtractedFields.IssueType,
				},
			},
			{
				Type:     TypeRiskAlert,
				Priority: PriorityHigh,
				Data: map[string]any{
					"urgency": r.UrgencyLevel,
					"tone":    r.ToneAnalysis.Tone,
					"sender":  r.ExtractedFields.Sender,
				},
			},
		}
	case email.ActionEscalateStandard:
		return []Action{{
			Type:     TypeCRMEscalate,
			Priority: PriorityMedium,
			Data: map[string]any{
				"urgency": r.UrgencyLevel,
				"tone":    r.ToneAnalysis.Tone,
				"sender":  r.ExtractedFields.Sender,
			},
		}}
	}

	return []Action{{
		Type:     TypeCRMLog,
		Priority: PriorityLow,
		Data: map[string]any{
			"action_taken": r.RecommendedAction,
			"sender":       r.ExtractedFields.Sender,
		},
	}}
}

// JSONActions maps the assessed risk level to downstream calls. High-severity
// anomalies additionally raise a compliance flag.
func JSONActions(r *jsondoc.Result) []Action {
	var actions []Action

	switch r.RiskLevel {
	case jsondoc.SeverityHigh:
		top := r.Anomalies
		if len(top) > 3 {
			top = top[:3]
		}
		actions = append(actions, Action{
			Type:     TypeRiskAlert,
			Priority: PriorityHigh,
			Data: map[string]any{
				"risk_level":    r.RiskLevel,
				"anomaly_count": len(r.Anomalies),
				"anomalies":     top,
				"json_type":     r.JSONType,
			},
		})
	case jsondoc.SeverityMedium:
		actions = append(actions, Action{
			Type:     TypeRiskAlert,
			Priority: PriorityMedium,
			Data: map[string]any{
				"risk_level":    r.RiskLevel,
				"anomaly_count": len(r.Anomalies),
				"json_type":     r.JSONType,
			},
		})
	default:
		actions = append(actions, Action{
			Type:     TypeLogOnly,
			Priority: PriorityLow,
			Data: map[string]any{
				"risk_level": r.RiskLevel,
				"json_type":  r.JSONType,
			},
		})
	}

	var severe []jsondoc.Anomaly
	for _, a := range r.Anomalies {
		if a.Severity == jsondoc.SeverityHigh {
			severe = append(severe, a)
		}
	}
	if len(severe) > 0 {
		actions = append(actions, Action{
			Type:     TypeComplianceFlag,
			Priority: PriorityHigh,
			Data: map[string]any{
				"compliance_issues": severe,
				"json_type":         r.JSONType,
			},
		})
	}

	return actions
}

// PDFActions raises compliance flags for high-value invoices and regulation
// mentions requiring legal review; documents with neither get a log entry.
func PDFActions(r *pdfdoc.Result) []Action {
	var actions []Action

	for _, flag := range r.Flags {
		if flag.Type != "high_value_invoice" {
			continue
		}
		actions = append(actions, Action{
			Type:     TypeComplianceFlag,
			Priority: PriorityHigh,
			Data: map[string]any{
				"flag_type":         flag.Type,
				"amount":            flag.Amount,
				"requires_approval": true,
			},
		})
		break
	}

	for _, comp := range r.ComplianceFlags {
		if !comp.RequiresLegalReview {
			continue
		}
		actions = append(actions, Action{
			Type:     TypeComplianceFlag,
			Priority: PriorityHigh,
			Data: map[string]any{
				"regulation":            comp.Regulation,
				"keyword":               comp.Keyword,
				"requires_legal_review": true,
			},
		})
	}

	if len(actions) == 0 {
		actions = append(actions, Action{
			Type:     TypeLogOnly,
			Priority: PriorityLow,
			Data: map[string]any{
				"document_type":     r.DocumentType,
				"processing_status": "completed",
			},
		})
	}

	return actions
}
