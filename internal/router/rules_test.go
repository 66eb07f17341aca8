package router

import (
	"testing"

	"github.com/intakehq/intake/internal/agents/email"
	"github.com/intakehq/intake/internal/agents/jsondoc"
	"github.com/intakehq/intake/internal/agents/pdfdoc"
)

func TestActionsForUnknownType(t *testing.T) {
	if _, err := ActionsFor("not an agent result"); err == nil {
		t.Fatal("expected error for unknown result type")
	}
}

func TestEmailActionsEscalateImmediate(t *testing.T) {
	r := &email.Result{
		RecommendedAction: email.ActionEscalateImmediate,
		UrgencyLevel:      email.UrgencyHigh,
		ToneAnalysis:      email.ToneAnalysis{Tone: email.ToneThreatening},
		ExtractedFields:   email.ExtractedFields{Sender: "a@b.com"},
	}

	actions := EmailActions(r)
	if len(actions) != 2 {
		t.Fatalf("actions = %d, want crm_escalate and risk_alert", len(actions))
	}
	if actions[0].Type != TypeCRMEscalate || actions[0].Priority != PriorityHigh {
		t.Errorf("first action = %+v, want high-priority crm_escalate", actions[0])
	}
	if actions[1].Type != TypeRiskAlert || actions[1].Priority != PriorityHigh {
		t.Errorf("second action = %+v, want high-priority risk_alert", actions[1])
	}
	if actions[0].Data["sender"] != "a@b.com" {
		t.Errorf("sender = %v, want a@b.com", actions[0].Data["sender"])
	}
}

func TestEmailActionsStandardAndLog(t *testing.T) {
	standard := EmailActions(&email.Result{RecommendedAction: email.ActionEscalateStandard})
	if len(standard) != 1 || standard[0].Type != TypeCRMEscalate || standard[0].Priority != PriorityMedium {
		t.Errorf("standard escalation actions = %+v", standard)
	}

	logged := EmailActions(&email.Result{RecommendedAction: email.ActionStandardResponse})
	if len(logged) != 1 || logged[0].Type != TypeCRMLog || logged[0].Priority != PriorityLow {
		t.Errorf("standard response actions = %+v", logged)
	}
}

func TestJSONActionsHighRisk(t *testing.T) {
	r := &jsondoc.Result{
		JSONType:  jsondoc.TypeTransaction,
		RiskLevel: jsondoc.SeverityHigh,
		Anomalies: []jsondoc.Anomaly{
			{Type: "high_value_transaction", Severity: jsondoc.SeverityHigh},
		},
	}

	actions := JSONActions(r)
	if len(actions) != 2 {
		t.Fatalf("actions = %d, want risk_alert and compliance_flag", len(actions))
	}
	if actions[0].Type != TypeRiskAlert || actions[0].Priority != PriorityHigh {
		t.Errorf("first action = %+v, want high-priority risk_alert", actions[0])
	}
	if actions[1].Type != TypeComplianceFlag || actions[1].Priority != PriorityHigh {
		t.Errorf("second action = %+v, want high-priority compliance_flag", actions[1])
	}
}

func TestJSONActionsMediumAndLow(t *testing.T) {
	medium := JSONActions(&jsondoc.Result{
		RiskLevel: jsondoc.SeverityMedium,
		Anomalies: []jsondoc.Anomaly{{Type: "zero_amount", Severity: jsondoc.SeverityMedium}},
	})
	if len(medium) != 1 || medium[0].Type != TypeRiskAlert || medium[0].Priority != PriorityMedium {
		t.Errorf("medium risk actions = %+v", medium)
	}

	low := JSONActions(&jsondoc.Result{RiskLevel: jsondoc.SeverityLow})
	if len(low) != 1 || low[0].Type != TypeLogOnly || low[0].Priority != PriorityLow {
		t.Errorf("low risk actions = %+v", low)
	}
}

func TestJSONActionsTruncatesAnomalies(t *testing.T) {
	r := &jsondoc.Result{
		RiskLevel: jsondoc.SeverityHigh,
		Anomalies: []jsondoc.Anomaly{
			{Type: "a", Severity: jsondoc.SeverityHigh},
			{Type: "b", Severity: jsondoc.SeverityLow},
			{Type: "c", Severity: jsondoc.SeverityLow},
			{Type: "d", Severity: jsondoc.SeverityLow},
		},
	}

	actions := JSONActions(r)
	alert := actions[0]
	anomalies, ok := alert.Data["anomalies"].([]jsondoc.Anomaly)
	if !ok || len(anomalies) != 3 {
		t.Errorf("risk alert anomalies = %v, want first 3", alert.Data["anomalies"])
	}
	if alert.Data["anomaly_count"] != 4 {
		t.Errorf("anomaly_count = %v, want 4", alert.Data["anomaly_count"])
	}
}

func TestPDFActions(t *testing.T) {
	flagged := PDFActions(&pdfdoc.Result{
		DocumentType: pdfdoc.TypeInvoice,
		Flags: []pdfdoc.Flag{
			{Type: "high_value_invoice", Amount: 15250, RequiresApproval: true},
			{Type: "high_value_invoice", Amount: 99999},
		},
		ComplianceFlags: []pdfdoc.ComplianceFlag{
			{Regulation: "GDPR", Keyword: "gdpr", RequiresLegalReview: true},
		},
	})
	if len(flagged) != 2 {
		t.Fatalf("actions = %d, want one invoice flag and one regulation flag", len(flagged))
	}
	if flagged[0].Data["amount"] != float64(15250) {
		t.Errorf("amount = %v, want first flag only", flagged[0].Data["amount"])
	}
	if flagged[1].Data["regulation"] != "GDPR" {
		t.Errorf("regulation = %v, want GDPR", flagged[1].Data["regulation"])
	}

	clean := PDFActions(&pdfdoc.Result{DocumentType: pdfdoc.TypeGeneral})
	if len(clean) != 1 || clean[0].Type != TypeLogOnly {
		t.Errorf("clean document actions = %+v, want single log_only", clean)
	}
	if clean[0].Data["processing_status"] != "completed" {
		t.Errorf("processing_status = %v", clean[0].Data["processing_status"])
	}
}
