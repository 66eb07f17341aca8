package router

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/intakehq/intake/internal/agents/email"
	"github.com/intakehq/intake/internal/agents/jsondoc"
	"github.com/intakehq/intake/internal/agents/pdfdoc"
	"github.com/intakehq/intake/internal/classifications"
	"github.com/intakehq/intake/internal/downstream"
	"github.com/intakehq/intake/internal/results"
	"github.com/intakehq/intake/internal/testsupport"
	"github.com/intakehq/intake/pkg/metrics"
)

func testRouter(t *testing.T, handler http.Handler) (*Router, *testsupport.ActionStore, *testsupport.DecisionStore) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	client := downstream.NewClient(server.URL, time.Second, logger)
	actionStore := &testsupport.ActionStore{}
	decisionStore := &testsupport.DecisionStore{}

	return New(client, actionStore, decisionStore, logger, metrics.New(prometheus.NewRegistry())), actionStore, decisionStore
}

func acceptAll(w http.ResponseWriter, _ *http.Request) {
	json.NewEncoder(w).Encode(downstream.Response{Success: true, Message: "ok"})
}

func testContext() (*results.AgentResult, *classifications.Classification) {
	return &results.AgentResult{ID: uuid.New(), AgentType: results.AgentEmail},
		&classifications.Classification{ID: uuid.New(), Format: classifications.FormatEmail, Intent: "Complaint"}
}

func TestRouteEscalateImmediate(t *testing.T) {
	var paths []string
	rt, actionStore, decisionStore := testRouter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		acceptAll(w, r)
	}))

	record, classification := testContext()
	agentResult := &email.Result{RecommendedAction: email.ActionEscalateImmediate}

	outcome, err := rt.Route(context.Background(), agentResult, record, classification)
	if err != nil {
		t.Fatalf("Route failed: %v", err)
	}

	if len(outcome.Executed) != 2 {
		t.Fatalf("executed = %d, want 2", len(outcome.Executed))
	}
	for _, e := range outcome.Executed {
		if !e.Success {
			t.Errorf("execution %s failed: %s", e.ActionType, e.Error)
		}
	}

	want := []string{downstream.PathCRMEscalate, downstream.PathRiskAlert}
	if len(paths) != 2 || paths[0] != want[0] || paths[1] != want[1] {
		t.Errorf("downstream paths = %v, want %v", paths, want)
	}

	if len(actionStore.Records) != 1 {
		t.Fatalf("action records = %d, want 1", len(actionStore.Records))
	}
	stored := actionStore.Records[0]
	if stored.SuccessCount != 2 || stored.FailureCount != 0 {
		t.Errorf("counts = %d/%d, want 2/0", stored.SuccessCount, stored.FailureCount)
	}
	if stored.AgentResultID != record.ID {
		t.Error("action record not linked to agent result")
	}

	if len(decisionStore.Records) != 1 {
		t.Fatalf("decision records = %d, want 1", len(decisionStore.Records))
	}
	decision := decisionStore.Records[0]
	if decision.Component != "action_router" || decision.DecisionType != "action_routing" {
		t.Errorf("decision = %s/%s, want action_router/action_routing", decision.Component, decision.DecisionType)
	}
	if decision.Reasoning != "Determined 2 actions based on agent results" {
		t.Errorf("reasoning = %q", decision.Reasoning)
	}
}

func TestRouteRecordsFailures(t *testing.T) {
	rt, actionStore, _ := testRouter(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))

	record, classification := testContext()
	outcome, err := rt.Route(context.Background(), &email.Result{RecommendedAction: email.ActionEscalateStandard}, record, classification)
	if err != nil {
		t.Fatalf("Route failed: %v", err)
	}

	if len(outcome.Executed) != 1 {
		t.Fatalf("executed = %d, want 1", len(outcome.Executed))
	}
	e := outcome.Executed[0]
	if e.Success {
		t.Error("downstream 502 should record a failed execution")
	}
	if !strings.Contains(e.Error, "unexpected status 502") {
		t.Errorf("error = %q, want status mention", e.Error)
	}

	stored := actionStore.Records[0]
	if stored.SuccessCount != 0 || stored.FailureCount != 1 {
		t.Errorf("counts = %d/%d, want 0/1", stored.SuccessCount, stored.FailureCount)
	}
}

func TestRouteLogOnlySkipsDownstream(t *testing.T) {
	var calls int
	rt, _, _ := testRouter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		acceptAll(w, r)
	}))

	record, classification := testContext()
	record.AgentType = results.AgentJSON
	agentResult := &jsondoc.Result{JSONType: jsondoc.TypeGeneral, RiskLevel: jsondoc.SeverityLow}

	outcome, err := rt.Route(context.Background(), agentResult, record, classification)
	if err != nil {
		t.Fatalf("Route failed: %v", err)
	}

	if calls != 0 {
		t.Errorf("downstream calls = %d, log_only must not post", calls)
	}
	e := outcome.Executed[0]
	if !e.Success || e.Response == nil || e.Response.Message != "Logged for audit purposes" {
		t.Errorf("log_only execution = %+v", e)
	}
}

func TestRouteUnknownResultType(t *testing.T) {
	rt, actionStore, decisionStore := testRouter(t, http.HandlerFunc(acceptAll))

	record, classification := testContext()
	if _, err := rt.Route(context.Background(), struct{}{}, record, classification); err == nil {
		t.Fatal("expected rule dispatch error for unknown result type")
	}
	if len(actionStore.Records) != 0 || len(decisionStore.Records) != 0 {
		t.Error("dispatch failure must not persist records")
	}
}

func TestRoutePDFCompliance(t *testing.T) {
	var paths []string
	rt, _, _ := testRouter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		acceptAll(w, r)
	}))

	record, classification := testContext()
	record.AgentType = results.AgentPDF
	agentResult := &pdfdoc.Result{
		DocumentType: pdfdoc.TypeInvoice,
		Flags:        []pdfdoc.Flag{{Type: "high_value_invoice", Amount: 15250}},
	}

	outcome, err := rt.Route(context.Background(), agentResult, record, classification)
	if err != nil {
		t.Fatalf("Route failed: %v", err)
	}

	if len(paths) != 1 || paths[0] != downstream.PathComplianceFlag {
		t.Errorf("downstream paths = %v, want compliance flag", paths)
	}
	if outcome.Record == nil || outcome.Record.SuccessCount != 1 {
		t.Errorf("record = %+v, want one success", outcome.Record)
	}
}
