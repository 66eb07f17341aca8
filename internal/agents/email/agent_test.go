package email

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/intakehq/intake/internal/oracle"
	"github.com/intakehq/intake/internal/results"
	"github.com/intakehq/intake/internal/testsupport"
	"github.com/intakehq/intake/pkg/metrics"
)

func testAgent(o oracle.TextOracle, store results.System) *Agent {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(o, store, logger, metrics.New(prometheus.NewRegistry()))
}

func TestFallbackFields(t *testing.T) {
	content := "From: alice@example.com\nTo: support@acme.com\nSubject: Billing question\n\nI have a question."

	fields := fallbackFields(content)

	if fields.Sender != "alice@example.com" {
		t.Errorf("Sender = %q", fields.Sender)
	}
	if fields.Recipient != "support@acme.com" {
		t.Errorf("Recipient = %q", fields.Recipient)
	}
	if fields.Subject != "Billing question" {
		t.Errorf("Subject = %q", fields.Subject)
	}
	if fields.IssueType != "General Inquiry" {
		t.Errorf("IssueType = %q", fields.IssueType)
	}
	if fields.DeadlineMentioned != "None specified" {
		t.Errorf("DeadlineMentioned = %q", fields.DeadlineMentioned)
	}
}

func TestFallbackFieldsMissingHeaders(t *testing.T) {
	fields := fallbackFields("no headers here at all")

	if fields.Sender != "Unknown" {
		t.Errorf("Sender = %q, want Unknown", fields.Sender)
	}
	if fields.Subject != "No Subject" {
		t.Errorf("Subject = %q, want No Subject", fields.Subject)
	}
}

func TestTruncateMultibyte(t *testing.T) {
	if got := truncate("héllo", 10); got != "héllo" {
		t.Errorf("truncate(short) = %q, want unchanged", got)
	}

	got := truncate(strings.Repeat("é", 150), 100)
	if !utf8.ValidString(got) {
		t.Fatalf("truncate produced invalid UTF-8: %x", got)
	}
	if got != strings.Repeat("é", 100) {
		t.Errorf("truncate kept %d runes, want 100", utf8.RuneCountInString(got))
	}
}

func TestFallbackFieldsMultibyteKeyPoints(t *testing.T) {
	content := "From: alice@example.com\n" + strings.Repeat("ü", 200)
	fields := fallbackFields(content)

	if len(fields.KeyPoints) != 1 {
		t.Fatalf("key points = %d, want 1", len(fields.KeyPoints))
	}
	if !utf8.ValidString(fields.KeyPoints[0]) {
		t.Errorf("key point is invalid UTF-8: %x", fields.KeyPoints[0])
	}
}

func TestFallbackTonePrecedence(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		wantTone  string
		wantScore float64
	}{
		{"threatening", "I will pursue legal action", ToneThreatening, 0.1},
		{"threatening outranks urgent", "URGENT: this is urgent, I will contact my lawsuit attorney", ToneThreatening, 0.1},
		{"escalation outranks urgent", "This is urgent and completely unacceptable", ToneEscalation, 0.3},
		{"urgent", "Please respond... this is urgent", ToneUrgent, 0.8},
		{"polite", "Thank you kindly for your help", TonePolite, 0.9},
		{"neutral", "Here is the weekly status update", ToneNeutral, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tone := fallbackTone(tt.content)
			if tone.Tone != tt.wantTone {
				t.Errorf("tone = %q, want %q", tone.Tone, tt.wantTone)
			}
			if tone.SentimentScore != tt.wantScore {
				t.Errorf("score = %v, want %v", tone.SentimentScore, tt.wantScore)
			}
		})
	}
}

func TestDetermineUrgency(t *testing.T) {
	tests := []struct {
		name    string
		content string
		tone    string
		want    string
	}{
		{"threatening tone forces high", "calm text", ToneThreatening, UrgencyHigh},
		{"urgent tone forces high", "calm text", ToneUrgent, UrgencyHigh},
		{"escalation tone forces medium", "calm text", ToneEscalation, UrgencyMedium},
		{"high keywords", "deadline is tomorrow", ToneNeutral, UrgencyHigh},
		{"medium keywords", "this is important", ToneNeutral, UrgencyMedium},
		{"low keywords", "reply when possible", ToneNeutral, UrgencyLow},
		{"no keywords defaults medium", "status update", ToneNeutral, UrgencyMedium},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := determineUrgency(tt.content, tt.tone); got != tt.want {
				t.Errorf("determineUrgency = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDetermineAction(t *testing.T) {
	tests := []struct {
		tone    string
		urgency string
		want    string
	}{
		{ToneThreatening, UrgencyLow, ActionEscalateImmediate},
		{ToneEscalation, UrgencyHigh, ActionEscalateImmediate},
		{ToneEscalation, UrgencyMedium, ActionEscalateStandard},
		{ToneNeutral, UrgencyHigh, ActionEscalateStandard},
		{ToneUrgent, UrgencyHigh, ActionEscalateStandard},
		{ToneUrgent, UrgencyMedium, ActionPrioritize},
		{TonePolite, UrgencyLow, ActionLogAndAcknowledge},
		{TonePolite, UrgencyMedium, ActionStandardResponse},
		{ToneNeutral, UrgencyMedium, ActionStandardResponse},
	}

	for _, tt := range tests {
		if got := determineAction(tt.tone, tt.urgency); got != tt.want {
			t.Errorf("determineAction(%q, %q) = %q, want %q", tt.tone, tt.urgency, got, tt.want)
		}
	}
}

func TestProcessThreateningEmail(t *testing.T) {
	store := &testsupport.ResultStore{}
	a := testAgent(oracle.FailingOracle{}, store)

	content := "From: a@b.com\nSubject: URGENT\nThis is unacceptable, I will escalate to legal."
	classificationID := uuid.New()

	result, record, err := a.Process(context.Background(), content, classificationID)
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}

	if result.ToneAnalysis.Tone != ToneThreatening {
		t.Errorf("tone = %q, want threatening", result.ToneAnalysis.Tone)
	}
	if result.UrgencyLevel != UrgencyHigh {
		t.Errorf("urgency = %q, want high", result.UrgencyLevel)
	}
	if result.RecommendedAction != ActionEscalateImmediate {
		t.Errorf("action = %q, want escalate_immediate", result.RecommendedAction)
	}
	if result.FieldSource != oracle.SourceFallback || result.ToneSource != oracle.SourceFallback {
		t.Error("expected fallback sources with a failing oracle")
	}

	if record.ClassificationID != classificationID {
		t.Error("record not linked to classification")
	}
	if record.AgentType != results.AgentEmail {
		t.Errorf("agent type = %q, want email", record.AgentType)
	}
	if len(store.Records) != 1 {
		t.Fatalf("stored %d records, want 1", len(store.Records))
	}
	if !strings.Contains(string(store.Records[0].ResultData), "escalate_immediate") {
		t.Error("stored result data missing recommended action")
	}
}

func TestProcessOracleTone(t *testing.T) {
	store := &testsupport.ResultStore{}
	o := &oracle.StaticOracle{
		Response: `{"sender": "x@y.com", "tone": "polite", "sentiment_score": 0.95, "politeness_level": "high", "reasoning": "courteous"}`,
	}
	a := testAgent(o, store)

	result, _, err := a.Process(context.Background(), "Thank you for the update, no rush.", uuid.New())
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}

	if result.ToneAnalysis.Tone != TonePolite {
		t.Errorf("tone = %q, want polite", result.ToneAnalysis.Tone)
	}
	if result.ToneSource != oracle.SourceOracle {
		t.Errorf("tone source = %q, want oracle", result.ToneSource)
	}
	if result.RecommendedAction != ActionLogAndAcknowledge {
		t.Errorf("action = %q, want log_and_acknowledge", result.RecommendedAction)
	}
}
