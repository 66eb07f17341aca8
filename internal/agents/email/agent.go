package email

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/intakehq/intake/internal/oracle"
	"github.com/intakehq/intake/internal/results"
	"github.com/intakehq/intake/pkg/formatting"
	"github.com/intakehq/intake/pkg/metrics"
)

var (
	senderPattern    = regexp.MustCompile(`(?i)From:\s*([^\n\r]+)`)
	recipientPattern = regexp.MustCompile(`(?i)To:\s*([^\n\r]+)`)
	subjectPattern   = regexp.MustCompile(`(?i)Subject:\s*([^\n\r]+)`)
)

var urgencyKeywords = map[string][]string{
	UrgencyHigh:   {"urgent", "asap", "immediately", "emergency", "critical", "deadline"},
	UrgencyMedium: {"soon", "priority", "important", "escalate"},
	UrgencyLow:    {"when possible", "convenient", "no rush", "whenever"},
}

// Agent processes email documents.
type Agent struct {
	oracle  oracle.TextOracle
	store   results.System
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// New creates an email Agent.
func New(
	o oracle.TextOracle,
	store results.System,
	logger *slog.Logger,
	m *metrics.Metrics,
) *Agent {
	return &Agent{
		oracle:  o,
		store:   store,
		logger:  logger.With("agent", "email"),
		metrics: m,
	}
}

// Process analyzes email content and persists the agent result linked to the
// given classification. Field extraction and tone analysis each fall back to
// deterministic heuristics on oracle failure; urgency and the recommended
// action are always rule-derived.
func (a *Agent) Process(
	ctx context.Context,
	content string,
	classificationID uuid.UUID,
) (*Result, *results.AgentResult, error) {
	started := time.Now()

	fields, fieldSource := a.extractFields(ctx, content)
	tone, toneSource := a.analyzeTone(ctx, content)
	urgency := determineUrgency(content, tone.Tone)
	action := determineAction(tone.Tone, urgency)

	result := &Result{
		AgentType:         "Email",
		ExtractedFields:   fields,
		ToneAnalysis:      tone,
		UrgencyLevel:      urgency,
		RecommendedAction: action,
		FieldSource:       fieldSource,
		ToneSource:        toneSource,
	}

	record, err := a.store.Create(ctx, results.CreateCommand{
		ClassificationID:   classificationID,
		AgentType:          results.AgentEmail,
		ResultData:         result,
		ProcessingDuration: time.Since(started).Seconds(),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("store email result: %w", err)
	}

	a.logger.Info("email processed",
		"result_id", record.ID,
		"tone", tone.Tone,
		"urgency", urgency,
		"action", action,
	)
	return result, record, nil
}

func (a *Agent) extractFields(ctx context.Context, content string) (ExtractedFields, oracle.Source) {
	response, err := a.oracle.Complete(ctx, oracle.JSON(extractPrompt(content)))
	if err == nil {
		if fields, perr := formatting.Parse[ExtractedFields](response); perr == nil {
			a.metrics.OracleCalls.WithLabelValues("email_extract", string(oracle.SourceOracle)).Inc()
			return fields, oracle.SourceOracle
		}
	}

	a.logger.Warn("email field extraction fell back to patterns", "error", err)
	a.metrics.OracleCalls.WithLabelValues("email_extract", string(oracle.SourceFallback)).Inc()
	return fallbackFields(content), oracle.SourceFallback
}

func (a *Agent) analyzeTone(ctx context.Context, content string) (ToneAnalysis, oracle.Source) {
	response, err := a.oracle.Complete(ctx, oracle.JSON(tonePrompt(content)))
	if err == nil {
		if tone, perr := formatting.Parse[ToneAnalysis](response); perr == nil && tone.Tone != "" {
			a.metrics.OracleCalls.WithLabelValues("email_tone", string(oracle.SourceOracle)).Inc()
			return tone, oracle.SourceOracle
		}
	}

	a.logger.Warn("tone analysis fell back to keywords", "error", err)
	a.metrics.OracleCalls.WithLabelValues("email_tone", string(oracle.SourceFallback)).Inc()
	return fallbackTone(content), oracle.SourceFallback
}

func fallbackFields(content string) ExtractedFields {
	sender := matchOr(senderPattern, content, "Unknown")

	return ExtractedFields{
		Sender:            sender,
		Recipient:         matchOr(recipientPattern, content, "Unknown"),
		Subject:           matchOr(subjectPattern, content, "No Subject"),
		IssueType:         "General Inquiry",
		KeyPoints:         []string{truncate(content, 100) + "..."},
		ContactInfo:       sender,
		DeadlineMentioned: "None specified",
	}
}

func fallbackTone(content string) ToneAnalysis {
	lower := strings.ToLower(content)

	// Threatening and escalation markers outrank urgency markers so that a
	// hostile message stamped URGENT still escalates immediately.
	tone := ToneNeutral
	score := 0.5
	switch {
	case containsAny(lower, "threat", "legal", "lawsuit", "report"):
		tone, score = ToneThreatening, 0.1
	case containsAny(lower, "disappointed", "frustrated", "unacceptable", "demand"):
		tone, score = ToneEscalation, 0.3
	case containsAny(lower, "urgent", "asap", "immediately", "emergency"):
		tone, score = ToneUrgent, 0.8
	case containsAny(lower, "please", "thank", "appreciate", "kindly"):
		tone, score = TonePolite, 0.9
	}

	return ToneAnalysis{
		Tone:                tone,
		SentimentScore:      score,
		EmotionalIndicators: []string{},
		PolitenessLevel:     "medium",
		Reasoning:           "Fallback analysis based on keyword detection",
	}
}

// determineUrgency derives the urgency level from keyword counts, with tone
// overriding: threatening or urgent tone forces high, escalation forces medium.
func determineUrgency(content, tone string) string {
	if tone == ToneThreatening || tone == ToneUrgent {
		return UrgencyHigh
	}
	if tone == ToneEscalation {
		return UrgencyMedium
	}

	lower := strings.ToLower(content)
	switch {
	case countAny(lower, urgencyKeywords[UrgencyHigh]) > 0:
		return UrgencyHigh
	case countAny(lower, urgencyKeywords[UrgencyMedium]) > 0:
		return UrgencyMedium
	case countAny(lower, urgencyKeywords[UrgencyLow]) > 0:
		return UrgencyLow
	}
	return UrgencyMedium
}

// determineAction applies the tone and urgency rule table.
func determineAction(tone, urgency string) string {
	switch {
	case tone == ToneThreatening, tone == ToneEscalation && urgency == UrgencyHigh:
		return ActionEscalateImmediate
	case tone == ToneEscalation, urgency == UrgencyHigh:
		return ActionEscalateStandard
	case tone == ToneUrgent:
		return ActionPrioritize
	case tone == TonePolite && urgency == UrgencyLow:
		return ActionLogAndAcknowledge
	}
	return ActionStandardResponse
}

func matchOr(pattern *regexp.Regexp, content, fallback string) string {
	if m := pattern.FindStringSubmatch(content); len(m) >= 2 {
		return strings.TrimSpace(m[1])
	}
	return fallback
}

func containsAny(content string, keywords ...string) bool {
	for _, k := range keywords {
		if strings.Contains(content, k) {
			return true
		}
	}
	return false
}

func countAny(content string, keywords []string) int {
	var n int
	for _, k := range keywords {
		if strings.Contains(content, k) {
			n++
		}
	}
	return n
}

// truncate keeps the first n runes of s, never splitting a multi-byte
// character.
func truncate(s string, n int) string {
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
