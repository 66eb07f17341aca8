// Package email implements the email format agent. It extracts structured
// fields from email content, analyzes tone, derives an urgency level, and
// recommends a handling action from a fixed tone and urgency rule table.
package email

import (
	"github.com/intakehq/intake/internal/oracle"
)

// Tone categories recognized by the analyzer.
const (
	TonePolite      = "polite"
	ToneEscalation  = "escalation"
	ToneThreatening = "threatening"
	ToneNeutral     = "neutral"
	ToneUrgent      = "urgent"
)

// Urgency levels.
const (
	UrgencyHigh   = "high"
	UrgencyMedium = "medium"
	UrgencyLow    = "low"
)

// Recommended actions produced by the rule table.
const (
	ActionEscalateImmediate = "escalate_immediate"
	ActionEscalateStandard  = "escalate_standard"
	ActionPrioritize        = "prioritize"
	ActionLogAndAcknowledge = "log_and_acknowledge"
	ActionStandardResponse  = "standard_response"
)

// ExtractedFields holds the structured fields pulled from email content.
type ExtractedFields struct {
	Sender            string   `json:"sender"`
	Recipient         string   `json:"recipient"`
	Subject           string   `json:"subject"`
	IssueType         string   `json:"issue_type"`
	KeyPoints         []string `json:"key_points"`
	ContactInfo       string   `json:"contact_info"`
	DeadlineMentioned string   `json:"deadline_mentioned"`
}

// ToneAnalysis holds the tone and sentiment assessment of email content.
type ToneAnalysis struct {
	Tone                string   `json:"tone"`
	SentimentScore      float64  `json:"sentiment_score"`
	EmotionalIndicators []string `json:"emotional_indicators"`
	PolitenessLevel     string   `json:"politeness_level"`
	Reasoning           string   `json:"reasoning"`
}

// Result is the complete email agent output.
type Result struct {
	AgentType         string          `json:"agent_type"`
	ExtractedFields   ExtractedFields `json:"extracted_fields"`
	ToneAnalysis      ToneAnalysis    `json:"tone_analysis"`
	UrgencyLevel      string          `json:"urgency_level"`
	RecommendedAction string          `json:"recommended_action"`
	FieldSource       oracle.Source   `json:"field_source"`
	ToneSource        oracle.Source   `json:"tone_source"`
}
