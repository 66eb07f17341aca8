package classifier

import (
	"fmt"
	"strings"
)

type formatExample struct {
	input  string
	format string
}

type intentExample struct {
	input  string
	intent string
}

// Few-shot exemplars embedded in the classification prompts.
var formatExamples = []formatExample{
	{
		input:  "From: john@company.com\nSubject: Urgent Issue\nDear Support Team...",
		format: "Email",
	},
	{
		input:  `{"customer_id": 123, "amount": 1500.00, "type": "invoice"}`,
		format: "JSON",
	},
	{
		input:  "INVOICE\nCompany: ABC Corp\nTotal: $5,000.00\nLine items...",
		format: "PDF",
	},
}

var intentExamples = []intentExample{
	{input: "We need a quote for 100 units of product X by Friday", intent: "RFQ"},
	{input: "I am extremely disappointed with the service quality", intent: "Complaint"},
	{input: "Invoice #12345 for $2,500 due on 2024-01-15", intent: "Invoice"},
	{input: "New GDPR compliance requirements effective immediately", intent: "Regulation"},
	{input: "Suspicious transaction pattern detected in account", intent: "Fraud Risk"},
}

func formatPrompt(content string) string {
	var examples []string
	for _, ex := range formatExamples {
		examples = append(examples, fmt.Sprintf("Input: %s...\nFormat: %s", truncate(ex.input, 100), ex.format))
	}

	return fmt.Sprintf(`You are a format classification expert. Based on the following examples, classify the format of the given input.

Examples:
%s

Available formats: Email, JSON, PDF

Input to classify:
%s

Analyze the structure, patterns, and content to determine the format.
Respond with JSON in this exact format: {"format": "Email|JSON|PDF", "reasoning": "explanation"}`,
		strings.Join(examples, "\n\n"), truncate(content, 500))
}

func intentPrompt(content string) string {
	var examples []string
	for _, ex := range intentExamples {
		examples = append(examples, fmt.Sprintf("Input: %s\nIntent: %s", ex.input, ex.intent))
	}

	return fmt.Sprintf(`You are a business intent classification expert. Based on the following examples, classify the business intent of the given input.

Examples:
%s

Available intents: Policy Review, Invoice Processing, Contract Review, Customer Service, Risk Assessment, Documentation, General Document

Input to classify:
%s

Analyze the content, keywords, and context to determine the business intent.
Respond with JSON in this exact format: {"intent": "...", "reasoning": "explanation", "confidence": 0.0-1.0}`,
		strings.Join(examples, "\n\n"), truncate(content, 1000))
}

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
