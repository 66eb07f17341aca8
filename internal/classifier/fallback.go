package classifier

import (
	"strings"

	"github.com/intakehq/intake/internal/classifications"
)

// intentBucket pairs an intent label with the keywords that select it.
// Buckets are checked in order and the first match wins, so broader
// categories like Policy Review shadow later ones.
type intentBucket struct {
	intent   string
	keywords []string
}

var intentBuckets = []intentBucket{
	{
		intent: "Policy Review",
		keywords: []string{
			"policy", "gdpr", "regulation", "compliance", "privacy", "data protection",
			"hipaa", "sox", "pci", "iso", "audit", "governance", "security policy",
			"acceptable use", "code of conduct", "regulatory", "legal", "terms",
		},
	},
	{
		intent: "Invoice Processing",
		keywords: []string{
			"invoice", "bill", "payment", "amount", "total", "subtotal", "tax",
			"purchase order", "receipt", "financial", "accounting", "cost",
		},
	},
	{
		intent: "Contract Review",
		keywords: []string{
			"contract", "agreement", "terms and conditions", "sla", "statement of work",
			"proposal", "quote", "rfq", "quotation", "pricing", "vendor",
		},
	},
	{
		intent: "Customer Service",
		keywords: []string{
			"complaint", "issue", "problem", "disappointed", "dissatisfied",
			"escalation", "urgent", "critical", "failure", "error",
		},
	},
	{
		intent: "Risk Assessment",
		keywords: []string{
			"fraud", "suspicious", "risk", "alert", "anomaly", "unusual",
			"investigation", "security incident", "breach",
		},
	},
	{
		intent: "Documentation",
		keywords: []string{
			"manual", "documentation", "specification", "technical", "procedure",
			"installation", "configuration", "setup", "guide",
		},
	},
}

// IntentGeneral is the fallback intent when no keyword bucket matches.
const IntentGeneral = "General Document"

var emailMarkers = []string{"from:", "to:", "subject:", "@"}

// fallbackFormat detects the document format from structural markers.
// It is total: every input maps to one of the three formats.
func fallbackFormat(content string) classifications.Format {
	lower := strings.ToLower(content)
	for _, marker := range emailMarkers {
		if strings.Contains(lower, marker) {
			return classifications.FormatEmail
		}
	}

	trimmed := strings.TrimSpace(content)
	if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
		return classifications.FormatJSON
	}

	return classifications.FormatPDF
}

// fallbackIntent selects the first keyword bucket matching the content.
// It is total: unmatched content yields IntentGeneral.
func fallbackIntent(content string) string {
	lower := strings.ToLower(content)
	for _, bucket := range intentBuckets {
		for _, keyword := range bucket.keywords {
			if strings.Contains(lower, keyword) {
				return bucket.intent
			}
		}
	}
	return IntentGeneral
}
