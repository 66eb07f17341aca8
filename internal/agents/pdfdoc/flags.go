package pdfdoc

import (
	"fmt"
	"strings"
)

var invoiceKeywords = []string{"invoice", "bill", "amount due", "total", "line item", "payment terms"}
var policyKeywords = []string{"policy", "procedure", "regulation", "compliance", "guidelines", "terms"}

var policyFlagTerms = []string{"audit", "violation", "penalty", "non-compliance"}

// complianceRegulation pairs a regulation with its trigger keywords.
// Keyword order matters: only the first matching keyword flags per
// regulation, keeping repeated scans of the same document deterministic.
type complianceRegulation struct {
	name     string
	keywords []string
}

var complianceRegulations = []complianceRegulation{
	{"GDPR", []string{"gdpr", "general data protection regulation", "data protection"}},
	{"FDA", []string{"fda", "food and drug administration", "medical device"}},
	{"HIPAA", []string{"hipaa", "health insurance portability"}},
	{"SOX", []string{"sarbanes-oxley", "sox", "financial reporting"}},
	{"PCI", []string{"pci", "payment card industry", "credit card"}},
}

// scoreDocumentType counts keyword hits. Invoice wins when its score beats
// policy and reaches at least two hits; policy needs two hits.
func scoreDocumentType(text string) (string, bool) {
	lower := strings.ToLower(text)

	var invoiceScore, policyScore int
	for _, k := range invoiceKeywords {
		if strings.Contains(lower, k) {
			invoiceScore++
		}
	}
	for _, k := range policyKeywords {
		if strings.Contains(lower, k) {
			policyScore++
		}
	}

	if invoiceScore > policyScore && invoiceScore >= 2 {
		return TypeInvoice, true
	}
	if policyScore >= 2 {
		return TypePolicy, true
	}
	return "", false
}

// checkFlags applies the flagging thresholds: invoice totals over $10,000
// require approval, unresolved invoice numbers require review, and policy
// trigger terms each add a medium flag.
func checkFlags(extracted ExtractedData, text string) []Flag {
	flags := []Flag{}

	if inv := extracted.Invoice; inv != nil {
		if inv.TotalAmount > 10000 {
			flags = append(flags, Flag{
				Type:             "high_value_invoice",
				Severity:         SeverityMedium,
				Description:      fmt.Sprintf("Invoice amount $%.2f exceeds $10,000 threshold", inv.TotalAmount),
				Amount:           inv.TotalAmount,
				RequiresApproval: true,
			})
		}

		if inv.InvoiceNumber == "Unknown" {
			flags = append(flags, Flag{
				Type:           "missing_invoice_number",
				Severity:       SeverityHigh,
				Description:    "Invoice number could not be extracted",
				RequiresReview: true,
			})
		}
	}

	lower := strings.ToLower(text)
	for _, term := range policyFlagTerms {
		if strings.Contains(lower, term) {
			flags = append(flags, Flag{
				Type:        "policy_" + term,
				Severity:    SeverityMedium,
				Description: fmt.Sprintf("Policy document mentions '%s'", term),
				Keyword:     term,
			})
		}
	}

	return flags
}

// checkComplianceFlags scans for regulation mentions. Each regulation flags
// at most once, on its first matching keyword, with occurrence counts for
// that keyword. GDPR and FDA mentions are high severity.
func checkComplianceFlags(text string) []ComplianceFlag {
	flags := []ComplianceFlag{}
	lower := strings.ToLower(text)

	for _, reg := range complianceRegulations {
		for _, keyword := range reg.keywords {
			if !strings.Contains(lower, keyword) {
				continue
			}

			severity := SeverityMedium
			if reg.name == "GDPR" || reg.name == "FDA" {
				severity = SeverityHigh
			}

			flags = append(flags, ComplianceFlag{
				Regulation:          reg.name,
				Keyword:             keyword,
				Occurrences:         strings.Count(lower, keyword),
				Severity:            severity,
				Description:         fmt.Sprintf("Document mentions %s compliance requirement", reg.name),
				RequiresLegalReview: true,
			})
			break
		}
	}

	return flags
}
