// Package pdfdoc implements the PDF format agent. It determines the document
// type, extracts structured data per type, applies flagging thresholds, and
// scans for compliance regulation mentions.
package pdfdoc

import (
	"github.com/intakehq/intake/internal/oracle"
)

// Document types recognized by the agent.
const (
	TypeInvoice  = "invoice"
	TypePolicy   = "policy"
	TypeContract = "contract"
	TypeReport   = "report"
	TypeGeneral  = "general"
)

// Flag severities.
const (
	SeverityLow    = "low"
	SeverityMedium = "medium"
	SeverityHigh   = "high"
)

// LineItem is one invoice line entry.
type LineItem struct {
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Quantity    float64 `json:"quantity"`
}

// InvoiceData holds the fields extracted from an invoice document.
type InvoiceData struct {
	InvoiceNumber string     `json:"invoice_number"`
	TotalAmount   float64    `json:"total_amount"`
	Currency      string     `json:"currency"`
	InvoiceDate   string     `json:"invoice_date"`
	DueDate       string     `json:"due_date"`
	VendorName    string     `json:"vendor_name"`
	CustomerName  string     `json:"customer_name"`
	LineItems     []LineItem `json:"line_items"`
	TaxAmount     float64    `json:"tax_amount"`
	Subtotal      float64    `json:"subtotal"`
}

// PolicyData holds the fields extracted from a policy document.
type PolicyData struct {
	PolicyTitle         string   `json:"policy_title"`
	EffectiveDate       string   `json:"effective_date"`
	PolicyType          string   `json:"policy_type"`
	KeyRequirements     []string `json:"key_requirements"`
	ComplianceStandards []string `json:"compliance_standards"`
	PenaltiesMentioned  []string `json:"penalties_mentioned"`
	ReviewDate          string   `json:"review_date"`
}

// GeneralData holds the summary produced for unrecognized document types.
type GeneralData struct {
	DocumentSummary   string   `json:"document_summary"`
	WordCount         int      `json:"word_count"`
	KeyTopics         []string `json:"key_topics"`
	DocumentStructure string   `json:"document_structure"`
}

// ExtractedData carries exactly one populated variant matching the detected
// document type. Contract and report documents use the general variant.
type ExtractedData struct {
	Invoice *InvoiceData `json:"invoice,omitempty"`
	Policy  *PolicyData  `json:"policy,omitempty"`
	General *GeneralData `json:"general,omitempty"`
}

// Flag describes a condition in the document that requires attention.
type Flag struct {
	Type             string  `json:"type"`
	Severity         string  `json:"severity"`
	Description      string  `json:"description"`
	Amount           float64 `json:"amount,omitempty"`
	Keyword          string  `json:"keyword,omitempty"`
	RequiresApproval bool    `json:"requires_approval,omitempty"`
	RequiresReview   bool    `json:"requires_review,omitempty"`
}

// ComplianceFlag describes a regulation mention found in the document.
type ComplianceFlag struct {
	Regulation          string `json:"regulation"`
	Keyword             string `json:"keyword"`
	Occurrences         int    `json:"occurrences"`
	Severity            string `json:"severity"`
	Description         string `json:"description"`
	RequiresLegalReview bool   `json:"requires_legal_review"`
}

// Result is the complete PDF agent output.
type Result struct {
	AgentType       string           `json:"agent_type"`
	DocumentType    string           `json:"document_type"`
	ExtractedData   ExtractedData    `json:"extracted_data"`
	Flags           []Flag           `json:"flags"`
	ComplianceFlags []ComplianceFlag `json:"compliance_flags"`
	TextLength      int              `json:"text_length"`
	TypeSource      oracle.Source    `json:"type_source"`
	ExtractSource   oracle.Source    `json:"extract_source"`
}
