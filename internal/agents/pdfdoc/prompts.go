package pdfdoc

import "fmt"

func typePrompt(text string) string {
	return fmt.Sprintf(`Analyze the following document text and determine its type.

Document text (first 1000 characters):
%s

Possible types: invoice, policy, contract, report, general

Respond with JSON in this format:
{"document_type": "invoice|policy|contract|report|general", "confidence": 0.0-1.0, "reasoning": "explanation"}`,
		truncate(text, 1000))
}

func invoicePrompt(text string) string {
	return fmt.Sprintf(`Extract structured invoice information from the following text.

Invoice text:
%s

Extract the following information and respond with JSON:
- invoice_number: invoice ID or number
- total_amount: total amount due (number only)
- currency: currency code if mentioned
- invoice_date: date of invoice
- due_date: payment due date
- vendor_name: name of vendor/company
- customer_name: name of customer/buyer
- line_items: array of line items with description and amount
- tax_amount: tax amount if specified
- subtotal: subtotal before tax

Respond with JSON in this format:
{
    "invoice_number": "string",
    "total_amount": number,
    "currency": "string",
    "invoice_date": "string",
    "due_date": "string",
    "vendor_name": "string",
    "customer_name": "string",
    "line_items": [
        {"description": "string", "amount": number, "quantity": number}
    ],
    "tax_amount": number,
    "subtotal": number
}`, text)
}

func policyPrompt(text string) string {
	return fmt.Sprintf(`Extract structured information from the following policy document.

Policy text:
%s

Extract the following information and respond with JSON:
- policy_title: title of the policy
- effective_date: when the policy becomes effective
- policy_type: type of policy (privacy, security, compliance, etc.)
- key_requirements: list of main requirements or rules
- compliance_standards: any compliance standards mentioned
- penalties_mentioned: any penalties or consequences mentioned
- review_date: next review date if mentioned

Respond with JSON in this format:
{
    "policy_title": "string",
    "effective_date": "string",
    "policy_type": "string",
    "key_requirements": ["string"],
    "compliance_standards": ["string"],
    "penalties_mentioned": ["string"],
    "review_date": "string"
}`, truncate(text, 2000))
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
