package jsondoc

var knownEvents = []string{"user.created", "user.updated", "payment.completed", "order.shipped"}

func checkInvoiceAnomalies(data map[string]any) []Anomaly {
	var anomalies []Anomaly

	amount, hasAmount := numberField(data, "amount")

	if hasAmount && amount < 0 {
		anomalies = append(anomalies, Anomaly{
			Type:        "negative_amount",
			Field:       "amount",
			Value:       amount,
			Severity:    SeverityHigh,
			Description: "Invoice amount is negative",
		})
	}

	if hasAmount && amount > 100000 {
		anomalies = append(anomalies, Anomaly{
			Type:        "high_amount",
			Field:       "amount",
			Value:       amount,
			Severity:    SeverityMedium,
			Description: "Invoice amount is unusually high",
		})
	}

	if _, hasItems := data["line_items"]; hasAmount && amount > 10000 && !hasItems {
		anomalies = append(anomalies, Anomaly{
			Type:        "missing_line_items",
			Field:       "line_items",
			Severity:    SeverityMedium,
			Description: "High-value invoice missing line item details",
		})
	}

	return anomalies
}

func checkTransactionAnomalies(data map[string]any) []Anomaly {
	var anomalies []Anomaly

	if id, ok := data["transaction_id"].(string); !ok || id == "" {
		anomalies = append(anomalies, Anomaly{
			Type:        "missing_transaction_id",
			Field:       "transaction_id",
			Severity:    SeverityHigh,
			Description: "Transaction missing unique identifier",
		})
	}

	if amount, ok := numberField(data, "amount"); ok {
		switch {
		case amount == 0:
			anomalies = append(anomalies, Anomaly{
				Type:        "zero_amount",
				Field:       "amount",
				Value:       amount,
				Severity:    SeverityMedium,
				Description: "Transaction has zero amount",
			})
		case amount > 50000:
			anomalies = append(anomalies, Anomaly{
				Type:        "high_value_transaction",
				Field:       "amount",
				Value:       amount,
				Severity:    SeverityHigh,
				Description: "Unusually high transaction amount - potential fraud risk",
			})
		}
	}

	return anomalies
}

func checkWebhookAnomalies(data map[string]any) []Anomaly {
	var anomalies []Anomaly

	if ts, ok := data["timestamp"].(string); !ok || ts == "" {
		anomalies = append(anomalies, Anomaly{
			Type:        "missing_timestamp",
			Field:       "timestamp",
			Severity:    SeverityMedium,
			Description: "Webhook missing timestamp",
		})
	}

	if event, ok := data["event_type"].(string); ok && event != "" && !knownEvent(event) {
		anomalies = append(anomalies, Anomaly{
			Type:        "unknown_event_type",
			Field:       "event_type",
			Value:       event,
			Severity:    SeverityLow,
			Description: "Unknown event type: " + event,
		})
	}

	return anomalies
}

// assessRisk derives the overall risk level from anomaly severities: any
// high severity or more than one medium severity yields high risk, a single
// medium yields medium, anything else is low.
func assessRisk(anomalies []Anomaly) string {
	if len(anomalies) == 0 {
		return SeverityLow
	}

	var high, medium int
	for _, a := range anomalies {
		switch a.Severity {
		case SeverityHigh:
			high++
		case SeverityMedium:
			medium++
		}
	}

	switch {
	case high > 0, medium > 1:
		return SeverityHigh
	case medium > 0:
		return SeverityMedium
	}
	return SeverityLow
}

func knownEvent(event string) bool {
	for _, known := range knownEvents {
		if event == known {
			return true
		}
	}
	return false
}

// numberField reads a numeric field from decoded JSON. Decoded numbers are
// always float64.
func numberField(data map[string]any, key string) (float64, bool) {
	v, ok := data[key].(float64)
	return v, ok
}
