package jsondoc

import (
	"encoding/json"
	"fmt"
)

func typePrompt(data map[string]any) string {
	rendered := truncate(renderData(data), 1000)

	return fmt.Sprintf(`Analyze the following JSON data structure and determine its type.

JSON data:
%s

Possible types: webhook, invoice, transaction, general

Respond with JSON in this format:
{"type": "webhook|invoice|transaction|general", "reasoning": "explanation"}`, rendered)
}

func anomalyPrompt(data map[string]any, jsonType string) string {
	rendered := renderData(data)

	return fmt.Sprintf(`Analyze the following %s JSON data for potential anomalies or inconsistencies.

JSON data:
%s

Look for:
- Field value mismatches or inconsistencies
- Unusual patterns or outliers
- Missing expected relationships between fields
- Data integrity issues

Respond with JSON in this format:
{
    "anomalies": [
        {
            "type": "string",
            "field": "string",
            "severity": "low|medium|high",
            "description": "string"
        }
    ]
}`, jsonType, rendered)
}

func renderData(data map[string]any) string {
	rendered, _ := json.MarshalIndent(data, "", "  ")
	return string(rendered)
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
