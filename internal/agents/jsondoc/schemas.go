package jsondoc

import "github.com/xeipuuv/gojsonschema"

// Expected schemas per payload type. Compiled once at package init; the
// schema set is immutable after that.
var schemaSources = map[string]string{
	TypeWebhook: `{
		"type": "object",
		"required": ["timestamp", "event_type", "data"],
		"properties": {
			"timestamp": {"type": "string"},
			"event_type": {"type": "string"},
			"data": {"type": "object"}
		}
	}`,
	TypeInvoice: `{
		"type": "object",
		"required": ["invoice_id", "amount", "customer_id"],
		"properties": {
			"invoice_id": {"type": "string"},
			"amount": {"type": "number"},
			"customer_id": {"type": ["string", "number"]},
			"line_items": {"type": "array"}
		}
	}`,
	TypeTransaction: `{
		"type": "object",
		"required": ["transaction_id", "amount", "account_id"],
		"properties": {
			"transaction_id": {"type": "string"},
			"amount": {"type": "number"},
			"account_id": {"type": "string"},
			"timestamp": {"type": "string"}
		}
	}`,
}

var schemas = func() map[string]*gojsonschema.Schema {
	compiled := make(map[string]*gojsonschema.Schema, len(schemaSources))
	for name, source := range schemaSources {
		schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(source))
		if err != nil {
			panic("compile " + name + " schema: " + err.Error())
		}
		compiled[name] = schema
	}
	return compiled
}()

// validateSchema checks data against the expected schema for jsonType.
// Unknown types are invalid by definition.
func validateSchema(data map[string]any, jsonType string) SchemaValidation {
	v := SchemaValidation{
		IsValid:       true,
		MissingFields: []string{},
		TypeErrors:    []string{},
		ExtraFields:   []string{},
		SchemaUsed:    jsonType,
	}

	schema, ok := schemas[jsonType]
	if !ok {
		v.IsValid = false
		v.TypeErrors = append(v.TypeErrors, "Unknown JSON type: "+jsonType)
		return v
	}

	result, err := schema.Validate(gojsonschema.NewGoLoader(data))
	if err != nil {
		v.IsValid = false
		v.TypeErrors = append(v.TypeErrors, "Schema validation error: "+err.Error())
		return v
	}

	if !result.Valid() {
		v.IsValid = false
		for _, verr := range result.Errors() {
			if verr.Type() == "required" {
				if prop, ok := verr.Details()["property"].(string); ok {
					v.MissingFields = append(v.MissingFields, prop)
					continue
				}
			}
			v.TypeErrors = append(v.TypeErrors, verr.String())
		}
	}

	return v
}
