package catalog

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const documentSchemaURL = "schema://catalog-document.json"

// documentSchema is the JSON Schema for catalog documents.
var documentSchema = map[string]any{
	"type":     "object",
	"required": []any{"schema_version", "contexts"},
	"properties": map[string]any{
		"schema_version": map[string]any{"type": "string"},
		"contexts": map[string]any{
			"type":     "array",
			"minItems": 1,
			"items": map[string]any{
				"type": "object",
				"required": []any{
					"id", "name", "category", "description",
					"value_min", "value_max", "unit", "variations", "templates",
				},
				"additionalProperties": false,
				"properties": map[string]any{
					"id":          map[string]any{"type": "string", "pattern": "^[a-z0-9][a-z0-9_]*$"},
					"name":        map[string]any{"type": "string", "minLength": 1},
					"category":    map[string]any{"type": "string", "minLength": 1},
					"description": map[string]any{"type": "string", "minLength": 1},
					"value_min":   map[string]any{"type": "number"},
					"value_max":   map[string]any{"type": "number"},
					"unit":        map[string]any{"type": "string", "minLength": 1},
					"data_label":  map[string]any{"type": "string"},
					"variations": map[string]any{
						"type":        "array",
						"minItems":    1,
						"uniqueItems": true,
						"items": map[string]any{
							"type": "string",
							"enum": []any{"calculate", "missing_value", "compare", "missing_count"},
						},
					},
					"templates": map[string]any{
						"type":                 "object",
						"required":             []any{"minimal", "standard", "rich"},
						"additionalProperties": false,
						"properties": map[string]any{
							"minimal":  map[string]any{"type": "string", "minLength": 1},
							"standard": map[string]any{"type": "string", "minLength": 1},
							"rich":     map[string]any{"type": "string", "minLength": 1},
						},
					},
				},
			},
		},
	},
}

var compiledDocumentSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	// The compiler wants a decoded JSON value, so round-trip the Go literal.
	raw, err := json.Marshal(documentSchema)
	if err != nil {
		return nil, fmt.Errorf("marshal document schema: %w", err)
	}
	var def any
	if err := json.Unmarshal(raw, &def); err != nil {
		return nil, fmt.Errorf("parse document schema: %w", err)
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource(documentSchemaURL, def); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	return c.Compile(documentSchemaURL)
})

// validateDocument checks raw JSON against the document schema.
func validateDocument(raw []byte) error {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return &ErrDataFormat{Err: fmt.Errorf("invalid JSON: %w", err)}
	}
	sch, err := compiledDocumentSchema()
	if err != nil {
		return fmt.Errorf("compile catalog schema: %w", err)
	}
	if err := sch.Validate(parsed); err != nil {
		return &ErrDataFormat{Err: fmt.Errorf("schema validation failed: %w", err)}
	}
	return nil
}
