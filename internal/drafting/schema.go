package drafting

import (
	"github.com/abhisek/mathctx/internal/catalog"
	"github.com/abhisek/mathctx/internal/llm"
)

// ContextSchema is the JSON schema for a drafted context. Field names match
// catalog.Entry so the output decodes straight into one.
var ContextSchema = &llm.Schema{
	Name:        "context-row",
	Description: "A real-world scenario for mean (average) word problems",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"id": map[string]any{
				"type":        "string",
				"description": "Stable lower_snake_case identifier",
				"pattern":     "^[a-z0-9][a-z0-9_]*$",
			},
			"name": map[string]any{
				"type":        "string",
				"description": "Short title case display name",
				"minLength":   1,
			},
			"category": map[string]any{
				"type":        "string",
				"description": "Grouping such as Health or Work & Money",
				"minLength":   1,
			},
			"description": map[string]any{
				"type":        "string",
				"description": "One sentence describing what the data measures",
			},
			"value_min": map[string]any{
				"type":        "number",
				"description": "Smallest realistic data value",
			},
			"value_max": map[string]any{
				"type":        "number",
				"description": "Largest realistic data value, greater than value_min",
			},
			"unit": map[string]any{
				"type":        "string",
				"description": "Display unit, e.g. $, bpm, km, minutes",
				"minLength":   1,
				"maxLength":   catalog.MaxUnitLength,
			},
			"data_label": map[string]any{
				"type":        "string",
				"description": "Plural noun phrase naming the data, e.g. daily step counts",
				"maxLength":   catalog.MaxLabelLength,
			},
			"variations": map[string]any{
				"type":        "array",
				"description": "Question variations the scenario can support",
				"minItems":    1,
				"items": map[string]any{
					"type": "string",
					"enum": variationNames(),
				},
			},
			"templates": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"minimal":  map[string]any{"type": "string"},
					"standard": map[string]any{"type": "string"},
					"rich":     map[string]any{"type": "string"},
				},
				"required":             []string{"minimal", "standard", "rich"},
				"additionalProperties": false,
			},
		},
		"required": []string{
			"id", "name", "category", "description", "value_min", "value_max",
			"unit", "data_label", "variations", "templates",
		},
		"additionalProperties": false,
	},
}

func variationNames() []string {
	vs := catalog.AllVariations()
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = string(v)
	}
	return out
}
