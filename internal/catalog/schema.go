package catalog

// schemaDefinition is the JSON schema every catalog document must satisfy.
var schemaDefinition = map[string]any{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type":    "object",
	"properties": map[string]any{
		"drills": map[string]any{
			"type":     "array",
			"minItems": 1,
			"items":    map[string]any{"$ref": "#/$defs/drill"},
		},
	},
	"required":             []any{"drills"},
	"additionalProperties": false,
	"$defs": map[string]any{
		"drill": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"prompt": map[string]any{
					"type":        "string",
					"minLength":   1,
					"description": "Question shown to the learner",
				},
				"keys": map[string]any{
					"type":        "string",
					"minLength":   1,
					"description": "Comma-separated expected key tokens",
				},
				"subtasks": map[string]any{
					"type":  "array",
					"items": map[string]any{"$ref": "#/$defs/drill"},
				},
			},
			"required":             []any{"prompt", "keys"},
			"additionalProperties": false,
		},
	},
}
