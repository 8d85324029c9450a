package coach

import "github.com/abhisek/mathdrill/internal/llm"

// ExplanationSchema is the JSON schema for a worked explanation.
var ExplanationSchema = &llm.Schema{
	Name:        "worked-explanation",
	Description: "Step-by-step working for a missed drill question and one memory tip",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"steps": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"minItems":    1,
				"maxItems":    6,
				"description": "Numbered working, one short line per step",
			},
			"tip": map[string]any{
				"type":        "string",
				"description": "One sentence trick for remembering this kind of fact",
			},
		},
		"required":             []any{"steps", "tip"},
		"additionalProperties": false,
	},
}
