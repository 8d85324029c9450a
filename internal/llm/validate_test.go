package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

func testSchema() *Schema {
	return &Schema{
		Name:        "test-explanation",
		Description: "Worked steps for a missed question",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"steps": map[string]any{
					"type":     "array",
					"items":    map[string]any{"type": "string"},
					"minItems": 1,
				},
				"tip":        map[string]any{"type": "string"},
				"difficulty": map[string]any{"type": "string", "enum": []any{"easy", "hard"}},
			},
			"required":             []any{"steps", "tip"},
			"additionalProperties": true,
		},
	}
}

func TestValidateResponse(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		valid bool
	}{
		{"complete", `{"steps":["7 × 3 = 21"],"tip":"Count by sevens","difficulty":"easy"}`, true},
		{"without optional", `{"steps":["a","b"],"tip":"t"}`, true},
		{"missing required", `{"steps":["a"]}`, false},
		{"wrong type", `{"steps":"a","tip":"t"}`, false},
		{"empty array", `{"steps":[],"tip":"t"}`, false},
		{"wrong item type", `{"steps":[1,2],"tip":"t"}`, false},
		{"bad enum", `{"steps":["a"],"tip":"t","difficulty":"medium"}`, false},
		{"malformed", `{not json}`, false},
		{"empty", ``, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := validateResponse(testSchema(), json.RawMessage(tc.raw))
			if tc.valid {
				if err != nil {
					t.Fatalf("expected no error, got: %v", err)
				}
				return
			}
			var invErr *ErrInvalidResponse
			if !errors.As(err, &invErr) {
				t.Fatalf("expected ErrInvalidResponse, got: %v", err)
			}
			if string(invErr.Content) != tc.raw {
				t.Fatalf("expected offending content kept, got %s", invErr.Content)
			}
		})
	}
}

func TestValidateResponse_NilSchema(t *testing.T) {
	if err := validateResponse(nil, json.RawMessage(`not even json`)); err != nil {
		t.Fatalf("expected no error with nil schema, got: %v", err)
	}
}

func TestValidateResponse_CachesCompiledSchema(t *testing.T) {
	s := &Schema{Name: "test-cache", Definition: map[string]any{"type": "object"}}
	if err := validateResponse(s, json.RawMessage(`{}`)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := schemaCache.Load("test-cache"); !ok {
		t.Fatal("expected compiled schema to be cached")
	}
}
