package schemacheck

import (
	"errors"
	"testing"
)

func testSchema() Schema {
	return Schema{
		Name: "test-profile",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"name":     map[string]any{"type": "string"},
				"age":      map[string]any{"type": "integer", "minimum": 0},
				"examType": map[string]any{"type": "string", "enum": []any{"A", "B", "C"}},
			},
			"required": []any{"name", "age"},
		},
	}
}

func TestCheck(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"valid", `{"name":"Alice","age":30,"examType":"A"}`, false},
		{"valid without optional", `{"name":"Bob","age":31}`, false},
		{"missing required", `{"name":"Charlie"}`, true},
		{"wrong type", `{"name":"Dave","age":"ten"}`, true},
		{"invalid enum", `{"name":"Eve","age":9,"examType":"D"}`, true},
		{"malformed", `{not json}`, true},
		{"empty", ``, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Check(testSchema(), []byte(tt.raw))
			if (err != nil) != tt.wantErr {
				t.Fatalf("Check() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil {
				return
			}
			var inv *InvalidError
			if !errors.As(err, &inv) {
				t.Fatalf("expected InvalidError, got %T", err)
			}
			if inv.Schema != "test-profile" {
				t.Errorf("schema = %q", inv.Schema)
			}
		})
	}
}

func TestCheck_NestedArrays(t *testing.T) {
	s := Schema{
		Name: "test-nested",
		Definition: map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"id":     map[string]any{"type": "string"},
					"scores": map[string]any{"type": "array", "items": map[string]any{"type": "integer"}},
				},
				"required": []any{"id"},
			},
		},
	}

	if err := Check(s, []byte(`[{"id":"a","scores":[1,2]},{"id":"b"}]`)); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if err := Check(s, []byte(`[{"id":"a","scores":["x"]}]`)); err == nil {
		t.Fatal("expected error for wrong array item type")
	}
	if err := Check(s, []byte(`{"id":"a"}`)); err == nil {
		t.Fatal("expected error for object where array is required")
	}
}
