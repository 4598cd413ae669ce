package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestCheckContent(t *testing.T) {
	tests := []struct {
		name    string
		content string
		stop    string
		want    any
	}{
		{"ok", `{"a":1}`, "end", nil},
		{"not json is still ok here", `hello`, "end", nil},
		{"empty", ``, "end", &ErrInvalidResponse{}},
		{"whitespace", " \n", "end", &ErrInvalidResponse{}},
		{"truncated", `{"a":`, "max_tokens", &ErrMaxTokensExceeded{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkContent(json.RawMessage(tt.content), tt.stop)
			switch tt.want.(type) {
			case nil:
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
			case *ErrInvalidResponse:
				var e *ErrInvalidResponse
				if !errors.As(err, &e) {
					t.Fatalf("expected ErrInvalidResponse, got %T", err)
				}
			case *ErrMaxTokensExceeded:
				var e *ErrMaxTokensExceeded
				if !errors.As(err, &e) {
					t.Fatalf("expected ErrMaxTokensExceeded, got %T", err)
				}
			}
		})
	}
}

func TestObjectRootSchema(t *testing.T) {
	obj := map[string]any{"type": "object"}
	if got, wrapped := objectRootSchema(obj); wrapped || got["type"] != "object" {
		t.Fatalf("object schema was wrapped")
	}

	arr := map[string]any{"type": "array", "items": map[string]any{"type": "string"}}
	got, wrapped := objectRootSchema(arr)
	if !wrapped {
		t.Fatal("array schema not wrapped")
	}
	props := got["properties"].(map[string]any)
	if props[rootWrapKey].(map[string]any)["type"] != "array" {
		t.Fatal("wrapped schema lost the array definition")
	}
}

func TestUnwrapRoot(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{`{"items":[1,2]}`, `[1,2]`},
		{`{"items":[1],"other":true}`, `{"items":[1],"other":true}`},
		{`[1,2]`, `[1,2]`},
		{`not json`, `not json`},
	}
	for _, tt := range tests {
		if got := string(unwrapRoot(json.RawMessage(tt.in))); got != tt.want {
			t.Errorf("unwrapRoot(%s) = %s, want %s", tt.in, got, tt.want)
		}
	}
}
