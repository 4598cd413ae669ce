package llm

import (
	"bytes"
	"encoding/json"
	"errors"
)

// checkContent rejects output no caller could use: nothing at all, or text
// cut off by the token limit.
func checkContent(content json.RawMessage, stopReason string) error {
	if stopReason == "max_tokens" {
		return &ErrMaxTokensExceeded{Content: content}
	}
	if len(bytes.TrimSpace(content)) == 0 {
		return &ErrInvalidResponse{Content: content, Err: errors.New("empty response")}
	}
	return nil
}

// rootWrapKey holds a non-object schema when the provider only accepts
// object roots for structured output.
const rootWrapKey = "items"

// objectRootSchema returns def unchanged when it already describes an
// object. Otherwise it wraps def in a single-property object and reports
// wrapped=true so the response can be unwrapped again.
func objectRootSchema(def map[string]any) (schema map[string]any, wrapped bool) {
	if t, _ := def["type"].(string); t == "object" {
		return def, false
	}
	return map[string]any{
		"type":                 "object",
		"properties":           map[string]any{rootWrapKey: def},
		"required":             []any{rootWrapKey},
		"additionalProperties": false,
	}, true
}

// unwrapRoot undoes objectRootSchema on the response. Content that does not
// have the wrapper shape is returned untouched.
func unwrapRoot(content json.RawMessage) json.RawMessage {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(content, &obj); err != nil {
		return content
	}
	if inner, ok := obj[rootWrapKey]; ok && len(obj) == 1 {
		return inner
	}
	return content
}
