// Package schemacheck validates JSON documents against JSON Schema
// definitions held as Go maps.
package schemacheck

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Schema is a named JSON Schema definition. The name keys the compile cache,
// so two different definitions must not share a name.
type Schema struct {
	Name       string
	Definition map[string]any
}

// InvalidError reports a document that is not JSON or does not conform.
type InvalidError struct {
	Schema  string
	Content []byte
	Err     error
}

func (e *InvalidError) Error() string {
	return fmt.Sprintf("invalid %s document: %v", e.Schema, e.Err)
}

func (e *InvalidError) Unwrap() error { return e.Err }

// cache holds compiled schemas by name.
var cache sync.Map // map[string]*jsonschema.Schema

// Check parses raw and validates it against s.
// Returns *InvalidError on failure.
func Check(s Schema, raw []byte) error {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return &InvalidError{Schema: s.Name, Content: raw, Err: fmt.Errorf("invalid JSON: %w", err)}
	}

	compiled, err := compile(s)
	if err != nil {
		return &InvalidError{Schema: s.Name, Content: raw, Err: fmt.Errorf("compile schema: %w", err)}
	}

	if err := compiled.Validate(parsed); err != nil {
		return &InvalidError{Schema: s.Name, Content: raw, Err: fmt.Errorf("schema validation failed: %w", err)}
	}
	return nil
}

// compile returns a cached compiled schema or compiles and caches it.
func compile(s Schema) (*jsonschema.Schema, error) {
	if cached, ok := cache.Load(s.Name); ok {
		return cached.(*jsonschema.Schema), nil
	}

	// The jsonschema library expects a parsed JSON value (any), not raw bytes.
	// Marshal then unmarshal to get a clean any representation.
	defBytes, err := json.Marshal(s.Definition)
	if err != nil {
		return nil, fmt.Errorf("marshal schema definition: %w", err)
	}
	var defParsed any
	if err := json.Unmarshal(defBytes, &defParsed); err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	url := fmt.Sprintf("schema://%s.json", s.Name)
	if err := c.AddResource(url, defParsed); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}

	compiled, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}

	cache.Store(s.Name, compiled)
	return compiled, nil
}
