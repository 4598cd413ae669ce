package ai

import (
	"fmt"

	"github.com/abhisek/mastermind/internal/llm"
)

// GenerationError means the AI service produced nothing usable: the call
// failed, the text was empty, or it was not valid JSON for the expected
// shape. No partial result accompanies it.
type GenerationError struct {
	Op  llm.Purpose
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("%s generation failed: %v", e.Op, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }
