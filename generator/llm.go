package generator

import (
	"context"
	"errors"
	"fmt"
)

// FieldShape names one expected output field and its character budget.
type FieldShape struct {
	Name string
	Min  int
	Max  int
}

// Prompt is the instruction payload sent to the model, plus the output shape
// the response must match.
type Prompt struct {
	System string
	User   string
	Shape  []FieldShape
}

// Completion is one model reply: raw text plus usage metadata.
type Completion struct {
	Text    string
	ModelID string
	Usage   Usage
}

// LLMClient abstracts the external generative model so providers can be
// swapped or mocked.
type LLMClient interface {
	Complete(ctx context.Context, prompt Prompt) (Completion, error)
}

// LLMSettings is the base configuration handed to concrete clients.
type LLMSettings struct {
	Provider string
	Model    string
	APIKey   string
	BaseURL  string
}

// ModelError marks a failed model invocation: network errors, empty replies,
// unparsable output. These abort the request and are never retried, unlike
// constraint violations.
type ModelError struct {
	Provider string
	Err      error
}

func (e *ModelError) Error() string {
	return fmt.Sprintf("model %s: %v", e.Provider, e.Err)
}

func (e *ModelError) Unwrap() error { return e.Err }

// IsModelError reports whether err is (or wraps) a ModelError.
func IsModelError(err error) bool {
	var me *ModelError
	return errors.As(err, &me)
}
