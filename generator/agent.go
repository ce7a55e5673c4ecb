package generator

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"slide_illustrator/constraints"
)

// DefaultMaxRetries bounds regeneration after a validation failure: up to
// three total attempts by default.
const DefaultMaxRetries = 2

// Agent drives the attempt loop for one request: build the prompt once, then
// invoke, parse, postprocess and validate until the content conforms or the
// retry budget is spent. Agents hold no per-request state and are safe for
// concurrent use.
type Agent struct {
	llm    LLMClient
	store  *constraints.Store
	logger *zap.Logger
}

func NewAgent(llm LLMClient, store *constraints.Store, logger *zap.Logger) (*Agent, error) {
	if llm == nil {
		return nil, errors.New("llm client is required")
	}
	if store == nil {
		return nil, errors.New("constraint store is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Agent{llm: llm, store: store, logger: logger}, nil
}

// Generate runs up to spec.MaxRetries+1 attempts. The prompt is reused
// verbatim on every attempt; violations are logged for observability but not
// fed back into the next prompt. A valid attempt stops the loop early. When
// the budget is exhausted the last attempt's content is returned with its
// invalid validation attached, favoring availability over strict correctness.
// A model invocation failure aborts immediately and is never retried.
func (a *Agent) Generate(ctx context.Context, spec Spec) (Outcome, error) {
	maxRetries := spec.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}

	prompt, err := BuildPrompt(spec, a.store)
	if err != nil {
		return Outcome{}, err
	}

	var (
		attempts []Attempt
		modelID  string
	)
	for i := 0; i <= maxRetries; i++ {
		start := time.Now()

		completion, err := a.llm.Complete(ctx, prompt)
		if err != nil {
			if !IsModelError(err) {
				err = &ModelError{Provider: "unknown", Err: err}
			}
			return Outcome{}, err
		}
		modelID = completion.ModelID

		content, err := ParseContent(completion.Text, prompt.Shape)
		if err != nil {
			return Outcome{}, &ModelError{Provider: completion.ModelID, Err: err}
		}
		content = PostProcess(content)

		validation, err := constraints.Validate(a.store, spec.Variant, content)
		if err != nil {
			return Outcome{}, err
		}

		attempts = append(attempts, Attempt{
			Index:      i,
			Content:    content,
			Validation: validation,
			Usage:      completion.Usage,
			Duration:   time.Since(start),
		})

		if validation.Valid {
			a.logger.Info("content validated",
				zap.String("variant", spec.Variant),
				zap.Int("attempt", i+1))
			break
		}
		if i < maxRetries {
			a.logger.Warn("validation failed, retrying",
				zap.String("variant", spec.Variant),
				zap.Int("attempt", i+1),
				zap.Int("violations", len(validation.Violations)))
			continue
		}
		a.logger.Warn("retry budget exhausted, returning last attempt",
			zap.String("variant", spec.Variant),
			zap.Int("attempts", i+1),
			zap.Int("violations", len(validation.Violations)))
	}

	last := attempts[len(attempts)-1]
	return Outcome{
		Content:    last.Content,
		Validation: last.Validation,
		Attempts:   attempts,
		ModelID:    modelID,
	}, nil
}
