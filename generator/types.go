package generator

import (
	"time"

	"slide_illustrator/constraints"
)

// DiagramKind selects the instruction family used by the prompt builder.
type DiagramKind string

const (
	KindPyramid DiagramKind = "pyramid"
	KindFunnel  DiagramKind = "funnel"
	KindCircles DiagramKind = "circles"
)

// SlideContext is one prior slide's summary, passed in for narrative
// continuity. Advisory only; never validated or enforced downstream.
type SlideContext struct {
	SlideNumber int    `json:"slide_number,omitempty"`
	Title       string `json:"title"`
	Summary     string `json:"summary,omitempty"`
}

// Spec describes one requested diagram before generation.
type Spec struct {
	Kind         DiagramKind
	Variant      string
	Sections     int // levels, stages, or circles
	Topic        string
	TargetLabels []string
	Narrative    []SlideContext
	Tone         string
	Audience     string
	MaxRetries   int
}

// Content maps field names to generated text values. Each attempt produces a
// fresh instance; it is never mutated in place.
type Content map[string]string

// Usage is the token spend reported by the model for one invocation.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
}

func (u Usage) add(other Usage) Usage {
	return Usage{
		PromptTokens:     u.PromptTokens + other.PromptTokens,
		CompletionTokens: u.CompletionTokens + other.CompletionTokens,
	}
}

// Attempt records one generate-then-validate cycle.
type Attempt struct {
	Index      int
	Content    Content
	Validation constraints.Result
	Usage      Usage
	Duration   time.Duration
}

// Outcome is the retry orchestrator's terminal state: the last attempt's
// content and validation plus the full execution trace.
type Outcome struct {
	Content    Content
	Validation constraints.Result
	Attempts   []Attempt
	ModelID    string
}

// TotalUsage sums token spend across all attempts.
func (o Outcome) TotalUsage() Usage {
	var total Usage
	for _, a := range o.Attempts {
		total = total.add(a.Usage)
	}
	return total
}

// Metadata summarizes how a document was produced.
type Metadata struct {
	Attempts   int    `json:"attempts"`
	DurationMS int64  `json:"duration_ms"`
	ModelID    string `json:"model_id"`
	Usage      Usage  `json:"usage"`
}

// Document is the terminal output object: filled markup plus everything the
// caller needs to judge it. Constructed once, never mutated.
type Document struct {
	Markup     string             `json:"markup"`
	Content    Content            `json:"content"`
	Counts     map[string]int     `json:"character_counts"`
	Validation constraints.Result `json:"validation"`
	Metadata   Metadata           `json:"metadata"`
}

// Assemble bundles the orchestrator outcome with the filled markup.
func Assemble(outcome Outcome, markup string, counts map[string]int, total time.Duration) Document {
	return Document{
		Markup:     markup,
		Content:    outcome.Content,
		Counts:     counts,
		Validation: outcome.Validation,
		Metadata: Metadata{
			Attempts:   len(outcome.Attempts),
			DurationMS: total.Milliseconds(),
			ModelID:    outcome.ModelID,
			Usage:      outcome.TotalUsage(),
		},
	}
}
