package generator

import (
	"context"
	"encoding/json"
	"strings"
)

// MockLLM is a local stand-in that needs no external model. It reads the
// expected output shape from the prompt and produces values that land inside
// each field's character budget, so the full pipeline can run offline.
type MockLLM struct{}

var mockWords = []string{
	"Focused", "strategy", "drives", "steady", "growth", "across", "teams",
	"with", "clear", "practical", "measurable", "outcomes",
}

func (m MockLLM) Complete(_ context.Context, prompt Prompt) (Completion, error) {
	content := make(map[string]string, len(prompt.Shape))
	for _, shape := range prompt.Shape {
		content[shape.Name] = mockText(shape.Min, shape.Max)
	}
	raw, err := json.Marshal(content)
	if err != nil {
		return Completion{}, &ModelError{Provider: "mock", Err: err}
	}
	return Completion{
		Text:    string(raw),
		ModelID: "mock",
		Usage:   Usage{PromptTokens: len(prompt.User) / 4, CompletionTokens: len(raw) / 4},
	}, nil
}

// mockText builds a deterministic phrase whose length sits midway in the
// inclusive [min, max] budget.
func mockText(min, max int) string {
	target := (min + max) / 2
	if target < 1 {
		target = 1
	}

	var sb strings.Builder
	for i := 0; sb.Len() < target; i++ {
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(mockWords[i%len(mockWords)])
	}
	s := sb.String()[:target]

	// A trailing space would be trimmed during parsing and could drop the
	// value below min.
	s = strings.TrimRight(s, " ")
	for len(s) < target {
		s += "x"
	}
	return s
}
