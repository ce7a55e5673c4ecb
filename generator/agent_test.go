package generator

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedLLM replays a fixed sequence of replies or errors.
type scriptedLLM struct {
	replies []string
	errs    []error
	calls   int
}

func (s *scriptedLLM) Complete(_ context.Context, _ Prompt) (Completion, error) {
	i := s.calls
	s.calls++
	if i < len(s.errs) && s.errs[i] != nil {
		return Completion{}, &ModelError{Provider: "scripted", Err: s.errs[i]}
	}
	return Completion{
		Text:    s.replies[i],
		ModelID: "scripted-model",
		Usage:   Usage{PromptTokens: 100, CompletionTokens: 40},
	}, nil
}

// validReply produces an in-range JSON reply for the spec's variant.
func validReply(t *testing.T, spec Spec) string {
	t.Helper()
	prompt, err := BuildPrompt(spec, testStore(t))
	require.NoError(t, err)
	completion, err := MockLLM{}.Complete(context.Background(), prompt)
	require.NoError(t, err)
	return completion.Text
}

// invalidReply breaks one field of an otherwise valid reply.
func invalidReply(t *testing.T, spec Spec) string {
	t.Helper()
	var content map[string]string
	require.NoError(t, json.Unmarshal([]byte(validReply(t, spec)), &content))
	content["stage_1_name"] = "Go" // below the 8 char minimum
	raw, err := json.Marshal(content)
	require.NoError(t, err)
	return string(raw)
}

func agentSpec() Spec {
	return Spec{
		Kind:     KindFunnel,
		Variant:  "funnel_3",
		Sections: 3,
		Topic:    "Sales Pipeline",
		Tone:     "professional",
		Audience: "general",
	}
}

func newTestAgent(t *testing.T, llm LLMClient) *Agent {
	t.Helper()
	agent, err := NewAgent(llm, testStore(t), nil)
	require.NoError(t, err)
	return agent
}

func TestGenerateStopsOnFirstValidAttempt(t *testing.T) {
	spec := agentSpec()
	spec.MaxRetries = 2
	llm := &scriptedLLM{replies: []string{validReply(t, spec)}}

	outcome, err := newTestAgent(t, llm).Generate(context.Background(), spec)
	require.NoError(t, err)
	assert.Equal(t, 1, llm.calls)
	assert.True(t, outcome.Validation.Valid)
	assert.Len(t, outcome.Attempts, 1)
	assert.Equal(t, "scripted-model", outcome.ModelID)
}

func TestGenerateRecoversAfterInvalidAttempts(t *testing.T) {
	spec := agentSpec()
	spec.MaxRetries = 2
	bad := invalidReply(t, spec)
	llm := &scriptedLLM{replies: []string{bad, bad, validReply(t, spec)}}

	outcome, err := newTestAgent(t, llm).Generate(context.Background(), spec)
	require.NoError(t, err)
	assert.Equal(t, 3, llm.calls)
	assert.True(t, outcome.Validation.Valid)
	require.Len(t, outcome.Attempts, 3)
	assert.False(t, outcome.Attempts[0].Validation.Valid)
	assert.False(t, outcome.Attempts[1].Validation.Valid)
	assert.True(t, outcome.Attempts[2].Validation.Valid)
	assert.Equal(t, 2, outcome.Attempts[2].Index)
}

func TestGenerateExhaustionDegradesGracefully(t *testing.T) {
	spec := agentSpec()
	spec.MaxRetries = 2
	bad := invalidReply(t, spec)
	llm := &scriptedLLM{replies: []string{bad, bad, bad}}

	outcome, err := newTestAgent(t, llm).Generate(context.Background(), spec)
	require.NoError(t, err)
	// Retry bound: at most MaxRetries+1 invocations.
	assert.Equal(t, 3, llm.calls)
	assert.False(t, outcome.Validation.Valid)
	assert.Len(t, outcome.Attempts, 3)
	assert.NotEmpty(t, outcome.Content["stage_2_name"])
}

func TestGenerateZeroRetriesMakesSingleAttempt(t *testing.T) {
	spec := agentSpec()
	spec.MaxRetries = 0
	llm := &scriptedLLM{replies: []string{invalidReply(t, spec)}}

	outcome, err := newTestAgent(t, llm).Generate(context.Background(), spec)
	require.NoError(t, err)
	assert.Equal(t, 1, llm.calls)
	assert.False(t, outcome.Validation.Valid)
	assert.Len(t, outcome.Attempts, 1)
}

func TestGenerateModelErrorAbortsWithoutRetry(t *testing.T) {
	spec := agentSpec()
	spec.MaxRetries = 2
	llm := &scriptedLLM{errs: []error{errors.New("connection reset")}}

	_, err := newTestAgent(t, llm).Generate(context.Background(), spec)
	require.Error(t, err)
	assert.True(t, IsModelError(err))
	assert.Equal(t, 1, llm.calls)
}

func TestGenerateUnparsableReplyIsModelError(t *testing.T) {
	spec := agentSpec()
	spec.MaxRetries = 2
	llm := &scriptedLLM{replies: []string{"I'd rather write a poem"}}

	_, err := newTestAgent(t, llm).Generate(context.Background(), spec)
	require.Error(t, err)
	assert.True(t, IsModelError(err))
	assert.Equal(t, 1, llm.calls)
}

func TestGenerateSumsUsageAcrossAttempts(t *testing.T) {
	spec := agentSpec()
	spec.MaxRetries = 1
	bad := invalidReply(t, spec)
	llm := &scriptedLLM{replies: []string{bad, bad}}

	outcome, err := newTestAgent(t, llm).Generate(context.Background(), spec)
	require.NoError(t, err)
	assert.Equal(t, Usage{PromptTokens: 200, CompletionTokens: 80}, outcome.TotalUsage())
}

func TestMockLLMSatisfiesConstraints(t *testing.T) {
	spec := agentSpec()
	outcome, err := newTestAgent(t, MockLLM{}).Generate(context.Background(), spec)
	require.NoError(t, err)
	assert.True(t, outcome.Validation.Valid, "violations: %v", outcome.Validation.Violations)
}
