package generator

import (
	"context"
	"errors"
	"strings"

	anthropic "github.com/liushuangls/go-anthropic/v2"
)

// AnthropicLLM implements LLMClient using the go-anthropic SDK.
type AnthropicLLM struct {
	client *anthropic.Client
	model  string
}

func NewAnthropicLLMFromConfig(cfg *LLMSettings) (*AnthropicLLM, error) {
	if cfg == nil {
		return nil, errors.New("llm config is nil")
	}
	if cfg.APIKey == "" {
		return nil, errors.New("anthropic api key missing; provide llm.api_key")
	}
	if cfg.Model == "" {
		return nil, errors.New("llm model is required")
	}
	var opts []anthropic.ClientOption
	if cfg.BaseURL != "" {
		opts = append(opts, anthropic.WithBaseURL(cfg.BaseURL))
	}
	return &AnthropicLLM{client: anthropic.NewClient(cfg.APIKey, opts...), model: cfg.Model}, nil
}

func (a *AnthropicLLM) Complete(ctx context.Context, prompt Prompt) (Completion, error) {
	resp, err := a.client.CreateMessages(ctx, anthropic.MessagesRequest{
		Model:     anthropic.Model(a.model),
		System:    prompt.System,
		MaxTokens: 2048,
		Messages: []anthropic.Message{
			anthropic.NewUserTextMessage(prompt.User),
		},
	})
	if err != nil {
		return Completion{}, &ModelError{Provider: "anthropic", Err: err}
	}

	text := strings.TrimSpace(resp.GetFirstContentText())
	if text == "" {
		return Completion{}, &ModelError{Provider: "anthropic", Err: errors.New("empty response")}
	}

	return Completion{
		Text:    text,
		ModelID: a.model,
		Usage: Usage{
			PromptTokens:     resp.Usage.InputTokens,
			CompletionTokens: resp.Usage.OutputTokens,
		},
	}, nil
}
