package generator

import (
	"context"
	"errors"
	"strings"

	"google.golang.org/genai"
)

// GeminiLLM implements LLMClient using Google's genai SDK. JSON response MIME
// is requested so the model returns a bare object without prose or fences.
type GeminiLLM struct {
	client *genai.Client
	model  string
}

func NewGeminiLLMFromConfig(cfg *LLMSettings) (*GeminiLLM, error) {
	if cfg == nil {
		return nil, errors.New("llm config is nil")
	}
	if cfg.APIKey == "" {
		return nil, errors.New("gemini api key missing; provide llm.api_key")
	}
	if cfg.Model == "" {
		return nil, errors.New("llm model is required")
	}
	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey: cfg.APIKey,
	})
	if err != nil {
		return nil, err
	}
	return &GeminiLLM{client: client, model: cfg.Model}, nil
}

func (g *GeminiLLM) Complete(ctx context.Context, prompt Prompt) (Completion, error) {
	cfg := &genai.GenerateContentConfig{
		ResponseMIMEType:  "application/json",
		SystemInstruction: genai.NewContentFromText(prompt.System, genai.RoleUser),
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt.User), cfg)
	if err != nil {
		return Completion{}, &ModelError{Provider: "gemini", Err: err}
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return Completion{}, &ModelError{Provider: "gemini", Err: errors.New("empty response")}
	}

	var usage Usage
	if resp.UsageMetadata != nil {
		usage.PromptTokens = int(resp.UsageMetadata.PromptTokenCount)
		usage.CompletionTokens = int(resp.UsageMetadata.CandidatesTokenCount)
	}

	return Completion{Text: text, ModelID: g.model, Usage: usage}, nil
}
