// Package config loads the service configuration from a JSON file at
// startup. Everything here is resolved once and read-only afterwards.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// LLMConfig selects the generative model provider and credentials.
type LLMConfig struct {
	Provider string `json:"provider"`
	Model    string `json:"model"`
	APIKey   string `json:"api_key,omitempty"`
	BaseURL  string `json:"base_url,omitempty"`
}

// Config holds the whole service configuration.
//
// Models optionally overrides the model id per diagram family ("pyramid",
// "funnel", "circles"); families without an override use llm.model. The
// matching LLM_PYRAMID / LLM_FUNNEL / LLM_CIRCLES environment variables take
// precedence over the file; LLM_CONCENTRIC_CIRCLES is accepted as an alias
// for the circles family.
type Config struct {
	ServerAddr string            `json:"server_addr,omitempty"`
	LLM        *LLMConfig        `json:"llm,omitempty"`
	Models     map[string]string `json:"models,omitempty"`
}

// Load reads JSON config from disk.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	if cfg.LLM == nil || cfg.LLM.Provider == "" {
		return Config{}, errors.New("config must include llm.provider")
	}
	if cfg.LLM.APIKey == "" && cfg.LLM.Provider != "mock" {
		cfg.LLM.APIKey = apiKeyFromEnv(cfg.LLM.Provider)
	}
	return cfg, nil
}

// ModelFor resolves the model id for one diagram family: env override first,
// then the models map, then the default model.
func (c Config) ModelFor(family string) string {
	for _, key := range modelEnvKeys(family) {
		if v := os.Getenv(key); v != "" {
			return v
		}
	}
	if v, ok := c.Models[family]; ok && v != "" {
		return v
	}
	if c.LLM != nil {
		return c.LLM.Model
	}
	return ""
}

func modelEnvKeys(family string) []string {
	keys := []string{"LLM_" + strings.ToUpper(family)}
	if family == "circles" {
		keys = append(keys, "LLM_CONCENTRIC_CIRCLES")
	}
	return keys
}

func apiKeyFromEnv(provider string) string {
	switch provider {
	case "openai", "deepseek":
		return os.Getenv("OPENAI_API_KEY")
	case "gemini":
		return os.Getenv("GEMINI_API_KEY")
	case "anthropic":
		return os.Getenv("ANTHROPIC_API_KEY")
	default:
		return os.Getenv(fmt.Sprintf("%s_API_KEY", strings.ToUpper(provider)))
	}
}
