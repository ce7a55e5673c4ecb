package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"go.uber.org/zap"

	"slide_illustrator/config"
	"slide_illustrator/constraints"
	"slide_illustrator/generator"
	"slide_illustrator/server"
	"slide_illustrator/template"
)

func main() {
	configPath := flag.String("config", "config.json", "path to config.json")
	addr := flag.String("addr", "", "http listen address (overrides config.server_addr)")
	topic := flag.String("topic", "", "one-shot mode: generate a single diagram and print JSON")
	diagram := flag.String("diagram", "funnel", "one-shot mode: diagram family (pyramid, funnel, circles)")
	sections := flag.Int("sections", 4, "one-shot mode: number of levels/stages/circles")
	verbose := flag.Bool("v", false, "enable debug logs")
	flag.Parse()

	logger, err := buildLogger(*verbose)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	store, err := constraints.NewStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	templates, err := template.NewStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// One model configuration per diagram family, resolved once at startup
	// and never mutated afterwards.
	agents := make(map[generator.DiagramKind]*generator.Agent, 3)
	for _, kind := range []generator.DiagramKind{generator.KindPyramid, generator.KindFunnel, generator.KindCircles} {
		llm, err := buildLLM(cfg, cfg.ModelFor(string(kind)))
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		agent, err := generator.NewAgent(llm, store, logger)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		agents[kind] = agent
	}

	// One-shot CLI mode
	if *topic != "" {
		if err := runOnce(agents, store, templates, *diagram, *sections, *topic); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	srv, err := server.New(agents, templates, store, logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	listen := cfg.ServerAddr
	if *addr != "" {
		listen = *addr
	}
	if listen == "" {
		listen = ":8080"
	}
	logger.Info("starting web server", zap.String("addr", listen))
	if err := http.ListenAndServe(listen, srv.Routes()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func buildLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func buildLLM(cfg config.Config, model string) (generator.LLMClient, error) {
	if cfg.LLM == nil || cfg.LLM.Provider == "" {
		return nil, fmt.Errorf("llm config missing; please set llm.provider/model/api_key in config")
	}
	settings := &generator.LLMSettings{
		Provider: cfg.LLM.Provider,
		Model:    model,
		APIKey:   cfg.LLM.APIKey,
		BaseURL:  cfg.LLM.BaseURL,
	}
	switch cfg.LLM.Provider {
	case "openai":
		return generator.NewOpenAILLMFromConfig(settings)
	case "deepseek":
		// DeepSeek exposes an OpenAI-compatible endpoint; base_url is required.
		if cfg.LLM.BaseURL == "" {
			return nil, fmt.Errorf("llm provider deepseek requires base_url (OpenAI-compatible endpoint)")
		}
		return generator.NewOpenAILLMFromConfig(settings)
	case "gemini":
		return generator.NewGeminiLLMFromConfig(settings)
	case "anthropic":
		return generator.NewAnthropicLLMFromConfig(settings)
	case "mock":
		return generator.MockLLM{}, nil
	default:
		return nil, fmt.Errorf("llm provider %s not supported", cfg.LLM.Provider)
	}
}

func runOnce(agents map[generator.DiagramKind]*generator.Agent, store *constraints.Store, templates *template.Store, diagram string, sections int, topic string) error {
	kind := generator.DiagramKind(diagram)
	agent, ok := agents[kind]
	if !ok {
		return fmt.Errorf("unknown diagram family %q", diagram)
	}
	variant := fmt.Sprintf("%s_%d", kind, sections)
	tpl, err := templates.Get(variant)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	start := time.Now()
	outcome, err := agent.Generate(ctx, generator.Spec{
		Kind:       kind,
		Variant:    variant,
		Sections:   sections,
		Topic:      topic,
		Tone:       "professional",
		Audience:   "general",
		MaxRetries: generator.DefaultMaxRetries,
	})
	if err != nil {
		return err
	}

	theme, _ := template.LookupTheme("")
	size, _ := template.LookupSize("")
	tokens := make(map[string]string, len(outcome.Content)+10)
	for k, v := range theme.Tokens() {
		tokens[k] = v
	}
	for k, v := range size.Tokens() {
		tokens[k] = v
	}
	for k, v := range outcome.Content {
		tokens[k] = v
	}
	markup := template.Fill(tpl, tokens)

	counts, err := constraints.Counts(store, variant, outcome.Content)
	if err != nil {
		return err
	}
	doc := generator.Assemble(outcome, markup, counts, time.Since(start))

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
