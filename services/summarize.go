package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/prompts"

	"github.com/rpupo63/blog-interactions-backend/config"
	"github.com/rpupo63/blog-interactions-backend/errs"
)

// Summarizer turns post content into a short summary.
type Summarizer interface {
	Summarize(ctx context.Context, content string) (string, error)
}

var summaryPrompt = prompts.NewPromptTemplate(
	"请概括一下这篇文章的内容：\n\n{{.content}}\n",
	[]string{"content"},
)

// ModelSummarizer calls a text-generation model through langchaingo.
type ModelSummarizer struct {
	llm         llms.Model
	model       string
	maxTokens   int
	temperature float64
}

// NewModelSummarizer wraps an already constructed model.
func NewModelSummarizer(llm llms.Model, cfg config.AI) *ModelSummarizer {
	return &ModelSummarizer{
		llm:         llm,
		model:       cfg.Model,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
	}
}

// NewSummarizer builds the model client selected by cfg.Provider.
// It returns nil, nil when no provider is configured.
func NewSummarizer(cfg config.AI) (*ModelSummarizer, error) {
	var (
		llm llms.Model
		err error
	)

	switch cfg.Provider {
	case "":
		log.Warn().Msg("AI_PROVIDER not set, summary generation disabled")
		return nil, nil
	case "openai":
		if cfg.APIKey == "" {
			return nil, errs.NewConfigMissingError("AI_API_KEY")
		}
		opts := []openai.Option{
			openai.WithToken(cfg.APIKey),
			openai.WithModel(cfg.Model),
		}
		if cfg.BaseURL != "" {
			opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
		}
		llm, err = openai.New(opts...)
	case "ollama":
		opts := []ollama.Option{ollama.WithModel(cfg.Model)}
		if cfg.BaseURL != "" {
			opts = append(opts, ollama.WithServerURL(cfg.BaseURL))
		}
		llm, err = ollama.New(opts...)
	default:
		return nil, errs.NewConfigInvalidError("AI_PROVIDER", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("create %s client: %w", cfg.Provider, err)
	}

	log.Info().Str("provider", cfg.Provider).Str("model", cfg.Model).Msg("Summary model configured")
	return NewModelSummarizer(llm, cfg), nil
}

// Summarize renders the prompt for content and returns the model's completion.
func (s *ModelSummarizer) Summarize(ctx context.Context, content string) (string, error) {
	prompt, err := summaryPrompt.Format(map[string]any{"content": content})
	if err != nil {
		return "", fmt.Errorf("format summary prompt: %w", err)
	}

	completion, err := llms.GenerateFromSinglePrompt(ctx, s.llm, prompt,
		llms.WithMaxTokens(s.maxTokens),
		llms.WithTemperature(s.temperature),
	)
	if err != nil {
		return "", errs.NewModelError(s.model, err)
	}

	completion = strings.TrimSpace(completion)
	if completion == "" {
		return "", errs.NewModelError(s.model, errs.ErrEmptyCompletion)
	}
	return completion, nil
}
