package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
	"github.com/tmc/langchaingo/llms/openai"
)

const (
	DefaultMaxTokens   = 500
	DefaultTemperature = 0.7

	ProviderOpenAI   = "openai"
	ProviderGoogleAI = "googleai"

	DefaultOpenAIModel   = "gpt-3.5-turbo"
	DefaultGoogleAIModel = "gemini-1.5-flash"
)

// ChatCompleter sends one system prompt plus one visitor message to a
// language model and returns the first reply
type ChatCompleter struct {
	model       llms.Model
	service     string
	maxTokens   int
	temperature float64
	logger      zerolog.Logger
}

func NewChatCompleter(model llms.Model, service string) *ChatCompleter {
	if service == "" {
		service = "OpenAI"
	}
	return &ChatCompleter{
		model:       model,
		service:     service,
		maxTokens:   DefaultMaxTokens,
		temperature: DefaultTemperature,
		logger:      log.With().Str("component", "chatCompleter").Logger(),
	}
}

// Complete makes exactly one upstream call. Upstream failures come back as
// *errs.ApiErr classified by cause.
func (c *ChatCompleter) Complete(ctx context.Context, systemPrompt, userMessage string) (string, error) {
	if c == nil || c.model == nil {
		return "", errs.NewServiceUnavailableError("Chat assistant")
	}

	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, systemPrompt),
		llms.TextParts(llms.ChatMessageTypeHuman, userMessage),
	}

	resp, err := c.model.GenerateContent(ctx, messages,
		llms.WithMaxTokens(c.maxTokens),
		llms.WithTemperature(c.temperature),
	)
	if err != nil {
		c.logger.Error().Err(err).Msg("completion request failed")
		return "", classifyCompletionError(c.service, err)
	}

	if resp == nil || len(resp.Choices) == 0 || resp.Choices[0] == nil {
		return "", errs.NewEmptyCompletionError()
	}
	content := resp.Choices[0].Content
	if strings.TrimSpace(content) == "" {
		return "", errs.NewEmptyCompletionError()
	}
	return content, nil
}

func classifyCompletionError(service string, err error) error {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "insufficient_quota"),
		strings.Contains(msg, "exceeded your current quota"),
		strings.Contains(msg, "resource_exhausted"):
		return errs.NewBillingQuotaError(service)
	case strings.Contains(msg, "invalid_api_key"),
		strings.Contains(msg, "incorrect api key"),
		strings.Contains(msg, "api key not valid"),
		strings.Contains(msg, "status code: 401"):
		return errs.NewInvalidAPIKeyError(service)
	default:
		return errs.NewCompletionError(err)
	}
}

// NewCompletionModel builds the langchaingo client for the configured provider
func NewCompletionModel(ctx context.Context, provider, apiKey, model string) (llms.Model, string, error) {
	if apiKey == "" {
		return nil, "", errs.NewEnvironmentVariableError(apiKeyVariable(provider))
	}

	switch strings.ToLower(provider) {
	case "", ProviderOpenAI:
		if model == "" {
			model = DefaultOpenAIModel
		}
		llm, err := openai.New(openai.WithToken(apiKey), openai.WithModel(model))
		if err != nil {
			return nil, "", fmt.Errorf("error creating openai client: %w", err)
		}
		return llm, "OpenAI", nil
	case ProviderGoogleAI:
		if model == "" {
			model = DefaultGoogleAIModel
		}
		llm, err := googleai.New(ctx, googleai.WithAPIKey(apiKey), googleai.WithDefaultModel(model))
		if err != nil {
			return nil, "", fmt.Errorf("error creating googleai client: %w", err)
		}
		return llm, "Google AI", nil
	default:
		return nil, "", errs.NewConfigError("LLM_PROVIDER", fmt.Errorf("unknown provider %q", provider))
	}
}

func apiKeyVariable(provider string) string {
	if strings.ToLower(provider) == ProviderGoogleAI {
		return "GOOGLE_API_KEY"
	}
	return "OPENAI_API_KEY"
}
