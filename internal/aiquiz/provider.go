package aiquiz

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"google.golang.org/genai"

	"github.com/saulo-duarte/quizforge/internal/config"
)

// Oracle is a text-generation service. Implementations return ErrOracleUnavailable
// (wrapped) for transport, quota and timeout failures and for empty responses.
type Oracle interface {
	Generate(ctx context.Context, prompt string, expectJSON bool) (string, error)
}

type OracleConfig struct {
	Provider string
	APIKey   string
	Model    string
	Timeout  time.Duration
}

// NewOracle builds the configured provider. A missing credential is not an error:
// the returned oracle rejects every call with ErrOracleNotConfigured.
func NewOracle(ctx context.Context, cfg OracleConfig) (Oracle, error) {
	if cfg.APIKey == "" {
		config.WithContext(ctx).Warnf("No API key for oracle provider %q, generation is disabled", cfg.Provider)
		return unconfiguredOracle{provider: cfg.Provider}, nil
	}

	var (
		oracle Oracle
		err    error
	)
	switch cfg.Provider {
	case config.ProviderOpenAI:
		oracle = NewOpenAIOracle(cfg.APIKey, cfg.Model)
	case config.ProviderGemini, "":
		oracle, err = NewGeminiOracle(ctx, cfg.APIKey, cfg.Model)
	default:
		return nil, fmt.Errorf("unknown oracle provider %q", cfg.Provider)
	}
	if err != nil {
		return nil, err
	}

	return WithTimeout(oracle, cfg.Timeout), nil
}

type geminiOracle struct {
	client *genai.Client
	model  string
}

func NewGeminiOracle(ctx context.Context, apiKey, model string) (Oracle, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create Gemini client: %w", err)
	}
	return &geminiOracle{client: client, model: model}, nil
}

func (p *geminiOracle) Generate(ctx context.Context, prompt string, expectJSON bool) (string, error) {
	log := config.WithContext(ctx)

	var genCfg *genai.GenerateContentConfig
	if expectJSON {
		genCfg = &genai.GenerateContentConfig{ResponseMIMEType: "application/json"}
	}

	result, err := p.client.Models.GenerateContent(ctx, p.model, genai.Text(prompt), genCfg)
	if err != nil {
		log.WithError(err).Error("Gemini content generation failed")
		return "", fmt.Errorf("%w: %w", ErrOracleUnavailable, err)
	}

	raw := strings.TrimSpace(result.Text())
	log.Debugf("[AIQUIZ] Raw Gemini response:\n%s", raw)
	if raw == "" {
		return "", fmt.Errorf("%w: empty response from model", ErrOracleUnavailable)
	}
	return raw, nil
}

type openAIOracle struct {
	client *openai.Client
	model  string
}

func NewOpenAIOracle(apiKey, model string) Oracle {
	return &openAIOracle{client: openai.NewClient(apiKey), model: model}
}

func (p *openAIOracle) Generate(ctx context.Context, prompt string, expectJSON bool) (string, error) {
	log := config.WithContext(ctx)

	req := openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	}
	if expectJSON {
		// JSON mode only emits objects; the parser unwraps the array field.
		req.Messages = append([]openai.ChatCompletionMessage{{
			Role:    openai.ChatMessageRoleSystem,
			Content: "Reply with a JSON object that holds the requested JSON array in a single field named \"items\".",
		}}, req.Messages...)
		req.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	resp, err := p.client.CreateChatCompletion(ctx, req)
	if err != nil {
		log.WithError(err).Error("OpenAI chat completion failed")
		return "", fmt.Errorf("%w: %w", ErrOracleUnavailable, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices in response", ErrOracleUnavailable)
	}

	raw := strings.TrimSpace(resp.Choices[0].Message.Content)
	log.Debugf("[AIQUIZ] Raw OpenAI response:\n%s", raw)
	if raw == "" {
		return "", fmt.Errorf("%w: empty response from model", ErrOracleUnavailable)
	}
	return raw, nil
}

type unconfiguredOracle struct {
	provider string
}

func (o unconfiguredOracle) Generate(context.Context, string, bool) (string, error) {
	return "", fmt.Errorf("%w: missing API key for %s", ErrOracleNotConfigured, o.provider)
}

type timeoutOracle struct {
	next    Oracle
	timeout time.Duration
}

// WithTimeout bounds every call to next. Expiry is reported as ErrOracleUnavailable.
func WithTimeout(next Oracle, timeout time.Duration) Oracle {
	if timeout <= 0 {
		return next
	}
	return &timeoutOracle{next: next, timeout: timeout}
}

func (o *timeoutOracle) Generate(ctx context.Context, prompt string, expectJSON bool) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	out, err := o.next.Generate(ctx, prompt, expectJSON)
	if err != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) && !errors.Is(err, ErrOracleUnavailable) {
		return "", fmt.Errorf("%w: timed out after %s", ErrOracleUnavailable, o.timeout)
	}
	return out, err
}
