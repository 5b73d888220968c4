package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"golang.org/x/time/rate"
)

var (
	ErrMissingAPIKey     = errors.New("llm api key is not configured")
	ErrEmptyResponse     = errors.New("empty llm response")
	ErrMalformedResponse = errors.New("malformed llm response")
)

type Config struct {
	BaseURL        string
	APIKey         string
	Model          string
	Temperature    float64
	RequestsPerSec float64
	Burst          int
	Timeout        time.Duration
}

// Assistant wraps a chat model with the study prompts. All calls share one rate limiter.
type Assistant struct {
	llm         llms.Model
	limiter     *rate.Limiter
	temperature float64
	timeout     time.Duration
}

func New(cfg Config) (*Assistant, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrMissingAPIKey
	}
	llm, err := openai.New(
		openai.WithBaseURL(cfg.BaseURL),
		openai.WithToken(strings.TrimPrefix(cfg.APIKey, "Bearer ")),
		openai.WithModel(cfg.Model),
	)
	if err != nil {
		return nil, fmt.Errorf("create llm client failed: %w", err)
	}
	return NewWithModel(llm, cfg), nil
}

// NewWithModel builds an Assistant around an existing model; connection fields of cfg are ignored.
func NewWithModel(llm llms.Model, cfg Config) *Assistant {
	limit := rate.Inf
	if cfg.RequestsPerSec > 0 {
		limit = rate.Limit(cfg.RequestsPerSec)
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}
	return &Assistant{
		llm:         llm,
		limiter:     rate.NewLimiter(limit, burst),
		temperature: cfg.Temperature,
		timeout:     cfg.Timeout,
	}
}

// complete sends one system+user exchange in JSON mode and returns the raw reply text.
func (a *Assistant) complete(ctx context.Context, system, user string) (string, error) {
	if err := a.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("wait for llm rate limit failed: %w", err)
	}
	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	start := time.Now()
	resp, err := a.llm.GenerateContent(ctx,
		[]llms.MessageContent{
			llms.TextParts(llms.ChatMessageTypeSystem, system),
			llms.TextParts(llms.ChatMessageTypeHuman, user),
		},
		llms.WithTemperature(a.temperature),
		llms.WithJSONMode(),
	)
	if err != nil {
		return "", fmt.Errorf("llm request failed: %w", err)
	}
	if resp == nil || len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Content) == "" {
		return "", ErrEmptyResponse
	}
	log.Debug().Dur("elapsed", time.Since(start)).Int("prompt_chars", len(user)).Msg("llm call finished")
	return resp.Choices[0].Content, nil
}
