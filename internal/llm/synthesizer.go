// Package llm obtains workout plans from an external generative model.
package llm

import (
	"alcyxob/fitness-planner/internal/domain"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Provider identifies the model vendor.
type Provider string

const (
	ProviderOpenAI Provider = "openai"
	ProviderGemini Provider = "gemini"
	ProviderNone   Provider = "none"
)

// Default request parameters.
const (
	DefaultOpenAIModel = "gpt-4o-mini"
	DefaultGeminiModel = "gemini-2.0-flash"
	DefaultTemperature = 0.2
	DefaultMaxTokens   = 500
	DefaultTimeout     = 15 * time.Second
)

var (
	// ErrRemoteDisabled is returned when no provider is configured.
	ErrRemoteDisabled = errors.New("remote plan synthesis is disabled")
	// ErrContractViolation covers any reply that is not exactly a Plan.
	ErrContractViolation = errors.New("model reply violates the plan contract")
	// ErrUpstreamStatus is returned for non-success responses.
	ErrUpstreamStatus = errors.New("model API returned a non-success status")
)

// Synthesizer turns canonical answers into a plan. Implementations make a
// single attempt and report every failure as an error; partial plans are
// never returned.
type Synthesizer interface {
	Synthesize(ctx context.Context, answers domain.Answers) (*domain.Plan, error)
}

// Config selects and parameterizes a provider.
type Config struct {
	Provider    Provider
	APIKey      string
	Model       string
	BaseURL     string
	Timeout     time.Duration
	Temperature float64
	MaxTokens   int
}

// NewSynthesizer builds the configured provider. A missing API key or the
// "none" provider yields a synthesizer that always fails with
// ErrRemoteDisabled, which routes every request to the local fallback.
func NewSynthesizer(ctx context.Context, cfg Config) (Synthesizer, error) {
	provider := Provider(strings.ToLower(strings.TrimSpace(string(cfg.Provider))))
	if provider == "" {
		provider = ProviderOpenAI
	}
	if provider == ProviderNone || cfg.APIKey == "" {
		return DisabledSynthesizer{}, nil
	}
	// Zero is a valid, deterministic setting; only negatives fall back.
	if cfg.Temperature < 0 {
		cfg.Temperature = DefaultTemperature
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = DefaultMaxTokens
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	switch provider {
	case ProviderOpenAI:
		if cfg.Model == "" {
			cfg.Model = DefaultOpenAIModel
		}
		return NewOpenAISynthesizer(cfg), nil
	case ProviderGemini:
		if cfg.Model == "" {
			cfg.Model = DefaultGeminiModel
		}
		return NewGeminiSynthesizer(ctx, cfg)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s (supported: openai, gemini, none)", cfg.Provider)
	}
}

// DisabledSynthesizer always fails.
type DisabledSynthesizer struct{}

func (DisabledSynthesizer) Synthesize(context.Context, domain.Answers) (*domain.Plan, error) {
	return nil, ErrRemoteDisabled
}
