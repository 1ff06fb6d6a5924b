package llm

import (
	"alcyxob/fitness-planner/internal/domain"
	"context"
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/genai"
)

// GeminiSynthesizer calls the Gemini API with a JSON response schema.
type GeminiSynthesizer struct {
	client      *genai.Client
	model       string
	temperature float32
	maxTokens   int32
}

// NewGeminiSynthesizer creates a Gemini-backed synthesizer.
func NewGeminiSynthesizer(ctx context.Context, cfg Config) (*GeminiSynthesizer, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	cc := &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: &http.Client{Timeout: timeout},
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions.BaseURL = cfg.BaseURL
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &GeminiSynthesizer{
		client:      client,
		model:       cfg.Model,
		temperature: float32(cfg.Temperature),
		maxTokens:   int32(cfg.MaxTokens),
	}, nil
}

// Synthesize makes one GenerateContent call and decodes the reply.
func (s *GeminiSynthesizer) Synthesize(ctx context.Context, answers domain.Answers) (*domain.Plan, error) {
	userPrompt, err := BuildUserPrompt(answers)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Models.GenerateContent(ctx, s.model, genai.Text(userPrompt), &genai.GenerateContentConfig{
		SystemInstruction:  genai.NewContentFromText(SystemPrompt, genai.RoleUser),
		Temperature:        genai.Ptr(s.temperature),
		MaxOutputTokens:    s.maxTokens,
		ResponseMIMEType:   "application/json",
		ResponseJsonSchema: PlanJSONSchema(),
	})
	if err != nil {
		var apiErr genai.APIError
		if errors.As(err, &apiErr) {
			return nil, fmt.Errorf("%w: %d: %s", ErrUpstreamStatus, apiErr.Code, apiErr.Message)
		}
		return nil, fmt.Errorf("gemini request failed: %w", err)
	}
	if len(resp.Candidates) > 0 && resp.Candidates[0].FinishReason == genai.FinishReasonMaxTokens {
		return nil, fmt.Errorf("%w: reply truncated at %d tokens", ErrContractViolation, s.maxTokens)
	}
	return DecodePlan(resp.Text())
}

var _ Synthesizer = (*GeminiSynthesizer)(nil)
