package generativeAI

import (
	"context"
	"fmt"
	"os"

	"google.golang.org/genai"

	"github.com/FACorreiaa/go-trip-planner/internal/types"
)

const defaultModel = "gemini-2.0-flash"

// AIClient wraps the Gemini SDK client. It is constructed once at bootstrap
// and injected into the generator components; there is no lazily initialized
// global handle.
type AIClient struct {
	client *genai.Client
	model  string
}

// NewAIClient creates a Gemini client. Returns types.ErrModelUnavailable when
// no API credential is configured, so callers can fall back to the template
// generator instead of treating this as fatal.
func NewAIClient(ctx context.Context, model string) (*AIClient, error) {
	apiKey := os.Getenv("GOOGLE_GEMINI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("GOOGLE_GEMINI_API_KEY environment variable is not set: %w", types.ErrModelUnavailable)
	}
	if model == "" {
		model = defaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &AIClient{
		client: client,
		model:  model,
	}, nil
}

// GenerateContent runs a single-turn text completion and returns the raw
// response text. The context bounds the call; pass a deadline to enforce the
// generation timeout.
func (ai *AIClient) GenerateContent(ctx context.Context, prompt string, config *genai.GenerateContentConfig) (string, error) {
	result, err := ai.client.Models.GenerateContent(ctx, ai.model, genai.Text(prompt), config)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	return result.Text(), nil
}
