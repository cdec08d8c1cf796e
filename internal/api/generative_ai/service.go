package generativeAI

import (
	"context"
	"fmt"
	"os"

	"google.golang.org/genai"

	"github.com/FACorreiaa/go-tour-chapters/app/observability/metrics"
)

const defaultModel = "gemini-2.0-flash"

// Oracle is the external text-generation service the pipeline depends on.
// Every caller treats it as unreliable and pairs each request with a fallback.
type Oracle interface {
	GenerateResponse(ctx context.Context, prompt string, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

var _ Oracle = (*AIClient)(nil)

type AIClient struct {
	client  *genai.Client
	model   string
	metrics *metrics.AppMetrics
}

func NewAIClient(ctx context.Context) (*AIClient, error) {
	apiKey := os.Getenv("GOOGLE_GEMINI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("GOOGLE_GEMINI_API_KEY environment variable is not set")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	return &AIClient{
		client: client,
		model:  defaultModel,
	}, nil
}

// NewAIClientWithModel overrides the default model, e.g. from config.
func NewAIClientWithModel(ctx context.Context, model string) (*AIClient, error) {
	ai, err := NewAIClient(ctx)
	if err != nil {
		return nil, err
	}
	if model != "" {
		ai.model = model
	}
	return ai, nil
}

// WithMetrics attaches application metrics so oracle calls are counted. A nil
// receiver field keeps the client usable in tests.
func (ai *AIClient) WithMetrics(m *metrics.AppMetrics) *AIClient {
	ai.metrics = m
	return ai
}

func (ai *AIClient) GenerateResponse(ctx context.Context, prompt string, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	if ai.metrics != nil {
		ai.metrics.OracleCallsTotal.Add(ctx, 1)
	}
	chat, err := ai.client.Chats.Create(ctx, ai.model, config, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat: %w", err)
	}
	return chat.SendMessage(ctx, genai.Part{Text: prompt})
}

// ResponseText extracts the first non-empty text part of a response. An empty
// string means the oracle returned nothing usable and the caller should fall
// back.
func ResponseText(response *genai.GenerateContentResponse) string {
	if response == nil {
		return ""
	}
	for _, candidate := range response.Candidates {
		if candidate.Content != nil && len(candidate.Content.Parts) > 0 {
			return candidate.Content.Parts[0].Text
		}
	}
	return ""
}
