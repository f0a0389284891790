package models

import (
	"context"
	"errors"
	"fmt"
	"os"

	genai "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiBackend implements Backend over Google's Generative AI API. The
// transcript is flattened into a single prompt; Gemini's own multi-turn
// chat sessions are unnecessary here because the caller already carries the
// history in the message list.
type GeminiBackend struct {
	Client *genai.Client
}

// NewGeminiBackend reads GOOGLE_API_KEY (GEMINI_API_KEY as a fallback) from
// the environment.
func NewGeminiBackend(ctx context.Context) (*GeminiBackend, error) {
	apiKey := os.Getenv("GOOGLE_API_KEY")
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if apiKey == "" {
		return nil, errors.New("missing GOOGLE_API_KEY or GEMINI_API_KEY")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("gemini init: %w", err)
	}
	return &GeminiBackend{Client: client}, nil
}

func (g *GeminiBackend) Complete(ctx context.Context, messages []Message, params Params) (string, error) {
	model := g.Client.GenerativeModel(params.Model)
	if params.Temperature > 0 {
		model.SetTemperature(params.Temperature)
	}
	if params.MaxTokens > 0 {
		model.SetMaxOutputTokens(int32(params.MaxTokens))
	}

	resp, err := model.GenerateContent(ctx, genai.Text(flattenMessages(messages)))
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", errors.New("gemini: empty response")
	}

	var out string
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			out += string(text)
		}
	}
	return out, nil
}

// Close releases the underlying API client.
func (g *GeminiBackend) Close() error {
	return g.Client.Close()
}

var _ Backend = (*GeminiBackend)(nil)
