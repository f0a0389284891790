package models

import (
	"context"
	"errors"
	"fmt"
	"os"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIBackend talks to the OpenAI chat-completions API (or any compatible
// endpoint via OPENAI_BASE_URL).
type OpenAIBackend struct {
	Client *openai.Client
}

// NewOpenAIBackend reads OPENAI_API_KEY (OPENAI_KEY as a fallback) from the
// environment.
func NewOpenAIBackend() *OpenAIBackend {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_KEY")
	}
	if base := os.Getenv("OPENAI_BASE_URL"); base != "" {
		cfg := openai.DefaultConfig(apiKey)
		cfg.BaseURL = base
		return &OpenAIBackend{Client: openai.NewClientWithConfig(cfg)}
	}
	return &OpenAIBackend{Client: openai.NewClient(apiKey)}
}

func (o *OpenAIBackend) Complete(ctx context.Context, messages []Message, params Params) (string, error) {
	req := openai.ChatCompletionRequest{
		Model:       params.Model,
		Temperature: params.Temperature,
		MaxTokens:   params.MaxTokens,
	}
	for _, msg := range messages {
		req.Messages = append(req.Messages, openai.ChatCompletionMessage{
			Role:    msg.Role,
			Content: msg.Content,
		})
	}

	resp, err := o.Client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("openai completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai: no completion choices")
	}
	return resp.Choices[0].Message.Content, nil
}

// Probe lists models as a cheap reachability and credentials check.
func (o *OpenAIBackend) Probe(ctx context.Context) error {
	_, err := o.Client.ListModels(ctx)
	return err
}

var _ Backend = (*OpenAIBackend)(nil)
var _ Prober = (*OpenAIBackend)(nil)
