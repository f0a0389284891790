package models

import (
	"context"
	"os"
	"strings"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	anthropicopt "github.com/anthropics/anthropic-sdk-go/option"
)

const defaultAnthropicMaxTokens = 1024

// AnthropicBackend implements Backend over Anthropic's Messages API.
type AnthropicBackend struct {
	Client *anthropic.Client
}

// NewAnthropicBackend reads ANTHROPIC_API_KEY from the environment.
func NewAnthropicBackend() *AnthropicBackend {
	cl := anthropic.NewClient(
		anthropicopt.WithAPIKey(os.Getenv("ANTHROPIC_API_KEY")),
	)
	return &AnthropicBackend{Client: &cl}
}

func (a *AnthropicBackend) Complete(ctx context.Context, messages []Message, params Params) (string, error) {
	system, rest := splitSystem(messages)

	var turns []anthropic.MessageParam
	for _, msg := range rest {
		block := anthropic.NewTextBlock(msg.Content)
		if msg.Role == RoleAssistant {
			turns = append(turns, anthropic.NewAssistantMessage(block))
			continue
		}
		turns = append(turns, anthropic.NewUserMessage(block))
	}
	// The Messages API requires at least one turn; promote a lone system
	// instruction to a user turn.
	if len(turns) == 0 && system != "" {
		turns = append(turns, anthropic.NewUserMessage(anthropic.NewTextBlock(system)))
		system = ""
	}

	maxTokens := params.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultAnthropicMaxTokens
	}

	req := anthropic.MessageNewParams{
		Model:     anthropic.Model(params.Model),
		MaxTokens: int64(maxTokens),
		Messages:  turns,
	}
	if system != "" {
		req.System = []anthropic.TextBlockParam{{Text: system}}
	}

	msg, err := a.Client.Messages.New(ctx, req)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for _, cb := range msg.Content {
		if tb, ok := cb.AsAny().(anthropic.TextBlock); ok {
			b.WriteString(tb.Text)
		}
	}
	return b.String(), nil
}

var _ Backend = (*AnthropicBackend)(nil)
