package models

import (
	"context"
	"fmt"
	"strings"
)

// NewBackend constructs a chat backend for the named provider.
func NewBackend(ctx context.Context, provider string) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(provider)) {
	case "openai":
		return NewOpenAIBackend(), nil
	case "anthropic", "claude":
		return NewAnthropicBackend(), nil
	case "gemini", "google":
		return NewGeminiBackend(ctx)
	case "ollama":
		return NewOllamaBackend()
	default:
		return nil, fmt.Errorf("unknown provider: %s", provider)
	}
}

// flattenMessages renders a transcript into a single prompt for backends
// whose API takes one text block per request.
func flattenMessages(messages []Message) string {
	var sb strings.Builder
	for i, msg := range messages {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		switch msg.Role {
		case RoleSystem:
			sb.WriteString(msg.Content)
		case RoleAssistant:
			sb.WriteString("Assistant: ")
			sb.WriteString(msg.Content)
		default:
			sb.WriteString("User: ")
			sb.WriteString(msg.Content)
		}
	}
	return sb.String()
}

// splitSystem separates leading/system entries from the conversational rest,
// for backends that take the system instruction out of band.
func splitSystem(messages []Message) (system string, rest []Message) {
	var parts []string
	for _, msg := range messages {
		if msg.Role == RoleSystem {
			parts = append(parts, msg.Content)
			continue
		}
		rest = append(rest, msg)
	}
	return strings.Join(parts, "\n\n"), rest
}
