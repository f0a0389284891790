package assistant

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/pagepilot-ai/pagepilot/pkg/models"
	"go.uber.org/zap"
)

var thinkSpanPattern = regexp.MustCompile(`(?s)<think>.*?</think>`)

// Driver runs one conversational turn: detect tool intents in the latest
// message, execute them, splice the results back as a synthetic system
// message, and forward the extended transcript to the backend.
type Driver struct {
	detector *Detector
	invoker  *Invoker
	backend  models.Backend
	params   models.Params
	log      *zap.Logger
}

// NewDriver wires a driver over the shared registry and a backend.
func NewDriver(registry *Registry, backend models.Backend, params models.Params, log *zap.Logger) *Driver {
	if log == nil {
		log = zap.NewNop()
	}
	return &Driver{
		detector: NewDetector(registry, log),
		invoker:  NewInvoker(registry, log),
		backend:  backend,
		params:   params,
		log:      log,
	}
}

// Respond processes the transcript ending in the most recent message.
// Detection runs over that last message only, never the full history. The
// backend's reply is stripped of reasoning spans unconditionally, whether or
// not tools ran.
func (d *Driver) Respond(ctx context.Context, messages []models.Message) (string, error) {
	if len(messages) == 0 {
		return "", errors.New("message history is empty")
	}

	last := messages[len(messages)-1]
	if calls := d.detector.Detect(last.Content); len(calls) > 0 {
		d.log.Debug("executing detected tool calls", zap.Int("count", len(calls)))
		results := d.invoker.ProcessChain(ctx, calls)

		extended := make([]models.Message, len(messages), len(messages)+1)
		copy(extended, messages)
		messages = append(extended, models.Message{
			Role:    models.RoleSystem,
			Content: strings.Join(results, "\n"),
		})
	}

	reply, err := d.backend.Complete(ctx, messages, d.params)
	if err != nil {
		return "", fmt.Errorf("completion: %w", err)
	}
	return StripReasoning(reply), nil
}

// StripReasoning removes delimited <think>...</think> spans and any stray
// unmatched markers from backend output.
func StripReasoning(text string) string {
	text = thinkSpanPattern.ReplaceAllString(text, "")
	text = strings.ReplaceAll(text, "<think>", "")
	text = strings.ReplaceAll(text, "</think>", "")
	return strings.TrimSpace(text)
}
