package tools

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/pagepilot-ai/pagepilot/pkg/assistant"
)

// readingWordsPerMinute is the conventional silent-reading speed used for
// the estimate.
const readingWordsPerMinute = 200

// TextStatsTool computes basic statistics over a block of text.
type TextStatsTool struct{}

func NewTextStatsTool() *TextStatsTool { return &TextStatsTool{} }

func (t *TextStatsTool) Spec() assistant.ToolSpec {
	return assistant.ToolSpec{
		Name:        "text_stats",
		Description: "Counts words, characters, and sentences in a text and estimates reading time.",
		Category:    "writing",
		Params: []assistant.Param{
			{Name: "query", Type: "string", Description: "Text to analyze.", Required: true},
		},
	}
}

func (t *TextStatsTool) Invoke(_ context.Context, req assistant.ToolRequest) (assistant.ToolResponse, error) {
	raw, ok := req.Arguments["query"]
	if !ok {
		raw = req.Arguments["text"]
	}
	text := strings.TrimSpace(fmt.Sprint(raw))
	if raw == nil || text == "" {
		return assistant.ToolResponse{}, fmt.Errorf("missing 'query' argument")
	}

	words := strings.Fields(text)
	sentences := countSentences(text)
	minutes := float64(len(words)) / readingWordsPerMinute

	return assistant.ToolResponse{Content: map[string]any{
		"words":                len(words),
		"characters":           len([]rune(text)),
		"sentences":            sentences,
		"reading_time_minutes": roundTenth(minutes),
	}}, nil
}

func countSentences(text string) int {
	count := 0
	inTerminator := false
	for _, r := range text {
		switch r {
		case '.', '!', '?':
			if !inTerminator {
				count++
			}
			inTerminator = true
		default:
			if !unicode.IsSpace(r) {
				inTerminator = false
			}
		}
	}
	if count == 0 && len(strings.TrimSpace(text)) > 0 {
		return 1
	}
	return count
}

func roundTenth(v float64) float64 {
	return float64(int(v*10+0.5)) / 10
}

var _ assistant.Tool = (*TextStatsTool)(nil)
