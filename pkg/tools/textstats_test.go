package tools

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pagepilot-ai/pagepilot/pkg/assistant"
)

func TestTextStatsCounts(t *testing.T) {
	tool := NewTextStatsTool()

	resp, err := tool.Invoke(context.Background(), assistant.ToolRequest{
		Arguments: map[string]any{"query": "One two three. Four five! Six?"},
	})
	require.NoError(t, err)

	stats, ok := resp.Content.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 6, stats["words"])
	assert.Equal(t, 3, stats["sentences"])
	assert.Equal(t, 0.0, stats["reading_time_minutes"])
}

func TestTextStatsCountsRunesNotBytes(t *testing.T) {
	tool := NewTextStatsTool()

	resp, err := tool.Invoke(context.Background(), assistant.ToolRequest{
		Arguments: map[string]any{"query": "héllo"},
	})
	require.NoError(t, err)

	stats := resp.Content.(map[string]any)
	assert.Equal(t, 5, stats["characters"])
}

func TestTextStatsConsecutiveTerminators(t *testing.T) {
	tool := NewTextStatsTool()

	resp, err := tool.Invoke(context.Background(), assistant.ToolRequest{
		Arguments: map[string]any{"query": "Really?! Yes..."},
	})
	require.NoError(t, err)

	stats := resp.Content.(map[string]any)
	assert.Equal(t, 2, stats["sentences"], "runs of terminators count once")
}

func TestTextStatsNoTerminatorStillOneSentence(t *testing.T) {
	tool := NewTextStatsTool()

	resp, err := tool.Invoke(context.Background(), assistant.ToolRequest{
		Arguments: map[string]any{"query": "no terminator here"},
	})
	require.NoError(t, err)

	stats := resp.Content.(map[string]any)
	assert.Equal(t, 1, stats["sentences"])
}

func TestTextStatsAcceptsTextArgument(t *testing.T) {
	tool := NewTextStatsTool()

	resp, err := tool.Invoke(context.Background(), assistant.ToolRequest{
		Arguments: map[string]any{"text": "alternate key."},
	})
	require.NoError(t, err)

	stats := resp.Content.(map[string]any)
	assert.Equal(t, 2, stats["words"])
}

func TestTextStatsMissingArgument(t *testing.T) {
	tool := NewTextStatsTool()

	_, err := tool.Invoke(context.Background(), assistant.ToolRequest{Arguments: map[string]any{}})
	assert.Error(t, err)

	_, err = tool.Invoke(context.Background(), assistant.ToolRequest{
		Arguments: map[string]any{"query": "   "},
	})
	assert.Error(t, err)
}

func TestTextStatsReadingTime(t *testing.T) {
	// 500 words at 200 wpm is 2.5 minutes.
	words := make([]byte, 0, 500*5)
	for i := 0; i < 500; i++ {
		words = append(words, []byte("word ")...)
	}
	tool := NewTextStatsTool()

	resp, err := tool.Invoke(context.Background(), assistant.ToolRequest{
		Arguments: map[string]any{"query": string(words)},
	})
	require.NoError(t, err)

	stats := resp.Content.(map[string]any)
	assert.Equal(t, 2.5, stats["reading_time_minutes"])
}
