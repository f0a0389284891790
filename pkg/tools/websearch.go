package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/pagepilot-ai/pagepilot/pkg/assistant"
)

// Searcher is the query seam WebSearchTool needs. *models.OllamaBackend
// satisfies it.
type Searcher interface {
	WebSearch(ctx context.Context, query string, limit int) ([]map[string]string, error)
}

// WebSearchTool answers queries through a web-search capable backend.
type WebSearchTool struct {
	searcher Searcher
	limit    int
}

// NewWebSearchTool builds the tool over the given searcher. limit <= 0
// defaults to 5 results.
func NewWebSearchTool(searcher Searcher, limit int) *WebSearchTool {
	if limit <= 0 {
		limit = 5
	}
	return &WebSearchTool{searcher: searcher, limit: limit}
}

func (w *WebSearchTool) Spec() assistant.ToolSpec {
	return assistant.ToolSpec{
		Name:        "web_search",
		Description: "Searches the web and returns the top results with titles and URLs.",
		Category:    "research",
		Params: []assistant.Param{
			{Name: "query", Type: "string", Description: "Search query.", Required: true},
			{Name: "limit", Type: "number", Description: "Maximum number of results."},
		},
	}
}

func (w *WebSearchTool) Invoke(ctx context.Context, req assistant.ToolRequest) (assistant.ToolResponse, error) {
	raw, ok := req.Arguments["query"]
	if !ok || strings.TrimSpace(fmt.Sprint(raw)) == "" {
		return assistant.ToolResponse{}, fmt.Errorf("missing 'query' argument")
	}
	query := strings.TrimSpace(fmt.Sprint(raw))

	limit := w.limit
	if n, ok := req.Arguments["limit"].(float64); ok && n > 0 {
		limit = int(n)
	}

	results, err := w.searcher.WebSearch(ctx, query, limit)
	if err != nil {
		return assistant.ToolResponse{}, fmt.Errorf("web search: %w", err)
	}
	if len(results) == 0 {
		return assistant.ToolResponse{Content: fmt.Sprintf("No results for %q.", query)}, nil
	}
	return assistant.ToolResponse{Content: results}, nil
}

var _ assistant.Tool = (*WebSearchTool)(nil)
