package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/pagepilot-ai/pagepilot/pkg/assistant"
)

const defaultWikipediaEndpoint = "https://en.wikipedia.org/api/rest_v1/page/summary"

var wikipediaNoise = regexp.MustCompile(`(?i)wikipedia|search`)

// WikipediaTool looks up an article summary on Wikipedia.
type WikipediaTool struct {
	client   *http.Client
	endpoint string
}

// NewWikipediaTool builds the tool against the public REST endpoint.
func NewWikipediaTool() *WikipediaTool {
	return &WikipediaTool{
		client:   &http.Client{Timeout: 15 * time.Second},
		endpoint: defaultWikipediaEndpoint,
	}
}

func (w *WikipediaTool) Spec() assistant.ToolSpec {
	return assistant.ToolSpec{
		Name:        "search_wikipedia",
		Description: "Looks up a topic on Wikipedia and returns the article summary.",
		Category:    "research",
		Params: []assistant.Param{
			{Name: "query", Type: "string", Description: "Topic to look up.", Required: true},
		},
	}
}

func (w *WikipediaTool) Invoke(ctx context.Context, req assistant.ToolRequest) (assistant.ToolResponse, error) {
	raw, ok := req.Arguments["query"]
	if !ok || raw == nil {
		return assistant.ToolResponse{Content: "Please provide a search term."}, nil
	}
	// Users phrase this as "search wikipedia for X"; the filler words are
	// not part of the topic.
	query := strings.TrimSpace(wikipediaNoise.ReplaceAllString(fmt.Sprint(raw), ""))
	if query == "" {
		return assistant.ToolResponse{Content: "Please provide a search term."}, nil
	}

	endpoint := fmt.Sprintf("%s/%s", w.endpoint, url.PathEscape(query))
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return assistant.ToolResponse{}, fmt.Errorf("new request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")

	resp, err := w.client.Do(httpReq)
	if err != nil {
		return assistant.ToolResponse{}, fmt.Errorf("wikipedia request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return assistant.ToolResponse{Content: fmt.Sprintf("No Wikipedia article found for %q.", query)}, nil
	}
	if resp.StatusCode >= 300 {
		return assistant.ToolResponse{}, fmt.Errorf("wikipedia lookup failed: %s", resp.Status)
	}

	var payload struct {
		Title   string `json:"title"`
		Extract string `json:"extract"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return assistant.ToolResponse{}, fmt.Errorf("decode response: %w", err)
	}
	if strings.TrimSpace(payload.Extract) == "" {
		return assistant.ToolResponse{Content: fmt.Sprintf("The article %q has no summary.", payload.Title)}, nil
	}

	return assistant.ToolResponse{
		Content:  payload.Extract,
		Metadata: map[string]string{"title": payload.Title},
	}, nil
}

var _ assistant.Tool = (*WikipediaTool)(nil)
