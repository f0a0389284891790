package models

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	ollama "github.com/ollama/ollama/api"
)

// OllamaBackend implements Backend against a local or remote Ollama server.
type OllamaBackend struct {
	Client     *ollama.Client
	httpClient *http.Client
	host       string
}

// NewOllamaBackend reads OLLAMA_HOST from the environment, defaulting to the
// standard local endpoint.
func NewOllamaBackend() (*OllamaBackend, error) {
	host := os.Getenv("OLLAMA_HOST")
	if host == "" {
		host = "http://localhost:11434"
	}

	u, err := url.Parse(host)
	if err != nil {
		return nil, fmt.Errorf("invalid OLLAMA_HOST %q: %w", host, err)
	}

	httpClient := &http.Client{Timeout: 60 * time.Second}
	return &OllamaBackend{
		Client:     ollama.NewClient(u, httpClient),
		httpClient: httpClient,
		host:       host,
	}, nil
}

func (o *OllamaBackend) Complete(ctx context.Context, messages []Message, params Params) (string, error) {
	req := &ollama.ChatRequest{Model: params.Model}
	for _, msg := range messages {
		req.Messages = append(req.Messages, ollama.Message{Role: msg.Role, Content: msg.Content})
	}

	opts := map[string]any{}
	if params.Temperature > 0 {
		opts["temperature"] = params.Temperature
	}
	if params.MaxTokens > 0 {
		opts["num_predict"] = params.MaxTokens
	}
	if len(opts) > 0 {
		req.Options = opts
	}

	var text strings.Builder
	if err := o.Client.Chat(ctx, req, func(cr ollama.ChatResponse) error {
		text.WriteString(cr.Message.Content)
		return nil
	}); err != nil {
		return "", fmt.Errorf("ollama chat: %w", err)
	}
	return text.String(), nil
}

// Probe checks that the Ollama server is reachable.
func (o *OllamaBackend) Probe(ctx context.Context) error {
	return o.Client.Heartbeat(ctx)
}

// WebSearch queries the Ollama web-search API and returns the top results as
// title/url/content maps.
func (o *OllamaBackend) WebSearch(ctx context.Context, query string, limit int) ([]map[string]string, error) {
	endpoint := fmt.Sprintf("%s/api/web_search", strings.TrimRight(o.host, "/"))

	reqBody := map[string]any{"query": query}
	if limit > 0 {
		reqBody["limit"] = limit
	}
	buf := new(bytes.Buffer)
	if err := json.NewEncoder(buf).Encode(reqBody); err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, buf)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if key := os.Getenv("OLLAMA_API_KEY"); key != "" {
		req.Header.Set("Authorization", "Bearer "+key)
	}

	resp, err := o.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("web search failed: %s", resp.Status)
	}

	var data struct {
		Results []map[string]string `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return data.Results, nil
}

var _ Backend = (*OllamaBackend)(nil)
var _ Prober = (*OllamaBackend)(nil)
