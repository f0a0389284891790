package assistant

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"
)

// Invocation syntaxes accepted in model output and raw user input.
//
//	[TOOL]{"name": "<tool>", "parameters": {...}}[/TOOL]
//	use <tool> tool with <query>.
//	/<tool> <query>.
var toolTagPattern = regexp.MustCompile(`(?s)\[TOOL\](.*?)\[/TOOL\]`)

// Detector scans free-form text for tool invocation intents. The three
// syntaxes are matched as independent global passes with a fixed precedence:
// all structured tags first, then the natural-language form per registered
// tool, then the slash form per registered tool. Tools iterate in
// registration order within a pass. The ordering is a contract, callers rely
// on it for deterministic result attribution.
type Detector struct {
	registry *Registry
	log      *zap.Logger
}

// NewDetector builds a detector over the given registry. A nil logger is
// replaced with a no-op logger.
func NewDetector(registry *Registry, log *zap.Logger) *Detector {
	if log == nil {
		log = zap.NewNop()
	}
	return &Detector{registry: registry, log: log}
}

// Detect extracts zero or more tool calls from text. Only the structured tag
// form can reference names that are not registered; the other two forms are
// generated from the registry, so they cannot invent unknown tools.
func (d *Detector) Detect(text string) []ToolCall {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	calls := d.detectTags(text)
	for _, tool := range d.registry.List() {
		name := tool.Spec().Name
		calls = append(calls, detectPhrase(text, name)...)
	}
	for _, tool := range d.registry.List() {
		name := tool.Spec().Name
		calls = append(calls, detectSlash(text, name)...)
	}
	return calls
}

// detectTags parses every [TOOL]...[/TOOL] span. Malformed interiors are
// dropped and logged; they never abort detection of later spans.
func (d *Detector) detectTags(text string) []ToolCall {
	var calls []ToolCall
	for _, match := range toolTagPattern.FindAllStringSubmatch(text, -1) {
		call, err := parseTagBody(match[1])
		if err != nil {
			d.log.Debug("dropping malformed tool tag", zap.Error(err))
			continue
		}
		calls = append(calls, call)
	}
	return calls
}

func parseTagBody(body string) (ToolCall, error) {
	var payload map[string]json.RawMessage
	if err := json.Unmarshal([]byte(strings.TrimSpace(body)), &payload); err != nil {
		return ToolCall{}, fmt.Errorf("tag body is not a JSON object: %w", err)
	}

	rawName, ok := payload["name"]
	if !ok {
		return ToolCall{}, fmt.Errorf("tag body is missing the name key")
	}
	var name string
	if err := json.Unmarshal(rawName, &name); err != nil || strings.TrimSpace(name) == "" {
		return ToolCall{}, fmt.Errorf("tag body has a non-string or empty name")
	}

	rawParams, ok := payload["parameters"]
	if !ok {
		return ToolCall{}, fmt.Errorf("tag body is missing the parameters key")
	}
	params := map[string]any{}
	if err := json.Unmarshal(rawParams, &params); err != nil {
		return ToolCall{}, fmt.Errorf("tag parameters are not an object: %w", err)
	}

	return ToolCall{Name: name, Parameters: params}, nil
}

// detectPhrase matches "use <tool> tool with <query>" case-insensitively,
// capturing up to the next sentence terminator or end of text.
func detectPhrase(text, name string) []ToolCall {
	pattern := regexp.MustCompile(`(?i)\buse\s+` + regexp.QuoteMeta(name) + `\s+tool\s+with\s+([^.!?\n]+)`)
	return queryCalls(pattern, text, name)
}

// detectSlash matches "/<tool> <query>" at the start of the text or after
// whitespace, with the same query capture as the phrase form.
func detectSlash(text, name string) []ToolCall {
	pattern := regexp.MustCompile(`(?i)(?:^|\s)/` + regexp.QuoteMeta(name) + `\s+([^.!?\n]+)`)
	return queryCalls(pattern, text, name)
}

func queryCalls(pattern *regexp.Regexp, text, name string) []ToolCall {
	var calls []ToolCall
	for _, match := range pattern.FindAllStringSubmatch(text, -1) {
		query := strings.TrimSpace(match[1])
		if query == "" {
			continue
		}
		calls = append(calls, ToolCall{Name: name, Parameters: map[string]any{"query": query}})
	}
	return calls
}
