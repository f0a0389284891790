package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Invoker executes tool calls against the registry. Every outcome, success,
// capability failure or unknown name, is rendered as a tagged text block so
// the caller can splice it back into the conversation for the model to read.
// Failures are data here, not control flow: Invoke never returns an error.
type Invoker struct {
	registry *Registry
	log      *zap.Logger
}

// NewInvoker builds an invoker over the given registry. A nil logger is
// replaced with a no-op logger.
func NewInvoker(registry *Registry, log *zap.Logger) *Invoker {
	if log == nil {
		log = zap.NewNop()
	}
	return &Invoker{registry: registry, log: log}
}

// toolResult is the per-invocation outcome before rendering. Both variants
// carry the originating tool name so downstream context stays attributable.
type toolResult struct {
	toolName string
	payload  any
	errText  string
	failed   bool
}

func (r toolResult) render() string {
	if r.failed {
		return fmt.Sprintf("[TOOL_ERROR:%s]%s[/TOOL_ERROR]", r.toolName, r.errText)
	}
	return fmt.Sprintf("[TOOL_RESULT:%s]%s[/TOOL_RESULT]", r.toolName, serializePayload(r.payload))
}

// Invoke runs a single call and returns its tagged result block. An unknown
// name yields an error block that enumerates the registered tool names in
// registry order, so the model can self-correct on the next turn.
func (inv *Invoker) Invoke(ctx context.Context, call ToolCall) string {
	tool, ok := inv.registry.Lookup(call.Name)
	if !ok {
		inv.log.Debug("unknown tool requested", zap.String("tool", call.Name))
		return fmt.Sprintf("[TOOL_ERROR]Unknown tool: %s. Available tools: %s[/TOOL_ERROR]",
			call.Name, strings.Join(inv.registry.Names(), ", "))
	}

	name := tool.Spec().Name
	resp, err := tool.Invoke(ctx, ToolRequest{Arguments: call.Parameters})
	if err != nil {
		inv.log.Warn("tool invocation failed", zap.String("tool", name), zap.Error(err))
		return toolResult{toolName: name, errText: err.Error(), failed: true}.render()
	}
	return toolResult{toolName: name, payload: resp.Content}.render()
}

// ProcessChain invokes each call sequentially and returns the result blocks
// in call order, one block per call even when some calls fail. Calls never
// run concurrently: result ordering must match call ordering for correct
// message attribution.
func (inv *Invoker) ProcessChain(ctx context.Context, calls []ToolCall) []string {
	results := make([]string, 0, len(calls))
	for _, call := range calls {
		results = append(results, inv.Invoke(ctx, call))
	}
	return results
}

func serializePayload(payload any) string {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Sprint(payload)
	}
	return string(data)
}
