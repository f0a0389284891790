package assistant

import "context"

// Param describes a single tool parameter as advertised to the model.
type Param struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
	Required    bool   `json:"required"`
}

// ToolSpec describes how the assistant presents a tool to the model.
type ToolSpec struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Params      []Param `json:"parameters,omitempty"`
	Category    string  `json:"category,omitempty"`
}

// ToolRequest captures an invocation request for a tool.
type ToolRequest struct {
	SessionID string
	Arguments map[string]any
}

// ToolResponse is the structured payload returned by a tool. Content may be
// any JSON-serializable value; the invoker flattens it before splicing it back
// into the conversation.
type ToolResponse struct {
	Content  any
	Metadata map[string]string
}

// Tool exposes structured metadata and an invocation handler.
type Tool interface {
	Spec() ToolSpec
	Invoke(ctx context.Context, req ToolRequest) (ToolResponse, error)
}

// ToolCall is an ephemeral invocation request extracted from free-form text.
// Parameter values carry whatever the detected syntax produced; the required
// flag on Param is not enforced before invocation, a tool sees exactly what
// the text asked for.
type ToolCall struct {
	Name       string
	Parameters map[string]any
}
