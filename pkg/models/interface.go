package models

import "context"

// Message roles understood by every backend.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one entry of a chat transcript.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Params carries the per-request completion settings. Zero values mean the
// backend's own defaults.
type Params struct {
	Model       string
	Temperature float32
	MaxTokens   int
}

// Backend is the opaque chat-completion seam: an ordered transcript in, the
// first choice's text out. Failures surface as ordinary errors; callers treat
// them as connectivity problems.
type Backend interface {
	Complete(ctx context.Context, messages []Message, params Params) (string, error)
}

// Prober is implemented by backends that can cheaply check reachability.
// Callers may probe before committing to a completion call and substitute an
// offline notice when the probe fails.
type Prober interface {
	Probe(ctx context.Context) error
}
