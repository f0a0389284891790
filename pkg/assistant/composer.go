package assistant

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Composer renders mode-specific system instructions, embedding the current
// tool manifest as machine-readable usage guidance.
type Composer struct {
	registry *Registry
}

// NewComposer builds a composer over the given registry.
func NewComposer(registry *Registry) *Composer {
	return &Composer{registry: registry}
}

// SystemPrompt produces the system instruction for a mode. The output
// concatenates the protocol's directive/context/rationale sentence, a
// tool-usage block when the registry is non-empty, and a JSON echo of the
// full protocol. The echo repeats the prose on purpose: the model gets both
// a readable instruction and a literal spec to quote from.
func (c *Composer) SystemPrompt(mode string) string {
	proto := ProtocolFor(mode)
	if c.registry.Len() > 0 {
		proto.Tools = c.registry.Specs()
	}

	var sb strings.Builder
	sb.Grow(2048)

	sb.WriteString(proto.Directive)
	sb.WriteString(" ")
	sb.WriteString(proto.Context)
	sb.WriteString(" ")
	sb.WriteString(proto.Rationale)

	if block := c.renderToolBlock(); block != "" {
		sb.WriteString("\n\n")
		sb.WriteString(block)
	}

	sb.WriteString("\n\nProtocol specification:\n")
	if echo, err := json.MarshalIndent(proto, "", "  "); err == nil {
		sb.Write(echo)
	}

	return sb.String()
}

// AgenticPrompt produces the dedicated system instruction for agentic runs.
// It carries the same tool manifest and invocation syntaxes as SystemPrompt
// plus the completion-signal convention the loop scans for.
func (c *Composer) AgenticPrompt() string {
	var sb strings.Builder
	sb.Grow(1024)

	sb.WriteString("You are PagePilot running in agentic mode. Work on the task step by step, ")
	sb.WriteString("one action per turn. Review the previous responses included in the task ")
	sb.WriteString("context before deciding your next action.\n")
	sb.WriteString("When the task is done, begin your reply with \"Task Complete:\" followed by the final answer.")

	if block := c.renderToolBlock(); block != "" {
		sb.WriteString("\n\n")
		sb.WriteString(block)
	}

	return sb.String()
}

// renderToolBlock formats the registered tools into a prompt-friendly block,
// one entry per tool with its parameter signature and the three accepted
// invocation syntaxes rendered with the literal tool name.
func (c *Composer) renderToolBlock() string {
	specs := c.registry.Specs()
	if len(specs) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("Available tools:\n")
	for _, spec := range specs {
		sb.WriteString(fmt.Sprintf("- %s: %s\n", spec.Name, spec.Description))
		if sig := parameterSignature(spec.Params); sig != "" {
			sb.WriteString("  parameters: ")
			sb.WriteString(sig)
			sb.WriteString("\n")
		}
		sb.WriteString("  invoke with any of:\n")
		sb.WriteString(fmt.Sprintf("    [TOOL]{\"name\": %q, \"parameters\": {...}}[/TOOL]\n", spec.Name))
		sb.WriteString(fmt.Sprintf("    use %s tool with <query>.\n", spec.Name))
		sb.WriteString(fmt.Sprintf("    /%s <query>.\n", spec.Name))
	}
	return strings.TrimRight(sb.String(), "\n")
}

// parameterSignature renders "name (type, required)" for required parameters
// and "name (type)" otherwise, comma separated in declaration order.
func parameterSignature(params []Param) string {
	if len(params) == 0 {
		return ""
	}
	parts := make([]string, 0, len(params))
	for _, p := range params {
		if p.Required {
			parts = append(parts, fmt.Sprintf("%s (%s, required)", p.Name, p.Type))
			continue
		}
		parts = append(parts, fmt.Sprintf("%s (%s)", p.Name, p.Type))
	}
	return strings.Join(parts, ", ")
}
