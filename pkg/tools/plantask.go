package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/pagepilot-ai/pagepilot/pkg/assistant"
)

// PlanTaskTool splits a task description into a numbered plan using cheap
// keyword heuristics. It gives agentic runs a deterministic, zero-cost
// planning step before any model call.
type PlanTaskTool struct {
	maxSteps int
}

// NewPlanTaskTool builds the planner. maxSteps <= 0 defaults to 6.
func NewPlanTaskTool(maxSteps int) *PlanTaskTool {
	if maxSteps <= 0 {
		maxSteps = 6
	}
	return &PlanTaskTool{maxSteps: maxSteps}
}

func (p *PlanTaskTool) Spec() assistant.ToolSpec {
	return assistant.ToolSpec{
		Name:        "plan_task",
		Description: "Breaks a task into a short numbered plan of concrete steps.",
		Category:    "agentic",
		Params: []assistant.Param{
			{Name: "query", Type: "string", Description: "Task to plan.", Required: true},
		},
	}
}

func (p *PlanTaskTool) Invoke(_ context.Context, req assistant.ToolRequest) (assistant.ToolResponse, error) {
	raw, ok := req.Arguments["query"]
	if !ok || strings.TrimSpace(fmt.Sprint(raw)) == "" {
		return assistant.ToolResponse{}, fmt.Errorf("missing 'query' argument")
	}
	task := strings.TrimSpace(fmt.Sprint(raw))

	steps := planSteps(task)
	if len(steps) > p.maxSteps {
		steps = steps[:p.maxSteps]
	}

	return assistant.ToolResponse{Content: map[string]any{
		"task":  task,
		"steps": steps,
	}}, nil
}

func planSteps(task string) []string {
	lower := strings.ToLower(task)
	switch {
	case hasAny(lower, "error", "bug", "broken", "failed", "fix"):
		return []string{
			"Restate the problem succinctly",
			"Gather the exact error output and context",
			"List likely causes ordered by probability",
			"Test the most likely cause in isolation",
			"Apply the fix and verify the original symptom is gone",
		}
	case hasAny(lower, "compare", " vs ", "versus", "tradeoff"):
		return []string{
			"Identify the options to compare",
			"Choose the evaluation criteria",
			"Assess each option against the criteria",
			"Recommend one option with reasoning",
		}
	case hasAny(lower, "research", "find out", "investigate", "learn about"):
		return []string{
			"Define the precise question to answer",
			"Search for primary sources",
			"Cross-check claims across sources",
			"Summarize findings with references",
		}
	case hasAny(lower, "write", "draft", "compose", "summarize"):
		return []string{
			"Clarify the audience and desired tone",
			"Outline the main points",
			"Write a first draft",
			"Revise for clarity and length",
		}
	default:
		return []string{
			"Clarify the goal and constraints",
			"Break the work into independent parts",
			"Complete each part in order",
			"Review the result against the goal",
		}
	}
}

func hasAny(s string, needles ...string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}

var _ assistant.Tool = (*PlanTaskTool)(nil)
