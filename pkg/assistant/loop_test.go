package assistant

import (
	"context"
	"strings"
	"testing"

	"github.com/pagepilot-ai/pagepilot/pkg/models"
)

func TestLoopExhaustsBudget(t *testing.T) {
	backend := models.NewScriptedBackend("step one", "step two", "step three")
	loop := NewLoop(NewRegistry(), backend, models.Params{}, 3, nil)

	result, status, err := loop.Run(context.Background(), "do the thing")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != BudgetExhausted {
		t.Fatalf("expected BudgetExhausted, got %v", status)
	}
	if result != "step three" {
		t.Fatalf("exhaustion must return the final turn's text, got %q", result)
	}
	if backend.Calls() != 3 {
		t.Fatalf("expected exactly 3 completions, got %d", backend.Calls())
	}
}

func TestLoopStopsOnCompletionPhrase(t *testing.T) {
	backend := models.NewScriptedBackend("still working", "TASK complete: the answer", "never reached")
	loop := NewLoop(NewRegistry(), backend, models.Params{}, 5, nil)

	result, status, err := loop.Run(context.Background(), "do the thing")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != Completed {
		t.Fatalf("expected Completed, got %v", status)
	}
	if result != "TASK complete: the answer" {
		t.Fatalf("unexpected result: %q", result)
	}
	if backend.Calls() != 2 {
		t.Fatalf("the loop must stop at the signal, got %d completions", backend.Calls())
	}
}

func TestLoopAccumulatesPreviousResponses(t *testing.T) {
	backend := models.NewScriptedBackend("first step", "Task Complete: done")
	loop := NewLoop(NewRegistry(), backend, models.Params{}, 5, nil)

	if _, _, err := loop.Run(context.Background(), "original task"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second := backend.Transcripts[1]
	user := second[len(second)-1]
	if user.Role != models.RoleUser {
		t.Fatalf("the accumulated context travels as the user message, got %q", user.Role)
	}
	if !strings.HasPrefix(user.Content, "original task") {
		t.Fatalf("the original task must stay at the front: %q", user.Content)
	}
	if !strings.Contains(user.Content, "Previous response: first step") {
		t.Fatalf("prior output missing from context: %q", user.Content)
	}
}

func TestLoopBackendErrorAborts(t *testing.T) {
	backend := models.NewScriptedBackend()
	backend.Err = context.DeadlineExceeded
	loop := NewLoop(NewRegistry(), backend, models.Params{}, 3, nil)

	if _, _, err := loop.Run(context.Background(), "task"); err == nil {
		t.Fatalf("expected the backend failure to abort the run")
	}
}

func TestAdvanceIsPure(t *testing.T) {
	st := NewState("task", 3)
	st.Context["k"] = "v"

	next := Advance(st, "some output")
	if st.CurrentTurn != 0 || st.Status != Running || st.Accumulated != "task" {
		t.Fatalf("input state was mutated: %+v", st)
	}
	if next.CurrentTurn != 1 {
		t.Fatalf("expected turn counter to advance, got %d", next.CurrentTurn)
	}
	if !strings.Contains(next.Accumulated, "Previous response: some output") {
		t.Fatalf("output was not folded into context: %q", next.Accumulated)
	}
}

func TestAdvanceTerminalTransitions(t *testing.T) {
	st := NewState("task", 2)

	st = Advance(st, "one")
	if st.Status != Running {
		t.Fatalf("expected Running after turn 1, got %v", st.Status)
	}
	st = Advance(st, "two")
	if st.Status != BudgetExhausted || st.Result != "two" {
		t.Fatalf("expected exhaustion with final text, got %+v", st)
	}

	done := Advance(NewState("task", 2), "Analysis Complete, wrapping up")
	if done.Status != Completed || done.CurrentTurn != 0 {
		t.Fatalf("a completion signal must not consume a turn: %+v", done)
	}
}

func TestContainsCompletionPhrase(t *testing.T) {
	positives := []string{
		"Task Complete: shipped",
		"the ANALYSIS COMPLETE now",
		"Here is your final answer to the question",
		"task finished early",
		"everything completed successfully today",
	}
	for _, text := range positives {
		if !ContainsCompletionPhrase(text) {
			t.Fatalf("expected %q to signal completion", text)
		}
	}

	negatives := []string{"task complete", "still in progress", "completing soon"}
	for _, text := range negatives {
		if ContainsCompletionPhrase(text) {
			t.Fatalf("expected %q not to signal completion", text)
		}
	}
}

func TestNewStateDefaultsBudget(t *testing.T) {
	st := NewState("task", 0)
	if st.MaxTurns != DefaultMaxTurns {
		t.Fatalf("expected the default budget, got %d", st.MaxTurns)
	}
	if st.RunID == "" {
		t.Fatalf("expected a run id")
	}
}
