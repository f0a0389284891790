package assistant

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/pagepilot-ai/pagepilot/pkg/history"
	"github.com/pagepilot-ai/pagepilot/pkg/models"
)

func TestNewRequiresBackend(t *testing.T) {
	if _, err := New(Options{}); err == nil {
		t.Fatalf("expected an error without a backend")
	}
}

func TestChatReturnsOfflineNotice(t *testing.T) {
	backend := models.NewScriptedBackend("unreachable")
	backend.ProbeErr = errors.New("connection refused")
	a, err := New(Options{Backend: backend})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	reply, err := a.Chat(context.Background(), "s1", "general", "hello")
	if err != nil {
		t.Fatalf("offline is not an error condition: %v", err)
	}
	if reply != OfflineNotice {
		t.Fatalf("expected the offline notice, got %q", reply)
	}
	if backend.Calls() != 0 {
		t.Fatalf("no completion call should be attempted offline")
	}
}

func TestChatRejectsEmptyInput(t *testing.T) {
	a, err := New(Options{Backend: models.NewScriptedBackend("x")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := a.Chat(context.Background(), "s1", "general", "   "); err == nil {
		t.Fatalf("expected an error for blank input")
	}
}

func TestChatRecordsAndRehydratesHistory(t *testing.T) {
	backend := models.NewScriptedBackend("first reply", "second reply")
	store := history.NewMemoryStore()
	a, err := New(Options{Backend: backend, History: store})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx := context.Background()
	if _, err := a.Chat(ctx, "s1", "general", "first question"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := a.Chat(ctx, "s1", "general", "second question"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entries, err := store.Recent(ctx, "s1", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 4 {
		t.Fatalf("expected 4 recorded entries, got %d", len(entries))
	}

	// The second exchange must see the first one in its transcript.
	second := backend.Transcripts[1]
	var sawFirstReply bool
	for _, msg := range second {
		if msg.Role == models.RoleAssistant && msg.Content == "first reply" {
			sawFirstReply = true
		}
	}
	if !sawFirstReply {
		t.Fatalf("prior turns were not rehydrated: %+v", second)
	}
}

func TestChatSessionsAreIsolated(t *testing.T) {
	backend := models.NewScriptedBackend("reply")
	store := history.NewMemoryStore()
	a, err := New(Options{Backend: backend, History: store})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx := context.Background()
	if _, err := a.Chat(ctx, "s1", "general", "question in s1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := a.Chat(ctx, "s2", "general", "question in s2"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second := backend.Transcripts[1]
	for _, msg := range second {
		if strings.Contains(msg.Content, "question in s1") {
			t.Fatalf("s2 transcript leaked s1 history")
		}
	}
}

func TestRunTaskRejectsEmptyTask(t *testing.T) {
	a, err := New(Options{Backend: models.NewScriptedBackend("x")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, _, err := a.RunTask(context.Background(), "s1", ""); err == nil {
		t.Fatalf("expected an error for an empty task")
	}
}

func TestRunTaskReportsStatus(t *testing.T) {
	backend := models.NewScriptedBackend("Task Complete: all done")
	a, err := New(Options{Backend: backend, MaxTurns: 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	result, status, err := a.RunTask(context.Background(), "s1", "summarise the page")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != Completed {
		t.Fatalf("expected Completed, got %v", status)
	}
	if result != "Task Complete: all done" {
		t.Fatalf("unexpected result: %q", result)
	}
}

func TestRegistryMutationAffectsPrompts(t *testing.T) {
	a, err := New(Options{Backend: models.NewScriptedBackend("x")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	before := a.SystemPrompt("general")
	a.Registry().Register(namedTool("late_tool"))
	after := a.SystemPrompt("general")

	if strings.Contains(before, "late_tool") {
		t.Fatalf("tool visible before registration")
	}
	if !strings.Contains(after, "late_tool") {
		t.Fatalf("prompts must reflect setup-time registration")
	}
}
