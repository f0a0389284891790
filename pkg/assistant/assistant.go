package assistant

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/pagepilot-ai/pagepilot/pkg/history"
	"github.com/pagepilot-ai/pagepilot/pkg/models"
	"go.uber.org/zap"
)

// OfflineNotice is returned instead of a completion when the backend is
// known to be unreachable. Tool and parsing errors never surface this way;
// only connectivity problems are user-visible.
const OfflineNotice = "PagePilot is offline: the language model backend cannot be reached. Check your connection and model settings, then try again."

// Assistant wires the composer, driver, and agentic loop over one shared
// tool registry and backend. It is the entry point embedders use.
type Assistant struct {
	registry *Registry
	composer *Composer
	driver   *Driver
	loop     *Loop
	backend  models.Backend
	store    history.Store
	log      *zap.Logger
}

// Options configure a new Assistant.
type Options struct {
	Backend  models.Backend
	Params   models.Params
	Tools    []Tool
	History  history.Store
	MaxTurns int
	Logger   *zap.Logger
}

// New constructs an Assistant with the provided options.
func New(opts Options) (*Assistant, error) {
	if opts.Backend == nil {
		return nil, errors.New("assistant requires a backend")
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	registry := NewRegistry(opts.Tools...)
	return &Assistant{
		registry: registry,
		composer: NewComposer(registry),
		driver:   NewDriver(registry, opts.Backend, opts.Params, log),
		loop:     NewLoop(registry, opts.Backend, opts.Params, opts.MaxTurns, log),
		backend:  opts.Backend,
		store:    opts.History,
		log:      log,
	}, nil
}

// Registry exposes the tool registry for setup-time registration.
func (a *Assistant) Registry() *Registry {
	return a.registry
}

// SystemPrompt returns the composed system instruction for a mode.
func (a *Assistant) SystemPrompt(mode string) string {
	return a.composer.SystemPrompt(mode)
}

// Chat runs one conversational exchange in the given mode. The transcript is
// rebuilt from stored history when a store is configured, so independent
// calls with the same session continue the same conversation.
func (a *Assistant) Chat(ctx context.Context, sessionID, mode, userInput string) (string, error) {
	if strings.TrimSpace(userInput) == "" {
		return "", errors.New("user input is empty")
	}
	if a.offline(ctx) {
		return OfflineNotice, nil
	}

	messages := []models.Message{{Role: models.RoleSystem, Content: a.composer.SystemPrompt(mode)}}
	messages = append(messages, a.recentMessages(ctx, sessionID)...)
	messages = append(messages, models.Message{Role: models.RoleUser, Content: userInput})

	a.record(ctx, sessionID, models.RoleUser, userInput)

	reply, err := a.driver.Respond(ctx, messages)
	if err != nil {
		return "", err
	}

	a.record(ctx, sessionID, models.RoleAssistant, reply)
	return reply, nil
}

// RunTask executes the agentic loop over a task and returns the final text
// with the terminal status.
func (a *Assistant) RunTask(ctx context.Context, sessionID, task string) (string, Status, error) {
	if strings.TrimSpace(task) == "" {
		return "", Running, errors.New("task is empty")
	}
	if a.offline(ctx) {
		return OfflineNotice, BudgetExhausted, nil
	}

	a.record(ctx, sessionID, models.RoleUser, task)

	result, status, err := a.loop.Run(ctx, task)
	if err != nil {
		return "", status, err
	}

	a.record(ctx, sessionID, models.RoleAssistant, result)
	return result, status, nil
}

// offline probes the backend when it supports probing. A failed probe takes
// the fallback path instead of attempting a doomed completion call.
func (a *Assistant) offline(ctx context.Context) bool {
	prober, ok := a.backend.(models.Prober)
	if !ok {
		return false
	}
	if err := prober.Probe(ctx); err != nil {
		a.log.Warn("backend probe failed, taking offline path", zap.Error(err))
		return true
	}
	return false
}

// record appends a transcript entry best-effort. Storage failures are logged
// and never affect the exchange.
func (a *Assistant) record(ctx context.Context, sessionID, role, content string) {
	if a.store == nil || sessionID == "" {
		return
	}
	err := a.store.Append(ctx, history.Entry{
		ID:        uuid.New(),
		SessionID: sessionID,
		Role:      role,
		Content:   content,
	})
	if err != nil {
		a.log.Warn("failed to record transcript entry", zap.Error(err))
	}
}

// recentMessages rehydrates prior turns for the session, oldest first.
func (a *Assistant) recentMessages(ctx context.Context, sessionID string) []models.Message {
	if a.store == nil || sessionID == "" {
		return nil
	}
	entries, err := a.store.Recent(ctx, sessionID, 20)
	if err != nil {
		a.log.Warn("failed to load transcript history", zap.Error(err))
		return nil
	}
	messages := make([]models.Message, 0, len(entries))
	for _, entry := range entries {
		messages = append(messages, models.Message{Role: entry.Role, Content: entry.Content})
	}
	return messages
}
