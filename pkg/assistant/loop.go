package assistant

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/pagepilot-ai/pagepilot/pkg/models"
	"go.uber.org/zap"
)

// Status is the agentic loop's lifecycle state.
type Status int

const (
	// Running means the loop has turns left and no completion signal yet.
	Running Status = iota
	// Completed means a completion phrase was observed in the model output.
	Completed
	// BudgetExhausted means the turn budget ran out; the last turn's text is
	// still returned as a best-effort answer, not an error.
	BudgetExhausted
)

func (s Status) String() string {
	switch s {
	case Running:
		return "running"
	case Completed:
		return "completed"
	case BudgetExhausted:
		return "budget_exhausted"
	default:
		return "unknown"
	}
}

// completionPhrases signal that the model considers the task done. Matched
// case-insensitively as substrings.
var completionPhrases = []string{
	"task complete:",
	"analysis complete",
	"here is your final answer",
	"task finished",
	"completed successfully",
}

// DefaultMaxTurns bounds agentic runs that do not configure a budget.
const DefaultMaxTurns = 5

// State is the working state of a single agentic run. It is a value passed
// through each transition, never shared mutable storage, and it is discarded
// when the run terminates. CurrentTurn never decreases and never exceeds
// MaxTurns.
type State struct {
	RunID          string
	CurrentTask    string
	TaskSteps      []string
	CompletedSteps []string
	Context        map[string]any
	Accumulated    string
	MaxTurns       int
	CurrentTurn    int
	Status         Status
	Result         string
}

// NewState initialises the state for a run over the given task.
func NewState(task string, maxTurns int) State {
	if maxTurns <= 0 {
		maxTurns = DefaultMaxTurns
	}
	return State{
		RunID:       uuid.NewString(),
		CurrentTask: task,
		Context:     map[string]any{},
		Accumulated: task,
		MaxTurns:    maxTurns,
		Status:      Running,
	}
}

// Advance applies one turn's model output to the state and returns the next
// state. It is a pure transition: the input state is not modified.
func Advance(st State, output string) State {
	if ContainsCompletionPhrase(output) {
		st.Status = Completed
		st.Result = output
		st.CompletedSteps = append(st.CompletedSteps, output)
		return st
	}

	st.CompletedSteps = append(st.CompletedSteps, output)
	st.Accumulated += "\n\nPrevious response: " + output
	st.CurrentTurn++
	if st.CurrentTurn >= st.MaxTurns {
		st.Status = BudgetExhausted
		st.Result = output
	}
	return st
}

// ContainsCompletionPhrase reports whether text carries any completion
// signal.
func ContainsCompletionPhrase(text string) bool {
	lower := strings.ToLower(text)
	for _, phrase := range completionPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}

// Loop repeatedly drives conversational turns against a single evolving task
// context until a completion phrase appears or the turn budget runs out.
// Turns execute strictly in sequence; there is no speculative execution and
// no mid-turn cancellation beyond the caller's context.
type Loop struct {
	composer *Composer
	driver   *Driver
	maxTurns int
	log      *zap.Logger
}

// NewLoop builds an agentic loop sharing the registry and backend with the
// rest of the assistant. maxTurns <= 0 selects DefaultMaxTurns.
func NewLoop(registry *Registry, backend models.Backend, params models.Params, maxTurns int, log *zap.Logger) *Loop {
	if log == nil {
		log = zap.NewNop()
	}
	if maxTurns <= 0 {
		maxTurns = DefaultMaxTurns
	}
	return &Loop{
		composer: NewComposer(registry),
		driver:   NewDriver(registry, backend, params, log),
		maxTurns: maxTurns,
		log:      log,
	}
}

// Run executes the loop for a task and returns the final text with the
// terminal status. Budget exhaustion is not an error; a backend failure is,
// and it aborts the run.
func (l *Loop) Run(ctx context.Context, task string) (string, Status, error) {
	st := NewState(task, l.maxTurns)
	system := l.composer.AgenticPrompt()

	for st.Status == Running {
		output, err := l.driver.Respond(ctx, []models.Message{
			{Role: models.RoleSystem, Content: system},
			{Role: models.RoleUser, Content: st.Accumulated},
		})
		if err != nil {
			return "", st.Status, err
		}

		st = Advance(st, output)
		l.log.Debug("agentic turn finished",
			zap.String("run_id", st.RunID),
			zap.Int("turn", st.CurrentTurn),
			zap.String("status", st.Status.String()))
	}

	return st.Result, st.Status, nil
}
