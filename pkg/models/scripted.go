package models

import (
	"context"
	"errors"
	"sync"
)

// ScriptedBackend replays a fixed sequence of responses. It is the local
// stand-in for a real backend in tests and offline demos: each Complete call
// consumes the next scripted response and records the transcript it was
// given. The final response repeats once the script runs out.
type ScriptedBackend struct {
	mu        sync.Mutex
	Responses []string
	Err       error
	ProbeErr  error

	Transcripts [][]Message
	ParamsSeen  []Params
	calls       int
}

// NewScriptedBackend builds a backend that answers with the given responses
// in order.
func NewScriptedBackend(responses ...string) *ScriptedBackend {
	return &ScriptedBackend{Responses: responses}
}

func (s *ScriptedBackend) Complete(_ context.Context, messages []Message, params Params) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := make([]Message, len(messages))
	copy(copied, messages)
	s.Transcripts = append(s.Transcripts, copied)
	s.ParamsSeen = append(s.ParamsSeen, params)

	if s.Err != nil {
		return "", s.Err
	}
	if len(s.Responses) == 0 {
		return "", errors.New("scripted backend has no responses")
	}

	idx := s.calls
	if idx >= len(s.Responses) {
		idx = len(s.Responses) - 1
	}
	s.calls++
	return s.Responses[idx], nil
}

func (s *ScriptedBackend) Probe(context.Context) error {
	return s.ProbeErr
}

// Calls reports how many completions were requested.
func (s *ScriptedBackend) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

var _ Backend = (*ScriptedBackend)(nil)
var _ Prober = (*ScriptedBackend)(nil)
