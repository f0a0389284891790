// Package history stores conversation transcripts. The assistant core never
// requires a store; deployments that want durable sessions plug one in.
package history

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Entry is one recorded transcript row.
type Entry struct {
	ID        uuid.UUID
	SessionID string
	Role      string
	Content   string
	CreatedAt time.Time
}

// Store persists transcript entries per session.
type Store interface {
	Append(ctx context.Context, entry Entry) error
	// Recent returns up to limit entries for the session in chronological
	// order.
	Recent(ctx context.Context, sessionID string, limit int) ([]Entry, error)
	Close() error
}

// MemoryStore is the default in-process Store.
type MemoryStore struct {
	mu      sync.Mutex
	entries []Entry
}

// NewMemoryStore constructs an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Append(_ context.Context, entry Entry) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, entry)
	return nil
}

func (m *MemoryStore) Recent(_ context.Context, sessionID string, limit int) ([]Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var matched []Entry
	for _, entry := range m.entries {
		if entry.SessionID == sessionID {
			matched = append(matched, entry)
		}
	}
	if limit > 0 && len(matched) > limit {
		matched = matched[len(matched)-limit:]
	}
	out := make([]Entry, len(matched))
	copy(out, matched)
	return out, nil
}

func (m *MemoryStore) Close() error { return nil }

var _ Store = (*MemoryStore)(nil)
