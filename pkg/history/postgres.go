package history

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

const transcriptSchema = `
CREATE TABLE IF NOT EXISTS transcript (
    id UUID PRIMARY KEY,
    session_id TEXT NOT NULL,
    role TEXT NOT NULL,
    content TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS transcript_session_idx ON transcript (session_id, created_at);
`

// PostgresStore implements Store on a Postgres connection pool.
type PostgresStore struct {
	DB *pgxpool.Pool
}

// NewPostgresStore connects to Postgres and returns a transcript store.
func NewPostgresStore(ctx context.Context, connStr string) (*PostgresStore, error) {
	db, err := pgxpool.New(ctx, connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Postgres: %w", err)
	}
	return &PostgresStore{DB: db}, nil
}

// CreateSchema ensures the transcript table exists.
func (ps *PostgresStore) CreateSchema(ctx context.Context) error {
	if ps == nil || ps.DB == nil {
		return nil
	}
	if _, err := ps.DB.Exec(ctx, transcriptSchema); err != nil {
		return fmt.Errorf("failed to create transcript schema: %w", err)
	}
	return nil
}

func (ps *PostgresStore) Append(ctx context.Context, entry Entry) error {
	if ps == nil || ps.DB == nil {
		return nil
	}
	_, err := ps.DB.Exec(ctx, `
        INSERT INTO transcript (id, session_id, role, content, created_at)
        VALUES ($1, $2, $3, $4, COALESCE($5, now()));
        `, entry.ID, entry.SessionID, entry.Role, entry.Content, nullableTime(entry))
	return err
}

func (ps *PostgresStore) Recent(ctx context.Context, sessionID string, limit int) ([]Entry, error) {
	if ps == nil || ps.DB == nil {
		return nil, nil
	}
	rows, err := ps.DB.Query(ctx, `
        SELECT id, session_id, role, content, created_at
        FROM (
            SELECT id, session_id, role, content, created_at
            FROM transcript
            WHERE session_id = $1
            ORDER BY created_at DESC
            LIMIT $2
        ) latest
        ORDER BY created_at ASC;
        `, sessionID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var entry Entry
		if err := rows.Scan(&entry.ID, &entry.SessionID, &entry.Role, &entry.Content, &entry.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// Close releases the underlying connection pool.
func (ps *PostgresStore) Close() error {
	if ps == nil || ps.DB == nil {
		return nil
	}
	ps.DB.Close()
	return nil
}

func nullableTime(entry Entry) any {
	if entry.CreatedAt.IsZero() {
		return nil
	}
	return entry.CreatedAt
}

var _ Store = (*PostgresStore)(nil)
