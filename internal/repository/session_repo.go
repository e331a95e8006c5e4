package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/liliang-cn/claimwizard/internal/domain"
)

// SQLiteSessionStore keeps session state as JSON rows. Rows idle longer
// than ttl are treated as missing and removed by Sweep.
type SQLiteSessionStore struct {
	db  *DB
	ttl time.Duration
}

// NewSQLiteSessionStore creates a new session store
func NewSQLiteSessionStore(db *DB, ttl time.Duration) *SQLiteSessionStore {
	return &SQLiteSessionStore{db: db, ttl: ttl}
}

// Get retrieves a session by ID
func (r *SQLiteSessionStore) Get(ctx context.Context, id string) (*domain.Session, error) {
	var state string
	var updatedAt int64

	err := r.db.QueryRowContext(ctx, `
		SELECT state, updated_at FROM sessions WHERE id = ?
	`, id).Scan(&state, &updatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if r.expired(time.Unix(0, updatedAt)) {
		return nil, nil
	}

	session := &domain.Session{}
	if err := json.Unmarshal([]byte(state), session); err != nil {
		return nil, fmt.Errorf("failed to decode session %s: %w", id, err)
	}
	return session, nil
}

// Save inserts or replaces a session
func (r *SQLiteSessionStore) Save(ctx context.Context, session *domain.Session) error {
	now := time.Now()
	if session.CreatedAt.IsZero() {
		session.CreatedAt = now
	}
	session.UpdatedAt = now

	state, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to encode session %s: %w", session.ID, err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO sessions (id, state, created_at, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET state = excluded.state, updated_at = excluded.updated_at
	`, session.ID, string(state), session.CreatedAt.UnixNano(), session.UpdatedAt.UnixNano())

	return err
}

// Delete deletes a session
func (r *SQLiteSessionStore) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id)
	return err
}

// Count returns the number of stored sessions, expired rows included
func (r *SQLiteSessionStore) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM sessions`).Scan(&count)
	return count, err
}

// Sweep removes expired sessions and returns their ids
func (r *SQLiteSessionStore) Sweep(ctx context.Context) ([]string, error) {
	if r.ttl <= 0 {
		return nil, nil
	}
	cutoff := time.Now().Add(-r.ttl).UnixNano()

	rows, err := r.db.QueryContext(ctx, `SELECT id FROM sessions WHERE updated_at < ?`, cutoff)
	if err != nil {
		return nil, err
	}
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, err
		}
		ids = append(ids, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, id := range ids {
		if err := r.Delete(ctx, id); err != nil {
			return nil, err
		}
	}
	return ids, nil
}

// Close closes the database
func (r *SQLiteSessionStore) Close() error {
	return r.db.Close()
}

func (r *SQLiteSessionStore) expired(updatedAt time.Time) bool {
	return r.ttl > 0 && time.Since(updatedAt) > r.ttl
}
