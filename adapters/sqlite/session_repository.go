package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"coinlab/internal/errors"
	"coinlab/ports"
)

// SessionRepository keeps the last simulation snapshot per UI session in an
// in-process SQLite database. With the default :memory: DSN nothing
// survives the process, so results persist across redraws but never across
// sessions.
type SessionRepository struct {
	db *sqlx.DB
}

// NewSessionRepository opens (or creates) the SQLite database and runs
// migrations.
func NewSessionRepository(dsn string) (*SessionRepository, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.StoreError("open sqlite", err)
	}

	// A :memory: database exists per connection; pin the pool to one so
	// every query sees the same schema and rows.
	db.SetMaxOpenConns(1)

	r := &SessionRepository{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, errors.StoreError("migrate", err)
	}

	return r, nil
}

func (r *SessionRepository) migrate() error {
	_, err := r.db.Exec(`
		CREATE TABLE IF NOT EXISTS flip_sessions (
			session_id   TEXT PRIMARY KEY,
			payload      TEXT NOT NULL,
			version      INTEGER NOT NULL,
			last_updated TIMESTAMP NOT NULL
		)`)
	return err
}

// Save stores or replaces the snapshot for a session
func (r *SessionRepository) Save(ctx context.Context, snapshot *ports.SessionSnapshot) error {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return errors.StoreError("marshal session snapshot", err)
	}

	query := `
		INSERT INTO flip_sessions (session_id, payload, version, last_updated)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (session_id) DO UPDATE SET
			payload = excluded.payload,
			version = excluded.version,
			last_updated = excluded.last_updated`

	_, err = r.db.ExecContext(ctx, query,
		snapshot.SessionID.String(),
		string(payload),
		snapshot.Version,
		snapshot.LastUpdated,
	)
	if err != nil {
		return errors.StoreError("save session snapshot", err)
	}
	return nil
}

// Get retrieves the current snapshot for a session. Returns (nil, nil) when
// the session has no snapshot yet.
func (r *SessionRepository) Get(ctx context.Context, sessionID uuid.UUID) (*ports.SessionSnapshot, error) {
	var payload string
	err := r.db.QueryRowContext(ctx,
		`SELECT payload FROM flip_sessions WHERE session_id = ?`,
		sessionID.String(),
	).Scan(&payload)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, errors.StoreError("get session snapshot", err)
	}

	var snapshot ports.SessionSnapshot
	if err := json.Unmarshal([]byte(payload), &snapshot); err != nil {
		return nil, errors.StoreError("unmarshal session snapshot", err)
	}
	return &snapshot, nil
}

// Delete removes the snapshot for a session. Deleting a session that has no
// snapshot is not an error.
func (r *SessionRepository) Delete(ctx context.Context, sessionID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM flip_sessions WHERE session_id = ?`,
		sessionID.String(),
	)
	if err != nil {
		return errors.StoreError("delete session snapshot", err)
	}
	return nil
}

// CleanupStale drops snapshots older than maxAge and reports how many were
// removed.
func (r *SessionRepository) CleanupStale(ctx context.Context, maxAge time.Duration) (int64, error) {
	cutoff := time.Now().Add(-maxAge)
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM flip_sessions WHERE last_updated < ?`,
		cutoff,
	)
	if err != nil {
		return 0, errors.StoreError("cleanup stale sessions", err)
	}
	removed, _ := result.RowsAffected()
	return removed, nil
}

// Close releases the underlying database
func (r *SessionRepository) Close() error {
	return r.db.Close()
}
