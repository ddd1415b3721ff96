package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"coinlab/domain/coin"
	"coinlab/domain/stats"
)

// SessionSnapshot is the last simulation result kept for a UI session so
// results survive redraw cycles. It is replaced wholesale on each flip and
// dropped on clear; the engine itself stays stateless.
type SessionSnapshot struct {
	SessionID   uuid.UUID          `json:"session_id"`
	Trials      coin.TrialSequence `json:"trials"`
	Summary     coin.Summary       `json:"summary"`
	Test        *stats.TestResult  `json:"test,omitempty"`
	Probability float64            `json:"probability"`
	Version     int                `json:"version"`
	LastUpdated time.Time          `json:"last_updated"`
}

// SessionStorePort persists session snapshots across UI reruns within a
// single interactive session.
type SessionStorePort interface {
	Save(ctx context.Context, snapshot *SessionSnapshot) error
	Get(ctx context.Context, sessionID uuid.UUID) (*SessionSnapshot, error)
	Delete(ctx context.Context, sessionID uuid.UUID) error
	CleanupStale(ctx context.Context, maxAge time.Duration) (int64, error)
	Close() error
}
