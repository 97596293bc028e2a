// Package storage persists combat rosters in Redis and loads character sheet
// specs from the data directory.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jwebster45206/combat-engine/pkg/combat"
	"github.com/jwebster45206/combat-engine/pkg/sheet"
)

// ErrSheetNotFound is returned when no sheet spec exists for an id.
var ErrSheetNotFound = errors.New("sheet not found")

// Roster is the restorable state of one combat session.
type Roster struct {
	SessionID uuid.UUID            `json:"session_id"`
	Turn      int                  `json:"turn"`
	Entries   []combat.RosterEntry `json:"entries"`
	UpdatedAt time.Time            `json:"updated_at"`
}

// Storage combines roster persistence (Redis) with sheet loading (filesystem).
type Storage interface {
	// Health and lifecycle
	Ping(ctx context.Context) error
	Close() error

	// Roster operations (Redis-backed). LoadRoster returns nil, nil when the
	// roster does not exist.
	SaveRoster(ctx context.Context, r *Roster) error
	LoadRoster(ctx context.Context, id uuid.UUID) (*Roster, error)
	DeleteRoster(ctx context.Context, id uuid.UUID) error
	ListRosters(ctx context.Context) ([]uuid.UUID, error)

	// Sheet operations (filesystem-backed)
	GetSheetSpec(ctx context.Context, id string) (*sheet.Spec, error)
	ListSheets(ctx context.Context) ([]string, error)
}
