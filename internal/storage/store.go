// Package storage persists full planner snapshots. Two backends exist:
// a JSON document on disk and a SQLite database. Both write the whole
// state at once; there is no incremental persistence.
package storage

import (
	"errors"

	"github.com/sandeepkv93/dayplan/internal/planner"
)

// ErrCorruptState marks a persisted blob that could not be decoded.
// Loaders recover by returning an empty snapshot alongside it; callers
// log the diagnostic and continue.
var ErrCorruptState = errors.New("storage: corrupt persisted state")

type Store interface {
	// Load reads the persisted snapshot. A missing blob yields an
	// empty snapshot and a nil error. A malformed blob yields an
	// empty snapshot and an error wrapping ErrCorruptState.
	Load() (planner.Snapshot, error)
	// Save writes the full snapshot, replacing any previous state.
	Save(planner.Snapshot) error
	Close() error
}
