// internal/store/store.go
//
// Session persistence for the quiz server.
// Each player owns exactly one game.Session; stores never share state between
// sessions. Both implementations live only as long as the process:
//   - memory: map + RWMutex.
//   - sqlite: in-memory SQLite database (images kept as PNG blobs).

package store

import (
	"context"
	"errors"

	"github.com/robalobadob/logoquiz/internal/game"
)

// ErrNotFound is returned by Get for unknown session IDs.
var ErrNotFound = errors.New("store: session not found")

// Store defines the persistence interface for game sessions.
type Store interface {
	// Save persists or replaces a session.
	Save(ctx context.Context, s *game.Session) error

	// Get retrieves a session by ID, or ErrNotFound.
	Get(ctx context.Context, id string) (*game.Session, error)

	// Delete removes a session. Deleting an unknown ID is not an error.
	Delete(ctx context.Context, id string) error
}
