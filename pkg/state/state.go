package state

import (
	"context"
	"errors"

	"github.com/cbodonnell/pong/pkg/messages"
)

// ErrNoSnapshot is returned by Get before the first snapshot was published.
var ErrNoSnapshot = errors.New("no snapshot published yet")

// StateManager provides shared access to the latest match snapshot.
// Implementations must be thread-safe.
type StateManager interface {
	// Get returns a copy of the latest snapshot.
	Get(ctx context.Context) (*messages.ServerMatchState, error)
	// Set replaces the latest snapshot.
	Set(ctx context.Context, snapshot *messages.ServerMatchState) error
}
