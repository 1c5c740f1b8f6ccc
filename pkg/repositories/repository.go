package repositories

import (
	"context"
	"fmt"
	"strings"

	"github.com/cbodonnell/pong/pkg/repositories/models"
)

// DefaultListLimit is used when a non-positive limit is requested.
const DefaultListLimit = 20

// MaxListLimit caps the number of results returned by ListMatchResults.
const MaxListLimit = 100

// Repository stores the history of finished matches.
type Repository interface {
	Close(ctx context.Context) error
	SaveMatchResult(ctx context.Context, result *models.MatchResult) error
	// ListMatchResults returns the most recent results first.
	ListMatchResults(ctx context.Context, limit int) ([]*models.MatchResult, error)
	// GetMatchResult returns *ErrNotFound for an unknown id.
	GetMatchResult(ctx context.Context, id string) (*models.MatchResult, error)
}

// NewRepository opens the repository selected by the URL scheme:
// sqlite://<path>, postgres:// or postgresql://, memory://
func NewRepository(ctx context.Context, url string) (Repository, error) {
	scheme, rest, ok := strings.Cut(url, "://")
	if !ok {
		return nil, fmt.Errorf("invalid database url %q", url)
	}

	switch scheme {
	case "sqlite", "sqlite3":
		return NewSQLiteRepository(ctx, rest)
	case "postgres", "postgresql":
		return NewPostgresRepository(ctx, url)
	case "memory":
		return NewInMemoryRepository(), nil
	default:
		return nil, fmt.Errorf("unsupported database scheme %q", scheme)
	}
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	if limit > MaxListLimit {
		return MaxListLimit
	}
	return limit
}
