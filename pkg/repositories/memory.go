package repositories

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/cbodonnell/pong/pkg/repositories/models"
)

// InMemoryRepository keeps match history for the lifetime of the process.
type InMemoryRepository struct {
	lock    sync.RWMutex
	results map[string]models.MatchResult
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		results: make(map[string]models.MatchResult),
	}
}

func (r *InMemoryRepository) Close(ctx context.Context) error {
	return nil
}

func (r *InMemoryRepository) SaveMatchResult(ctx context.Context, result *models.MatchResult) error {
	if result == nil || result.ID == "" {
		return fmt.Errorf("match result has no id")
	}

	r.lock.Lock()
	defer r.lock.Unlock()
	r.results[result.ID] = *result
	return nil
}

func (r *InMemoryRepository) ListMatchResults(ctx context.Context, limit int) ([]*models.MatchResult, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	results := make([]*models.MatchResult, 0, len(r.results))
	for _, result := range r.results {
		result := result
		results = append(results, &result)
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].EndedAt.After(results[j].EndedAt)
	})

	if limit = clampLimit(limit); len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

func (r *InMemoryRepository) GetMatchResult(ctx context.Context, id string) (*models.MatchResult, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	result, ok := r.results[id]
	if !ok {
		return nil, &ErrNotFound{}
	}
	return &result, nil
}
