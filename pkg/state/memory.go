package state

import (
	"context"
	"fmt"
	"sync"

	"github.com/cbodonnell/pong/pkg/messages"
)

type InMemoryStateManager struct {
	lock     sync.RWMutex
	snapshot *messages.ServerMatchState
}

func NewInMemoryStateManager() *InMemoryStateManager {
	return &InMemoryStateManager{}
}

func (m *InMemoryStateManager) Get(ctx context.Context) (*messages.ServerMatchState, error) {
	m.lock.RLock()
	defer m.lock.RUnlock()

	if m.snapshot == nil {
		return nil, ErrNoSnapshot
	}
	return copySnapshot(m.snapshot), nil
}

func (m *InMemoryStateManager) Set(ctx context.Context, snapshot *messages.ServerMatchState) error {
	if snapshot == nil {
		return fmt.Errorf("snapshot is nil")
	}

	c := copySnapshot(snapshot)

	m.lock.Lock()
	defer m.lock.Unlock()
	m.snapshot = c
	return nil
}

func copySnapshot(s *messages.ServerMatchState) *messages.ServerMatchState {
	c := *s
	c.Slots = append([]messages.PaddleSlotState(nil), s.Slots...)
	return &c
}
