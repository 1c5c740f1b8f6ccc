package sessions

import (
	"errors"

	"github.com/cbodonnell/pong/pkg/game/types"
)

var (
	// ErrCapacityExceeded is returned when a session connects while both slots are bound.
	// The session is still registered, as a spectator.
	ErrCapacityExceeded = errors.New("both paddle slots are taken")
	// ErrSessionNotFound is returned for a session that is not connected.
	ErrSessionNotFound = errors.New("session not found")
	// ErrNotBound is returned when a spectator is resolved to a slot.
	ErrNotBound = errors.New("session is not bound to a slot")
	// ErrAlreadyConnected is returned when a live session connects again.
	ErrAlreadyConnected = errors.New("session already connected")
	// ErrEmptySessionID is returned for an empty session identity.
	ErrEmptySessionID = errors.New("session id is empty")
)

// DisconnectResult describes the slot changes caused by a disconnect.
type DisconnectResult struct {
	// Slot is the slot released by the session, or types.NoSlot for a spectator
	Slot int
	// Promoted is the spectator that took over Slot, empty if none was waiting
	Promoted string
}

// Registry binds live sessions to the two paddle slots.
// Slots are handed out in ascending order; sessions that find both slots
// taken wait as spectators in join order and take over the first slot freed.
// It is not safe for concurrent use and belongs to the game loop.
type Registry struct {
	slots [types.SlotCount]string
	// live holds connected sessions in join order
	live []string
	// index maps a live session to its slot, types.NoSlot for spectators
	index map[string]int
}

// NewRegistry creates a registry with both slots free.
func NewRegistry() *Registry {
	return &Registry{
		index: make(map[string]int),
	}
}

// Connect registers a session and binds it to the first free slot.
// When both slots are bound it returns types.NoSlot and ErrCapacityExceeded,
// but the session stays registered as a spectator.
func (r *Registry) Connect(sessionID string) (int, error) {
	if sessionID == "" {
		return types.NoSlot, ErrEmptySessionID
	}
	if _, ok := r.index[sessionID]; ok {
		return types.NoSlot, ErrAlreadyConnected
	}

	r.live = append(r.live, sessionID)
	for slot, owner := range r.slots {
		if owner == "" {
			r.slots[slot] = sessionID
			r.index[sessionID] = slot
			return slot, nil
		}
	}

	r.index[sessionID] = types.NoSlot
	return types.NoSlot, ErrCapacityExceeded
}

// Disconnect removes a session and frees its slot, if any.
// A freed slot is rebound to the earliest waiting spectator.
func (r *Registry) Disconnect(sessionID string) (DisconnectResult, error) {
	slot, ok := r.index[sessionID]
	if !ok {
		return DisconnectResult{Slot: types.NoSlot}, ErrSessionNotFound
	}

	delete(r.index, sessionID)
	for i, id := range r.live {
		if id == sessionID {
			r.live = append(r.live[:i], r.live[i+1:]...)
			break
		}
	}

	result := DisconnectResult{Slot: slot}
	if slot == types.NoSlot {
		return result, nil
	}

	r.slots[slot] = ""
	for _, id := range r.live {
		if r.index[id] == types.NoSlot {
			r.slots[slot] = id
			r.index[id] = slot
			result.Promoted = id
			break
		}
	}

	return result, nil
}

// Resolve returns the slot bound to a session.
func (r *Registry) Resolve(sessionID string) (int, error) {
	slot, ok := r.index[sessionID]
	if !ok {
		return types.NoSlot, ErrSessionNotFound
	}
	if slot == types.NoSlot {
		return types.NoSlot, ErrNotBound
	}
	return slot, nil
}

// SessionAt returns the session bound to slot, or an empty string.
func (r *Registry) SessionAt(slot int) string {
	if slot < 0 || slot >= types.SlotCount {
		return ""
	}
	return r.slots[slot]
}

// Count is the number of live sessions, spectators included.
func (r *Registry) Count() int {
	return len(r.live)
}

// Sessions returns the live sessions in join order.
func (r *Registry) Sessions() []string {
	sessions := make([]string, len(r.live))
	copy(sessions, r.live)
	return sessions
}
