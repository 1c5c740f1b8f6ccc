package sessions

import (
	"testing"

	"github.com/cbodonnell/pong/pkg/game/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_ConnectBindsSlotsInOrder(t *testing.T) {
	r := NewRegistry()

	slot, err := r.Connect("a")
	require.NoError(t, err)
	assert.Equal(t, types.SlotLeft, slot)

	slot, err = r.Connect("b")
	require.NoError(t, err)
	assert.Equal(t, types.SlotRight, slot)

	slot, err = r.Connect("c")
	assert.ErrorIs(t, err, ErrCapacityExceeded)
	assert.Equal(t, types.NoSlot, slot)

	assert.Equal(t, 3, r.Count())
	assert.Equal(t, []string{"a", "b", "c"}, r.Sessions())
}

func TestRegistry_ConnectRejectsDuplicatesAndEmptyIDs(t *testing.T) {
	r := NewRegistry()
	_, err := r.Connect("a")
	require.NoError(t, err)

	_, err = r.Connect("a")
	assert.ErrorIs(t, err, ErrAlreadyConnected)

	_, err = r.Connect("")
	assert.ErrorIs(t, err, ErrEmptySessionID)

	assert.Equal(t, 1, r.Count())
}

func TestRegistry_Resolve(t *testing.T) {
	r := NewRegistry()
	_, _ = r.Connect("a")
	_, _ = r.Connect("b")
	_, _ = r.Connect("spectator")

	tests := []struct {
		name      string
		sessionID string
		want      int
		wantErr   error
	}{
		{name: "left", sessionID: "a", want: types.SlotLeft},
		{name: "right", sessionID: "b", want: types.SlotRight},
		{name: "spectator", sessionID: "spectator", want: types.NoSlot, wantErr: ErrNotBound},
		{name: "unknown", sessionID: "ghost", want: types.NoSlot, wantErr: ErrSessionNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Resolve(tt.sessionID)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRegistry_DisconnectFreesSlotForReuse(t *testing.T) {
	r := NewRegistry()
	_, _ = r.Connect("a")
	_, _ = r.Connect("b")

	result, err := r.Disconnect("a")
	require.NoError(t, err)
	assert.Equal(t, types.SlotLeft, result.Slot)
	assert.Empty(t, result.Promoted)
	assert.Equal(t, "", r.SessionAt(types.SlotLeft))
	assert.Equal(t, "b", r.SessionAt(types.SlotRight))

	slot, err := r.Connect("c")
	require.NoError(t, err)
	assert.Equal(t, types.SlotLeft, slot)
}

func TestRegistry_DisconnectPromotesEarliestSpectator(t *testing.T) {
	r := NewRegistry()
	_, _ = r.Connect("a")
	_, _ = r.Connect("b")
	_, _ = r.Connect("c")
	_, _ = r.Connect("d")

	result, err := r.Disconnect("b")
	require.NoError(t, err)
	assert.Equal(t, types.SlotRight, result.Slot)
	assert.Equal(t, "c", result.Promoted)

	slot, err := r.Resolve("c")
	require.NoError(t, err)
	assert.Equal(t, types.SlotRight, slot)

	_, err = r.Resolve("d")
	assert.ErrorIs(t, err, ErrNotBound)
}

func TestRegistry_DisconnectSpectatorKeepsSlots(t *testing.T) {
	r := NewRegistry()
	_, _ = r.Connect("a")
	_, _ = r.Connect("b")
	_, _ = r.Connect("c")

	result, err := r.Disconnect("c")
	require.NoError(t, err)
	assert.Equal(t, types.NoSlot, result.Slot)
	assert.Equal(t, "a", r.SessionAt(types.SlotLeft))
	assert.Equal(t, "b", r.SessionAt(types.SlotRight))
	assert.Equal(t, 2, r.Count())
}

func TestRegistry_DisconnectUnknown(t *testing.T) {
	r := NewRegistry()
	result, err := r.Disconnect("ghost")
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.Equal(t, types.NoSlot, result.Slot)
}
