package types

import (
	"testing"

	"github.com/cbodonnell/pong/pkg/config"
	"github.com/cbodonnell/pong/pkg/kinematic"
	"github.com/stretchr/testify/assert"
)

func TestNewMatchState(t *testing.T) {
	cfg := config.DefaultGameConfig()
	state := NewMatchState(cfg)

	assert.Equal(t, MatchPhaseLobby, state.Phase)
	assert.Equal(t, NoSlot, state.Winner)
	assert.Equal(t, kinematic.Vector{X: cfg.BoardWidth / 2, Y: cfg.BoardHeight / 2}, state.Ball.Position)
	assert.Equal(t, kinematic.Vector{}, state.Ball.Velocity)
	for i, slot := range state.Slots {
		assert.Equal(t, i, slot.Index)
		assert.False(t, slot.Bound())
	}
}

func TestMatchState_SetPaddleYClamps(t *testing.T) {
	cfg := config.DefaultGameConfig()
	state := NewMatchState(cfg)

	state.SetPaddleY(SlotLeft, -30, cfg)
	state.SetPaddleY(SlotRight, cfg.BoardHeight*2, cfg)

	assert.Equal(t, 0.0, state.Slots[SlotLeft].Y)
	assert.Equal(t, cfg.MaxPaddleY(), state.Slots[SlotRight].Y)
}

func TestMatchState_AllReady(t *testing.T) {
	state := NewMatchState(config.DefaultGameConfig())
	state.Slots[0].SessionID = "a"
	state.Slots[0].Ready = true
	assert.False(t, state.AllReady())

	state.Slots[1].SessionID = "b"
	assert.False(t, state.AllReady())

	state.Slots[1].Ready = true
	assert.True(t, state.AllReady())
	assert.Equal(t, 2, state.BoundCount())

	state.ClearReady()
	assert.False(t, state.AllReady())
}
