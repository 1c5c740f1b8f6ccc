package game

import (
	"context"

	"github.com/cbodonnell/pong/pkg/game/types"
	"github.com/cbodonnell/pong/pkg/log"
	"github.com/cbodonnell/pong/pkg/messages"
	"github.com/cbodonnell/pong/pkg/workers"
)

func ServerMatchStateFromState(state *types.MatchState) *messages.ServerMatchState {
	slots := make([]messages.PaddleSlotState, 0, len(state.Slots))
	for _, slot := range state.Slots {
		slots = append(slots, messages.PaddleSlotState{
			Index:     slot.Index,
			SessionID: slot.SessionID,
			Y:         slot.Y,
			Score:     slot.Score,
			Ready:     slot.Ready,
		})
	}

	return &messages.ServerMatchState{
		Timestamp:     state.Timestamp,
		Phase:         uint8(state.Phase),
		Winner:        state.Winner,
		Connected:     state.Connected,
		ScoringPaused: state.ScoringPaused,
		Ball: messages.BallState{
			Position: state.Ball.Position,
			Velocity: state.Ball.Velocity,
		},
		Slots: slots,
	}
}

// publishMatchState stores the snapshot and broadcasts it to every session.
func (gm *GameManager) publishMatchState() {
	snapshot := ServerMatchStateFromState(gm.matchState)
	if gm.stateManager != nil {
		if err := gm.stateManager.Set(context.Background(), snapshot); err != nil {
			log.Error("Failed to store match state: %v", err)
		}
	}
	gm.emit("", messages.MessageTypeServerMatchState, snapshot)
}

// emit hands an outbound message to the server message worker without blocking the loop.
func (gm *GameManager) emit(sessionID string, messageType messages.MessageType, message interface{}) {
	select {
	case gm.serverMessageChan <- workers.ServerMessage{
		SessionID: sessionID,
		Type:      messageType,
		Message:   message,
	}:
	default:
		log.Warn("Server message channel is full, dropping %s", messageType)
	}
}
