package game

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/cbodonnell/pong/pkg/game/types"
	"github.com/cbodonnell/pong/pkg/log"
	"github.com/cbodonnell/pong/pkg/messages"
)

// ErrInvalidIntent is returned for intents the current phase does not accept
// or whose payload cannot be used.
var ErrInvalidIntent = errors.New("invalid intent")

// processClientMessages applies all pending client intents in arrival order.
// Rejected intents are dropped; clients correct themselves from the next snapshot.
func (gm *GameManager) processClientMessages() {
	pendingMessages, err := gm.clientMessageQueue.ReadAllMessages()
	if err != nil {
		log.Error("Failed to read client messages: %v", err)
		return
	}
	for _, item := range pendingMessages {
		message, ok := item.(*messages.Message)
		if !ok {
			log.Error("Failed to cast message to messages.Message")
			continue
		}

		if err := gm.applyIntent(message); err != nil {
			log.Debug("Dropped %s from %s: %v", message.Type, message.SessionID, err)
		}
	}
}

func (gm *GameManager) applyIntent(message *messages.Message) error {
	switch message.Type {
	case messages.MessageTypeClientMove:
		move := &messages.ClientMove{}
		if err := json.Unmarshal(message.Payload, move); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidIntent, err)
		}
		return gm.move(message.SessionID, move.Direction)
	case messages.MessageTypeClientSetPosition:
		position := &messages.ClientSetPosition{}
		if err := json.Unmarshal(message.Payload, position); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidIntent, err)
		}
		return gm.setPosition(message.SessionID, position.Y)
	case messages.MessageTypeClientReady, messages.MessageTypeClientRematch:
		return gm.setReady(message.SessionID)
	default:
		return fmt.Errorf("%w: unhandled message type %s", ErrInvalidIntent, message.Type)
	}
}

// move steps the session's paddle by the paddle speed. Up is towards y = 0.
func (gm *GameManager) move(sessionID string, direction messages.MoveDirection) error {
	slot, err := gm.playingSlot(sessionID)
	if err != nil {
		return err
	}

	var dy float64
	switch direction {
	case messages.MoveDirectionUp:
		dy = -gm.cfg.PaddleSpeed
	case messages.MoveDirectionDown:
		dy = gm.cfg.PaddleSpeed
	default:
		return fmt.Errorf("%w: unknown direction %q", ErrInvalidIntent, direction)
	}

	gm.matchState.SetPaddleY(slot, gm.matchState.Slots[slot].Y+dy, gm.cfg)
	return nil
}

// setPosition places the session's paddle, clamped to the board.
func (gm *GameManager) setPosition(sessionID string, y float64) error {
	slot, err := gm.playingSlot(sessionID)
	if err != nil {
		return err
	}
	if math.IsNaN(y) || math.IsInf(y, 0) {
		return fmt.Errorf("%w: position %v", ErrInvalidIntent, y)
	}

	gm.matchState.SetPaddleY(slot, y, gm.cfg)
	return nil
}

// setReady marks the session's slot ready, or requests a rematch once the match ended.
// Repeated requests change nothing.
func (gm *GameManager) setReady(sessionID string) error {
	slot, err := gm.registry.Resolve(sessionID)
	if err != nil {
		return err
	}
	if gm.matchState.Phase == types.MatchPhasePlaying {
		return fmt.Errorf("%w: ready while playing", ErrInvalidIntent)
	}

	paddle := &gm.matchState.Slots[slot]
	if paddle.Ready {
		return nil
	}
	paddle.Ready = true

	log.Debug("Session %s in slot %d is ready", sessionID, slot)
	gm.emit("", messages.MessageTypeServerReadyChanged, &messages.ServerReadyChanged{
		SessionID: sessionID,
		Ready:     true,
	})

	gm.evaluateStart()
	return nil
}

// playingSlot resolves the slot of a session allowed to move its paddle.
func (gm *GameManager) playingSlot(sessionID string) (int, error) {
	slot, err := gm.registry.Resolve(sessionID)
	if err != nil {
		return types.NoSlot, err
	}
	if gm.matchState.Phase != types.MatchPhasePlaying {
		return types.NoSlot, fmt.Errorf("%w: paddle input while %s", ErrInvalidIntent, gm.matchState.Phase)
	}
	return slot, nil
}
