package bot

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/cbodonnell/pong/pkg/game/types"
	"github.com/cbodonnell/pong/pkg/log"
	"github.com/cbodonnell/pong/pkg/messages"
	"github.com/cbodonnell/pong/pkg/queue"
)

// readyRetrySnapshots is how many unready snapshots the bot waits before asking again.
const readyRetrySnapshots = 30

// Sender issues intents to the server.
type Sender interface {
	Ready(ctx context.Context) error
	Rematch(ctx context.Context) error
	SetPosition(ctx context.Context, y float64) error
}

// Bot readies up, follows the ball with its paddle and asks for a rematch after every match.
type Bot struct {
	sender       Sender
	messageQueue queue.Queue
	interval     time.Duration
	paddleHeight float64
	// deadband is the smallest paddle correction worth sending
	deadband float64

	sessionID string
	slot      int
	lastY     float64
	// readyWait counts unready snapshots since the last ready request, 0 when none is pending
	readyWait int
}

type NewBotOptions struct {
	Sender       Sender
	MessageQueue queue.Queue
	Interval     time.Duration
	PaddleHeight float64
	Deadband     float64
}

func NewBot(opts NewBotOptions) *Bot {
	return &Bot{
		sender:       opts.Sender,
		messageQueue: opts.MessageQueue,
		interval:     opts.Interval,
		paddleHeight: opts.PaddleHeight,
		deadband:     opts.Deadband,
		slot:         types.NoSlot,
		lastY:        math.NaN(),
	}
}

// Start processes received messages every interval until ctx is done.
func (b *Bot) Start(ctx context.Context) error {
	ticker := time.NewTicker(b.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := b.processMessages(ctx); err != nil {
				return err
			}
		}
	}
}

func (b *Bot) processMessages(ctx context.Context) error {
	pending, err := b.messageQueue.ReadAllMessages()
	if err != nil {
		return fmt.Errorf("failed to read messages: %v", err)
	}
	for _, item := range pending {
		msg, ok := item.(*messages.Message)
		if !ok {
			log.Error("Failed to cast message to messages.Message")
			continue
		}
		if err := b.handleMessage(ctx, msg); err != nil {
			return err
		}
	}
	return nil
}

func (b *Bot) handleMessage(ctx context.Context, msg *messages.Message) error {
	switch msg.Type {
	case messages.MessageTypeServerSessionAssigned:
		assigned := &messages.ServerSessionAssigned{}
		if err := json.Unmarshal(msg.Payload, assigned); err != nil {
			log.Warn("Failed to unmarshal %s: %v", msg.Type, err)
			return nil
		}
		b.sessionID = assigned.SessionID
		b.slot = assigned.Slot
		if b.slot == types.NoSlot {
			log.Info("Spectating as %s", b.sessionID)
			return nil
		}
		log.Info("Playing slot %d as %s", b.slot, b.sessionID)
		b.readyWait = 1
		return b.sender.Ready(ctx)
	case messages.MessageTypeServerMatchState:
		snapshot, err := messages.DeserializeMatchState(msg.Payload)
		if err != nil {
			log.Warn("Failed to deserialize match state: %v", err)
			return nil
		}
		if err := b.keepReady(ctx, snapshot); err != nil {
			return err
		}
		return b.follow(ctx, snapshot)
	case messages.MessageTypeServerPointScored:
		point := &messages.ServerPointScored{}
		if err := json.Unmarshal(msg.Payload, point); err == nil {
			log.Info("Slot %d scored, %d-%d", point.Slot, point.Scores[0], point.Scores[1])
		}
	case messages.MessageTypeServerMatchWon:
		won := &messages.ServerMatchWon{}
		if err := json.Unmarshal(msg.Payload, won); err == nil {
			log.Info("Slot %d won the match, %d-%d", won.Winner, won.Scores[0], won.Scores[1])
		}
		if b.slot == types.NoSlot {
			return nil
		}
		b.readyWait = 1
		return b.sender.Rematch(ctx)
	default:
		log.Trace("Ignoring %s", msg.Type)
	}
	return nil
}

// keepReady asks again whenever the bot's slot shows up unready outside a match,
// which happens after the server resets the match to the lobby.
func (b *Bot) keepReady(ctx context.Context, snapshot *messages.ServerMatchState) error {
	if b.slot == types.NoSlot || b.slot >= len(snapshot.Slots) {
		return nil
	}
	own := snapshot.Slots[b.slot]
	if own.SessionID != b.sessionID {
		return nil
	}
	if own.Ready || snapshot.Phase == uint8(types.MatchPhasePlaying) {
		b.readyWait = 0
		return nil
	}

	pending := b.readyWait > 0
	b.readyWait++
	if b.readyWait > readyRetrySnapshots {
		b.readyWait = 0
	}
	if pending {
		return nil
	}

	log.Debug("Slot %d is not ready, asking again", b.slot)
	b.readyWait = 1
	if snapshot.Phase == uint8(types.MatchPhaseEnded) {
		return b.sender.Rematch(ctx)
	}
	return b.sender.Ready(ctx)
}

// follow centres the paddle on the ball while the match is played.
func (b *Bot) follow(ctx context.Context, snapshot *messages.ServerMatchState) error {
	if b.slot == types.NoSlot || snapshot.Phase != uint8(types.MatchPhasePlaying) {
		return nil
	}

	y := snapshot.Ball.Position.Y - b.paddleHeight/2
	if !math.IsNaN(b.lastY) && math.Abs(y-b.lastY) < b.deadband {
		return nil
	}
	b.lastY = y
	return b.sender.SetPosition(ctx, y)
}
