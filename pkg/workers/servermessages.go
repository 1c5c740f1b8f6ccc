package workers

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cbodonnell/pong/pkg/log"
	"github.com/cbodonnell/pong/pkg/messages"
)

// MessageSender delivers serialized messages to connected clients.
type MessageSender interface {
	SendMessageToAll(ctx context.Context, msg *messages.Message) error
	SendMessageToClient(ctx context.Context, clientID string, msg *messages.Message) error
}

type ServerMessageWorker struct {
	sender            MessageSender
	serverMessageChan <-chan ServerMessage
}

// ServerMessage is an outbound event produced by the game loop.
type ServerMessage struct {
	// SessionID targets a single session; empty means every connected session
	SessionID string
	Type      messages.MessageType
	Message   interface{}
}

type NewServerMessageWorkerOptions struct {
	Sender            MessageSender
	ServerMessageChan <-chan ServerMessage
}

func NewServerMessageWorker(opts NewServerMessageWorkerOptions) *ServerMessageWorker {
	return &ServerMessageWorker{
		sender:            opts.Sender,
		serverMessageChan: opts.ServerMessageChan,
	}
}

func (w *ServerMessageWorker) Start(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg := <-w.serverMessageChan:
			if err := w.handleServerMessage(ctx, msg); err != nil {
				log.Error("Failed to handle %s message: %v", msg.Type, err)
			}
		}
	}
}

func (w *ServerMessageWorker) handleServerMessage(ctx context.Context, msg ServerMessage) error {
	payload, err := encodePayload(msg)
	if err != nil {
		return err
	}

	out := &messages.Message{
		Type:    msg.Type,
		Payload: payload,
	}

	if msg.SessionID != "" {
		return w.sender.SendMessageToClient(ctx, msg.SessionID, out)
	}
	return w.sender.SendMessageToAll(ctx, out)
}

// encodePayload uses flatbuffers for snapshots and JSON for events.
func encodePayload(msg ServerMessage) ([]byte, error) {
	switch msg.Type {
	case messages.MessageTypeServerMatchState:
		snapshot, ok := msg.Message.(*messages.ServerMatchState)
		if !ok {
			return nil, fmt.Errorf("failed to cast server match state message")
		}
		payload, err := messages.SerializeMatchState(snapshot)
		if err != nil {
			return nil, fmt.Errorf("failed to serialize match state: %v", err)
		}
		return payload, nil
	case messages.MessageTypeServerSessionAssigned,
		messages.MessageTypeServerPlayerCount,
		messages.MessageTypeServerReadyChanged,
		messages.MessageTypeServerPointScored,
		messages.MessageTypeServerMatchWon:
		payload, err := json.Marshal(msg.Message)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal %s message: %v", msg.Type, err)
		}
		return payload, nil
	default:
		return nil, fmt.Errorf("unknown server message type: %v", msg.Type)
	}
}
