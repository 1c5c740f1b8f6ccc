package network

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/cbodonnell/pong/pkg/log"
	"github.com/cbodonnell/pong/pkg/messages"
	"github.com/cbodonnell/pong/pkg/queue"
	"nhooyr.io/websocket"
)

const (
	DefaultServerURL = "ws://localhost:8888/ws"
)

// NetworkManager is the client side of the WebSocket transport.
// Inbound messages are enqueued on the message queue for the client loop.
type NetworkManager struct {
	serverURL    string
	token        string
	codec        messages.Codec
	messageQueue queue.Queue

	conn      *websocket.Conn
	writeLock sync.Mutex
}

type NewNetworkManagerOptions struct {
	ServerURL string
	// Token is sent as a bearer token when set
	Token        string
	Codec        messages.Codec
	MessageQueue queue.Queue
}

// NewNetworkManager creates a new network manager.
func NewNetworkManager(opts NewNetworkManagerOptions) *NetworkManager {
	serverURL := opts.ServerURL
	if serverURL == "" {
		serverURL = DefaultServerURL
	}
	return &NetworkManager{
		serverURL:    serverURL,
		token:        opts.Token,
		codec:        opts.Codec,
		messageQueue: opts.MessageQueue,
	}
}

// Connect dials the server.
func (m *NetworkManager) Connect(ctx context.Context) error {
	dialOpts := &websocket.DialOptions{}
	if m.token != "" {
		dialOpts.HTTPHeader = http.Header{"Authorization": []string{"Bearer " + m.token}}
	}

	conn, _, err := websocket.Dial(ctx, m.serverURL, dialOpts)
	if err != nil {
		return fmt.Errorf("failed to connect to server: %v", err)
	}
	conn.SetReadLimit(messages.MaxMessageSize)
	m.conn = conn
	log.Info("Connected to %s", m.serverURL)
	return nil
}

// Listen reads messages until the connection fails or ctx is done.
func (m *NetworkManager) Listen(ctx context.Context) error {
	if m.conn == nil {
		return fmt.Errorf("not connected")
	}
	for {
		messageType, b, err := m.conn.Read(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("failed to read message: %v", err)
		}
		if messageType != websocket.MessageBinary {
			log.Warn("Ignoring non-binary frame")
			continue
		}

		msg, err := messages.DeserializeMessage(m.codec, b)
		if err != nil {
			log.Warn("Failed to deserialize message: %v", err)
			continue
		}
		log.Trace("Received %s", msg.Type)

		if err := m.messageQueue.Enqueue(msg); err != nil {
			log.Error("Failed to enqueue message: %v", err)
		}
	}
}

// SendMessage writes a message to the server.
func (m *NetworkManager) SendMessage(ctx context.Context, msg *messages.Message) error {
	if m.conn == nil {
		return fmt.Errorf("not connected")
	}
	b, err := messages.SerializeMessage(m.codec, msg)
	if err != nil {
		return fmt.Errorf("failed to serialize message: %v", err)
	}

	m.writeLock.Lock()
	defer m.writeLock.Unlock()
	if err := m.conn.Write(ctx, websocket.MessageBinary, b); err != nil {
		return fmt.Errorf("failed to write message: %v", err)
	}
	return nil
}

func (m *NetworkManager) Ready(ctx context.Context) error {
	return m.send(ctx, messages.MessageTypeClientReady, nil)
}

func (m *NetworkManager) Rematch(ctx context.Context) error {
	return m.send(ctx, messages.MessageTypeClientRematch, nil)
}

func (m *NetworkManager) Move(ctx context.Context, direction messages.MoveDirection) error {
	return m.send(ctx, messages.MessageTypeClientMove, &messages.ClientMove{Direction: direction})
}

func (m *NetworkManager) SetPosition(ctx context.Context, y float64) error {
	return m.send(ctx, messages.MessageTypeClientSetPosition, &messages.ClientSetPosition{Y: y})
}

func (m *NetworkManager) send(ctx context.Context, messageType messages.MessageType, payload interface{}) error {
	var b []byte
	if payload != nil {
		var err error
		if b, err = json.Marshal(payload); err != nil {
			return fmt.Errorf("failed to marshal %s payload: %v", messageType, err)
		}
	}
	return m.SendMessage(ctx, &messages.Message{
		Type:    messageType,
		Payload: b,
	})
}

// Close closes the connection to the server.
func (m *NetworkManager) Close() error {
	if m.conn == nil {
		return nil
	}
	return m.conn.Close(websocket.StatusNormalClosure, "")
}
