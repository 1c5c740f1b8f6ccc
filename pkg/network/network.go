package network

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	authproviders "github.com/cbodonnell/pong/pkg/auth/providers"
	"github.com/cbodonnell/pong/pkg/log"
	"github.com/cbodonnell/pong/pkg/messages"
	"github.com/cbodonnell/pong/pkg/queue"
	"github.com/gorilla/websocket"
)

type NetworkManager struct {
	// AuthProvider is optional; connections are anonymous without it
	AuthProvider  authproviders.AuthProvider
	ClientManager *ClientManager
	MessageQueue  queue.Queue
	Codec         messages.Codec
	WSServer      *WSServer
}

type NewNetworkManagerOptions struct {
	AuthProvider  authproviders.AuthProvider
	ClientManager *ClientManager
	MessageQueue  queue.Queue
	Codec         messages.Codec
	WSPort        int
	WSServerTLS   *TLSConfig
}

func NewNetworkManager(options NewNetworkManagerOptions) *NetworkManager {
	return &NetworkManager{
		AuthProvider:  options.AuthProvider,
		ClientManager: options.ClientManager,
		MessageQueue:  options.MessageQueue,
		Codec:         options.Codec,
		WSServer: NewWSServer(NewWSServerOptions{
			Port:  options.WSPort,
			TLS:   options.WSServerTLS,
			Codec: options.Codec,
		}),
	}
}

// Start serves WebSocket connections until ctx is done.
func (n *NetworkManager) Start(ctx context.Context) error {
	return n.WSServer.Start(ctx, n.Handlers())
}

// Handlers returns the callbacks wiring the WebSocket server to the client manager and message queue.
func (n *NetworkManager) Handlers() Handlers {
	h := Handlers{
		Connect:    n.handleConnect,
		Disconnect: n.handleDisconnect,
		Message:    n.handleMessage,
	}
	if n.AuthProvider != nil {
		h.Authenticate = n.authenticate
	}
	return h
}

func (n *NetworkManager) authenticate(r *http.Request) (string, error) {
	token := r.URL.Query().Get("token")
	if token == "" {
		if auth := r.Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
			token = strings.TrimPrefix(auth, "Bearer ")
		}
	}
	if token == "" {
		return "", fmt.Errorf("missing token")
	}

	claims, err := n.AuthProvider.VerifyToken(r.Context(), token)
	if err != nil {
		return "", fmt.Errorf("failed to verify token: %v", err)
	}
	return claims.UID, nil
}

func (n *NetworkManager) handleConnect(conn *websocket.Conn, userID string) (string, error) {
	clientID, err := n.ClientManager.ConnectClient(conn, userID)
	if err != nil {
		return "", fmt.Errorf("failed to connect client: %v", err)
	}
	log.Info("Client %s connected", clientID)
	return clientID, nil
}

func (n *NetworkManager) handleDisconnect(clientID string) {
	n.ClientManager.DisconnectClient(clientID)
	log.Info("Client %s disconnected", clientID)
}

func (n *NetworkManager) handleMessage(ctx context.Context, clientID string, message *messages.Message) {
	if !n.ClientManager.Exists(clientID) {
		log.Debug("Ignoring message from unregistered client %s", clientID)
		return
	}
	switch message.Type {
	case messages.MessageTypeClientMove,
		messages.MessageTypeClientSetPosition,
		messages.MessageTypeClientReady,
		messages.MessageTypeClientRematch:
		if err := n.MessageQueue.Enqueue(message); err != nil {
			log.Error("Failed to enqueue message from %s: %v", clientID, err)
		}
	default:
		log.Debug("Ignoring message of type %s from %s", message.Type, clientID)
	}
}

// SendMessageToAll serializes msg once and writes it to every connected client.
func (n *NetworkManager) SendMessageToAll(ctx context.Context, msg *messages.Message) error {
	b, err := messages.SerializeMessage(n.Codec, msg)
	if err != nil {
		return fmt.Errorf("failed to serialize message: %v", err)
	}

	for _, client := range n.ClientManager.GetClients() {
		if err := client.Write(b); err != nil {
			log.Debug("Failed to send %s to client %s: %v", msg.Type, client.ID, err)
		}
	}
	return nil
}

// SendMessageToClient writes msg to a single client.
func (n *NetworkManager) SendMessageToClient(ctx context.Context, clientID string, msg *messages.Message) error {
	client, err := n.ClientManager.GetClient(clientID)
	if err != nil {
		return fmt.Errorf("failed to get client %s: %v", clientID, err)
	}

	b, err := messages.SerializeMessage(n.Codec, msg)
	if err != nil {
		return fmt.Errorf("failed to serialize message: %v", err)
	}

	if err := client.Write(b); err != nil {
		return fmt.Errorf("failed to send message to client %s: %v", clientID, err)
	}
	return nil
}
