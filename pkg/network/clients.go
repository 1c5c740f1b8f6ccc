package network

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	// ConnectionEventChannelSize represents the size of the connection event channel
	ConnectionEventChannelSize = 1024
	// WriteTimeout bounds a single frame write to a client
	WriteTimeout = time.Second
)

// Conn is the part of a websocket connection used to reach a client.
type Conn interface {
	WriteMessage(messageType int, data []byte) error
	SetWriteDeadline(t time.Time) error
	Close() error
}

// Client represents a connected client
type Client struct {
	ID     string
	UserID string

	conn      Conn
	writeLock sync.Mutex
}

// Write sends one binary frame. Writes to the same client are serialized.
func (c *Client) Write(b []byte) error {
	c.writeLock.Lock()
	defer c.writeLock.Unlock()

	if err := c.conn.SetWriteDeadline(time.Now().Add(WriteTimeout)); err != nil {
		return fmt.Errorf("failed to set write deadline: %v", err)
	}
	if err := c.conn.WriteMessage(websocket.BinaryMessage, b); err != nil {
		return fmt.Errorf("failed to write message: %v", err)
	}
	return nil
}

// ConnectionEvent represents an event that happened to a client connection
type ConnectionEvent struct {
	ClientID string
	Type     ConnectionEventType
	Data     interface{}
}

// ConnectionEventType represents the type of a connection event
type ConnectionEventType int

const (
	ConnectionEventTypeConnect ConnectionEventType = iota
	ConnectionEventTypeDisconnect
)

func (t ConnectionEventType) String() string {
	switch t {
	case ConnectionEventTypeConnect:
		return "connect"
	case ConnectionEventTypeDisconnect:
		return "disconnect"
	default:
		return fmt.Sprintf("ConnectionEventType(%d)", int(t))
	}
}

type ClientConnectData struct {
	UserID string
}

// ClientManager manages connected clients
type ClientManager struct {
	clients             map[string]*Client
	clientsLock         sync.RWMutex
	connectionEventChan chan ConnectionEvent
}

// NewClientManager creates a new ClientManager
func NewClientManager() *ClientManager {
	return &ClientManager{
		clients:             make(map[string]*Client),
		connectionEventChan: make(chan ConnectionEvent, ConnectionEventChannelSize),
	}
}

// GetConnectionEventChan returns a one-way channel for receiving connection events
func (cm *ClientManager) GetConnectionEventChan() <-chan ConnectionEvent {
	return cm.connectionEventChan
}

// GetClients returns a snapshot of all connected clients.
func (cm *ClientManager) GetClients() []*Client {
	cm.clientsLock.RLock()
	defer cm.clientsLock.RUnlock()
	clients := make([]*Client, 0, len(cm.clients))
	for _, client := range cm.clients {
		clients = append(clients, client)
	}
	return clients
}

// GetClient returns a connected client by its ID
func (cm *ClientManager) GetClient(clientID string) (*Client, error) {
	cm.clientsLock.RLock()
	defer cm.clientsLock.RUnlock()
	client, ok := cm.clients[clientID]
	if !ok {
		return nil, fmt.Errorf("client %s not found", clientID)
	}
	return client, nil
}

// ConnectClient registers a connection under a fresh session ID and emits a connect event.
func (cm *ClientManager) ConnectClient(conn Conn, userID string) (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("failed to generate a session ID: %v", err)
	}
	clientID := id.String()

	cm.clientsLock.Lock()
	cm.clients[clientID] = &Client{
		ID:     clientID,
		UserID: userID,
		conn:   conn,
	}
	cm.clientsLock.Unlock()

	cm.connectionEventChan <- ConnectionEvent{
		ClientID: clientID,
		Type:     ConnectionEventTypeConnect,
		Data: ClientConnectData{
			UserID: userID,
		},
	}

	return clientID, nil
}

// DisconnectClient removes a client from the manager and emits a disconnect event.
// Unknown IDs are ignored so the event is emitted at most once per client.
func (cm *ClientManager) DisconnectClient(clientID string) {
	cm.clientsLock.Lock()
	_, ok := cm.clients[clientID]
	delete(cm.clients, clientID)
	cm.clientsLock.Unlock()

	if !ok {
		return
	}

	cm.connectionEventChan <- ConnectionEvent{
		ClientID: clientID,
		Type:     ConnectionEventTypeDisconnect,
	}
}

func (cm *ClientManager) Exists(clientID string) bool {
	cm.clientsLock.RLock()
	defer cm.clientsLock.RUnlock()
	_, ok := cm.clients[clientID]
	return ok
}

// Count returns the number of connected clients.
func (cm *ClientManager) Count() int {
	cm.clientsLock.RLock()
	defer cm.clientsLock.RUnlock()
	return len(cm.clients)
}
