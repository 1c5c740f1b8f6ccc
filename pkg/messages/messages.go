package messages

import (
	"fmt"

	"github.com/cbodonnell/pong/pkg/kinematic"
)

const (
	// MaxMessageSize is the largest frame accepted from a connection
	MaxMessageSize = 4096
	// MaxDecodedSize bounds the size of a decompressed frame
	MaxDecodedSize = 64 * 1024
)

// MessageType identifies the payload carried by a Message.
type MessageType byte

// Client message types
const (
	MessageTypeClientMove MessageType = iota + 1
	MessageTypeClientSetPosition
	MessageTypeClientReady
	MessageTypeClientRematch
)

// Server message types
const (
	MessageTypeServerSessionAssigned MessageType = iota + 32
	MessageTypeServerMatchState
	MessageTypeServerPlayerCount
	MessageTypeServerReadyChanged
	MessageTypeServerPointScored
	MessageTypeServerMatchWon
)

func (t MessageType) String() string {
	switch t {
	case MessageTypeClientMove:
		return "ClientMove"
	case MessageTypeClientSetPosition:
		return "ClientSetPosition"
	case MessageTypeClientReady:
		return "ClientReady"
	case MessageTypeClientRematch:
		return "ClientRematch"
	case MessageTypeServerSessionAssigned:
		return "ServerSessionAssigned"
	case MessageTypeServerMatchState:
		return "ServerMatchState"
	case MessageTypeServerPlayerCount:
		return "ServerPlayerCount"
	case MessageTypeServerReadyChanged:
		return "ServerReadyChanged"
	case MessageTypeServerPointScored:
		return "ServerPointScored"
	case MessageTypeServerMatchWon:
		return "ServerMatchWon"
	default:
		return fmt.Sprintf("MessageType(%d)", byte(t))
	}
}

// Message is the envelope exchanged over the wire.
// SessionID is set by the server on inbound messages and is empty on server messages.
type Message struct {
	SessionID string
	Type      MessageType
	Payload   []byte
}

// MoveDirection is the direction of a discrete paddle step.
type MoveDirection string

const (
	MoveDirectionUp   MoveDirection = "up"
	MoveDirectionDown MoveDirection = "down"
)

// ClientMove asks for the sender's paddle to be moved one step.
type ClientMove struct {
	Direction MoveDirection `json:"direction"`
}

// ClientSetPosition asks for the sender's paddle to be placed at Y.
type ClientSetPosition struct {
	Y float64 `json:"y"`
}

// ServerSessionAssigned tells a new connection its identity and slot (-1 for spectators).
type ServerSessionAssigned struct {
	SessionID string `json:"sessionID"`
	Slot      int    `json:"slot"`
}

type ServerPlayerCount struct {
	Count int `json:"count"`
}

type ServerReadyChanged struct {
	SessionID string `json:"sessionID"`
	Ready     bool   `json:"ready"`
}

type ServerPointScored struct {
	Slot   int    `json:"slot"`
	Scores [2]int `json:"scores"`
}

type ServerMatchWon struct {
	Winner int    `json:"winner"`
	Scores [2]int `json:"scores"`
}

// BallState is the ball as seen by clients.
type BallState struct {
	Position kinematic.Vector `json:"position"`
	Velocity kinematic.Vector `json:"velocity"`
}

// PaddleSlotState is a paddle slot as seen by clients.
type PaddleSlotState struct {
	Index     int     `json:"index"`
	SessionID string  `json:"sessionID,omitempty"`
	Y         float64 `json:"y"`
	Score     int     `json:"score"`
	Ready     bool    `json:"ready"`
}

// ServerMatchState is a full snapshot of the match.
type ServerMatchState struct {
	Timestamp     int64             `json:"timestamp"`
	Phase         uint8             `json:"phase"`
	Winner        int               `json:"winner"`
	Connected     int               `json:"connected"`
	ScoringPaused bool              `json:"scoringPaused"`
	Ball          BallState         `json:"ball"`
	Slots         []PaddleSlotState `json:"slots"`
}
