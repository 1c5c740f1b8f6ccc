package types

import (
	"github.com/cbodonnell/pong/pkg/config"
	"github.com/cbodonnell/pong/pkg/kinematic"
)

const (
	// SlotCount is the number of competitive paddle slots
	SlotCount = 2
	// SlotLeft is the paddle on the left edge
	SlotLeft = 0
	// SlotRight is the paddle on the right edge
	SlotRight = 1
	// NoSlot marks a missing winner or an unbound session
	NoSlot = -1
)

// MatchPhase is the lifecycle phase of the match.
type MatchPhase uint8

const (
	MatchPhaseLobby MatchPhase = iota
	MatchPhasePlaying
	MatchPhaseEnded
)

func (p MatchPhase) String() string {
	switch p {
	case MatchPhaseLobby:
		return "lobby"
	case MatchPhasePlaying:
		return "playing"
	case MatchPhaseEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// Ball is the kinematic state of the ball.
type Ball struct {
	Position kinematic.Vector
	Velocity kinematic.Vector
}

// PaddleSlot is one of the two competitive positions.
type PaddleSlot struct {
	Index int
	// SessionID is empty while the slot is unbound
	SessionID string
	Y         float64
	Score     int
	Ready     bool
}

// Bound reports whether a session currently owns the slot.
func (s *PaddleSlot) Bound() bool {
	return s.SessionID != ""
}

// MatchState is the single authoritative record of the match.
// Only the game loop may mutate it.
type MatchState struct {
	// Timestamp is the time at which the state was last published
	Timestamp int64
	Phase     MatchPhase
	Ball      Ball
	Slots     [SlotCount]PaddleSlot
	// Winner is the winning slot while Ended, NoSlot otherwise
	Winner int
	// Connected is the number of live sessions, spectators included
	Connected int
	// ScoringPaused is set from a point until the following serve
	ScoringPaused bool
}

// NewMatchState creates the initial lobby state with centred paddles and ball.
func NewMatchState(cfg config.GameConfig) *MatchState {
	state := &MatchState{
		Phase:  MatchPhaseLobby,
		Winner: NoSlot,
	}
	for i := range state.Slots {
		state.Slots[i] = PaddleSlot{
			Index: i,
			Y:     cfg.MaxPaddleY() / 2,
		}
	}
	state.CenterBall(cfg)
	return state
}

// CenterBall puts the ball at the centre of the board at rest.
func (m *MatchState) CenterBall(cfg config.GameConfig) {
	m.Ball.Position = kinematic.Vector{X: cfg.BoardWidth / 2, Y: cfg.BoardHeight / 2}
	m.Ball.Velocity = kinematic.Vector{}
}

// SetPaddleY stores a clamped paddle position for the slot.
func (m *MatchState) SetPaddleY(slot int, y float64, cfg config.GameConfig) {
	m.Slots[slot].Y = cfg.ClampPaddleY(y)
}

// Scores returns the per-slot scores.
func (m *MatchState) Scores() [SlotCount]int {
	var scores [SlotCount]int
	for i, s := range m.Slots {
		scores[i] = s.Score
	}
	return scores
}

// ResetScores zeroes both scores.
func (m *MatchState) ResetScores() {
	for i := range m.Slots {
		m.Slots[i].Score = 0
	}
}

// ClearReady clears both ready flags.
func (m *MatchState) ClearReady() {
	for i := range m.Slots {
		m.Slots[i].Ready = false
	}
}

// BoundCount is the number of slots owned by a session.
func (m *MatchState) BoundCount() int {
	n := 0
	for i := range m.Slots {
		if m.Slots[i].Bound() {
			n++
		}
	}
	return n
}

// AllReady reports whether every slot is bound and ready.
func (m *MatchState) AllReady() bool {
	for i := range m.Slots {
		if !m.Slots[i].Bound() || !m.Slots[i].Ready {
			return false
		}
	}
	return true
}
