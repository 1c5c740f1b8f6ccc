package constants

import "time"

// Default tunables. Distances are board units, speeds are board units per tick.
const (
	// BoardWidth is the width of the playing field
	BoardWidth float64 = 800.0
	// BoardHeight is the height of the playing field
	BoardHeight float64 = 600.0

	// PaddleWidth is the thickness of a paddle
	PaddleWidth float64 = 10.0
	// PaddleHeight is the vertical extent of a paddle
	PaddleHeight float64 = 100.0
	// PaddleInset is the gap between a board edge and the back of its paddle
	PaddleInset float64 = 20.0
	// PaddleSpeed is how far a single move intent shifts a paddle
	PaddleSpeed float64 = 10.0

	// BallRadius is the half extent of the ball
	BallRadius float64 = 10.0
	// ServeSpeed is the horizontal speed of a freshly served ball
	ServeSpeed float64 = 5.0
	// ServeMaxVY bounds the random vertical speed of a serve
	ServeMaxVY float64 = 3.0
	// SpinFactor scales the vertical exit speed by where the ball struck the paddle
	SpinFactor float64 = 10.0

	// WallMargin is how close the ball centre may get to the top or bottom wall
	WallMargin float64 = 10.0
	// PaddleMargin pads the paddle's vertical extent for hit detection
	PaddleMargin float64 = 5.0
	// OutOfBoundsMargin is how far past a side edge the ball must travel to score
	OutOfBoundsMargin float64 = 20.0

	// WinningScore ends the match
	WinningScore int = 11

	// TickRate is the physics rate in ticks per second while playing
	TickRate int = 60
	// IdleBroadcastRate is the snapshot rate in broadcasts per second at all times
	IdleBroadcastRate int = 30
	// RespawnDelay is the pause between a point and the next serve
	RespawnDelay time.Duration = time.Second
)
