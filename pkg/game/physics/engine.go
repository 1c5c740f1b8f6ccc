package physics

import (
	"math"

	"github.com/cbodonnell/pong/pkg/config"
	"github.com/cbodonnell/pong/pkg/game/types"
	"github.com/cbodonnell/pong/pkg/kinematic"
	"github.com/solarlune/resolv"
	"golang.org/x/exp/rand"
)

const (
	CollisionSpaceTagBall   string = "ball"
	CollisionSpaceTagPaddle string = "paddle"

	collisionCellSize = 16
)

// StepResult reports what happened during a single tick.
type StepResult struct {
	// WallHit is set when the ball bounced off the top or bottom wall
	WallHit bool
	// PaddleHit is the slot whose paddle returned the ball, types.NoSlot otherwise
	PaddleHit int
	// Scorer is the slot that won a point this tick, types.NoSlot otherwise
	Scorer int
}

// Engine advances the ball and detects collisions and points.
// It keeps a resolv space mirroring the ball and paddles as a broad phase
// for paddle hits. Not safe for concurrent use.
type Engine struct {
	cfg     config.GameConfig
	rng     *rand.Rand
	space   *resolv.Space
	ball    *resolv.Object
	paddles [types.SlotCount]*resolv.Object
}

// NewEngine creates an engine whose serves are drawn from the given seed.
func NewEngine(cfg config.GameConfig, seed uint64) *Engine {
	space := resolv.NewSpace(int(cfg.BoardWidth), int(cfg.BoardHeight), collisionCellSize, collisionCellSize)

	size := cfg.BallRadius * 2
	ball := resolv.NewObject(cfg.BoardWidth/2-cfg.BallRadius, cfg.BoardHeight/2-cfg.BallRadius, size, size, CollisionSpaceTagBall)

	// each paddle object spans from its board edge to its face so a ball that
	// crossed the face this tick always overlaps it
	height := cfg.PaddleHeight + 2*cfg.PaddleMargin
	left := resolv.NewObject(0, 0, cfg.PaddlePlane(types.SlotLeft), height, CollisionSpaceTagPaddle)
	right := resolv.NewObject(cfg.PaddlePlane(types.SlotRight), 0, cfg.BoardWidth-cfg.PaddlePlane(types.SlotRight), height, CollisionSpaceTagPaddle)

	space.Add(ball, left, right)

	return &Engine{
		cfg:     cfg,
		rng:     rand.New(rand.NewSource(seed)),
		space:   space,
		ball:    ball,
		paddles: [types.SlotCount]*resolv.Object{left, right},
	}
}

// Step advances the ball by one tick and applies wall, paddle and scoring rules.
// The scorer's score is incremented and the scoring debounce flag set;
// deciding the winner and scheduling the next serve is left to the caller.
func (e *Engine) Step(state *types.MatchState) StepResult {
	result := StepResult{
		PaddleHit: types.NoSlot,
		Scorer:    types.NoSlot,
	}

	previous := state.Ball.Position
	state.Ball.Position = previous.Add(state.Ball.Velocity)

	if e.reflectWalls(&state.Ball) {
		result.WallHit = true
	}

	for slot := range state.Slots {
		if !state.Slots[slot].Bound() {
			continue
		}
		if e.reflectPaddle(state, slot, previous) {
			result.PaddleHit = slot
			break
		}
	}

	if state.ScoringPaused {
		return result
	}

	x := state.Ball.Position.X
	switch {
	case x < -e.cfg.OutOfBoundsMargin:
		result.Scorer = types.SlotRight
	case x > e.cfg.BoardWidth+e.cfg.OutOfBoundsMargin:
		result.Scorer = types.SlotLeft
	default:
		return result
	}

	state.ScoringPaused = true
	state.Slots[result.Scorer].Score++

	return result
}

// Serve puts the ball at the centre with a freshly randomised velocity
// and clears the scoring debounce flag.
func (e *Engine) Serve(state *types.MatchState) {
	direction := 1.0
	if e.rng.Intn(2) == 0 {
		direction = -1.0
	}
	vy := (e.rng.Float64()*2 - 1) * e.cfg.ServeMaxVY

	state.Ball.Position = kinematic.Vector{X: e.cfg.BoardWidth / 2, Y: e.cfg.BoardHeight / 2}
	state.Ball.Velocity = kinematic.Vector{X: direction * e.cfg.ServeSpeed, Y: vy}
	state.ScoringPaused = false
}

func (e *Engine) reflectWalls(ball *types.Ball) bool {
	y := ball.Position.Y
	if y <= e.cfg.WallMargin && ball.Velocity.Y < 0 {
		ball.Velocity.Y = -ball.Velocity.Y
		return true
	}
	if y >= e.cfg.BoardHeight-e.cfg.WallMargin && ball.Velocity.Y > 0 {
		ball.Velocity.Y = -ball.Velocity.Y
		return true
	}
	return false
}

// reflectPaddle returns the ball off the slot's paddle when its leading edge
// crossed the paddle face this tick within the padded vertical extent.
func (e *Engine) reflectPaddle(state *types.MatchState, slot int, previous kinematic.Vector) bool {
	ball := &state.Ball
	plane := e.cfg.PaddlePlane(slot)
	r := e.cfg.BallRadius

	var crossed bool
	if slot == types.SlotLeft {
		crossed = ball.Velocity.X < 0 && previous.X-r > plane && ball.Position.X-r <= plane
	} else {
		crossed = ball.Velocity.X > 0 && previous.X+r < plane && ball.Position.X+r >= plane
	}
	if !crossed {
		return false
	}

	paddleY := state.Slots[slot].Y
	if !e.sharesCells(slot, previous, ball.Position, paddleY) {
		return false
	}

	y := ball.Position.Y
	if y < paddleY-e.cfg.PaddleMargin || y > paddleY+e.cfg.PaddleHeight+e.cfg.PaddleMargin {
		return false
	}

	offset := (y-paddleY)/e.cfg.PaddleHeight - 0.5
	ball.Velocity.X = -ball.Velocity.X
	ball.Velocity.Y = offset * e.cfg.SpinFactor
	return true
}

// sharesCells syncs the collision objects and runs the spatial hash broad phase.
// The ball object covers its whole path this tick so a fast ball cannot skip the paddle.
func (e *Engine) sharesCells(slot int, from, to kinematic.Vector, paddleY float64) bool {
	r := e.cfg.BallRadius
	e.ball.Position.X = math.Min(from.X, to.X) - r
	e.ball.Position.Y = math.Min(from.Y, to.Y) - r
	e.ball.Size.X = math.Abs(to.X-from.X) + 2*r
	e.ball.Size.Y = math.Abs(to.Y-from.Y) + 2*r
	e.ball.Update()

	paddle := e.paddles[slot]
	paddle.Position.Y = paddleY - e.cfg.PaddleMargin
	paddle.Update()

	return e.ball.SharesCells(paddle)
}
