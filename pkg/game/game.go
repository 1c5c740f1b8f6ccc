package game

import (
	"context"
	"time"

	"github.com/cbodonnell/pong/pkg/config"
	"github.com/cbodonnell/pong/pkg/game/physics"
	"github.com/cbodonnell/pong/pkg/game/sessions"
	"github.com/cbodonnell/pong/pkg/game/types"
	"github.com/cbodonnell/pong/pkg/log"
	"github.com/cbodonnell/pong/pkg/queue"
	"github.com/cbodonnell/pong/pkg/state"
	"github.com/cbodonnell/pong/pkg/workers"
)

// GameManager owns the match. Every read and write of the match state
// happens on the goroutine running Start.
type GameManager struct {
	cfg                 config.GameConfig
	clientMessageQueue  queue.Queue
	serverEventQueue    queue.Queue
	serverMessageChan   chan<- workers.ServerMessage
	saveMatchResultChan chan<- workers.SaveMatchResultRequest
	stateManager        state.StateManager

	registry   *sessions.Registry
	engine     *physics.Engine
	matchState *types.MatchState
	scheduler  *tickScheduler

	// generation invalidates pending respawns on every serve, match end and reset
	generation uint64
	match      matchInfo
	// pausedAt is when the current point pause began
	pausedAt time.Time

	afterFunc func(d time.Duration, f func())
	now       func() time.Time
}

// NewGameManagerOptions contains options for creating a new GameManager.
type NewGameManagerOptions struct {
	Config             config.GameConfig
	ClientMessageQueue queue.Queue
	// ServerEventQueue carries connection and respawn events
	ServerEventQueue    queue.Queue
	ServerMessageChan   chan<- workers.ServerMessage
	SaveMatchResultChan chan<- workers.SaveMatchResultRequest
	StateManager        state.StateManager
	// Seed drives serve randomisation; zero picks a time based seed
	Seed uint64
}

func NewGameManager(opts NewGameManagerOptions) *GameManager {
	seed := opts.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	return &GameManager{
		cfg:                 opts.Config,
		clientMessageQueue:  opts.ClientMessageQueue,
		serverEventQueue:    opts.ServerEventQueue,
		serverMessageChan:   opts.ServerMessageChan,
		saveMatchResultChan: opts.SaveMatchResultChan,
		stateManager:        opts.StateManager,
		registry:            sessions.NewRegistry(),
		engine:              physics.NewEngine(opts.Config, seed),
		matchState:          types.NewMatchState(opts.Config),
		scheduler:           newTickScheduler(opts.Config.TickInterval()),
		afterFunc: func(d time.Duration, f func()) {
			time.AfterFunc(d, f)
		},
		now: time.Now,
	}
}

// Start runs the game loop until ctx is done.
// The idle ticker always runs; the physics ticker only while a match is being played.
func (gm *GameManager) Start(ctx context.Context) error {
	idle := time.NewTicker(gm.cfg.IdleInterval())
	defer idle.Stop()
	defer gm.scheduler.sync(false)

	log.Info("Game loop started: physics at %v, idle broadcast at %v", gm.cfg.TickInterval(), gm.cfg.IdleInterval())

	for {
		select {
		case <-ctx.Done():
			return nil
		case t := <-idle.C:
			gm.gameTick(t, false)
		case t := <-gm.scheduler.C():
			gm.gameTick(t, true)
		}
	}
}

// gameTick runs one iteration of the game loop.
// Queued events and intents are applied before physics so collisions use the latest paddle positions.
func (gm *GameManager) gameTick(t time.Time, physicsTick bool) {
	gm.processServerEvents()
	gm.processClientMessages()
	if physicsTick && gm.matchState.Phase == types.MatchPhasePlaying {
		gm.stepPhysics()
	}
	gm.scheduler.sync(gm.matchState.Phase == types.MatchPhasePlaying)

	gm.matchState.Timestamp = t.UnixMilli()
	gm.publishMatchState()
}

// processServerEvents applies connection and respawn events in arrival order.
func (gm *GameManager) processServerEvents() {
	pendingEvents, err := gm.serverEventQueue.ReadAllMessages()
	if err != nil {
		log.Error("Failed to read server events: %v", err)
		return
	}
	for _, item := range pendingEvents {
		switch event := item.(type) {
		case *types.ConnectSessionEvent:
			gm.handleConnect(event.SessionID)
		case *types.DisconnectSessionEvent:
			gm.handleDisconnect(event.SessionID)
		case *types.RespawnEvent:
			gm.handleRespawn(event.Generation)
		default:
			log.Error("Unhandled server event type: %T", event)
		}
	}
}

// stepPhysics advances the ball one tick and reacts to a point.
func (gm *GameManager) stepPhysics() {
	if gm.respawnOverdue() {
		log.Warn("Respawn overdue after %v, serving now", gm.now().Sub(gm.pausedAt))
		gm.serve()
	}
	result := gm.engine.Step(gm.matchState)
	if result.PaddleHit != types.NoSlot {
		log.Trace("Paddle %d returned the ball", result.PaddleHit)
	}
	if result.Scorer == types.NoSlot {
		return
	}
	gm.handlePoint(result.Scorer)
}
