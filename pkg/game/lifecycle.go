package game

import (
	"errors"
	"time"

	"github.com/cbodonnell/pong/pkg/game/sessions"
	"github.com/cbodonnell/pong/pkg/game/types"
	"github.com/cbodonnell/pong/pkg/log"
	"github.com/cbodonnell/pong/pkg/messages"
	"github.com/cbodonnell/pong/pkg/repositories/models"
	"github.com/cbodonnell/pong/pkg/workers"
	"github.com/google/uuid"
)

// matchInfo identifies the match being played for its history record.
type matchInfo struct {
	id        string
	startedAt time.Time
}

// handleConnect binds a new session to the first free slot, or lets it spectate.
func (gm *GameManager) handleConnect(sessionID string) {
	slot, err := gm.registry.Connect(sessionID)
	switch {
	case errors.Is(err, sessions.ErrCapacityExceeded):
		log.Info("Session %s joined as a spectator", sessionID)
	case err != nil:
		log.Warn("Failed to connect session %s: %v", sessionID, err)
		return
	default:
		gm.bindSlot(slot, sessionID)
		log.Info("Session %s bound to slot %d", sessionID, slot)
	}

	gm.matchState.Connected = gm.registry.Count()
	log.Debug("Live sessions: %v", gm.registry.Sessions())
	gm.emit(sessionID, messages.MessageTypeServerSessionAssigned, &messages.ServerSessionAssigned{
		SessionID: sessionID,
		Slot:      slot,
	})
	gm.emit("", messages.MessageTypeServerPlayerCount, &messages.ServerPlayerCount{
		Count: gm.matchState.Connected,
	})
}

// handleDisconnect releases the session's slot, hands it to the earliest spectator
// and resets the match when it can no longer continue.
func (gm *GameManager) handleDisconnect(sessionID string) {
	result, err := gm.registry.Disconnect(sessionID)
	if err != nil {
		log.Warn("Failed to disconnect session %s: %v", sessionID, err)
		return
	}

	gm.matchState.Connected = gm.registry.Count()
	if result.Slot != types.NoSlot {
		gm.releaseSlot(result.Slot)
		log.Info("Session %s released slot %d", sessionID, result.Slot)
		if result.Promoted != "" {
			gm.bindSlot(result.Slot, result.Promoted)
			log.Info("Spectator %s promoted to slot %d", result.Promoted, result.Slot)
			gm.emit(result.Promoted, messages.MessageTypeServerSessionAssigned, &messages.ServerSessionAssigned{
				SessionID: result.Promoted,
				Slot:      result.Slot,
			})
		}
	}
	gm.emit("", messages.MessageTypeServerPlayerCount, &messages.ServerPlayerCount{
		Count: gm.matchState.Connected,
	})

	switch {
	case gm.registry.Count() < types.SlotCount:
		gm.forceLobby("not enough players")
	case result.Slot != types.NoSlot && gm.matchState.Phase != types.MatchPhaseLobby:
		gm.forceLobby("a player left the match")
	}
}

func (gm *GameManager) bindSlot(slot int, sessionID string) {
	paddle := &gm.matchState.Slots[slot]
	paddle.SessionID = sessionID
	paddle.Ready = false
	paddle.Score = 0
}

func (gm *GameManager) releaseSlot(slot int) {
	gm.bindSlot(slot, "")
}

// evaluateStart starts the match once both slots are bound and ready.
func (gm *GameManager) evaluateStart() {
	if gm.matchState.Phase == types.MatchPhasePlaying {
		return
	}
	if gm.matchState.BoundCount() < types.SlotCount || !gm.matchState.AllReady() {
		return
	}
	gm.startMatch()
}

func (gm *GameManager) startMatch() {
	from := gm.matchState.Phase

	gm.matchState.ResetScores()
	gm.matchState.Winner = types.NoSlot
	gm.serve()
	gm.matchState.Phase = types.MatchPhasePlaying
	gm.scheduler.sync(true)

	gm.match = matchInfo{
		id:        uuid.NewString(),
		startedAt: gm.now(),
	}
	log.Info("Match %s started from %s", gm.match.id, from)
}

// handlePoint reports a point and either ends the match or schedules the next serve.
func (gm *GameManager) handlePoint(scorer int) {
	scores := gm.matchState.Scores()
	log.Debug("Slot %d scored, score is %d-%d", scorer, scores[types.SlotLeft], scores[types.SlotRight])
	gm.emit("", messages.MessageTypeServerPointScored, &messages.ServerPointScored{
		Slot:   scorer,
		Scores: scores,
	})

	if scores[scorer] >= gm.cfg.WinningScore {
		gm.endMatch(scorer)
		return
	}
	gm.pausedAt = gm.now()
	gm.scheduleRespawn()
}

func (gm *GameManager) endMatch(winner int) {
	gm.matchState.Phase = types.MatchPhaseEnded
	gm.matchState.Winner = winner
	gm.matchState.Ball.Velocity.X = 0
	gm.matchState.Ball.Velocity.Y = 0
	gm.matchState.ScoringPaused = false
	// a rematch needs a fresh request from both players
	gm.matchState.ClearReady()
	gm.generation++
	gm.scheduler.sync(false)

	scores := gm.matchState.Scores()
	log.Info("Match %s won by slot %d, %d-%d", gm.match.id, winner, scores[types.SlotLeft], scores[types.SlotRight])
	gm.emit("", messages.MessageTypeServerMatchWon, &messages.ServerMatchWon{
		Winner: winner,
		Scores: scores,
	})
	gm.saveMatchResult(winner, scores)
}

// forceLobby abandons the current match.
func (gm *GameManager) forceLobby(reason string) {
	if gm.matchState.Phase != types.MatchPhaseLobby {
		log.Info("Match reset to lobby: %s", reason)
	}
	gm.matchState.Phase = types.MatchPhaseLobby
	gm.matchState.Winner = types.NoSlot
	gm.matchState.ClearReady()
	gm.matchState.CenterBall(gm.cfg)
	gm.matchState.ScoringPaused = false
	gm.generation++
	gm.scheduler.sync(false)
}

// scheduleRespawn queues a serve after the respawn delay.
// The serve is dropped if the match was reset, ended or served again in the meantime.
func (gm *GameManager) scheduleRespawn() {
	generation := gm.generation
	serverEventQueue := gm.serverEventQueue
	gm.afterFunc(gm.cfg.RespawnDelay, func() {
		if err := serverEventQueue.Enqueue(&types.RespawnEvent{Generation: generation}); err != nil {
			log.Error("Failed to enqueue respawn event: %v", err)
		}
	})
}

func (gm *GameManager) handleRespawn(generation uint64) {
	if gm.matchState.Phase != types.MatchPhasePlaying || generation != gm.generation {
		log.Debug("Ignoring stale respawn %d, current generation is %d", generation, gm.generation)
		return
	}
	gm.serve()
}

// serve puts the ball back in play and invalidates pending respawns.
func (gm *GameManager) serve() {
	gm.generation++
	gm.engine.Serve(gm.matchState)
}

// respawnOverdue reports a point pause that outlived its respawn, e.g. because the
// respawn event could not be queued.
func (gm *GameManager) respawnOverdue() bool {
	return gm.matchState.ScoringPaused && gm.now().Sub(gm.pausedAt) > 2*gm.cfg.RespawnDelay
}

func (gm *GameManager) saveMatchResult(winner int, scores [types.SlotCount]int) {
	if gm.saveMatchResultChan == nil {
		return
	}

	request := workers.SaveMatchResultRequest{
		Result: &models.MatchResult{
			ID:             gm.match.id,
			WinnerSlot:     winner,
			LeftScore:      scores[types.SlotLeft],
			RightScore:     scores[types.SlotRight],
			LeftSessionID:  gm.registry.SessionAt(types.SlotLeft),
			RightSessionID: gm.registry.SessionAt(types.SlotRight),
			StartedAt:      gm.match.startedAt.UTC(),
			EndedAt:        gm.now().UTC(),
		},
	}
	select {
	case gm.saveMatchResultChan <- request:
	default:
		log.Warn("Save match result channel is full, dropping result of match %s", gm.match.id)
	}
}
