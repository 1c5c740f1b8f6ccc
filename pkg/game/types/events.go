package types

// ConnectSessionEvent is queued for the game loop when a session connects.
type ConnectSessionEvent struct {
	SessionID string
}

// DisconnectSessionEvent is queued for the game loop when a session goes away.
type DisconnectSessionEvent struct {
	SessionID string
}

// RespawnEvent is queued by the respawn timer.
// It only serves if Generation still matches the match's serve generation.
type RespawnEvent struct {
	Generation uint64
}
