package models

import "time"

// MatchResult is the record kept for every finished match.
type MatchResult struct {
	ID             string    `json:"id"`
	WinnerSlot     int       `json:"winner_slot"`
	LeftScore      int       `json:"left_score"`
	RightScore     int       `json:"right_score"`
	LeftSessionID  string    `json:"left_session_id"`
	RightSessionID string    `json:"right_session_id"`
	StartedAt      time.Time `json:"started_at"`
	EndedAt        time.Time `json:"ended_at"`
}
