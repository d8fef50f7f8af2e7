package service

import (
	"sync"
	"time"

	"github.com/PuraFome/fodinha/game/engine"
)

// Session is one active table plus its bookkeeping. All access to Game goes
// through the session mutex (commands, broadcasts and the deferred
// round-advance task alike), which gives each table a single writer while
// leaving different tables free to run in parallel.
type Session struct {
	ID             string
	Game           *engine.Game
	Ruleset        *engine.Ruleset
	CreatedAt      time.Time
	LastAccessedAt time.Time

	mu          sync.Mutex
	revealTimer *time.Timer
}

// Lock acquires the session's single-writer lock.
func (s *Session) Lock() { s.mu.Lock() }

// Unlock releases the session's single-writer lock.
func (s *Session) Unlock() { s.mu.Unlock() }

// SetRevealTimer replaces the pending reveal timer, stopping any previous
// one. Call with the session lock held.
func (s *Session) SetRevealTimer(t *time.Timer) {
	if s.revealTimer != nil {
		s.revealTimer.Stop()
	}
	s.revealTimer = t
}

// StopRevealTimer cancels a pending reveal task, if any.
func (s *Session) StopRevealTimer() {
	if s.revealTimer != nil {
		s.revealTimer.Stop()
		s.revealTimer = nil
	}
}

// SessionInfo is the read-only summary exposed over the REST and MCP
// surfaces. Snapshot is the neutral redacted view (no recipient seat).
type SessionInfo struct {
	ID             string           `json:"id"`
	RulesetName    string           `json:"ruleset_name"`
	CreatedAt      time.Time        `json:"created_at"`
	LastAccessedAt time.Time        `json:"last_accessed_at"`
	PlayerCount    int              `json:"player_count"`
	MaxPlayers     int              `json:"max_players"`
	Phase          engine.Phase     `json:"phase"`
	RoundNumber    int              `json:"round_number"`
	Snapshot       *engine.GameView `json:"snapshot,omitempty"`
}

// RulesetInfo describes one loadable ruleset file.
type RulesetInfo struct {
	RulesetID          string `json:"ruleset_id"`
	Name               string `json:"name"`
	Description        string `json:"description"`
	DefaultMaxPlayers  int    `json:"default_max_players"`
	RevealDelaySeconds int    `json:"reveal_delay_seconds"`
}

// RevealPayload is the reveal event broadcast when a round's final trick
// resolves, ahead of the delayed advance to the next round.
type RevealPayload struct {
	Cards        []engine.RevealEntry `json:"cards"`
	WinnerID     string               `json:"winnerId,omitempty"`
	RoundNumber  int                  `json:"roundNumber"`
	DelaySeconds int                  `json:"delaySeconds"`
}

// Standing is one row of the final scoreboard.
type Standing struct {
	PlayerID string `json:"playerId"`
	Name     string `json:"name"`
	Score    int    `json:"score"`
}

// GameOverPayload closes out a session once the round ladder is exhausted.
// Lower score wins: points are penalties.
type GameOverPayload struct {
	Standings []Standing `json:"standings"`
}
