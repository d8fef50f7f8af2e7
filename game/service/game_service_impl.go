package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/PuraFome/fodinha/game/engine"
)

// gameServiceImpl implements the GameService interface.
type gameServiceImpl struct {
	sessions    SessionManager
	rulesets    RulesetManager
	broadcaster Broadcaster
}

// NewGameService creates a new game service instance.
func NewGameService(sessions SessionManager, rulesets RulesetManager, broadcaster Broadcaster) GameService {
	return &gameServiceImpl{
		sessions:    sessions,
		rulesets:    rulesets,
		broadcaster: broadcaster,
	}
}

// CreateGame opens a new table with the creator seated as dealer and
// returns the new session ID.
func (s *gameServiceImpl) CreateGame(ctx context.Context, playerID, playerName string, maxPlayers int) (string, error) {
	ruleset := s.rulesets.GetDefault()
	if maxPlayers <= 0 {
		maxPlayers = ruleset.DefaultMaxPlayers
	}
	if maxPlayers < engine.MinPlayers {
		maxPlayers = engine.MinPlayers
	}
	if maxPlayers > engine.MaxSeats {
		maxPlayers = engine.MaxSeats
	}

	sess, err := s.sessions.Create("", maxPlayers, playerID, playerName)
	if err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}

	sess.Lock()
	sess.Ruleset = ruleset
	sess.Unlock()

	log.Printf("[CREATE] session=%s host=%s maxPlayers=%d", sess.ID, playerName, maxPlayers)
	s.broadcast(sess)
	return sess.ID, nil
}

// JoinGame seats a player at an existing table.
func (s *gameServiceImpl) JoinGame(ctx context.Context, gameID, playerID, playerName string) error {
	sess, err := s.sessions.Get(gameID)
	if err != nil {
		return fmt.Errorf("session not found: %w", err)
	}

	sess.Lock()
	defer sess.Unlock()
	sess.LastAccessedAt = time.Now()

	if err := sess.Game.AddPlayer(playerID, playerName); err != nil {
		return err
	}

	log.Printf("[JOIN] session=%s player=%s seats=%d/%d", gameID, playerName, len(sess.Game.Players), sess.Game.MaxPlayers)
	s.broadcastLocked(sess)
	return nil
}

// LeaveGame unseats a player in any phase. An empty table is destroyed and
// any pending reveal task cancelled; otherwise the remaining players get a
// fresh snapshot.
func (s *gameServiceImpl) LeaveGame(ctx context.Context, gameID, playerID string) error {
	sess, err := s.sessions.Get(gameID)
	if err != nil {
		return fmt.Errorf("session not found: %w", err)
	}

	sess.Lock()
	defer sess.Unlock()
	sess.LastAccessedAt = time.Now()

	reveal, found := sess.Game.RemovePlayer(playerID)
	if !found {
		return nil
	}

	if len(sess.Game.Players) == 0 {
		sess.StopRevealTimer()
		if err := s.sessions.Delete(gameID); err != nil {
			log.Printf("[LEAVE] session=%s delete failed: %v", gameID, err)
		}
		log.Printf("[LEAVE] session=%s destroyed (no players)", gameID)
		return nil
	}

	log.Printf("[LEAVE] session=%s player=%s seats=%d", gameID, playerID, len(sess.Game.Players))
	s.broadcastLocked(sess)
	if reveal != nil {
		s.emitRevealLocked(sess, reveal)
	}
	return nil
}

// SetReady flips a player's ready flag.
func (s *gameServiceImpl) SetReady(ctx context.Context, gameID, playerID string, ready bool) error {
	sess, err := s.sessions.Get(gameID)
	if err != nil {
		return fmt.Errorf("session not found: %w", err)
	}

	sess.Lock()
	defer sess.Unlock()
	sess.LastAccessedAt = time.Now()

	sess.Game.SetReady(playerID, ready)
	s.broadcastLocked(sess)
	return nil
}

// StartGame deals round 1 and opens bidding.
func (s *gameServiceImpl) StartGame(ctx context.Context, gameID, playerID string) error {
	sess, err := s.sessions.Get(gameID)
	if err != nil {
		return fmt.Errorf("session not found: %w", err)
	}

	sess.Lock()
	defer sess.Unlock()
	sess.LastAccessedAt = time.Now()

	if err := sess.Game.Start(); err != nil {
		return err
	}

	log.Printf("[START] session=%s players=%d", gameID, len(sess.Game.Players))
	s.broadcastLocked(sess)
	return nil
}

// PlaceBid records the current bidder's bid.
func (s *gameServiceImpl) PlaceBid(ctx context.Context, gameID, playerID string, amount int) error {
	sess, err := s.sessions.Get(gameID)
	if err != nil {
		return fmt.Errorf("session not found: %w", err)
	}

	sess.Lock()
	defer sess.Unlock()
	sess.LastAccessedAt = time.Now()

	if err := sess.Game.PlaceBid(playerID, amount); err != nil {
		return err
	}

	log.Printf("[BID] session=%s player=%s bid=%d", gameID, playerID, amount)
	s.broadcastLocked(sess)
	return nil
}

// ConfirmBid locks in the current bidder's bid. Confirming the last seat of
// a one-card round plays the round out immediately.
func (s *gameServiceImpl) ConfirmBid(ctx context.Context, gameID, playerID string) error {
	sess, err := s.sessions.Get(gameID)
	if err != nil {
		return fmt.Errorf("session not found: %w", err)
	}

	sess.Lock()
	defer sess.Unlock()
	sess.LastAccessedAt = time.Now()

	reveal, err := sess.Game.ConfirmBid(playerID)
	if err != nil {
		return err
	}

	s.broadcastLocked(sess)
	if reveal != nil {
		s.emitRevealLocked(sess, reveal)
	}
	return nil
}

// PlayCard plays one card for the current player.
func (s *gameServiceImpl) PlayCard(ctx context.Context, gameID, playerID string, card engine.Card) error {
	sess, err := s.sessions.Get(gameID)
	if err != nil {
		return fmt.Errorf("session not found: %w", err)
	}

	sess.Lock()
	defer sess.Unlock()
	sess.LastAccessedAt = time.Now()

	reveal, err := sess.Game.PlayCard(playerID, card)
	if err != nil {
		return err
	}

	log.Printf("[PLAY] session=%s player=%s card=%s", gameID, playerID, card)
	s.broadcastLocked(sess)
	if reveal != nil {
		s.emitRevealLocked(sess, reveal)
	}
	return nil
}

// Snapshot returns the redacted view for one recipient.
func (s *gameServiceImpl) Snapshot(ctx context.Context, gameID, playerID string) (*engine.StateForPlayer, error) {
	sess, err := s.sessions.Get(gameID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	sess.Lock()
	defer sess.Unlock()
	return sess.Game.ViewFor(playerID), nil
}

// GetSession returns a read-only summary of one session.
func (s *gameServiceImpl) GetSession(ctx context.Context, gameID string) (*SessionInfo, error) {
	sess, err := s.sessions.Get(gameID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	sess.Lock()
	defer sess.Unlock()
	return sessionInfo(sess, true), nil
}

// ListSessions returns summaries of every active session.
func (s *gameServiceImpl) ListSessions(ctx context.Context) []*SessionInfo {
	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))
	for _, sess := range sessions {
		sess.Lock()
		result = append(result, sessionInfo(sess, false))
		sess.Unlock()
	}
	return result
}

// ListRulesets returns the available table rulesets.
func (s *gameServiceImpl) ListRulesets(ctx context.Context) ([]*RulesetInfo, error) {
	return s.rulesets.List()
}

// emitRevealLocked broadcasts the round-ending reveal and schedules the
// delayed score-and-redeal task. Call with the session lock held.
func (s *gameServiceImpl) emitRevealLocked(sess *Session, reveal *engine.Reveal) {
	delay := s.revealDelay(sess)

	s.broadcaster.BroadcastEvent(sess.ID, "reveal", &RevealPayload{
		Cards:        reveal.Entries,
		WinnerID:     reveal.WinnerID,
		RoundNumber:  reveal.RoundNumber,
		DelaySeconds: int(delay / time.Second),
	})

	sessionID := sess.ID
	round := sess.Game.RoundNumber
	sess.SetRevealTimer(time.AfterFunc(delay, func() {
		s.advanceRound(sessionID, round)
	}))
	log.Printf("[REVEAL] session=%s round=%d winner=%q advanceIn=%s", sess.ID, reveal.RoundNumber, reveal.WinnerID, delay)
}

// advanceRound is the deferred task bridging two rounds. It re-resolves the
// session (a destroyed table makes it a no-op) and checks that the round and
// phase it was scheduled for still hold, so a stale timer can never act on
// the wrong round.
func (s *gameServiceImpl) advanceRound(sessionID string, round int) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return
	}

	sess.Lock()
	defer sess.Unlock()

	g := sess.Game
	if g.Phase != engine.PhaseRoundOver || g.RoundNumber != round {
		return
	}

	finished, err := g.AdvanceRound()
	if err != nil {
		log.Printf("[ADVANCE] session=%s failed: %v", sessionID, err)
		return
	}

	if finished {
		standings := make([]Standing, 0, len(g.Players))
		for _, p := range g.Players {
			standings = append(standings, Standing{PlayerID: p.ID, Name: p.Name, Score: p.Score})
		}
		s.broadcaster.BroadcastEvent(sessionID, "game_over", &GameOverPayload{Standings: standings})
		log.Printf("[ADVANCE] session=%s game complete after round %d", sessionID, round)
		return
	}

	log.Printf("[ADVANCE] session=%s round=%d handSize=%d", sessionID, g.RoundNumber, engine.HandSizeForRound(g.RoundNumber))
	s.broadcastLocked(sess)
}

func (s *gameServiceImpl) revealDelay(sess *Session) time.Duration {
	if sess.Ruleset != nil {
		return time.Duration(sess.Ruleset.RevealDelaySeconds) * time.Second
	}
	return time.Duration(s.rulesets.GetDefault().RevealDelaySeconds) * time.Second
}

// broadcast locks the session and pushes per-player snapshots.
func (s *gameServiceImpl) broadcast(sess *Session) {
	sess.Lock()
	defer sess.Unlock()
	s.broadcastLocked(sess)
}

// broadcastLocked pushes per-player snapshots. Call with the session lock
// held.
func (s *gameServiceImpl) broadcastLocked(sess *Session) {
	s.broadcaster.BroadcastState(sess.ID, sess.Game.Views())
}

// sessionInfo builds the read-only summary. Call with the session lock held.
func sessionInfo(sess *Session, withSnapshot bool) *SessionInfo {
	rulesetName := ""
	if sess.Ruleset != nil {
		rulesetName = sess.Ruleset.Name
	}
	info := &SessionInfo{
		ID:             sess.ID,
		RulesetName:    rulesetName,
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessedAt,
		PlayerCount:    len(sess.Game.Players),
		MaxPlayers:     sess.Game.MaxPlayers,
		Phase:          sess.Game.Phase,
		RoundNumber:    sess.Game.RoundNumber,
	}
	if withSnapshot {
		info.Snapshot = sess.Game.ViewFor("").Game
	}
	return info
}
