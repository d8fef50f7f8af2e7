package engine

import "errors"

// Command rejections. All of these are local to a single command: they are
// relayed back to the offending connection and never alter game state.
var (
	ErrGameFull         = errors.New("game is full")
	ErrAlreadyStarted   = errors.New("game already started")
	ErrNotEnoughPlayers = errors.New("need at least 2 players")
	ErrPlayersNotReady  = errors.New("not all players are ready")
	ErrOutOfTurn        = errors.New("not this player's turn")
	ErrInvalidCard      = errors.New("card is not in player's hand")
	ErrInvalidPhase     = errors.New("action not valid in current phase")
	ErrUnknownPlayer    = errors.New("player is not in this game")
	ErrDeckExhausted    = errors.New("deck cannot deal equal hands this round")
)

// ErrInvalidRuleset reports a ruleset the engine cannot play under.
var ErrInvalidRuleset = errors.New("invalid ruleset")
