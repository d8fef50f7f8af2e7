package service

import (
	"context"

	"github.com/PuraFome/fodinha/game/engine"
)

// GameService defines every command the transport layer can apply to a
// table, plus the read-only surface used by the REST and MCP layers. Player
// identity is the opaque per-connection ID assigned at upgrade time.
type GameService interface {
	// Commands
	CreateGame(ctx context.Context, playerID, playerName string, maxPlayers int) (string, error)
	JoinGame(ctx context.Context, gameID, playerID, playerName string) error
	LeaveGame(ctx context.Context, gameID, playerID string) error
	SetReady(ctx context.Context, gameID, playerID string, ready bool) error
	StartGame(ctx context.Context, gameID, playerID string) error
	PlaceBid(ctx context.Context, gameID, playerID string, amount int) error
	ConfirmBid(ctx context.Context, gameID, playerID string) error
	PlayCard(ctx context.Context, gameID, playerID string, card engine.Card) error

	// Inspection
	Snapshot(ctx context.Context, gameID, playerID string) (*engine.StateForPlayer, error)
	GetSession(ctx context.Context, gameID string) (*SessionInfo, error)
	ListSessions(ctx context.Context) []*SessionInfo
	ListRulesets(ctx context.Context) ([]*RulesetInfo, error)
}

// SessionManager defines the session registry operations the service needs.
type SessionManager interface {
	Create(id string, maxPlayers int, hostID, hostName string) (*Session, error)
	Get(id string) (*Session, error)
	Delete(id string) error
	List() []*Session
	Count() int
}

// RulesetManager loads table rulesets.
type RulesetManager interface {
	Load(name string) (*engine.Ruleset, error)
	List() ([]*RulesetInfo, error)
	GetDefault() *engine.Ruleset
}

// Broadcaster delivers state snapshots and events to every connection
// attached to a game. The service never touches sockets itself.
type Broadcaster interface {
	// BroadcastState sends each seated player their own redacted snapshot.
	BroadcastState(gameID string, views map[string]*engine.StateForPlayer)
	// BroadcastEvent sends one identical event payload to every connection
	// in the game.
	BroadcastEvent(gameID string, event string, payload interface{})
}
