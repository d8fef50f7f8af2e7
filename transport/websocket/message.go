package websocket

import "github.com/PuraFome/fodinha/game/engine"

// command is an inbound client frame. Type selects the command; the other
// fields are read per command kind and ignored otherwise.
type command struct {
	Type       string       `json:"type"`
	PlayerName string       `json:"playerName,omitempty"`
	MaxPlayers int          `json:"maxPlayers,omitempty"`
	GameID     string       `json:"gameId,omitempty"`
	Ready      bool         `json:"ready,omitempty"`
	Bid        int          `json:"bid,omitempty"`
	Card       *engine.Card `json:"card,omitempty"`
}

// Command kinds accepted from clients. Anything else gets an error frame.
const (
	cmdCreateGame = "create_game"
	cmdJoinGame   = "join_game"
	cmdLeaveGame  = "leave_game"
	cmdSetReady   = "set_ready"
	cmdStartGame  = "start_game"
	cmdPlaceBid   = "place_bid"
	cmdConfirmBid = "confirm_bid"
	cmdPlayCard   = "play_card"
)

// stateMessage is the per-recipient game_state frame.
type stateMessage struct {
	Type        string           `json:"type"`
	Game        *engine.GameView `json:"game"`
	PlayerID    string           `json:"playerId"`
	PrivateHand []engine.Card    `json:"privateHand"`
}

// eventMessage carries reveal and game_over broadcasts.
type eventMessage struct {
	Type string      `json:"type"`
	Data interface{} `json:"data,omitempty"`
}

// welcomeMessage tells a fresh connection its assigned player identity.
type welcomeMessage struct {
	Type     string `json:"type"`
	PlayerID string `json:"playerId"`
}

// errorMessage relays a command rejection to the offending connection only.
type errorMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}
