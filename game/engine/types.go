package engine

// Phase is the lifecycle state of a game.
type Phase string

const (
	PhaseWaiting   Phase = "waiting"
	PhaseBidding   Phase = "bidding"
	PhasePlaying   Phase = "playing"
	PhaseRoundOver Phase = "round_over"

	// MinPlayers is the smallest seat count a game can start with.
	MinPlayers = 2

	// MaxSeats is the largest seat count a table may be created with.
	MaxSeats = 10
)

// Player is one seat at the table. Hand and TricksWon reset every round;
// Score accumulates penalty points for the life of the session.
type Player struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Hand      []Card `json:"hand"`
	TricksWon int    `json:"tricksWon"`
	Score     int    `json:"score"`
	IsReady   bool   `json:"isReady"`
	IsDealer  bool   `json:"isDealer"`
}

// Trick holds the cards played so far this trick. Cards and PlayerIDs are
// parallel slices in play order; StarterIndex is the seat that opened the
// trick, -1 while the trick is empty.
type Trick struct {
	Cards        []Card
	PlayerIDs    []string
	StarterIndex int
}

func (t *Trick) reset() {
	t.Cards = nil
	t.PlayerIDs = nil
	t.StarterIndex = -1
}

// Ruleset carries table defaults loaded from a JSON config file. The card
// rules themselves are fixed; a ruleset only tunes the lobby and timing.
type Ruleset struct {
	Name               string `json:"name"`
	Description        string `json:"description"`
	DefaultMaxPlayers  int    `json:"default_max_players"`
	RevealDelaySeconds int    `json:"reveal_delay_seconds"`
}

// ValidateRuleset checks a ruleset for values the engine cannot work with.
func ValidateRuleset(r *Ruleset) error {
	if r == nil {
		return ErrInvalidRuleset
	}
	if r.Name == "" {
		return ErrInvalidRuleset
	}
	if r.DefaultMaxPlayers < MinPlayers || r.DefaultMaxPlayers > MaxSeats {
		return ErrInvalidRuleset
	}
	if r.RevealDelaySeconds < 0 {
		return ErrInvalidRuleset
	}
	return nil
}

// RevealEntry is one played card in a round's final trick, in play order.
type RevealEntry struct {
	PlayerID   string `json:"playerId"`
	PlayerName string `json:"playerName"`
	Card       Card   `json:"card"`
}

// Reveal describes a round's final trick: every card with its owner and the
// resolved winner, if the trick was not fully annulled.
type Reveal struct {
	Entries     []RevealEntry `json:"cards"`
	WinnerID    string        `json:"winnerId,omitempty"`
	RoundNumber int           `json:"roundNumber"`
}
