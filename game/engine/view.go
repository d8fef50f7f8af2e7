package engine

// PlayerView is a player entry as seen by some recipient. Hand is populated
// only when the visibility rules allow it; HandCount is always accurate.
type PlayerView struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Hand      []Card `json:"hand"`
	HandCount int    `json:"handCount"`
	TricksWon int    `json:"tricksWon"`
	Score     int    `json:"score"`
	IsReady   bool   `json:"isReady"`
	IsDealer  bool   `json:"isDealer"`
}

// GameView is the broadcastable shape of a game, with hands redacted for a
// specific recipient.
type GameView struct {
	ID                 string         `json:"id"`
	Players            []PlayerView   `json:"players"`
	Phase              Phase          `json:"state"`
	CurrentPlayerIndex int            `json:"currentPlayerIndex"`
	DealerIndex        int            `json:"dealerIndex"`
	RoundNumber        int            `json:"roundNumber"`
	TrumpCard          *Card          `json:"trumpCard"`
	CurrentTrick       []Card         `json:"currentTrick"`
	PlayerIDsInTrick   []string       `json:"playerIdsInTrick"`
	TrickStarterIndex  int            `json:"trickStarterIndex"`
	Bids               map[string]int `json:"bids"`
	BidConfirmed       map[string]bool `json:"bidConfirmed"`
	CurrentBidderIndex int            `json:"currentBidderIndex"`
	BidStarterIndex    int            `json:"bidStarterIndex"`
	MaxPlayers         int            `json:"maxPlayers"`
}

// StateForPlayer is the full game_state payload for one recipient.
type StateForPlayer struct {
	Game        *GameView `json:"game"`
	PlayerID    string    `json:"playerId"`
	PrivateHand []Card    `json:"privateHand"`
}

// ViewFor builds the redacted snapshot a given recipient may see.
//
// Normally every hand, including the recipient's own public entry, is
// replaced by a count; the recipient's actual cards travel in PrivateHand.
// Round 1 flips this on purpose: everyone sees every opponent's single card
// face up, and nobody sees their own, not even via PrivateHand. That
// asymmetry is the game's signature rule, not an oversight.
func (g *Game) ViewFor(recipientID string) *StateForPlayer {
	view := &GameView{
		ID:                 g.ID,
		Phase:              g.Phase,
		CurrentPlayerIndex: g.CurrentPlayerIndex,
		DealerIndex:        g.DealerIndex,
		RoundNumber:        g.RoundNumber,
		TrumpCard:          g.TrumpCard,
		CurrentTrick:       append([]Card{}, g.trick.Cards...),
		PlayerIDsInTrick:   append([]string{}, g.trick.PlayerIDs...),
		TrickStarterIndex:  g.trick.StarterIndex,
		Bids:               make(map[string]int, len(g.bids)),
		BidConfirmed:       make(map[string]bool, len(g.bidConfirmed)),
		CurrentBidderIndex: g.CurrentBidderIndex,
		BidStarterIndex:    g.BidStarterIndex,
		MaxPlayers:         g.MaxPlayers,
	}
	for id, bid := range g.bids {
		view.Bids[id] = bid
	}
	for id, ok := range g.bidConfirmed {
		view.BidConfirmed[id] = ok
	}

	// The round-1 open-hand rule applies between seated players only. A
	// neutral recipient (spectator, REST or MCP snapshot) always gets
	// counts, or the summary endpoints would hand a player their own card.
	openHands := g.RoundNumber == 1 && g.playerIndex(recipientID) >= 0

	for _, p := range g.Players {
		pv := PlayerView{
			ID:        p.ID,
			Name:      p.Name,
			Hand:      []Card{},
			HandCount: len(p.Hand),
			TricksWon: p.TricksWon,
			Score:     p.Score,
			IsReady:   p.IsReady,
			IsDealer:  p.IsDealer,
		}
		if openHands && p.ID != recipientID {
			pv.Hand = append([]Card{}, p.Hand...)
		}
		view.Players = append(view.Players, pv)
	}

	private := []Card{}
	if !openHands {
		if idx := g.playerIndex(recipientID); idx >= 0 {
			private = append(private, g.Players[idx].Hand...)
		}
	}

	return &StateForPlayer{
		Game:        view,
		PlayerID:    recipientID,
		PrivateHand: private,
	}
}

// Views builds one redacted snapshot per seated player, keyed by player ID.
func (g *Game) Views() map[string]*StateForPlayer {
	views := make(map[string]*StateForPlayer, len(g.Players))
	for _, p := range g.Players {
		views[p.ID] = g.ViewFor(p.ID)
	}
	return views
}
