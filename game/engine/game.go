package engine

import "math/rand"

// Game is a single Fodinha table. It is a pure state machine: it never
// touches the network and is not safe for concurrent use on its own; the
// session layer serializes access (one writer per session).
type Game struct {
	ID                 string
	Players            []*Player
	Phase              Phase
	CurrentPlayerIndex int
	DealerIndex        int
	RoundNumber        int
	TrumpCard          *Card
	BidStarterIndex    int
	CurrentBidderIndex int
	MaxPlayers         int

	trick        Trick
	bids         map[string]int
	bidConfirmed map[string]bool
}

// NewGame creates a table in the waiting phase with the creator seated as
// dealer.
func NewGame(id string, maxPlayers int, hostID, hostName string) *Game {
	g := &Game{
		ID:                 id,
		Phase:              PhaseWaiting,
		CurrentPlayerIndex: 0,
		DealerIndex:        0,
		RoundNumber:        1,
		BidStarterIndex:    -1,
		CurrentBidderIndex: -1,
		MaxPlayers:         maxPlayers,
		bids:               make(map[string]int),
		bidConfirmed:       make(map[string]bool),
	}
	g.trick.reset()
	g.Players = append(g.Players, &Player{
		ID:       hostID,
		Name:     hostName,
		Hand:     []Card{},
		IsDealer: true,
	})
	return g
}

// AddPlayer seats a new non-dealer player. Joining is only possible before
// the game starts.
func (g *Game) AddPlayer(id, name string) error {
	if g.Phase != PhaseWaiting {
		return ErrAlreadyStarted
	}
	if len(g.Players) >= g.MaxPlayers {
		return ErrGameFull
	}
	g.Players = append(g.Players, &Player{
		ID:   id,
		Name: name,
		Hand: []Card{},
	})
	return nil
}

// RemovePlayer unseats a player in any phase and renumbers the remaining
// seats: indices past the removed seat shift down by one, and an index that
// pointed at the departed seat now points at the next player in rotation.
// The departed player's ledger entries are dropped; cards they already
// played this trick stay in the trick. If the departure completes the
// current trick it is resolved on the spot, and the round-ending reveal (if
// any) is returned. The second return is false if the player was not seated.
func (g *Game) RemovePlayer(id string) (*Reveal, bool) {
	removed := g.playerIndex(id)
	if removed < 0 {
		return nil, false
	}

	wasDealer := g.Players[removed].IsDealer
	g.Players = append(g.Players[:removed], g.Players[removed+1:]...)
	delete(g.bids, id)
	delete(g.bidConfirmed, id)

	n := len(g.Players)
	g.CurrentPlayerIndex = adjustIndex(g.CurrentPlayerIndex, removed, n)
	g.DealerIndex = adjustIndex(g.DealerIndex, removed, n)
	g.CurrentBidderIndex = adjustIndex(g.CurrentBidderIndex, removed, n)
	g.BidStarterIndex = adjustIndex(g.BidStarterIndex, removed, n)
	g.trick.StarterIndex = adjustIndex(g.trick.StarterIndex, removed, n)

	// The dealer flag follows the renumbered dealer seat.
	if wasDealer && n > 0 && g.DealerIndex >= 0 {
		g.Players[g.DealerIndex].IsDealer = true
	}

	// A trick waiting only on the departed seat is complete now.
	if g.Phase == PhasePlaying && n > 0 && len(g.trick.Cards) >= n {
		return g.resolveTrick(), true
	}
	return nil, true
}

// SetReady flips a player's ready flag. Unknown players are ignored.
func (g *Game) SetReady(id string, ready bool) {
	if i := g.playerIndex(id); i >= 0 {
		g.Players[i].IsReady = ready
	}
}

// Start deals round 1 and opens bidding. The first bidder seat is chosen
// uniformly at random; from then on it rotates one seat per round.
func (g *Game) Start() error {
	if g.Phase != PhaseWaiting {
		return ErrAlreadyStarted
	}
	if len(g.Players) < MinPlayers {
		return ErrNotEnoughPlayers
	}
	for _, p := range g.Players {
		if !p.IsReady {
			return ErrPlayersNotReady
		}
	}

	g.RoundNumber = 1
	if err := g.deal(); err != nil {
		return err
	}
	g.BidStarterIndex = rand.Intn(len(g.Players))
	g.CurrentBidderIndex = g.BidStarterIndex
	g.Phase = PhaseBidding
	return nil
}

// PlaceBid records the current bidder's declared trick count. Re-bidding
// before confirmation is allowed and clears any prior confirmation. The
// amount is deliberately unbounded.
func (g *Game) PlaceBid(playerID string, amount int) error {
	if g.Phase != PhaseBidding {
		return ErrInvalidPhase
	}
	if !g.isCurrentBidder(playerID) {
		return ErrOutOfTurn
	}
	g.bids[playerID] = amount
	g.bidConfirmed[playerID] = false
	return nil
}

// ConfirmBid locks in the current bidder's bid and passes the turn to the
// next unconfirmed seat. Once every seat has confirmed, play begins with the
// seat after the dealer. One-card rounds have no decisions to make, so the
// whole round is played out immediately and the final-trick reveal is
// returned.
func (g *Game) ConfirmBid(playerID string) (*Reveal, error) {
	if g.Phase != PhaseBidding {
		return nil, ErrInvalidPhase
	}
	if !g.isCurrentBidder(playerID) {
		return nil, ErrOutOfTurn
	}
	if _, ok := g.bids[playerID]; !ok {
		return nil, ErrInvalidPhase
	}
	g.bidConfirmed[playerID] = true

	n := len(g.Players)
	for i := 1; i <= n; i++ {
		idx := (g.CurrentBidderIndex + i) % n
		if !g.bidConfirmed[g.Players[idx].ID] {
			g.CurrentBidderIndex = idx
			return nil, nil
		}
	}

	// Everyone confirmed: switch to play.
	g.Phase = PhasePlaying
	g.CurrentPlayerIndex = (g.DealerIndex + 1) % n
	g.CurrentBidderIndex = -1
	g.trick.reset()

	if HandSizeForRound(g.RoundNumber) == 1 {
		return g.autoPlayRound(), nil
	}
	return nil, nil
}

// PlayCard plays a card from the current player's hand into the trick. When
// the trick is complete it is resolved; when the round's last trick resolves
// the game enters round_over and the reveal describing that trick is
// returned (non-nil only then).
func (g *Game) PlayCard(playerID string, card Card) (*Reveal, error) {
	if g.Phase != PhasePlaying {
		return nil, ErrInvalidPhase
	}
	if g.CurrentPlayerIndex < 0 || g.Players[g.CurrentPlayerIndex].ID != playerID {
		return nil, ErrOutOfTurn
	}

	player := g.Players[g.CurrentPlayerIndex]
	cardIdx := -1
	for i, c := range player.Hand {
		if c == card {
			cardIdx = i
			break
		}
	}
	if cardIdx < 0 {
		return nil, ErrInvalidCard
	}

	g.playFromHand(g.CurrentPlayerIndex, cardIdx)

	if len(g.trick.Cards) >= len(g.Players) {
		return g.resolveTrick(), nil
	}
	return nil, nil
}

// AdvanceRound applies scoring for the finished round and deals the next
// one. A player who missed their bid (absent bid counts as zero) takes one
// penalty point. Returns true when no further round can be dealt, either
// because the ladder ran out or because the deck cannot serve equal hands
// at this seat count; the game then stays in round_over as its terminal
// state.
func (g *Game) AdvanceRound() (bool, error) {
	if g.Phase != PhaseRoundOver {
		return false, ErrInvalidPhase
	}

	for _, p := range g.Players {
		if p.TricksWon != g.bids[p.ID] {
			p.Score++
		}
		p.TricksWon = 0
	}

	g.RoundNumber++
	size := HandSizeForRound(g.RoundNumber)
	if size <= 0 || size*len(g.Players) > DeckSize {
		return true, nil
	}

	if err := g.deal(); err != nil {
		return false, err
	}
	g.BidStarterIndex = (g.BidStarterIndex + 1) % len(g.Players)
	g.CurrentBidderIndex = g.BidStarterIndex
	g.Phase = PhaseBidding
	return false, nil
}

// Bid returns a player's recorded bid, defaulting to zero.
func (g *Game) Bid(playerID string) int {
	return g.bids[playerID]
}

// deal rebuilds the deck, hands out this round's cards in seating order and
// turns the trump. It also resets the bid ledger and the trick. Every hand
// must come out equal; a round the deck cannot serve is refused rather than
// dealt short.
func (g *Game) deal() error {
	size := HandSizeForRound(g.RoundNumber)
	if size <= 0 {
		return ErrInvalidPhase
	}
	if size*len(g.Players) > DeckSize {
		return ErrDeckExhausted
	}

	deck := NewDeck()
	for _, p := range g.Players {
		p.Hand = make([]Card, 0, size)
		for i := 0; i < size; i++ {
			card, _ := deck.Draw()
			p.Hand = append(p.Hand, card)
		}
		p.TricksWon = 0
	}

	if card, ok := deck.Draw(); ok {
		g.TrumpCard = &card
	} else {
		g.TrumpCard = nil
	}

	g.bids = make(map[string]int)
	g.bidConfirmed = make(map[string]bool)
	g.trick.reset()
	return nil
}

// playFromHand moves a card from a seat's hand into the trick and advances
// the turn.
func (g *Game) playFromHand(seat, cardIdx int) {
	player := g.Players[seat]
	card := player.Hand[cardIdx]
	player.Hand = append(player.Hand[:cardIdx], player.Hand[cardIdx+1:]...)

	g.trick.Cards = append(g.trick.Cards, card)
	g.trick.PlayerIDs = append(g.trick.PlayerIDs, player.ID)
	if len(g.trick.Cards) == 1 {
		g.trick.StarterIndex = seat
	}
	g.CurrentPlayerIndex = (seat + 1) % len(g.Players)
}

// autoPlayRound plays out a one-card round without player input: each seat's
// single card goes down in turn order, then the trick resolves as usual.
func (g *Game) autoPlayRound() *Reveal {
	for range g.Players {
		seat := g.CurrentPlayerIndex
		if len(g.Players[seat].Hand) == 0 {
			break
		}
		g.playFromHand(seat, 0)
	}
	return g.resolveTrick()
}

// resolveTrick evaluates the completed trick, awards it, clears the trick
// and picks the next leader: the winner's seat, or the seat after the
// starter when the trick annulled. If every hand is now empty the round is
// over and the reveal for this trick is returned.
func (g *Game) resolveTrick() *Reveal {
	reveal := &Reveal{RoundNumber: g.RoundNumber}
	for i, c := range g.trick.Cards {
		entry := RevealEntry{PlayerID: g.trick.PlayerIDs[i], Card: c}
		if idx := g.playerIndex(entry.PlayerID); idx >= 0 {
			entry.PlayerName = g.Players[idx].Name
		}
		reveal.Entries = append(reveal.Entries, entry)
	}

	starter := g.trick.StarterIndex
	winnerID, won := EvaluateTrick(g.trick.Cards, g.trick.PlayerIDs)
	winnerIdx := -1
	if won {
		winnerIdx = g.playerIndex(winnerID)
	}
	if winnerIdx >= 0 {
		g.Players[winnerIdx].TricksWon++
		g.CurrentPlayerIndex = winnerIdx
		reveal.WinnerID = winnerID
	} else if starter >= 0 {
		// Fully annulled, or the winner already left the table.
		g.CurrentPlayerIndex = (starter + 1) % len(g.Players)
	}

	g.trick.reset()

	for _, p := range g.Players {
		if len(p.Hand) > 0 {
			return nil
		}
	}
	g.Phase = PhaseRoundOver
	return reveal
}

func (g *Game) playerIndex(id string) int {
	for i, p := range g.Players {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func (g *Game) isCurrentBidder(playerID string) bool {
	return g.CurrentBidderIndex >= 0 && g.Players[g.CurrentBidderIndex].ID == playerID
}

// adjustIndex renumbers a seat index after the seat at removed was deleted.
// n is the new seat count.
func adjustIndex(idx, removed, n int) int {
	if idx < 0 {
		return idx
	}
	if n == 0 {
		return -1
	}
	switch {
	case idx > removed:
		return idx - 1
	case idx == removed:
		return idx % n
	default:
		return idx
	}
}
