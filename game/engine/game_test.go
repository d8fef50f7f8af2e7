package engine

import (
	"errors"
	"fmt"
	"testing"
)

// newReadyGame builds a waiting game with n seated, ready players named
// p0..pn-1. p0 is the host and dealer.
func newReadyGame(t *testing.T, n int) *Game {
	t.Helper()
	g := NewGame("TEST", n, "p0", "Player 0")
	for i := 1; i < n; i++ {
		id := playerID(i)
		if err := g.AddPlayer(id, "Player "+id); err != nil {
			t.Fatalf("AddPlayer(%s) failed: %v", id, err)
		}
	}
	for i := 0; i < n; i++ {
		g.SetReady(playerID(i), true)
	}
	return g
}

func playerID(i int) string {
	return fmt.Sprintf("p%d", i)
}

// finishBidding places a zero bid and confirms for every seat in rotation
// order, returning the reveal from a one-card round's auto-play (nil for
// multi-card rounds).
func finishBidding(t *testing.T, g *Game) *Reveal {
	t.Helper()
	var reveal *Reveal
	for i := 0; i < len(g.Players); i++ {
		bidder := g.Players[g.CurrentBidderIndex].ID
		if err := g.PlaceBid(bidder, 0); err != nil {
			t.Fatalf("PlaceBid(%s) failed: %v", bidder, err)
		}
		r, err := g.ConfirmBid(bidder)
		if err != nil {
			t.Fatalf("ConfirmBid(%s) failed: %v", bidder, err)
		}
		if r != nil {
			reveal = r
		}
	}
	return reveal
}

func TestNewGameHostIsDealer(t *testing.T) {
	g := NewGame("TEST", 4, "host", "Host")

	if g.Phase != PhaseWaiting {
		t.Errorf("Expected waiting phase, got %s", g.Phase)
	}
	if len(g.Players) != 1 || !g.Players[0].IsDealer {
		t.Error("Expected the host seated as dealer")
	}
}

func TestAddPlayerFull(t *testing.T) {
	g := NewGame("TEST", 2, "p0", "Player 0")
	if err := g.AddPlayer("p1", "Player 1"); err != nil {
		t.Fatalf("AddPlayer failed: %v", err)
	}
	if err := g.AddPlayer("p2", "Player 2"); !errors.Is(err, ErrGameFull) {
		t.Errorf("Expected ErrGameFull, got %v", err)
	}
}

func TestAddPlayerAfterStart(t *testing.T) {
	g := newReadyGame(t, 2)
	if err := g.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if err := g.AddPlayer("late", "Late"); !errors.Is(err, ErrAlreadyStarted) {
		t.Errorf("Expected ErrAlreadyStarted, got %v", err)
	}
}

func TestStartRequirements(t *testing.T) {
	g := NewGame("TEST", 4, "p0", "Player 0")
	if err := g.Start(); !errors.Is(err, ErrNotEnoughPlayers) {
		t.Errorf("Expected ErrNotEnoughPlayers with 1 seat, got %v", err)
	}

	g.AddPlayer("p1", "Player 1")
	if err := g.Start(); !errors.Is(err, ErrPlayersNotReady) {
		t.Errorf("Expected ErrPlayersNotReady, got %v", err)
	}

	g.SetReady("p0", true)
	g.SetReady("p1", true)
	if err := g.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if err := g.Start(); !errors.Is(err, ErrAlreadyStarted) {
		t.Errorf("Expected ErrAlreadyStarted on second start, got %v", err)
	}
}

func TestStartDealsRoundOne(t *testing.T) {
	g := newReadyGame(t, 3)
	if err := g.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	if g.Phase != PhaseBidding {
		t.Errorf("Expected bidding phase, got %s", g.Phase)
	}
	if g.RoundNumber != 1 {
		t.Errorf("Expected round 1, got %d", g.RoundNumber)
	}
	for _, p := range g.Players {
		if len(p.Hand) != 1 {
			t.Errorf("Expected %s to hold 1 card, got %d", p.ID, len(p.Hand))
		}
	}
	if g.TrumpCard == nil {
		t.Error("Expected an upcard to be turned")
	}
	if g.CurrentBidderIndex != g.BidStarterIndex {
		t.Errorf("Expected bidding to open at the starter seat %d, got %d", g.BidStarterIndex, g.CurrentBidderIndex)
	}
}

func TestSetReadyUnknownPlayerIgnored(t *testing.T) {
	g := NewGame("TEST", 4, "p0", "Player 0")
	g.SetReady("ghost", true) // must not panic or seat anyone
	if len(g.Players) != 1 {
		t.Errorf("Expected 1 player, got %d", len(g.Players))
	}
}

func TestBidRotation(t *testing.T) {
	g := newReadyGame(t, 4)
	if err := g.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	n := len(g.Players)
	start := g.BidStarterIndex

	// Only the current bidder may bid.
	wrong := g.Players[(start+1)%n].ID
	if err := g.PlaceBid(wrong, 1); !errors.Is(err, ErrOutOfTurn) {
		t.Errorf("Expected ErrOutOfTurn for %s, got %v", wrong, err)
	}

	// The turn passes one seat left after each confirmation.
	for i := 0; i < n-1; i++ {
		expected := (start + i) % n
		if g.CurrentBidderIndex != expected {
			t.Fatalf("Expected bidder seat %d, got %d", expected, g.CurrentBidderIndex)
		}
		bidder := g.Players[expected].ID
		if err := g.PlaceBid(bidder, i); err != nil {
			t.Fatalf("PlaceBid failed: %v", err)
		}
		if _, err := g.ConfirmBid(bidder); err != nil {
			t.Fatalf("ConfirmBid failed: %v", err)
		}
	}
}

func TestConfirmWithoutBid(t *testing.T) {
	g := newReadyGame(t, 2)
	if err := g.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	bidder := g.Players[g.CurrentBidderIndex].ID
	if _, err := g.ConfirmBid(bidder); !errors.Is(err, ErrInvalidPhase) {
		t.Errorf("Expected ErrInvalidPhase confirming before bidding, got %v", err)
	}
}

func TestBidOutsideBiddingPhase(t *testing.T) {
	g := newReadyGame(t, 2)
	if err := g.PlaceBid("p0", 1); !errors.Is(err, ErrInvalidPhase) {
		t.Errorf("Expected ErrInvalidPhase in waiting phase, got %v", err)
	}
}

func TestRebidBeforeConfirm(t *testing.T) {
	g := newReadyGame(t, 3)
	if err := g.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	bidder := g.Players[g.CurrentBidderIndex].ID
	if err := g.PlaceBid(bidder, 1); err != nil {
		t.Fatalf("PlaceBid failed: %v", err)
	}
	if err := g.PlaceBid(bidder, 5); err != nil {
		t.Fatalf("Re-bid failed: %v", err)
	}
	if g.Bid(bidder) != 5 {
		t.Errorf("Expected the latest bid (5), got %d", g.Bid(bidder))
	}
}

func TestOneCardRoundAutoPlays(t *testing.T) {
	g := newReadyGame(t, 4)
	if err := g.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	reveal := finishBidding(t, g)
	if reveal == nil {
		t.Fatal("Expected a reveal from the auto-played one-card round")
	}
	if g.Phase != PhaseRoundOver {
		t.Errorf("Expected round_over phase, got %s", g.Phase)
	}
	if len(reveal.Entries) != 4 {
		t.Errorf("Expected 4 revealed cards, got %d", len(reveal.Entries))
	}
	if reveal.RoundNumber != 1 {
		t.Errorf("Expected round 1 reveal, got %d", reveal.RoundNumber)
	}
	for _, p := range g.Players {
		if len(p.Hand) != 0 {
			t.Errorf("Expected %s's hand to be empty after auto-play", p.ID)
		}
	}

	tricks := 0
	for _, p := range g.Players {
		tricks += p.TricksWon
	}
	if reveal.WinnerID != "" && tricks != 1 {
		t.Errorf("Expected exactly one trick awarded, got %d", tricks)
	}
	if reveal.WinnerID == "" && tricks != 0 {
		t.Errorf("Expected no trick awarded for an annulled round, got %d", tricks)
	}
}

func TestAdvanceRoundScoring(t *testing.T) {
	g := newReadyGame(t, 4)
	if err := g.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	finishBidding(t, g) // everyone bid 0

	// Whoever took the trick missed their zero bid; everyone else hit it.
	won := make(map[string]int)
	for _, p := range g.Players {
		won[p.ID] = p.TricksWon
	}

	finished, err := g.AdvanceRound()
	if err != nil {
		t.Fatalf("AdvanceRound failed: %v", err)
	}
	if finished {
		t.Fatal("Game should not be finished after round 1")
	}

	for _, p := range g.Players {
		expected := 0
		if won[p.ID] != 0 {
			expected = 1
		}
		if p.Score != expected {
			t.Errorf("Expected %s to have score %d, got %d", p.ID, expected, p.Score)
		}
		if p.TricksWon != 0 {
			t.Errorf("Expected %s's trick count reset, got %d", p.ID, p.TricksWon)
		}
	}

	if g.RoundNumber != 2 {
		t.Errorf("Expected round 2, got %d", g.RoundNumber)
	}
	if g.Phase != PhaseBidding {
		t.Errorf("Expected bidding phase, got %s", g.Phase)
	}
	for _, p := range g.Players {
		if len(p.Hand) != 2 {
			t.Errorf("Expected 2 cards in round 2, got %d", len(p.Hand))
		}
	}
}

func TestAdvanceRoundRotatesBidStarter(t *testing.T) {
	g := newReadyGame(t, 3)
	if err := g.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	firstStarter := g.BidStarterIndex
	finishBidding(t, g)

	if _, err := g.AdvanceRound(); err != nil {
		t.Fatalf("AdvanceRound failed: %v", err)
	}
	expected := (firstStarter + 1) % 3
	if g.BidStarterIndex != expected {
		t.Errorf("Expected bid starter %d, got %d", expected, g.BidStarterIndex)
	}
	if g.CurrentBidderIndex != expected {
		t.Errorf("Expected bidding to open at seat %d, got %d", expected, g.CurrentBidderIndex)
	}
}

func TestAdvanceRoundWrongPhase(t *testing.T) {
	g := newReadyGame(t, 2)
	if _, err := g.AdvanceRound(); !errors.Is(err, ErrInvalidPhase) {
		t.Errorf("Expected ErrInvalidPhase, got %v", err)
	}
}

func TestAdvanceRoundTerminal(t *testing.T) {
	g := newReadyGame(t, 2)
	g.Phase = PhaseRoundOver
	g.RoundNumber = 20 // last one-card round just finished

	finished, err := g.AdvanceRound()
	if err != nil {
		t.Fatalf("AdvanceRound failed: %v", err)
	}
	if !finished {
		t.Error("Expected the game to finish after round 20")
	}
	if g.Phase != PhaseRoundOver {
		t.Errorf("Expected the game to stay in round_over, got %s", g.Phase)
	}
}

func TestLargeTableEndsWhenDeckCannotServe(t *testing.T) {
	// Five seats fit round 8 exactly (5 x 8 = 40) and can never play round 9.
	g := newReadyGame(t, 5)
	if err := g.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	g.Phase = PhaseRoundOver
	g.RoundNumber = 7
	finished, err := g.AdvanceRound()
	if err != nil {
		t.Fatalf("AdvanceRound failed: %v", err)
	}
	if finished {
		t.Fatal("Round 8 still fits the deck with 5 players")
	}
	for _, p := range g.Players {
		if len(p.Hand) != 8 {
			t.Errorf("Expected %s to hold 8 cards, got %d", p.ID, len(p.Hand))
		}
	}
	// The whole deck went into hands, so no card is left to turn.
	if g.TrumpCard != nil {
		t.Error("Expected no upcard when the deal consumes the deck")
	}

	g.Phase = PhaseRoundOver
	finished, err = g.AdvanceRound()
	if err != nil {
		t.Fatalf("AdvanceRound failed: %v", err)
	}
	if !finished {
		t.Error("Expected the game to end when round 9 would deal unequal hands")
	}
	if g.Phase != PhaseRoundOver {
		t.Errorf("Expected the game to stay in round_over, got %s", g.Phase)
	}
}

func TestSetReadyIdempotent(t *testing.T) {
	g := newReadyGame(t, 2)

	g.SetReady("p0", true)
	g.SetReady("p0", true)
	if !g.Players[0].IsReady {
		t.Error("Expected p0 still ready after repeated SetReady(true)")
	}

	g.SetReady("p0", false)
	g.SetReady("p0", false)
	if g.Players[0].IsReady {
		t.Error("Expected p0 not ready after repeated SetReady(false)")
	}
	if len(g.Players) != 2 || g.Phase != PhaseWaiting {
		t.Error("Expected SetReady to change nothing but the flag")
	}
}

func TestScoreNeverDecreasesAcrossRounds(t *testing.T) {
	g := newReadyGame(t, 4)
	if err := g.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	prev := make(map[string]int)
	for round := 1; round <= 5; round++ {
		finishBidding(t, g) // everyone bid 0
		for g.Phase == PhasePlaying {
			current := g.Players[g.CurrentPlayerIndex]
			if _, err := g.PlayCard(current.ID, current.Hand[0]); err != nil {
				t.Fatalf("PlayCard failed in round %d: %v", round, err)
			}
		}
		if g.Phase != PhaseRoundOver {
			t.Fatalf("Expected round %d to finish, got phase %s", round, g.Phase)
		}
		if _, err := g.AdvanceRound(); err != nil {
			t.Fatalf("AdvanceRound failed after round %d: %v", round, err)
		}

		for _, p := range g.Players {
			if p.Score < prev[p.ID] {
				t.Errorf("Round %d: %s's score dropped from %d to %d", round, p.ID, prev[p.ID], p.Score)
			}
			prev[p.ID] = p.Score
		}
	}
}

func TestPlayCardValidation(t *testing.T) {
	g := newReadyGame(t, 2)
	if err := g.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	finishBidding(t, g)
	if _, err := g.AdvanceRound(); err != nil {
		t.Fatalf("AdvanceRound failed: %v", err)
	}
	finishBidding(t, g) // round 2: two cards, manual play

	if g.Phase != PhasePlaying {
		t.Fatalf("Expected playing phase, got %s", g.Phase)
	}

	current := g.Players[g.CurrentPlayerIndex]
	other := g.Players[(g.CurrentPlayerIndex+1)%2]

	// Playing out of turn.
	if _, err := g.PlayCard(other.ID, other.Hand[0]); !errors.Is(err, ErrOutOfTurn) {
		t.Errorf("Expected ErrOutOfTurn, got %v", err)
	}

	// Playing a card the player does not hold.
	notHeld := other.Hand[0]
	if notHeld == current.Hand[0] || (len(current.Hand) > 1 && notHeld == current.Hand[1]) {
		notHeld = other.Hand[1]
	}
	if _, err := g.PlayCard(current.ID, notHeld); !errors.Is(err, ErrInvalidCard) {
		t.Errorf("Expected ErrInvalidCard, got %v", err)
	}

	// A legal play enters the trick and passes the turn.
	played := current.Hand[0]
	if _, err := g.PlayCard(current.ID, played); err != nil {
		t.Fatalf("PlayCard failed: %v", err)
	}
	if len(current.Hand) != 1 {
		t.Errorf("Expected 1 card left in hand, got %d", len(current.Hand))
	}
	if g.Players[g.CurrentPlayerIndex].ID != other.ID {
		t.Error("Expected the turn to pass to the other player")
	}
}

func TestPlayCardOutsidePlayingPhase(t *testing.T) {
	g := newReadyGame(t, 2)
	if err := g.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	card := g.Players[0].Hand[0]
	if _, err := g.PlayCard("p0", card); !errors.Is(err, ErrInvalidPhase) {
		t.Errorf("Expected ErrInvalidPhase during bidding, got %v", err)
	}
}

func TestFullRoundTwoPlayThrough(t *testing.T) {
	g := newReadyGame(t, 2)
	if err := g.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	finishBidding(t, g)
	if _, err := g.AdvanceRound(); err != nil {
		t.Fatalf("AdvanceRound failed: %v", err)
	}
	finishBidding(t, g)

	var reveal *Reveal
	for reveal == nil {
		current := g.Players[g.CurrentPlayerIndex]
		r, err := g.PlayCard(current.ID, current.Hand[0])
		if err != nil {
			t.Fatalf("PlayCard failed: %v", err)
		}
		reveal = r
	}

	if g.Phase != PhaseRoundOver {
		t.Errorf("Expected round_over after the last trick, got %s", g.Phase)
	}
	if reveal.RoundNumber != 2 {
		t.Errorf("Expected round 2 reveal, got %d", reveal.RoundNumber)
	}
	if len(reveal.Entries) != 2 {
		t.Errorf("Expected 2 cards in the final trick, got %d", len(reveal.Entries))
	}
}

func TestRemovePlayerRenumbersSeats(t *testing.T) {
	g := newReadyGame(t, 4)
	if err := g.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	g.CurrentBidderIndex = 2
	if _, found := g.RemovePlayer("p1"); !found {
		t.Fatal("Expected p1 to be removed")
	}

	if len(g.Players) != 3 {
		t.Fatalf("Expected 3 players, got %d", len(g.Players))
	}
	// Seat 2 shifted down to 1.
	if g.CurrentBidderIndex != 1 {
		t.Errorf("Expected bidder index 1 after removal, got %d", g.CurrentBidderIndex)
	}
	if g.Bid("p1") != 0 {
		t.Error("Expected the departed player's ledger entries dropped")
	}
}

func TestRemovePlayerMovesDealerFlag(t *testing.T) {
	g := newReadyGame(t, 3)

	if _, found := g.RemovePlayer("p0"); !found {
		t.Fatal("Expected the dealer to be removed")
	}

	if g.DealerIndex < 0 || g.DealerIndex >= len(g.Players) {
		t.Fatalf("Dealer index out of range: %d", g.DealerIndex)
	}
	if !g.Players[g.DealerIndex].IsDealer {
		t.Error("Expected the dealer flag to follow the renumbered dealer seat")
	}
}

func TestRemovePlayerUnknown(t *testing.T) {
	g := newReadyGame(t, 2)
	if _, found := g.RemovePlayer("ghost"); found {
		t.Error("Expected RemovePlayer to report an unseated player")
	}
}

func TestRemovePlayerCompletesTrick(t *testing.T) {
	g := newReadyGame(t, 3)
	if err := g.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	finishBidding(t, g)
	if _, err := g.AdvanceRound(); err != nil {
		t.Fatalf("AdvanceRound failed: %v", err)
	}
	finishBidding(t, g) // round 2, manual play

	// Two of three seats play, then the third leaves: the trick is now
	// complete and must resolve instead of stalling the table.
	first := g.Players[g.CurrentPlayerIndex]
	if _, err := g.PlayCard(first.ID, first.Hand[0]); err != nil {
		t.Fatalf("PlayCard failed: %v", err)
	}
	second := g.Players[g.CurrentPlayerIndex]
	if _, err := g.PlayCard(second.ID, second.Hand[0]); err != nil {
		t.Fatalf("PlayCard failed: %v", err)
	}

	var waiting *Player
	for _, p := range g.Players {
		if p.ID != first.ID && p.ID != second.ID {
			waiting = p
		}
	}
	if _, found := g.RemovePlayer(waiting.ID); !found {
		t.Fatal("Expected the waiting player to be removed")
	}

	view := g.ViewFor(first.ID)
	if len(view.Game.CurrentTrick) != 0 {
		t.Errorf("Expected the trick to resolve on departure, %d cards still down", len(view.Game.CurrentTrick))
	}
}
