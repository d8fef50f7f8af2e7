package main

import (
	"strings"

	"github.com/pterm/pterm"

	"github.com/PuraFome/fodinha/game/engine"
)

// renderTable draws the whole table from the latest state frame.
func renderTable(state *tableState) {
	playerID, game, hand := state.snapshot()
	if game == nil {
		pterm.Info.Println("Not at a table yet")
		return
	}

	pterm.Println()
	header := pterm.Sprintf("Table %s | %s | Round %d",
		pterm.LightCyan(game.ID), phaseLabel(game.Phase), game.RoundNumber)
	if game.TrumpCard != nil {
		header += pterm.Sprintf(" | Upcard: %s", cardString(*game.TrumpCard))
	}
	pterm.DefaultBox.WithTitle(pterm.LightYellow("|FODINHA|")).WithTitleTopCenter().Println(header)

	renderPlayers(game, playerID)
	renderTrick(game)
	renderHand(game, hand)
}

// renderPlayers prints one line per seat with turn marker, bid and score.
func renderPlayers(game *engine.GameView, playerID string) {
	for i, p := range game.Players {
		marker := "  "
		if (game.Phase == engine.PhaseBidding && i == game.CurrentBidderIndex) ||
			(game.Phase == engine.PhasePlaying && i == game.CurrentPlayerIndex) {
			marker = pterm.LightGreen("> ")
		}

		name := p.Name
		if p.ID == playerID {
			name = pterm.LightCyan(name + " (you)")
		}
		if p.IsDealer {
			name += pterm.Gray(" [dealer]")
		}

		line := marker + name

		if game.Phase == engine.PhaseWaiting {
			if p.IsReady {
				line += pterm.LightGreen("  ready")
			} else {
				line += pterm.Gray("  not ready")
			}
		} else {
			bid := "-"
			if v, ok := game.Bids[p.ID]; ok {
				bid = pterm.Sprintf("%d", v)
				if !game.BidConfirmed[p.ID] {
					bid += "?"
				}
			}
			line += pterm.Sprintf("  bid=%s tricks=%d score=%d", bid, p.TricksWon, p.Score)
		}

		// Round 1 shows everyone else's card face up.
		if len(p.Hand) > 0 && p.ID != playerID {
			line += "  " + cardList(p.Hand)
		}

		pterm.Println(line)
	}
}

// renderTrick shows the cards on the table for the trick in progress.
func renderTrick(game *engine.GameView) {
	if len(game.CurrentTrick) == 0 {
		return
	}

	parts := make([]string, 0, len(game.CurrentTrick))
	for i, card := range game.CurrentTrick {
		owner := ""
		if i < len(game.PlayerIDsInTrick) {
			owner = nameOf(game, game.PlayerIDsInTrick[i]) + ": "
		}
		parts = append(parts, owner+cardString(card))
	}
	pterm.Println(pterm.Gray("On the table:  ") + strings.Join(parts, "   "))
}

// renderHand shows the player's own cards, or the round-1 reminder that they
// are the one player who cannot see them.
func renderHand(game *engine.GameView, hand []engine.Card) {
	if game.Phase == engine.PhaseWaiting {
		return
	}
	if game.RoundNumber == 1 && len(hand) == 0 {
		pterm.Println(pterm.Gray("Your hand:     ") + pterm.LightMagenta("[hidden from you — round 1]"))
		return
	}
	if len(hand) == 0 {
		return
	}
	pterm.Println(pterm.Gray("Your hand:     ") + cardList(hand))
}

// renderReveal shows the final trick of a round before the table re-deals.
func renderReveal(cards []engine.RevealEntry, winnerID string, round, delay int) {
	pterm.Println()
	title := pterm.Sprintf("Round %d reveal", round)
	var lines []string
	for _, entry := range cards {
		line := pterm.Sprintf("%s played %s", entry.PlayerName, cardString(entry.Card))
		if entry.PlayerID == winnerID {
			line += pterm.LightGreen("  <- trick")
		}
		lines = append(lines, line)
	}
	if winnerID == "" {
		lines = append(lines, pterm.LightRed("All cards cancelled — nobody takes the trick"))
	}
	body := strings.Join(lines, "\n")
	if delay > 0 {
		body += pterm.Gray(pterm.Sprintf("\nNext round in %ds...", delay))
	}
	pterm.DefaultBox.WithTitle(pterm.LightYellow("|" + title + "|")).WithTitleTopCenter().Println(body)
}

func phaseLabel(phase engine.Phase) string {
	switch phase {
	case engine.PhaseWaiting:
		return "waiting for players"
	case engine.PhaseBidding:
		return "bidding"
	case engine.PhasePlaying:
		return "playing"
	case engine.PhaseRoundOver:
		return "round over"
	}
	return string(phase)
}

func nameOf(game *engine.GameView, id string) string {
	for _, p := range game.Players {
		if p.ID == id {
			return p.Name
		}
	}
	return id
}

func cardString(card engine.Card) string {
	s := card.String()
	switch card.Suit {
	case engine.Hearts, engine.Diamonds:
		return pterm.LightRed(s)
	default:
		return pterm.LightBlue(s)
	}
}

func cardList(cards []engine.Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = cardString(c)
	}
	return strings.Join(parts, "  ")
}
