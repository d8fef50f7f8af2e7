// Command analyze prints quick, human-readable statistics about trick
// resolution. It deals random tricks for each seat count and reports how
// often the top cards tie and cancel, how often an entire trick is annulled,
// and the hand size ladder across a full game.
package main

import (
	"flag"
	"fmt"

	"github.com/PuraFome/fodinha/game/engine"
)

var trials = flag.Int("trials", 100000, "Number of random tricks to deal per seat count")

func main() {
	flag.Parse()

	fmt.Println("=== Hand size ladder ===")
	printLadder()

	for _, seats := range []int{2, 3, 4, 5, 6} {
		fmt.Printf("\n=== Analyzing %d-player tricks (%d trials) ===\n", seats, *trials)
		analyzeTricks(seats, *trials)
	}
}

// printLadder shows the number of cards dealt per round until the game ends.
func printLadder() {
	for round := 1; ; round++ {
		size := engine.HandSizeForRound(round)
		if size <= 0 {
			fmt.Printf("Game ends after round %d\n", round-1)
			return
		}
		fmt.Printf("Round %2d: %2d cards\n", round, size)
	}
}

// analyzeTricks deals random one-card tricks and tallies resolution outcomes.
func analyzeTricks(seats, trials int) {
	decided := 0
	annulled := 0
	cancellations := 0

	ids := make([]string, seats)
	for i := range ids {
		ids[i] = fmt.Sprintf("p%d", i)
	}

	for i := 0; i < trials; i++ {
		deck := engine.NewDeck()
		cards := make([]engine.Card, seats)
		for j := range cards {
			card, _ := deck.Draw()
			cards[j] = card
		}

		if hasTopTie(cards) {
			cancellations++
		}

		if _, ok := engine.EvaluateTrick(cards, ids); ok {
			decided++
		} else {
			annulled++
		}
	}

	fmt.Printf("Decided:          %d (%.2f%%)\n", decided, pct(decided, trials))
	fmt.Printf("Fully annulled:   %d (%.2f%%)\n", annulled, pct(annulled, trials))
	fmt.Printf("Top-rank ties:    %d (%.2f%%)\n", cancellations, pct(cancellations, trials))
}

// hasTopTie reports whether the strongest rank in the trick appears more than
// once, which forces at least one cancellation level.
func hasTopTie(cards []engine.Card) bool {
	best := -1
	count := 0
	for _, c := range cards {
		s := c.Strength()
		if s > best {
			best = s
			count = 1
		} else if s == best {
			count++
		}
	}
	return count > 1
}

func pct(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) / float64(total) * 100
}
