package engine

// EvaluateTrick resolves a completed trick to a winner under Fodinha's
// tie-annulment rule. Cards and playerIDs are parallel slices in play order.
//
// The strongest remaining card wins, but if several cards tie for the top
// strength they annul each other and the comparison continues among what is
// left. A trick where every card is annulled has no winner, and the second
// return value is false.
func EvaluateTrick(cards []Card, playerIDs []string) (string, bool) {
	type entry struct {
		playerID string
		strength int
	}

	entries := make([]entry, 0, len(cards))
	for i, c := range cards {
		entries = append(entries, entry{playerID: playerIDs[i], strength: c.Strength()})
	}

	for len(entries) > 0 {
		max := entries[0].strength
		for _, e := range entries[1:] {
			if e.strength > max {
				max = e.strength
			}
		}

		var top []entry
		for _, e := range entries {
			if e.strength == max {
				top = append(top, e)
			}
		}

		if len(top) == 1 {
			return top[0].playerID, true
		}

		// The tied cards cancel out; keep comparing the rest.
		remaining := entries[:0]
		for _, e := range entries {
			if e.strength != max {
				remaining = append(remaining, e)
			}
		}
		entries = remaining
	}

	return "", false
}
