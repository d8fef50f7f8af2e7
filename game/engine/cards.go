package engine

import "math/rand"

// Suit identifies one of the four card suits.
type Suit string

const (
	Hearts   Suit = "hearts"
	Diamonds Suit = "diamonds"
	Clubs    Suit = "clubs"
	Spades   Suit = "spades"
)

// Rank identifies a card rank. Fodinha uses a 40-card deck: the eights,
// nines and tens are stripped out.
type Rank string

const (
	Four  Rank = "four"
	Five  Rank = "five"
	Six   Rank = "six"
	Seven Rank = "seven"
	Queen Rank = "queen"
	Jack  Rank = "jack"
	King  Rank = "king"
	Ace   Rank = "ace"
	Two   Rank = "two"
	Three Rank = "three"
)

// suits in deck-building order.
var suits = []Suit{Hearts, Diamonds, Clubs, Spades}

// rankOrder lists ranks in strictly increasing strength. Index 0 is the
// weakest card, index 9 the strongest (the three beats everything).
var rankOrder = []Rank{Four, Five, Six, Seven, Queen, Jack, King, Ace, Two, Three}

// DeckSize is the number of cards in a full Fodinha deck: the 4 suits times
// the 10 ranks above.
const DeckSize = 40

// Card is an immutable suit+rank pair. Two cards are equal when both
// fields match.
type Card struct {
	Suit Suit `json:"suit"`
	Rank Rank `json:"rank"`
}

// Strength returns the card's position in the rank order, or -1 for a rank
// that does not belong to the deck.
func (c Card) Strength() int {
	for i, r := range rankOrder {
		if c.Rank == r {
			return i
		}
	}
	return -1
}

func (c Card) String() string {
	return string(c.Rank) + " of " + string(c.Suit)
}

// Deck is an ordered pile of cards consumed from the end.
type Deck []Card

// NewDeck builds the 40-card deck and shuffles it with a Fisher-Yates
// walk from the last index down, so every permutation is equally likely.
func NewDeck() Deck {
	deck := make(Deck, 0, DeckSize)
	for _, suit := range suits {
		for _, rank := range rankOrder {
			deck = append(deck, Card{Suit: suit, Rank: rank})
		}
	}

	for i := len(deck) - 1; i > 0; i-- {
		j := rand.Intn(i + 1)
		deck[i], deck[j] = deck[j], deck[i]
	}

	return deck
}

// Draw pops the top card. The second return is false when the deck is empty.
func (d *Deck) Draw() (Card, bool) {
	if len(*d) == 0 {
		return Card{}, false
	}
	card := (*d)[len(*d)-1]
	*d = (*d)[:len(*d)-1]
	return card, true
}

// HandSizeForRound returns how many cards each player receives in round n.
// Hand sizes follow the 1..10..1 ladder: rounds 1-10 deal n cards, rounds
// 11-20 deal 21-n. Round 21 onward would deal zero or fewer cards, which is
// the game's natural end.
func HandSizeForRound(n int) int {
	if n <= 10 {
		return n
	}
	return 21 - n
}
