// Package engine implements the Fodinha card game state machine.
//
// The engine package covers:
//   - Deck construction, shuffling, and the 1..10..1 round-size ladder
//   - The per-table state machine (waiting, bidding, playing, round_over)
//   - The bidding ledger with turn-based confirmation
//   - Trick resolution with tie-annulment
//   - Round scoring and per-recipient hand redaction
//
// Core Types:
//
// Game is the aggregate for one table and exposes every state transition
// (AddPlayer, Start, PlaceBid, ConfirmBid, PlayCard, AdvanceRound, ...).
// Card, Deck and Trick are the value types; StateForPlayer is the redacted
// snapshot the transport layer broadcasts.
//
// Game Rules:
//
// Each round deals every player the same number of cards (1 up to 10 and
// back down), turns a trump, and runs a bidding pass where each seat in turn
// declares and confirms how many tricks it will win. Tricks are resolved
// purely by rank strength; tied top cards annul each other. Missing your bid
// costs one penalty point. Round 1 is played blind: every player sees the
// other hands but not their own.
//
// Concurrency:
//
// A Game carries no locking of its own. The session layer guarantees a
// single writer per table; the engine is deliberately free of goroutines,
// timers and I/O so it stays trivially testable.
package engine
