// Package service provides the business logic layer for the Fodinha server.
//
// The service package implements:
//   - The eight table commands (create, join, leave, set-ready, start-game,
//     place-bid, confirm-bid, play-card)
//   - Snapshot and event broadcasting through the Broadcaster interface
//   - The reveal-then-advance round scheduler
//   - Read-only session and ruleset inspection for REST and MCP
//
// Architecture:
//
// The service sits between the transport layer (WebSocket/HTTP/MCP) and the
// game engine. Every command resolves a session through the SessionManager,
// takes that session's single-writer lock, applies the engine transition,
// and pushes redacted per-player snapshots through the Broadcaster. Typed
// engine errors flow back unchanged so the transport can relay them to the
// offending connection.
//
// Round scheduling:
//
// When a round's last trick resolves, the service broadcasts a reveal event
// immediately and arms a time.AfterFunc for the scoring-and-redeal step. The
// deferred task re-resolves the session and verifies the phase and round it
// was scheduled against, so it degrades to a no-op if the table was
// destroyed or already moved on.
package service
