// Package websocket provides the WebSocket transport for the Fodinha server.
//
// The websocket package implements:
//   - Real-time bidirectional communication
//   - Per-connection player identity assigned at upgrade
//   - Command parsing and dispatch into the game service
//   - Per-recipient state broadcasting with hand redaction applied upstream
//   - Connection lifecycle management (disconnect counts as leaving)
//
// Architecture:
//
// The package uses a hub-and-spoke model: a central Hub tracks every
// connection and which game it is attached to. Each connection runs a read
// pump (parse frames, dispatch commands) and a write pump (outbound frames,
// pings). The Hub implements service.Broadcaster, so the service layer can
// push snapshots without knowing about sockets.
//
// Message Protocol:
//
// Frames are JSON. Inbound frames carry a type field selecting the command
// (create_game, join_game, leave_game, set_ready, start_game, place_bid,
// confirm_bid, play_card). Outbound frames are typed the same way: welcome,
// game_state, reveal, game_over, and error.
//
// Every game_state frame is built for a specific recipient: other hands are
// counts only, except the round-1 open-hand rule the engine applies.
package websocket
