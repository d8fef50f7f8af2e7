// Package api provides the HTTP surface of the Fodinha game server.
//
// The api package implements:
//   - Read-only REST endpoints for sessions and rulesets
//   - WebSocket upgrade handling (gameplay itself runs over the socket)
//   - Static file serving for the bundled web client
//
// Endpoints:
//
// Sessions:
//   - GET /api/sessions - List active sessions (order=asc|desc, limit=N)
//   - GET /api/sessions/{id} - Get one session with a spectator snapshot
//
// Rulesets:
//   - GET /api/rulesets - List available table rulesets
//
// Health:
//   - GET /api/health - Liveness probe
//
// WebSocket:
//   - GET /ws - Upgrade to the gameplay connection
//
// All REST endpoints return JSON. Mutating the game happens only through
// the WebSocket connection, because the connection is what owns a player's
// identity. Errors are returned as JSON with appropriate HTTP status codes:
//
//	{
//	  "error": "error message",
//	  "code": 404
//	}
//
// Usage:
//
//	server := api.NewServer(gameService, hub)
//	http.ListenAndServe(":8080", server)
package api
