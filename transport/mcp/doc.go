// Package mcp provides the Model Context Protocol surface for the Fodinha
// server.
//
// The mcp package implements:
//   - MCP server for AI agent integration
//   - Read-only tool definitions that proxy the REST API
//   - Stdio and HTTP transport modes
//
// MCP Tools:
//
// The package exposes the following tools for AI agents:
//   - list_sessions: List all active sessions
//   - get_session: Get specific session details with a redacted snapshot
//   - list_rulesets: List available table rulesets
//   - game_rules: Get the rules of Fodinha as this server plays them
//
// Gameplay commands are not exposed here. Playing requires a live WebSocket
// connection because each connection owns a player identity; the MCP surface
// is for observing the server, not sitting at a table.
//
// Transport Modes:
//
// The server supports two transport modes:
//   - Stdio: Direct stdio communication for local MCP clients
//   - HTTP: HTTP endpoint for remote MCP integration
package mcp
