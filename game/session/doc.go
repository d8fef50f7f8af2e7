// Package session provides the session registry for the Fodinha server.
//
// The session package implements:
//   - Thread-safe session storage and retrieval
//   - Short join-code generation from cryptographic randomness
//   - Destroy-on-empty and inactivity-based expiry
//
// Session Identifiers:
//
// Sessions use 8-character uppercase hex join codes so players can relay
// them by voice or chat. Lookups are case-insensitive.
//
// Concurrency:
//
// The registry's own map is guarded by a read-write mutex; it can be hit
// concurrently from many connection goroutines and from the cleanup routine.
// The registry never locks a table's state; each service.Session carries
// its own single-writer mutex for that.
package session
