// Package config loads table rulesets for the Fodinha server.
//
// A ruleset tunes the lobby (default seat count) and the reveal delay
// between rounds; the card rules themselves are fixed in the engine.
// Rulesets are JSON files in a configurable directory, cached after first
// load. A built-in "standard" ruleset is always available, so the server
// runs fine with no config directory at all.
package config
