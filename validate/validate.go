// Command validate provides a small CLI that validates ruleset JSON files in
// the ../rulesets directory. It checks:
//   - JSON structure and required fields
//   - Seat count bounds (at least 2, at most 10 so every round stays dealable)
//   - Reveal delay constraints (non-negative, warns when unusually long)
//   - Presence of a name and description
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Ruleset mirrors the JSON schema for a table ruleset.
type Ruleset struct {
	Name               string `json:"name"`
	Description        string `json:"description"`
	DefaultMaxPlayers  int    `json:"default_max_players"`
	RevealDelaySeconds int    `json:"reveal_delay_seconds"`
}

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Errors contains informational messages; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
}

// validateRuleset loads and validates a single ruleset JSON file.
func validateRuleset(filePath string) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Failed to read file: %v", err))
		return result
	}

	var ruleset Ruleset
	if err := json.Unmarshal(data, &ruleset); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Invalid JSON: %v", err))
		return result
	}

	if ruleset.Name == "" {
		result.Valid = false
		result.Errors = append(result.Errors, "Missing required field: name")
	}

	if ruleset.Description == "" {
		result.Valid = false
		result.Errors = append(result.Errors, "Missing required field: description")
	}

	// Seat count bounds. The deck has 40 cards and the longest round deals 10
	// per player plus the upcard, so more than 10 seats can never be dealt;
	// fewer than 2 is not a game.
	if ruleset.DefaultMaxPlayers < 2 {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("default_max_players must be at least 2, got %d", ruleset.DefaultMaxPlayers))
	}
	if ruleset.DefaultMaxPlayers > 10 {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("default_max_players cannot exceed 10, got %d", ruleset.DefaultMaxPlayers))
	}

	if ruleset.RevealDelaySeconds < 0 {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("reveal_delay_seconds must be non-negative, got %d", ruleset.RevealDelaySeconds))
	}

	// Add informational data
	if result.Valid {
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Name: %s", ruleset.Name))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Seats: %d", ruleset.DefaultMaxPlayers))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Reveal delay: %ds", ruleset.RevealDelaySeconds))
		if ruleset.RevealDelaySeconds > 60 {
			result.Errors = append(result.Errors, fmt.Sprintf("⚠ reveal_delay_seconds is unusually long (%ds)", ruleset.RevealDelaySeconds))
		}
	}

	return result
}

// main scans ../rulesets for *.json files and validates each one, printing a
// concise report and exiting with non-zero status if any are invalid.
func main() {
	rulesetDir := "../rulesets"
	files, err := filepath.Glob(filepath.Join(rulesetDir, "*.json"))
	if err != nil {
		fmt.Printf("Error finding ruleset files: %v\n", err)
		os.Exit(1)
	}

	allValid := true
	for _, file := range files {
		result := validateRuleset(file)

		fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Println("✅ VALID")
			for _, info := range result.Errors {
				fmt.Println("  " + info)
			}
		} else {
			fmt.Println("❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				if !strings.HasPrefix(err, "✓") {
					fmt.Println("  ❌ " + err)
				}
			}
		}
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Println("✅ All rulesets are valid!")
	} else {
		fmt.Println("❌ Some rulesets have errors")
		os.Exit(1)
	}
}
