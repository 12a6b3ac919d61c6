package arenasim

import "os"

// ShowHelp prints usage information for the arena simulator.
func ShowHelp() {
	os.Stdout.WriteString(`Mealmax Arena Simulator
=======================

Seeds a catalog of meals, runs a battle tournament against a live
service, and verifies the leaderboard against the expected outcomes.

Usage:
  go run cmd/arena-sim/main.go [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:9080")
  -meals int
        Number of meals to seed into the catalog (default 32)
  -battles int
        Maximum number of battles to run (default meals-1)
  -timeout duration
        HTTP request timeout (default 30s)
  -seed int
        Seed for combatant selection, 0 means time-based (default 0)
  -verbose
        Enable verbose logging
  -help
        Show this help message

Examples:
  # Run a full tournament with default settings
  go run cmd/arena-sim/main.go

  # Larger bracket against a remote service
  go run cmd/arena-sim/main.go -meals 128 -url http://arena:9080

  # Reproducible combatant selection
  go run cmd/arena-sim/main.go -seed 42 -verbose
`)
}
