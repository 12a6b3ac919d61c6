package arenasim

import "time"

// Config holds configuration for an arena simulation run.
type Config struct {
	BaseURL string        // Base URL of the service
	Meals   int           // Number of meals to seed into the catalog
	Battles int           // Maximum number of battles to run
	Timeout time.Duration // HTTP request timeout
	Seed    int64         // Seed for combatant selection; 0 means time-based
	Verbose bool          // Enable verbose logging
}

// mealPayload is the body of POST /meals.
type mealPayload struct {
	Meal       string  `json:"meal"`
	Cuisine    string  `json:"cuisine"`
	Price      float64 `json:"price"`
	Difficulty string  `json:"difficulty"`
}

// prepPayload is the body of POST /prep-combatant.
type prepPayload struct {
	Meal string `json:"meal"`
}

// battleOutcome is the body of a successful POST /battle response.
type battleOutcome struct {
	BattleID    string  `json:"battle_id"`
	Winner      string  `json:"winner"`
	Loser       string  `json:"loser"`
	WinnerScore float64 `json:"winner_score"`
	LoserScore  float64 `json:"loser_score"`
}

// Entry mirrors a leaderboard row.
type Entry struct {
	Rank    int64   `json:"rank"`
	Meal    string  `json:"meal"`
	Battles int64   `json:"battles"`
	Wins    int64   `json:"wins"`
	WinPct  float64 `json:"win_pct"`
}

// Stats holds simulation statistics.
type Stats struct {
	MealsSeeded       int
	BattlesRun        int
	BattlesFailed     int
	Upsets            int
	SurvivorsExpected int
	SurvivorsRanked   int
	StartTime         time.Time
	EndTime           time.Time
	Duration          time.Duration
}
