package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/okian/mealmax/internal/arenasim"
	"github.com/okian/mealmax/pkg/logger"
)

// Default configuration constants.
const (
	defaultMeals      = 32
	defaultTimeout    = 30 * time.Second
	defaultRunTimeout = 10 * time.Minute
)

func main() {
	var (
		baseURL = flag.String("url", "http://localhost:9080", "Base URL of the service")
		meals   = flag.Int("meals", defaultMeals, "Number of meals to seed into the catalog")
		battles = flag.Int("battles", 0, "Maximum number of battles to run (default meals-1)")
		timeout = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		seed    = flag.Int64("seed", 0, "Seed for combatant selection, 0 means time-based")
		verbose = flag.Bool("verbose", false, "Enable verbose logging")
		help    = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		arenasim.ShowHelp()
		return
	}

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("Failed to initialize logging: " + err.Error() + "\n")
		return
	}
	if *verbose {
		_ = logger.SetLevelString("debug")
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultRunTimeout)
	defer cancel()

	// A full single-elimination bracket needs meals-1 battles.
	maxBattles := *battles
	if maxBattles <= 0 {
		maxBattles = *meals - 1
	}

	config := &arenasim.Config{
		BaseURL: *baseURL,
		Meals:   *meals,
		Battles: maxBattles,
		Timeout: *timeout,
		Seed:    *seed,
		Verbose: *verbose,
	}

	if err := arenasim.Run(ctx, config); err != nil {
		os.Stderr.WriteString("Simulation failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}
