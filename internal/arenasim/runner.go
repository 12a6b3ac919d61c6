package arenasim

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"net/url"
	"time"

	"github.com/okian/mealmax/pkg/logger"
)

// Run executes a complete simulation: seed, tournament, verification.
func Run(ctx context.Context, cfg *Config) error {
	stats := &Stats{
		StartTime: time.Now(),
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	logger.Get().Info(ctx, "starting arena simulation",
		logger.String("baseURL", cfg.BaseURL),
		logger.Int("meals", cfg.Meals),
		logger.Int("battles", cfg.Battles),
		logger.String("timeout", cfg.Timeout.String()),
		logger.Int64("seed", seed))

	client := newHTTPClient(cfg.Timeout)

	if err := checkServiceHealth(ctx, cfg, client); err != nil {
		return fmt.Errorf("service health check failed: %w", err)
	}

	names, err := seedMeals(ctx, cfg, client, rng, stats)
	if err != nil {
		return fmt.Errorf("catalog seeding failed: %w", err)
	}

	survivors, wins, err := runTournament(ctx, cfg, client, rng, names, stats)
	if err != nil {
		return fmt.Errorf("tournament failed: %w", err)
	}
	stats.SurvivorsExpected = len(survivors)

	if err := verifyLeaderboard(ctx, cfg, client, survivors, wins, stats); err != nil {
		return fmt.Errorf("leaderboard verification failed: %w", err)
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)

	displayFinalStats(stats)

	logger.Get().Info(ctx, "simulation completed successfully")
	return nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, cfg *Config, client *httpClient) error {
	resp, err := client.Get(ctx, cfg.BaseURL+"/healthz")
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	status := resp.StatusCode
	drainResponse(resp)

	if status != http.StatusOK {
		return fmt.Errorf("service health check failed with status: %d", status)
	}

	logger.Get().Info(ctx, "service is healthy")
	return nil
}

// runTournament battles random pairs of survivors until the battle
// budget is spent or one meal remains. It returns the surviving meal
// names and the win count observed per meal.
func runTournament(ctx context.Context, cfg *Config, client *httpClient, rng *rand.Rand, names []string, stats *Stats) ([]string, map[string]int64, error) {
	active := append([]string(nil), names...)
	wins := make(map[string]int64, len(names))

	for stats.BattlesRun < cfg.Battles && len(active) >= 2 {
		select {
		case <-ctx.Done():
			return nil, nil, ctx.Err()
		default:
		}

		i := rng.Intn(len(active))
		j := rng.Intn(len(active) - 1)
		if j >= i {
			j++
		}

		outcome, err := runSingleBattle(ctx, cfg, client, active[i], active[j])
		if err != nil {
			stats.BattlesFailed++
			logger.Get().Warn(ctx, "battle failed",
				logger.String("first", active[i]),
				logger.String("second", active[j]),
				logger.Error(err))
			if stats.BattlesFailed > cfg.Battles {
				return nil, nil, fmt.Errorf("too many failed battles: %d", stats.BattlesFailed)
			}
			continue
		}

		stats.BattlesRun++
		wins[outcome.Winner]++
		if outcome.WinnerScore < outcome.LoserScore {
			stats.Upsets++
		}

		// Drop the loser from the active pool.
		for k, name := range active {
			if name == outcome.Loser {
				active = append(active[:k], active[k+1:]...)
				break
			}
		}

		if cfg.Verbose {
			logger.Get().Debug(ctx, "battle resolved",
				logger.String("battleID", outcome.BattleID),
				logger.String("winner", outcome.Winner),
				logger.String("loser", outcome.Loser),
				logger.Float64("winnerScore", outcome.WinnerScore),
				logger.Float64("loserScore", outcome.LoserScore))
		}
	}

	logger.Get().Info(ctx, "tournament finished",
		logger.Int("battles", stats.BattlesRun),
		logger.Int("failed", stats.BattlesFailed),
		logger.Int("upsets", stats.Upsets),
		logger.Int("survivors", len(active)))
	return active, wins, nil
}

// runSingleBattle clears the roster, preps both meals, and resolves
// one battle.
func runSingleBattle(ctx context.Context, cfg *Config, client *httpClient, first, second string) (battleOutcome, error) {
	resp, err := client.Delete(ctx, cfg.BaseURL+"/clear-combatants")
	if err != nil {
		return battleOutcome{}, fmt.Errorf("failed to clear combatants: %w", err)
	}
	drainResponse(resp)

	for _, name := range []string{first, second} {
		resp, err := client.Post(ctx, cfg.BaseURL+"/prep-combatant", prepPayload{Meal: name})
		if err != nil {
			return battleOutcome{}, fmt.Errorf("failed to prep %q: %w", name, err)
		}
		status := resp.StatusCode
		drainResponse(resp)
		if status != http.StatusOK {
			return battleOutcome{}, fmt.Errorf("unexpected status %d prepping %q", status, name)
		}
	}

	resp, err = client.Post(ctx, cfg.BaseURL+"/battle", nil)
	if err != nil {
		return battleOutcome{}, fmt.Errorf("failed to run battle: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		status := resp.StatusCode
		drainResponse(resp)
		return battleOutcome{}, fmt.Errorf("unexpected status %d from battle", status)
	}

	var outcome battleOutcome
	if err := decodeResponse(resp, &outcome); err != nil {
		return battleOutcome{}, err
	}
	return outcome, nil
}

// verifyLeaderboard checks that the live leaderboard contains exactly
// the seeded survivors, in non-increasing win order, with the win
// counts observed during the tournament.
func verifyLeaderboard(ctx context.Context, cfg *Config, client *httpClient, survivors []string, wins map[string]int64, stats *Stats) error {
	resp, err := client.Get(ctx, cfg.BaseURL+"/leaderboard?sort="+url.QueryEscape("wins"))
	if err != nil {
		return fmt.Errorf("failed to fetch leaderboard: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		status := resp.StatusCode
		drainResponse(resp)
		return fmt.Errorf("unexpected status %d from leaderboard", status)
	}

	var payload struct {
		Leaderboard []Entry `json:"leaderboard"`
	}
	if err := decodeResponse(resp, &payload); err != nil {
		return err
	}

	// The leaderboard may include meals created outside this run, so
	// checks are scoped to the seeded names.
	ranked := make(map[string]Entry, len(payload.Leaderboard))
	for i, e := range payload.Leaderboard {
		if i > 0 && e.Wins > payload.Leaderboard[i-1].Wins {
			return fmt.Errorf("leaderboard out of order at rank %d", e.Rank)
		}
		ranked[e.Meal] = e
	}

	for _, name := range survivors {
		e, ok := ranked[name]
		if !ok {
			return fmt.Errorf("survivor %q missing from leaderboard", name)
		}
		if e.Wins != wins[name] {
			return fmt.Errorf("survivor %q has %d wins, expected %d", name, e.Wins, wins[name])
		}
		stats.SurvivorsRanked++
	}

	logger.Get().Info(ctx, "leaderboard verified",
		logger.Int("survivors", stats.SurvivorsRanked),
		logger.Int("entries", len(payload.Leaderboard)))
	return nil
}

// displayFinalStats prints the final simulation statistics.
func displayFinalStats(stats *Stats) {
	var upsetRate float64
	if stats.BattlesRun > 0 {
		upsetRate = float64(stats.Upsets) / float64(stats.BattlesRun) * 100
	}

	logger.Get().Info(context.Background(), "final statistics",
		logger.Int("mealsSeeded", stats.MealsSeeded),
		logger.Int("battlesRun", stats.BattlesRun),
		logger.Int("battlesFailed", stats.BattlesFailed),
		logger.Int("upsets", stats.Upsets),
		logger.Float64("upsetRate", upsetRate),
		logger.Int("survivorsExpected", stats.SurvivorsExpected),
		logger.Int("survivorsRanked", stats.SurvivorsRanked),
		logger.String("duration", stats.Duration.String()))
}
