// Package service provides the core business service implementing the
// dependencies required by the HTTP API: roster management, battle
// resolution, stats commit, and leaderboard reads.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/okian/mealmax/internal/adapters/randomness"
	"github.com/okian/mealmax/internal/adapters/storage"
	battle "github.com/okian/mealmax/internal/domain/battle"
	meal "github.com/okian/mealmax/internal/domain/meal"
	rank "github.com/okian/mealmax/internal/domain/rank"
	scoring "github.com/okian/mealmax/internal/domain/scoring"
	"github.com/okian/mealmax/pkg/logger"
	"github.com/okian/mealmax/pkg/metrics"
)

// Service orchestrates the battle arena. The mutex serializes every
// operation that reads-then-writes the roster or mutates meal counters
// (prep, battle, clear); catalog lookups and leaderboard reads go to
// the store directly and see committed snapshots only.
type Service struct {
	mu sync.Mutex

	store    storage.Store
	roster   *battle.Roster
	resolver *battle.Resolver
	scorer   *scoring.Scorer
	rng      randomness.Source

	// Scoring and resolution policy
	battleScale         float64
	cuisineWeight       float64
	difficultyPenalties map[string]float64

	started bool

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithStore sets the meal catalog store.
func WithStore(store storage.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithRandomness sets the randomness source used for battle draws.
func WithRandomness(src randomness.Source) Option {
	return func(s *Service) {
		if src != nil {
			s.rng = src
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithBattleScale sets the score-gap normalization constant.
func WithBattleScale(scale float64) Option {
	return func(s *Service) {
		if scale > 0 {
			s.battleScale = scale
		}
	}
}

// WithCuisineWeight sets the cuisine-length feature weight.
func WithCuisineWeight(w float64) Option {
	return func(s *Service) {
		if w > 0 {
			s.cuisineWeight = w
		}
	}
}

// WithDifficultyPenalties sets the per-tier scoring penalties.
func WithDifficultyPenalties(p map[string]float64) Option {
	return func(s *Service) {
		if len(p) > 0 {
			s.difficultyPenalties = p
		}
	}
}

// New constructs a Service with default policy.
func New(opts ...Option) *Service {
	s := &Service{
		battleScale: 100,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start wires the domain components. A store must have been provided.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.store == nil {
		return fmt.Errorf("meal store is required")
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}
	if s.rng == nil {
		s.rng = randomness.NewLocalSource(0)
	}

	scoringOpts := []scoring.Option{}
	if s.cuisineWeight > 0 {
		scoringOpts = append(scoringOpts, scoring.WithCuisineWeight(s.cuisineWeight))
	}
	if len(s.difficultyPenalties) > 0 {
		scoringOpts = append(scoringOpts, scoring.WithDifficultyPenalties(s.difficultyPenalties))
	}
	s.scorer = scoring.New(scoringOpts...)
	s.roster = battle.NewRoster()
	s.resolver = battle.NewResolver(s.scorer, s.rng, battle.WithScale(s.battleScale))

	s.started = true
	s.logger.Info(ctx, "battle arena started",
		logger.Float64("battleScale", s.battleScale),
	)
	return nil
}

// Stop releases the catalog store.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return
	}
	if err := s.store.Close(); err != nil {
		s.logger.Error(context.Background(), "closing meal store", logger.Error(err))
	}
	s.started = false
}

// CreateMeal adds a meal to the catalog.
func (s *Service) CreateMeal(ctx context.Context, name, cuisine string, price float64, difficulty string) (meal.Meal, error) {
	tier, err := meal.ParseDifficulty(difficulty)
	if err != nil {
		return meal.Meal{}, err
	}
	created, err := s.store.Create(ctx, name, cuisine, price, tier)
	if err != nil {
		return meal.Meal{}, err
	}
	s.logger.Info(ctx, "meal created",
		logger.Int64("id", created.ID),
		logger.String("name", created.Name),
	)
	return created, nil
}

// Meal returns a non-deleted meal by id.
func (s *Service) Meal(ctx context.Context, id int64) (meal.Meal, error) {
	return s.store.GetByID(ctx, id)
}

// MealByName returns a non-deleted meal by name.
func (s *Service) MealByName(ctx context.Context, name string) (meal.Meal, error) {
	return s.store.GetByName(ctx, name)
}

// DeleteMeal soft-deletes a meal and drops it from the roster if it was
// staged.
func (s *Service) DeleteMeal(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.SoftDelete(ctx, id); err != nil {
		return err
	}
	_ = s.roster.Remove(id)
	metrics.UpdateCombatantsStaged(s.roster.Len())
	s.logger.Info(ctx, "meal deleted", logger.Int64("id", id))
	return nil
}

// PrepCombatant stages a meal, addressed by name, for battle. It returns
// the roster after insertion.
func (s *Service) PrepCombatant(ctx context.Context, name string) ([]meal.Meal, error) {
	m, err := s.store.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.roster.Prep(m); err != nil {
		return nil, err
	}
	metrics.UpdateCombatantsStaged(s.roster.Len())
	s.logger.Info(ctx, "combatant prepped",
		logger.String("name", m.Name),
		logger.Int("staged", s.roster.Len()),
	)
	return s.roster.Combatants(), nil
}

// Combatants returns the currently staged meals in order.
func (s *Service) Combatants(_ context.Context) []meal.Meal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.roster.Combatants()
}

// ClearCombatants empties the roster.
func (s *Service) ClearCombatants(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.roster.Clear()
	metrics.UpdateCombatantsStaged(0)
	s.logger.Info(ctx, "combatants cleared")
}

// Battle resolves a battle between the two staged meals. On success the
// loser is soft-deleted and unstaged while the winner stays staged with
// refreshed counters. Any failure leaves roster and catalog untouched,
// except that stale (concurrently deleted) combatants are unstaged.
func (s *Service) Battle(ctx context.Context) (battle.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.roster.Len() < battle.Capacity {
		metrics.RecordBattleError("insufficient_combatants")
		return battle.Result{}, battle.ErrInsufficientCombatants
	}

	// Re-read both combatants so the battle sees committed state; a
	// meal deleted out-of-band since prep is dropped from the roster.
	staged := s.roster.Combatants()
	fresh := make([]meal.Meal, 0, battle.Capacity)
	for _, c := range staged {
		m, err := s.store.GetByID(ctx, c.ID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				_ = s.roster.Remove(c.ID)
				metrics.UpdateCombatantsStaged(s.roster.Len())
				metrics.RecordBattleError("insufficient_combatants")
				return battle.Result{}, fmt.Errorf("%w: %q no longer available", battle.ErrInsufficientCombatants, c.Name)
			}
			return battle.Result{}, err
		}
		fresh = append(fresh, m)
	}

	res, err := s.resolver.Resolve(ctx, fresh[0], fresh[1])
	if err != nil {
		metrics.RecordBattleError(errorKind(err))
		return battle.Result{}, err
	}

	winner, err := s.store.ApplyResult(ctx, res.Winner.ID, res.Loser.ID)
	if err != nil {
		metrics.RecordBattleError("storage")
		return battle.Result{}, err
	}
	res.Winner = winner

	_ = s.roster.Remove(res.Loser.ID)
	s.roster.Refresh(winner)
	res.Loser.Deleted = true
	res.Loser.Battles++

	metrics.RecordBattle(res.WinnerScore < res.LoserScore)
	metrics.ObserveBattleScore(res.WinnerScore)
	metrics.ObserveBattleScore(res.LoserScore)
	metrics.UpdateCombatantsStaged(s.roster.Len())

	s.logger.Info(ctx, "battle resolved",
		logger.String("battleID", res.ID),
		logger.String("winner", res.Winner.Name),
		logger.String("loser", res.Loser.Name),
		logger.Float64("winnerScore", res.WinnerScore),
		logger.Float64("loserScore", res.LoserScore),
		logger.Float64("delta", res.Delta),
	)
	return res, nil
}

// Leaderboard ranks the active catalog by the given metric.
func (s *Service) Leaderboard(ctx context.Context, by rank.Metric) ([]rank.Entry, error) {
	meals, err := s.store.List(ctx, false)
	if err != nil {
		metrics.RecordLeaderboardError()
		return nil, err
	}
	metrics.RecordLeaderboardRead(string(by))
	return rank.Leaderboard(meals, by), nil
}

// GetStats returns a snapshot of service counters for the stats
// endpoint and the metrics updater.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.Lock()
	staged := s.roster.Len()
	s.mu.Unlock()

	stats := map[string]interface{}{
		"combatantsStaged": staged,
	}
	if n, err := s.store.ActiveCount(context.Background()); err == nil {
		stats["activeMeals"] = n
		metrics.UpdateMealsActive(n)
	}
	return stats
}

// errorKind labels a battle failure for the error counter.
func errorKind(err error) string {
	switch {
	case errors.Is(err, battle.ErrInsufficientCombatants):
		return "insufficient_combatants"
	case errors.Is(err, battle.ErrDuplicateCombatant):
		return "duplicate_combatant"
	case errors.Is(err, randomness.ErrUnavailable):
		return "resolution_unavailable"
	case errors.Is(err, meal.ErrInvalidState):
		return "invalid_meal_state"
	default:
		return "internal"
	}
}
