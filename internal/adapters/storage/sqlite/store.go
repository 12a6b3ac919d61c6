// Package sqlite provides a SQLite-backed meal catalog store.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/okian/mealmax/internal/adapters/storage"
	meal "github.com/okian/mealmax/internal/domain/meal"
	"github.com/okian/mealmax/pkg/metrics"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

//go:embed schema.sql
var schemaFS embed.FS

// memoryDSN is the path value selecting an in-memory database.
const memoryDSN = ":memory:"

// Store persists the meal catalog in SQLite.
type Store struct {
	sqlDB *sql.DB
}

// Open opens a SQLite meal store at path and applies the embedded
// schema. The path ":memory:" opens a private in-memory catalog.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	dsn := path
	if path != memoryDSN {
		dsn = filepath.Clean(path) + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	}
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if path == memoryDSN {
		// The pool must not rotate connections or the schema vanishes.
		sqlDB.SetMaxOpenConns(1)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	schema, err := schemaFS.ReadFile("schema.sql")
	if err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("read schema: %w", err)
	}
	if _, err := sqlDB.Exec(string(schema)); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Create inserts a new meal row.
func (s *Store) Create(ctx context.Context, name, cuisine string, price float64, difficulty meal.Difficulty) (meal.Meal, error) {
	metrics.RecordStorageQuery("create")

	name = strings.TrimSpace(name)
	if name == "" {
		return meal.Meal{}, fmt.Errorf("%w: name is required", meal.ErrInvalidState)
	}
	candidate := meal.Meal{Name: name, Cuisine: cuisine, Price: price, Difficulty: difficulty}
	if err := candidate.Validate(); err != nil {
		return meal.Meal{}, err
	}

	res, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO meals (name, cuisine, price, difficulty) VALUES (?, ?, ?, ?)`,
		name, cuisine, price, string(difficulty),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return meal.Meal{}, fmt.Errorf("%w: %q", storage.ErrDuplicateName, name)
		}
		metrics.RecordStorageError("create")
		return meal.Meal{}, fmt.Errorf("insert meal: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		metrics.RecordStorageError("create")
		return meal.Meal{}, fmt.Errorf("read meal id: %w", err)
	}
	candidate.ID = id
	return candidate, nil
}

// GetByID returns a non-deleted meal by id.
func (s *Store) GetByID(ctx context.Context, id int64) (meal.Meal, error) {
	metrics.RecordStorageQuery("get_by_id")
	return s.getOne(ctx, `SELECT id, name, cuisine, price, difficulty, battles, wins, deleted
		FROM meals WHERE id = ?`, id)
}

// GetByName returns a non-deleted meal by name.
func (s *Store) GetByName(ctx context.Context, name string) (meal.Meal, error) {
	metrics.RecordStorageQuery("get_by_name")
	return s.getOne(ctx, `SELECT id, name, cuisine, price, difficulty, battles, wins, deleted
		FROM meals WHERE name = ?`, strings.TrimSpace(name))
}

func (s *Store) getOne(ctx context.Context, query string, arg any) (meal.Meal, error) {
	var m meal.Meal
	var difficulty string
	err := s.sqlDB.QueryRowContext(ctx, query, arg).
		Scan(&m.ID, &m.Name, &m.Cuisine, &m.Price, &difficulty, &m.Battles, &m.Wins, &m.Deleted)
	if errors.Is(err, sql.ErrNoRows) {
		return meal.Meal{}, storage.ErrNotFound
	}
	if err != nil {
		metrics.RecordStorageError("get")
		return meal.Meal{}, fmt.Errorf("query meal: %w", err)
	}
	m.Difficulty = meal.Difficulty(difficulty)
	if m.Deleted {
		// Deleted meals stay invisible to lookups; history is audit-only.
		return meal.Meal{}, fmt.Errorf("%w: %q was deleted", storage.ErrNotFound, m.Name)
	}
	return m, nil
}

// SoftDelete marks a meal deleted, keeping its counters for audit.
func (s *Store) SoftDelete(ctx context.Context, id int64) error {
	metrics.RecordStorageQuery("soft_delete")

	res, err := s.sqlDB.ExecContext(ctx,
		`UPDATE meals SET deleted = 1 WHERE id = ? AND deleted = 0`, id)
	if err != nil {
		metrics.RecordStorageError("soft_delete")
		return fmt.Errorf("soft delete meal: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		metrics.RecordStorageError("soft_delete")
		return fmt.Errorf("soft delete meal: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// List returns the catalog ordered by id.
func (s *Store) List(ctx context.Context, includeDeleted bool) ([]meal.Meal, error) {
	metrics.RecordStorageQuery("list")

	query := `SELECT id, name, cuisine, price, difficulty, battles, wins, deleted FROM meals`
	if !includeDeleted {
		query += ` WHERE deleted = 0`
	}
	query += ` ORDER BY id ASC`

	rows, err := s.sqlDB.QueryContext(ctx, query)
	if err != nil {
		metrics.RecordStorageError("list")
		return nil, fmt.Errorf("list meals: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var meals []meal.Meal
	for rows.Next() {
		var m meal.Meal
		var difficulty string
		if err := rows.Scan(&m.ID, &m.Name, &m.Cuisine, &m.Price, &difficulty, &m.Battles, &m.Wins, &m.Deleted); err != nil {
			metrics.RecordStorageError("list")
			return nil, fmt.Errorf("scan meal: %w", err)
		}
		m.Difficulty = meal.Difficulty(difficulty)
		meals = append(meals, m)
	}
	if err := rows.Err(); err != nil {
		metrics.RecordStorageError("list")
		return nil, fmt.Errorf("list meals: %w", err)
	}
	return meals, nil
}

// IncrementStats adds one fought battle, and one win when won is true.
func (s *Store) IncrementStats(ctx context.Context, id int64, won bool) error {
	metrics.RecordStorageQuery("increment_stats")

	query := `UPDATE meals SET battles = battles + 1 WHERE id = ? AND deleted = 0`
	if won {
		query = `UPDATE meals SET battles = battles + 1, wins = wins + 1 WHERE id = ? AND deleted = 0`
	}
	res, err := s.sqlDB.ExecContext(ctx, query, id)
	if err != nil {
		metrics.RecordStorageError("increment_stats")
		return fmt.Errorf("update meal stats: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		metrics.RecordStorageError("increment_stats")
		return fmt.Errorf("update meal stats: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// ApplyResult commits a battle outcome in a single transaction.
func (s *Store) ApplyResult(ctx context.Context, winnerID, loserID int64) (meal.Meal, error) {
	metrics.RecordStorageQuery("apply_result")

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		metrics.RecordStorageError("apply_result")
		return meal.Meal{}, fmt.Errorf("begin battle commit: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, step := range []struct {
		query string
		id    int64
	}{
		{`UPDATE meals SET battles = battles + 1, wins = wins + 1 WHERE id = ? AND deleted = 0`, winnerID},
		{`UPDATE meals SET battles = battles + 1, deleted = 1 WHERE id = ? AND deleted = 0`, loserID},
	} {
		res, err := tx.ExecContext(ctx, step.query, step.id)
		if err != nil {
			metrics.RecordStorageError("apply_result")
			return meal.Meal{}, fmt.Errorf("commit battle result: %w", err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			metrics.RecordStorageError("apply_result")
			return meal.Meal{}, fmt.Errorf("commit battle result: %w", err)
		}
		if affected == 0 {
			return meal.Meal{}, storage.ErrNotFound
		}
	}

	var winner meal.Meal
	var difficulty string
	err = tx.QueryRowContext(ctx, `SELECT id, name, cuisine, price, difficulty, battles, wins, deleted
		FROM meals WHERE id = ?`, winnerID).
		Scan(&winner.ID, &winner.Name, &winner.Cuisine, &winner.Price, &difficulty, &winner.Battles, &winner.Wins, &winner.Deleted)
	if err != nil {
		metrics.RecordStorageError("apply_result")
		return meal.Meal{}, fmt.Errorf("read winner: %w", err)
	}
	winner.Difficulty = meal.Difficulty(difficulty)

	if err := tx.Commit(); err != nil {
		metrics.RecordStorageError("apply_result")
		return meal.Meal{}, fmt.Errorf("commit battle result: %w", err)
	}
	return winner, nil
}

// ActiveCount returns the number of non-deleted meals.
func (s *Store) ActiveCount(ctx context.Context) (int, error) {
	metrics.RecordStorageQuery("active_count")

	var n int
	if err := s.sqlDB.QueryRowContext(ctx, `SELECT COUNT(*) FROM meals WHERE deleted = 0`).Scan(&n); err != nil {
		metrics.RecordStorageError("active_count")
		return 0, fmt.Errorf("count meals: %w", err)
	}
	return n, nil
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint failed")
}

var _ storage.Store = (*Store)(nil)
