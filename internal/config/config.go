// Package config defines service configuration structures and loading hooks.
package config

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// DBPath locates the SQLite meal catalog. ":memory:" keeps the
	// catalog in process memory.
	DBPath string `koanf:"db_path"`

	// RandomSource selects the randomness backend: "remote" or "local".
	RandomSource string `koanf:"random_source"`

	// RandomURL is the endpoint serving plain-text decimal fractions.
	RandomURL string `koanf:"random_url"`

	// RandomTimeoutMS bounds a single randomness draw.
	RandomTimeoutMS int `koanf:"random_timeout_ms"`

	// RandomSeed seeds the local source; 0 means time-based.
	RandomSeed int64 `koanf:"random_seed"`

	// BattleScale is the score gap at which the win probability
	// saturates.
	BattleScale float64 `koanf:"battle_scale"`

	// CuisineWeight multiplies the cuisine length scoring feature.
	CuisineWeight float64 `koanf:"cuisine_weight"`

	// DifficultyPenalties maps tier names to strength penalties.
	DifficultyPenalties map[string]float64 `koanf:"difficulty_penalties"`
}

// Randomness backend names accepted in RandomSource.
const (
	RandomSourceRemote = "remote"
	RandomSourceLocal  = "local"
)

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:        "info",
		Addr:            ":9080",
		DBPath:          "mealmax.db",
		RandomSource:    RandomSourceRemote,
		RandomURL:       "",
		RandomTimeoutMS: 5000,
		RandomSeed:      0,
		BattleScale:     100,
		CuisineWeight:   1,
		DifficultyPenalties: map[string]float64{
			"LOW":  1,
			"MED":  2,
			"HIGH": 3,
		},
	}
}
