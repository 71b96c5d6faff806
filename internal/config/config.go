// internal/config/config.go
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/jason-s-yu/scopa/internal/game"
	"github.com/sirupsen/logrus"
)

// Config holds the settings shared by the simulator binaries. Values come
// from the environment (a .env file is loaded by each main via godotenv) and
// may be overridden by command-line flags.
type Config struct {
	LogDir      string // directory for per-game action logs and analysis files
	StatusLog   string // path of the line-oriented status log
	AnalysisLog string // path of the combined analysis written by cmd/analyze
	Workers     int
	Games       int
	BufferSize  int
	Seed        uint64 // base seed; 0 means derive one from the clock
	LogLevel    logrus.Level
	Rules       game.HouseRules
	GameBinary  string // when set, games run as child processes of this binary
	Policy1     string // "random", "greedy" or "first"
	Policy2     string
}

// FromEnv reads the configuration from environment variables:
//   - SCOPA_LOG_DIR (default "logs")
//   - SCOPA_STATUS_LOG (default "<log dir>/scopa_simulation.log")
//   - SCOPA_ANALYSIS_LOG (default "<log dir>/scopa_analysis.json")
//   - SCOPA_WORKERS (default 8), SCOPA_GAMES (default 100), SCOPA_BUFFER_SIZE (default 100)
//   - SCOPA_SEED (default 0)
//   - SCOPA_LOG_LEVEL (default "info")
//   - SCOPA_HOUSE_RULES, a JSON object such as {"collectMode":"final_play"}
//   - SCOPA_GAME_BINARY (optional)
//   - SCOPA_POLICY_1, SCOPA_POLICY_2 (default "random")
func FromEnv() (Config, error) {
	logDir := getEnv("SCOPA_LOG_DIR", "logs")
	cfg := Config{
		LogDir:      logDir,
		StatusLog:   getEnv("SCOPA_STATUS_LOG", filepath.Join(logDir, "scopa_simulation.log")),
		AnalysisLog: getEnv("SCOPA_ANALYSIS_LOG", filepath.Join(logDir, "scopa_analysis.json")),
		Workers:     getEnvInt("SCOPA_WORKERS", 8),
		Games:       getEnvInt("SCOPA_GAMES", 100),
		BufferSize:  getEnvInt("SCOPA_BUFFER_SIZE", 100),
		GameBinary:  getEnv("SCOPA_GAME_BINARY", ""),
		Policy1:     getEnv("SCOPA_POLICY_1", "random"),
		Policy2:     getEnv("SCOPA_POLICY_2", "random"),
		Rules:       game.DefaultHouseRules(),
	}

	seed, err := strconv.ParseUint(getEnv("SCOPA_SEED", "0"), 10, 64)
	if err != nil {
		return Config{}, fmt.Errorf("invalid SCOPA_SEED: %w", err)
	}
	cfg.Seed = seed

	level, err := logrus.ParseLevel(getEnv("SCOPA_LOG_LEVEL", "info"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid SCOPA_LOG_LEVEL: %w", err)
	}
	cfg.LogLevel = level

	if raw := os.Getenv("SCOPA_HOUSE_RULES"); raw != "" {
		if cfg.Rules, err = ParseHouseRules(raw, cfg.Rules); err != nil {
			return Config{}, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ParseHouseRules applies a JSON object of rule overrides on top of current.
func ParseHouseRules(raw string, current game.HouseRules) (game.HouseRules, error) {
	var m map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		return current, fmt.Errorf("invalid house rules JSON: %w", err)
	}
	rules, err := game.ParseRules(m, current)
	if err != nil {
		return current, fmt.Errorf("invalid house rules: %w", err)
	}
	return rules, nil
}

// Validate checks the numeric settings.
func (c Config) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("workers must be positive, got %d", c.Workers)
	}
	if c.Games < 0 {
		return fmt.Errorf("games must not be negative, got %d", c.Games)
	}
	if c.BufferSize < 1 {
		return fmt.Errorf("buffer size must be positive, got %d", c.BufferSize)
	}
	for _, name := range []string{c.Policy1, c.Policy2} {
		if _, err := game.ParsePolicy(name); err != nil {
			return err
		}
	}
	return nil
}

// BaseSeed returns the configured seed, or one taken from the clock when
// none is set.
func (c Config) BaseSeed() uint64 {
	if c.Seed != 0 {
		return c.Seed
	}
	return uint64(time.Now().UnixNano())
}

// Policies resolves both configured policy names.
func (c Config) Policies() (game.Policy, game.Policy, error) {
	p1, err := game.ParsePolicy(c.Policy1)
	if err != nil {
		return nil, nil, err
	}
	p2, err := game.ParsePolicy(c.Policy2)
	if err != nil {
		return nil, nil, err
	}
	return p1, p2, nil
}

// NewLogger builds the process logger at the configured level.
func (c Config) NewLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(c.LogLevel)
	return logger
}

// getEnv retrieves an environment variable's value or returns a default.
func getEnv(key, defVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defVal
}

// getEnvInt retrieves an integer value from an environment variable or returns a default value.
func getEnvInt(key string, defVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defVal
	}
	return i
}
