// Package config provides application configuration.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Store backends.
const (
	StoreSQLite = "sqlite"
	StoreFile   = "file"
)

// Config holds all application configuration.
type Config struct {
	ProblemsDir   string        // reference solutions turned into challenges
	ExercisesFile string        // optional registry override, merged over the built-in one
	Store         string        // "sqlite" or "file"
	DataDir       string        // progress, database and log file live here
	ExecTimeout   time.Duration // per execution, 0 disables
	MaxSteps      uint64        // per execution, 0 disables
	LogLevel      slog.Level
	NameOnly      bool // match entry points by name only
}

// Load reads an optional .env file, then CODEARENA_* environment variables.
// Variables already set in the environment win over the .env file.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("read .env: %w", err)
	}

	level := slog.LevelInfo
	if v := getEnv("CODEARENA_LOG_LEVEL", ""); v != "" {
		if err := level.UnmarshalText([]byte(v)); err != nil {
			return nil, fmt.Errorf("CODEARENA_LOG_LEVEL: %w", err)
		}
	}

	cfg := &Config{
		ProblemsDir:   getEnv("CODEARENA_PROBLEMS_DIR", "problems"),
		ExercisesFile: getEnv("CODEARENA_EXERCISES_FILE", ""),
		Store:         strings.ToLower(getEnv("CODEARENA_STORE", StoreSQLite)),
		DataDir:       getEnv("CODEARENA_DATA_DIR", ""),
		ExecTimeout:   getEnvDuration("CODEARENA_EXEC_TIMEOUT", 10*time.Second),
		MaxSteps:      uint64(getEnvInt("CODEARENA_MAX_STEPS", 0)),
		LogLevel:      level,
		NameOnly:      getEnvBool("CODEARENA_NAME_ONLY", false),
	}
	return cfg, nil
}

// Validate checks that all required configuration fields are set.
func (c *Config) Validate() error {
	if c.ProblemsDir == "" {
		return fmt.Errorf("CODEARENA_PROBLEMS_DIR cannot be empty")
	}
	if c.Store != StoreSQLite && c.Store != StoreFile {
		return fmt.Errorf("CODEARENA_STORE must be %q or %q, got %q", StoreSQLite, StoreFile, c.Store)
	}
	if c.ExecTimeout < 0 {
		return fmt.Errorf("CODEARENA_EXEC_TIMEOUT must be >= 0")
	}
	return nil
}

// ProgressFile is where the file backend keeps progress.
func (c *Config) ProgressFile() string { return filepath.Join(c.DataDir, "player_progress.json") }

// DatabasePath is where the sqlite backend keeps its database.
func (c *Config) DatabasePath() string { return filepath.Join(c.DataDir, "codearena.db") }

// LogFile is where structured logs are written.
func (c *Config) LogFile() string { return filepath.Join(c.DataDir, "codearena.log") }

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return fallback
	}
}

func getEnvInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || n < 0 {
		return fallback
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	d, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return d
}
