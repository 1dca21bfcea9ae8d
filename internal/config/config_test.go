package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(old) })
}

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())
	for _, k := range []string{
		"CODEARENA_PROBLEMS_DIR", "CODEARENA_EXERCISES_FILE", "CODEARENA_STORE", "CODEARENA_DATA_DIR",
		"CODEARENA_EXEC_TIMEOUT", "CODEARENA_MAX_STEPS", "CODEARENA_LOG_LEVEL", "CODEARENA_NAME_ONLY",
	} {
		os.Unsetenv(k)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ProblemsDir != "problems" || cfg.Store != StoreSQLite || cfg.ExecTimeout != 10*time.Second {
		t.Errorf("defaults = %+v", cfg)
	}
	if cfg.MaxSteps != 0 || cfg.NameOnly || cfg.LogLevel != slog.LevelInfo {
		t.Errorf("defaults = %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("CODEARENA_PROBLEMS_DIR", "/srv/problems")
	t.Setenv("CODEARENA_STORE", "FILE")
	t.Setenv("CODEARENA_EXEC_TIMEOUT", "250ms")
	t.Setenv("CODEARENA_MAX_STEPS", "100000")
	t.Setenv("CODEARENA_LOG_LEVEL", "debug")
	t.Setenv("CODEARENA_NAME_ONLY", "yes")
	t.Setenv("CODEARENA_DATA_DIR", "/tmp/arena")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ProblemsDir != "/srv/problems" || cfg.Store != StoreFile {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.ExecTimeout != 250*time.Millisecond || cfg.MaxSteps != 100000 {
		t.Errorf("limits = %v, %d", cfg.ExecTimeout, cfg.MaxSteps)
	}
	if cfg.LogLevel != slog.LevelDebug || !cfg.NameOnly {
		t.Errorf("cfg = %+v", cfg)
	}
	if got := cfg.ProgressFile(); got != filepath.Join("/tmp/arena", "player_progress.json") {
		t.Errorf("ProgressFile = %q", got)
	}
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	os.Unsetenv("CODEARENA_EXERCISES_FILE")
	t.Cleanup(func() { os.Unsetenv("CODEARENA_EXERCISES_FILE") })

	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("CODEARENA_EXERCISES_FILE=extra.yaml\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ExercisesFile != "extra.yaml" {
		t.Errorf("ExercisesFile = %q", cfg.ExercisesFile)
	}
}

func TestLoad_BadLogLevel(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("CODEARENA_LOG_LEVEL", "chatty")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for unknown log level")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"ok", Config{ProblemsDir: "p", Store: StoreFile}, false},
		{"empty problems dir", Config{Store: StoreFile}, true},
		{"unknown store", Config{ProblemsDir: "p", Store: "redis"}, true},
		{"negative timeout", Config{ProblemsDir: "p", Store: StoreSQLite, ExecTimeout: -time.Second}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Validate(); (err != nil) != tt.wantErr {
				t.Fatalf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
