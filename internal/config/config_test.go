package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dgallion1/factbook/internal/convert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "FACTBOOK_API_KEY", "MAX_UPLOAD_BYTES", "LIMITS_FILE",
		"LIMIT_TITLE", "LIMIT_DESCRIPTION", "LIMIT_FACT", "LIMIT_QUESTION", "LIMIT_ATTACHMENT",
		"STATS_WINDOW", "LOG_LEVEL"} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "8090" {
		t.Errorf("expected port 8090, got %q", cfg.Port)
	}
	if cfg.MaxUploadBytes != 10<<20 {
		t.Errorf("expected 10 MiB upload limit, got %d", cfg.MaxUploadBytes)
	}
	if cfg.Limits != convert.DefaultLimits() {
		t.Errorf("expected default limits, got %+v", cfg.Limits)
	}
	if cfg.StatsWindow != time.Hour {
		t.Errorf("expected 1h stats window, got %v", cfg.StatsWindow)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("expected info level, got %v", cfg.LogLevel)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected defaults to validate, got %v", err)
	}
}

func TestLoad_LimitsFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "limits.toml")
	if err := os.WriteFile(path, []byte("[limits]\nfact = 120\nquestion = 80\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("LIMITS_FILE", path)
	t.Setenv("LIMIT_QUESTION", "90")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Limits.Fact != 120 {
		t.Errorf("expected fact limit from file, got %d", cfg.Limits.Fact)
	}
	if cfg.Limits.Question != 90 {
		t.Errorf("expected question limit from env, got %d", cfg.Limits.Question)
	}
	if cfg.Limits.Title != 100 {
		t.Errorf("expected default title limit, got %d", cfg.Limits.Title)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Errorf("expected debug level, got %v", cfg.LogLevel)
	}
}

func TestLoad_MissingLimitsFile(t *testing.T) {
	t.Setenv("LIMITS_FILE", filepath.Join(t.TempDir(), "nope.toml"))
	if _, err := Load(); err == nil {
		t.Error("expected error for missing limits file")
	}
}

func TestLoadLimitsFile_BadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("[limits\nfact = "), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadLimitsFile(path, convert.DefaultLimits()); err == nil {
		t.Error("expected parse error")
	}
}

func TestValidate_RejectsNonPositiveLimit(t *testing.T) {
	t.Setenv("LIMITS_FILE", "")
	t.Setenv("LIMIT_FACT", "0")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for zero fact limit")
	}
}
