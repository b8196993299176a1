package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/dgallion1/factbook/internal/convert"
)

type Config struct {
	Port string

	// Auth
	APIKey string

	// Upload limits
	MaxUploadBytes int64

	// Length limits
	LimitsFile string
	Limits     convert.Limits

	// Stats
	StatsWindow time.Duration

	LogLevel slog.Level
}

// Load reads the configuration from the environment. Limits start from the
// defaults, are overlaid by LIMITS_FILE, then by the LIMIT_* variables.
func Load() (Config, error) {
	cfg := Config{
		Port: envOr("PORT", "8090"),

		APIKey: os.Getenv("FACTBOOK_API_KEY"),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 10<<20),

		LimitsFile: os.Getenv("LIMITS_FILE"),
		Limits:     convert.DefaultLimits(),

		StatsWindow: envDuration("STATS_WINDOW", 1*time.Hour),

		LogLevel: envLevel("LOG_LEVEL", slog.LevelInfo),
	}

	if cfg.LimitsFile != "" {
		l, err := LoadLimitsFile(cfg.LimitsFile, cfg.Limits)
		if err != nil {
			return Config{}, err
		}
		cfg.Limits = l
	}
	cfg.Limits.Title = envInt("LIMIT_TITLE", cfg.Limits.Title)
	cfg.Limits.Description = envInt("LIMIT_DESCRIPTION", cfg.Limits.Description)
	cfg.Limits.Fact = envInt("LIMIT_FACT", cfg.Limits.Fact)
	cfg.Limits.Question = envInt("LIMIT_QUESTION", cfg.Limits.Question)
	cfg.Limits.Attachment = envInt("LIMIT_ATTACHMENT", cfg.Limits.Attachment)

	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 10 << 20
	}
	if cfg.StatsWindow <= 0 {
		cfg.StatsWindow = 1 * time.Hour
	}

	return cfg, nil
}

func (c Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT is required")
	}
	if err := c.Limits.Validate(); err != nil {
		return fmt.Errorf("invalid limits: %w", err)
	}
	return nil
}

type limitsFile struct {
	Limits convert.Limits `toml:"limits"`
}

// LoadLimitsFile reads a TOML file with a [limits] table. Keys missing from
// the file keep their value from base.
func LoadLimitsFile(path string, base convert.Limits) (convert.Limits, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return convert.Limits{}, fmt.Errorf("read limits file: %w", err)
	}
	f := limitsFile{Limits: base}
	if err := toml.Unmarshal(data, &f); err != nil {
		return convert.Limits{}, fmt.Errorf("parse limits file %s: %w", path, err)
	}
	return f.Limits, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envLevel(key string, fallback slog.Level) slog.Level {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	var l slog.Level
	if err := l.UnmarshalText([]byte(v)); err != nil {
		return fallback
	}
	return l
}
