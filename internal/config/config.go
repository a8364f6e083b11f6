// Package config loads server settings from an optional YAML file and the
// environment. Environment variables win over the file.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	StorePostgres = "postgres"
	StoreSQLite   = "sqlite"
	StoreMemory   = "memory"
)

type Config struct {
	Addr          string `yaml:"addr"`
	Store         string `yaml:"store"` // empty picks postgres when a DSN is set, else memory
	DBDSN         string `yaml:"db_dsn"`
	SQLitePath    string `yaml:"sqlite_path"`
	MigrationsDir string `yaml:"migrations_dir"` // empty uses the embedded migrations
	ArchiveDir    string `yaml:"archive_dir"`
	CatalogPath   string `yaml:"catalog_path"`
	RoomID        string `yaml:"room_id"`
	MaxAttempts   int    `yaml:"max_attempts"`

	World WorldConfig `yaml:"world"`
	Log   LogConfig   `yaml:"log"`
}

type WorldConfig struct {
	TickSeconds        int    `yaml:"tick_seconds"`
	StartUnix          int64  `yaml:"start_unix"`
	SettlementName     string `yaml:"settlement_name"`
	RoomRefreshSeconds int    `yaml:"room_refresh_seconds"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func Defaults() Config {
	return Config{
		Addr:        ":8080",
		SQLitePath:  "data/hearthvale.db",
		RoomID:      "room-1",
		MaxAttempts: 5,
		World: WorldConfig{
			TickSeconds:        60,
			SettlementName:     "Hearthvale",
			RoomRefreshSeconds: 60,
		},
		Log: LogConfig{Level: "info", Format: "text"},
	}
}

// FromEnv reads HEARTHVALE_CONFIG and the overrides from the process
// environment.
func FromEnv() (Config, error) {
	return Load(os.Getenv("HEARTHVALE_CONFIG"), os.Getenv)
}

func Load(path string, getenv func(string) string) (Config, error) {
	cfg := Defaults()
	if strings.TrimSpace(path) != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return cfg, err
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return cfg, fmt.Errorf("%s: %w", path, err)
		}
	}
	if getenv != nil {
		cfg.applyEnv(getenv)
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(getenv func(string) string) {
	str := func(key string, dst *string) {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			*dst = v
		}
	}
	str("HEARTHVALE_ADDR", &c.Addr)
	str("HEARTHVALE_STORE", &c.Store)
	str("HEARTHVALE_DB_DSN", &c.DBDSN)
	str("HEARTHVALE_SQLITE_PATH", &c.SQLitePath)
	str("HEARTHVALE_MIGRATIONS_DIR", &c.MigrationsDir)
	str("HEARTHVALE_ARCHIVE_DIR", &c.ArchiveDir)
	str("HEARTHVALE_CATALOG", &c.CatalogPath)
	str("HEARTHVALE_ROOM_ID", &c.RoomID)
	str("LOG_LEVEL", &c.Log.Level)
	str("LOG_FORMAT", &c.Log.Format)
	c.World.TickSeconds = intEnv(getenv, "WORLD_TICK_SECONDS", c.World.TickSeconds)
	c.World.StartUnix = int64(intEnv(getenv, "WORLD_START_UNIX", int(c.World.StartUnix)))
	c.MaxAttempts = intEnv(getenv, "HEARTHVALE_MAX_ATTEMPTS", c.MaxAttempts)
}

func (c *Config) normalize() {
	c.Store = strings.ToLower(strings.TrimSpace(c.Store))
	if c.Store == "" {
		c.Store = StoreMemory
		if c.DBDSN != "" {
			c.Store = StorePostgres
		}
	}
	c.Log.Level = strings.ToLower(c.Log.Level)
	c.Log.Format = strings.ToLower(c.Log.Format)
	if c.World.TickSeconds <= 0 {
		c.World.TickSeconds = Defaults().World.TickSeconds
	}
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = Defaults().MaxAttempts
	}
}

func (c Config) Validate() error {
	switch c.Store {
	case StorePostgres:
		if c.DBDSN == "" {
			return fmt.Errorf("config: store %q needs HEARTHVALE_DB_DSN", c.Store)
		}
	case StoreSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("config: store %q needs a sqlite path", c.Store)
		}
	case StoreMemory:
	default:
		return fmt.Errorf("config: unknown store %q", c.Store)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("config: unknown log format %q", c.Log.Format)
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	return nil
}

func (c Config) SlogLevel() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return 0, fmt.Errorf("config: log level: %w", err)
	}
	return lvl, nil
}

func (c Config) TickDuration() time.Duration {
	return time.Duration(c.World.TickSeconds) * time.Second
}

func (c Config) WorldStart() time.Time {
	return time.Unix(c.World.StartUnix, 0).UTC()
}

func (c Config) RoomRefresh() time.Duration {
	return time.Duration(c.World.RoomRefreshSeconds) * time.Second
}

func intEnv(getenv func(string) string, key string, fallback int) int {
	v := strings.TrimSpace(getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
