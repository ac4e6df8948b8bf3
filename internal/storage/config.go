package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Backend names accepted in Config.Backend.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Config holds application configuration.
type Config struct {
	Backend            string        `yaml:"backend"`
	DataPath           string        `yaml:"dataPath"`
	SQLitePath         string        `yaml:"sqlitePath"`
	Redis              RedisConfig   `yaml:"redis"`
	LogLevel           string        `yaml:"logLevel"`
	PrettyLog          bool          `yaml:"prettyLog"`
	OPMLTitle          string        `yaml:"opmlTitle"`
	ExportName         string        `yaml:"exportName"`
	CullExcludeDomains []string      `yaml:"cullExcludeDomains"`
	CullConcurrency    int           `yaml:"cullConcurrency"`
	CullTimeout        time.Duration `yaml:"cullTimeout"`
}

// RedisConfig holds the settings for the redis backend.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Username string `yaml:"username,omitempty"`
	Password string `yaml:"password,omitempty"`
	DB       int    `yaml:"db"`
	Key      string `yaml:"key"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	dir := defaultConfigDir()
	return Config{
		Backend:    BackendFile,
		DataPath:   filepath.Join(dir, "bookmarks.json"),
		SQLitePath: filepath.Join(dir, "bookmarks.db"),
		Redis: RedisConfig{
			Addr: "localhost:6379",
			Key:  SlotKey,
		},
		LogLevel:           "warn",
		PrettyLog:          true,
		OPMLTitle:          "书签导出",
		ExportName:         "bookmarks-export",
		CullExcludeDomains: []string{"github.com", "gitlab.com"},
		CullConcurrency:    10,
		CullTimeout:        10 * time.Second,
	}
}

// LoadConfig reads config from the YAML file.
// Creates the file with defaults if it doesn't exist.
// Environment overrides are applied last.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// Non-fatal: keep defaults even if the file can't be created
		_ = SaveConfig(path, &config)
	case err != nil:
		return nil, err
	default:
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	config.applyDefaults()
	if err := config.applyEnv(); err != nil {
		return nil, err
	}
	return &config, nil
}

// applyDefaults fills zero values left by a partial config file.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Backend == "" {
		c.Backend = defaults.Backend
	}
	if c.DataPath == "" {
		c.DataPath = defaults.DataPath
	}
	if c.SQLitePath == "" {
		c.SQLitePath = defaults.SQLitePath
	}
	if c.Redis.Addr == "" {
		c.Redis.Addr = defaults.Redis.Addr
	}
	if c.Redis.Key == "" {
		c.Redis.Key = defaults.Redis.Key
	}
	if c.OPMLTitle == "" {
		c.OPMLTitle = defaults.OPMLTitle
	}
	if c.ExportName == "" {
		c.ExportName = defaults.ExportName
	}
	if c.CullExcludeDomains == nil {
		c.CullExcludeDomains = defaults.CullExcludeDomains
	}
	if c.CullConcurrency <= 0 {
		c.CullConcurrency = defaults.CullConcurrency
	}
	if c.CullTimeout <= 0 {
		c.CullTimeout = defaults.CullTimeout
	}
}

func (c *Config) applyEnv() error {
	c.Backend = getenv("NAVMARKS_BACKEND", c.Backend)
	c.LogLevel = getenv("NAVMARKS_LOG_LEVEL", c.LogLevel)
	c.Redis.Addr = getenv("NAVMARKS_REDIS_ADDR", c.Redis.Addr)
	c.Redis.Password = getenv("NAVMARKS_REDIS_PASSWORD", c.Redis.Password)

	if v := os.Getenv("NAVMARKS_REDIS_DB"); v != "" {
		db, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid NAVMARKS_REDIS_DB %q: %w", v, err)
		}
		c.Redis.DB = db
	}
	return nil
}

// SaveConfig writes config to the YAML file.
// Creates the directory if it doesn't exist.
func SaveConfig(path string, config *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// OpenSlot opens the slot selected by cfg.Backend.
func OpenSlot(ctx context.Context, cfg *Config) (Slot, error) {
	switch cfg.Backend {
	case BackendFile:
		return NewFileSlot(cfg.DataPath), nil
	case BackendSQLite:
		return NewSQLiteSlot(cfg.SQLitePath, SlotKey)
	case BackendRedis:
		return OpenRedisSlot(ctx, cfg.Redis)
	case BackendMemory:
		return NewMemorySlot(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}

// DefaultConfigFilePath returns the default config path: ~/.config/navmarks/config.yaml
func DefaultConfigFilePath() string {
	return filepath.Join(defaultConfigDir(), "config.yaml")
}

func defaultConfigDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".navmarks")
	}
	return filepath.Join(homeDir, ".config", "navmarks")
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
