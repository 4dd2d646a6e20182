// Package config loads wordrank settings from defaults, an optional YAML file
// and the environment, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/viant/wordrank/schedule"
)

// Store kinds.
const (
	StoreSQLite = "sqlite"
	StoreBadger = "badger"
	StoreDir    = "dir"
)

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("config: invalid configuration")

// Config holds every setting shared by the wordrank commands.
type Config struct {
	Vectors    string       `yaml:"vectors"`
	Vocabulary string       `yaml:"vocabulary"`
	DailyWords string       `yaml:"daily_words"`
	BaseDate   string       `yaml:"base_date"`
	Workers    int          `yaml:"workers"`
	Store      StoreConfig  `yaml:"store"`
	Server     ServerConfig `yaml:"server"`
}

// StoreConfig selects the archive backend.
type StoreConfig struct {
	// Kind is one of StoreSQLite, StoreBadger or StoreDir.
	Kind string `yaml:"kind"`
	// DSN is the SQLite database path or sqlite:/// URL.
	DSN string `yaml:"dsn"`
	// Dir is the badger data directory or the ranking file directory.
	Dir string `yaml:"dir"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Addr      string `yaml:"addr"`
	CacheSize int    `yaml:"cache_size"`
	// CacheTTL bounds how long a cached ranking is served, e.g. "10m".
	CacheTTL time.Duration `yaml:"cache_ttl"`
}

// DefaultConfig returns the settings used when neither a file nor the
// environment overrides them.
func DefaultConfig() *Config {
	return &Config{
		Vectors:    "models/ubercorpus.cased.lemmatized.glove.300d",
		Vocabulary: "data/wordlist.txt",
		DailyWords: "data/daily_words.txt",
		BaseDate:   schedule.FormatDate(schedule.DefaultBase),
		Store: StoreConfig{
			Kind: StoreSQLite,
			DSN:  "instance/games.db",
			Dir:  "precomputed",
		},
		Server: ServerConfig{
			Addr:      ":8080",
			CacheSize: 64,
			CacheTTL:  10 * time.Minute,
		},
	}
}

// Load returns the defaults overlaid with the YAML file at path (skipped when
// path is empty) and then the environment.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		if err := loadYAMLFile(path, cfg); err != nil {
			return nil, fmt.Errorf("config: %s: %w", path, err)
		}
	}
	if err := applyEnvironment(cfg, os.LookupEnv); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadYAMLFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

func applyEnvironment(cfg *Config, lookup func(string) (string, bool)) error {
	env := func(names ...string) (string, bool) {
		for _, name := range names {
			if v, ok := lookup(name); ok && strings.TrimSpace(v) != "" {
				return strings.TrimSpace(v), true
			}
		}
		return "", false
	}
	if v, ok := env("WORDRANK_VECTORS", "LOCAL_EMBEDDINGS_PATH"); ok {
		cfg.Vectors = v
	}
	if v, ok := env("WORDRANK_VOCABULARY"); ok {
		cfg.Vocabulary = v
	}
	if v, ok := env("WORDRANK_DAILY_WORDS"); ok {
		cfg.DailyWords = v
	}
	if v, ok := env("WORDRANK_BASE_DATE"); ok {
		cfg.BaseDate = v
	}
	if v, ok := env("WORDRANK_WORKERS"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: WORDRANK_WORKERS: %w", err)
		}
		cfg.Workers = n
	}
	if v, ok := env("WORDRANK_STORE"); ok {
		cfg.Store.Kind = v
	}
	if v, ok := env("WORDRANK_STORE_DSN", "DATABASE_URL"); ok {
		cfg.Store.DSN = v
	}
	if v, ok := env("WORDRANK_STORE_DIR"); ok {
		cfg.Store.Dir = v
	}
	if v, ok := env("WORDRANK_ADDR"); ok {
		cfg.Server.Addr = v
	}
	if v, ok := env("WORDRANK_CACHE_SIZE"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: WORDRANK_CACHE_SIZE: %w", err)
		}
		cfg.Server.CacheSize = n
	}
	if v, ok := env("WORDRANK_CACHE_TTL"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("config: WORDRANK_CACHE_TTL: %w", err)
		}
		cfg.Server.CacheTTL = d
	}
	return nil
}

// Base parses BaseDate; an empty value yields schedule.DefaultBase.
func (c *Config) Base() (time.Time, error) {
	if c.BaseDate == "" {
		return schedule.DefaultBase, nil
	}
	return schedule.ParseDate(c.BaseDate)
}

// Validate checks the settings every command depends on.
func (c *Config) Validate() error {
	if _, err := c.Base(); err != nil {
		return fmt.Errorf("%w: base_date: %v", ErrInvalid, err)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must not be negative", ErrInvalid)
	}
	if c.Server.CacheSize < 0 {
		return fmt.Errorf("%w: server.cache_size must not be negative", ErrInvalid)
	}
	if c.Server.CacheTTL < 0 {
		return fmt.Errorf("%w: server.cache_ttl must not be negative", ErrInvalid)
	}
	switch c.Store.Kind {
	case StoreSQLite:
		if c.Store.DSN == "" {
			return fmt.Errorf("%w: store.dsn is required for sqlite", ErrInvalid)
		}
		if i := strings.Index(c.Store.DSN, "://"); i > 0 && !strings.HasPrefix(c.Store.DSN, "sqlite") {
			return fmt.Errorf("%w: unsupported database URL scheme %q", ErrInvalid, c.Store.DSN[:i])
		}
	case StoreBadger, StoreDir:
		if c.Store.Dir == "" {
			return fmt.Errorf("%w: store.dir is required for %s", ErrInvalid, c.Store.Kind)
		}
	default:
		return fmt.Errorf("%w: unknown store kind %q", ErrInvalid, c.Store.Kind)
	}
	return nil
}
