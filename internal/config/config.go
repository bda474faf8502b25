// Package config loads the TOML configuration consumed by the serve command.
//
// A config file is optional: Default covers local use, and the serve command
// layers its flags on top before validating. Durations are written as TOML
// strings ("10s", "1h30m").
package config

import (
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/tetraptych/etymoscope-kiro/pkg/engine"
	"github.com/tetraptych/etymoscope-kiro/pkg/errors"
)

// Cache backend names accepted by [CacheConfig].
const (
	CacheBackendNone  = "none"
	CacheBackendFile  = "file"
	CacheBackendRedis = "redis"
)

// Duration wraps time.Duration so TOML files can spell timeouts as "10s".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler for TOML decoding.
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// Config is the full serve configuration.
type Config struct {
	Server ServerConfig `toml:"server"`
	Data   DataConfig   `toml:"data"`
	Cache  CacheConfig  `toml:"cache"`
	Limits LimitsConfig `toml:"limits"`
}

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	Addr            string   `toml:"addr"`
	ReadTimeout     Duration `toml:"read_timeout"`
	WriteTimeout    Duration `toml:"write_timeout"`
	ShutdownTimeout Duration `toml:"shutdown_timeout"`
}

// DataConfig names the word dataset and the optional precomputed sampling
// table. Exactly one of WordsPath, WordsURL, and MongoURI must be set.
type DataConfig struct {
	WordsPath       string `toml:"words_path"`
	WordsURL        string `toml:"words_url"`
	MongoURI        string `toml:"mongo_uri"`
	MongoDatabase   string `toml:"mongo_database"`
	MongoCollection string `toml:"mongo_collection"`
	TablePath       string `toml:"table_path"`
}

// CacheConfig selects and parameterizes the response cache backend.
// Dir applies to the file backend; an empty Dir means the user cache home.
type CacheConfig struct {
	Backend       string   `toml:"backend"`
	Dir           string   `toml:"dir"`
	RedisAddr     string   `toml:"redis_addr"`
	RedisPassword string   `toml:"redis_password"`
	RedisDB       int      `toml:"redis_db"`
	TTL           Duration `toml:"ttl"`
}

// LimitsConfig bounds query parameters.
type LimitsConfig struct {
	MaxDepth int `toml:"max_depth"`
}

// Default returns the configuration used when no file is given.
// It carries no words source, so it does not pass Validate on its own.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     Duration{10 * time.Second},
			WriteTimeout:    Duration{30 * time.Second},
			ShutdownTimeout: Duration{10 * time.Second},
		},
		Cache: CacheConfig{
			Backend: CacheBackendFile,
		},
		Limits: LimitsConfig{
			MaxDepth: engine.DefaultMaxDepth,
		},
	}
}

// Load reads a TOML file over the defaults. An empty path returns the
// defaults unchanged. Keys absent from the file keep their default values.
//
// Load does not validate: the caller merges flag overrides first and then
// calls Validate.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	return cfg, nil
}

// Validate checks cross-field constraints. All failures carry
// the INVALID_CONFIG code.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "server.addr must not be empty")
	}

	sources := 0
	if c.Data.WordsPath != "" {
		sources++
	}
	if c.Data.WordsURL != "" {
		sources++
	}
	if c.Data.MongoURI != "" {
		sources++
	}
	switch {
	case sources == 0:
		return errors.New(errors.ErrCodeInvalidConfig, "one of data.words_path, data.words_url, data.mongo_uri must be set")
	case sources > 1:
		return errors.New(errors.ErrCodeInvalidConfig, "data.words_path, data.words_url, data.mongo_uri are mutually exclusive")
	}
	if c.Data.MongoURI != "" && (c.Data.MongoDatabase == "" || c.Data.MongoCollection == "") {
		return errors.New(errors.ErrCodeInvalidConfig, "data.mongo_database and data.mongo_collection are required with data.mongo_uri")
	}

	switch c.Cache.Backend {
	case CacheBackendNone, CacheBackendFile, CacheBackendRedis:
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "cache.backend must be none, file, or redis, got %q", c.Cache.Backend)
	}
	if c.Cache.Backend == CacheBackendRedis && c.Cache.RedisAddr == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.redis_addr is required with the redis backend")
	}

	if c.Limits.MaxDepth < 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "limits.max_depth must be at least 1, got %d", c.Limits.MaxDepth)
	}
	return nil
}
