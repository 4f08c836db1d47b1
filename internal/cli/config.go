package cli

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	errs "github.com/matzehuels/gridglob/pkg/errors"
	"github.com/matzehuels/gridglob/pkg/pipeline"
	"github.com/matzehuels/gridglob/pkg/server"
)

// Cache backends accepted in [cache] backend.
const (
	backendFile  = "file"
	backendRedis = "redis"
	backendNone  = "none"
)

// Config is the contents of gridglob.toml. Every key is optional:
//
//	[engine]
//	tie_break = "row"          # glob axis when coordinate sums tie
//	id_style = "sequential"    # or "uuid"
//	skip_invalid = false
//
//	[cache]
//	backend = "file"           # file, redis, or none
//	dir = "/var/cache/gridglob"
//	redis_addr = "localhost:6379"
//	ttl = "24h"
//
//	[server]
//	addr = "127.0.0.1:8080"
//	max_body = 4194304
type Config struct {
	Engine EngineConfig `toml:"engine"`
	Cache  CacheConfig  `toml:"cache"`
	Server ServerConfig `toml:"server"`
}

// EngineConfig holds constraint engine settings.
type EngineConfig struct {
	TieBreak    string `toml:"tie_break"`
	IDStyle     string `toml:"id_style"`
	SkipInvalid bool   `toml:"skip_invalid"`
}

// CacheConfig selects and configures the result cache.
type CacheConfig struct {
	Backend       string        `toml:"backend"`
	Dir           string        `toml:"dir"`
	RedisAddr     string        `toml:"redis_addr"`
	RedisPassword string        `toml:"redis_password"`
	RedisDB       int           `toml:"redis_db"`
	TTL           time.Duration `toml:"ttl"`
}

// ServerConfig configures the serve command.
type ServerConfig struct {
	Addr    string `toml:"addr"`
	MaxBody int64  `toml:"max_body"`
}

func defaultConfig() *Config {
	return &Config{
		Engine: EngineConfig{
			TieBreak: pipeline.DefaultTieBreak,
			IDStyle:  pipeline.DefaultIDStyle,
		},
		Cache: CacheConfig{
			Backend:   backendFile,
			RedisAddr: "localhost:6379",
			TTL:       pipeline.DefaultCacheTTL,
		},
		Server: ServerConfig{Addr: server.DefaultAddr},
	}
}

// loadConfig reads the configuration at path. With an empty path it
// searches the working directory and then the XDG config directory, and
// falls back to defaults when neither has a file. It returns the path
// actually read, if any.
func loadConfig(path string) (*Config, string, error) {
	cfg := defaultConfig()

	if path == "" {
		path = findConfig()
		if path == "" {
			return cfg, "", nil
		}
	} else if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil, "", errs.New(errs.ErrCodeFileNotFound, "config file %s not found", path)
	}

	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, "", errs.Wrap(errs.ErrCodeInvalidFormat, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, "", errs.New(errs.ErrCodeInvalidFormat, "%s: unknown key %s", path, undecoded[0])
	}
	if err := cfg.validate(); err != nil {
		return nil, "", errs.Wrap(errs.GetCode(err), err, "%s", path)
	}
	return cfg, path, nil
}

// findConfig returns the first existing config file, or "".
func findConfig() string {
	candidates := []string{configFile}
	if dir, err := configDir(); err == nil {
		candidates = append(candidates, filepath.Join(dir, configFile))
	}
	for _, p := range candidates {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p
		}
	}
	return ""
}

func (c *Config) validate() error {
	if err := pipeline.ValidateTieBreak(c.Engine.TieBreak); err != nil {
		return err
	}
	if err := pipeline.ValidateIDStyle(c.Engine.IDStyle); err != nil {
		return err
	}
	switch c.Cache.Backend {
	case backendFile, backendRedis, backendNone:
	default:
		return errs.New(errs.ErrCodeInvalidInput, "unknown cache backend %q (want %s, %s, or %s)",
			c.Cache.Backend, backendFile, backendRedis, backendNone)
	}
	if c.Cache.TTL < 0 {
		return errs.New(errs.ErrCodeInvalidInput, "cache ttl must not be negative")
	}
	return nil
}

// pipelineOptions returns the engine settings as pipeline options.
func (c *Config) pipelineOptions() pipeline.Options {
	return pipeline.Options{
		TieBreak:    c.Engine.TieBreak,
		IDStyle:     c.Engine.IDStyle,
		SkipInvalid: c.Engine.SkipInvalid,
		CacheTTL:    c.Cache.TTL,
	}
}
