// Package config loads tool configuration: defaults, then an optional
// civmod.toml, then environment variable overrides.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"

	"github.com/Phlair/civ7-modding-tools-sub000/pkg/errors"
)

// Config holds the editor and server settings.
type Config struct {
	// BackendURL is the gateway base URL used by remote commands.
	BackendURL string `toml:"backend_url" env:"CIVMOD_BACKEND_URL"`

	// CacheDir overrides the HTTP cache location. Empty uses the
	// default under the user cache dir.
	CacheDir string `toml:"cache_dir" env:"CIVMOD_CACHE_DIR"`

	// CacheTTL is how long reference-data responses are cached.
	CacheTTL time.Duration `toml:"cache_ttl" env:"CIVMOD_CACHE_TTL"`

	// OutputDir is the default export destination.
	OutputDir string `toml:"output_dir" env:"CIVMOD_OUTPUT_DIR"`

	// DataDir is where the file storage backend keeps saved mods.
	DataDir string `toml:"data_dir" env:"CIVMOD_DATA_DIR"`

	Server Server `toml:"server"`
}

// Server holds the backend service settings.
type Server struct {
	// Addr is the listen address.
	Addr string `toml:"addr" env:"CIVMOD_SERVER_ADDR"`

	// RefdataDir is a directory of <catalog>.json files served as
	// reference data. Empty serves the built-in catalogs.
	RefdataDir string `toml:"refdata_dir" env:"CIVMOD_REFDATA_DIR"`

	// MongoURI enables the MongoDB storage backend when set; otherwise
	// documents are stored as files under DataDir.
	MongoURI string `toml:"mongo_uri" env:"CIVMOD_MONGO_URI"`

	// RedisAddr enables a shared redis catalog cache when set.
	RedisAddr string `toml:"redis_addr" env:"CIVMOD_REDIS_ADDR"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		BackendURL: "http://localhost:8760",
		CacheTTL:   24 * time.Hour,
		OutputDir:  "dist",
		Server: Server{
			Addr: ":8760",
		},
	}
}

// Load builds the configuration: defaults, the TOML file at path when it
// exists (an explicit path that is missing is an error), then
// environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = "civmod.toml"
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if !os.IsNotExist(err) || explicit {
			return cfg, fmt.Errorf("load config %s: %w", path, err)
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}

	if err := errors.ValidateURL(cfg.BackendURL); err != nil {
		return cfg, fmt.Errorf("backend_url: %w", err)
	}
	return cfg, nil
}
