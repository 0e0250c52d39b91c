package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/cognicore/synmap/pkg/synmap/artifact"
	"github.com/cognicore/synmap/pkg/synmap/artifact/dirstore"
	"github.com/cognicore/synmap/pkg/synmap/artifact/sqlite"
	"github.com/cognicore/synmap/pkg/synmap/internalerr"
)

// Artifact backends.
const (
	BackendDir    = "dir"
	BackendSQLite = "sqlite"
)

// Environment overrides, applied after the YAML file.
const (
	EnvArtifactPath = "SYNMAP_ARTIFACT_PATH"
	EnvLogLevel     = "SYNMAP_LOG_LEVEL"
	EnvChunkSize    = "SYNMAP_CHUNK_SIZE"
)

// Config represents the synmap configuration file.
type Config struct {
	Artifact Artifact `yaml:"artifact"`
	Training Training `yaml:"training"`
	Log      Log      `yaml:"log"`
}

// Artifact describes where the synonym table is persisted.
type Artifact struct {
	Backend string `yaml:"backend"` // dir or sqlite
	Path    string `yaml:"path"`    // model directory or database file
	Name    string `yaml:"name"`    // document name without extension
	Format  string `yaml:"format"`  // json or yaml
}

// Training holds training-time options.
type Training struct {
	ChunkSize int `yaml:"chunk_size"`
}

// Log holds logger options.
type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Artifact: Artifact{
			Backend: BackendDir,
			Path:    "model",
			Name:    "entity_synonyms",
			Format:  "json",
		},
		Log: Log{Level: "info", Format: "text"},
	}
}

// Load reads a YAML config file on top of the defaults, then applies
// environment overrides. An empty path skips the file.
// If envFile is non-empty it is loaded into the environment first;
// variables already set are not overwritten.
func Load(path, envFile string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("load env file: %w", err)
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvArtifactPath); v != "" {
		c.Artifact.Path = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv(EnvChunkSize); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s=%q: %w", EnvChunkSize, v, internalerr.ErrInvalidConfig)
		}
		c.Training.ChunkSize = n
	}
	return nil
}

// Validate checks the configuration for obvious mistakes.
func (c *Config) Validate() error {
	switch c.Artifact.Backend {
	case BackendDir, BackendSQLite:
	default:
		return fmt.Errorf("artifact backend %q: %w", c.Artifact.Backend, internalerr.ErrInvalidConfig)
	}
	if strings.TrimSpace(c.Artifact.Path) == "" {
		return fmt.Errorf("artifact path is empty: %w", internalerr.ErrInvalidConfig)
	}
	if err := artifact.ValidateName(c.Artifact.Name); err != nil {
		return fmt.Errorf("artifact name: %v: %w", err, internalerr.ErrInvalidConfig)
	}
	if _, err := artifact.CodecByFormat(c.Artifact.Format); err != nil {
		return fmt.Errorf("artifact format: %v: %w", err, internalerr.ErrInvalidConfig)
	}
	if c.Training.ChunkSize < 0 {
		return fmt.Errorf("training chunk_size %d: %w", c.Training.ChunkSize, internalerr.ErrInvalidConfig)
	}
	return nil
}

// Codec returns the configured document codec.
func (c *Config) Codec() artifact.Codec {
	codec, err := artifact.CodecByFormat(c.Artifact.Format)
	if err != nil {
		return artifact.JSON
	}
	return codec
}

// OpenStore opens the configured artifact store. The caller closes it.
func (c *Config) OpenStore(ctx context.Context) (artifact.Store, error) {
	switch c.Artifact.Backend {
	case BackendSQLite:
		if err := os.MkdirAll(filepath.Dir(c.Artifact.Path), 0o755); err != nil {
			return nil, fmt.Errorf("create store dir: %w", err)
		}
		return sqlite.Open(ctx, c.Artifact.Path)
	case BackendDir:
		return dirstore.New(c.Artifact.Path), nil
	}
	return nil, fmt.Errorf("artifact backend %q: %w", c.Artifact.Backend, internalerr.ErrStoreUnavailable)
}
