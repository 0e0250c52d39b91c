package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/cognicore/synmap/pkg/synmap/artifact"
	"github.com/cognicore/synmap/pkg/synmap/internalerr"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "synmap.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("", "")
	if err != nil {
		t.Fatalf("Load with no file should succeed: %v", err)
	}
	if cfg.Artifact.Backend != BackendDir {
		t.Errorf("Backend = %q, want dir", cfg.Artifact.Backend)
	}
	if cfg.Artifact.Name != "entity_synonyms" {
		t.Errorf("Name = %q", cfg.Artifact.Name)
	}
	if cfg.Codec() != artifact.JSON {
		t.Error("Default codec should be JSON")
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `
artifact:
  backend: sqlite
  path: `+filepath.Join(dir, "models", "model.db")+`
  name: city_synonyms
  format: yaml
training:
  chunk_size: 50
log:
  level: debug
  format: json
`)

	cfg, err := Load(path, "")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Artifact.Backend != BackendSQLite || cfg.Artifact.Name != "city_synonyms" {
		t.Errorf("Artifact = %+v", cfg.Artifact)
	}
	if cfg.Training.ChunkSize != 50 {
		t.Errorf("ChunkSize = %d, want 50", cfg.Training.ChunkSize)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Errorf("Log = %+v", cfg.Log)
	}
	if cfg.Codec() != artifact.YAML {
		t.Error("Codec should be YAML")
	}

	st, err := cfg.OpenStore(context.Background())
	if err != nil {
		t.Fatalf("OpenStore: %v", err)
	}
	defer st.Close()
	if _, err := os.Stat(filepath.Join(dir, "models")); err != nil {
		t.Errorf("OpenStore should create the database directory: %v", err)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "training:\n  chunk_size: 10\n")

	cfg, err := Load(path, "")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Artifact.Path != "model" || cfg.Artifact.Format != "json" {
		t.Errorf("Defaults lost: %+v", cfg.Artifact)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	if err := os.WriteFile(envPath, []byte("SYNMAP_CHUNK_SIZE=7\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvArtifactPath, filepath.Join(dir, "elsewhere"))
	t.Setenv(EnvLogLevel, "warn")
	t.Setenv(EnvChunkSize, "")
	os.Unsetenv(EnvChunkSize)

	cfg, err := Load("", envPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Artifact.Path != filepath.Join(dir, "elsewhere") {
		t.Errorf("Path = %q", cfg.Artifact.Path)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("Level = %q", cfg.Log.Level)
	}
	if cfg.Training.ChunkSize != 7 {
		t.Errorf("ChunkSize = %d, want 7 from .env", cfg.Training.ChunkSize)
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown backend", "artifact:\n  backend: s3\n"},
		{"bad format", "artifact:\n  format: toml\n"},
		{"name with path", "artifact:\n  name: ../escape\n"},
		{"negative chunk", "training:\n  chunk_size: -1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, t.TempDir(), tt.content)
			_, err := Load(path, "")
			if !errors.Is(err, internalerr.ErrInvalidConfig) {
				t.Errorf("Load error = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestLoadBadEnvChunk(t *testing.T) {
	t.Setenv(EnvChunkSize, "lots")
	_, err := Load("", "")
	if !errors.Is(err, internalerr.ErrInvalidConfig) {
		t.Errorf("Load error = %v, want ErrInvalidConfig", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/synmap.yaml", ""); err == nil {
		t.Error("Should error on nonexistent config")
	}
}

func TestOpenStoreUnknownBackend(t *testing.T) {
	cfg := Default()
	cfg.Artifact.Backend = "s3"
	if _, err := cfg.OpenStore(context.Background()); !errors.Is(err, internalerr.ErrStoreUnavailable) {
		t.Errorf("OpenStore error = %v, want ErrStoreUnavailable", err)
	}
}
