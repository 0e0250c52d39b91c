package artifact

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/synmap/pkg/synmap/internalerr"
)

// Codec serializes a flat string->string table into a human-readable document.
type Codec interface {
	Format() string
	Ext() string
	Encode(table map[string]string) ([]byte, error)
	Decode(data []byte) (map[string]string, error)
}

var (
	JSON Codec = jsonCodec{}
	YAML Codec = yamlCodec{}
)

// CodecByFormat returns the codec for a format name ("json", "yaml"/"yml").
// An empty format selects JSON.
func CodecByFormat(format string) (Codec, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "json":
		return JSON, nil
	case "yaml", "yml":
		return YAML, nil
	}
	return nil, fmt.Errorf("format %q: %w", format, internalerr.ErrUnknownFormat)
}

// CodecFor picks a codec from a document name's extension.
func CodecFor(name string) (Codec, error) {
	ext := strings.TrimPrefix(filepath.Ext(name), ".")
	if ext == "" {
		return nil, fmt.Errorf("document %q has no extension: %w", name, internalerr.ErrUnknownFormat)
	}
	return CodecByFormat(ext)
}

type jsonCodec struct{}

func (jsonCodec) Format() string { return "json" }
func (jsonCodec) Ext() string    { return ".json" }

func (jsonCodec) Encode(table map[string]string) ([]byte, error) {
	// MarshalIndent emits ": " between keys and values and sorts keys.
	b, err := json.MarshalIndent(table, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(b, '\n'), nil
}

func (jsonCodec) Decode(data []byte) (map[string]string, error) {
	table := make(map[string]string)
	if err := json.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("decode json table: %w", err)
	}
	return table, nil
}

type yamlCodec struct{}

func (yamlCodec) Format() string { return "yaml" }
func (yamlCodec) Ext() string    { return ".yaml" }

func (yamlCodec) Encode(table map[string]string) ([]byte, error) {
	return yaml.Marshal(table)
}

func (yamlCodec) Decode(data []byte) (map[string]string, error) {
	table := make(map[string]string)
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("decode yaml table: %w", err)
	}
	return table, nil
}
