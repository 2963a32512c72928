// Package profile loads grove configuration profiles from TOML, YAML or JSON
// files, applies GROVE_* environment overrides and hot-reloads on change.
package profile

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"github.com/phanxgames/grove"
)

//go:embed schema.json
var schemaJSON string

var schema = jsonschema.MustCompileString("grove-profile.schema.json", schemaJSON)

var (
	// ErrUnsupportedFormat is returned for files that are not TOML, YAML or JSON.
	ErrUnsupportedFormat = errors.New("profile: unsupported format")

	// ErrSchema wraps schema violations in a profile document.
	ErrSchema = errors.New("profile: schema violation")

	// ErrAlreadyWatching is returned by Loader.Watch when a watch is running.
	ErrAlreadyWatching = errors.New("profile: already watching")
)

// Format identifies a profile encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatOf returns the format implied by a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
}

// Load reads the profile at path. Missing keys keep their defaults.
func Load(path string) (grove.Config, error) {
	format, err := FormatOf(path)
	if err != nil {
		return grove.Config{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return grove.Config{}, fmt.Errorf("read profile: %w", err)
	}
	return Parse(data, format)
}

// Parse decodes a profile document, checks it against the profile schema,
// applies environment overrides and validates the result.
func Parse(data []byte, format Format) (grove.Config, error) {
	raw, err := decodeRaw(data, format)
	if err != nil {
		return grove.Config{}, err
	}
	if err := validateSchema(raw); err != nil {
		return grove.Config{}, err
	}

	cfg := grove.DefaultConfig()
	if err := decode(data, format, &cfg); err != nil {
		return grove.Config{}, err
	}
	if err := ApplyEnv(&cfg); err != nil {
		return grove.Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return grove.Config{}, fmt.Errorf("validate profile: %w", err)
	}
	return cfg, nil
}

// FromEnv returns the default configuration with environment overrides.
func FromEnv() (grove.Config, error) {
	cfg := grove.DefaultConfig()
	if err := ApplyEnv(&cfg); err != nil {
		return grove.Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return grove.Config{}, fmt.Errorf("validate env: %w", err)
	}
	return cfg, nil
}

// ApplyEnv overrides cfg fields from GROVE_* environment variables.
func ApplyEnv(cfg *grove.Config) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

func decode(data []byte, format Format, cfg *grove.Config) error {
	var err error
	switch format {
	case FormatTOML:
		_, err = toml.Decode(string(data), cfg)
	case FormatYAML:
		err = yaml.Unmarshal(data, cfg)
	case FormatJSON:
		err = json.Unmarshal(data, cfg)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return fmt.Errorf("parse %s profile: %w", format, err)
	}
	return nil
}

// decodeRaw decodes the document generically and round-trips it through
// JSON so the schema sees JSON types whatever the source encoding.
func decodeRaw(data []byte, format Format) (any, error) {
	doc := map[string]any{}
	var err error
	switch format {
	case FormatTOML:
		err = toml.Unmarshal(data, &doc)
	case FormatYAML:
		err = yaml.Unmarshal(data, &doc)
	case FormatJSON:
		err = json.Unmarshal(data, &doc)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s profile: %w", format, err)
	}

	b, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("normalize profile: %w", err)
	}
	var out any
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, fmt.Errorf("normalize profile: %w", err)
	}
	return out, nil
}

func validateSchema(doc any) error {
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("%w: %v", ErrSchema, err)
	}
	return nil
}
