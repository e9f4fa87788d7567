// Package config loads agent configuration from files.
package config

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mcparena/arena-go/domain/config"
)

// Format represents a configuration file format.
type Format string

const (
	// FormatYAML is the YAML format.
	FormatYAML Format = "yaml"
	// FormatJSON is the JSON format.
	FormatJSON Format = "json"
)

// Loader loads agent configuration from files.
type Loader struct {
	// ExpandEnv enables ${VAR} and ${VAR:-default} expansion.
	ExpandEnv bool
	// Validate enables configuration validation after parsing.
	Validate bool
}

// NewLoader creates a loader with default settings.
func NewLoader() *Loader {
	return &Loader{
		ExpandEnv: true,
		Validate:  true,
	}
}

// LoadFile loads configuration from a file path. The format follows
// the file extension.
func (l *Loader) LoadFile(path string) (*config.AgentConfig, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", config.ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("access config file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", config.ErrInvalidFormat, path)
	}

	f, err := os.Open(path) // #nosec G304 -- config path is operator-provided
	if err != nil {
		return nil, fmt.Errorf("open config file: %w", err)
	}
	defer f.Close()

	var format Format
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		format = FormatYAML
	case ".json":
		format = FormatJSON
	default:
		return nil, fmt.Errorf("%w: %s", config.ErrUnsupportedFormat, ext)
	}

	return l.Load(f, format)
}

// Load loads configuration from a reader.
func (l *Loader) Load(r io.Reader, format Format) (*config.AgentConfig, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	if l.ExpandEnv {
		data = expandEnv(data)
	}

	// Parse on top of defaults so omitted sections keep their values.
	cfg := config.Default()
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("%w: %v", config.ErrInvalidFormat, err)
		}
	case FormatJSON:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("%w: %v", config.ErrInvalidFormat, err)
		}
	default:
		return nil, fmt.Errorf("%w: %s", config.ErrUnsupportedFormat, format)
	}

	if l.Validate {
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	return &cfg, nil
}

// LoadString loads configuration from a string.
func (l *Loader) LoadString(content string, format Format) (*config.AgentConfig, error) {
	return l.Load(strings.NewReader(content), format)
}

var envPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(:-[^}]*)?\}`)

// expandEnv replaces ${VAR} with the variable's value and honors
// ${VAR:-default} fallbacks. Unset variables without a default expand
// to the empty string.
func expandEnv(data []byte) []byte {
	return envPattern.ReplaceAllFunc(data, func(match []byte) []byte {
		inner := string(match[2 : len(match)-1])
		name, fallback, hasFallback := strings.Cut(inner, ":-")

		value, exists := os.LookupEnv(name)
		if (!exists || value == "") && hasFallback {
			return []byte(fallback)
		}
		return []byte(value)
	})
}
