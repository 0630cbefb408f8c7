package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// FilterFields are the entry fields a filter may match against
var FilterFields = []string{"title", "summary", "content", "author", "link", "id"}

// Loader handles loading and validation of the configuration file
type Loader struct {
	path string
}

// NewLoader creates a loader for the file at path. An empty path means no file.
func NewLoader(path string) *Loader {
	return &Loader{path: path}
}

// Load reads, normalizes and validates the configuration file. A missing file
// yields an empty configuration.
func (l *Loader) Load() (*Config, error) {
	if l.path == "" {
		return &Config{}, nil
	}

	data, err := os.ReadFile(l.path)
	if errors.Is(err, os.ErrNotExist) {
		slog.Debug("Configuration file not found, using defaults", "path", l.path)
		return &Config{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	config, err := l.parse(data)
	if err != nil {
		return nil, fmt.Errorf("error loading %s: %w", l.path, err)
	}

	if err := l.validate(config); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", l.path, err)
	}

	slog.Debug("Configuration loaded", "path", l.path, "ignored_namespaces", len(config.IgnoredNamespaces), "filters", len(config.Filters))

	return config, nil
}

func (l *Loader) parse(data []byte) (*Config, error) {
	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	l.setDefaults(&config)

	return &config, nil
}

// setDefaults trims values and drops empty namespace entries
func (l *Loader) setDefaults(config *Config) {
	namespaces := config.IgnoredNamespaces[:0]
	for _, ns := range config.IgnoredNamespaces {
		if ns = strings.TrimSpace(ns); ns != "" {
			namespaces = append(namespaces, ns)
		}
	}
	config.IgnoredNamespaces = namespaces

	for i := range config.Filters {
		config.Filters[i].Field = strings.ToLower(strings.TrimSpace(config.Filters[i].Field))
	}
}

func (l *Loader) validate(config *Config) error {
	validFields := make(map[string]bool, len(FilterFields))
	for _, field := range FilterFields {
		validFields[field] = true
	}

	for i, filter := range config.Filters {
		if !validFields[filter.Field] {
			return fmt.Errorf("invalid filter field at index %d: %s", i, filter.Field)
		}
		if len(filter.Includes) == 0 && len(filter.Excludes) == 0 {
			return fmt.Errorf("filter at index %d must have at least one include or exclude rule", i)
		}
	}

	return nil
}
