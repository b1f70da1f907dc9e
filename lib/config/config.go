// Copyright 2026 The Lumen Authors
// SPDX-License-Identifier: Apache-2.0

// Package config loads the lumen user configuration file.
//
// The file is JSONC: JSON extended with // line comments, /* block
// comments */, and trailing commas. It is loaded from the --config
// flag or the default location under the user config directory.
// There is no search path beyond that; a missing default file yields
// the zero configuration.
package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"reflect"

	"github.com/tidwall/jsonc"
)

// DefaultFileName is the config file name under the user config
// directory (for example ~/.config/lumen/config.jsonc).
const DefaultFileName = "config.jsonc"

// Config is the lumen user configuration. All fields are optional;
// zero values fall back to built-in defaults applied by the caller.
type Config struct {
	// GalleryDir is the default image directory opened when the
	// --dir flag is absent.
	GalleryDir string `json:"gallery_dir"`

	// Manifest overrides the manifest path within the gallery
	// directory.
	Manifest string `json:"manifest"`

	// CacheDir is the frame cache directory. Empty disables the
	// disk tier.
	CacheDir string `json:"cache_dir"`

	// CacheMaxEntries bounds the in-memory frame cache.
	CacheMaxEntries int `json:"cache_max_entries"`

	// CacheCompression names the disk tier compression: "none",
	// "lz4", or "zstd".
	CacheCompression string `json:"cache_compression"`

	// RestoreFilter restores the last filter state on startup.
	RestoreFilter bool `json:"restore_filter"`

	// Theme selects a named theme. Only "default" is currently
	// defined.
	Theme string `json:"theme"`

	// LogLevel sets the slog level: "debug", "info", "warn",
	// "error".
	LogLevel string `json:"log_level"`
}

// Parse strips JSONC comments and trailing commas from data, then
// unmarshals the result. Unknown keys are rejected so a typo in the
// config file surfaces instead of being silently ignored.
func Parse(data []byte) (*Config, error) {
	stripped := jsonc.ToJSON(data)

	decoder := json.NewDecoder(bytes.NewReader(stripped))
	decoder.DisallowUnknownFields()

	var configuration Config
	if err := decoder.Decode(&configuration); err != nil {
		return nil, fmt.Errorf("parsing configuration: %w", err)
	}
	return &configuration, nil
}

// ReadFile reads and parses a JSONC configuration file.
func ReadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	configuration, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return configuration, nil
}

// Load resolves and loads the configuration. An explicit path must
// exist; the default path may be absent, in which case the zero
// configuration is returned.
func Load(explicitPath string) (*Config, error) {
	if explicitPath != "" {
		return ReadFile(explicitPath)
	}

	defaultPath, err := DefaultPath()
	if err != nil {
		return &Config{}, nil
	}
	if _, err := os.Stat(defaultPath); err != nil {
		return &Config{}, nil
	}
	return ReadFile(defaultPath)
}

// DefaultPath returns the default configuration file location.
func DefaultPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "lumen", DefaultFileName), nil
}

// Keys returns every configuration key name, derived from the json
// struct tags. The documentation checker compares this registry
// against the keys documented in docs/configuration.md.
func Keys() []string {
	configType := reflect.TypeOf(Config{})
	keys := make([]string, 0, configType.NumField())
	for index := 0; index < configType.NumField(); index++ {
		if tag := configType.Field(index).Tag.Get("json"); tag != "" {
			keys = append(keys, tag)
		}
	}
	return keys
}
