// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package config loads the command-line settings: payload field names,
// projection rules, output and log formats.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const (
	// EnvConfigFile names the environment variable holding the config file path.
	EnvConfigFile = "X5C_JWT_CONFIG_FILE"
	// EnvOutputFormat overrides Output.Format.
	EnvOutputFormat = "X5C_JWT_OUTPUT_FORMAT"
	// EnvLogFormat overrides Log.Format.
	EnvLogFormat = "X5C_JWT_LOG_FORMAT"
)

// configFormat represents supported configuration file formats.
type configFormat int

const (
	// configFormatJSON represents JSON configuration format (.json)
	configFormatJSON configFormat = iota
	// configFormatYAML represents YAML configuration format (.yaml, .yml)
	configFormatYAML
)

// Config holds every setting of the command-line front-ends.
type Config struct {
	// Payload names the fields read from verified payloads.
	Payload struct {
		// CertsField: array of certificate records in the updates token
		CertsField string `json:"certsField" yaml:"certsField" validate:"required"`
		// KeyIDField: key identifier inside each certificate record
		KeyIDField string `json:"keyIdField" yaml:"keyIdField" validate:"required"`
		// ActiveKeyIDsField: array of active key identifiers in the key list token
		ActiveKeyIDsField string `json:"activeKeyIdsField" yaml:"activeKeyIdsField" validate:"required"`
		// RevokedField: array of revoked certificate identifiers
		RevokedField string `json:"revokedField" yaml:"revokedField" validate:"required"`
	} `json:"payload" yaml:"payload"`

	// Projection controls how certificate records are reshaped.
	Projection struct {
		// DropFields: fields removed from every emitted record
		DropFields []string `json:"dropFields" yaml:"dropFields" validate:"dive,required"`
	} `json:"projection" yaml:"projection"`

	// Output controls rendering of results.
	Output struct {
		// Format: "json" or "yaml"
		Format string `json:"format" yaml:"format" validate:"oneof=json yaml"`
		// Indent: spaces per nesting level
		Indent int `json:"indent" yaml:"indent" validate:"min=0,max=8"`
	} `json:"output" yaml:"output"`

	// Log controls diagnostics on stderr.
	Log struct {
		// Format: "text" or "json"
		Format string `json:"format" yaml:"format" validate:"oneof=text json"`
	} `json:"log" yaml:"log"`
}

// Default returns the built-in configuration.
func Default() *Config {
	config := &Config{}

	config.Payload.CertsField = "certs"
	config.Payload.KeyIDField = "keyId"
	config.Payload.ActiveKeyIDsField = "activeKeyIds"
	config.Payload.RevokedField = "revokedCerts"

	config.Projection.DropFields = []string{"keyId", "subjectPublicKeyInfo"}

	config.Output.Format = "json"
	config.Output.Indent = 2

	config.Log.Format = "text"

	return config
}

// Validate checks the configuration against its struct tags.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// detectConfigFormat determines the configuration file format based on file extension.
func detectConfigFormat(configPath string) configFormat {
	ext := strings.ToLower(filepath.Ext(configPath))
	switch ext {
	case ".yaml", ".yml":
		return configFormatYAML
	default:
		return configFormatJSON
	}
}

// unmarshalConfig unmarshals configuration data based on the specified format.
func unmarshalConfig(data []byte, config *Config, format configFormat) error {
	switch format {
	case configFormatYAML:
		if err := yaml.Unmarshal(data, config); err != nil {
			return fmt.Errorf("failed to parse YAML config file: %w", err)
		}
	default:
		if err := json.Unmarshal(data, config); err != nil {
			return fmt.Errorf("failed to parse JSON config file: %w", err)
		}
	}
	return nil
}

// Load loads the configuration from a JSON or YAML file or applies defaults.
//
// Parameters:
//   - configPath: Path to the configuration file (optional, can be empty)
//     Supported formats: .json, .yaml, .yml
//
// Returns:
//   - *Config: Loaded configuration with defaults applied
//   - error: Error if the file cannot be read, parsed, or fails validation
//
// Configuration Priority:
//  1. Default values are set
//  2. X5C_JWT_CONFIG_FILE environment variable is checked if configPath is empty
//  3. Config file values override defaults (if a path is given)
//  4. Environment variables override config file values
func Load(configPath string) (*Config, error) {
	config := Default()

	if configPath == "" {
		configPath = os.Getenv(EnvConfigFile)
	}

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := unmarshalConfig(data, config, detectConfigFormat(configPath)); err != nil {
			return nil, err
		}
	}

	if v := os.Getenv(EnvOutputFormat); v != "" {
		config.Output.Format = strings.ToLower(v)
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		config.Log.Format = strings.ToLower(v)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}
