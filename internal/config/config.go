// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package config handles the optional .dpds.yaml tool configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// CurrentConfigVersion is the current version of the config file format.
const CurrentConfigVersion = 1

// FileName is the default configuration file, looked up in the working directory.
const FileName = ".dpds.yaml"

// Output formats accepted by verify.
const (
	OutputText = "text"
	OutputJSON = "json"
)

// LogLevels lists the accepted logLevel values.
var LogLevels = []string{"debug", "info", "warn", "error", "disabled"}

// Config represents the .dpds.yaml configuration file.
type Config struct {
	Version  int    `yaml:"version"`
	Strict   bool   `yaml:"strict,omitempty"`
	LogLevel string `yaml:"logLevel,omitempty"`
	Output   string `yaml:"output,omitempty"`
}

// Default returns the built-in configuration used when no file exists.
func Default() *Config {
	return &Config{
		Version:  CurrentConfigVersion,
		LogLevel: "warn",
		Output:   OutputText,
	}
}

// Load reads a Config from a file path. Unset fields take their defaults.
func Load(path string) (*Config, error) {
	f, err := os.Open(path) //nolint:gosec // path is provided by caller
	if err != nil {
		return nil, err
	}
	defer f.Close() //nolint:errcheck

	cfg := Default()
	cfg.Version = 0
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the Config to a file path.
func (c *Config) Save(path string) error {
	f, err := os.Create(path) //nolint:gosec // path is provided by caller
	if err != nil {
		return err
	}
	defer f.Close() //nolint:errcheck

	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	return enc.Encode(c)
}

// Validate checks the configuration for required fields and valid values.
func (c *Config) Validate() error {
	var errs []error
	if c.Version != CurrentConfigVersion {
		errs = append(errs, errors.New("unsupported config version"))
	}
	if !validLevel(c.LogLevel) {
		errs = append(errs, fmt.Errorf("logLevel must be one of %s", strings.Join(LogLevels, ", ")))
	}
	if c.Output != OutputText && c.Output != OutputJSON {
		errs = append(errs, fmt.Errorf("output must be %q or %q", OutputText, OutputJSON))
	}
	return errors.Join(errs...)
}

func validLevel(level string) bool {
	for _, l := range LogLevels {
		if l == level {
			return true
		}
	}
	return false
}
