// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package session resolves the configuration and logger shared by CLI commands.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/dacolabs/dpds/internal/config"
	"github.com/dacolabs/dpds/internal/logging"
	"github.com/rs/zerolog"
)

var (
	// ErrConfigNotFound indicates an explicitly named config file does not exist.
	ErrConfigNotFound = errors.New("config file not found")

	// ErrInvalidConfig indicates the config file exists but is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// contextKey is used to store Context in context.Context.
type contextKey struct{}

// Options select where the session comes from. Empty fields fall back to
// the config file and then to built-in defaults.
type Options struct {
	// ConfigPath names the config file. When empty, config.FileName in the
	// working directory is used if it exists.
	ConfigPath string
	// LogLevel overrides the configured level.
	LogLevel string
	// LogOutput receives log lines; it is usually stderr.
	LogOutput io.Writer
}

// Context holds the resolved configuration and logger.
type Context struct {
	// Config is the effective configuration.
	Config *config.Config

	// ConfigPath is the file Config was loaded from, or empty for defaults.
	ConfigPath string

	// Logger is also attached to the context.Context for zerolog.Ctx.
	Logger zerolog.Logger
}

// Load resolves the session and returns a new context.Context carrying it
// and its logger.
func Load(ctx context.Context, opts Options) (context.Context, error) {
	cfg, path, err := loadConfig(opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	level := cfg.LogLevel
	if opts.LogLevel != "" {
		level = opts.LogLevel
	}
	out := opts.LogOutput
	if out == nil {
		out = os.Stderr
	}
	logger, err := logging.New(out, level)
	if err != nil {
		return nil, err
	}
	logger.Debug().Str("config", path).Str("level", level).Msg("session loaded")

	s := &Context{Config: cfg, ConfigPath: path, Logger: logger}
	ctx = logger.WithContext(ctx)
	return context.WithValue(ctx, contextKey{}, s), nil
}

func loadConfig(path string) (*config.Config, string, error) {
	explicit := path != ""
	if !explicit {
		path = config.FileName
	}

	cfg, err := config.Load(path)
	switch {
	case err == nil:
	case errors.Is(err, fs.ErrNotExist) && !explicit:
		return config.Default(), "", nil
	case errors.Is(err, fs.ErrNotExist):
		return nil, "", fmt.Errorf("%w: %s", ErrConfigNotFound, path)
	default:
		return nil, "", fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return cfg, path, nil
}

// From extracts the session Context from a context.Context.
// Returns nil if no Context is stored.
func From(ctx context.Context) *Context {
	if s, ok := ctx.Value(contextKey{}).(*Context); ok {
		return s
	}
	return nil
}
