// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package session

import (
	"errors"

	"github.com/spf13/cobra"
)

// Persistent flags read by PreRunLoad.
const (
	FlagConfig   = "config"
	FlagLogLevel = "log-level"
)

// FromCommand extracts the session Context from a cobra.Command's context.
// Returns nil if no Context is stored.
func FromCommand(cmd *cobra.Command) *Context {
	if cmd.Context() == nil {
		return nil
	}
	return From(cmd.Context())
}

// RequireFromCommand extracts the session Context from a cobra.Command's
// context, returning an error if not found.
func RequireFromCommand(cmd *cobra.Command) (*Context, error) {
	s := FromCommand(cmd)
	if s == nil {
		return nil, errors.New("session not loaded")
	}
	return s, nil
}

// PreRunLoad is a PersistentPreRunE that resolves the session from the
// --config and --log-level flags and stores it in the command's context.
// Logs go to the command's error stream.
func PreRunLoad(cmd *cobra.Command, _ []string) error {
	configPath, _ := cmd.Flags().GetString(FlagConfig)
	level, _ := cmd.Flags().GetString(FlagLogLevel)
	ctx, err := Load(cmd.Context(), Options{
		ConfigPath: configPath,
		LogLevel:   level,
		LogOutput:  cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}
	cmd.SetContext(ctx)
	return nil
}
