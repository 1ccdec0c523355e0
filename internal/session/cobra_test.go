// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package session

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCmd(run func(cmd *cobra.Command)) *cobra.Command {
	root := &cobra.Command{Use: "root", SilenceErrors: true, SilenceUsage: true}
	root.PersistentFlags().String(FlagConfig, "", "")
	root.PersistentFlags().String(FlagLogLevel, "", "")
	child := &cobra.Command{
		Use:               "child",
		PersistentPreRunE: PreRunLoad,
		Run:               func(cmd *cobra.Command, _ []string) { run(cmd) },
	}
	root.AddCommand(child)
	root.SetErr(&bytes.Buffer{})
	return root
}

func TestPreRunLoad(t *testing.T) {
	t.Chdir(t.TempDir())

	var got *Context
	root := newTestCmd(func(cmd *cobra.Command) {
		s, err := RequireFromCommand(cmd)
		require.NoError(t, err)
		got = s
	})
	root.SetArgs([]string{"child", "--log-level", "error"})
	require.NoError(t, root.ExecuteContext(context.Background()))

	require.NotNil(t, got)
	assert.Equal(t, zerolog.ErrorLevel, got.Logger.GetLevel())
}

func TestPreRunLoad_MissingConfig(t *testing.T) {
	root := newTestCmd(func(*cobra.Command) { t.Fatal("must not run") })
	root.SetArgs([]string{"child", "--config", filepath.Join(t.TempDir(), "nope.yaml")})
	err := root.ExecuteContext(context.Background())
	assert.ErrorIs(t, err, ErrConfigNotFound)
}

func TestRequireFromCommand_NotLoaded(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())
	_, err := RequireFromCommand(cmd)
	assert.Error(t, err)
	assert.Nil(t, FromCommand(&cobra.Command{}))
}
