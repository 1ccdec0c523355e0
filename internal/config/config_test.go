// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_LoadAndSave(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), FileName)

	cfg := Config{
		Version:  1,
		Strict:   true,
		LogLevel: "debug",
		Output:   OutputJSON,
	}
	require.NoError(t, cfg.Save(cfgPath))

	loaded, err := Load(cfgPath)
	require.NoError(t, err)
	assert.Equal(t, &cfg, loaded)
}

func TestLoad_AppliesDefaults(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(cfgPath, []byte("version: 1\nstrict: true\n"), 0o600))

	cfg, err := Load(cfgPath)
	require.NoError(t, err)
	assert.True(t, cfg.Strict)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, OutputText, cfg.Output)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	unknown := filepath.Join(dir, "unknown.yaml")
	require.NoError(t, os.WriteFile(unknown, []byte("version: 1\npath: products\n"), 0o600))
	_, err = Load(unknown)
	assert.Error(t, err, "unknown keys are rejected")

	missingVersion := filepath.Join(dir, "noversion.yaml")
	require.NoError(t, os.WriteFile(missingVersion, []byte("strict: true\n"), 0o600))
	cfg, err := Load(missingVersion)
	require.NoError(t, err)
	assert.Error(t, cfg.Validate())
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{
			name: "default config",
			cfg:  *Default(),
		},
		{
			name:    "unsupported version",
			cfg:     Config{Version: 99, LogLevel: "warn", Output: OutputText},
			wantErr: "unsupported config version",
		},
		{
			name:    "bad log level",
			cfg:     Config{Version: 1, LogLevel: "loud", Output: OutputText},
			wantErr: "logLevel must be one of",
		},
		{
			name:    "bad output",
			cfg:     Config{Version: 1, LogLevel: "warn", Output: "xml"},
			wantErr: `output must be "text" or "json"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}
