// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/dacolabs/dpds/internal/descriptor"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalDescriptor = `{
  "dataProductDescriptor": "1.0.0",
  "info": {
    "fullyQualifiedName": "urn:dpds:org.example:dataproducts:sample:1",
    "name": "sample",
    "version": "1.0.0",
    "domain": "org.example",
    "owner": {"id": "o1"}
  },
  "interfaceComponents": {"outputPorts": []}
}`

const portsDescriptor = `{
  "dataProductDescriptor": "1.0.0",
  "info": {
    "fullyQualifiedName": "urn:dpds:org.example:dataproducts:sample:1",
    "name": "sample",
    "version": "1.0.0",
    "domain": "org.example",
    "owner": {"id": "o1", "name": "Sales"},
    "description": "Sample product",
    "contactPoints": [{"name": "Support", "channel": "email", "address": "support@example.org"}]
  },
  "interfaceComponents": {
    "inputPorts": [{"name": "rawOrders", "version": "1.0.0"}],
    "outputPorts": [
      {"name": "ordersTable", "version": "1.0.0"},
      {"$ref": "#/components/outputPorts/ordersFeed"}
    ],
    "discoveryPorts": [{"name": "catalog", "version": "1.0.0"}]
  },
  "components": {
    "outputPorts": {"ordersFeed": {"name": "ordersFeed", "version": "1.0.0"}}
  }
}`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRoot_NoArgsPrintsHelp(t *testing.T) {
	out, err := execute(t)
	require.NoError(t, err)
	assert.Contains(t, out, "Usage:")
	assert.Contains(t, out, "verify")
	assert.Contains(t, out, "display")
}

func TestRoot_UsageErrors(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		errMsg string
	}{
		{"unknown command", []string{"bogus"}, `unknown command "bogus"`},
		{"missing path", []string{"verify"}, "accepts 1 arg(s)"},
		{"extra path", []string{"display", "a.json", "b.json"}, "accepts 1 arg(s)"},
		{"unknown flag", []string{"verify", "--nope", "a.json"}, "unknown flag"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.True(t, IsUsageError(err), "%v", err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestVerify(t *testing.T) {
	valid := writeFile(t, "dpds.json", minimalDescriptor)
	invalid := writeFile(t, "bad.json", `{"info": {}}`)
	malformed := writeFile(t, "broken.json", `{"info": `)

	tests := []struct {
		name    string
		args    []string
		wantErr error
		want    []string
	}{
		{"valid", []string{"verify", valid}, nil, []string{"Descriptor is valid", "sample 1.0.0"}},
		{"strict", []string{"verify", valid, "--strict"}, nil, []string{
			"Warnings:",
			"Missing data product description in info",
			"No contact points defined for the data product",
		}},
		{"invalid", []string{"verify", invalid}, ErrVerificationFailed, []string{
			"SchemaValidationError",
			"dataProductDescriptor: Required",
			"info.owner: Required",
		}},
		{"malformed", []string{"verify", malformed}, ErrVerificationFailed, []string{"ParseError", "Invalid JSON"}},
		{"missing", []string{"verify", filepath.Join(t.TempDir(), "nope.json")}, ErrVerificationFailed, []string{"FileNotFound", "File not found"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, tt.args...)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.False(t, IsUsageError(err))
			} else {
				require.NoError(t, err)
			}
			for _, s := range tt.want {
				assert.Contains(t, out, s)
			}
		})
	}
}

func TestVerify_NotStrictHasNoWarnings(t *testing.T) {
	out, err := execute(t, "verify", writeFile(t, "dpds.json", minimalDescriptor))
	require.NoError(t, err)
	assert.NotContains(t, out, "Warnings:")
}

func TestVerify_JSONOutput(t *testing.T) {
	path := writeFile(t, "dpds.json", minimalDescriptor)

	out, err := execute(t, "verify", path, "--strict", "--output", "json")
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"isValid": true,
		"errors": null,
		"warnings": [
			"Missing data product description in info",
			"No contact points defined for the data product"
		]
	}`, out)

	out, err = execute(t, "verify", writeFile(t, "bad.json", `[]`), "-o", "json")
	assert.ErrorIs(t, err, ErrVerificationFailed)
	var res struct {
		IsValid  bool     `json:"isValid"`
		Errors   []string `json:"errors"`
		Warnings []string `json:"warnings"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.False(t, res.IsValid)
	assert.NotEmpty(t, res.Errors)
	assert.Empty(t, res.Warnings)
}

func TestVerify_UnsupportedOutput(t *testing.T) {
	_, err := execute(t, "verify", writeFile(t, "dpds.json", minimalDescriptor), "-o", "xml")
	require.Error(t, err)
	assert.True(t, IsUsageError(err))
}

func TestVerify_ConfigDefaults(t *testing.T) {
	cfg := writeFile(t, ".dpds.yaml", "version: 1\nstrict: true\noutput: json\n")
	path := writeFile(t, "dpds.json", minimalDescriptor)

	out, err := execute(t, "--config", cfg, "verify", path)
	require.NoError(t, err)
	assert.Contains(t, out, `"warnings"`)
	assert.Contains(t, out, "No contact points defined for the data product")

	// Explicit flags win over the configuration.
	out, err = execute(t, "--config", cfg, "verify", path, "--strict=false", "-o", "text")
	require.NoError(t, err)
	assert.Contains(t, out, "Descriptor is valid")
	assert.NotContains(t, out, "Warnings:")
}

func TestVerify_MissingConfig(t *testing.T) {
	_, err := execute(t, "--config", filepath.Join(t.TempDir(), "none.yaml"), "verify", "x.json")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrVerificationFailed)
}

func TestDisplay(t *testing.T) {
	out, err := execute(t, "display", writeFile(t, "dpds.json", portsDescriptor))
	require.NoError(t, err)
	for _, s := range []string{
		"sample",
		"org.example",
		"Sales (o1)",
		"Sample product",
		"Support [email: support@example.org]",
		"Input ports:",
		"rawOrders",
		"Output ports:",
		"ordersTable",
		"ordersFeed <ref: #/components/outputPorts/ordersFeed>",
		"discovery: 1",
	} {
		assert.Contains(t, out, s)
	}
}

func TestDisplay_Minimal(t *testing.T) {
	out, err := execute(t, "display", writeFile(t, "dpds.json", minimalDescriptor))
	require.NoError(t, err)
	assert.Contains(t, out, "No output ports defined")
	assert.NotContains(t, out, "Contact points:")
	assert.NotContains(t, out, "Input ports:")
}

func TestDisplay_Invalid(t *testing.T) {
	out, err := execute(t, "display", writeFile(t, "bad.json", `{"info": {}}`))
	assert.ErrorIs(t, err, ErrVerificationFailed)
	assert.Contains(t, out, "dataProductDescriptor: Required")
}

const refUnionSchema = `{
  "type": "object",
  "properties": {
    "port": {
      "description": "dropped",
      "oneOf": [{"$ref": "#/$defs/reference"}, {"$ref": "#/$defs/port"}]
    }
  },
  "$defs": {
    "reference": {"type": "object"},
    "port": {"type": "object"}
  }
}`

func TestNormalize(t *testing.T) {
	out, err := execute(t, "normalize", writeFile(t, "schema.json", refUnionSchema))
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"type": "object",
		"properties": {"port": {"$ref": "#/$defs/port"}},
		"$defs": {"reference": {"type": "object"}, "port": {"type": "object"}}
	}`, out)
}

func TestNormalize_OutAndCheck(t *testing.T) {
	src := writeFile(t, "schema.yaml", `properties:
  port:
    oneOf:
      - $ref: '#/$defs/reference'
      - $ref: '#/$defs/port'
$defs:
  port:
    type: object
`)
	dst := filepath.Join(t.TempDir(), "build", "schema.json")

	out, err := execute(t, "normalize", src, "--out", dst, "--check")
	require.NoError(t, err)
	assert.Contains(t, out, "Schema normalized")

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"properties": {"port": {"$ref": "#/$defs/port"}},
		"$defs": {"port": {"type": "object"}}
	}`, string(data))
}

func TestNormalize_CheckFailure(t *testing.T) {
	src := writeFile(t, "schema.json", `{"properties": {"a": {"$ref": "#/$defs/missing"}}}`)
	out, err := execute(t, "normalize", src, "--check")
	assert.ErrorIs(t, err, ErrCheckFailed)
	assert.Contains(t, out, "unresolved reference #/$defs/missing")
}

func TestNormalize_MissingFile(t *testing.T) {
	_, err := execute(t, "normalize", filepath.Join(t.TempDir(), "none.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load schema")
}

func TestInit_NonInteractive(t *testing.T) {
	tests := []struct {
		name   string
		format string
		file   string
	}{
		{"yaml", "yaml", "dpds.yaml"},
		{"json", "json", "dpds.json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			out, err := execute(t, "init", "--non-interactive",
				"--name", "customerOrders", "--domain", "org.example.sales", "--owner", "sales-team",
				"--version", "2.1.0", "--port", "ordersTable", "--format", tt.format, "--dir", dir)
			require.NoError(t, err)
			assert.Contains(t, out, "Data product initialized")

			path := filepath.Join(dir, tt.file)
			f, err := os.Open(path)
			require.NoError(t, err)
			defer f.Close() //nolint:errcheck
			v, err := descriptor.ParserFor(path).Parse(f)
			require.NoError(t, err)
			d, err := descriptor.Decode(v)
			require.NoError(t, err)

			assert.Equal(t, "urn:dpds:org.example.sales:dataproducts:customerOrders:2", d.Info.FullyQualifiedName)
			assert.Equal(t, "sales-team", d.Info.Owner.ID)
			require.Len(t, d.InterfaceComponents.OutputPorts, 1)
			port := d.InterfaceComponents.OutputPorts[0].Value
			require.NotNil(t, port)
			assert.Equal(t, "ordersTable", port.Name)
			assert.Equal(t, "2.1.0", port.Version)
			assert.Equal(t, d.Info.FullyQualifiedName+":outputports:ordersTable", port.FullyQualifiedName)
			_, err = uuid.Parse(port.ID)
			assert.NoError(t, err)

			_, err = execute(t, "verify", path)
			assert.NoError(t, err)
		})
	}
}

func TestInit_Errors(t *testing.T) {
	base := []string{"init", "--non-interactive", "--name", "customerOrders", "--domain", "org.example", "--owner", "team"}

	tests := []struct {
		name   string
		args   []string
		errMsg string
	}{
		{"missing flags", []string{"init", "--non-interactive", "--name", "customerOrders"}, "required in non-interactive mode"},
		{"bad format", append(append([]string{}, base...), "--format", "toml"), "unsupported format"},
		{"bad version", append(append([]string{}, base...), "--version", "1.0"), "semantic versioning"},
		{"bad name", []string{"init", "--non-interactive", "--name", "Customer Orders", "--domain", "org.example", "--owner", "team"}, "info.name: name must be in camelCase format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append(append([]string{}, tt.args...), "--dir", t.TempDir())
			_, err := execute(t, args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestInit_RefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	args := []string{"init", "--non-interactive", "--name", "sample", "--domain", "org.example", "--owner", "o1", "--dir", dir}

	_, err := execute(t, args...)
	require.NoError(t, err)
	_, err = execute(t, args...)
	assert.ErrorIs(t, err, descriptor.ErrExists)
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "dpds version")

	out, err = execute(t, "version", "--short")
	require.NoError(t, err)
	assert.NotContains(t, out, "dpds version")
}
