// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package descriptor

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dacolabs/dpds/internal/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseFile(t *testing.T, name string) any {
	t.Helper()
	f, err := os.Open(filepath.Join("testdata", name))
	require.NoError(t, err)
	defer f.Close() //nolint:errcheck
	v, err := ParserFor(name).Parse(f)
	require.NoError(t, err)
	return v
}

func issueStrings(t *testing.T, err error) []string {
	t.Helper()
	iss, ok := schema.AsIssues(err)
	require.True(t, ok, "expected schema.Issues, got %T: %v", err, err)
	return iss.Strings()
}

func TestModel_Builds(t *testing.T) {
	m := Model()
	require.NotNil(t, m)
	for _, name := range []string{NodeDescriptor, NodeInfo, NodePort, NodeStandardDefinition, NodeReference} {
		_, ok := m.Lookup(name)
		assert.True(t, ok, "node %q", name)
	}
	assert.Same(t, m, Model(), "model is built once")
}

func TestDecode_Minimal(t *testing.T) {
	tests := []struct {
		name string
		file string
	}{
		{"JSON", "minimal.json"},
		{"YAML", "minimal.yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Decode(parseFile(t, tt.file))
			require.NoError(t, err)

			assert.Equal(t, "1.0.0", d.DataProductDescriptor)
			assert.Equal(t, "urn:dpds:org.example:dataproducts:sample:1", d.Info.FullyQualifiedName)
			assert.Equal(t, "sample", d.Info.Name)
			assert.Equal(t, "org.example", d.Info.Domain)
			assert.Equal(t, "o1", d.Info.Owner.ID)
			assert.NotNil(t, d.InterfaceComponents.OutputPorts)
			assert.Empty(t, d.InterfaceComponents.OutputPorts)
			assert.Nil(t, d.InterfaceComponents.InputPorts)
			assert.Nil(t, d.InternalComponents)
			assert.Nil(t, d.Components)
			assert.Empty(t, d.Extensions)
		})
	}
}

func TestDecode_Full(t *testing.T) {
	d, err := Decode(parseFile(t, "full.json"))
	require.NoError(t, err)

	v, ok := d.Extensions.Get("x-origin")
	require.True(t, ok)
	assert.Equal(t, "catalog", v)

	require.Len(t, d.Info.ContactPoints, 1)
	assert.Equal(t, "email", d.Info.ContactPoints[0].Channel)

	out := d.InterfaceComponents.OutputPorts
	require.Len(t, out, 2)

	require.False(t, out[0].IsRef())
	port := out[0].Value
	assert.Equal(t, "ordersTable", port.Name)
	assert.Equal(t, []string{"curated", "daily"}, port.Tags)
	require.NotNil(t, port.Promises)
	require.False(t, port.Promises.IsRef())
	promises := port.Promises.Value
	require.NotNil(t, promises.API)
	assert.Equal(t, "datastoreapi", promises.API.Value.Specification)
	assert.False(t, promises.API.Value.Definition.IsText())
	require.NotNil(t, promises.SLO)
	assert.True(t, promises.SLO.IsRef())
	assert.Equal(t, "#/components/definitions/slo", promises.SLO.Reference.Ref)
	q, ok := promises.Extensions.Get("x-quality")
	require.True(t, ok)
	assert.Equal(t, "gold", q)
	assert.Nil(t, promises.Platform)

	require.NotNil(t, port.Expectations)
	aud := port.Expectations.Value.Audience
	require.NotNil(t, aud)
	assert.True(t, aud.Value.Definition.IsText())
	assert.Equal(t, "Business analysts in the sales domain.", aud.Value.Definition.Text)

	require.True(t, out[1].IsRef())
	resolved, ok := d.ResolvePort(*out[1].Reference)
	require.True(t, ok)
	assert.Equal(t, "ordersFeed", resolved.Name)

	require.NotNil(t, d.InternalComponents)
	tasks := d.InternalComponents.LifecycleInfo["prod"]
	require.Len(t, tasks, 1)
	require.NotNil(t, tasks[0].Order)
	assert.InDelta(t, 1.0, *tasks[0].Order, 0)
	assert.Equal(t, "https://ci.example.org/pipelines/orders", tasks[0].Service.Href)
	require.NotNil(t, tasks[0].Configurations)
	assert.False(t, tasks[0].Configurations.IsRef())

	require.Len(t, d.InternalComponents.InfrastructuralComponents, 1)
	assert.True(t, d.InternalComponents.InfrastructuralComponents[0].IsRef())
	assert.Equal(t, "storage", d.Components.InfrastructuralComponents["warehouse"].InfrastructureType)

	assert.Len(t, d.InterfaceComponents.Ports(InputPort), 1)
	assert.Len(t, d.InterfaceComponents.Ports(DiscoveryPort), 1)
	assert.Empty(t, d.InterfaceComponents.Ports(ControlPort))
}

func TestDecode_Invalid(t *testing.T) {
	_, err := Decode(parseFile(t, "invalid.json"))
	require.Error(t, err)
	assert.Equal(t, []string{
		"dataProductDescriptor: dataProductDescriptor must follow semantic versioning format",
		"info.fullyQualifiedName: fullyQualifiedName must be a valid fully qualified name (urn:dpds:<namespace>:dataproducts:<name>:<major-version>)",
		"info.name: name must be in camelCase format",
		"info.version: version must follow semantic versioning format",
		"info.owner.id: Required",
		"interfaceComponents.outputPorts.0.version: Required",
	}, issueStrings(t, err))
}

func TestValidate_RequiredTopLevelFields(t *testing.T) {
	tests := []struct {
		name   string
		remove func(map[string]any)
		want   string
	}{
		{"dataProductDescriptor", func(m map[string]any) { delete(m, "dataProductDescriptor") }, "dataProductDescriptor: Required"},
		{"info", func(m map[string]any) { delete(m, "info") }, "info: Required"},
		{"interfaceComponents", func(m map[string]any) { delete(m, "interfaceComponents") }, "interfaceComponents: Required"},
		{"outputPorts", func(m map[string]any) {
			delete(m["interfaceComponents"].(map[string]any), "outputPorts")
		}, "interfaceComponents.outputPorts: Required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := parseFile(t, "minimal.json").(map[string]any)
			tt.remove(v)
			_, err := Validate(v)
			require.Error(t, err)
			assert.Equal(t, []string{tt.want}, issueStrings(t, err))
		})
	}
}

func TestValidate_ReferenceArmIsExclusive(t *testing.T) {
	v := parseFile(t, "minimal.json").(map[string]any)
	v["interfaceComponents"] = map[string]any{
		"outputPorts": []any{
			// A complete inline port that also carries an invalid $ref is
			// judged as a reference only.
			map[string]any{"$ref": "not a ref", "name": "orders", "version": "1.0.0"},
			// Without $ref only the port arm is reported.
			map[string]any{"description": "no name"},
		},
	}
	_, err := Validate(v)
	require.Error(t, err)
	assert.Equal(t, []string{
		"interfaceComponents.outputPorts.0.$ref: $ref must be a valid URI reference",
		"interfaceComponents.outputPorts.1.name: Required",
		"interfaceComponents.outputPorts.1.version: Required",
	}, issueStrings(t, err))
}

// The fully qualified name format allows a port suffix on any entity and
// does not check that the suffix matches the port's collection.
func TestValidate_FullyQualifiedNamePortSuffixIsNotCrossChecked(t *testing.T) {
	v := parseFile(t, "minimal.json").(map[string]any)
	info := v["info"].(map[string]any)
	info["fullyQualifiedName"] = "urn:dpds:org.example:dataproducts:sample:1:outputports:orders"
	v["interfaceComponents"] = map[string]any{
		"outputPorts": []any{map[string]any{
			"name":               "orders",
			"version":            "1.0.0",
			"fullyQualifiedName": "urn:dpds:org.example:dataproducts:sample:1:inputports:orders",
		}},
	}
	_, err := Validate(v)
	assert.NoError(t, err)
}

func TestValue_RoundTrip(t *testing.T) {
	for _, file := range []string{"minimal.json", "full.json"} {
		t.Run(file, func(t *testing.T) {
			src, err := os.ReadFile(filepath.Join("testdata", file))
			require.NoError(t, err)

			d, err := Decode(parseFile(t, file))
			require.NoError(t, err)

			var buf bytes.Buffer
			require.NoError(t, JSONWriter.Encode(&buf, d.Value()))
			assert.JSONEq(t, string(src), buf.String())

			again, err := Decode(d.Value())
			require.NoError(t, err)
			assert.Equal(t, d.Info, again.Info)
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name   string
		parser Parser
		input  string
		errMsg string
	}{
		{"JSON trailing data", JSON, `{"a": 1} {"b": 2}`, "unexpected data after top-level value"},
		{"JSON empty", JSON, ``, ""},
		{"JSON malformed", JSON, `{"a": `, ""},
		{"YAML empty", YAML, ``, "empty document"},
		{"YAML complex key", YAML, "? [a, b]\n: 1\n", "mapping key must be a scalar"},
		{"YAML malformed", YAML, "a: [1, 2\n", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.parser.Parse(strings.NewReader(tt.input))
			require.Error(t, err)
			if tt.errMsg != "" {
				assert.Contains(t, err.Error(), tt.errMsg)
			}
		})
	}

	_, err := JSON.Parse(nil)
	assert.ErrorIs(t, err, ErrNilReader)
}

func TestParse_YAMLScalars(t *testing.T) {
	v, err := YAML.Parse(strings.NewReader("n: 3\nf: 1.5\nb: true\nz: null\nd: 2024-01-02\ns: '7'\n"))
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"n": int64(3),
		"f": 1.5,
		"b": true,
		"z": nil,
		"d": "2024-01-02",
		"s": "7",
	}, v)
}

func TestParserFor(t *testing.T) {
	assert.Equal(t, "YAML", ParserFor("a/dpds.yaml").String())
	assert.Equal(t, "YAML", ParserFor("DPDS.YML").String())
	assert.Equal(t, "JSON", ParserFor("dpds.json").String())
	assert.Equal(t, "JSON", ParserFor("dpds").String())
	assert.Equal(t, ".yaml", WriterFor("x.yml").Extension())
	assert.Equal(t, ".json", WriterFor("x.txt").Extension())
}

func TestWriter_Write(t *testing.T) {
	tests := []struct {
		name   string
		writer Writer
		parser Parser
	}{
		{"JSON", JSONWriter, JSON},
		{"YAML", YAMLWriter, YAML},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Decode(parseFile(t, "minimal.json"))
			require.NoError(t, err)

			dir := t.TempDir()
			path, err := tt.writer.Write(d, dir)
			require.NoError(t, err)
			assert.Equal(t, filepath.Join(dir, "dpds"+tt.writer.Extension()), path)

			f, err := os.Open(path)
			require.NoError(t, err)
			defer f.Close() //nolint:errcheck
			v, err := tt.parser.Parse(f)
			require.NoError(t, err)
			back, err := Decode(v)
			require.NoError(t, err)
			assert.Equal(t, d.Info, back.Info)

			_, err = tt.writer.Write(d, dir)
			assert.ErrorIs(t, err, ErrExists)
		})
	}

	_, err := JSONWriter.Write(nil, t.TempDir())
	assert.Error(t, err)
}
