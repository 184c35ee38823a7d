package commands

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oasmodels/internal/testutil"
)

func TestHandleResolveJSON(t *testing.T) {
	path := testutil.WriteTempFile(t, "petstore.yaml", []byte(testutil.PetstoreYAML))

	stdout := captureStdout(t, func() {
		require.NoError(t, HandleResolve([]string{"-schema", "pet", "-format", "json", path}))
	})

	var out ResolveOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))
	assert.Equal(t, "3.0.3", out.Version)
	require.Len(t, out.Schemas, 1)

	pet := out.Schemas[0]
	assert.Equal(t, "Pet", pet.Name)
	assert.Equal(t, "object", pet.Kind)
	require.Len(t, pet.Properties, 9)
	assert.Equal(t, ResolvedProperty{Name: "id", Type: "integer"}, pet.Properties[0])
	assert.Equal(t, "Tag", pet.Properties[4].Items)
}

func TestHandleResolveYAML(t *testing.T) {
	path := testutil.WriteTempFile(t, "petstore.yaml", []byte(testutil.PetstoreYAML))

	stdout := captureStdout(t, func() {
		require.NoError(t, HandleResolve([]string{"-format", "yaml", path}))
	})

	var out ResolveOutput
	require.NoError(t, yaml.Unmarshal([]byte(stdout), &out))
	names := make([]string, 0, len(out.Schemas))
	for _, s := range out.Schemas {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{"Entity", "Named", "Pet", "Tag", "Category", "Owner", "Color", "Empty"}, names)
}

func TestHandleResolveText(t *testing.T) {
	path := testutil.WriteTempFile(t, "petstore.yaml", []byte(testutil.PetstoreYAML))

	stdout := captureStdout(t, func() {
		require.NoError(t, HandleResolve([]string{path}))
	})
	assert.Contains(t, stdout, "OpenAPI 3.0.3: 8 schema(s)")
	assert.Contains(t, stdout, "Color (primitive, string)")
	assert.Contains(t, stdout, "array of Tag")
	assert.Contains(t, stdout, "[available, sold]")
}

func TestHandleResolveErrors(t *testing.T) {
	path := testutil.WriteTempFile(t, "petstore.yaml", []byte(testutil.PetstoreYAML))

	tests := []struct {
		name string
		args []string
	}{
		{"no arguments", nil},
		{"bad format", []string{"-format", "xml", path}},
		{"unknown schema", []string{"-schema", "Missing", path}},
		{"missing file", []string{path + ".missing"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			captureStdout(t, func() {
				assert.Error(t, HandleResolve(tt.args))
			})
		})
	}
}

func TestDescribeProperty(t *testing.T) {
	tests := []struct {
		prop     ResolvedProperty
		expected string
	}{
		{ResolvedProperty{Type: "string", Format: "date-time"}, "string (date-time)"},
		{ResolvedProperty{Reference: "Owner", Nullable: true}, "-> Owner nullable"},
		{ResolvedProperty{Type: "array", Items: "Tag"}, "array of Tag"},
		{ResolvedProperty{}, "any"},
		{ResolvedProperty{Type: "integer", Optional: true}, "integer optional"},
	}
	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, describeProperty(tt.prop))
		})
	}
}
