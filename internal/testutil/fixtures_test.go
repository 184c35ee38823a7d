package testutil

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oasmodels/parser"
)

// TestNewSimpleGraph verifies the single-schema fixture.
func TestNewSimpleGraph(t *testing.T) {
	g := NewSimpleGraph()

	user, ok := g.Get("User")
	require.True(t, ok, "User schema should exist")
	assert.Equal(t, parser.KindObject, user.Kind)
	assert.Equal(t, []string{"id", "email"}, user.Properties.Keys(), "properties keep insertion order")
}

// TestParseYAML verifies the petstore fixture parses into the expected graph.
func TestParseYAML(t *testing.T) {
	doc := ParseYAML(t, PetstoreYAML)

	assert.Equal(t, "Petstore", doc.Title)
	assert.Equal(t,
		[]string{"Entity", "Named", "Pet", "Tag", "Category", "Owner", "Color", "Empty"},
		doc.Graph.Names())

	pet, ok := doc.Graph.Get("Pet")
	require.True(t, ok)
	assert.Equal(t, parser.KindComposed, pet.Kind)

	_, ok = doc.ResponseSchema("/pets/{id}", "get", "200")
	assert.True(t, ok)
}

// TestWriteTempYAML verifies that WriteTempYAML writes valid YAML.
func TestWriteTempYAML(t *testing.T) {
	path := WriteTempYAML(t, map[string]any{"source": "api.yaml", "target": "dart"})

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal(data, &decoded))
	assert.Equal(t, "dart", decoded["target"])
}

// TestWriteTempJSON verifies that WriteTempJSON writes valid JSON.
func TestWriteTempJSON(t *testing.T) {
	path := WriteTempJSON(t, map[string]any{"source": "api.yaml"})

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "api.yaml", decoded["source"])
}
