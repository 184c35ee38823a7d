package mcpserver

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oasmodels/internal/testutil"
)

// startTestSession creates an in-process MCP server/client pair and returns
// the connected client session. The server is shut down when the test ends.
func startTestSession(t *testing.T) *mcp.ClientSession {
	t.Helper()

	server := mcp.NewServer(
		&mcp.Implementation{Name: "oasmodels-test", Version: "test"},
		nil,
	)
	registerAllTools(server)

	serverTransport, clientTransport := mcp.NewInMemoryTransports()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	done := make(chan error, 1)
	go func() {
		done <- server.Run(ctx, serverTransport)
	}()

	client := mcp.NewClient(
		&mcp.Implementation{Name: "test-client", Version: "test"},
		nil,
	)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = session.Close()
		cancel()
		<-done
	})

	return session
}

func callTool(t *testing.T, session *mcp.ClientSession, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      name,
		Arguments: args,
	})
	require.NoError(t, err)
	require.NotNil(t, result)
	return result
}

func petstoreSpec() map[string]any {
	return map[string]any{"content": testutil.PetstoreYAML}
}

func TestIntegration_ListTools(t *testing.T) {
	session := startTestSession(t)

	result, err := session.ListTools(context.Background(), &mcp.ListToolsParams{})
	require.NoError(t, err)
	require.Len(t, result.Tools, 3)

	names := make([]string, 0, len(result.Tools))
	for _, tool := range result.Tools {
		names = append(names, tool.Name)
		assert.NotEmpty(t, tool.Description, "tool %q has empty description", tool.Name)
	}
	for _, name := range []string{"resolve_schema", "map_types", "generate_models"} {
		assert.True(t, slices.Contains(names, name), "missing tool: %s", name)
	}
}

func TestIntegration_ResolveSchema(t *testing.T) {
	session := startTestSession(t)

	result := callTool(t, session, "resolve_schema", map[string]any{
		"spec":   petstoreSpec(),
		"schema": "pet",
	})
	assert.False(t, result.IsError)

	structured := unmarshalStructured(t, result)
	assert.Equal(t, "3.0.3", structured["version"])
	assert.Equal(t, float64(1), structured["schema_count"])

	schemas := structured["schemas"].([]any)
	pet := schemas[0].(map[string]any)
	assert.Equal(t, "Pet", pet["name"])
	assert.Equal(t, "object", pet["kind"])

	var names []string
	for _, p := range pet["properties"].([]any) {
		names = append(names, p.(map[string]any)["name"].(string))
	}
	assert.Equal(t, []string{
		"id", "createdAt", "name", "status", "tags", "owner", "category", "attributes", "extra",
	}, names)
	first := pet["properties"].([]any)[0].(map[string]any)
	assert.Equal(t, "integer", first["type"], "the first declaration of id wins")
}

func TestIntegration_ResolveSchemaAll(t *testing.T) {
	session := startTestSession(t)

	result := callTool(t, session, "resolve_schema", map[string]any{"spec": petstoreSpec()})
	assert.False(t, result.IsError)

	structured := unmarshalStructured(t, result)
	assert.Equal(t, float64(8), structured["schema_count"])
}

func TestIntegration_ResolveSchemaUnknown(t *testing.T) {
	session := startTestSession(t)

	result := callTool(t, session, "resolve_schema", map[string]any{
		"spec":   petstoreSpec(),
		"schema": "Missing",
	})
	assert.True(t, result.IsError)
}

func TestIntegration_MapTypes(t *testing.T) {
	session := startTestSession(t)

	result := callTool(t, session, "map_types", map[string]any{
		"spec":   petstoreSpec(),
		"schema": "Pet",
		"settings": map[string]any{
			"target":            "dart",
			"class_name_prefix": "Api",
			"type_corrections":  map[string]any{"ApiPet.extra": "Object"},
		},
	})
	require.False(t, result.IsError)

	structured := unmarshalStructured(t, result)
	assert.Equal(t, "ApiPet", structured["class_name"])
	assert.Equal(t, "dart", structured["target"])

	types := map[string]string{}
	nullable := map[string]bool{}
	for _, f := range structured["fields"].([]any) {
		field := f.(map[string]any)
		types[field["name"].(string)] = field["type"].(string)
		nullable[field["name"].(string)] = field["nullable"].(bool)
	}
	assert.Equal(t, map[string]string{
		"id":         "int",
		"createdAt":  "DateTime",
		"name":       "String",
		"status":     "ApiPetStatus",
		"tags":       "Iterable<ApiTag>",
		"owner":      "ApiOwner",
		"category":   "ApiCategory",
		"attributes": "Map<String, dynamic>",
		"extra":      "Object",
	}, types)
	assert.True(t, nullable["owner"])
	assert.False(t, nullable["id"])

	enums := structured["enums"].([]any)
	require.Len(t, enums, 1)
	status := enums[0].(map[string]any)
	assert.Equal(t, "ApiPetStatus", status["name"])
	assert.Equal(t, []any{"available", "sold"}, status["values"])
}

func TestIntegration_MapTypesGo(t *testing.T) {
	session := startTestSession(t)

	result := callTool(t, session, "map_types", map[string]any{
		"spec":     petstoreSpec(),
		"schema":   "Owner",
		"settings": map[string]any{"target": "go"},
	})
	require.False(t, result.IsError)

	structured := unmarshalStructured(t, result)
	assert.Equal(t, "go", structured["target"])
	fields := structured["fields"].([]any)
	require.Len(t, fields, 2)
	links := fields[1].(map[string]any)
	assert.Equal(t, "_links", links["json_key"])
	assert.Equal(t, "links", links["name"])
	assert.Equal(t, "map[string]any", links["type"])
}

func TestIntegration_MapTypesErrors(t *testing.T) {
	tests := []struct {
		name string
		args map[string]any
	}{
		{"empty schema name", map[string]any{"spec": petstoreSpec(), "schema": ""}},
		{"unknown schema", map[string]any{"spec": petstoreSpec(), "schema": "Missing"}},
		{"primitive schema", map[string]any{"spec": petstoreSpec(), "schema": "Color"}},
		{"unknown target", map[string]any{
			"spec":     petstoreSpec(),
			"schema":   "Pet",
			"settings": map[string]any{"target": "rust"},
		}},
		{"bad correction key", map[string]any{
			"spec":     petstoreSpec(),
			"schema":   "Pet",
			"settings": map[string]any{"type_corrections": map[string]any{"nodot": "int"}},
		}},
		{"no spec", map[string]any{"spec": map[string]any{}, "schema": "Pet"}},
	}

	session := startTestSession(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := callTool(t, session, "map_types", tt.args)
			assert.True(t, result.IsError)
		})
	}
}

func TestIntegration_GenerateModels(t *testing.T) {
	session := startTestSession(t)
	dir := t.TempDir()

	result := callTool(t, session, "generate_models", map[string]any{
		"spec": petstoreSpec(),
		"settings": map[string]any{
			"target":            "dart",
			"class_name_prefix": "Api",
		},
		"paths": []any{
			map[string]any{"path": "/pets/{id}", "method": "GET", "status": "200", "name": "PetResponse"},
		},
		"output_dir":      dir,
		"include_content": true,
	})
	require.False(t, result.IsError)

	structured := unmarshalStructured(t, result)
	assert.Equal(t, "dart", structured["target"])
	assert.Equal(t, float64(7), structured["file_count"])
	assert.Equal(t, float64(1), structured["warning_count"])

	files := structured["files"].([]any)
	var names []string
	for _, f := range files {
		file := f.(map[string]any)
		names = append(names, file["name"].(string))
		assert.NotEmpty(t, file["content"])
	}
	assert.Equal(t, []string{
		"entity.dart", "named.dart", "pet.dart", "tag.dart", "category.dart", "owner.dart", "pet_response.dart",
	}, names)

	data, err := os.ReadFile(filepath.Join(dir, "tag.dart"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "class ApiTag {")
}

func TestIntegration_GenerateModelsContentCap(t *testing.T) {
	saved := cfg.MaxContentFiles
	cfg.MaxContentFiles = 2
	t.Cleanup(func() { cfg.MaxContentFiles = saved })

	session := startTestSession(t)
	result := callTool(t, session, "generate_models", map[string]any{
		"spec":            petstoreSpec(),
		"settings":        map[string]any{"target": "go", "package": "petstore"},
		"include_content": true,
	})
	require.False(t, result.IsError)

	structured := unmarshalStructured(t, result)
	files := structured["files"].([]any)
	require.Len(t, files, 6)
	assert.Contains(t, files[0].(map[string]any)["content"], "package petstore")
	assert.Nil(t, files[2].(map[string]any)["content"])
	assert.Equal(t, "pet.go", files[2].(map[string]any)["name"])
}

func TestIntegration_GenerateModelsErrors(t *testing.T) {
	tests := []struct {
		name string
		args map[string]any
	}{
		{"invalid path entry", map[string]any{
			"spec":  petstoreSpec(),
			"paths": []any{map[string]any{"path": "pets", "method": "get", "status": "200", "name": "X"}},
		}},
		{"bad go package", map[string]any{
			"spec":     petstoreSpec(),
			"settings": map[string]any{"target": "go", "package": "not-a-package"},
		}},
		{"dangling reference", map[string]any{
			"spec": map[string]any{"content": `openapi: 3.0.0
components:
  schemas:
    User:
      type: object
      properties:
        team: {$ref: '#/components/schemas/Team'}
`},
		}},
	}

	session := startTestSession(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := callTool(t, session, "generate_models", tt.args)
			assert.True(t, result.IsError)
		})
	}
}

// unmarshalStructured extracts the structured output of a tool result.
func unmarshalStructured(t *testing.T, result *mcp.CallToolResult) map[string]any {
	t.Helper()

	if result.StructuredContent != nil {
		data, err := json.Marshal(result.StructuredContent)
		require.NoError(t, err)
		var m map[string]any
		require.NoError(t, json.Unmarshal(data, &m))
		return m
	}

	require.NotEmpty(t, result.Content, "expected at least one content item")
	text, ok := result.Content[0].(*mcp.TextContent)
	require.True(t, ok, "expected TextContent, got %T", result.Content[0])

	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(text.Text), &m), "failed to parse text content as JSON")
	return m
}
