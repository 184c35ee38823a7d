// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes oasmodels capabilities as MCP tools over stdio.
package mcpserver

import (
	"context"
	"regexp"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oasmodels"
)

const serverInstructions = `oasmodels MCP server: resolves OpenAPI schema compositions and maps schemas to Dart or Go data models.

Configuration: defaults are configurable via OASMODELS_* environment variables set in your MCP client config.

Key settings:
- OASMODELS_TARGET (default: dart): default output language (dart or go)
- OASMODELS_CLASS_NAME_PREFIX: default prefix of generated class names
- OASMODELS_CACHE_ENABLED (default: true): disable document caching entirely
- OASMODELS_CACHE_FILE_TTL (default: 15m): cache TTL for local files
- OASMODELS_CACHE_URL_TTL (default: 5m): cache TTL for URL-fetched documents
- OASMODELS_MAX_INLINE_SIZE (default: 10MiB): largest inline content accepted
- OASMODELS_MAX_CONTENT_FILES (default: 50): most file bodies generate_models returns inline
- OASMODELS_ALLOW_PRIVATE_IPS (default: false): allow fetching from private addresses

Workflow: use resolve_schema to inspect flattened schemas, map_types to preview the type of every field of one schema, and generate_models to render files.`

// Run starts the MCP server over stdio and blocks until the client disconnects
// or the context is cancelled.
func Run(ctx context.Context) error {
	if cfg.CacheEnabled {
		docCache.startSweeper(ctx, cfg.CacheSweepInterval)
	}

	server := mcp.NewServer(
		&mcp.Implementation{Name: "oasmodels", Version: oasmodels.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "resolve_schema",
		Description: "Resolve the component schemas of an OpenAPI document. allOf/oneOf/anyOf compositions are flattened into one property set (first declaration of a property wins). Returns every schema, or only the one named by schema, with its kind and properties. Warnings such as empty composition contributors are listed separately.",
	}, handleResolveSchema)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "map_types",
		Description: "Map the properties of one schema to target-language types (dart or go). Returns the generated class name and, for each field, the JSON key, field name, mapped type and nullability, plus synthesized enums. Type and nullability corrections are keyed by \"Class.property\" using the prefixed class name and the camelCase property name.",
	}, handleMapTypes)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "generate_models",
		Description: "Generate model source files for every object schema of an OpenAPI document. Set output_dir to write the files; set include_content to return file bodies inline (capped by OASMODELS_MAX_CONTENT_FILES). Returns a manifest of generated files, skipped schemas and warnings.",
	}, handleGenerateModels)
}

// makeSlice returns nil when n is 0 (preserving omitempty JSON semantics),
// otherwise returns make([]T, 0, n) for pre-allocated appending.
func makeSlice[T any](n int) []T {
	if n == 0 {
		return nil
	}
	return make([]T, 0, n)
}

// sanitizeError strips absolute filesystem paths from error messages
// to prevent leaking internal directory structure to MCP clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}
