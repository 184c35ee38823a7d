package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oasmodels/internal/issues"
	"github.com/erraggy/oasmodels/parser"
	"github.com/erraggy/oasmodels/resolver"
)

type resolveInput struct {
	Spec           specInput `json:"spec"                      jsonschema:"The OpenAPI document to resolve"`
	Schema         string    `json:"schema,omitempty"          jsonschema:"Resolve only this schema (case-insensitive)"`
	DeriveOptional bool      `json:"derive_optional,omitempty" jsonschema:"Mark properties missing from a schema's required list as optional"`
}

type propertySummary struct {
	Name      string   `json:"name"`
	Type      string   `json:"type,omitempty"`
	Format    string   `json:"format,omitempty"`
	Reference string   `json:"reference,omitempty"`
	Items     string   `json:"items,omitempty"`
	Nullable  bool     `json:"nullable,omitempty"`
	Optional  bool     `json:"optional,omitempty"`
	Enum      []string `json:"enum,omitempty"`
}

type schemaSummary struct {
	Name       string            `json:"name"`
	Kind       string            `json:"kind"`
	Type       string            `json:"type,omitempty"`
	Properties []propertySummary `json:"properties,omitempty"`
}

type resolveOutput struct {
	Version     string          `json:"version,omitempty"`
	SchemaCount int             `json:"schema_count"`
	Schemas     []schemaSummary `json:"schemas,omitempty"`
	Warnings    []string        `json:"warnings,omitempty"`
}

func handleResolveSchema(ctx context.Context, _ *mcp.CallToolRequest, input resolveInput) (*mcp.CallToolResult, resolveOutput, error) {
	doc, err := input.Spec.load(ctx, input.DeriveOptional)
	if err != nil {
		return errResult(err), resolveOutput{}, nil
	}

	collector := issues.NewCollector(nil)
	r := resolver.New(doc.Graph, collector)

	var schemas []*parser.Schema
	if input.Schema != "" {
		s, err := r.Flatten(input.Schema)
		if err != nil {
			return errResult(err), resolveOutput{}, nil
		}
		schemas = append(schemas, s)
	} else {
		flat, err := r.Graph()
		if err != nil {
			return errResult(err), resolveOutput{}, nil
		}
		for _, s := range flat.All() {
			schemas = append(schemas, s)
		}
	}

	output := resolveOutput{
		Version:     doc.Version,
		SchemaCount: len(schemas),
		Schemas:     make([]schemaSummary, 0, len(schemas)),
		Warnings:    issueStrings(collector.Issues()),
	}
	for _, s := range schemas {
		output.Schemas = append(output.Schemas, summarizeSchema(s))
	}
	return nil, output, nil
}

func summarizeSchema(s *parser.Schema) schemaSummary {
	summary := schemaSummary{
		Name:       s.Name,
		Kind:       s.Kind.String(),
		Type:       s.Type,
		Properties: makeSlice[propertySummary](s.Properties.Len()),
	}
	for name, p := range s.Properties.All() {
		ps := propertySummary{
			Name:      name,
			Type:      p.Type,
			Format:    p.Format,
			Reference: p.Reference,
			Nullable:  p.Nullable,
			Optional:  p.Optional,
			Enum:      p.Enum,
		}
		if p.Items != nil {
			ps.Items = p.Items.Type
			if p.Items.Reference != "" {
				ps.Items = p.Items.Reference
			}
		}
		summary.Properties = append(summary.Properties, ps)
	}
	return summary
}
