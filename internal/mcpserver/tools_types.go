package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oasmodels/internal/issues"
	"github.com/erraggy/oasmodels/internal/naming"
	"github.com/erraggy/oasmodels/parser"
	"github.com/erraggy/oasmodels/resolver"
	"github.com/erraggy/oasmodels/typemap"
)

type mapTypesInput struct {
	Spec     specInput     `json:"spec"               jsonschema:"The OpenAPI document holding the schema"`
	Schema   string        `json:"schema"             jsonschema:"Name of the schema to map (case-insensitive)"`
	Settings settingsInput `json:"settings,omitempty" jsonschema:"Job settings applied while mapping"`
}

type fieldSummary struct {
	JSONKey  string `json:"json_key"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	Nullable bool   `json:"nullable"`
}

type enumSummary struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

type mapTypesOutput struct {
	Schema    string         `json:"schema"`
	ClassName string         `json:"class_name"`
	Target    string         `json:"target"`
	Fields    []fieldSummary `json:"fields,omitempty"`
	Enums     []enumSummary  `json:"enums,omitempty"`
	Warnings  []string       `json:"warnings,omitempty"`
}

func handleMapTypes(ctx context.Context, _ *mcp.CallToolRequest, input mapTypesInput) (*mcp.CallToolResult, mapTypesOutput, error) {
	if input.Schema == "" {
		return errResult(fmt.Errorf("schema is required")), mapTypesOutput{}, nil
	}
	job, err := input.Settings.job("map_types")
	if err != nil {
		return errResult(err), mapTypesOutput{}, nil
	}
	target, err := typemap.TargetFor(job.Target)
	if err != nil {
		return errResult(err), mapTypesOutput{}, nil
	}
	doc, err := input.Spec.load(ctx, job.DeriveOptionalFromRequired)
	if err != nil {
		return errResult(err), mapTypesOutput{}, nil
	}

	collector := issues.NewCollector(nil)
	flat, err := resolver.Resolve(doc.Graph, collector)
	if err != nil {
		return errResult(err), mapTypesOutput{}, nil
	}
	s, ok := flat.Lookup(input.Schema)
	if !ok {
		return errResult(fmt.Errorf("schema %q not found", input.Schema)), mapTypesOutput{}, nil
	}
	if s.Kind != parser.KindObject {
		return errResult(fmt.Errorf("schema %q is a %s schema, not an object", s.Name, s.Kind)), mapTypesOutput{}, nil
	}

	m := typemap.NewMapper(flat, job, target)
	className := m.ClassName(s.Name)
	output := mapTypesOutput{
		Schema:    s.Name,
		ClassName: className,
		Target:    string(target.Name()),
		Fields:    make([]fieldSummary, 0, s.Properties.Len()),
	}
	for key, prop := range s.Properties.All() {
		name := naming.ApplyNaming(key, naming.Field)
		typ, err := m.MapType(prop, name, className)
		if err != nil {
			return errResult(err), mapTypesOutput{}, nil
		}
		output.Fields = append(output.Fields, fieldSummary{
			JSONKey:  key,
			Name:     name,
			Type:     typ,
			Nullable: m.IsNullable(prop, className, name),
		})
		if decl, ok := m.Enum(prop, name, className); ok {
			output.Enums = append(output.Enums, enumSummary{Name: decl.Name, Values: decl.Values})
		}
	}
	output.Warnings = issueStrings(collector.Issues())
	return nil, output, nil
}
