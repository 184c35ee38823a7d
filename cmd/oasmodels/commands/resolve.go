package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/erraggy/oasmodels/internal/issues"
	"github.com/erraggy/oasmodels/parser"
	"github.com/erraggy/oasmodels/resolver"
)

// ResolveFlags contains flags for the resolve command
type ResolveFlags struct {
	Schema         string
	Format         string
	DeriveOptional bool
	Verbose        bool
}

// SetupResolveFlags creates and configures a FlagSet for the resolve command.
// Returns the FlagSet and a ResolveFlags struct with bound flag variables.
func SetupResolveFlags() (*flag.FlagSet, *ResolveFlags) {
	fs := flag.NewFlagSet("resolve", flag.ContinueOnError)
	flags := &ResolveFlags{}

	fs.StringVar(&flags.Schema, "schema", "", "resolve only this schema (case-insensitive)")
	fs.StringVar(&flags.Format, "format", FormatText, "output format: text, json, or yaml")
	fs.BoolVar(&flags.DeriveOptional, "derive-optional", false, "mark properties missing from a schema's required list as optional")
	fs.BoolVar(&flags.Verbose, "v", false, "enable debug logging")

	fs.Usage = func() {
		output := fs.Output()
		Writef(output, "Usage: oasmodels resolve [flags] <file|url|->\n\n")
		Writef(output, "Flatten the allOf/oneOf/anyOf compositions of every component schema and\n")
		Writef(output, "print the resulting property sets.\n\n")
		Writef(output, "Flags:\n")
		fs.PrintDefaults()
		Writef(output, "\nExamples:\n")
		Writef(output, "  oasmodels resolve openapi.yaml\n")
		Writef(output, "  oasmodels resolve -schema Pet -format yaml openapi.yaml\n")
		Writef(output, "  cat openapi.yaml | oasmodels resolve -format json -\n")
	}

	return fs, flags
}

// ResolvedProperty is the structured output of one resolved property.
type ResolvedProperty struct {
	Name      string   `json:"name"                yaml:"name"`
	Type      string   `json:"type,omitempty"      yaml:"type,omitempty"`
	Format    string   `json:"format,omitempty"    yaml:"format,omitempty"`
	Reference string   `json:"reference,omitempty" yaml:"reference,omitempty"`
	Items     string   `json:"items,omitempty"     yaml:"items,omitempty"`
	Nullable  bool     `json:"nullable,omitempty"  yaml:"nullable,omitempty"`
	Optional  bool     `json:"optional,omitempty"  yaml:"optional,omitempty"`
	Enum      []string `json:"enum,omitempty"      yaml:"enum,omitempty"`
}

// ResolvedSchema is the structured output of one resolved schema.
type ResolvedSchema struct {
	Name       string             `json:"name"                 yaml:"name"`
	Kind       string             `json:"kind"                 yaml:"kind"`
	Type       string             `json:"type,omitempty"       yaml:"type,omitempty"`
	Properties []ResolvedProperty `json:"properties,omitempty" yaml:"properties,omitempty"`
}

// ResolveOutput is the structured output of the resolve command.
type ResolveOutput struct {
	Version  string           `json:"version"            yaml:"version"`
	Schemas  []ResolvedSchema `json:"schemas"            yaml:"schemas"`
	Warnings []string         `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// HandleResolve executes the resolve command
func HandleResolve(args []string) error {
	fs, flags := SetupResolveFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("resolve command requires exactly one file path, URL, or '-' for stdin")
	}
	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}

	logger := NewLogger(os.Stderr, flags.Verbose)
	doc, err := loadDocument(context.Background(), fs.Arg(0), flags.DeriveOptional, logger)
	if err != nil {
		return err
	}

	collector := issues.NewCollector(nil)
	out, err := resolveDocument(doc, flags.Schema, collector)
	if err != nil {
		return err
	}
	for _, i := range collector.Issues() {
		out.Warnings = append(out.Warnings, i.String())
	}

	if flags.Format != FormatText {
		return OutputStructured(out, flags.Format)
	}
	printResolved(out)
	return nil
}

func resolveDocument(doc *parser.Document, name string, sink issues.Sink) (*ResolveOutput, error) {
	r := resolver.New(doc.Graph, sink)
	out := &ResolveOutput{Version: doc.Version}

	if name != "" {
		s, err := r.Flatten(name)
		if err != nil {
			return nil, err
		}
		out.Schemas = append(out.Schemas, newResolvedSchema(s))
		return out, nil
	}

	flat, err := r.Graph()
	if err != nil {
		return nil, err
	}
	for _, s := range flat.All() {
		out.Schemas = append(out.Schemas, newResolvedSchema(s))
	}
	return out, nil
}

func newResolvedSchema(s *parser.Schema) ResolvedSchema {
	rs := ResolvedSchema{Name: s.Name, Kind: s.Kind.String(), Type: s.Type}
	for name, p := range s.Properties.All() {
		rp := ResolvedProperty{
			Name:      name,
			Type:      p.Type,
			Format:    p.Format,
			Reference: p.Reference,
			Nullable:  p.Nullable,
			Optional:  p.Optional,
			Enum:      p.Enum,
		}
		if p.Items != nil {
			rp.Items = p.Items.Type
			if p.Items.Reference != "" {
				rp.Items = p.Items.Reference
			}
		}
		rs.Properties = append(rs.Properties, rp)
	}
	return rs
}

func printResolved(out *ResolveOutput) {
	Writef(os.Stdout, "OpenAPI %s: %d schema(s)\n", out.Version, len(out.Schemas))
	for _, s := range out.Schemas {
		Writef(os.Stdout, "\n%s (%s", s.Name, s.Kind)
		if s.Type != "" {
			Writef(os.Stdout, ", %s", s.Type)
		}
		Writef(os.Stdout, ")\n")
		for _, p := range s.Properties {
			Writef(os.Stdout, "  %-20s %s\n", p.Name, describeProperty(p))
		}
	}
	if len(out.Warnings) > 0 {
		Writef(os.Stdout, "\nWarnings:\n")
		for _, w := range out.Warnings {
			Writef(os.Stdout, "  %s\n", w)
		}
	}
}

func describeProperty(p ResolvedProperty) string {
	var b strings.Builder
	switch {
	case p.Reference != "":
		b.WriteString("-> " + p.Reference)
	case p.Type == parser.TypeArray:
		b.WriteString("array of " + p.Items)
	case p.Type == "":
		b.WriteString("any")
	default:
		b.WriteString(p.Type)
	}
	if p.Format != "" {
		b.WriteString(" (" + p.Format + ")")
	}
	if len(p.Enum) > 0 {
		b.WriteString(" [" + strings.Join(p.Enum, ", ") + "]")
	}
	if p.Nullable {
		b.WriteString(" nullable")
	}
	if p.Optional {
		b.WriteString(" optional")
	}
	return b.String()
}
