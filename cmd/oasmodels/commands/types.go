package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/erraggy/oasmodels/config"
	"github.com/erraggy/oasmodels/internal/issues"
	"github.com/erraggy/oasmodels/internal/naming"
	"github.com/erraggy/oasmodels/oaserrors"
	"github.com/erraggy/oasmodels/parser"
	"github.com/erraggy/oasmodels/resolver"
	"github.com/erraggy/oasmodels/typemap"
)

// TypesFlags contains flags for the types command
type TypesFlags struct {
	Job             string
	Target          string
	ClassNamePrefix string
	Format          string
	DeriveOptional  bool
	Verbose         bool
}

// SetupTypesFlags creates and configures a FlagSet for the types command.
// Returns the FlagSet and a TypesFlags struct with bound flag variables.
func SetupTypesFlags() (*flag.FlagSet, *TypesFlags) {
	fs := flag.NewFlagSet("types", flag.ContinueOnError)
	flags := &TypesFlags{}

	fs.StringVar(&flags.Job, "job", "", "job file whose settings (prefixes, corrections) are applied")
	fs.StringVar(&flags.Target, "t", "", "target language: dart or go (default: dart, or the job's target)")
	fs.StringVar(&flags.Target, "target", "", "target language: dart or go (default: dart, or the job's target)")
	fs.StringVar(&flags.ClassNamePrefix, "prefix", "", "class name prefix (overrides the job's default prefix)")
	fs.StringVar(&flags.Format, "format", FormatText, "output format: text, json, or yaml")
	fs.BoolVar(&flags.DeriveOptional, "derive-optional", false, "mark properties missing from a schema's required list as optional")
	fs.BoolVar(&flags.Verbose, "v", false, "enable debug logging")

	fs.Usage = func() {
		output := fs.Output()
		Writef(output, "Usage: oasmodels types [flags] <file|url|-> <schema>\n\n")
		Writef(output, "Print the target-language type of every field of one object schema.\n\n")
		Writef(output, "Flags:\n")
		fs.PrintDefaults()
		Writef(output, "\nExamples:\n")
		Writef(output, "  oasmodels types openapi.yaml Pet\n")
		Writef(output, "  oasmodels types -t go -prefix Api openapi.yaml Pet\n")
		Writef(output, "  oasmodels types -job jobs/petstore.yaml -format json openapi.yaml Pet\n")
	}

	return fs, flags
}

// TypedField is the structured output of one mapped field.
type TypedField struct {
	JSONKey  string `json:"jsonKey"  yaml:"jsonKey"`
	Name     string `json:"name"     yaml:"name"`
	Type     string `json:"type"     yaml:"type"`
	Nullable bool   `json:"nullable" yaml:"nullable"`
}

// TypedEnum is the structured output of one synthesized enum.
type TypedEnum struct {
	Name   string   `json:"name"   yaml:"name"`
	Values []string `json:"values" yaml:"values"`
}

// TypesOutput is the structured output of the types command.
type TypesOutput struct {
	Schema    string       `json:"schema"             yaml:"schema"`
	ClassName string       `json:"className"          yaml:"className"`
	Target    string       `json:"target"             yaml:"target"`
	Fields    []TypedField `json:"fields"             yaml:"fields"`
	Enums     []TypedEnum  `json:"enums,omitempty"    yaml:"enums,omitempty"`
	Warnings  []string     `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// HandleTypes executes the types command
func HandleTypes(args []string) error {
	fs, flags := SetupTypesFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 2 {
		fs.Usage()
		return fmt.Errorf("types command requires a file path, URL, or '-' for stdin, and a schema name")
	}
	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}

	job, err := typesJob(fs.Arg(0), flags)
	if err != nil {
		return err
	}

	logger := NewLogger(os.Stderr, flags.Verbose)
	doc, err := loadDocument(context.Background(), fs.Arg(0), job.DeriveOptionalFromRequired, logger)
	if err != nil {
		return err
	}

	out, err := mapSchemaTypes(doc, job, fs.Arg(1))
	if err != nil {
		return err
	}

	if flags.Format != FormatText {
		return OutputStructured(out, flags.Format)
	}
	printTypes(out)
	return nil
}

// typesJob builds the job the mapping runs under: the -job file if given,
// with flag overrides applied.
func typesJob(source string, flags *TypesFlags) (*config.Job, error) {
	job := &config.Job{Name: "types"}
	if flags.Job != "" {
		loaded, err := config.Load(flags.Job)
		if err != nil {
			return nil, err
		}
		job = loaded
	}
	job.Source = source
	if flags.Target != "" {
		job.Target = config.Target(flags.Target)
	}
	if flags.ClassNamePrefix != "" {
		job.Default.ClassNamePrefix = flags.ClassNamePrefix
	}
	if flags.DeriveOptional {
		job.DeriveOptionalFromRequired = true
	}
	job.ApplyDefaults()
	if err := job.Validate(); err != nil {
		return nil, err
	}
	return job, nil
}

func mapSchemaTypes(doc *parser.Document, job *config.Job, name string) (*TypesOutput, error) {
	target, err := typemap.TargetFor(job.Target)
	if err != nil {
		return nil, err
	}

	collector := issues.NewCollector(nil)
	flat, err := resolver.Resolve(doc.Graph, collector)
	if err != nil {
		return nil, err
	}
	s, ok := flat.Lookup(name)
	if !ok {
		return nil, &oaserrors.ReferenceError{Ref: name, Message: "referenced schema/component not found"}
	}
	if s.Kind != parser.KindObject {
		return nil, fmt.Errorf("schema %s is a %s schema, not an object", s.Name, s.Kind)
	}

	m := typemap.NewMapper(flat, job, target)
	className := m.ClassName(s.Name)
	out := &TypesOutput{
		Schema:    s.Name,
		ClassName: className,
		Target:    string(target.Name()),
		Fields:    make([]TypedField, 0, s.Properties.Len()),
	}
	for key, prop := range s.Properties.All() {
		fieldName := naming.ApplyNaming(key, naming.Field)
		typ, err := m.MapType(prop, fieldName, className)
		if err != nil {
			return nil, err
		}
		out.Fields = append(out.Fields, TypedField{
			JSONKey:  key,
			Name:     fieldName,
			Type:     typ,
			Nullable: m.IsNullable(prop, className, fieldName),
		})
		if decl, ok := m.Enum(prop, fieldName, className); ok {
			out.Enums = append(out.Enums, TypedEnum{Name: decl.Name, Values: decl.Values})
		}
	}
	for _, i := range collector.Issues() {
		out.Warnings = append(out.Warnings, i.String())
	}
	return out, nil
}

func printTypes(out *TypesOutput) {
	Writef(os.Stdout, "%s -> %s (%s)\n", out.Schema, out.ClassName, out.Target)
	for _, f := range out.Fields {
		typ := f.Type
		if f.Nullable {
			typ += "?"
		}
		Writef(os.Stdout, "  %-20s %-20s %s\n", f.JSONKey, f.Name, typ)
	}
	for _, e := range out.Enums {
		Writef(os.Stdout, "\nenum %s: %v\n", e.Name, e.Values)
	}
	if len(out.Warnings) > 0 {
		Writef(os.Stdout, "\nWarnings:\n")
		for _, w := range out.Warnings {
			Writef(os.Stdout, "  %s\n", w)
		}
	}
}
