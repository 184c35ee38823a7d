package generator

import (
	"slices"
	"strconv"
	"strings"
	"unicode"

	"github.com/erraggy/oasmodels/config"
	"github.com/erraggy/oasmodels/internal/issues"
	"github.com/erraggy/oasmodels/internal/naming"
	"github.com/erraggy/oasmodels/internal/severity"
	"github.com/erraggy/oasmodels/parser"
	"github.com/erraggy/oasmodels/typemap"
)

// Model is everything a template needs to render one schema.
type Model struct {
	// Schema is the name of the schema in the document
	Schema string
	// FileName is the base name of the output file, without extension
	FileName string
	// Package is the Go package name (Go target only)
	Package string
	// Imports lists the files of other schemas this model refers to,
	// sorted by file name
	Imports []Import
	// Class is the generated class (or struct)
	Class Class
	// Enums are the enums synthesized for string enum properties, in
	// property order
	Enums []Enum
}

// Import is the file of another generated model.
type Import struct {
	// Prefix is the importPrefix of the referenced schema
	Prefix string
	// File is the base name of the referenced file, without extension
	File string
}

// Class is a generated class.
type Class struct {
	Name        string
	Description string
	Fields      []Field
}

// Field is one property of a generated class.
type Field struct {
	// JSONKey is the property name in the document
	JSONKey string
	// Name is the field-cased property name
	Name string
	// Type is the mapped target type
	Type string
	// Nullable marks optional or nullable fields
	Nullable bool
	// Description is the property description
	Description string
}

// Enum is a generated enum type.
type Enum struct {
	Name    string
	Members []EnumMember
}

// EnumMember is one enum value and its identifier.
type EnumMember struct {
	// Name is a valid identifier for the member
	Name string
	// Value is the value as written in the document
	Value string
}

// modelBuilder turns flattened Object schemas into Models.
type modelBuilder struct {
	mapper  *typemap.Mapper
	job     *config.Job
	sink    issues.Sink
	pkgName string
}

// build maps every property of s. s must be a flattened Object schema.
func (b *modelBuilder) build(s *parser.Schema) (*Model, error) {
	className := b.mapper.ClassName(s.Name)
	model := &Model{
		Schema:   s.Name,
		FileName: naming.ApplyNaming(s.Name, naming.FileName),
		Package:  b.pkgName,
		Class: Class{
			Name:        className,
			Description: s.Description,
		},
	}

	model.Imports = b.imports(s)

	for key, prop := range s.Properties.All() {
		name := naming.ApplyNaming(key, naming.Field)
		typ, err := b.mapper.MapType(prop, name, className)
		if err != nil {
			return nil, err
		}
		model.Class.Fields = append(model.Class.Fields, Field{
			JSONKey:     key,
			Name:        name,
			Type:        typ,
			Nullable:    b.mapper.IsNullable(prop, className, name),
			Description: prop.Description,
		})
		if decl, ok := b.mapper.Enum(prop, name, className); ok {
			model.Enums = append(model.Enums, newEnum(decl))
		}
	}
	return model, nil
}

// imports collects the files of the Object schemas referenced by the
// properties of s, including array items and singular references. A
// reference that cannot be found is reported and skipped here; mapping the
// property fails afterwards.
func (b *modelBuilder) imports(s *parser.Schema) []Import {
	seen := make(map[string]bool)
	var out []Import
	add := func(target *parser.Schema) {
		if target == nil || strings.EqualFold(target.Name, s.Name) || seen[target.Name] {
			return
		}
		seen[target.Name] = true
		out = append(out, Import{
			Prefix: strings.TrimSuffix(b.job.SettingsFor(target.Name).ImportPrefix, "/"),
			File:   naming.ApplyNaming(target.Name, naming.FileName),
		})
	}

	for key, prop := range s.Properties.All() {
		p := prop
		for p.Type == parser.TypeArray && p.Items != nil {
			p = p.Items
		}
		switch {
		case p.Reference != "":
			target, ok := b.mapper.Lookup(p.Reference)
			if !ok {
				b.sink.Report(issues.Issue{
					Path:     issues.FormatPath(s.Name, key),
					Schema:   s.Name,
					Property: key,
					Message:  "couldn't find schema entry " + p.Reference,
					Severity: severity.SeverityWarning,
				})
				continue
			}
			if target.Kind == parser.KindObject {
				add(target)
			}
		case p.Type == parser.TypeObject:
			name := naming.ApplyNaming(key, naming.Field)
			if target, ok := b.mapper.SingularSchema(name); ok {
				add(target)
			}
		}
	}
	slices.SortFunc(out, func(a, b Import) int {
		return strings.Compare(a.File, b.File)
	})
	return out
}

func newEnum(decl typemap.EnumDecl) Enum {
	e := Enum{Name: decl.Name}
	used := make(map[string]bool, len(decl.Values))
	for _, v := range decl.Values {
		name := enumMemberName(v)
		for base, i := name, 2; used[name]; i++ {
			name = base + strconv.Itoa(i)
		}
		used[name] = true
		e.Members = append(e.Members, EnumMember{Name: name, Value: v})
	}
	return e
}

// enumMemberName returns a lower camel identifier for an enum value.
// Values that do not start with a letter are prefixed with "value".
func enumMemberName(v string) string {
	name := naming.ApplyNaming(v, naming.Field)
	name = strings.Map(func(r rune) rune {
		if r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return -1
	}, name)
	if name == "" {
		return "empty"
	}
	if r := []rune(name)[0]; !unicode.IsLetter(r) {
		return "value" + naming.ToTitleCase(name)
	}
	if reservedWords[name] {
		return name + "Value"
	}
	return name
}

// reservedWords cannot be used as Dart identifiers.
var reservedWords = map[string]bool{
	"assert": true, "break": true, "case": true, "catch": true, "class": true,
	"const": true, "continue": true, "default": true, "do": true, "else": true,
	"enum": true, "extends": true, "false": true, "final": true, "finally": true,
	"for": true, "if": true, "in": true, "is": true, "new": true, "null": true,
	"rethrow": true, "return": true, "super": true, "switch": true, "this": true,
	"throw": true, "true": true, "try": true, "var": true, "void": true,
	"while": true, "with": true, "values": true, "index": true,
}
