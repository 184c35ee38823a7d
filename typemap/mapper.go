package typemap

import (
	"github.com/erraggy/oasmodels/config"
	"github.com/erraggy/oasmodels/internal/naming"
	"github.com/erraggy/oasmodels/oaserrors"
	"github.com/erraggy/oasmodels/parser"
)

// ReferenceNotFound is the message of the error returned for a property
// that references a schema missing from the graph.
const ReferenceNotFound = "referenced schema/component not found"

// Mapper maps property types of a flattened graph to type names of a Target.
//
// A Mapper holds no mutable state: MapType, IsNullable and Enum are pure
// functions of their arguments, the graph and the job settings, so a Mapper
// may be shared by goroutines working on the same job.
type Mapper struct {
	graph         *parser.Graph
	job           *config.Job
	target        Target
	types         map[config.PropertyKey]string
	nullability   map[config.PropertyKey]bool
	inferSingular bool
}

// NewMapper creates a Mapper over a graph flattened by the resolver package.
// A nil job maps with empty settings; a nil target maps to Dart.
func NewMapper(graph *parser.Graph, job *config.Job, target Target) *Mapper {
	if job == nil {
		job = &config.Job{}
	}
	if target == nil {
		target = Dart
	}
	return &Mapper{
		graph:         graph,
		job:           job,
		target:        target,
		types:         job.TypeCorrections(),
		nullability:   job.NullabilityCorrections(),
		inferSingular: job.InferSingular(),
	}
}

// Target returns the target the mapper spells types in.
func (m *Mapper) Target() Target {
	return m.target
}

// ClassName returns the generated class name of a schema: its
// classNamePrefix followed by the class-cased schema name.
func (m *Mapper) ClassName(schemaName string) string {
	return m.job.SettingsFor(schemaName).ClassNamePrefix + naming.ApplyNaming(schemaName, naming.Class)
}

// EnumName returns the name of the enum synthesized for a string enum
// property: the Pascal-cased concatenation of class and property name.
func EnumName(className, propertyName string) string {
	return naming.ToPascalCase(className + "_" + propertyName)
}

// MapType returns the target type name of prop, declared as propertyName
// (field-cased) on the class className (prefixed). The first matching rule
// wins:
//
//  1. arrays map their items and wrap them in a sequence
//  2. a type correction for className.propertyName is returned verbatim
//  3. a reference to an Object schema maps to that schema's class name;
//     a reference to any other schema substitutes its type
//  4. the (possibly substituted) type is dispatched to the target
func (m *Mapper) MapType(prop *parser.Property, propertyName, className string) (string, error) {
	if prop.Type == parser.TypeArray {
		if prop.Items == nil {
			return "", &oaserrors.TypeError{
				Class:    className,
				Property: propertyName,
				Message:  "array property has no items",
			}
		}
		elem, err := m.MapType(prop.Items, propertyName, className)
		if err != nil {
			return "", err
		}
		return m.target.Sequence(elem), nil
	}

	if corrected, ok := m.types[config.PropertyKey{Class: className, Property: propertyName}]; ok {
		return corrected, nil
	}

	typ, format, enum := prop.Type, prop.Format, prop.Enum
	if prop.Reference != "" {
		ref, ok := m.graph.Lookup(prop.Reference)
		if !ok {
			return "", &oaserrors.ReferenceError{
				Ref:     prop.Reference,
				From:    className + "." + propertyName,
				Message: ReferenceNotFound,
			}
		}
		if ref.Kind == parser.KindObject {
			return m.ClassName(ref.Name), nil
		}
		if ref.Type == parser.TypeArray && ref.Items != nil {
			elem, err := m.MapType(ref.Items, propertyName, className)
			if err != nil {
				return "", err
			}
			return m.target.Sequence(elem), nil
		}
		typ, format, enum = ref.Type, ref.Format, nil
	}

	return m.dispatch(typ, format, enum, propertyName, className)
}

func (m *Mapper) dispatch(typ, format string, enum []string, propertyName, className string) (string, error) {
	switch typ {
	case parser.TypeString:
		switch {
		case format == parser.FormatDateTime:
			return m.target.DateTime(), nil
		case len(enum) > 0:
			return EnumName(className, propertyName), nil
		default:
			return m.target.Text(), nil
		}
	case parser.TypeBoolean:
		return m.target.Bool(), nil
	case parser.TypeNumber, parser.TypeInteger:
		return m.target.Number(), nil
	case parser.TypeObject:
		if name, ok := m.SingularReference(propertyName); ok {
			return name, nil
		}
		return m.target.Map(), nil
	case parser.TypeUnspecified, parser.TypeAny:
		return m.target.Dynamic(), nil
	}
	return "", &oaserrors.TypeError{
		Class:    className,
		Property: propertyName,
		Type:     typ,
		Message:  "unknown type",
	}
}

// SingularReference infers that an inline object property refers to the
// Object schema named after the singular form of the property name, as in
// `category: {type: object}` next to a Category schema. It returns the class
// name of that schema. The rule is disabled by the job setting
// inferSingularReferences: false.
func (m *Mapper) SingularReference(propertyName string) (string, bool) {
	s, ok := m.SingularSchema(propertyName)
	if !ok {
		return "", false
	}
	return m.ClassName(s.Name), true
}

// SingularSchema returns the schema SingularReference maps propertyName to.
func (m *Mapper) SingularSchema(propertyName string) (*parser.Schema, bool) {
	if !m.inferSingular || propertyName == "" {
		return nil, false
	}
	s, ok := m.graph.Lookup(naming.Singularize(propertyName))
	if !ok || s.Kind != parser.KindObject {
		return nil, false
	}
	return s, true
}

// Lookup finds a schema of the mapped graph, ignoring case.
func (m *Mapper) Lookup(name string) (*parser.Schema, bool) {
	return m.graph.Lookup(name)
}

// IsNullable reports whether the field emitted for prop is nullable. A
// nullability correction for className.propertyName wins; otherwise a
// property is nullable when it is declared nullable or optional.
func (m *Mapper) IsNullable(prop *parser.Property, className, propertyName string) bool {
	if v, ok := m.nullability[config.PropertyKey{Class: className, Property: propertyName}]; ok {
		return v
	}
	return prop.Nullable || prop.Optional
}

// EnumDecl is an enum type synthesized for a string enum property.
type EnumDecl struct {
	// Name is the enum type name (see EnumName)
	Name string
	// Values are the enum members in source order
	Values []string
}

// Enum reports the enum declaration MapType relies on for prop, if any.
// Array items are inspected, so an array of string enums also needs one.
func (m *Mapper) Enum(prop *parser.Property, propertyName, className string) (EnumDecl, bool) {
	p := prop
	for p.Type == parser.TypeArray && p.Items != nil {
		p = p.Items
	}
	if _, ok := m.types[config.PropertyKey{Class: className, Property: propertyName}]; ok {
		return EnumDecl{}, false
	}
	if p.Reference != "" || p.Type != parser.TypeString || p.Format == parser.FormatDateTime || len(p.Enum) == 0 {
		return EnumDecl{}, false
	}
	return EnumDecl{Name: EnumName(className, propertyName), Values: p.Enum}, true
}
