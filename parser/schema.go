package parser

import (
	"iter"
	"slices"
	"strings"
)

// Property type literals as they appear in a document.
// TypeReference and TypeUnspecified are synthesized by the decoder.
const (
	TypeString      = "string"
	TypeBoolean     = "boolean"
	TypeNumber      = "number"
	TypeInteger     = "integer"
	TypeObject      = "object"
	TypeArray       = "array"
	TypeReference   = "reference"
	TypeAny         = "any"
	TypeUnspecified = ""
)

// FormatDateTime is the string format that maps to a date/time type.
const FormatDateTime = "date-time"

// Kind classifies a named schema.
type Kind int

const (
	// KindPrimitive is a schema that is neither an object nor composed
	// (string enums, arrays, aliases of primitive types).
	KindPrimitive Kind = iota
	// KindObject is a schema with directly declared properties.
	KindObject
	// KindComposed is a schema built from oneOf/allOf/anyOf contributors.
	KindComposed
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindObject:
		return "object"
	case KindComposed:
		return "composed"
	default:
		return "primitive"
	}
}

// Relation is a composition keyword.
type Relation int

const (
	// RelationOneOf is the union relation: exactly one of the contributors.
	RelationOneOf Relation = iota
	// RelationAllOf is the intersection relation: merge all contributors.
	RelationAllOf
	// RelationAnyOf is the alternative relation: any of the contributors.
	RelationAnyOf
)

// String returns the document keyword for the relation.
func (r Relation) String() string {
	switch r {
	case RelationAllOf:
		return "allOf"
	case RelationAnyOf:
		return "anyOf"
	default:
		return "oneOf"
	}
}

// SchemaRef is one composition contributor: either a reference to a named
// schema or an inline schema. Exactly one of Ref and Schema is set.
type SchemaRef struct {
	// Ref is the referenced schema name (last segment of the $ref pointer)
	Ref string
	// Schema is the inline contributor
	Schema *Schema
}

// IsRef reports whether the contributor is a reference.
func (r *SchemaRef) IsRef() bool {
	return r.Ref != ""
}

// Composition holds the three composition relations of a schema.
type Composition struct {
	OneOf []*SchemaRef
	AllOf []*SchemaRef
	AnyOf []*SchemaRef
}

// IsEmpty reports whether no relation is populated.
func (c Composition) IsEmpty() bool {
	return len(c.OneOf) == 0 && len(c.AllOf) == 0 && len(c.AnyOf) == 0
}

// Relations returns the populated relations in contributor order.
func (c Composition) Relations() []Relation {
	var out []Relation
	if len(c.OneOf) > 0 {
		out = append(out, RelationOneOf)
	}
	if len(c.AllOf) > 0 {
		out = append(out, RelationAllOf)
	}
	if len(c.AnyOf) > 0 {
		out = append(out, RelationAnyOf)
	}
	return out
}

// Contributor is a SchemaRef tagged with the relation it came from.
type Contributor struct {
	*SchemaRef
	Relation Relation
	// Index is the position within the relation's list
	Index int
}

// Contributors returns every contributor in a fixed order: all oneOf
// entries, then allOf, then anyOf, each in declaration order.
func (c Composition) Contributors() []Contributor {
	out := make([]Contributor, 0, len(c.OneOf)+len(c.AllOf)+len(c.AnyOf))
	for i, r := range c.OneOf {
		out = append(out, Contributor{SchemaRef: r, Relation: RelationOneOf, Index: i})
	}
	for i, r := range c.AllOf {
		out = append(out, Contributor{SchemaRef: r, Relation: RelationAllOf, Index: i})
	}
	for i, r := range c.AnyOf {
		out = append(out, Contributor{SchemaRef: r, Relation: RelationAnyOf, Index: i})
	}
	return out
}

// Schema is a named node of the schema graph.
type Schema struct {
	// Name is the component name (or the ad-hoc name given to a response schema)
	Name string
	// Kind classifies the schema
	Kind Kind
	// Type is the declared type literal, TypeUnspecified if absent
	Type string
	// Format refines Type (e.g., "date-time")
	Format string
	// Title and Description are carried into generated doc comments
	Title       string
	Description string
	// Nullable is set by `nullable: true` or a "null" entry in a type array
	Nullable bool
	// Enum holds the literal values of a primitive enumeration
	Enum []string
	// Items describes the element of a primitive array schema
	Items *Property
	// Required lists the required property names, as declared
	Required []string
	// Properties are the directly declared properties in document order
	Properties *Properties
	// Composition holds oneOf/allOf/anyOf contributors
	Composition Composition
}

// IsPartial reports whether the schema is drawn from other schemas.
func (s *Schema) IsPartial() bool {
	return !s.Composition.IsEmpty()
}

// Property is a single field within an object schema.
type Property struct {
	// Type is the declared type literal (TypeReference when only a $ref is given)
	Type string
	// Format refines Type
	Format string
	// Description is carried into generated doc comments
	Description string
	// Items describes the element when Type is TypeArray
	Items *Property
	// Enum holds the literal values when the property is an enumeration
	Enum []string
	// Properties holds inline nested structure for object properties
	Properties *Properties
	// Reference is the name of the schema this property points to
	Reference string
	// Nullable and Optional each make the emitted field optional
	Nullable bool
	Optional bool
}

// IsEnum reports whether the property declares enum values.
func (p *Property) IsEnum() bool {
	return len(p.Enum) > 0
}

// Properties is an insertion-ordered mapping of property name to Property.
// The zero value is not usable; create one with NewProperties. Read methods
// are nil-safe.
type Properties struct {
	keys   []string
	values map[string]*Property
}

// NewProperties creates an empty property set.
func NewProperties() *Properties {
	return &Properties{values: make(map[string]*Property)}
}

// Set adds or replaces a property. New names are appended; replacing keeps
// the original position.
func (p *Properties) Set(name string, prop *Property) {
	if _, ok := p.values[name]; !ok {
		p.keys = append(p.keys, name)
	}
	p.values[name] = prop
}

// Get returns the property with the given name.
func (p *Properties) Get(name string) (*Property, bool) {
	if p == nil {
		return nil, false
	}
	prop, ok := p.values[name]
	return prop, ok
}

// Has reports whether a property with the given name exists.
func (p *Properties) Has(name string) bool {
	_, ok := p.Get(name)
	return ok
}

// Len returns the number of properties.
func (p *Properties) Len() int {
	if p == nil {
		return 0
	}
	return len(p.keys)
}

// Keys returns the property names in order.
func (p *Properties) Keys() []string {
	if p == nil {
		return nil
	}
	return slices.Clone(p.keys)
}

// All iterates the properties in order.
func (p *Properties) All() iter.Seq2[string, *Property] {
	return func(yield func(string, *Property) bool) {
		if p == nil {
			return
		}
		for _, k := range p.keys {
			if !yield(k, p.values[k]) {
				return
			}
		}
	}
}

// Graph is the set of named schemas of a document, in declaration order.
// Name lookups through Lookup are case-insensitive.
type Graph struct {
	names   []string
	schemas map[string]*Schema
	folded  map[string]string
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{
		schemas: make(map[string]*Schema),
		folded:  make(map[string]string),
	}
}

// Add inserts s under s.Name, replacing any schema with the same exact name.
func (g *Graph) Add(s *Schema) {
	if _, ok := g.schemas[s.Name]; !ok {
		g.names = append(g.names, s.Name)
		key := strings.ToLower(s.Name)
		if _, taken := g.folded[key]; !taken {
			g.folded[key] = s.Name
		}
	}
	g.schemas[s.Name] = s
}

// Get returns the schema with exactly the given name.
func (g *Graph) Get(name string) (*Schema, bool) {
	if g == nil {
		return nil, false
	}
	s, ok := g.schemas[name]
	return s, ok
}

// Lookup returns the schema whose name equals name ignoring case. An exact
// match wins; otherwise the first declared case-insensitive match is used.
func (g *Graph) Lookup(name string) (*Schema, bool) {
	if s, ok := g.Get(name); ok {
		return s, true
	}
	if g == nil {
		return nil, false
	}
	canonical, ok := g.folded[strings.ToLower(name)]
	if !ok {
		return nil, false
	}
	return g.schemas[canonical], true
}

// Names returns the schema names in declaration order.
func (g *Graph) Names() []string {
	if g == nil {
		return nil
	}
	return slices.Clone(g.names)
}

// Len returns the number of schemas.
func (g *Graph) Len() int {
	if g == nil {
		return 0
	}
	return len(g.names)
}

// All iterates the schemas in declaration order.
func (g *Graph) All() iter.Seq2[string, *Schema] {
	return func(yield func(string, *Schema) bool) {
		if g == nil {
			return
		}
		for _, name := range g.names {
			if !yield(name, g.schemas[name]) {
				return
			}
		}
	}
}
