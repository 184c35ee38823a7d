package parser

import (
	"fmt"
	"iter"
	"strings"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oasmodels/internal/httputil"
	"github.com/erraggy/oasmodels/internal/schemautil"
	"github.com/erraggy/oasmodels/oaserrors"
)

// decoder turns a yaml.Node tree into a Document. Working on nodes rather
// than map[string]any keeps the declaration order of schemas and properties.
type decoder struct {
	sourcePath     string
	deriveOptional bool
	// responses holds components.responses (OAS 3) or responses (OAS 2)
	// for resolving response-level $refs
	responses *yaml.Node
}

func (d *decoder) errorf(n *yaml.Node, format string, args ...any) error {
	err := &oaserrors.ParseError{
		Path:    d.sourcePath,
		Message: fmt.Sprintf(format, args...),
	}
	if n != nil {
		err.Line = n.Line
		err.Column = n.Column
	}
	return err
}

// deref follows aliases and unwraps document nodes.
func deref(n *yaml.Node) *yaml.Node {
	for n != nil {
		switch n.Kind {
		case yaml.AliasNode:
			n = n.Alias
		case yaml.DocumentNode:
			if len(n.Content) == 0 {
				return nil
			}
			n = n.Content[0]
		default:
			return n
		}
	}
	return nil
}

// pairs iterates the key/value pairs of a mapping node, expanding merge keys.
func pairs(n *yaml.Node) iter.Seq2[string, *yaml.Node] {
	return func(yield func(string, *yaml.Node) bool) {
		n = deref(n)
		if n == nil || n.Kind != yaml.MappingNode {
			return
		}
		for i := 0; i+1 < len(n.Content); i += 2 {
			key, val := n.Content[i], deref(n.Content[i+1])
			if key.Value == "<<" && key.Tag == "!!merge" {
				for k, v := range pairs(val) {
					if !yield(k, v) {
						return
					}
				}
				continue
			}
			if !yield(key.Value, val) {
				return
			}
		}
	}
}

// child returns the value node for key, or nil.
func child(n *yaml.Node, key string) *yaml.Node {
	for k, v := range pairs(n) {
		if k == key {
			return v
		}
	}
	return nil
}

func scalar(n *yaml.Node) string {
	if n == nil || n.Kind != yaml.ScalarNode {
		return ""
	}
	return n.Value
}

func boolValue(n *yaml.Node) bool {
	if n == nil || n.Kind != yaml.ScalarNode {
		return false
	}
	var b bool
	if err := n.Decode(&b); err != nil {
		return false
	}
	return b
}

// RefName returns the schema name a JSON reference points to: the last
// pointer segment with ~1 and ~0 unescaped.
func RefName(ref string) string {
	if i := strings.LastIndex(ref, "/"); i >= 0 {
		ref = ref[i+1:]
	}
	ref = strings.ReplaceAll(ref, "~1", "/")
	return strings.ReplaceAll(ref, "~0", "~")
}

// refOf returns the referenced name of a node carrying `$ref`, or the
// non-standard `ref` key.
func refOf(n *yaml.Node) string {
	if ref := scalar(child(n, "$ref")); ref != "" {
		return RefName(ref)
	}
	if ref := scalar(child(n, "ref")); ref != "" {
		return RefName(ref)
	}
	return ""
}

func (d *decoder) decodeDocument(root *yaml.Node) (*Document, error) {
	root = deref(root)
	if root == nil {
		return nil, d.errorf(nil, "document is empty")
	}
	if root.Kind != yaml.MappingNode {
		return nil, d.errorf(root, "document root must be a mapping")
	}

	doc := &Document{
		SourcePath: d.sourcePath,
		Graph:      NewGraph(),
	}
	if v := scalar(child(root, "openapi")); v != "" {
		doc.Version = v
	} else {
		doc.Version = scalar(child(root, "swagger"))
	}
	doc.Title = scalar(child(child(root, "info"), "title"))

	schemas := child(child(root, "components"), "schemas")
	d.responses = child(child(root, "components"), "responses")
	if defs := child(root, "definitions"); schemas == nil && defs != nil {
		schemas = defs
		d.responses = child(root, "responses")
	}
	if schemas != nil && schemas.Kind != yaml.MappingNode {
		return nil, d.errorf(schemas, "schemas must be a mapping")
	}
	for name, node := range pairs(schemas) {
		s, err := d.decodeSchema(name, node)
		if err != nil {
			return nil, err
		}
		doc.Graph.Add(s)
	}

	if err := d.decodePaths(doc, child(root, "paths")); err != nil {
		return nil, err
	}
	return doc, nil
}

// decodeSchema decodes a schema node. A schema that is only a reference is
// represented as a single-contributor allOf so the resolver flattens it.
func (d *decoder) decodeSchema(name string, n *yaml.Node) (*Schema, error) {
	n = deref(n)
	if n == nil || n.Kind != yaml.MappingNode {
		return nil, d.errorf(n, "schema %q must be a mapping", name)
	}

	s := &Schema{Name: name}
	if ref := refOf(n); ref != "" {
		s.Composition.AllOf = []*SchemaRef{{Ref: ref}}
		s.Kind = KindComposed
		s.Description = scalar(child(n, "description"))
		return s, nil
	}

	for key, val := range pairs(n) {
		switch key {
		case "type":
			types, err := d.decodeTypes(val)
			if err != nil {
				return nil, err
			}
			s.Type = schemautil.PrimaryType(types)
			if schemautil.IsNullable(types) {
				s.Nullable = true
			}
		case "format":
			s.Format = scalar(val)
		case "title":
			s.Title = scalar(val)
		case "description":
			s.Description = scalar(val)
		case "nullable":
			s.Nullable = s.Nullable || boolValue(val)
		case "enum":
			enum, err := d.decodeEnum(val)
			if err != nil {
				return nil, err
			}
			s.Enum = enum
		case "items":
			items, err := d.decodeProperty(val)
			if err != nil {
				return nil, err
			}
			s.Items = items
		case "required":
			if err := val.Decode(&s.Required); err != nil {
				return nil, d.errorf(val, "schema %q: required must be a list of names", name)
			}
		case "properties":
			props, err := d.decodeProperties(val)
			if err != nil {
				return nil, err
			}
			s.Properties = props
		case "oneOf", "allOf", "anyOf":
			refs, err := d.decodeContributors(name, key, val)
			if err != nil {
				return nil, err
			}
			switch key {
			case "oneOf":
				s.Composition.OneOf = refs
			case "allOf":
				s.Composition.AllOf = refs
			default:
				s.Composition.AnyOf = refs
			}
		}
	}

	if d.deriveOptional && len(s.Required) > 0 {
		required := make(map[string]bool, len(s.Required))
		for _, r := range s.Required {
			required[r] = true
		}
		for key, p := range s.Properties.All() {
			if !required[key] {
				p.Optional = true
			}
		}
	}

	switch {
	case !s.Composition.IsEmpty():
		s.Kind = KindComposed
	case s.Type == TypeObject || s.Properties != nil:
		s.Kind = KindObject
	default:
		s.Kind = KindPrimitive
	}
	return s, nil
}

func (d *decoder) decodeTypes(n *yaml.Node) ([]string, error) {
	var raw any
	if err := n.Decode(&raw); err != nil {
		return nil, d.errorf(n, "invalid type: %v", err)
	}
	return schemautil.Types(raw), nil
}

// decodeEnum renders each literal as a string. Null entries are dropped,
// they only signal nullability.
func (d *decoder) decodeEnum(n *yaml.Node) ([]string, error) {
	if n.Kind != yaml.SequenceNode {
		return nil, d.errorf(n, "enum must be a list")
	}
	values := make([]string, 0, len(n.Content))
	for _, item := range n.Content {
		item = deref(item)
		var raw any
		if err := item.Decode(&raw); err != nil {
			return nil, d.errorf(item, "invalid enum value: %v", err)
		}
		if raw == nil {
			continue
		}
		values = append(values, fmt.Sprint(raw))
	}
	return values, nil
}

func (d *decoder) decodeContributors(owner, relation string, n *yaml.Node) ([]*SchemaRef, error) {
	if n.Kind != yaml.SequenceNode {
		return nil, d.errorf(n, "schema %q: %s must be a list", owner, relation)
	}
	refs := make([]*SchemaRef, 0, len(n.Content))
	for i, item := range n.Content {
		if ref := refOf(item); ref != "" {
			refs = append(refs, &SchemaRef{Ref: ref})
			continue
		}
		inline, err := d.decodeSchema(fmt.Sprintf("%s.%s[%d]", owner, relation, i), item)
		if err != nil {
			return nil, err
		}
		refs = append(refs, &SchemaRef{Schema: inline})
	}
	return refs, nil
}

func (d *decoder) decodeProperties(n *yaml.Node) (*Properties, error) {
	if n.Kind != yaml.MappingNode {
		return nil, d.errorf(n, "properties must be a mapping")
	}
	props := NewProperties()
	for key, val := range pairs(n) {
		p, err := d.decodeProperty(val)
		if err != nil {
			return nil, fmt.Errorf("property %q: %w", key, err)
		}
		props.Set(key, p)
	}
	return props, nil
}

func (d *decoder) decodeProperty(n *yaml.Node) (*Property, error) {
	n = deref(n)
	if n == nil || n.Kind != yaml.MappingNode {
		return nil, d.errorf(n, "property must be a mapping")
	}

	p := &Property{}
	if ref := refOf(n); ref != "" {
		p.Reference = ref
		p.Type = TypeReference
	}

	var wrapped *yaml.Node
	for key, val := range pairs(n) {
		switch key {
		case "type":
			types, err := d.decodeTypes(val)
			if err != nil {
				return nil, err
			}
			if p.Reference == "" {
				p.Type = schemautil.PrimaryType(types)
			}
			if schemautil.IsNullable(types) {
				p.Nullable = true
			}
		case "format":
			p.Format = scalar(val)
		case "description":
			p.Description = scalar(val)
		case "nullable":
			p.Nullable = p.Nullable || boolValue(val)
		case "optional":
			p.Optional = boolValue(val)
		case "enum":
			enum, err := d.decodeEnum(val)
			if err != nil {
				return nil, err
			}
			p.Enum = enum
		case "items":
			items, err := d.decodeProperty(val)
			if err != nil {
				return nil, fmt.Errorf("items: %w", err)
			}
			p.Items = items
		case "properties":
			props, err := d.decodeProperties(val)
			if err != nil {
				return nil, err
			}
			p.Properties = props
		case "allOf", "oneOf", "anyOf":
			if wrapped == nil {
				wrapped = val
			}
		}
	}

	if p.Reference == "" && wrapped != nil {
		d.decodeWrappedRef(p, wrapped)
	}
	if p.Type == TypeUnspecified && p.Reference == "" && p.Properties != nil {
		p.Type = TypeObject
	}
	return p, nil
}

// decodeWrappedRef recognizes the nullable-reference idiom where a property
// wraps a single $ref in a composition keyword, optionally next to a
// `type: "null"` alternative.
func (d *decoder) decodeWrappedRef(p *Property, n *yaml.Node) {
	if n.Kind != yaml.SequenceNode {
		return
	}
	var ref string
	nullable := false
	for _, item := range n.Content {
		if r := refOf(item); r != "" {
			if ref != "" {
				return
			}
			ref = r
			continue
		}
		if scalar(child(item, "type")) == schemautil.TypeNull {
			nullable = true
			continue
		}
		return
	}
	if ref == "" {
		return
	}
	p.Reference = ref
	p.Type = TypeReference
	p.Nullable = p.Nullable || nullable
}

func (d *decoder) decodePaths(doc *Document, paths *yaml.Node) error {
	for path, item := range pairs(paths) {
		for method, op := range pairs(item) {
			method = strings.ToLower(method)
			if !httputil.IsMethod(method) {
				continue
			}
			for status, resp := range pairs(child(op, "responses")) {
				if ref := scalar(child(resp, "$ref")); ref != "" {
					resp = child(d.responses, RefName(ref))
				}
				schemaNode := responseSchemaNode(resp)
				if schemaNode == nil {
					continue
				}
				s, err := d.decodeSchema("", schemaNode)
				if err != nil {
					return fmt.Errorf("%s %s %s: %w", strings.ToUpper(method), path, status, err)
				}
				doc.Responses = append(doc.Responses, &Response{
					Path:   path,
					Method: method,
					Status: status,
					Schema: s,
				})
			}
		}
	}
	return nil
}

// responseSchemaNode prefers the application/json media type, then any
// JSON-like media type, then the OAS 2 schema field.
func responseSchemaNode(resp *yaml.Node) *yaml.Node {
	content := child(resp, "content")
	if s := child(child(content, httputil.MediaTypeJSON), "schema"); s != nil {
		return s
	}
	for mediaType, media := range pairs(content) {
		if httputil.IsJSONMediaType(mediaType) {
			if s := child(media, "schema"); s != nil {
				return s
			}
		}
	}
	return child(resp, "schema")
}
