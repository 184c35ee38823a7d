package resolver

import (
	"fmt"
	"slices"
	"strings"

	"github.com/erraggy/oasmodels/internal/issues"
	"github.com/erraggy/oasmodels/internal/severity"
	"github.com/erraggy/oasmodels/oaserrors"
	"github.com/erraggy/oasmodels/parser"
)

// EmptyContributorMessage is reported when a composition contributor has no
// properties to merge.
const EmptyContributorMessage = "merged a schema with another one that has no properties"

// Resolver flattens composed schemas of one graph. Each named schema is
// flattened at most once. A Resolver is not safe for concurrent use; jobs
// create their own.
type Resolver struct {
	graph *parser.Graph
	sink  issues.Sink

	flat     map[string]*parser.Schema
	visiting map[string]bool
	chain    []string
}

// New creates a Resolver over graph reporting warnings to sink.
// A nil sink discards warnings.
func New(graph *parser.Graph, sink issues.Sink) *Resolver {
	return &Resolver{
		graph:    graph,
		sink:     issues.OrDiscard(sink),
		flat:     make(map[string]*parser.Schema),
		visiting: make(map[string]bool),
	}
}

// Resolve returns a graph in which every composed schema of graph is
// replaced by an Object schema holding the merged properties. Object and
// Primitive schemas are passed through unchanged. The input graph is not
// modified.
func Resolve(graph *parser.Graph, sink issues.Sink) (*parser.Graph, error) {
	return New(graph, sink).Graph()
}

// Graph flattens every schema of the resolver's graph, in source order.
// See Resolve.
func (r *Resolver) Graph() (*parser.Graph, error) {
	out := parser.NewGraph()
	for _, s := range r.graph.All() {
		flat, err := r.flattenNamed(s)
		if err != nil {
			return nil, err
		}
		out.Add(flat)
	}
	return out, nil
}

// Flatten resolves the named schema, looked up case-insensitively.
func (r *Resolver) Flatten(name string) (*parser.Schema, error) {
	s, ok := r.graph.Lookup(name)
	if !ok {
		return nil, &oaserrors.ReferenceError{Ref: name, Message: "referenced schema/component not found"}
	}
	return r.flattenNamed(s)
}

// ResolveSchema flattens a schema that is not part of the graph, such as a
// response body schema. Its contributors are looked up in the graph.
func (r *Resolver) ResolveSchema(s *parser.Schema) (*parser.Schema, error) {
	if named, ok := r.graph.Get(s.Name); ok && named == s {
		return r.flattenNamed(s)
	}
	if !s.IsPartial() {
		return s, nil
	}
	return r.merge(s)
}

func (r *Resolver) flattenNamed(s *parser.Schema) (*parser.Schema, error) {
	if flat, ok := r.flat[s.Name]; ok {
		return flat, nil
	}
	if !s.IsPartial() {
		r.flat[s.Name] = s
		return s, nil
	}
	if r.visiting[s.Name] {
		return nil, &oaserrors.ReferenceError{
			Ref:        s.Name,
			From:       r.chain[len(r.chain)-1],
			IsCircular: true,
			Message:    strings.Join(slices.Concat(r.chain, []string{s.Name}), " -> "),
		}
	}

	r.visiting[s.Name] = true
	r.chain = append(r.chain, s.Name)
	defer func() {
		delete(r.visiting, s.Name)
		r.chain = r.chain[:len(r.chain)-1]
	}()

	flat, err := r.merge(s)
	if err != nil {
		return nil, err
	}
	r.flat[s.Name] = flat
	return flat, nil
}

// merge collects the contributors of a composed schema and merges their
// properties, keeping the first declaration of each property name.
func (r *Resolver) merge(s *parser.Schema) (*parser.Schema, error) {
	if s.Properties.Len() > 0 {
		relations := make([]string, 0, 3)
		for _, rel := range s.Composition.Relations() {
			relations = append(relations, rel.String())
		}
		return nil, &oaserrors.CompositionError{
			Schema:    s.Name,
			Relations: relations,
			Message:   "a composed schema cannot declare its own properties",
		}
	}

	if alias, ok, err := r.alias(s); ok || err != nil {
		return alias, err
	}

	merged := parser.NewProperties()
	var required []string
	for _, c := range s.Composition.Contributors() {
		contributor, label, err := r.contributor(s, c)
		if err != nil {
			return nil, err
		}
		if contributor.Properties.Len() == 0 {
			r.sink.Report(issues.Issue{
				Path:     issues.FormatPath(s.Name, c.Relation.String(), fmt.Sprint(c.Index)),
				Schema:   s.Name,
				Message:  fmt.Sprintf("%s (%s)", EmptyContributorMessage, label),
				Severity: severity.SeverityWarning,
			})
			continue
		}
		for name, prop := range contributor.Properties.All() {
			if !merged.Has(name) {
				merged.Set(name, prop)
			}
		}
		for _, name := range contributor.Required {
			if !slices.Contains(required, name) {
				required = append(required, name)
			}
		}
	}

	return &parser.Schema{
		Name:        s.Name,
		Kind:        parser.KindObject,
		Type:        parser.TypeObject,
		Title:       s.Title,
		Description: s.Description,
		Nullable:    s.Nullable,
		Required:    required,
		Properties:  merged,
	}, nil
}

// alias resolves a schema drawn from a single referenced schema that is not
// an object, such as `UserId: {$ref: Identifier}` with a string Identifier.
// The result takes the target's type under the alias name.
func (r *Resolver) alias(s *parser.Schema) (*parser.Schema, bool, error) {
	contributors := s.Composition.Contributors()
	if len(contributors) != 1 || !contributors[0].IsRef() {
		return nil, false, nil
	}
	target, ok := r.graph.Lookup(contributors[0].Ref)
	if !ok {
		return nil, false, nil
	}
	flat, err := r.flattenNamed(target)
	if err != nil {
		return nil, false, err
	}
	if flat.Kind == parser.KindObject {
		return nil, false, nil
	}

	out := *flat
	out.Name = s.Name
	if s.Title != "" {
		out.Title = s.Title
	}
	if s.Description != "" {
		out.Description = s.Description
	}
	out.Nullable = s.Nullable || flat.Nullable
	out.Composition = parser.Composition{}
	return &out, true, nil
}

// contributor returns the flattened contributor and a label for diagnostics.
func (r *Resolver) contributor(owner *parser.Schema, c parser.Contributor) (*parser.Schema, string, error) {
	if c.IsRef() {
		target, ok := r.graph.Lookup(c.Ref)
		if !ok {
			return nil, "", &oaserrors.ReferenceError{
				Ref:     c.Ref,
				From:    owner.Name,
				Message: "referenced schema/component not found",
			}
		}
		flat, err := r.flattenNamed(target)
		return flat, target.Name, err
	}
	if c.Schema == nil {
		return nil, "", &oaserrors.CompositionError{
			Schema:    owner.Name,
			Relations: []string{c.Relation.String()},
			Message:   fmt.Sprintf("contributor %d is empty", c.Index),
		}
	}
	if !c.Schema.IsPartial() {
		return c.Schema, c.Schema.Name, nil
	}
	flat, err := r.merge(c.Schema)
	return flat, c.Schema.Name, err
}
