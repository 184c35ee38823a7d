// Package resolver flattens composed OpenAPI schemas into concrete property sets.
//
// A schema is composed when it declares oneOf, allOf or anyOf. Resolution
// collects its contributors (all oneOf entries, then allOf, then anyOf, each
// in declaration order), flattens any composed contributor first, and merges
// their properties. When two contributors declare the same property name the
// first declaration wins and later ones are dropped.
//
// Fatal conditions are returned as typed errors from the oaserrors package:
//
//   - a composed schema that also declares properties (*oaserrors.CompositionError)
//   - a contributor that references a missing schema (*oaserrors.ReferenceError)
//   - a composition cycle (*oaserrors.ReferenceError with IsCircular set)
//
// A contributor without properties is not fatal. It is reported to the
// issues.Sink as a warning and skipped.
//
// # Example
//
//	collector := issues.NewCollector(nil)
//	flat, err := resolver.Resolve(doc.Graph, collector)
//	if err != nil {
//		return err
//	}
//	pet, _ := flat.Get("Pet") // Kind is parser.KindObject
package resolver
