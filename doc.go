// Package oasmodels turns the component schemas of an OpenAPI document into
// target-language data-model source files.
//
// The work is split into a few packages that can be used on their own:
//
//   - parser: load an OpenAPI document into an ordered schema graph
//   - resolver: flatten allOf/oneOf/anyOf compositions into concrete property sets
//   - typemap: map property types to target-language type names
//   - config: job files with per-schema resolution settings and overrides
//   - generator: build class models, render them and write the output files
//
// # Quick Start
//
//	job, err := config.Load("jobs/petstore.yaml")
//	if err != nil {
//		log.Fatal(err)
//	}
//	result, err := generator.New().GenerateJob(ctx, job)
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := result.WriteFiles(); err != nil {
//		log.Fatal(err)
//	}
//
// Or resolve and map a graph directly:
//
//	doc, _ := parser.ParseBytes(data)
//	flat, err := resolver.Resolve(doc.Graph, nil)
//	m := typemap.NewMapper(flat, job, typemap.Dart)
//	typeName, err := m.MapType(prop, "owner", "Pet")
//
// Supported targets are Dart (json_serializable models) and Go (plain structs).
package oasmodels
