// Package parser loads OpenAPI documents into a schema Graph.
//
// The parser reads OAS 2.0 (definitions) and OAS 3.x (components.schemas)
// documents in YAML or JSON from local files, remote URLs (http:// or
// https://), readers or byte slices. Documents are decoded through the
// yaml.Node API so that schemas and properties keep their declaration order,
// which generated classes reproduce.
//
// # Quick Start
//
//	doc, err := parser.ParseWithOptions(ctx,
//		parser.WithFilePath("openapi.yaml"),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	for name, schema := range doc.Graph.All() {
//		fmt.Println(name, schema.Kind)
//	}
//
// # Schema Model
//
// Every named schema becomes a Schema with a Kind:
//
//   - KindComposed when any of oneOf, allOf or anyOf is present
//   - KindObject when `type: object` or properties are declared
//   - KindPrimitive otherwise (enums, arrays, scalar aliases)
//
// A named schema that only holds a $ref is decoded as a composed schema with
// one allOf contributor. Properties carry their declared type, or
// TypeReference when they point at another schema through $ref, the
// non-standard `ref` key, or a single-reference allOf/oneOf/anyOf wrapper.
// OAS 3.1 type arrays such as ["string", "null"] set Nullable.
//
// # Responses
//
// Response body schemas are collected per path, method and status so that
// jobs can emit models for selected operations. The application/json media
// type is preferred.
package parser
