// Package typemap maps OpenAPI property types to target-language type names.
//
// A Mapper works on a graph flattened by the resolver package and on the
// settings of one job. For every property it answers three questions:
//
//   - MapType: which type name the field has
//   - IsNullable: whether the field is nullable
//   - Enum: whether an enum type must be declared for the field
//
// Type names are spelled by a Target. Two targets are provided:
//
//	| OpenAPI                 | Dart                   | Go              |
//	|-------------------------|------------------------|-----------------|
//	| string, date-time       | DateTime               | time.Time       |
//	| string with enum        | <Class><Property>      | <Class><Property> |
//	| string                  | String                 | string          |
//	| boolean                 | bool                   | bool            |
//	| number, integer         | int                    | int64           |
//	| object                  | Map<String, dynamic>   | map[string]any  |
//	| unspecified, any        | dynamic                | any             |
//	| array of T              | Iterable<T>            | []T             |
//	| $ref to object schema   | <prefix><Schema>       | <prefix><Schema> |
//
// Integers and numbers share one numeric type.
//
// Manual type corrections and nullability corrections from the job settings
// are keyed by config.PropertyKey{Class, Property}, where Class is the
// generated class name and Property the field-cased property name.
//
// # Example
//
//	flat, err := resolver.Resolve(doc.Graph, nil)
//	if err != nil {
//		return err
//	}
//	m := typemap.NewMapper(flat, job, typemap.Dart)
//	typ, err := m.MapType(prop, "createdAt", "ApiUser") // "DateTime"
package typemap
