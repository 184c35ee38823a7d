// Package schemautil provides utilities for working with OpenAPI schema types.
//
// This package centralizes the handling of the `type` keyword across OAS
// versions: OAS 2.0/3.0 declare a single string while OAS 3.1+ allows an
// array that may include "null" for nullable support.
package schemautil

// TypeNull is the OAS 3.1 type entry that marks a schema as nullable.
const TypeNull = "null"

// Types normalizes a decoded `type` value, handling both string
// (OAS 2.0/3.0) and []any (OAS 3.1+) representations.
//
// Examples:
//   - OAS 3.0: "string" returns ["string"]
//   - OAS 3.1: ["string", "null"] returns ["string", "null"]
func Types(value any) []string {
	switch t := value.(type) {
	case string:
		if t == "" {
			return nil
		}
		return []string{t}
	case []any:
		result := make([]string, 0, len(t))
		for _, v := range t {
			if s, ok := v.(string); ok {
				result = append(result, s)
			}
		}
		return result
	case []string:
		return t
	}
	return nil
}

// PrimaryType returns the first non-null type.
// A list that contains only "null" returns "null".
//
// Returns an empty string if there are no types.
func PrimaryType(types []string) string {
	for _, t := range types {
		if t != TypeNull {
			return t
		}
	}
	if len(types) > 0 {
		return types[0]
	}
	return ""
}

// IsNullable reports whether the type list includes "null".
func IsNullable(types []string) bool {
	return HasType(types, TypeNull)
}

// HasType checks if the type list includes the specified type.
func HasType(types []string, targetType string) bool {
	for _, t := range types {
		if t == targetType {
			return true
		}
	}
	return false
}

// IsSingleType returns true if the list has exactly one type (not counting null).
func IsSingleType(types []string) bool {
	nonNullCount := 0
	for _, t := range types {
		if t != TypeNull {
			nonNullCount++
		}
	}
	return nonNullCount == 1
}
