// Package oaserrors provides structured error types for oasmodels.
//
// Import path: github.com/erraggy/oasmodels/oaserrors
//
// Every error that aborts a generation job is one of these types, so callers
// can tell a dangling $ref from a malformed composition with [errors.Is] and
// [errors.As]. Recoverable conditions are never returned as errors; they are
// reported as issues on the job's diagnostics sink instead.
//
// # Error Types
//
//   - [ParseError]: YAML/JSON parsing failures in documents or job files
//   - [ReferenceError]: missing schemas and composition cycles
//   - [CompositionError]: composed schemas that also declare properties
//   - [TypeError]: property types that cannot be mapped
//   - [ResourceLimitError]: oversized remote documents
//   - [ConfigError]: invalid job files or options
//
// # Sentinel Errors
//
//   - [ErrParse]: Matches any [ParseError]
//   - [ErrReference]: Matches any [ReferenceError]
//   - [ErrCircularReference]: Matches [ReferenceError] with IsCircular=true
//   - [ErrComposition]: Matches any [CompositionError]
//   - [ErrType]: Matches any [TypeError]
//   - [ErrResourceLimit]: Matches any [ResourceLimitError]
//   - [ErrConfig]: Matches any [ConfigError]
//
// # Usage
//
//	flat, err := resolver.Resolve(doc.Graph, sink)
//	if err != nil {
//	    var refErr *oaserrors.ReferenceError
//	    if errors.As(err, &refErr) {
//	        fmt.Println("missing schema:", refErr.Ref)
//	    }
//	}
package oaserrors
