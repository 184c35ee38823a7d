// Package naming provides the identifier conventions used for generated
// file names, field names and class names.
//
// ApplyNaming is a pure string transform with no schema awareness. It is
// used by the generator when naming classes and files and by the type
// mapper when building class and enum type names.
//
// Singularize backs the type mapper's singular-reference rule, which maps
// an inline object property such as "addresses" to an existing "Address"
// schema.
package naming
