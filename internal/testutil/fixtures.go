// Package testutil provides test utilities and fixtures for unit tests.
package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oasmodels/parser"
)

// PetstoreYAML is a small OAS 3.0 document exercising every schema shape the
// resolver and the type mapper handle: plain objects, multi-level allOf,
// enums, arrays of references, date-times and singular object inference.
const PetstoreYAML = `openapi: 3.0.3
info:
  title: Petstore
  version: 1.0.0
paths:
  /pets/{id}:
    get:
      responses:
        "200":
          content:
            application/json:
              schema:
                type: object
                properties:
                  pet: {$ref: '#/components/schemas/Pet'}
                  requestId: {type: string}
components:
  schemas:
    Entity:
      type: object
      properties:
        id: {type: integer}
        createdAt: {type: string, format: date-time}
    Named:
      allOf:
        - $ref: '#/components/schemas/Entity'
        - type: object
          properties:
            name: {type: string}
    Pet:
      allOf:
        - $ref: '#/components/schemas/Named'
        - type: object
          properties:
            id: {type: string}
            status: {type: string, enum: [available, sold]}
            tags:
              type: array
              items: {$ref: '#/components/schemas/Tag'}
            owner: {$ref: '#/components/schemas/Owner', nullable: true}
            category:
              type: object
              properties:
                label: {type: string}
            attributes: {type: object}
            extra: {}
    Tag:
      type: object
      properties:
        label: {type: string}
    Category:
      type: object
      properties:
        label: {type: string}
    Owner:
      type: object
      properties:
        email: {type: string}
        _links: {type: object}
    Color:
      type: string
      enum: [red, green]
    Empty:
      type: object
`

// NewSimpleGraph creates a graph with a single User object schema holding
// an integer id and a string email.
func NewSimpleGraph() *parser.Graph {
	props := parser.NewProperties()
	props.Set("id", &parser.Property{Type: parser.TypeInteger})
	props.Set("email", &parser.Property{Type: parser.TypeString})

	g := parser.NewGraph()
	g.Add(&parser.Schema{
		Name:       "User",
		Kind:       parser.KindObject,
		Type:       parser.TypeObject,
		Properties: props,
	})
	return g
}

// ParseYAML parses an inline document and fails the test on error.
func ParseYAML(t *testing.T, src string) *parser.Document {
	t.Helper()

	doc, err := parser.ParseBytes([]byte(src))
	if err != nil {
		t.Fatalf("Failed to parse document: %v", err)
	}
	return doc
}

// WriteTempFile writes data to name inside a per-test temporary directory.
// Returns the path to the file.
// The file is automatically cleaned up when the test completes (via t.TempDir).
func WriteTempFile(t *testing.T, name string, data []byte) string {
	t.Helper()

	tmpFile := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(tmpFile, data, 0600); err != nil {
		t.Fatalf("Failed to write temporary file: %v", err)
	}
	return tmpFile
}

// WriteTempYAML marshals a value to YAML and writes it to a temporary file.
// Returns the path to the temporary file.
func WriteTempYAML(t *testing.T, v any) string {
	t.Helper()

	data, err := yaml.Marshal(v)
	if err != nil {
		t.Fatalf("Failed to marshal value to YAML: %v", err)
	}
	return WriteTempFile(t, "test.yaml", data)
}

// WriteTempJSON marshals a value to JSON and writes it to a temporary file.
// Returns the path to the temporary file.
func WriteTempJSON(t *testing.T, v any) string {
	t.Helper()

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		t.Fatalf("Failed to marshal value to JSON: %v", err)
	}
	return WriteTempFile(t, "test.json", data)
}
