package typemap

import (
	"fmt"

	"github.com/erraggy/oasmodels/config"
	"github.com/erraggy/oasmodels/oaserrors"
)

// Target spells the abstract types of the mapper in one output language.
type Target interface {
	// Name identifies the target in job files
	Name() config.Target
	// DateTime is the type of date-time strings
	DateTime() string
	// Text is the type of plain strings
	Text() string
	// Bool is the boolean type
	Bool() string
	// Number is the single numeric type used for both integer and number
	Number() string
	// Map is the untyped string-keyed map type
	Map() string
	// Dynamic is the fully untyped type
	Dynamic() string
	// Sequence wraps an element type into a sequence type
	Sequence(elem string) string
}

// Dart maps to the types used by json_serializable models.
var Dart Target = dartTarget{}

// Go maps to Go types suitable for encoding/json.
var Go Target = goTarget{}

// TargetFor returns the Target registered for name.
func TargetFor(name config.Target) (Target, error) {
	switch name {
	case config.TargetDart, "":
		return Dart, nil
	case config.TargetGo:
		return Go, nil
	}
	return nil, &oaserrors.ConfigError{
		Option:  "target",
		Value:   name,
		Message: fmt.Sprintf("must be one of %v", config.Targets),
	}
}

type dartTarget struct{}

func (dartTarget) Name() config.Target { return config.TargetDart }
func (dartTarget) DateTime() string    { return "DateTime" }
func (dartTarget) Text() string        { return "String" }
func (dartTarget) Bool() string        { return "bool" }
func (dartTarget) Number() string      { return "int" }
func (dartTarget) Map() string         { return "Map<String, dynamic>" }
func (dartTarget) Dynamic() string     { return "dynamic" }

func (dartTarget) Sequence(elem string) string {
	return "Iterable<" + elem + ">"
}

type goTarget struct{}

func (goTarget) Name() config.Target { return config.TargetGo }
func (goTarget) DateTime() string    { return "time.Time" }
func (goTarget) Text() string        { return "string" }
func (goTarget) Bool() string        { return "bool" }
func (goTarget) Number() string      { return "int64" }
func (goTarget) Map() string         { return "map[string]any" }
func (goTarget) Dynamic() string     { return "any" }

func (goTarget) Sequence(elem string) string {
	return "[]" + elem
}
