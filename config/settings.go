package config

import (
	"fmt"
	"maps"
	"strings"

	"github.com/erraggy/oasmodels/oaserrors"
)

// PropertyKey identifies one property of one generated class in the
// correction tables. In job files it is written as "Class.property".
type PropertyKey struct {
	// Class is the generated class name, including its prefix
	Class string
	// Property is the field-cased property name
	Property string
}

// String returns the "Class.property" form.
func (k PropertyKey) String() string {
	return k.Class + "." + k.Property
}

// ParsePropertyKey parses a "Class.property" key. The class part ends at the
// first dot, so property names may themselves contain dots.
func ParsePropertyKey(s string) (PropertyKey, error) {
	class, prop, ok := strings.Cut(s, ".")
	if !ok || class == "" || prop == "" {
		return PropertyKey{}, fmt.Errorf("expected \"Class.property\", got %q", s)
	}
	return PropertyKey{Class: class, Property: prop}, nil
}

// Settings are the resolution settings applied to one schema.
type Settings struct {
	// ClassNamePrefix is prepended to the class names of generated models
	ClassNamePrefix string
	// Ignore skips the schema entirely
	Ignore bool
	// ImportPrefix is the package path other models use to import this one
	ImportPrefix string
	// OutputDirectory is where the model file is written
	OutputDirectory string
	// TypeCorrections force a literal type for a property
	TypeCorrections map[PropertyKey]string
	// NullabilityCorrections force the nullability of a property
	NullabilityCorrections map[PropertyKey]bool
}

// settingsFile is the on-disk form of Settings.
type settingsFile struct {
	ClassNamePrefix        string            `yaml:"classNamePrefix,omitempty"`
	Ignore                 bool              `yaml:"ignore,omitempty"`
	ImportPrefix           string            `yaml:"importPrefix,omitempty"`
	OutputDirectory        string            `yaml:"outputDirectory,omitempty"`
	TypeCorrections        map[string]string `yaml:"typeCorrections,omitempty"`
	NullabilityCorrections map[string]bool   `yaml:"nullabilityCorrections,omitempty"`
}

// UnmarshalYAML decodes settings and parses correction keys.
func (s *Settings) UnmarshalYAML(unmarshal func(any) error) error {
	var raw settingsFile
	if err := unmarshal(&raw); err != nil {
		return err
	}

	out := Settings{
		ClassNamePrefix: raw.ClassNamePrefix,
		Ignore:          raw.Ignore,
		ImportPrefix:    raw.ImportPrefix,
		OutputDirectory: raw.OutputDirectory,
	}
	if len(raw.TypeCorrections) > 0 {
		out.TypeCorrections = make(map[PropertyKey]string, len(raw.TypeCorrections))
		for k, v := range raw.TypeCorrections {
			key, err := ParsePropertyKey(k)
			if err != nil {
				return &oaserrors.ConfigError{Option: "typeCorrections", Value: k, Cause: err}
			}
			out.TypeCorrections[key] = v
		}
	}
	if len(raw.NullabilityCorrections) > 0 {
		out.NullabilityCorrections = make(map[PropertyKey]bool, len(raw.NullabilityCorrections))
		for k, v := range raw.NullabilityCorrections {
			key, err := ParsePropertyKey(k)
			if err != nil {
				return &oaserrors.ConfigError{Option: "nullabilityCorrections", Value: k, Cause: err}
			}
			out.NullabilityCorrections[key] = v
		}
	}
	*s = out
	return nil
}

// MarshalYAML encodes settings with "Class.property" correction keys.
func (s Settings) MarshalYAML() (any, error) {
	raw := settingsFile{
		ClassNamePrefix: s.ClassNamePrefix,
		Ignore:          s.Ignore,
		ImportPrefix:    s.ImportPrefix,
		OutputDirectory: s.OutputDirectory,
	}
	if len(s.TypeCorrections) > 0 {
		raw.TypeCorrections = make(map[string]string, len(s.TypeCorrections))
		for k, v := range s.TypeCorrections {
			raw.TypeCorrections[k.String()] = v
		}
	}
	if len(s.NullabilityCorrections) > 0 {
		raw.NullabilityCorrections = make(map[string]bool, len(s.NullabilityCorrections))
		for k, v := range s.NullabilityCorrections {
			raw.NullabilityCorrections[k.String()] = v
		}
	}
	return raw, nil
}

// Overlay returns s with every field set in o applied on top. Strings
// override when non-empty, Ignore is sticky, and correction tables are
// merged with o's entries winning.
func (s Settings) Overlay(o Settings) Settings {
	out := s
	if o.ClassNamePrefix != "" {
		out.ClassNamePrefix = o.ClassNamePrefix
	}
	if o.ImportPrefix != "" {
		out.ImportPrefix = o.ImportPrefix
	}
	if o.OutputDirectory != "" {
		out.OutputDirectory = o.OutputDirectory
	}
	out.Ignore = s.Ignore || o.Ignore
	out.TypeCorrections = mergeMaps(s.TypeCorrections, o.TypeCorrections)
	out.NullabilityCorrections = mergeMaps(s.NullabilityCorrections, o.NullabilityCorrections)
	return out
}

func mergeMaps[V any](base, over map[PropertyKey]V) map[PropertyKey]V {
	if len(over) == 0 {
		return base
	}
	if len(base) == 0 {
		return over
	}
	out := make(map[PropertyKey]V, len(base)+len(over))
	maps.Copy(out, base)
	maps.Copy(out, over)
	return out
}
