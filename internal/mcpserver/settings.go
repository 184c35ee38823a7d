package mcpserver

import (
	"github.com/erraggy/oasmodels/config"
	"github.com/erraggy/oasmodels/internal/issues"
)

// settingsInput is the job configuration accepted by the mapping tools.
type settingsInput struct {
	Target                  string            `json:"target,omitempty"                    jsonschema:"Output language: dart or go (default from OASMODELS_TARGET)"`
	Package                 string            `json:"package,omitempty"                   jsonschema:"Go package name (go target, default models)"`
	ClassNamePrefix         string            `json:"class_name_prefix,omitempty"         jsonschema:"Prefix of every generated class name"`
	ImportPrefix            string            `json:"import_prefix,omitempty"             jsonschema:"Dart package path other models are imported from"`
	TypeCorrections         map[string]string `json:"type_corrections,omitempty"          jsonschema:"Type overrides keyed by Class.property"`
	NullabilityCorrections  map[string]bool   `json:"nullability_corrections,omitempty"   jsonschema:"Nullability overrides keyed by Class.property"`
	InferSingularReferences *bool             `json:"infer_singular_references,omitempty" jsonschema:"Map an inline object property to the schema named after its singular form (default true)"`
	DeriveOptional          bool              `json:"derive_optional,omitempty"           jsonschema:"Mark properties missing from a schema's required list as optional"`
}

// job builds a validated job for an already loaded document.
func (in settingsInput) job(name string) (*config.Job, error) {
	prefix := in.ClassNamePrefix
	if prefix == "" {
		prefix = cfg.ClassNamePrefix
	}
	target := config.Target(in.Target)
	if target == "" {
		target = cfg.Target
	}

	job := &config.Job{
		Name:                       name,
		Source:                     name,
		Target:                     target,
		Package:                    in.Package,
		InferSingularReferences:    in.InferSingularReferences,
		DeriveOptionalFromRequired: in.DeriveOptional,
		Default: config.Settings{
			ClassNamePrefix:        prefix,
			ImportPrefix:           in.ImportPrefix,
			TypeCorrections:        make(map[config.PropertyKey]string, len(in.TypeCorrections)),
			NullabilityCorrections: make(map[config.PropertyKey]bool, len(in.NullabilityCorrections)),
		},
	}
	for k, v := range in.TypeCorrections {
		key, err := config.ParsePropertyKey(k)
		if err != nil {
			return nil, err
		}
		job.Default.TypeCorrections[key] = v
	}
	for k, v := range in.NullabilityCorrections {
		key, err := config.ParsePropertyKey(k)
		if err != nil {
			return nil, err
		}
		job.Default.NullabilityCorrections[key] = v
	}

	job.ApplyDefaults()
	if err := job.Validate(); err != nil {
		return nil, err
	}
	return job, nil
}

// issueStrings formats issues for tool output.
func issueStrings(list []issues.Issue) []string {
	out := makeSlice[string](len(list))
	for _, i := range list {
		out = append(out, i.String())
	}
	return out
}
