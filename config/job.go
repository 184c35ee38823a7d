package config

import (
	"errors"
	"fmt"
	"go/token"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oasmodels/internal/httputil"
	"github.com/erraggy/oasmodels/oaserrors"
)

// Target is the language generated models are written in.
type Target string

const (
	// TargetDart emits json_serializable Dart classes.
	TargetDart Target = "dart"
	// TargetGo emits Go structs with json tags.
	TargetGo Target = "go"
)

// Targets lists the supported targets.
var Targets = []Target{TargetDart, TargetGo}

// DefaultGoPackage is the package name used for Go output when none is set.
const DefaultGoPackage = "models"

// PathEntry selects one operation response to emit as a model.
type PathEntry struct {
	Path   string `yaml:"path"   json:"path"`
	Method string `yaml:"method" json:"method"`
	Status string `yaml:"status" json:"status"`
	// Name is the schema name given to the response body
	Name string `yaml:"name" json:"name"`
}

// Job describes one generation run: a source document, a target and the
// settings applied to its schemas.
type Job struct {
	// Name identifies the job in logs; Load sets it from the file name
	Name string `yaml:"name,omitempty"`
	// Path is the job file the job was loaded from
	Path string `yaml:"-"`

	// Source is a file path or http(s) URL of the OpenAPI document
	Source string `yaml:"source"`
	// Target selects the output language (default dart)
	Target Target `yaml:"target,omitempty"`
	// Package is the Go package name of generated files
	Package string `yaml:"package,omitempty"`
	// InferSingularReferences enables mapping an inline object property to
	// the schema named after its singular form (default true)
	InferSingularReferences *bool `yaml:"inferSingularReferences,omitempty"`
	// DeriveOptionalFromRequired marks properties missing from a schema's
	// required list as optional
	DeriveOptionalFromRequired bool `yaml:"deriveOptionalFromRequired,omitempty"`

	// Default applies to every schema
	Default Settings `yaml:"default"`
	// Schemas holds per-schema settings overlaid on Default
	Schemas map[string]Settings `yaml:"schemas,omitempty"`
	// Paths lists operation responses to emit in addition to component schemas
	Paths []PathEntry `yaml:"paths,omitempty"`
}

// InferSingular reports whether the singular-reference rule is enabled.
func (j *Job) InferSingular() bool {
	return j.InferSingularReferences == nil || *j.InferSingularReferences
}

// SettingsFor returns the settings of the named schema: Default overlaid with
// the matching Schemas entry. The entry is matched exactly first, then
// ignoring case.
func (j *Job) SettingsFor(name string) Settings {
	if s, ok := j.Schemas[name]; ok {
		return j.Default.Overlay(s)
	}
	for _, k := range slices.Sorted(maps.Keys(j.Schemas)) {
		if strings.EqualFold(k, name) {
			return j.Default.Overlay(j.Schemas[k])
		}
	}
	return j.Default
}

// TypeCorrections returns the type corrections of every settings block in
// one table. Keys name their class, so blocks cannot collide; per-schema
// entries win over Default.
func (j *Job) TypeCorrections() map[PropertyKey]string {
	out := maps.Clone(j.Default.TypeCorrections)
	if out == nil {
		out = make(map[PropertyKey]string)
	}
	for _, s := range j.Schemas {
		maps.Copy(out, s.TypeCorrections)
	}
	return out
}

// NullabilityCorrections returns the nullability corrections of every
// settings block in one table.
func (j *Job) NullabilityCorrections() map[PropertyKey]bool {
	out := maps.Clone(j.Default.NullabilityCorrections)
	if out == nil {
		out = make(map[PropertyKey]bool)
	}
	for _, s := range j.Schemas {
		maps.Copy(out, s.NullabilityCorrections)
	}
	return out
}

// Clone returns a copy of the job that can be modified without affecting j.
// Settings are shared; they are never modified after loading.
func (j *Job) Clone() *Job {
	c := *j
	c.Schemas = maps.Clone(j.Schemas)
	c.Paths = slices.Clone(j.Paths)
	return &c
}

// ApplyDefaults fills in unset fields. Parse calls it; jobs built in code
// should call it before Validate.
func (j *Job) ApplyDefaults() {
	if j.Target == "" {
		j.Target = TargetDart
	}
	j.Target = Target(strings.ToLower(string(j.Target)))
	if j.Target == TargetGo && j.Package == "" {
		j.Package = DefaultGoPackage
	}
	for i := range j.Paths {
		j.Paths[i].Method = strings.ToLower(j.Paths[i].Method)
	}
}

// Validate checks the job for configuration errors.
func (j *Job) Validate() error {
	if j.Source == "" {
		return &oaserrors.ConfigError{Option: "source", Message: "is required"}
	}
	if !slices.Contains(Targets, j.Target) {
		return &oaserrors.ConfigError{Option: "target", Value: j.Target, Message: fmt.Sprintf("must be one of %v", Targets)}
	}
	if j.Target == TargetGo && !token.IsIdentifier(j.Package) {
		return &oaserrors.ConfigError{Option: "package", Value: j.Package, Message: "must be a valid Go package name"}
	}
	for i, p := range j.Paths {
		option := fmt.Sprintf("paths[%d]", i)
		if p.Path == "" || !strings.HasPrefix(p.Path, "/") {
			return &oaserrors.ConfigError{Option: option + ".path", Value: p.Path, Message: "must start with /"}
		}
		if !httputil.IsMethod(p.Method) {
			return &oaserrors.ConfigError{Option: option + ".method", Value: p.Method, Message: "unknown HTTP method"}
		}
		if !httputil.ValidateStatusCode(p.Status) {
			return &oaserrors.ConfigError{Option: option + ".status", Value: p.Status, Message: "invalid status code"}
		}
		if p.Name == "" {
			return &oaserrors.ConfigError{Option: option + ".name", Message: "is required"}
		}
	}
	return nil
}

// Parse decodes a job from YAML or JSON data and validates it.
func Parse(data []byte) (*Job, error) {
	var job Job
	if err := yaml.Unmarshal(data, &job); err != nil {
		var cerr *oaserrors.ConfigError
		if errors.As(err, &cerr) {
			return nil, cerr
		}
		return nil, &oaserrors.ParseError{Message: "invalid job file", Cause: err}
	}
	job.ApplyDefaults()
	if err := job.Validate(); err != nil {
		return nil, err
	}
	return &job, nil
}

// Load reads and validates a job file. The job is named after the file
// unless it sets a name.
func Load(path string) (*Job, error) {
	data, err := os.ReadFile(path) //nolint:gosec // job path is user-provided input
	if err != nil {
		return nil, fmt.Errorf("config: failed to read job file: %w", err)
	}
	job, err := Parse(data)
	if err != nil {
		var perr *oaserrors.ParseError
		if errors.As(err, &perr) {
			perr.Path = path
		}
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	job.Path = path
	if job.Name == "" {
		job.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return job, nil
}

// JobFileExtensions are the extensions LoadDir picks up.
var JobFileExtensions = []string{".yaml", ".yml", ".json"}

// LoadDir loads every job file in dir, sorted by file name.
func LoadDir(dir string) ([]*Job, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("config: failed to read job directory: %w", err)
	}
	var jobs []*Job
	for _, e := range entries {
		if e.IsDir() || !slices.Contains(JobFileExtensions, strings.ToLower(filepath.Ext(e.Name()))) {
			continue
		}
		job, err := Load(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	if len(jobs) == 0 {
		return nil, &oaserrors.ConfigError{Option: "jobs", Value: dir, Message: "no job files found"}
	}
	return jobs, nil
}
