package generator

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/erraggy/oasmodels/config"
	"github.com/erraggy/oasmodels/internal/issues"
	"github.com/erraggy/oasmodels/internal/severity"
	"github.com/erraggy/oasmodels/parser"
	"github.com/erraggy/oasmodels/resolver"
	"github.com/erraggy/oasmodels/typemap"
)

// NoDataMessage is reported for an Object schema without properties.
const NoDataMessage = "had no data"

// GeneratedFile represents a single generated file
type GeneratedFile struct {
	// Schema is the schema (or path entry name) the file was generated from
	Schema string
	// Dir is the outputDirectory of the schema
	Dir string
	// Name is the file name (e.g., "pet_store.dart")
	Name string
	// Content is the generated source code
	Content []byte
}

// Path returns the file path relative to the output root.
func (f *GeneratedFile) Path() string {
	return filepath.Join(f.Dir, f.Name)
}

// Result contains the files generated for one job.
type Result struct {
	// Job is the job name
	Job string
	// Target is the language the files are written in
	Target config.Target
	// SourceVersion is the openapi (or swagger) version of the document
	SourceVersion string
	// Title is the document title
	Title string
	// Files contains all generated files, in schema order
	Files []GeneratedFile
	// Skipped lists the schemas ignored by the job settings
	Skipped []string
	// Issues contains all warnings reported while resolving and emitting
	Issues []issues.Issue
	// WarningCount is the total number of warnings
	WarningCount int
	// LoadTime is the time taken to load the source document
	LoadTime time.Duration
	// GenerateTime is the time taken to resolve, map and render
	GenerateTime time.Duration
}

// HasWarnings returns true if there are any warnings
func (r *Result) HasWarnings() bool {
	return r.WarningCount > 0
}

// GetFile returns the generated file for the given schema, or nil if not found
func (r *Result) GetFile(schema string) *GeneratedFile {
	for i := range r.Files {
		if r.Files[i].Schema == schema {
			return &r.Files[i]
		}
	}
	return nil
}

// Generator runs jobs: it loads the source document, resolves its schemas,
// maps their properties and renders one file per Object schema.
type Generator struct {
	// UserAgent is the User-Agent string used when fetching URLs
	UserAgent string
	// HTTPClient is the client used when fetching URLs
	HTTPClient *http.Client
	// MaxFileSize limits the size of source documents (0 means parser default)
	MaxFileSize int64
	// Workers limits the number of jobs RunJobs processes at once
	// (0 means one per CPU)
	Workers int
	// Logger receives progress messages and warnings
	// If nil, logging is disabled (default)
	Logger parser.Logger
}

// New creates a new Generator instance with default settings
func New() *Generator {
	return &Generator{}
}

func (g *Generator) log() parser.Logger {
	return parser.OrNop(g.Logger)
}

// GenerateJob loads the job's source document and generates its models.
// Any resolution or mapping error aborts the job. Defaults are applied to a
// copy of job.
func (g *Generator) GenerateJob(ctx context.Context, job *config.Job) (*Result, error) {
	job = job.Clone()
	job.ApplyDefaults()
	if err := job.Validate(); err != nil {
		return nil, err
	}

	p := parser.New()
	p.UserAgent = g.UserAgent
	p.HTTPClient = g.HTTPClient
	p.MaxFileSize = g.MaxFileSize
	p.DeriveOptional = job.DeriveOptionalFromRequired
	p.Logger = g.Logger

	start := time.Now()
	doc, err := p.Parse(ctx, job.Source)
	if err != nil {
		return nil, fmt.Errorf("generator: job %s: %w", job.Name, err)
	}
	loadTime := time.Since(start)

	result, err := g.GenerateDocument(doc, job)
	if err != nil {
		return nil, err
	}
	result.LoadTime = loadTime
	return result, nil
}

// GenerateDocument generates the models of an already parsed document.
func (g *Generator) GenerateDocument(doc *parser.Document, job *config.Job) (*Result, error) {
	start := time.Now()
	target, err := typemap.TargetFor(job.Target)
	if err != nil {
		return nil, err
	}

	log := g.log().With("job", job.Name)
	collector := issues.NewCollector(func(i issues.Issue) {
		log.Warn(i.Message, "path", i.Path)
	})

	r := resolver.New(doc.Graph, collector)
	flat, err := r.Graph()
	if err != nil {
		return nil, fmt.Errorf("generator: job %s: %w", job.Name, err)
	}

	mapper := typemap.NewMapper(flat, job, target)
	e := &emitter{
		job:    job,
		target: target.Name(),
		log:    log,
		sink:   collector,
		builder: &modelBuilder{
			mapper:  mapper,
			job:     job,
			sink:    collector,
			pkgName: job.Package,
		},
		result: &Result{
			Job:           job.Name,
			Target:        target.Name(),
			SourceVersion: doc.Version,
			Title:         doc.Title,
		},
	}

	for _, s := range flat.All() {
		if s.Kind != parser.KindObject {
			log.Debug("not an object schema", "schema", s.Name, "kind", s.Kind.String())
			continue
		}
		if err := e.emit(s); err != nil {
			return nil, fmt.Errorf("generator: job %s: %w", job.Name, err)
		}
	}

	for i, entry := range job.Paths {
		s, err := e.pathSchema(doc, r, i, entry)
		if err != nil {
			return nil, fmt.Errorf("generator: job %s: %w", job.Name, err)
		}
		if s == nil {
			continue
		}
		if err := e.emit(s); err != nil {
			return nil, fmt.Errorf("generator: job %s: %w", job.Name, err)
		}
	}

	res := e.result
	res.Issues = collector.Issues()
	res.WarningCount = collector.Count(severity.SeverityWarning)
	res.GenerateTime = time.Since(start)
	return res, nil
}

// emitter renders the models of one job.
type emitter struct {
	job     *config.Job
	target  config.Target
	log     parser.Logger
	sink    issues.Sink
	builder *modelBuilder
	result  *Result
}

func (e *emitter) emit(s *parser.Schema) error {
	settings := e.job.SettingsFor(s.Name)
	if settings.Ignore {
		e.log.Info("Skipped " + s.Name)
		e.result.Skipped = append(e.result.Skipped, s.Name)
		return nil
	}
	if s.Properties.Len() == 0 {
		e.sink.Report(issues.Issue{
			Path:     s.Name,
			Schema:   s.Name,
			Message:  fmt.Sprintf("Schema %s %s", s.Name, NoDataMessage),
			Severity: severity.SeverityWarning,
		})
		return nil
	}

	e.log.Info("Converting " + s.Name + "...")
	model, err := e.builder.build(s)
	if err != nil {
		return err
	}
	content, err := render(e.target, model)
	if err != nil {
		return fmt.Errorf("render %s: %w", s.Name, err)
	}
	if e.target == config.TargetGo {
		formatted, err := formatAndFixImports(model.FileName+".go", content)
		if err != nil {
			e.sink.Report(issues.Issue{
				Path:     s.Name,
				Schema:   s.Name,
				Message:  fmt.Sprintf("output left unformatted: %v", err),
				Severity: severity.SeverityWarning,
			})
		} else {
			content = formatted
		}
	}
	e.result.Files = append(e.result.Files, GeneratedFile{
		Schema:  s.Name,
		Dir:     settings.OutputDirectory,
		Name:    model.FileName + fileExtensions[e.target],
		Content: content,
	})
	return nil
}

// pathSchema resolves the response schema selected by a path entry. It
// returns nil, after reporting a warning, when the entry matches nothing.
func (e *emitter) pathSchema(doc *parser.Document, r *resolver.Resolver, i int, entry config.PathEntry) (*parser.Schema, error) {
	location := fmt.Sprintf("paths[%d]", i)
	schema, ok := doc.ResponseSchema(entry.Path, entry.Method, entry.Status)
	if !ok {
		e.sink.Report(issues.Issue{
			Path:     location,
			Schema:   entry.Name,
			Message:  fmt.Sprintf("no JSON response schema for %s %s %s", entry.Method, entry.Path, entry.Status),
			Severity: severity.SeverityWarning,
		})
		return nil, nil
	}

	named := *schema
	named.Name = entry.Name
	flat, err := r.ResolveSchema(&named)
	if err != nil {
		return nil, err
	}
	if flat.Kind != parser.KindObject {
		e.sink.Report(issues.Issue{
			Path:     location,
			Schema:   entry.Name,
			Message:  fmt.Sprintf("response schema of %s %s %s is not an object", entry.Method, entry.Path, entry.Status),
			Severity: severity.SeverityWarning,
		})
		return nil, nil
	}
	return flat, nil
}
