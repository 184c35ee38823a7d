package parser

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oasmodels"
	"github.com/erraggy/oasmodels/oaserrors"
)

// DefaultMaxFileSize is the largest document Parse reads from a file or URL.
const DefaultMaxFileSize int64 = 10 * 1024 * 1024

// Parser loads OpenAPI documents into a schema Graph.
type Parser struct {
	// UserAgent is the User-Agent string used when fetching URLs.
	// Defaults to oasmodels.UserAgent() if not set.
	UserAgent string
	// HTTPClient is the HTTP client used for fetching URLs.
	// If nil, a default client with 30-second timeout is created.
	HTTPClient *http.Client
	// MaxFileSize is the maximum document size in bytes (0 means DefaultMaxFileSize)
	MaxFileSize int64
	// DeriveOptional marks properties missing from a schema's non-empty
	// `required` list as optional
	DeriveOptional bool
	// Logger is the structured logger for debug output
	// If nil, logging is disabled (default)
	Logger Logger
}

// New creates a new Parser with default settings.
func New() *Parser {
	return &Parser{}
}

func (p *Parser) log() Logger {
	return OrNop(p.Logger)
}

func (p *Parser) maxFileSize() int64 {
	if p.MaxFileSize > 0 {
		return p.MaxFileSize
	}
	return DefaultMaxFileSize
}

// Document is a parsed OpenAPI document reduced to what model generation needs.
type Document struct {
	// SourcePath is the file path or URL the document was read from
	SourcePath string
	// Version is the openapi (or swagger) version string
	Version string
	// Title is info.title
	Title string
	// Graph holds the component schemas (definitions for OAS 2) in source order
	Graph *Graph
	// Responses holds the schemas of operation responses in source order
	Responses []*Response
}

// Response is the schema returned by one operation for one status code.
type Response struct {
	Path   string
	Method string
	Status string
	// Schema is the response body schema. Its Name is empty until the caller
	// gives it one.
	Schema *Schema
}

// ResponseSchema returns the response schema declared for the given
// operation. The method is matched case-insensitively.
func (d *Document) ResponseSchema(path, method, status string) (*Schema, bool) {
	method = strings.ToLower(method)
	for _, r := range d.Responses {
		if r.Path == path && r.Method == method && r.Status == status {
			return r.Schema, true
		}
	}
	return nil, false
}

// IsURL reports whether source is an http(s) URL.
func IsURL(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// Parse parses an OpenAPI document from a file path or URL.
// For URLs (http:// or https://), the content is fetched and parsed.
func (p *Parser) Parse(ctx context.Context, source string) (*Document, error) {
	start := time.Now()
	var data []byte
	var err error
	if IsURL(source) {
		data, err = p.fetchURL(ctx, source)
	} else {
		data, err = p.readFile(source)
	}
	if err != nil {
		return nil, err
	}
	p.log().Debug("loaded document", "source", source, "bytes", len(data), "elapsed", time.Since(start))
	return p.parse(data, source)
}

// ParseReader parses an OpenAPI document from an io.Reader.
// The resulting SourcePath is "ParseReader.yaml".
func (p *Parser) ParseReader(r io.Reader) (*Document, error) {
	limit := p.maxFileSize()
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, fmt.Errorf("parser: failed to read data: %w", err)
	}
	if int64(len(data)) > limit {
		return nil, sizeError(limit, int64(len(data)))
	}
	return p.parse(data, "ParseReader.yaml")
}

// ParseBytes parses an OpenAPI document from a byte slice.
// The resulting SourcePath is "ParseBytes.yaml".
func (p *Parser) ParseBytes(data []byte) (*Document, error) {
	return p.parse(data, "ParseBytes.yaml")
}

// ParseBytes parses data with a default Parser.
func ParseBytes(data []byte) (*Document, error) {
	return New().ParseBytes(data)
}

func (p *Parser) parse(data []byte, sourcePath string) (*Document, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, &oaserrors.ParseError{Path: sourcePath, Message: "document is empty"}
	}
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, &oaserrors.ParseError{Path: sourcePath, Message: "invalid YAML or JSON", Cause: err}
	}
	d := &decoder{sourcePath: sourcePath, deriveOptional: p.DeriveOptional}
	doc, err := d.decodeDocument(&root)
	if err != nil {
		return nil, err
	}
	p.log().Debug("parsed document",
		"source", sourcePath,
		"version", doc.Version,
		"schemas", doc.Graph.Len(),
		"responses", len(doc.Responses))
	return doc, nil
}

func (p *Parser) readFile(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("parser: failed to read file: %w", err)
	}
	if info.Size() > p.maxFileSize() {
		return nil, sizeError(p.maxFileSize(), info.Size())
	}
	data, err := os.ReadFile(path) //nolint:gosec // path is user-provided input (CLI, job file)
	if err != nil {
		return nil, fmt.Errorf("parser: failed to read file: %w", err)
	}
	return data, nil
}

func (p *Parser) fetchURL(ctx context.Context, urlStr string) ([]byte, error) {
	// Use custom client if provided, otherwise create default
	client := p.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, fmt.Errorf("parser: failed to create request: %w", err)
	}

	userAgent := p.UserAgent
	if userAgent == "" {
		userAgent = oasmodels.UserAgent()
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req) //nolint:gosec // URL is user-provided input (CLI, job file)
	if err != nil {
		return nil, fmt.Errorf("parser: failed to fetch URL: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("parser: HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	limit := p.maxFileSize()
	data, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, fmt.Errorf("parser: failed to read response body: %w", err)
	}
	if int64(len(data)) > limit {
		return nil, sizeError(limit, int64(len(data)))
	}
	return data, nil
}

func sizeError(limit, actual int64) error {
	return &oaserrors.ResourceLimitError{
		ResourceType: "document size",
		Limit:        limit,
		Actual:       actual,
	}
}
