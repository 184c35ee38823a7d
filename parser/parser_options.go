package parser

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/erraggy/oasmodels/internal/options"
)

// Option is a function that configures a parse operation
type Option func(*parseConfig) error

// parseConfig holds configuration for a parse operation
type parseConfig struct {
	// Input source (exactly one must be set)
	filePath *string
	reader   io.Reader
	bytes    []byte

	userAgent      string
	httpClient     *http.Client
	logger         Logger
	maxFileSize    int64
	deriveOptional bool

	// Source identification
	sourceName *string
}

// ParseWithOptions parses an OpenAPI document using functional options.
//
// Example:
//
//	doc, err := parser.ParseWithOptions(ctx,
//	    parser.WithFilePath("openapi.yaml"),
//	    parser.WithDeriveOptional(true),
//	)
func ParseWithOptions(ctx context.Context, opts ...Option) (*Document, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("parser: invalid options: %w", err)
	}

	p := &Parser{
		UserAgent:      cfg.userAgent,
		HTTPClient:     cfg.httpClient,
		Logger:         cfg.logger,
		MaxFileSize:    cfg.maxFileSize,
		DeriveOptional: cfg.deriveOptional,
	}

	var doc *Document
	switch {
	case cfg.filePath != nil:
		doc, err = p.Parse(ctx, *cfg.filePath)
	case cfg.reader != nil:
		doc, err = p.ParseReader(cfg.reader)
	default:
		doc, err = p.ParseBytes(cfg.bytes)
	}
	if err != nil {
		return nil, err
	}

	if cfg.sourceName != nil {
		doc.SourcePath = *cfg.sourceName
	}
	return doc, nil
}

// applyOptions applies option functions and validates configuration
func applyOptions(opts ...Option) (*parseConfig, error) {
	cfg := &parseConfig{}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if err := options.ExactlyOne(
		options.Named("WithFilePath", cfg.filePath != nil),
		options.Named("WithReader", cfg.reader != nil),
		options.Named("WithBytes", cfg.bytes != nil),
	); err != nil {
		return nil, err
	}
	return cfg, nil
}

// WithFilePath specifies a file path or URL as the input source
func WithFilePath(path string) Option {
	return func(cfg *parseConfig) error {
		cfg.filePath = &path
		return nil
	}
}

// WithReader specifies an io.Reader as the input source
func WithReader(r io.Reader) Option {
	return func(cfg *parseConfig) error {
		if r == nil {
			return fmt.Errorf("reader cannot be nil")
		}
		cfg.reader = r
		return nil
	}
}

// WithBytes specifies a byte slice as the input source
func WithBytes(data []byte) Option {
	return func(cfg *parseConfig) error {
		if data == nil {
			return fmt.Errorf("bytes cannot be nil")
		}
		cfg.bytes = data
		return nil
	}
}

// WithUserAgent sets the User-Agent used when fetching URLs
func WithUserAgent(ua string) Option {
	return func(cfg *parseConfig) error {
		cfg.userAgent = ua
		return nil
	}
}

// WithHTTPClient sets the HTTP client used when fetching URLs
func WithHTTPClient(client *http.Client) Option {
	return func(cfg *parseConfig) error {
		cfg.httpClient = client
		return nil
	}
}

// WithLogger sets the structured logger
func WithLogger(l Logger) Option {
	return func(cfg *parseConfig) error {
		cfg.logger = l
		return nil
	}
}

// WithMaxFileSize sets the maximum document size in bytes
func WithMaxFileSize(size int64) Option {
	return func(cfg *parseConfig) error {
		if size < 0 {
			return fmt.Errorf("maxFileSize cannot be negative: %d", size)
		}
		cfg.maxFileSize = size
		return nil
	}
}

// WithDeriveOptional enables marking properties that are absent from a
// schema's required list as optional
func WithDeriveOptional(enabled bool) Option {
	return func(cfg *parseConfig) error {
		cfg.deriveOptional = enabled
		return nil
	}
}

// WithSourceName overrides the SourcePath of the parsed Document
func WithSourceName(name string) Option {
	return func(cfg *parseConfig) error {
		cfg.sourceName = &name
		return nil
	}
}
