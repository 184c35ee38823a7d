// Package commands provides CLI command handlers for oasmodels.
package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oasmodels"
	"github.com/erraggy/oasmodels/internal/cliutil"
	"github.com/erraggy/oasmodels/parser"
)

// Output format constants
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// StdinFilePath is the special file path used to indicate reading from stdin.
const StdinFilePath = "-"

// ValidateOutputFormat validates an output format and returns an error if invalid.
func ValidateOutputFormat(format string) error {
	if format != FormatText && format != FormatJSON && format != FormatYAML {
		return fmt.Errorf("invalid format '%s'. Valid formats: %s, %s, %s", format, FormatText, FormatJSON, FormatYAML)
	}
	return nil
}

// OutputStructured outputs data in the specified format (json or yaml) to stdout.
// Returns an error if marshaling fails.
func OutputStructured(data any, format string) error {
	var bytes []byte
	var err error

	switch format {
	case FormatJSON:
		bytes, err = json.MarshalIndent(data, "", "  ")
	case FormatYAML:
		bytes, err = yaml.Marshal(data)
	default:
		return fmt.Errorf("invalid format for structured output: %s", format)
	}

	if err != nil {
		return fmt.Errorf("marshaling to %s: %w", format, err)
	}

	fmt.Println(string(bytes))
	return nil
}

// Writef writes formatted output to the writer.
func Writef(w io.Writer, format string, args ...any) {
	cliutil.Writef(w, format, args...)
}

// NewLogger returns a logger writing slog text records to w. Debug records
// are kept only when verbose is set.
func NewLogger(w io.Writer, verbose bool) parser.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return parser.NewSlogAdapter(slog.New(handler))
}

// loadDocument parses the document at specPath, reading stdin for "-".
func loadDocument(ctx context.Context, specPath string, deriveOptional bool, logger parser.Logger) (*parser.Document, error) {
	opts := []parser.Option{
		parser.WithDeriveOptional(deriveOptional),
		parser.WithLogger(logger),
		parser.WithUserAgent(oasmodels.UserAgent()),
	}
	if specPath == StdinFilePath {
		opts = append(opts, parser.WithReader(os.Stdin))
	} else {
		opts = append(opts, parser.WithFilePath(specPath))
	}
	doc, err := parser.ParseWithOptions(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", specPath, err)
	}
	return doc, nil
}
