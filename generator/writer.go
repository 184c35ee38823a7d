package generator

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/erraggy/oasmodels/internal/fileutil"
)

// WriteFiles writes all generated files below the current directory, each
// into the outputDirectory of its schema.
func (r *Result) WriteFiles() error {
	return r.WriteFilesTo("")
}

// WriteFilesTo writes all generated files below root. Output directories
// are created if they don't exist.
func (r *Result) WriteFilesTo(root string) error {
	for i := range r.Files {
		file := &r.Files[i]
		safeName := filepath.Base(file.Name)
		if safeName != file.Name {
			return fmt.Errorf("invalid file name %q: must not contain path separators", file.Name)
		}
		if err := file.WriteFile(filepath.Join(root, file.Dir, safeName)); err != nil {
			return fmt.Errorf("failed to write file %s: %w", file.Name, err)
		}
	}
	return nil
}

// WriteFile writes a single generated file to the specified path.
func (f *GeneratedFile) WriteFile(path string) error {
	// Ensure parent directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, fileutil.DirReadableByAll); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	if err := os.WriteFile(path, f.Content, fileutil.ReadableByAll); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}
