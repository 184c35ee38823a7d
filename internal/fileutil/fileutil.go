// Package fileutil holds the permission modes used for generated output.
package fileutil

import "os"

// ReadableByAll is the file permission mode for generated source code
// files intended to be read by build tools and other users.
const ReadableByAll os.FileMode = 0o644

// DirReadableByAll is the permission mode for output directories.
const DirReadableByAll os.FileMode = 0o755
