package generator

import (
	"embed"
	"strconv"
	"strings"
	"text/template"

	"github.com/erraggy/oasmodels/config"
	"github.com/erraggy/oasmodels/internal/naming"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates *template.Template

func init() {
	var err error
	templates, err = template.New("").
		Funcs(templateFuncs).
		ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		panic(err)
	}
}

// templateFuncs provides custom functions for templates
var templateFuncs = template.FuncMap{
	"quote":      strconv.Quote,
	"dartString": dartString,
	"dartDoc":    dartDoc,
	"goDoc":      goDoc,
	"goName":     goName,
	"goType":     goType,
}

// templateNames maps each target to the template rendering one model.
var templateNames = map[config.Target]string{
	config.TargetDart: "dart_model",
	config.TargetGo:   "go_model",
}

// fileExtensions maps each target to the extension of its output files.
var fileExtensions = map[config.Target]string{
	config.TargetDart: ".dart",
	config.TargetGo:   ".go",
}

// dartString escapes s for a single-quoted Dart string literal.
func dartString(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `'`, `\'`, `$`, `\$`, "\n", `\n`)
	return r.Replace(s)
}

// dartDoc formats a description as /// comment lines, each followed by a
// newline. An empty description yields no lines.
func dartDoc(description, indent string) string {
	return commentLines(description, indent, "///")
}

// goDoc formats a description as // comment lines.
func goDoc(description, indent string) string {
	return commentLines(description, indent, "//")
}

func commentLines(description, indent, marker string) string {
	description = strings.TrimSpace(description)
	if description == "" {
		return ""
	}
	var b strings.Builder
	for _, line := range strings.Split(description, "\n") {
		line = strings.TrimRight(line, " \t\r")
		b.WriteString(indent)
		b.WriteString(marker)
		if line != "" {
			b.WriteString(" ")
			b.WriteString(line)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// goName exports a field-cased name.
func goName(name string) string {
	return naming.ToPascalCase(name)
}

// goType returns the Go type of a field. Nullable fields become pointers
// unless their type already has a nil value.
func goType(f Field) string {
	if !f.Nullable || hasNilValue(f.Type) {
		return f.Type
	}
	return "*" + f.Type
}

func hasNilValue(typ string) bool {
	return typ == "any" ||
		strings.HasPrefix(typ, "[]") ||
		strings.HasPrefix(typ, "map[") ||
		strings.HasPrefix(typ, "*")
}
