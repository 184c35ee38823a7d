package generator

import (
	"fmt"

	"golang.org/x/tools/imports"

	"github.com/erraggy/oasmodels/config"
)

// render executes the template of target for one model.
func render(target config.Target, model *Model) ([]byte, error) {
	name, ok := templateNames[target]
	if !ok {
		return nil, fmt.Errorf("no template for target %q", target)
	}
	buf := getTemplateBuffer(len(model.Class.Fields))
	defer putTemplateBuffer(buf, len(model.Class.Fields))

	if err := templates.ExecuteTemplate(buf, name, model); err != nil {
		return nil, err
	}
	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())
	return out, nil
}

// formatAndFixImports formats Go source code and adds the imports the
// mapped types need, such as "time" for time.Time.
func formatAndFixImports(filename string, src []byte) ([]byte, error) {
	return imports.Process(filename, src, nil)
}
