package plan

import (
	"bytes"
	"embed"
	"fmt"
	"text/template"
)

//go:embed templates
var templateFS embed.FS

// initialVersion is stamped into __init__.py and pyproject.toml.
const initialVersion = "0.1.0"

// templateData holds the variables available to layout templates.
type templateData struct {
	Name    string // sanitized package name
	Version string // initial project version
}

// render executes a named template from the embedded set and returns the
// fully rendered file content.
func render(name string, data templateData) ([]byte, error) {
	raw, err := templateFS.ReadFile("templates/" + name)
	if err != nil {
		return nil, fmt.Errorf("template %q not found: %w", name, err)
	}

	tmpl, err := template.New(name).Parse(string(raw))
	if err != nil {
		return nil, fmt.Errorf("parsing template %q: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template %q: %w", name, err)
	}
	return buf.Bytes(), nil
}
