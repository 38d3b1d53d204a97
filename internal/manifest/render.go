// Package manifest renders declarative resource manifests from templates
// and resolved configuration. The template engine itself (text/template
// with sprig functions) is an external surface; this package is a thin
// wrapper that treats rendering as a pure function.
package manifest

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

// ErrRender indicates a template could not be rendered, including a
// referenced configuration key being absent at render time. No manifest is
// produced on error.
var ErrRender = errors.New("manifest render failed")

// Renderer renders manifest templates with sprig functions. Referenced
// keys missing from the data fail the render instead of producing an
// incomplete manifest.
type Renderer struct{}

// NewRenderer creates a new Renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render reads the template file and executes it against data.
func (r *Renderer) Render(templatePath string, data map[string]any) (string, error) {
	content, err := os.ReadFile(templatePath)
	if err != nil {
		return "", fmt.Errorf("%w: read template %s: %v", ErrRender, templatePath, err)
	}
	return r.RenderString(filepath.Base(templatePath), string(content), data)
}

// RenderString executes an in-memory template against data.
func (r *Renderer) RenderString(name, content string, data map[string]any) (string, error) {
	tmpl, err := template.New(name).
		Funcs(sprig.TxtFuncMap()).
		Option("missingkey=error").
		Parse(content)
	if err != nil {
		return "", fmt.Errorf("%w: parse %s: %v", ErrRender, name, err)
	}

	var out bytes.Buffer
	if err := tmpl.Execute(&out, data); err != nil {
		return "", fmt.Errorf("%w: render %s: %v", ErrRender, name, err)
	}

	return out.String(), nil
}

// Data combines resolved configuration with runtime values into the
// template's root context. Runtime values win on key collision, the same
// rule the configuration layering applies.
func Data(resolved map[string]any, runtime map[string]any) map[string]any {
	data := make(map[string]any, len(resolved)+len(runtime))
	for k, v := range resolved {
		data[k] = v
	}
	for k, v := range runtime {
		data[k] = v
	}
	return data
}
