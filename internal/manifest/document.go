package manifest

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Document is a parsed resource manifest ready for the target runtime.
type Document map[string]any

// Parse parses a rendered manifest into a Document.
func Parse(rendered string) (Document, error) {
	var doc map[string]any
	if err := yaml.Unmarshal([]byte(rendered), &doc); err != nil {
		return nil, fmt.Errorf("parse rendered manifest: %w", err)
	}
	if len(doc) == 0 {
		return nil, fmt.Errorf("rendered manifest is empty")
	}
	return Document(doc), nil
}

// Name extracts metadata.name from the document, or "" if absent.
func (d Document) Name() string {
	meta, ok := d["metadata"].(map[string]any)
	if !ok {
		return ""
	}
	name, _ := meta["name"].(string)
	return name
}

// Kind extracts the document's kind, or "" if absent.
func (d Document) Kind() string {
	kind, _ := d["kind"].(string)
	return kind
}

// YAML marshals the document back to YAML for the target runtime.
func (d Document) YAML() ([]byte, error) {
	data, err := yaml.Marshal(map[string]any(d))
	if err != nil {
		return nil, fmt.Errorf("marshal manifest: %w", err)
	}
	return data, nil
}
