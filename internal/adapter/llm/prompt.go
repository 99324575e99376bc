package llm

import (
	"fmt"
	"os"
	"strings"
)

// inputMarker is the substitution point of the prompt template the table's
// raw CSV content is spliced into.
const inputMarker = "<!INPUT!>"

// Template is a narration prompt with a table substitution point.
type Template struct {
	text string
}

// LoadTemplate reads a prompt template from disk. The template must contain
// the <!INPUT!> marker.
func LoadTemplate(path string) (*Template, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("llm: failed to read prompt template %s: %w", path, err)
	}
	text := string(raw)
	if !strings.Contains(text, inputMarker) {
		return nil, fmt.Errorf("llm: prompt template %s has no %s marker", path, inputMarker)
	}
	return &Template{text: text}, nil
}

// Render splices the table content into the template.
func (t *Template) Render(tableCSV string) string {
	return strings.Replace(t.text, inputMarker, tableCSV, 1)
}
