// Package render substitutes environment bindings into manifest templates.
// Rendering is a pure function of (template, bindings) and fails rather
// than emit an unresolved or undeclared placeholder marker.
package render

import (
	"fmt"
	"strings"

	"github.com/smart-dc/mlflowctl/internal/template"
)

// Manifest is one fully rendered manifest, ready to write.
type Manifest struct {
	// TemplateID identifies the template the manifest was rendered from.
	TemplateID string

	// FileName is the canonical output file name.
	FileName string

	// Environment is the target environment identifier.
	Environment string

	// Content is the rendered manifest body, free of placeholder markers.
	Content []byte
}

// Error is a binding failure for one template. Both failure modes are
// collected in a single pass so one report names every bad marker.
type Error struct {
	TemplateID string

	// Missing lists declared placeholders with no binding.
	Missing []string

	// Undeclared lists body markers absent from the declared list.
	Undeclared []string
}

func (e *Error) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, fmt.Sprintf("missing bindings: %s", strings.Join(e.Missing, ", ")))
	}
	if len(e.Undeclared) > 0 {
		parts = append(parts, fmt.Sprintf("undeclared placeholders: %s", strings.Join(e.Undeclared, ", ")))
	}
	return fmt.Sprintf("render %s: %s", e.TemplateID, strings.Join(parts, "; "))
}

// Render substitutes bindings into the template body. Every declared
// placeholder must have a binding, and every marker in the body must be
// declared; an empty-string substitution is never produced silently.
func Render(def template.Definition, envID string, bindings map[string]string) (*Manifest, error) {
	declared := make(map[string]bool, len(def.Placeholders))
	for _, p := range def.Placeholders {
		declared[p.Name] = true
	}

	var missing, undeclared []string
	for _, name := range template.Markers(def.Body) {
		if !declared[name] {
			undeclared = append(undeclared, name)
			continue
		}
		if _, ok := bindings[name]; !ok {
			missing = append(missing, name)
		}
	}

	if len(missing) > 0 || len(undeclared) > 0 {
		return nil, &Error{TemplateID: def.ID, Missing: missing, Undeclared: undeclared}
	}

	content := template.MarkerPattern.ReplaceAllStringFunc(def.Body, func(match string) string {
		name := template.MarkerPattern.FindStringSubmatch(match)[1]
		return bindings[name]
	})

	return &Manifest{
		TemplateID:  def.ID,
		FileName:    def.FileName,
		Environment: envID,
		Content:     []byte(content),
	}, nil
}
