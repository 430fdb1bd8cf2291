package template

import (
	"fmt"
	"regexp"
	"strings"
)

// MarkerPattern matches ${NAME} placeholder markers. Kubernetes' own
// $(VAR) env references deliberately do not match.
var MarkerPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// LintError reports every registry inconsistency found in one pass.
type LintError struct {
	Problems []string
}

func (e *LintError) Error() string {
	return fmt.Sprintf("template registry inconsistent: %s", strings.Join(e.Problems, "; "))
}

// Markers returns the distinct placeholder names referenced by body,
// in order of first appearance.
func Markers(body string) []string {
	seen := make(map[string]bool)
	var names []string
	for _, match := range MarkerPattern.FindAllStringSubmatch(body, -1) {
		name := match[1]
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	return names
}

// Lint checks the whole registry for consistency. Every marker in a body
// must be declared, every declared placeholder must appear in its body,
// and no two templates may declare the same name with different kinds.
// All problems are collected into a single LintError.
func Lint() error {
	return lintDefinitions(definitions)
}

func lintDefinitions(definitions []Definition) error {
	var problems []string

	// Kind of each placeholder name across templates, for conflict detection
	kinds := make(map[string]string)
	kindOwner := make(map[string]string)

	for _, def := range definitions {
		declared := make(map[string]bool, len(def.Placeholders))
		for _, p := range def.Placeholders {
			declared[p.Name] = true

			if prev, ok := kinds[p.Name]; ok && prev != p.Kind {
				problems = append(problems, fmt.Sprintf(
					"%s: placeholder %s declared as %s but %s declares it as %s",
					def.ID, p.Name, p.Kind, kindOwner[p.Name], prev))
				continue
			}
			kinds[p.Name] = p.Kind
			kindOwner[p.Name] = def.ID
		}

		referenced := make(map[string]bool)
		for _, name := range Markers(def.Body) {
			referenced[name] = true
			if !declared[name] {
				problems = append(problems, fmt.Sprintf("%s: body references undeclared placeholder %s", def.ID, name))
			}
		}

		for _, p := range def.Placeholders {
			if !referenced[p.Name] {
				problems = append(problems, fmt.Sprintf("%s: declared placeholder %s never appears in body", def.ID, p.Name))
			}
		}
	}

	if len(problems) > 0 {
		return &LintError{Problems: problems}
	}
	return nil
}
