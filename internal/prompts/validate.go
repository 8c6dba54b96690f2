package prompts

import (
	"fmt"
	"regexp"

	"github.com/jonathan/ats-optimizer/internal/types"
)

// Placeholder syntaxes accepted in stored templates. Persisted overrides may
// use any of the delimiter styles ({{.X}}, {{x}}, or {x}); the optimizer's
// injection ladder handles each in turn.
var placeholderRes = []*regexp.Regexp{
	regexp.MustCompile(`\{\{\.([A-Za-z_][A-Za-z0-9_]*)\}\}`),
	regexp.MustCompile(`\{\{([a-z_][a-z0-9_]*)\}\}`),
	regexp.MustCompile(`\{([a-z_][a-z0-9_]*)\}`),
}

// Placeholders returns the distinct placeholder names referenced by template,
// across all accepted delimiter styles.
func Placeholders(template string) []string {
	seen := make(map[string]bool)
	var names []string
	for _, re := range placeholderRes {
		for _, m := range re.FindAllStringSubmatch(template, -1) {
			if !seen[m[1]] {
				seen[m[1]] = true
				names = append(names, m[1])
			}
		}
	}
	return names
}

// ValidateSpec checks that every placeholder referenced in the prompt template
// appears in its declared variable list. Declared-but-unused variables are
// allowed.
func ValidateSpec(spec *types.PromptSpec) error {
	declared := make(map[string]bool, len(spec.Variables))
	for _, v := range spec.Variables {
		declared[v] = true
	}

	for _, name := range Placeholders(spec.Template) {
		if !declared[name] {
			return fmt.Errorf("prompt %q: placeholder %q is not declared in variables", spec.Name, name)
		}
	}
	return nil
}
