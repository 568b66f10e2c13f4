// Package prompt loads prompt templates and fills their {name} placeholders.
package prompt

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrMissingPlaceholder is returned when a template references a variable
// that was not supplied.
var ErrMissingPlaceholder = errors.New("missing placeholder")

// Vars maps placeholder names to their substitution values.
type Vars map[string]string

// placeholderRe matches {name} tokens. Names are lowercase snake case so that
// JSON snippets and prose braces inside templates are left alone.
var placeholderRe = regexp.MustCompile(`\{([a-z][a-z0-9_]*)\}`)

// Fill substitutes every {name} token in tmpl with vars[name]. Variables that
// the template does not reference are ignored. Substituted values are not
// rescanned, so user text containing {tokens} is inserted verbatim.
func Fill(tmpl string, vars Vars) (string, error) {
	var missing []string
	for _, name := range Placeholders(tmpl) {
		if _, ok := vars[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return "", fmt.Errorf("%w: {%s}", ErrMissingPlaceholder, strings.Join(missing, "}, {"))
	}

	return placeholderRe.ReplaceAllStringFunc(tmpl, func(tok string) string {
		return vars[tok[1:len(tok)-1]]
	}), nil
}

// Placeholders returns the distinct placeholder names in tmpl in order of
// first appearance.
func Placeholders(tmpl string) []string {
	var names []string
	seen := map[string]bool{}
	for _, m := range placeholderRe.FindAllStringSubmatch(tmpl, -1) {
		if seen[m[1]] {
			continue
		}
		seen[m[1]] = true
		names = append(names, m[1])
	}
	return names
}
