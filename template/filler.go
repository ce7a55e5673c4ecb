package template

import (
	"regexp"
	"strings"
)

var leftoverPattern = regexp.MustCompile(`\{[^{}]+\}`)

// Fill replaces every literal {field} token with its value and then removes
// any token that remains unfilled, so a field omitted by the model never
// leaks raw placeholder syntax into the output. Values are inserted verbatim,
// inline markup included; there is no templating-language evaluation.
// Idempotent for the same (template, content) pair.
func Fill(tpl Template, content map[string]string) string {
	out := tpl.Raw
	for field, value := range content {
		out = strings.ReplaceAll(out, "{"+field+"}", value)
	}
	return leftoverPattern.ReplaceAllString(out, "")
}
