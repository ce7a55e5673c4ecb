// Package template loads the fixed HTML diagram templates and substitutes
// generated content into their placeholder tokens.
package template

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"regexp"
	"sort"
	"strings"

	"slide_illustrator/constraints"
)

//go:embed files/*.html
var templateFS embed.FS

var ErrUnknownTemplate = errors.New("unknown template")

// Template is one variant's raw markup with {field} tokens. Immutable after
// load and shared read-only across requests; filling produces a new string.
type Template struct {
	Variant string
	Raw     string
}

type Store struct {
	templates map[string]Template
}

// NewStore loads every embedded template. The variant id is the file name
// without extension.
func NewStore() (*Store, error) {
	templates := make(map[string]Template)
	err := fs.WalkDir(templateFS, "files", func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		raw, err := templateFS.ReadFile(path)
		if err != nil {
			return err
		}
		variant := strings.TrimSuffix(d.Name(), ".html")
		templates[variant] = Template{Variant: variant, Raw: string(raw)}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(templates) == 0 {
		return nil, errors.New("no templates embedded")
	}
	return &Store{templates: templates}, nil
}

func (s *Store) Get(variant string) (Template, error) {
	tpl, ok := s.templates[variant]
	if !ok {
		return Template{}, fmt.Errorf("%w: %s", ErrUnknownTemplate, variant)
	}
	return tpl, nil
}

func (s *Store) Variants() []string {
	out := make([]string, 0, len(s.templates))
	for v := range s.templates {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

var placeholderNamePattern = regexp.MustCompile(`\{([a-z0-9_]+)\}`)

// Placeholders lists the distinct content tokens in a template, in order of
// first appearance. Theme and size tokens are presentation presets, not
// generated fields, and are excluded.
func Placeholders(tpl Template) []string {
	seen := make(map[string]bool)
	var out []string
	for _, m := range placeholderNamePattern.FindAllStringSubmatch(tpl.Raw, -1) {
		name := m[1]
		if strings.HasPrefix(name, "theme_") || strings.HasPrefix(name, "size_") {
			continue
		}
		if !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}
	return out
}

// CheckAgainst verifies that every content placeholder in every template has
// a constraint spec for its variant, and that every template has constraint
// definitions at all. A mismatch is a startup configuration error.
func (s *Store) CheckAgainst(store *constraints.Store) error {
	for _, variant := range s.Variants() {
		tpl := s.templates[variant]
		if !store.Has(variant) {
			return fmt.Errorf("template %s has no constraint definitions", variant)
		}
		for _, field := range Placeholders(tpl) {
			if _, err := store.Lookup(variant, field); err != nil {
				return fmt.Errorf("template %s: placeholder {%s} has no constraint spec: %w", variant, field, err)
			}
		}
	}
	return nil
}
