package constraints

import (
	_ "embed"
	"errors"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed definitions.yaml
var rawDefinitions []byte

var (
	ErrUnknownVariant = errors.New("unknown variant")
	ErrUnknownField   = errors.New("unknown field")
)

// Spec is one field's character budget within a variant. Min and Max are
// inclusive bounds on the visible character count.
type Spec struct {
	Field string `yaml:"field"`
	Min   int    `yaml:"min"`
	Max   int    `yaml:"max"`
	Note  string `yaml:"note,omitempty"`
}

// Store maps variant ids to their ordered field specs. Loaded once at
// startup and read-only afterwards, so it is safe to share across requests.
type Store struct {
	variants map[string][]Spec
	byField  map[string]map[string]Spec
}

// NewStore loads the embedded constraint definitions. A malformed definition
// is a startup configuration error.
func NewStore() (*Store, error) {
	return newStoreFromYAML(rawDefinitions)
}

func newStoreFromYAML(raw []byte) (*Store, error) {
	var variants map[string][]Spec
	if err := yaml.Unmarshal(raw, &variants); err != nil {
		return nil, fmt.Errorf("parse constraint definitions: %w", err)
	}
	if len(variants) == 0 {
		return nil, errors.New("constraint definitions are empty")
	}

	byField := make(map[string]map[string]Spec, len(variants))
	for variant, specs := range variants {
		if len(specs) == 0 {
			return nil, fmt.Errorf("variant %s defines no fields", variant)
		}
		fields := make(map[string]Spec, len(specs))
		for _, spec := range specs {
			if spec.Field == "" {
				return nil, fmt.Errorf("variant %s has a field with no name", variant)
			}
			if spec.Min < 0 || spec.Min > spec.Max {
				return nil, fmt.Errorf("variant %s field %s: invalid range [%d, %d]", variant, spec.Field, spec.Min, spec.Max)
			}
			if _, dup := fields[spec.Field]; dup {
				return nil, fmt.Errorf("variant %s defines field %s twice", variant, spec.Field)
			}
			fields[spec.Field] = spec
		}
		byField[variant] = fields
	}

	return &Store{variants: variants, byField: byField}, nil
}

// Lookup returns the spec for one field of a variant.
func (s *Store) Lookup(variant, field string) (Spec, error) {
	fields, ok := s.byField[variant]
	if !ok {
		return Spec{}, fmt.Errorf("%w: %s", ErrUnknownVariant, variant)
	}
	spec, ok := fields[field]
	if !ok {
		return Spec{}, fmt.Errorf("%w: %s.%s", ErrUnknownField, variant, field)
	}
	return spec, nil
}

// Fields returns the variant's specs in definition order.
func (s *Store) Fields(variant string) ([]Spec, error) {
	specs, ok := s.variants[variant]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownVariant, variant)
	}
	return specs, nil
}

// Has reports whether the variant is defined.
func (s *Store) Has(variant string) bool {
	_, ok := s.variants[variant]
	return ok
}

// Variants returns all defined variant ids, sorted.
func (s *Store) Variants() []string {
	out := make([]string, 0, len(s.variants))
	for v := range s.variants {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
