package constraints

// ViolationKind classifies a constraint breach.
type ViolationKind string

const (
	TooShort ViolationKind = "too_short"
	TooLong  ViolationKind = "too_long"
)

// Violation describes one field whose value fell outside its budget.
type Violation struct {
	Field      string        `json:"field"`
	Value      string        `json:"value"`
	VisibleLen int           `json:"visible_char_count"`
	MinAllowed int           `json:"min_allowed"`
	MaxAllowed int           `json:"max_allowed"`
	Kind       ViolationKind `json:"kind"`
}

// Result is the outcome of validating one content map. Valid is true iff
// Violations is empty.
type Result struct {
	Valid      bool        `json:"valid"`
	Violations []Violation `json:"violations"`
}

// Validate checks content against every field the variant defines.
// A field missing from content counts as zero visible characters, so it is
// flagged too_short rather than silently passing. Violations come back in
// field-definition order for reproducible reporting. Out-of-range values are
// data, not errors; only an unknown variant fails.
func Validate(store *Store, variant string, content map[string]string) (Result, error) {
	specs, err := store.Fields(variant)
	if err != nil {
		return Result{}, err
	}

	violations := []Violation{}
	for _, spec := range specs {
		value := content[spec.Field]
		n := VisibleLen(value)
		switch {
		case n < spec.Min:
			violations = append(violations, Violation{
				Field:      spec.Field,
				Value:      value,
				VisibleLen: n,
				MinAllowed: spec.Min,
				MaxAllowed: spec.Max,
				Kind:       TooShort,
			})
		case n > spec.Max:
			violations = append(violations, Violation{
				Field:      spec.Field,
				Value:      value,
				VisibleLen: n,
				MinAllowed: spec.Min,
				MaxAllowed: spec.Max,
				Kind:       TooLong,
			})
		}
	}

	return Result{Valid: len(violations) == 0, Violations: violations}, nil
}

// Counts reports the visible character count for every defined field that is
// present in content.
func Counts(store *Store, variant string, content map[string]string) (map[string]int, error) {
	specs, err := store.Fields(variant)
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int, len(specs))
	for _, spec := range specs {
		if value, ok := content[spec.Field]; ok {
			counts[spec.Field] = VisibleLen(value)
		}
	}
	return counts, nil
}
