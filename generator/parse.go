package generator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// ParseContent extracts the expected fields from a raw model reply.
// Models wrap JSON in code fences or prose often enough that the reply is
// narrowed to its outermost object before parsing; unknown extra keys are
// ignored, and missing fields are left for the validator to flag.
func ParseContent(raw string, shape []FieldShape) (Content, error) {
	trimmed := strings.TrimSpace(raw)
	start := strings.Index(trimmed, "{")
	end := strings.LastIndex(trimmed, "}")
	if start < 0 || end <= start {
		return nil, errors.New("reply contains no JSON object")
	}
	trimmed = trimmed[start : end+1]

	if !gjson.Valid(trimmed) {
		return nil, errors.New("reply is not valid JSON")
	}
	parsed := gjson.Parse(trimmed)
	if !parsed.IsObject() {
		return nil, errors.New("reply is not a JSON object")
	}

	content := make(Content, len(shape))
	for _, field := range shape {
		if v := parsed.Get(field.Name); v.Exists() {
			content[field.Name] = strings.TrimSpace(v.String())
		}
	}
	if len(content) == 0 {
		return nil, fmt.Errorf("reply contains none of the %d expected fields", len(shape))
	}
	return content, nil
}
