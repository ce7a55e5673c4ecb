package constraints

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const demoDefinitions = `
demo:
  - {field: label, min: 5, max: 12}
  - {field: bullet_1, min: 30, max: 45}
`

func demoStore(t *testing.T) *Store {
	t.Helper()
	store, err := newStoreFromYAML([]byte(demoDefinitions))
	require.NoError(t, err)
	return store
}

func TestValidateInRangeContent(t *testing.T) {
	store := demoStore(t)

	result, err := Validate(store, "demo", map[string]string{
		"label":    "Vision",
		"bullet_1": "Define long-term strategic goals clearly",
	})
	require.NoError(t, err)
	assert.True(t, result.Valid)
	assert.Empty(t, result.Violations)
}

func TestValidateTooLong(t *testing.T) {
	store := demoStore(t)

	result, err := Validate(store, "demo", map[string]string{
		"label":    "Strategic Excellence Leadership",
		"bullet_1": "Define long-term strategic goals clearly",
	})
	require.NoError(t, err)
	assert.False(t, result.Valid)
	require.Len(t, result.Violations, 1)

	v := result.Violations[0]
	assert.Equal(t, "label", v.Field)
	assert.Equal(t, TooLong, v.Kind)
	assert.Equal(t, 31, v.VisibleLen)
	assert.Equal(t, 12, v.MaxAllowed)
}

func TestValidateMissingFieldIsTooShort(t *testing.T) {
	store := demoStore(t)

	result, err := Validate(store, "demo", map[string]string{
		"label": "Vision",
	})
	require.NoError(t, err)
	assert.False(t, result.Valid)
	require.Len(t, result.Violations, 1)
	assert.Equal(t, "bullet_1", result.Violations[0].Field)
	assert.Equal(t, TooShort, result.Violations[0].Kind)
	assert.Equal(t, 0, result.Violations[0].VisibleLen)
}

func TestValidateMarkupExcludedFromCount(t *testing.T) {
	store := demoStore(t)

	// 40 visible chars once tags are stripped.
	result, err := Validate(store, "demo", map[string]string{
		"label":    "Vision",
		"bullet_1": "Define <strong>long-term</strong> strategic goals clearly",
	})
	require.NoError(t, err)
	assert.True(t, result.Valid)
}

func TestValidateViolationsFollowDefinitionOrder(t *testing.T) {
	store := demoStore(t)

	result, err := Validate(store, "demo", map[string]string{
		"bullet_1": "nope",
		"label":    "x",
	})
	require.NoError(t, err)
	require.Len(t, result.Violations, 2)
	assert.Equal(t, "label", result.Violations[0].Field)
	assert.Equal(t, "bullet_1", result.Violations[1].Field)
}

func TestValidateIsDeterministic(t *testing.T) {
	store := demoStore(t)
	content := map[string]string{"label": "toolongtoolong", "bullet_1": "short"}

	first, err := Validate(store, "demo", content)
	require.NoError(t, err)
	second, err := Validate(store, "demo", content)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestValidateUnknownVariant(t *testing.T) {
	store := demoStore(t)
	_, err := Validate(store, "nope", map[string]string{})
	assert.Error(t, err)
}

func TestCounts(t *testing.T) {
	store := demoStore(t)

	counts, err := Counts(store, "demo", map[string]string{
		"label": "Vision<br>Led",
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"label": 9}, counts)
}
