package constraints

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStoreLoadsEmbeddedDefinitions(t *testing.T) {
	store, err := NewStore()
	require.NoError(t, err)

	for _, variant := range []string{
		"pyramid_3", "pyramid_4", "pyramid_5", "pyramid_6",
		"pyramid_3_overview", "pyramid_4_overview",
		"funnel_3", "funnel_4", "funnel_5",
		"circles_3", "circles_4", "circles_5",
	} {
		assert.True(t, store.Has(variant), "missing variant %s", variant)
	}

	// Every spec honors 0 <= min <= max.
	for _, variant := range store.Variants() {
		specs, err := store.Fields(variant)
		require.NoError(t, err)
		for _, spec := range specs {
			assert.GreaterOrEqual(t, spec.Min, 0, "%s.%s", variant, spec.Field)
			assert.LessOrEqual(t, spec.Min, spec.Max, "%s.%s", variant, spec.Field)
		}
	}
}

func TestFieldsPreserveDefinitionOrder(t *testing.T) {
	store, err := NewStore()
	require.NoError(t, err)

	specs, err := store.Fields("funnel_3")
	require.NoError(t, err)
	require.Len(t, specs, 12)
	assert.Equal(t, "stage_1_name", specs[0].Field)
	assert.Equal(t, "stage_1_bullet_1", specs[1].Field)
	assert.Equal(t, "stage_3_bullet_3", specs[11].Field)
}

func TestLookup(t *testing.T) {
	store, err := NewStore()
	require.NoError(t, err)

	spec, err := store.Lookup("funnel_4", "stage_2_name")
	require.NoError(t, err)
	assert.Equal(t, 8, spec.Min)
	assert.Equal(t, 25, spec.Max)

	_, err = store.Lookup("funnel_4", "stage_9_name")
	assert.True(t, errors.Is(err, ErrUnknownField))

	_, err = store.Lookup("hexagon_7", "anything")
	assert.True(t, errors.Is(err, ErrUnknownVariant))
}

func TestNewStoreRejectsMalformedDefinitions(t *testing.T) {
	cases := []struct {
		name string
		yaml string
	}{
		{"min above max", "bad:\n  - {field: label, min: 10, max: 5}\n"},
		{"negative min", "bad:\n  - {field: label, min: -1, max: 5}\n"},
		{"duplicate field", "bad:\n  - {field: label, min: 1, max: 5}\n  - {field: label, min: 1, max: 5}\n"},
		{"empty variant", "bad: []\n"},
		{"nameless field", "bad:\n  - {min: 1, max: 5}\n"},
		{"not yaml", "{{{"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := newStoreFromYAML([]byte(tc.yaml))
			assert.Error(t, err)
		})
	}
}
