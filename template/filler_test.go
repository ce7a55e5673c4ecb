package template

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"slide_illustrator/constraints"
)

func TestFillReplacesEveryToken(t *testing.T) {
	tpl := Template{Variant: "demo", Raw: `<div class="a">{label}</div><p>{body}</p>`}
	out := Fill(tpl, map[string]string{"label": "Vision", "body": "Where we are headed"})
	assert.Equal(t, `<div class="a">Vision</div><p>Where we are headed</p>`, out)
}

func TestFillRemovesUnfilledTokens(t *testing.T) {
	tpl := Template{Variant: "demo", Raw: `<div>{a}</div><div>{b}</div>`}
	out := Fill(tpl, map[string]string{"a": "X"})
	assert.Equal(t, `<div>X</div><div></div>`, out)
}

func TestFillInsertsValuesVerbatim(t *testing.T) {
	tpl := Template{Variant: "demo", Raw: `<span>{label}</span>`}
	out := Fill(tpl, map[string]string{"label": "Vision<br>Led & <strong>Bold</strong>"})
	assert.Equal(t, `<span>Vision<br>Led & <strong>Bold</strong></span>`, out)
}

func TestFillIsIdempotentInShape(t *testing.T) {
	tpl := Template{Variant: "demo", Raw: `<div>{a}</div><div>{b}</div>`}
	content := map[string]string{"a": "First", "b": "Second"}
	first := Fill(tpl, content)
	second := Fill(Template{Variant: "demo", Raw: first}, content)
	assert.Equal(t, first, second)
}

func TestFillLeavesNoPlaceholderSyntax(t *testing.T) {
	tpl := Template{Variant: "demo", Raw: `{a} mid {unfilled_token} end {b}`}
	out := Fill(tpl, map[string]string{"a": "x"})
	assert.NotRegexp(t, `\{[^{}]+\}`, out)
}

func TestFillRepeatedToken(t *testing.T) {
	tpl := Template{Variant: "demo", Raw: `{name} and {name} again`}
	out := Fill(tpl, map[string]string{"name": "Acme"})
	assert.Equal(t, `Acme and Acme again`, out)
}

func TestNewStoreLoadsAllVariants(t *testing.T) {
	store, err := NewStore()
	require.NoError(t, err)

	want := []string{
		"circles_3", "circles_4", "circles_5",
		"funnel_3", "funnel_4", "funnel_5",
		"pyramid_3", "pyramid_3_overview", "pyramid_4", "pyramid_4_overview",
		"pyramid_5", "pyramid_6",
	}
	assert.ElementsMatch(t, want, store.Variants())
}

func TestGetUnknownVariant(t *testing.T) {
	store, err := NewStore()
	require.NoError(t, err)

	_, err = store.Get("pyramid_9")
	assert.ErrorIs(t, err, ErrUnknownTemplate)
}

func TestPlaceholdersSkipPresentationTokens(t *testing.T) {
	tpl := Template{
		Variant: "demo",
		Raw:     `<div style="color:{theme_primary};width:{size_width}px">{label}</div><p>{body}</p><p>{label}</p>`,
	}
	assert.Equal(t, []string{"label", "body"}, Placeholders(tpl))
}

func TestEmbeddedTemplatesMatchConstraintDefinitions(t *testing.T) {
	templates, err := NewStore()
	require.NoError(t, err)
	specs, err := constraints.NewStore()
	require.NoError(t, err)

	assert.NoError(t, templates.CheckAgainst(specs))
}

func TestEmbeddedTemplatesUseOnlyKnownPresentationTokens(t *testing.T) {
	store, err := NewStore()
	require.NoError(t, err)

	defaultTheme, err := LookupTheme("")
	require.NoError(t, err)
	defaultSize, err := LookupSize("")
	require.NoError(t, err)
	theme := defaultTheme.Tokens()
	size := defaultSize.Tokens()
	for _, variant := range store.Variants() {
		tpl, err := store.Get(variant)
		require.NoError(t, err)
		for _, m := range placeholderNamePattern.FindAllStringSubmatch(tpl.Raw, -1) {
			name := m[1]
			if !strings.HasPrefix(name, "theme_") && !strings.HasPrefix(name, "size_") {
				continue
			}
			_, inTheme := theme[name]
			_, inSize := size[name]
			assert.True(t, inTheme || inSize, "template %s references unknown token {%s}", variant, name)
		}
	}
}
