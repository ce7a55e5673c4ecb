package template

import "fmt"

// Theme is one color preset substituted into {theme_*} tokens.
type Theme struct {
	Name          string
	Primary       string
	Secondary     string
	Background    string
	Text          string
	TextOnPrimary string
	Border        string
}

// Tokens returns the theme as template substitutions.
func (t Theme) Tokens() map[string]string {
	return map[string]string{
		"theme_name":            t.Name,
		"theme_primary":         t.Primary,
		"theme_secondary":       t.Secondary,
		"theme_background":      t.Background,
		"theme_text":            t.Text,
		"theme_text_on_primary": t.TextOnPrimary,
		"theme_border":          t.Border,
	}
}

var themes = map[string]Theme{
	"professional": {
		Name: "professional", Primary: "#0066CC", Secondary: "#FF6B35",
		Background: "#FFFFFF", Text: "#1A1A1A", TextOnPrimary: "#FFFFFF", Border: "#CCCCCC",
	},
	"bold": {
		Name: "bold", Primary: "#E31E24", Secondary: "#FFD700",
		Background: "#1A1A1A", Text: "#FFFFFF", TextOnPrimary: "#FFFFFF", Border: "#444444",
	},
	"minimal": {
		Name: "minimal", Primary: "#333333", Secondary: "#777777",
		Background: "#FAFAFA", Text: "#222222", TextOnPrimary: "#FFFFFF", Border: "#DDDDDD",
	},
	"playful": {
		Name: "playful", Primary: "#7C3AED", Secondary: "#F59E0B",
		Background: "#FFF8F0", Text: "#2D2A32", TextOnPrimary: "#FFFFFF", Border: "#E9D5FF",
	},
}

// LookupTheme resolves a preset name; empty selects professional.
func LookupTheme(name string) (Theme, error) {
	if name == "" {
		name = "professional"
	}
	theme, ok := themes[name]
	if !ok {
		return Theme{}, fmt.Errorf("unknown theme %q", name)
	}
	return theme, nil
}

// Size is one canvas preset substituted into {size_*} tokens.
type Size struct {
	Name   string
	Width  int
	Height int
}

func (s Size) Tokens() map[string]string {
	return map[string]string{
		"size_name":   s.Name,
		"size_width":  fmt.Sprintf("%d", s.Width),
		"size_height": fmt.Sprintf("%d", s.Height),
	}
}

var sizes = map[string]Size{
	"small":  {Name: "small", Width: 600, Height: 400},
	"medium": {Name: "medium", Width: 1200, Height: 800},
	"large":  {Name: "large", Width: 1600, Height: 900},
}

// LookupSize resolves a preset name; empty selects medium.
func LookupSize(name string) (Size, error) {
	if name == "" {
		name = "medium"
	}
	size, ok := sizes[name]
	if !ok {
		return Size{}, fmt.Errorf("unknown size %q", name)
	}
	return size, nil
}
