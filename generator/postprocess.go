package generator

import (
	"bytes"
	"regexp"
	"strings"
	"unicode"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/renderer/html"
)

// Models occasionally emit ALL-CAPS labels or markdown emphasis instead of
// the inline HTML the templates expect. PostProcess normalizes each value
// and title-cases label fields, returning a fresh map; the input is never
// mutated.
func PostProcess(content Content) Content {
	out := make(Content, len(content))
	for field, value := range content {
		v := sanitizeInline(normalizeEmphasis(value))
		if isLabelField(field) {
			v = TitleCase(v)
		}
		out[field] = strings.TrimSpace(v)
	}
	return out
}

func isLabelField(field string) bool {
	return strings.HasSuffix(field, "_label") || strings.HasSuffix(field, "_name")
}

// The renderer must pass raw inline HTML through untouched: values routinely
// mix markdown bold with tags like <br>, and the allow-list sanitizer that
// runs afterwards handles anything unsafe.
var emphasisRenderer = goldmark.New(goldmark.WithRendererOptions(html.WithUnsafe()))

// normalizeEmphasis converts markdown bold to inline HTML. Goldmark wraps the
// result in a paragraph; the wrapper is dropped and the sanitizer removes any
// other block tags.
func normalizeEmphasis(value string) string {
	if !strings.Contains(value, "**") {
		return value
	}
	var buf bytes.Buffer
	if err := emphasisRenderer.Convert([]byte(value), &buf); err != nil {
		return value
	}
	return strings.TrimSpace(buf.String())
}

var (
	anyTagPattern     = regexp.MustCompile(`</?[a-zA-Z][^>]*>`)
	allowedTagPattern = regexp.MustCompile(`^</?(strong|em|b|i|br)\s*/?>$`)
)

// sanitizeInline keeps only the allow-listed inline tags; everything else is
// stripped so a stray block tag never reaches the template.
func sanitizeInline(value string) string {
	return anyTagPattern.ReplaceAllStringFunc(value, func(tag string) string {
		if allowedTagPattern.MatchString(strings.ToLower(tag)) {
			return tag
		}
		return ""
	})
}

// Words kept lowercase unless they start a segment.
var smallWords = map[string]bool{
	"a": true, "an": true, "and": true, "as": true, "at": true, "but": true,
	"by": true, "for": true, "in": true, "of": true, "on": true, "or": true,
	"the": true, "to": true, "with": true, "via": true, "vs": true, "nor": true,
}

var brPattern = regexp.MustCompile(`(?i)<br\s*/?>`)

// TitleCase converts a label to title case: the first word of each segment is
// always capitalized, small words stay lowercase, and <br> tags split the
// text into independently cased segments.
func TitleCase(text string) string {
	if text == "" {
		return ""
	}

	var sb strings.Builder
	rest := text
	for {
		loc := brPattern.FindStringIndex(rest)
		if loc == nil {
			sb.WriteString(titleCaseSegment(rest))
			break
		}
		sb.WriteString(titleCaseSegment(rest[:loc[0]]))
		sb.WriteString(rest[loc[0]:loc[1]])
		rest = rest[loc[1]:]
	}
	return sb.String()
}

func titleCaseSegment(segment string) string {
	words := strings.Fields(segment)
	for i, word := range words {
		visible := strings.ToLower(anyTagPattern.ReplaceAllString(word, ""))
		words[i] = caseWord(word, i == 0 || !smallWords[visible])
	}
	joined := strings.Join(words, " ")
	// Preserve surrounding spacing so "Vision<br>Driven" round-trips.
	if strings.HasPrefix(segment, " ") {
		joined = " " + joined
	}
	if strings.HasSuffix(segment, " ") {
		joined += " "
	}
	return joined
}

// caseWord lowercases the visible text of a word and, when capitalize is set,
// uppercases its first visible rune. Inline tags pass through untouched so a
// word like <strong>Driven</strong> keeps its markup intact.
func caseWord(word string, capitalize bool) string {
	var sb strings.Builder
	inTag := false
	first := capitalize
	for _, r := range word {
		switch {
		case r == '<':
			inTag = true
			sb.WriteRune(r)
		case inTag:
			if r == '>' {
				inTag = false
			}
			sb.WriteRune(r)
		case first:
			sb.WriteRune(unicode.ToUpper(r))
			first = false
		default:
			sb.WriteRune(unicode.ToLower(r))
		}
	}
	return sb.String()
}
