package constraints

import (
	"regexp"
	"unicode/utf8"
)

var tagPattern = regexp.MustCompile(`<[^>]+>`)

// StripTags removes every markup tag from text. Rendered glyphs are what
// consume visual space, so length checks run on the stripped form.
func StripTags(text string) string {
	return tagPattern.ReplaceAllString(text, "")
}

// VisibleLen counts the characters a viewer actually sees: markup tags are
// stripped first, spaces and punctuation count as usual.
func VisibleLen(text string) int {
	return utf8.RuneCountInString(StripTags(text))
}
