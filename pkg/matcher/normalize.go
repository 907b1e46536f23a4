package matcher

import (
	"regexp"
	"strings"
)

var (
	requiredWordRe = regexp.MustCompile(`(?i)\brequired\b`)
	optionalNoteRe = regexp.MustCompile(`(?i)\(\s*optional\s*\)`)
	whitespaceRe   = regexp.MustCompile(`\s+`)
	separatorRe    = regexp.MustCompile(`[\s_\-./]+`)
)

// NormalizeLabel canonicalizes visible label text for comparison: the required
// marker "*", the word "required", and "(optional)" notes are stripped,
// whitespace is collapsed, and the result is lowercased.
func NormalizeLabel(label string) string {
	s := strings.ReplaceAll(label, "*", " ")
	s = optionalNoteRe.ReplaceAllString(s, " ")
	s = requiredWordRe.ReplaceAllString(s, " ")
	s = whitespaceRe.ReplaceAllString(s, " ")
	return strings.ToLower(strings.TrimSpace(s))
}

// NormalizeName canonicalizes a name/id attribute: separators are stripped
// entirely and the result is lowercased, so "first_name", "first-name" and
// "firstName" all collapse to "firstname".
func NormalizeName(name string) string {
	return strings.ToLower(separatorRe.ReplaceAllString(strings.TrimSpace(name), ""))
}

// NormalizeKeyAsLabel canonicalizes a data key the same way a label is
// canonicalized, turning separators into single spaces first so "email_address"
// compares equal to the label "Email Address".
func NormalizeKeyAsLabel(key string) string {
	return NormalizeLabel(separatorRe.ReplaceAllString(key, " "))
}
