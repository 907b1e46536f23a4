package executor

import "strings"

// stopWords are filtered out when deriving dropdown fallback search terms.
// Process-wide read-only state.
var stopWords = map[string]bool{
	"a": true, "an": true, "and": true, "at": true, "by": true, "for": true,
	"in": true, "of": true, "on": true, "or": true, "the": true, "to": true,
	"with": true,
}

// FallbackTerms derives progressively shorter search terms from a value for
// dropdown retries: a half-length prefix of the whole value first (cut at a
// word boundary), then the first significant word, then the remaining
// significant words longest-first. "Computer Science and Engineering" yields
// ["Computer Science", "Computer", "Engineering", "Science"].
func FallbackTerms(value string) []string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}

	var terms []string
	seen := map[string]bool{strings.ToLower(value): true}
	add := func(t string) {
		t = strings.TrimSpace(t)
		if t == "" || seen[strings.ToLower(t)] {
			return
		}
		seen[strings.ToLower(t)] = true
		terms = append(terms, t)
	}

	add(halfPrefix(value))

	var significant []string
	for _, w := range strings.Fields(value) {
		if !stopWords[strings.ToLower(w)] && len(w) > 1 {
			significant = append(significant, w)
		}
	}
	if len(significant) > 0 {
		add(significant[0])
		rest := append([]string(nil), significant[1:]...)
		// Longest first; equal lengths keep their original order.
		for i := 1; i < len(rest); i++ {
			for j := i; j > 0 && len(rest[j]) > len(rest[j-1]); j-- {
				rest[j], rest[j-1] = rest[j-1], rest[j]
			}
		}
		for _, w := range rest {
			add(w)
		}
	}
	return terms
}

// halfPrefix cuts the value to roughly half its length at the nearest word
// boundary, so multi-word values degrade to their leading phrase.
func halfPrefix(value string) string {
	half := len(value) / 2
	if half < 2 {
		return ""
	}
	cut := value[:half]
	// Only back up to a word boundary when the cut landed mid-word.
	if value[half] != ' ' {
		if idx := strings.LastIndex(cut, " "); idx > 0 {
			cut = cut[:idx]
		}
	}
	if strings.EqualFold(cut, value) {
		return ""
	}
	return cut
}
