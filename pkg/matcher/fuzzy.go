package matcher

import "strings"

// fuzzyLookup resolves a normalized label against a candidate key set using a
// five-pass cascade. Passes are tried strictly in order and a later pass runs
// only if every earlier pass found nothing, so the first qualifying hit wins.
// Keys must arrive pre-sorted and normalized via NormalizeKeyAsLabel; iterating
// a sorted slice keeps the lookup deterministic.
func fuzzyLookup(label string, keys []sortedKey) (string, bool) {
	if label == "" || len(keys) == 0 {
		return "", false
	}

	// Pass a: exact match.
	for _, k := range keys {
		if k.norm == label {
			return k.raw, true
		}
	}

	// Pass b: label contains a key whose length is at least 60% of the label's.
	for _, k := range keys {
		if k.norm != "" && strings.Contains(label, k.norm) && float64(len(k.norm)) >= 0.6*float64(len(label)) {
			return k.raw, true
		}
	}

	// Pass c: key contains the label, label long enough to be meaningful.
	if len(label) > 3 {
		for _, k := range keys {
			if strings.Contains(k.norm, label) && float64(len(label)) >= 0.5*float64(len(k.norm)) {
				return k.raw, true
			}
		}
	}

	// Pass d: word overlap. Every label word longer than 3 characters must
	// appear in the key, and at least two must overlap.
	labelWords := longWords(label)
	if len(labelWords) >= 2 {
		for _, k := range keys {
			if wordsCovered(labelWords, longWords(k.norm)) {
				return k.raw, true
			}
		}
	}

	// Pass e: the same overlap rule on suffix-stripped stems.
	labelStems := stemAll(labelWords)
	if len(labelStems) >= 2 {
		for _, k := range keys {
			if wordsCovered(labelStems, stemAll(longWords(k.norm))) {
				return k.raw, true
			}
		}
	}

	return "", false
}

// sortedKey pairs a raw data key with its normalized form.
type sortedKey struct {
	raw  string
	norm string
}

// longWords returns the words of s longer than 3 characters.
func longWords(s string) []string {
	var out []string
	for _, w := range strings.Fields(s) {
		if len(w) > 3 {
			out = append(out, w)
		}
	}
	return out
}

// wordsCovered reports whether every needle appears in the haystack set.
func wordsCovered(needles, haystack []string) bool {
	if len(needles) < 2 {
		return false
	}
	set := make(map[string]bool, len(haystack))
	for _, w := range haystack {
		set[w] = true
	}
	for _, w := range needles {
		if !set[w] {
			return false
		}
	}
	return true
}

// stem strips common English suffixes so "engineering" and "engineered"
// collapse to the same stem as "engineer".
func stem(w string) string {
	switch {
	case len(w) > 5 && strings.HasSuffix(w, "ing"):
		return w[:len(w)-3]
	case len(w) > 5 && strings.HasSuffix(w, "tion"):
		return w[:len(w)-4]
	case len(w) > 4 && strings.HasSuffix(w, "ed"):
		return w[:len(w)-2]
	case len(w) > 3 && strings.HasSuffix(w, "s"):
		return w[:len(w)-1]
	default:
		return w
	}
}

func stemAll(words []string) []string {
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = stem(w)
	}
	return out
}
