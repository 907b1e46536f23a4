package cookbook

import (
	"regexp"
	"sort"
	"strings"
)

var templateRefRe = regexp.MustCompile(`\{\{\s*([^}]+?)\s*\}\}`)

// ResolveTemplate substitutes {{key}} references with values from userData.
// Lookup is case-sensitive first, then case-insensitive. The second return is
// false when any reference cannot be resolved; the caller skips such actions
// rather than replaying a half-built value.
func ResolveTemplate(template string, userData map[string]string) (string, bool) {
	if !strings.Contains(template, "{{") {
		return template, true
	}
	ok := true
	out := templateRefRe.ReplaceAllStringFunc(template, func(ref string) string {
		key := strings.TrimSpace(ref[2 : len(ref)-2])
		if v, found := userData[key]; found {
			return v
		}
		// Case-insensitive fallback; sorted so ambiguous keys resolve the
		// same way every run.
		var candidates []string
		for k := range userData {
			if strings.EqualFold(k, key) {
				candidates = append(candidates, k)
			}
		}
		if len(candidates) > 0 {
			sort.Strings(candidates)
			return userData[candidates[0]]
		}
		ok = false
		return ""
	})
	if !ok {
		return "", false
	}
	return out, true
}
