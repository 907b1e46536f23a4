package cookbook

import (
	"crypto/sha1"
	"encoding/hex"
	"net/url"
	"regexp"
	"sort"
	"strings"

	"github.com/autoapply/fillengine/api/schemas"
)

var numericSegmentRe = regexp.MustCompile(`/\d+(/|$)`)

// URLPattern reduces a page URL to its stable shape: scheme and query dropped,
// numeric path segments replaced with a wildcard so per-posting ids don't
// fragment the cookbook.
func URLPattern(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	path := numericSegmentRe.ReplaceAllString(u.Path, "/*$1")
	return strings.ToLower(u.Host + path)
}

// Fingerprint derives the cookbook key for a page: the URL pattern plus a
// structural signature over the page's field shapes. Field order is sorted so
// cosmetic reordering does not change the key.
func Fingerprint(page *schemas.PageModel) string {
	descriptors := make([]string, 0, len(page.Fields))
	for _, f := range page.Fields {
		var sb strings.Builder
		sb.WriteString(string(f.Type))
		if f.Name != "" {
			sb.WriteString("[name=" + f.Name + "]")
		}
		if f.AutomationID != "" {
			sb.WriteString("[auto=" + f.AutomationID + "]")
		}
		descriptors = append(descriptors, sb.String())
	}
	sort.Strings(descriptors)

	hasher := sha1.New()
	hasher.Write([]byte(URLPattern(page.URL)))
	hasher.Write([]byte{0})
	hasher.Write([]byte(strings.Join(descriptors, "|")))
	return hex.EncodeToString(hasher.Sum(nil))
}
