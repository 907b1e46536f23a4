// Package platforms holds per-ATS matching hints. The registry maps a platform
// id to its handler; unknown platforms resolve to nil so the matcher falls
// back to generic strategies instead of failing.
package platforms

import (
	"strings"

	"github.com/autoapply/fillengine/pkg/interfaces"
)

var registry = map[string]interfaces.PlatformHandler{
	"workday":    &Workday{},
	"greenhouse": &Greenhouse{},
}

// Lookup returns the handler for a platform id, or nil when unrecognized.
func Lookup(name string) interfaces.PlatformHandler {
	return registry[strings.ToLower(strings.TrimSpace(name))]
}

// Detect infers the platform id from a page URL. Empty string when unknown.
func Detect(url string) string {
	u := strings.ToLower(url)
	switch {
	case strings.Contains(u, "myworkdayjobs.com"), strings.Contains(u, "workday.com"):
		return "workday"
	case strings.Contains(u, "greenhouse.io"):
		return "greenhouse"
	default:
		return ""
	}
}
