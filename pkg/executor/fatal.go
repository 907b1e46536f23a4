package executor

import "strings"

// fatalPatterns identify a dead browser: a closed target, context, or page.
// These errors must propagate uncaught; the engine never swallows a dead
// browser and never retries or escalates across one.
var fatalPatterns = []string{
	"target closed",
	"browser closed",
	"page closed",
	"session closed",
	"execution context destroyed",
	"context canceled",
	"websocket: close",
	"connection reset",
}

// IsFatalBrowserError reports whether err matches the fatal browser
// disconnection pattern. Everything else thrown during a DOM operation is
// reclassified into the element-state outcome space instead.
func IsFatalBrowserError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, p := range fatalPatterns {
		if strings.Contains(msg, p) {
			return true
		}
	}
	return false
}
