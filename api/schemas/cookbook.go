package schemas

import "time"

// -- Cookbook (learned replay) Schemas --

// GUIReplayMode selects how a coordinate-based fallback replays an action.
type GUIReplayMode string

const (
	GUIClickOnly GUIReplayMode = "click"
	GUIClickType GUIReplayMode = "click_type"
)

// DOMReplay describes how an action was once performed through the DOM.
type DOMReplay struct {
	Selector string     `json:"selector"`
	Verb     ActionVerb `json:"verb"`
}

// GUIReplay describes the coordinate-based fallback for the same action.
type GUIReplay struct {
	X    float64       `json:"x"`
	Y    float64       `json:"y"`
	Mode GUIReplayMode `json:"mode"`
}

// CookbookAction is one recorded step: a field snapshot plus the dual replay
// descriptors, scored by its own success history.
type CookbookAction struct {
	Field         FieldModel `json:"field"`
	ValueTemplate string     `json:"valueTemplate"`
	DOM           *DOMReplay `json:"dom,omitempty"`
	GUI           *GUIReplay `json:"gui,omitempty"`
	Health        float64    `json:"health"`
	Successes     int        `json:"successes"`
	Failures      int        `json:"failures"`
}

// CookbookPageEntry is a learned action sequence for a page fingerprint
// (URL pattern + structural signature). Entries are created and re-scored by a
// learning process outside this engine; the replay executor only reads them.
type CookbookPageEntry struct {
	Fingerprint string           `json:"fingerprint"`
	URLPattern  string           `json:"urlPattern"`
	Actions     []CookbookAction `json:"actions"`
	PageHealth  float64          `json:"pageHealth"`
	Successes   int              `json:"successes"`
	Failures    int              `json:"failures"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

// ReplayResult summarizes one cookbook replay run.
type ReplayResult struct {
	Total         int  `json:"total"`
	Attempted     int  `json:"attempted"`
	Succeeded     int  `json:"succeeded"`
	Failed        int  `json:"failed"`
	Skipped       int  `json:"skipped"`
	Success       bool `json:"success"`
	AbortedAt     int  `json:"abortedAt"`
	Aborted       bool `json:"aborted"`
	GUIFallbacks  int  `json:"guiFallbacks"`
	TemplateMiss  int  `json:"templateMisses"`
	HealthSkipped int  `json:"healthSkipped"`
}
