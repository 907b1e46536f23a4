package schemas

// -- Match & Plan Schemas --

// MatchMethod tags which strategy in the matching cascade produced a match.
type MatchMethod string

const (
	MethodAutomationID MatchMethod = "automation_id"
	MethodNameAttr     MatchMethod = "name_attribute"
	MethodLabelExact   MatchMethod = "label_exact"
	MethodQAFuzzy      MatchMethod = "qa_fuzzy"
	MethodUserFuzzy    MatchMethod = "user_data_fuzzy"
	MethodPlaceholder  MatchMethod = "placeholder"
	MethodDefaultHint  MatchMethod = "default_hint"
)

// FieldMatch binds a field to a resolved data value. Confidence and Method
// together justify the tier decision deterministically: identical inputs must
// always yield an identical match.
type FieldMatch struct {
	Field      FieldModel  `json:"field"`
	DataKey    string      `json:"dataKey"`
	Value      string      `json:"value"`
	Confidence float64     `json:"confidence"`
	Method     MatchMethod `json:"method"`
}

// ActionVerb names the interaction a planned action performs.
type ActionVerb string

const (
	VerbFill          ActionVerb = "fill"
	VerbSelect        ActionVerb = "select"
	VerbCheck         ActionVerb = "check"
	VerbUpload        ActionVerb = "upload"
	VerbClick         ActionVerb = "click"
	VerbTypeAndSelect ActionVerb = "type_and_select"
)

// Tier is the cost class of an action: 0 is free DOM manipulation, 3 is an
// LLM-assisted act call. Tiers 1 and 2 are reserved.
type Tier int

const (
	TierDOM   Tier = 0
	TierAgent Tier = 3
)

// ActionItem is a single planned interaction. Tier is immutable once the
// planner has assigned it.
type ActionItem struct {
	Field    FieldModel  `json:"field"`
	Verb     ActionVerb  `json:"verb"`
	Value    string      `json:"value"`
	Tier     Tier        `json:"tier"`
	Match    *FieldMatch `json:"match,omitempty"`
	Attempts int         `json:"attempts"`
}

// ActionPlan is an ordered action sequence, sorted ascending by each field's
// absolute vertical position with ties broken by original scan order.
type ActionPlan struct {
	Items     []ActionItem `json:"items"`
	Tier0     int          `json:"tier0"`
	Tier3     int          `json:"tier3"`
	Unmatched []FieldModel `json:"unmatched,omitempty"`
}

// -- Execution Outcome Schemas --

// OutcomeCode is the typed result of a tier-0 DOM routine. These are values,
// not errors: the escalation policy inspects which outcome occurred without
// exception control flow.
type OutcomeCode string

const (
	// OutcomeFilled means the routine wrote the value.
	OutcomeFilled OutcomeCode = "filled"
	// OutcomeNotFound means the element was missing from the DOM. Fast-escalate.
	OutcomeNotFound OutcomeCode = "not_found"
	// OutcomeAlreadyFilled means the element already held a value. Treated as
	// success; never escalated, never overwritten.
	OutcomeAlreadyFilled OutcomeCode = "already_filled"
	// OutcomeNoMatch means the element was present but no option or label
	// matched the requested value. Worth escalating.
	OutcomeNoMatch OutcomeCode = "no_match"
	// OutcomeNoHandler means no tier-0 routine exists for the field type.
	// Fast-escalate.
	OutcomeNoHandler OutcomeCode = "no_handler"
)

// FillOutcome carries the tier-0 outcome plus a human-readable detail.
type FillOutcome struct {
	Code   OutcomeCode `json:"code"`
	Detail string      `json:"detail,omitempty"`
}

// OK reports whether the outcome counts as success. An already filled field is
// success: the engine never overwrites a correct value.
func (o FillOutcome) OK() bool {
	return o.Code == OutcomeFilled || o.Code == OutcomeAlreadyFilled
}

// Escalatable reports whether a tier-3 attempt is warranted for this outcome.
func (o FillOutcome) Escalatable() bool {
	switch o.Code {
	case OutcomeNotFound, OutcomeNoMatch, OutcomeNoHandler:
		return true
	default:
		return false
	}
}

// ExecResult is the executor's verdict on one action. Outcome always holds the
// tier-0 classification even when a tier-3 attempt followed, so callers can
// classify the root cause.
type ExecResult struct {
	Success   bool        `json:"success"`
	Outcome   FillOutcome `json:"outcome"`
	Escalated bool        `json:"escalated"`
	Err       string      `json:"error,omitempty"`
}
