// Package matcher assigns user data to scanned form fields through a strict
// priority cascade of matching strategies. Given identical inputs the cascade
// always produces identical matches; there is no randomness and no strategy
// reordering.
package matcher

import (
	"sort"

	"go.uber.org/zap"

	"github.com/autoapply/fillengine/api/schemas"
	"github.com/autoapply/fillengine/pkg/interfaces"
)

// Strategy confidence levels. Confidence and method together must justify the
// planner's tier decision deterministically.
const (
	ConfidenceAutomationID = 0.95
	ConfidenceNameAttr     = 0.95
	ConfidenceLabelExact   = 0.90
	ConfidenceQAFuzzy      = 0.85
	ConfidenceUserFuzzy    = 0.75
	ConfidencePlaceholder  = 0.70
	ConfidenceDefaultHint  = 0.60
)

// nameKeyTable maps normalized name/id attributes to canonical data keys.
// Process-wide read-only state; never mutated after init.
var nameKeyTable = map[string]string{
	"firstname":      "first_name",
	"givenname":      "first_name",
	"lastname":       "last_name",
	"familyname":     "last_name",
	"surname":        "last_name",
	"fullname":       "full_name",
	"name":           "full_name",
	"email":          "email",
	"emailaddress":   "email",
	"phone":          "phone",
	"phonenumber":    "phone",
	"mobile":         "phone",
	"mobilenumber":   "phone",
	"address":        "address",
	"addressline1":   "address",
	"streetaddress":  "address",
	"city":           "city",
	"state":          "state",
	"province":       "state",
	"zip":            "zip",
	"zipcode":        "zip",
	"postalcode":     "zip",
	"country":        "country",
	"linkedin":       "linkedin",
	"linkedinurl":    "linkedin",
	"website":        "website",
	"portfolio":      "website",
	"github":         "github",
	"githuburl":      "github",
	"company":        "current_company",
	"currentcompany": "current_company",
	"employer":       "current_company",
	"jobtitle":       "current_title",
	"title":          "current_title",
	"salary":         "desired_salary",
	"desiredsalary":  "desired_salary",
	"coverletter":    "cover_letter",
}

// Matcher resolves a page snapshot against one candidate's data.
type Matcher struct {
	logger   *zap.Logger
	userData map[string]string
	qa       map[string]string
	platform interfaces.PlatformHandler // nil for unrecognized platforms

	// Key sets are pre-sorted once so every lookup iterates in the same order.
	userKeys []sortedKey
	qaKeys   []sortedKey
}

// Output is the matcher's verdict on one page. Ineligible fields (filled,
// hidden, disabled) appear in neither slice.
type Output struct {
	Matches   []schemas.FieldMatch
	Unmatched []schemas.FieldModel
}

// New builds a Matcher over the given user data and Q&A overrides. platform
// may be nil, in which case only generic strategies apply.
func New(logger *zap.Logger, userData, qa map[string]string, platform interfaces.PlatformHandler) *Matcher {
	return &Matcher{
		logger:   logger.Named("matcher"),
		userData: userData,
		qa:       qa,
		platform: platform,
		userKeys: sortKeys(userData),
		qaKeys:   sortKeys(qa),
	}
}

func sortKeys(m map[string]string) []sortedKey {
	keys := make([]sortedKey, 0, len(m))
	for k := range m {
		keys = append(keys, sortedKey{raw: k, norm: NormalizeKeyAsLabel(k)})
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].raw < keys[j].raw })
	return keys
}

// Match runs the strategy cascade over every eligible field of the page.
func (m *Matcher) Match(page *schemas.PageModel) Output {
	var out Output
	for _, f := range page.Fields {
		if !f.Eligible() {
			continue
		}
		if match, ok := m.matchField(f); ok {
			out.Matches = append(out.Matches, match)
			continue
		}
		if f.Required {
			// Visibility for the caller only; a required field the matcher
			// cannot resolve is not an error, tier 3 will own it.
			m.logger.Warn("required field unmatched",
				zap.String("label", f.Label),
				zap.String("type", string(f.Type)),
				zap.String("selector", f.Selector))
		}
		out.Unmatched = append(out.Unmatched, f)
	}
	return out
}

// matchField tries each strategy in strict priority order and returns the
// first that yields a non-empty value.
func (m *Matcher) matchField(f schemas.FieldModel) (schemas.FieldMatch, bool) {
	type strategy func(schemas.FieldModel) (schemas.FieldMatch, bool)
	for _, s := range []strategy{
		m.byAutomationID,
		m.byNameAttr,
		m.byExactLabel,
		m.byFuzzyQA,
		m.byFuzzyUserData,
		m.byPlaceholder,
		m.byDefaultHint,
	} {
		if match, ok := s(f); ok {
			return match, true
		}
	}
	return schemas.FieldMatch{}, false
}

// lookupValue resolves a canonical key to a value, user data first.
func (m *Matcher) lookupValue(key string) string {
	if v, ok := m.userData[key]; ok && v != "" {
		return v
	}
	return m.qa[key]
}

func (m *Matcher) byAutomationID(f schemas.FieldModel) (schemas.FieldMatch, bool) {
	if f.AutomationID == "" || m.platform == nil {
		return schemas.FieldMatch{}, false
	}
	key, ok := m.platform.AutomationIDMap()[f.AutomationID]
	if !ok {
		return schemas.FieldMatch{}, false
	}
	value := m.lookupValue(key)
	if value == "" {
		return schemas.FieldMatch{}, false
	}
	return schemas.FieldMatch{
		Field: f, DataKey: key, Value: value,
		Confidence: ConfidenceAutomationID, Method: schemas.MethodAutomationID,
	}, true
}

func (m *Matcher) byNameAttr(f schemas.FieldModel) (schemas.FieldMatch, bool) {
	for _, attr := range []string{f.Name, f.DOMID} {
		norm := NormalizeName(attr)
		if norm == "" {
			continue
		}
		key, ok := nameKeyTable[norm]
		if !ok {
			continue
		}
		value := m.lookupValue(key)
		if value == "" {
			continue
		}
		return schemas.FieldMatch{
			Field: f, DataKey: key, Value: value,
			Confidence: ConfidenceNameAttr, Method: schemas.MethodNameAttr,
		}, true
	}
	return schemas.FieldMatch{}, false
}

func (m *Matcher) byExactLabel(f schemas.FieldModel) (schemas.FieldMatch, bool) {
	label := NormalizeLabel(f.Label)
	if label == "" {
		return schemas.FieldMatch{}, false
	}
	if m.platform != nil {
		if key, ok := m.platform.LabelMap()[label]; ok {
			if value := m.lookupValue(key); value != "" {
				return schemas.FieldMatch{
					Field: f, DataKey: key, Value: value,
					Confidence: ConfidenceLabelExact, Method: schemas.MethodLabelExact,
				}, true
			}
		}
	}
	for _, keys := range [][]sortedKey{m.userKeys, m.qaKeys} {
		for _, k := range keys {
			if k.norm != label {
				continue
			}
			if value := m.lookupValue(k.raw); value != "" {
				return schemas.FieldMatch{
					Field: f, DataKey: k.raw, Value: value,
					Confidence: ConfidenceLabelExact, Method: schemas.MethodLabelExact,
				}, true
			}
		}
	}
	return schemas.FieldMatch{}, false
}

func (m *Matcher) byFuzzyQA(f schemas.FieldModel) (schemas.FieldMatch, bool) {
	key, ok := fuzzyLookup(NormalizeLabel(f.Label), m.qaKeys)
	if !ok || m.qa[key] == "" {
		return schemas.FieldMatch{}, false
	}
	return schemas.FieldMatch{
		Field: f, DataKey: key, Value: m.qa[key],
		Confidence: ConfidenceQAFuzzy, Method: schemas.MethodQAFuzzy,
	}, true
}

func (m *Matcher) byFuzzyUserData(f schemas.FieldModel) (schemas.FieldMatch, bool) {
	key, ok := fuzzyLookup(NormalizeLabel(f.Label), m.userKeys)
	if !ok || m.userData[key] == "" {
		return schemas.FieldMatch{}, false
	}
	return schemas.FieldMatch{
		Field: f, DataKey: key, Value: m.userData[key],
		Confidence: ConfidenceUserFuzzy, Method: schemas.MethodUserFuzzy,
	}, true
}

func (m *Matcher) byPlaceholder(f schemas.FieldModel) (schemas.FieldMatch, bool) {
	placeholder := NormalizeLabel(f.Placeholder)
	if placeholder == "" {
		return schemas.FieldMatch{}, false
	}
	// Exact first, then the fuzzy cascade, both against user data only.
	for _, k := range m.userKeys {
		if k.norm == placeholder && m.userData[k.raw] != "" {
			return schemas.FieldMatch{
				Field: f, DataKey: k.raw, Value: m.userData[k.raw],
				Confidence: ConfidencePlaceholder, Method: schemas.MethodPlaceholder,
			}, true
		}
	}
	if key, ok := fuzzyLookup(placeholder, m.userKeys); ok && m.userData[key] != "" {
		return schemas.FieldMatch{
			Field: f, DataKey: key, Value: m.userData[key],
			Confidence: ConfidencePlaceholder, Method: schemas.MethodPlaceholder,
		}, true
	}
	return schemas.FieldMatch{}, false
}

func (m *Matcher) byDefaultHint(f schemas.FieldModel) (schemas.FieldMatch, bool) {
	var hints []string
	if aria := NormalizeLabel(f.AriaLabel); aria != "" && aria != NormalizeLabel(f.Label) {
		hints = append(hints, aria)
	}
	if hint, ok := f.Platform["hint"]; ok {
		hints = append(hints, NormalizeLabel(hint))
	}
	for _, hint := range hints {
		if key, ok := fuzzyLookup(hint, m.qaKeys); ok && m.qa[key] != "" {
			return schemas.FieldMatch{
				Field: f, DataKey: key, Value: m.qa[key],
				Confidence: ConfidenceDefaultHint, Method: schemas.MethodDefaultHint,
			}, true
		}
	}
	return schemas.FieldMatch{}, false
}
