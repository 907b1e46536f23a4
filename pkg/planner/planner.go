// Package planner turns field matches into an ordered, tiered action plan.
// Tier assignment is a pure function of (field type, confidence); ordering is
// top-to-bottom by the field's absolute vertical position so execution fills
// the page the way a person would and never scroll-jumps past in-flight
// interactions.
package planner

import (
	"sort"

	"go.uber.org/zap"

	"github.com/autoapply/fillengine/api/schemas"
)

// Confidence bands for tier-0 eligibility.
const (
	highConfidence = 0.80
	lowConfidence  = 0.60
)

// wideBand lists the field types eligible for tier 0 at high confidence.
var wideBand = map[schemas.FieldType]bool{
	schemas.FieldTypeText:           true,
	schemas.FieldTypeEmail:          true,
	schemas.FieldTypePhone:          true,
	schemas.FieldTypeNumber:         true,
	schemas.FieldTypeTextarea:       true,
	schemas.FieldTypeSelect:         true,
	schemas.FieldTypeCheckbox:       true,
	schemas.FieldTypeDate:           true,
	schemas.FieldTypeFile:           true,
	schemas.FieldTypeCustomDropdown: true,
	schemas.FieldTypeRadio:          true,
	schemas.FieldTypeAriaRadio:      true,
}

// narrowBand lists the types that still qualify at the lower confidence band.
// Checkbox, date, and file are deliberately absent: a mistaken check, date, or
// upload is harder to observe and undo than a mistaken text value.
var narrowBand = map[schemas.FieldType]bool{
	schemas.FieldTypeText:           true,
	schemas.FieldTypeEmail:          true,
	schemas.FieldTypePhone:          true,
	schemas.FieldTypeNumber:         true,
	schemas.FieldTypeTextarea:       true,
	schemas.FieldTypeSelect:         true,
	schemas.FieldTypeCustomDropdown: true,
	schemas.FieldTypeRadio:          true,
	schemas.FieldTypeAriaRadio:      true,
}

// verbTable is the fixed field-type to action-verb mapping.
var verbTable = map[schemas.FieldType]schemas.ActionVerb{
	schemas.FieldTypeText:            schemas.VerbFill,
	schemas.FieldTypeEmail:           schemas.VerbFill,
	schemas.FieldTypePhone:           schemas.VerbFill,
	schemas.FieldTypeNumber:          schemas.VerbFill,
	schemas.FieldTypeDate:            schemas.VerbFill,
	schemas.FieldTypeTextarea:        schemas.VerbFill,
	schemas.FieldTypeContentEditable: schemas.VerbFill,
	schemas.FieldTypePassword:        schemas.VerbFill,
	schemas.FieldTypeUnknown:         schemas.VerbFill,
	schemas.FieldTypeSelect:          schemas.VerbSelect,
	schemas.FieldTypeCustomDropdown:  schemas.VerbSelect,
	schemas.FieldTypeRadio:           schemas.VerbSelect,
	schemas.FieldTypeAriaRadio:       schemas.VerbSelect,
	schemas.FieldTypeCheckbox:        schemas.VerbCheck,
	schemas.FieldTypeFile:            schemas.VerbUpload,
	schemas.FieldTypeUploadButton:    schemas.VerbUpload,
	schemas.FieldTypeTypeahead:       schemas.VerbTypeAndSelect,
}

// Planner builds action plans. It is stateless; one instance serves all runs.
type Planner struct {
	logger *zap.Logger
}

func New(logger *zap.Logger) *Planner {
	return &Planner{logger: logger.Named("planner")}
}

// AssignTier decides the cost tier for a field type at a given confidence.
// Rules are evaluated in order, first match wins. Exported because tests and
// the cookbook learner rely on it being a pure function.
func AssignTier(fieldType schemas.FieldType, confidence float64) schemas.Tier {
	switch {
	case fieldType == schemas.FieldTypePassword:
		// DOM automation never touches raw credentials outside login flows.
		return schemas.TierAgent
	case fieldType == schemas.FieldTypeUnknown:
		return schemas.TierAgent
	case fieldType == schemas.FieldTypeTypeahead:
		return schemas.TierDOM
	case confidence >= highConfidence && wideBand[fieldType]:
		return schemas.TierDOM
	case confidence >= lowConfidence && narrowBand[fieldType]:
		return schemas.TierDOM
	default:
		return schemas.TierAgent
	}
}

// Verb returns the action verb for a field type, defaulting to fill.
func Verb(fieldType schemas.FieldType) schemas.ActionVerb {
	if v, ok := verbTable[fieldType]; ok {
		return v
	}
	return schemas.VerbFill
}

// Plan converts matches and unmatched fields into an ordered ActionPlan.
// Every match becomes a tier-0 or tier-3 item; every unmatched field becomes a
// tier-3 item with an empty value, the agent supplies its own.
func (p *Planner) Plan(matches []schemas.FieldMatch, unmatched []schemas.FieldModel) *schemas.ActionPlan {
	plan := &schemas.ActionPlan{Unmatched: unmatched}

	for i := range matches {
		m := matches[i]
		plan.Items = append(plan.Items, schemas.ActionItem{
			Field: m.Field,
			Verb:  Verb(m.Field.Type),
			Value: m.Value,
			Tier:  AssignTier(m.Field.Type, m.Confidence),
			Match: &m,
		})
	}
	for _, f := range unmatched {
		plan.Items = append(plan.Items, schemas.ActionItem{
			Field: f,
			Verb:  Verb(f.Type),
			Tier:  schemas.TierAgent,
		})
	}

	// Top-to-bottom, stable: equal Y keeps original scan order.
	sort.SliceStable(plan.Items, func(i, j int) bool {
		a, b := plan.Items[i], plan.Items[j]
		if a.Field.AbsoluteY != b.Field.AbsoluteY {
			return a.Field.AbsoluteY < b.Field.AbsoluteY
		}
		return a.Field.ScanIndex < b.Field.ScanIndex
	})

	for _, item := range plan.Items {
		if item.Tier == schemas.TierDOM {
			plan.Tier0++
		} else {
			plan.Tier3++
		}
	}

	p.logger.Debug("plan built",
		zap.Int("tier0", plan.Tier0),
		zap.Int("tier3", plan.Tier3),
		zap.Int("unmatched", len(unmatched)))
	return plan
}
