package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/autoapply/fillengine/api/schemas"
)

func TestAssignTier(t *testing.T) {
	tests := []struct {
		name       string
		fieldType  schemas.FieldType
		confidence float64
		want       schemas.Tier
	}{
		{"password always agent", schemas.FieldTypePassword, 0.99, schemas.TierAgent},
		{"unknown always agent", schemas.FieldTypeUnknown, 0.99, schemas.TierAgent},
		{"typeahead always dom", schemas.FieldTypeTypeahead, 0.10, schemas.TierDOM},
		{"text high confidence", schemas.FieldTypeText, 0.95, schemas.TierDOM},
		{"text low band", schemas.FieldTypeText, 0.65, schemas.TierDOM},
		{"text below low band", schemas.FieldTypeText, 0.59, schemas.TierAgent},
		{"checkbox high confidence", schemas.FieldTypeCheckbox, 0.85, schemas.TierDOM},
		{"checkbox low band excluded", schemas.FieldTypeCheckbox, 0.70, schemas.TierAgent},
		{"date low band excluded", schemas.FieldTypeDate, 0.75, schemas.TierAgent},
		{"file low band excluded", schemas.FieldTypeFile, 0.79, schemas.TierAgent},
		{"file high confidence", schemas.FieldTypeFile, 0.80, schemas.TierDOM},
		{"dropdown low band", schemas.FieldTypeCustomDropdown, 0.62, schemas.TierDOM},
		{"contenteditable never tier0", schemas.FieldTypeContentEditable, 0.95, schemas.TierAgent},
		{"upload button never tier0", schemas.FieldTypeUploadButton, 0.95, schemas.TierAgent},
		{"boundary high", schemas.FieldTypeDate, 0.80, schemas.TierDOM},
		{"boundary low", schemas.FieldTypeSelect, 0.60, schemas.TierDOM},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AssignTier(tt.fieldType, tt.confidence))
		})
	}
}

// Every member of the closed type enumeration must produce a tier without
// panicking, at both confidence extremes.
func TestAssignTierTotal(t *testing.T) {
	for _, ft := range schemas.AllFieldTypes {
		for _, c := range []float64{0.0, 0.5, 0.7, 0.9, 1.0} {
			tier := AssignTier(ft, c)
			assert.Contains(t, []schemas.Tier{schemas.TierDOM, schemas.TierAgent}, tier,
				"type %s confidence %v", ft, c)
		}
	}
}

func TestVerb(t *testing.T) {
	assert.Equal(t, schemas.VerbFill, Verb(schemas.FieldTypeText))
	assert.Equal(t, schemas.VerbSelect, Verb(schemas.FieldTypeSelect))
	assert.Equal(t, schemas.VerbSelect, Verb(schemas.FieldTypeRadio))
	assert.Equal(t, schemas.VerbCheck, Verb(schemas.FieldTypeCheckbox))
	assert.Equal(t, schemas.VerbUpload, Verb(schemas.FieldTypeFile))
	assert.Equal(t, schemas.VerbTypeAndSelect, Verb(schemas.FieldTypeTypeahead))
	assert.Equal(t, schemas.VerbFill, Verb(schemas.FieldType("bogus")))
}

func match(sel string, y float64, idx int, ft schemas.FieldType, conf float64, value string) schemas.FieldMatch {
	return schemas.FieldMatch{
		Field: schemas.FieldModel{
			Selector:  sel,
			Type:      ft,
			AbsoluteY: y,
			ScanIndex: idx,
		},
		Value:      value,
		Confidence: conf,
	}
}

func TestPlanOrdersTopToBottom(t *testing.T) {
	p := New(zap.NewNop())

	plan := p.Plan([]schemas.FieldMatch{
		match("#bottom", 900, 0, schemas.FieldTypeText, 0.95, "c"),
		match("#top", 100, 1, schemas.FieldTypeText, 0.95, "a"),
		match("#middle", 500, 2, schemas.FieldTypeText, 0.95, "b"),
	}, nil)

	require.Len(t, plan.Items, 3)
	assert.Equal(t, "#top", plan.Items[0].Field.Selector)
	assert.Equal(t, "#middle", plan.Items[1].Field.Selector)
	assert.Equal(t, "#bottom", plan.Items[2].Field.Selector)
}

func TestPlanStableTieBreak(t *testing.T) {
	p := New(zap.NewNop())

	plan := p.Plan([]schemas.FieldMatch{
		match("#second", 200, 5, schemas.FieldTypeText, 0.95, "b"),
		match("#first", 200, 2, schemas.FieldTypeText, 0.95, "a"),
	}, nil)

	require.Len(t, plan.Items, 2)
	assert.Equal(t, "#first", plan.Items[0].Field.Selector)
	assert.Equal(t, "#second", plan.Items[1].Field.Selector)
}

func TestPlanUnmatchedBecomeAgentItems(t *testing.T) {
	p := New(zap.NewNop())

	unmatched := []schemas.FieldModel{
		{Selector: "#essay", Type: schemas.FieldTypeTextarea, AbsoluteY: 300, ScanIndex: 3},
	}
	plan := p.Plan([]schemas.FieldMatch{
		match("#name", 100, 0, schemas.FieldTypeText, 0.95, "Ada"),
	}, unmatched)

	require.Len(t, plan.Items, 2)
	assert.Equal(t, schemas.TierDOM, plan.Items[0].Tier)
	assert.Equal(t, schemas.TierAgent, plan.Items[1].Tier)
	assert.Empty(t, plan.Items[1].Value)
	assert.Equal(t, 1, plan.Tier0)
	assert.Equal(t, 1, plan.Tier3)
	assert.Equal(t, unmatched, plan.Unmatched)
}

func TestPlanItemCarriesMatch(t *testing.T) {
	p := New(zap.NewNop())
	m := match("#name", 100, 0, schemas.FieldTypeText, 0.95, "Ada")

	plan := p.Plan([]schemas.FieldMatch{m}, nil)
	require.Len(t, plan.Items, 1)
	require.NotNil(t, plan.Items[0].Match)
	assert.Equal(t, "Ada", plan.Items[0].Match.Value)
	assert.Equal(t, schemas.VerbFill, plan.Items[0].Verb)
}
