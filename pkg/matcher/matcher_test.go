package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/autoapply/fillengine/api/schemas"
	"github.com/autoapply/fillengine/pkg/matcher/platforms"
)

func eligibleField(f schemas.FieldModel) schemas.FieldModel {
	f.Empty = true
	f.Visible = true
	return f
}

func pageWith(fields ...schemas.FieldModel) *schemas.PageModel {
	return &schemas.PageModel{URL: "https://jobs.example.com/apply", Fields: fields}
}

func TestMatchByNameAttribute(t *testing.T) {
	m := New(zap.NewNop(), map[string]string{"first_name": "Ada", "email": "ada@example.com"}, nil, nil)

	out := m.Match(pageWith(
		eligibleField(schemas.FieldModel{Selector: "#fn", Name: "first-name", Type: schemas.FieldTypeText}),
		eligibleField(schemas.FieldModel{Selector: "#em", Name: "email", Type: schemas.FieldTypeEmail}),
	))

	require.Len(t, out.Matches, 2)
	assert.Empty(t, out.Unmatched)
	assert.Equal(t, "first_name", out.Matches[0].DataKey)
	assert.Equal(t, "Ada", out.Matches[0].Value)
	assert.Equal(t, schemas.MethodNameAttr, out.Matches[0].Method)
	assert.Equal(t, ConfidenceNameAttr, out.Matches[0].Confidence)
	assert.Equal(t, "ada@example.com", out.Matches[1].Value)
}

func TestMatchByAutomationID(t *testing.T) {
	m := New(zap.NewNop(), map[string]string{"first_name": "Ada"}, nil, platforms.Lookup("workday"))

	out := m.Match(pageWith(eligibleField(schemas.FieldModel{
		Selector:     "#x",
		AutomationID: "legalNameSection_firstName",
		Type:         schemas.FieldTypeText,
	})))

	require.Len(t, out.Matches, 1)
	assert.Equal(t, schemas.MethodAutomationID, out.Matches[0].Method)
	assert.Equal(t, "first_name", out.Matches[0].DataKey)
	assert.Equal(t, "Ada", out.Matches[0].Value)
}

func TestMatchByExactLabel(t *testing.T) {
	m := New(zap.NewNop(), map[string]string{"email_address": "ada@example.com"}, nil, nil)

	out := m.Match(pageWith(eligibleField(schemas.FieldModel{
		Selector: "#em", Label: "Email Address *", Type: schemas.FieldTypeEmail,
	})))

	require.Len(t, out.Matches, 1)
	assert.Equal(t, schemas.MethodLabelExact, out.Matches[0].Method)
	assert.Equal(t, ConfidenceLabelExact, out.Matches[0].Confidence)
	assert.Equal(t, "ada@example.com", out.Matches[0].Value)
}

func TestMatchQABeforeUserData(t *testing.T) {
	// The fuzzy Q&A pass outranks the fuzzy user-data pass, so an answered
	// question wins over a generic profile key with the same label shape.
	m := New(zap.NewNop(),
		map[string]string{"notice_period_weeks": "4"},
		map[string]string{"notice_period": "two weeks"},
		nil)

	out := m.Match(pageWith(eligibleField(schemas.FieldModel{
		Selector: "#np", Label: "Current Notice Period", Type: schemas.FieldTypeText,
	})))

	require.Len(t, out.Matches, 1)
	assert.Equal(t, schemas.MethodQAFuzzy, out.Matches[0].Method)
	assert.Equal(t, "two weeks", out.Matches[0].Value)
}

func TestMatchByPlaceholder(t *testing.T) {
	m := New(zap.NewNop(), map[string]string{"linkedin": "https://linkedin.com/in/ada"}, nil, nil)

	out := m.Match(pageWith(eligibleField(schemas.FieldModel{
		Selector: "#li", Placeholder: "LinkedIn", Type: schemas.FieldTypeText,
	})))

	require.Len(t, out.Matches, 1)
	assert.Equal(t, schemas.MethodPlaceholder, out.Matches[0].Method)
	assert.Equal(t, ConfidencePlaceholder, out.Matches[0].Confidence)
}

func TestMatchSkipsIneligibleFields(t *testing.T) {
	m := New(zap.NewNop(), map[string]string{"first_name": "Ada"}, nil, nil)

	filled := schemas.FieldModel{Selector: "#a", Name: "first_name", Type: schemas.FieldTypeText, Visible: true, Empty: false}
	hidden := schemas.FieldModel{Selector: "#b", Name: "first_name", Type: schemas.FieldTypeText, Visible: false, Empty: true}
	disabled := eligibleField(schemas.FieldModel{Selector: "#c", Name: "first_name", Type: schemas.FieldTypeText})
	disabled.Disabled = true

	out := m.Match(pageWith(filled, hidden, disabled))
	assert.Empty(t, out.Matches)
	assert.Empty(t, out.Unmatched)
}

func TestMatchUnresolvedFieldsReported(t *testing.T) {
	m := New(zap.NewNop(), map[string]string{"first_name": "Ada"}, nil, nil)

	f := eligibleField(schemas.FieldModel{Selector: "#q", Label: "Why do you want this job?", Type: schemas.FieldTypeTextarea})
	f.Required = true

	out := m.Match(pageWith(f))
	assert.Empty(t, out.Matches)
	require.Len(t, out.Unmatched, 1)
	assert.Equal(t, "#q", out.Unmatched[0].Selector)
}

func TestMatchEmptyValueNeverMatches(t *testing.T) {
	m := New(zap.NewNop(), map[string]string{"first_name": ""}, nil, nil)

	out := m.Match(pageWith(eligibleField(schemas.FieldModel{
		Selector: "#fn", Name: "first_name", Type: schemas.FieldTypeText,
	})))
	assert.Empty(t, out.Matches)
	assert.Len(t, out.Unmatched, 1)
}

// Identical inputs must yield identical matches across repeated runs.
func TestMatchDeterministic(t *testing.T) {
	userData := map[string]string{
		"email_address":        "ada@example.com",
		"backup_email_address": "backup@example.com",
	}
	field := eligibleField(schemas.FieldModel{Selector: "#em", Label: "Work Email Address", Type: schemas.FieldTypeEmail})

	first := New(zap.NewNop(), userData, nil, nil).Match(pageWith(field))
	require.Len(t, first.Matches, 1)
	for i := 0; i < 25; i++ {
		again := New(zap.NewNop(), userData, nil, nil).Match(pageWith(field))
		require.Len(t, again.Matches, 1)
		assert.Equal(t, first.Matches[0].DataKey, again.Matches[0].DataKey)
	}
}
