package verify

import (
	"context"
	stdjson "encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/autoapply/fillengine/api/schemas"
)

func TestCompare(t *testing.T) {
	tests := []struct {
		name      string
		fieldType schemas.FieldType
		expected  string
		actual    string
		wantPass  bool
	}{
		{"exact text", schemas.FieldTypeText, "Ada Lovelace", "Ada Lovelace", true},
		{"case and whitespace", schemas.FieldTypeText, "  Ada   Lovelace ", "ada lovelace", true},
		{"empty actual fails", schemas.FieldTypeText, "Ada", "", true},
		{"text substring", schemas.FieldTypeText, "Ada", "Ada Lovelace", true},
		{"text mismatch", schemas.FieldTypeText, "Ada", "Grace", false},

		{"phone formatting ignored", schemas.FieldTypePhone, "(555) 123-4567", "5551234567", true},
		{"phone country code tolerated", schemas.FieldTypePhone, "+1 555 123 4567", "555-123-4567", true},
		{"phone different digits", schemas.FieldTypePhone, "5551234567", "5559876543", false},
		{"phone short substring fallthrough", schemas.FieldTypePhone, "1234", "123456", true},

		{"date separators ignored", schemas.FieldTypeDate, "01/15/1990", "01-15-1990", true},
		{"date mismatch", schemas.FieldTypeDate, "01/15/1990", "02/15/1990", false},

		{"checkbox true", schemas.FieldTypeCheckbox, "true", "checked", true},
		{"checkbox yes", schemas.FieldTypeCheckbox, "yes", "checked", true},
		{"checkbox on", schemas.FieldTypeCheckbox, "on", "checked", true},
		{"checkbox unchecked fails", schemas.FieldTypeCheckbox, "true", "unchecked", false},

		{"select exact", schemas.FieldTypeSelect, "United States", "United States", true},
		{"select display superset", schemas.FieldTypeSelect, "Computer Science", "B.S. Computer Science", true},
		{"dropdown truncated display", schemas.FieldTypeCustomDropdown,
			"Bachelor of Science in Computer Engineering", "bachelor o...", true},
		{"select wrong option", schemas.FieldTypeSelect, "Canada", "Mexico", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pass, reason := Compare(tt.fieldType, tt.expected, tt.actual)
			if tt.name == "empty actual fails" {
				assert.False(t, pass)
				assert.Equal(t, "field is empty", reason)
				return
			}
			assert.Equal(t, tt.wantPass, pass, "reason: %s", reason)
			if tt.wantPass {
				assert.Contains(t, reason, "verified:")
			} else {
				assert.Contains(t, reason, "mismatch:")
			}
		})
	}
}

func TestCompareReasonEmbedsValues(t *testing.T) {
	_, reason := Compare(schemas.FieldTypeText, "Ada", "Grace")
	assert.Equal(t, `mismatch: expected "Ada", got "Grace"`, reason)
}

// readbackDriver returns a fixed value payload for every script.
type readbackDriver struct {
	payload string
	scripts []string
}

func (d *readbackDriver) ExecuteScript(_ context.Context, script string) (stdjson.RawMessage, error) {
	d.scripts = append(d.scripts, script)
	return stdjson.RawMessage(d.payload), nil
}

func (d *readbackDriver) Click(context.Context, string) error            { return nil }
func (d *readbackDriver) ClickXY(context.Context, float64, float64) error { return nil }
func (d *readbackDriver) TypeKeys(context.Context, string) error         { return nil }
func (d *readbackDriver) PressKey(context.Context, string) error         { return nil }

func TestVerify(t *testing.T) {
	d := &readbackDriver{payload: `{"value":"ada@example.com"}`}
	v := New(zap.NewNop(), d)

	res, err := v.Verify(context.Background(), schemas.FieldModel{
		Selector: "#em", Type: schemas.FieldTypeEmail,
	}, "ada@example.com")
	require.NoError(t, err)
	assert.True(t, res.Passed)
	assert.Equal(t, "ada@example.com", res.Actual)
	assert.Equal(t, "ada@example.com", res.Expected)
}

func TestVerifyMissingElement(t *testing.T) {
	d := &readbackDriver{payload: `{"value":""}`}
	v := New(zap.NewNop(), d)

	res, err := v.Verify(context.Background(), schemas.FieldModel{
		Selector: "#gone", Type: schemas.FieldTypeText,
	}, "Ada")
	require.NoError(t, err)
	assert.False(t, res.Passed)
	assert.Equal(t, "field is empty", res.Reason)
}

func TestReadbackRoutesPerType(t *testing.T) {
	tests := []struct {
		fieldType schemas.FieldType
		fragment  string
	}{
		{schemas.FieldTypeCheckbox, "el.checked"},
		{schemas.FieldTypeSelect, "selectedIndex"},
		{schemas.FieldTypeContentEditable, "textContent"},
	}
	for _, tt := range tests {
		d := &readbackDriver{payload: `{"value":"x"}`}
		v := New(zap.NewNop(), d)
		_, err := v.Readback(context.Background(), schemas.FieldModel{Selector: "#f", Type: tt.fieldType})
		require.NoError(t, err)
		require.Len(t, d.scripts, 1)
		assert.Contains(t, d.scripts[0], tt.fragment, "type %s", tt.fieldType)
	}
}
