package cookbook

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveTemplate(t *testing.T) {
	userData := map[string]string{
		"first_name": "Ada",
		"email":      "ada@example.com",
		"Email":      "shadow@example.com",
	}

	tests := []struct {
		name     string
		template string
		want     string
		wantOK   bool
	}{
		{"no references", "plain value", "plain value", true},
		{"single reference", "{{first_name}}", "Ada", true},
		{"reference with spaces", "{{ first_name }}", "Ada", true},
		{"embedded reference", "Hello {{first_name}}!", "Hello Ada!", true},
		{"two references", "{{first_name}} <{{email}}>", "Ada <ada@example.com>", true},
		{"case sensitive wins", "{{Email}}", "shadow@example.com", true},
		{"case insensitive fallback", "{{FIRST_NAME}}", "Ada", true},
		{"unresolvable", "{{middle_name}}", "", false},
		{"partially unresolvable", "{{first_name}} {{middle_name}}", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ResolveTemplate(tt.template, userData)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

// Ambiguous case-insensitive references must resolve identically every run.
func TestResolveTemplateDeterministicFallback(t *testing.T) {
	userData := map[string]string{
		"PHONE": "111",
		"Phone": "222",
	}
	first, ok := ResolveTemplate("{{phone}}", userData)
	assert.True(t, ok)
	for i := 0; i < 50; i++ {
		got, ok := ResolveTemplate("{{phone}}", userData)
		assert.True(t, ok)
		assert.Equal(t, first, got)
	}
	// Sorted candidate order: "PHONE" < "Phone".
	assert.Equal(t, "111", first)
}
