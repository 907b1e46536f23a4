package cookbook

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/autoapply/fillengine/api/schemas"
)

func TestURLPattern(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{
			name: "query and scheme dropped",
			url:  "https://boards.greenhouse.io/acme/jobs/apply?gh_src=abc123",
			want: "boards.greenhouse.io/acme/jobs/apply",
		},
		{
			name: "numeric segment wildcarded",
			url:  "https://boards.greenhouse.io/acme/jobs/4012345/apply",
			want: "boards.greenhouse.io/acme/jobs/*/apply",
		},
		{
			name: "trailing numeric segment",
			url:  "https://jobs.example.com/postings/98765",
			want: "jobs.example.com/postings/*",
		},
		{
			name: "host lowercased",
			url:  "https://Jobs.Example.com/Apply",
			want: "jobs.example.com/apply",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, URLPattern(tt.url))
		})
	}
}

func TestFingerprintStableUnderFieldReorder(t *testing.T) {
	a := schemas.FieldModel{Type: schemas.FieldTypeText, Name: "first_name"}
	b := schemas.FieldModel{Type: schemas.FieldTypeEmail, Name: "email"}
	c := schemas.FieldModel{Type: schemas.FieldTypeSelect, AutomationID: "countryDropdown"}

	p1 := &schemas.PageModel{URL: "https://jobs.example.com/apply", Fields: []schemas.FieldModel{a, b, c}}
	p2 := &schemas.PageModel{URL: "https://jobs.example.com/apply", Fields: []schemas.FieldModel{c, a, b}}

	assert.Equal(t, Fingerprint(p1), Fingerprint(p2))
}

func TestFingerprintSensitiveToStructure(t *testing.T) {
	base := &schemas.PageModel{
		URL:    "https://jobs.example.com/apply",
		Fields: []schemas.FieldModel{{Type: schemas.FieldTypeText, Name: "first_name"}},
	}
	extra := &schemas.PageModel{
		URL: "https://jobs.example.com/apply",
		Fields: []schemas.FieldModel{
			{Type: schemas.FieldTypeText, Name: "first_name"},
			{Type: schemas.FieldTypeEmail, Name: "email"},
		},
	}
	otherURL := &schemas.PageModel{
		URL:    "https://jobs.example.com/review",
		Fields: base.Fields,
	}

	assert.NotEqual(t, Fingerprint(base), Fingerprint(extra))
	assert.NotEqual(t, Fingerprint(base), Fingerprint(otherURL))
}

func TestFingerprintIgnoresPostingID(t *testing.T) {
	fields := []schemas.FieldModel{{Type: schemas.FieldTypeText, Name: "first_name"}}
	p1 := &schemas.PageModel{URL: "https://jobs.example.com/postings/111/apply", Fields: fields}
	p2 := &schemas.PageModel{URL: "https://jobs.example.com/postings/222/apply", Fields: fields}
	assert.Equal(t, Fingerprint(p1), Fingerprint(p2))
}
