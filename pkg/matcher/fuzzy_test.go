package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keysFor(raw ...string) []sortedKey {
	m := make(map[string]string, len(raw))
	for _, k := range raw {
		m[k] = "x"
	}
	return sortKeys(m)
}

func TestFuzzyLookupCascade(t *testing.T) {
	tests := []struct {
		name    string
		label   string
		keys    []string
		want    string
		wantHit bool
	}{
		{
			name:    "exact normalized match",
			label:   "email address",
			keys:    []string{"email_address", "phone"},
			want:    "email_address",
			wantHit: true,
		},
		{
			name:    "label contains long key",
			label:   "work email address",
			keys:    []string{"email_address"},
			want:    "email_address",
			wantHit: true,
		},
		{
			name:  "label contains short key rejected",
			label: "preferred pronouns and title information",
			keys:  []string{"title"},
			// "title" is well under 60% of the label length.
			wantHit: false,
		},
		{
			name:    "key contains label",
			label:   "email",
			keys:    []string{"work_email"},
			want:    "work_email",
			wantHit: true,
		},
		{
			name:  "key contains small fraction of label rejected",
			label: "salary",
			keys:  []string{"desired_annual_salary"},
			// "salary" is under half the key's length.
			wantHit: false,
		},
		{
			name:  "key contains tiny label rejected",
			label: "zip",
			keys:  []string{"zip_or_postal_code"},
			// Labels of 3 characters or fewer never use the containment pass.
			wantHit: false,
		},
		{
			name:    "word overlap",
			label:   "education level highest",
			keys:    []string{"highest_level_of_education"},
			want:    "highest_level_of_education",
			wantHit: true,
		},
		{
			name:    "stemmed overlap",
			label:   "years working engineering",
			keys:    []string{"engineer years work"},
			want:    "engineer years work",
			wantHit: true,
		},
		{
			name:    "no match",
			label:   "favorite color",
			keys:    []string{"first_name", "email"},
			wantHit: false,
		},
		{
			name:    "empty label",
			label:   "",
			keys:    []string{"first_name"},
			wantHit: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := fuzzyLookup(tt.label, keysFor(tt.keys...))
			require.Equal(t, tt.wantHit, ok)
			if tt.wantHit {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

// Identical inputs must always resolve to the same key even when several
// candidates would satisfy the same pass.
func TestFuzzyLookupDeterministic(t *testing.T) {
	keys := keysFor("email_address", "email_address_backup", "backup_email_address")
	first, ok := fuzzyLookup("email address", keys)
	require.True(t, ok)
	for i := 0; i < 50; i++ {
		got, ok := fuzzyLookup("email address", keysFor("email_address", "email_address_backup", "backup_email_address"))
		require.True(t, ok)
		assert.Equal(t, first, got)
	}
}

func TestStem(t *testing.T) {
	tests := []struct{ in, want string }{
		{"engineering", "engineer"},
		{"education", "educa"},
		{"worked", "work"},
		{"years", "year"},
		{"sing", "sing"},
		{"red", "red"},
		{"cats", "cat"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, stem(tt.in), "input %q", tt.in)
	}
}
