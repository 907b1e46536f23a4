package platforms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://acme.wd5.myworkdayjobs.com/en-US/careers/job/12345/apply", "workday"},
		{"https://www.workday.com/apply", "workday"},
		{"https://boards.greenhouse.io/acme/jobs/987", "greenhouse"},
		{"https://BOARDS.GREENHOUSE.IO/acme", "greenhouse"},
		{"https://jobs.lever.co/acme/abc", ""},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Detect(tt.url), tt.url)
	}
}

func TestLookup(t *testing.T) {
	wd := Lookup("workday")
	require.NotNil(t, wd)
	assert.Equal(t, "workday", wd.Name())

	assert.NotNil(t, Lookup(" Greenhouse "), "lookup normalizes case and whitespace")
	assert.Nil(t, Lookup("lever"))
	assert.Nil(t, Lookup(""))
}
