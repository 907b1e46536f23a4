package executor

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autoapply/fillengine/api/schemas"
)

func TestBestOption(t *testing.T) {
	tests := []struct {
		name      string
		options   []string
		value     string
		want      string
		wantScore int
	}{
		{
			name:      "exact",
			options:   []string{"Canada", "United States", "Mexico"},
			value:     "United States",
			want:      "United States",
			wantScore: 3,
		},
		{
			name:      "case insensitive exact",
			options:   []string{"YES", "No"},
			value:     "yes",
			want:      "YES",
			wantScore: 3,
		},
		{
			name:      "prefix beats contains",
			options:   []string{"Great Engineering", "Engineering"},
			value:     "Engineer",
			want:      "Engineering",
			wantScore: 2,
		},
		{
			name:      "contains",
			options:   []string{"B.S. in Computer Science"},
			value:     "Computer Science",
			wantScore: 1,
			want:      "B.S. in Computer Science",
		},
		{
			name:      "value contains option",
			options:   []string{"Bachelor"},
			value:     "Bachelor of Science",
			want:      "Bachelor",
			wantScore: 0,
		},
		{
			name:      "no match",
			options:   []string{"United States", "Canada"},
			value:     "USA",
			want:      "",
			wantScore: -1,
		},
		{
			name:      "empty options",
			options:   nil,
			value:     "anything",
			want:      "",
			wantScore: -1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, score := BestOption(tt.options, tt.value)
			assert.Equal(t, tt.wantScore, score)
			assert.Equal(t, tt.want, got)
		})
	}
}

func selectItem(options []string, value string) *schemas.ActionItem {
	return &schemas.ActionItem{
		Field: schemas.FieldModel{Selector: "#sel", Type: schemas.FieldTypeSelect, Options: options},
		Verb:  schemas.VerbSelect,
		Value: value,
		Tier:  schemas.TierDOM,
	}
}

func TestFillSelectNoMatchSkipsDOM(t *testing.T) {
	d := &fakeDriver{}
	e := newTestExecutor(d, &fakeActor{stub: true})

	out, err := e.ExecuteTier0(context.Background(), selectItem([]string{"United States", "Canada"}, "USA"))
	require.NoError(t, err)
	assert.Equal(t, schemas.OutcomeNoMatch, out.Code)
	assert.Empty(t, d.scripts, "no commit script should run without a scored winner")
}

func TestFillSelectCommitsWinner(t *testing.T) {
	d := &fakeDriver{results: []string{`{"code":"filled"}`}}
	e := newTestExecutor(d, &fakeActor{stub: true})

	out, err := e.ExecuteTier0(context.Background(), selectItem([]string{"Canada", "United States"}, "united states"))
	require.NoError(t, err)
	assert.Equal(t, schemas.OutcomeFilled, out.Code)
	require.Len(t, d.scripts, 1)
	assert.Contains(t, d.scripts[0], "United States")
}

func TestFillDateTypesAndTabs(t *testing.T) {
	item := &schemas.ActionItem{
		Field: schemas.FieldModel{Selector: "#dob", Type: schemas.FieldTypeDate},
		Verb:  schemas.VerbFill,
		Value: "01/15/1990",
		Tier:  schemas.TierDOM,
	}
	d := &fakeDriver{results: []string{`{"code":"filled"}`}}
	e := newTestExecutor(d, &fakeActor{stub: true})

	out, err := e.ExecuteTier0(context.Background(), item)
	require.NoError(t, err)
	assert.Equal(t, schemas.OutcomeFilled, out.Code)
	assert.Equal(t, []string{"#dob"}, d.clicks)
	assert.Equal(t, []string{"01/15/1990"}, d.typed)
	assert.Equal(t, []string{"Tab"}, d.pressed)
}

func TestFillDateMissingElement(t *testing.T) {
	d := &fakeDriver{results: []string{`{"code":"not_found"}`}}
	e := newTestExecutor(d, &fakeActor{stub: true})

	item := &schemas.ActionItem{
		Field: schemas.FieldModel{Selector: "#dob", Type: schemas.FieldTypeDate},
		Value: "01/15/1990",
		Tier:  schemas.TierDOM,
	}
	out, err := e.ExecuteTier0(context.Background(), item)
	require.NoError(t, err)
	assert.Equal(t, schemas.OutcomeNotFound, out.Code)
	assert.Empty(t, d.clicks)
	assert.Empty(t, d.typed)
}

func TestFillCustomDropdownPopupNeverOpens(t *testing.T) {
	d := &fakeDriver{results: []string{
		`{"code":"filled"}`,        // element exists
		`{"open":false}`,           // popup state after click
	}}
	e := newTestExecutor(d, &fakeActor{stub: true})

	item := &schemas.ActionItem{
		Field: schemas.FieldModel{Selector: "#dd", Type: schemas.FieldTypeCustomDropdown},
		Verb:  schemas.VerbSelect,
		Value: "Canada",
		Tier:  schemas.TierDOM,
	}
	out, err := e.ExecuteTier0(context.Background(), item)
	require.NoError(t, err)
	assert.Equal(t, schemas.OutcomeNoMatch, out.Code)
	assert.Contains(t, out.Detail, "popup did not open")
	assert.Equal(t, []string{"#dd"}, d.clicks)
}

func TestFillCustomDropdownPicksFirstTerm(t *testing.T) {
	d := &fakeDriver{results: []string{
		`{"code":"filled"}`,                        // element exists
		`{"open":true,"hasFilter":false}`,          // popup state
		`{"code":"filled","detail":"Canada"}`,      // pick succeeds on the full value
		`{"code":"filled"}`,                        // whitespace close click
	}}
	e := newTestExecutor(d, &fakeActor{stub: true})

	item := &schemas.ActionItem{
		Field: schemas.FieldModel{Selector: "#dd", Type: schemas.FieldTypeCustomDropdown},
		Verb:  schemas.VerbSelect,
		Value: "Canada",
		Tier:  schemas.TierDOM,
	}
	out, err := e.ExecuteTier0(context.Background(), item)
	require.NoError(t, err)
	assert.Equal(t, schemas.OutcomeFilled, out.Code)
	assert.Empty(t, d.pressed, "no Escape after a successful pick")
}

func TestFillCustomDropdownExhaustsTermsAndCloses(t *testing.T) {
	d := &fakeDriver{results: []string{
		`{"code":"filled"}`,               // element exists
		`{"open":true,"hasFilter":false}`, // popup state
		`{"code":"no_match"}`,             // "USA"
	}}
	e := newTestExecutor(d, &fakeActor{stub: true})

	item := &schemas.ActionItem{
		Field: schemas.FieldModel{Selector: "#dd", Type: schemas.FieldTypeCustomDropdown},
		Verb:  schemas.VerbSelect,
		Value: "USA",
		Tier:  schemas.TierDOM,
	}
	out, err := e.ExecuteTier0(context.Background(), item)
	require.NoError(t, err)
	assert.Equal(t, schemas.OutcomeNoMatch, out.Code)
	assert.Equal(t, []string{"Escape"}, d.pressed, "failed search must close with Escape")
}
