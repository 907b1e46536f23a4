package executor

import (
	"context"
	"fmt"
	"strings"

	"github.com/autoapply/fillengine/api/schemas"
)

// fillText covers text, email, phone, number, and textarea inputs.
func (e *Executor) fillText(ctx context.Context, item *schemas.ActionItem) (schemas.FillOutcome, error) {
	return e.evalOutcome(ctx, fillTextJS(item.Field.Selector, item.Value))
}

func (e *Executor) fillContentEditable(ctx context.Context, item *schemas.ActionItem) (schemas.FillOutcome, error) {
	return e.evalOutcome(ctx, fillContentEditableJS(item.Field.Selector, item.Value))
}

// fillSelect scores the scanned option texts Go-side, then commits the winner
// through the native setter in the page.
func (e *Executor) fillSelect(ctx context.Context, item *schemas.ActionItem) (schemas.FillOutcome, error) {
	best, score := BestOption(item.Field.Options, item.Value)
	if score < 0 {
		return schemas.FillOutcome{
			Code:   schemas.OutcomeNoMatch,
			Detail: fmt.Sprintf("no option matched %q", item.Value),
		}, nil
	}
	return e.evalOutcome(ctx, selectOptionJS(item.Field.Selector, best))
}

// BestOption scores each option text against the requested value: exact text
// or value match 3, text starts-with 2, text contains 1, value contains option
// text 0. Highest score wins, first hit breaks ties; -1 means nothing matched.
func BestOption(options []string, value string) (string, int) {
	want := strings.ToLower(strings.TrimSpace(value))
	best, bestScore := "", -1
	for _, opt := range options {
		text := strings.ToLower(strings.TrimSpace(opt))
		if text == "" {
			continue
		}
		score := -1
		switch {
		case text == want:
			score = 3
		case strings.HasPrefix(text, want) && want != "":
			score = 2
		case strings.Contains(text, want) && want != "":
			score = 1
		case strings.Contains(want, text):
			score = 0
		}
		if score > bestScore {
			best, bestScore = opt, score
		}
	}
	return best, bestScore
}

func (e *Executor) fillRadio(ctx context.Context, item *schemas.ActionItem) (schemas.FillOutcome, error) {
	return e.evalOutcome(ctx, fillRadioJS(item.Field.Selector, item.Field.RadioGroup, item.Value, false))
}

func (e *Executor) fillAriaRadio(ctx context.Context, item *schemas.ActionItem) (schemas.FillOutcome, error) {
	return e.evalOutcome(ctx, fillRadioJS(item.Field.Selector, item.Field.RadioGroup, item.Value, true))
}

func (e *Executor) checkCheckbox(ctx context.Context, item *schemas.ActionItem) (schemas.FillOutcome, error) {
	return e.evalOutcome(ctx, checkCheckboxJS(item.Field.Selector))
}

// fillDate types the literal value as keystrokes so segmented month/day/year
// widgets that auto-advance on input still work, then commits with Tab.
func (e *Executor) fillDate(ctx context.Context, item *schemas.ActionItem) (schemas.FillOutcome, error) {
	out, err := e.evalOutcome(ctx, elementExistsJS(item.Field.Selector))
	if err != nil || !out.OK() {
		return out, err
	}
	if err := e.driver.Click(ctx, item.Field.Selector); err != nil {
		return schemas.FillOutcome{}, err
	}
	if err := e.driver.TypeKeys(ctx, item.Value); err != nil {
		return schemas.FillOutcome{}, err
	}
	if err := e.driver.PressKey(ctx, "Tab"); err != nil {
		return schemas.FillOutcome{}, err
	}
	return schemas.FillOutcome{Code: schemas.OutcomeFilled}, nil
}

// typeAndSelect drives a typeahead: type the query through the native setter,
// wait for the suggestion list, pick the best suggestion.
func (e *Executor) typeAndSelect(ctx context.Context, item *schemas.ActionItem) (schemas.FillOutcome, error) {
	out, err := e.evalOutcome(ctx, typeaheadFillJS(item.Field.Selector, item.Value))
	if err != nil || !out.OK() {
		return out, err
	}
	if err := e.settle(ctx); err != nil {
		return schemas.FillOutcome{}, err
	}
	return e.evalOutcome(ctx, typeaheadPickJS(item.Value))
}

// popupState mirrors dropdownPopupJS's result.
type popupState struct {
	Open      bool `json:"open"`
	HasFilter bool `json:"hasFilter"`
}

// fillCustomDropdown opens the widget, optionally types into its inline
// filter, and searches the popup for the value, retrying with progressively
// shorter fallback terms. Closing is asymmetric on purpose: whitespace click
// only after a selection, Escape otherwise, because clicking coordinates after
// a failure can mis-click unrelated UI.
func (e *Executor) fillCustomDropdown(ctx context.Context, item *schemas.ActionItem) (schemas.FillOutcome, error) {
	out, err := e.evalOutcome(ctx, elementExistsJS(item.Field.Selector))
	if err != nil || !out.OK() {
		return out, err
	}
	if err := e.driver.Click(ctx, item.Field.Selector); err != nil {
		return schemas.FillOutcome{}, err
	}
	if err := e.settle(ctx); err != nil {
		return schemas.FillOutcome{}, err
	}

	raw, err := e.driver.ExecuteScript(ctx, dropdownPopupJS())
	if err != nil {
		return schemas.FillOutcome{}, err
	}
	var popup popupState
	if err := json.Unmarshal(raw, &popup); err != nil {
		return schemas.FillOutcome{}, fmt.Errorf("decode popup state: %w", err)
	}
	if !popup.Open {
		return schemas.FillOutcome{
			Code:   schemas.OutcomeNoMatch,
			Detail: "dropdown popup did not open",
		}, nil
	}

	terms := append([]string{item.Value}, FallbackTerms(item.Value)...)
	var picked schemas.FillOutcome
	selected := false
	for i, term := range terms {
		if popup.HasFilter {
			if i > 0 {
				if _, err := e.driver.ExecuteScript(ctx, dropdownClearFilterJS()); err != nil {
					return schemas.FillOutcome{}, err
				}
			}
			if err := e.driver.TypeKeys(ctx, term); err != nil {
				return schemas.FillOutcome{}, err
			}
			if err := e.settle(ctx); err != nil {
				return schemas.FillOutcome{}, err
			}
		}
		picked, err = e.evalOutcome(ctx, dropdownPickJS(term))
		if err != nil {
			return schemas.FillOutcome{}, err
		}
		if picked.Code == schemas.OutcomeFilled {
			selected = true
			break
		}
	}

	if selected {
		if _, err := e.driver.ExecuteScript(ctx, bodyClickJS()); err != nil {
			return schemas.FillOutcome{}, err
		}
		return picked, nil
	}
	if err := e.driver.PressKey(ctx, "Escape"); err != nil {
		return schemas.FillOutcome{}, err
	}
	return schemas.FillOutcome{
		Code:   schemas.OutcomeNoMatch,
		Detail: fmt.Sprintf("no dropdown option matched %q or fallback terms", item.Value),
	}, nil
}
