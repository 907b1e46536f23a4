// Package scanner observes a live page and produces the typed snapshot the
// fill engine consumes. It never mutates the page.
package scanner

import (
	"context"
	"fmt"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"

	"github.com/autoapply/fillengine/api/schemas"
	"github.com/autoapply/fillengine/pkg/interfaces"
	"github.com/autoapply/fillengine/pkg/matcher/platforms"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// rawField mirrors the object shape snapshotJS emits per element.
type rawField struct {
	Selector        string              `json:"selector"`
	AutomationID    string              `json:"automationId"`
	Name            string              `json:"name"`
	DOMID           string              `json:"domId"`
	Tag             string              `json:"tag"`
	InputType       string              `json:"inputType"`
	Role            string              `json:"role"`
	ContentEditable bool                `json:"contentEditable"`
	Required        bool                `json:"required"`
	Visible         bool                `json:"visible"`
	Disabled        bool                `json:"disabled"`
	Label           string              `json:"label"`
	Placeholder     string              `json:"placeholder"`
	AriaLabel       string              `json:"ariaLabel"`
	Autocomplete    string              `json:"autocomplete"`
	AriaAuto        string              `json:"ariaAutocomplete"`
	HasPopup        string              `json:"haspopup"`
	Value           string              `json:"value"`
	Options         []string            `json:"options"`
	RadioGroup      string              `json:"radioGroup"`
	Box             schemas.BoundingBox `json:"box"`
	AbsoluteY       float64             `json:"absoluteY"`
}

type rawSnapshot struct {
	URL     string                `json:"url"`
	Title   string                `json:"title"`
	Fields  []rawField            `json:"fields"`
	Buttons []schemas.ButtonModel `json:"buttons"`
}

// Scanner turns the live DOM into a PageModel.
type Scanner struct {
	logger *zap.Logger
	driver interfaces.Driver
}

var _ interfaces.Scanner = (*Scanner)(nil)

func New(driver interfaces.Driver, logger *zap.Logger) *Scanner {
	return &Scanner{logger: logger.Named("scanner"), driver: driver}
}

// Scan captures one snapshot of the page. Field IDs and scan indices are
// assigned here and are only meaningful within this snapshot.
func (s *Scanner) Scan(ctx context.Context) (*schemas.PageModel, error) {
	raw, err := s.driver.ExecuteScript(ctx, snapshotJS)
	if err != nil {
		return nil, fmt.Errorf("page snapshot: %w", err)
	}
	var snap rawSnapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, fmt.Errorf("decode page snapshot: %w", err)
	}

	platform := platforms.Detect(snap.URL)
	handler := platforms.Lookup(platform)

	page := &schemas.PageModel{
		URL:       snap.URL,
		Title:     snap.Title,
		Platform:  platform,
		Fields:    make([]schemas.FieldModel, 0, len(snap.Fields)),
		Buttons:   snap.Buttons,
		ScannedAt: time.Now().UTC(),
	}
	for i, rf := range snap.Fields {
		f := schemas.FieldModel{
			ID:           fmt.Sprintf("f%03d", i),
			Selector:     rf.Selector,
			AutomationID: rf.AutomationID,
			Name:         rf.Name,
			DOMID:        rf.DOMID,
			Type:         classify(rf),
			Required:     rf.Required,
			Visible:      rf.Visible,
			Disabled:     rf.Disabled,
			Label:        rf.Label,
			Placeholder:  rf.Placeholder,
			AriaLabel:    rf.AriaLabel,
			Value:        rf.Value,
			Empty:        rf.Value == "",
			Options:      rf.Options,
			RadioGroup:   rf.RadioGroup,
			Box:          rf.Box,
			AbsoluteY:    rf.AbsoluteY,
			ScanIndex:    i,
		}
		if handler != nil {
			if t, ok := handler.DetectFieldType(f); ok {
				f.Type = t
			}
		}
		page.Fields = append(page.Fields, f)
	}

	s.logger.Debug("page scanned",
		zap.String("url", snap.URL),
		zap.String("platform", platform),
		zap.Int("fields", len(page.Fields)),
		zap.Int("buttons", len(page.Buttons)))
	return page, nil
}

// classify maps a raw element description onto the closed field type
// enumeration. Anything unrecognized is FieldTypeUnknown so the planner
// routes it to the agent tier rather than guessing.
func classify(rf rawField) schemas.FieldType {
	if rf.ContentEditable {
		return schemas.FieldTypeContentEditable
	}
	switch rf.Tag {
	case "select":
		return schemas.FieldTypeSelect
	case "textarea":
		return schemas.FieldTypeTextarea
	}
	if rf.Role == "radio" {
		return schemas.FieldTypeAriaRadio
	}
	if rf.Role == "combobox" || rf.Role == "listbox" {
		if rf.AriaAuto == "list" || rf.AriaAuto == "both" {
			return schemas.FieldTypeTypeahead
		}
		return schemas.FieldTypeCustomDropdown
	}
	if rf.Tag != "input" {
		return schemas.FieldTypeUnknown
	}
	switch rf.InputType {
	case "", "text":
		if rf.AriaAuto == "list" || rf.AriaAuto == "both" {
			return schemas.FieldTypeTypeahead
		}
		if rf.HasPopup == "listbox" {
			return schemas.FieldTypeCustomDropdown
		}
		return textSubtype(rf)
	case "email":
		return schemas.FieldTypeEmail
	case "tel":
		return schemas.FieldTypePhone
	case "number":
		return schemas.FieldTypeNumber
	case "date":
		return schemas.FieldTypeDate
	case "radio":
		return schemas.FieldTypeRadio
	case "checkbox":
		return schemas.FieldTypeCheckbox
	case "file":
		return schemas.FieldTypeFile
	case "password":
		return schemas.FieldTypePassword
	case "search", "url":
		return schemas.FieldTypeText
	default:
		return schemas.FieldTypeUnknown
	}
}

// textSubtype refines a plain text input using autocomplete hints and label
// wording. Date-like and phone-like text inputs need their own handlers.
func textSubtype(rf rawField) schemas.FieldType {
	switch rf.Autocomplete {
	case "email":
		return schemas.FieldTypeEmail
	case "tel", "tel-national":
		return schemas.FieldTypePhone
	}
	hint := strings.ToLower(rf.Label + " " + rf.Placeholder + " " + rf.AriaLabel)
	switch {
	case strings.Contains(hint, "mm/dd") || strings.Contains(hint, "dd/mm") || strings.Contains(rf.Placeholder, "YYYY"):
		return schemas.FieldTypeDate
	case strings.Contains(hint, "phone"):
		return schemas.FieldTypePhone
	case strings.Contains(hint, "email") && !strings.Contains(hint, "email preferences"):
		return schemas.FieldTypeEmail
	}
	return schemas.FieldTypeText
}
