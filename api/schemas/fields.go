package schemas

import "time"

// -- Page Snapshot Schemas --

// FieldType classifies an interactive element. The enumeration is closed;
// scanners must map anything they cannot classify to FieldTypeUnknown.
type FieldType string

const (
	FieldTypeText            FieldType = "text"
	FieldTypeEmail           FieldType = "email"
	FieldTypePhone           FieldType = "phone"
	FieldTypeNumber          FieldType = "number"
	FieldTypeDate            FieldType = "date"
	FieldTypeTextarea        FieldType = "textarea"
	FieldTypeSelect          FieldType = "select"
	FieldTypeCustomDropdown  FieldType = "custom_dropdown"
	FieldTypeRadio           FieldType = "radio"
	FieldTypeAriaRadio       FieldType = "aria_radio"
	FieldTypeCheckbox        FieldType = "checkbox"
	FieldTypeFile            FieldType = "file"
	FieldTypeTypeahead       FieldType = "typeahead"
	FieldTypeContentEditable FieldType = "contenteditable"
	FieldTypeUploadButton    FieldType = "upload_button"
	FieldTypePassword        FieldType = "password"
	FieldTypeUnknown         FieldType = "unknown"
)

// AllFieldTypes lists every member of the closed enumeration, in a fixed order.
// Used by tests and by the planner's exhaustiveness check.
var AllFieldTypes = []FieldType{
	FieldTypeText, FieldTypeEmail, FieldTypePhone, FieldTypeNumber,
	FieldTypeDate, FieldTypeTextarea, FieldTypeSelect, FieldTypeCustomDropdown,
	FieldTypeRadio, FieldTypeAriaRadio, FieldTypeCheckbox, FieldTypeFile,
	FieldTypeTypeahead, FieldTypeContentEditable, FieldTypeUploadButton,
	FieldTypePassword, FieldTypeUnknown,
}

// BoundingBox is the element's layout rectangle in CSS pixels, viewport relative.
type BoundingBox struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Center returns the midpoint of the box, the target for coordinate clicks.
func (b BoundingBox) Center() (float64, float64) {
	return b.X + b.Width/2, b.Y + b.Height/2
}

// FieldModel is one interactive element observed by the page scanner.
// Instances are created fresh on every observation and never mutated by the
// engine; they are discarded after one planning/execution cycle.
type FieldModel struct {
	ID           string            `json:"id"`
	Selector     string            `json:"selector"`
	AutomationID string            `json:"automationId,omitempty"`
	Name         string            `json:"name,omitempty"`
	DOMID        string            `json:"domId,omitempty"`
	Type         FieldType         `json:"type"`
	Required     bool              `json:"required"`
	Visible      bool              `json:"visible"`
	Disabled     bool              `json:"disabled"`
	Label        string            `json:"label,omitempty"`
	Placeholder  string            `json:"placeholder,omitempty"`
	AriaLabel    string            `json:"ariaLabel,omitempty"`
	Value        string            `json:"value,omitempty"`
	Empty        bool              `json:"empty"`
	Options      []string          `json:"options,omitempty"`
	RadioGroup   string            `json:"radioGroup,omitempty"`
	Box          BoundingBox       `json:"box"`
	AbsoluteY    float64           `json:"absoluteY"`
	ScanIndex    int               `json:"scanIndex"`
	Platform     map[string]string `json:"platform,omitempty"`
}

// Eligible reports whether the matcher should even consider this field.
// Filled, hidden, and disabled fields are silently skipped.
func (f *FieldModel) Eligible() bool {
	return f.Empty && f.Visible && !f.Disabled
}

// ButtonModel is a clickable control captured alongside the form fields.
// The engine itself never clicks buttons; the page orchestration layer does.
type ButtonModel struct {
	Selector  string      `json:"selector"`
	Text      string      `json:"text,omitempty"`
	Type      string      `json:"type,omitempty"`
	Visible   bool        `json:"visible"`
	Box       BoundingBox `json:"box"`
	AbsoluteY float64     `json:"absoluteY"`
}

// PageModel is the typed snapshot of a page's interactive surface, produced by
// an external scanner. One PageModel drives exactly one match/plan/execute run.
type PageModel struct {
	URL       string        `json:"url"`
	Title     string        `json:"title,omitempty"`
	Platform  string        `json:"platform,omitempty"`
	Fields    []FieldModel  `json:"fields"`
	Buttons   []ButtonModel `json:"buttons,omitempty"`
	ScannedAt time.Time     `json:"scannedAt"`
}
