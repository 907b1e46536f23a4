package platforms

import (
	"strings"

	"github.com/autoapply/fillengine/api/schemas"
)

// Workday keys its widgets with stable data-automation-id attributes, which
// makes automation-id matching far more reliable than label text there.
type Workday struct{}

func (w *Workday) Name() string { return "workday" }

var workdayAutomationIDs = map[string]string{
	"legalNameSection_firstName":      "first_name",
	"legalNameSection_lastName":       "last_name",
	"email":                           "email",
	"phone-number":                    "phone",
	"phoneNumber":                     "phone",
	"addressSection_addressLine1":     "address",
	"addressSection_city":             "city",
	"addressSection_countryRegion":    "state",
	"addressSection_postalCode":       "zip",
	"countryDropdown":                 "country",
	"linkedinQuestion":                "linkedin",
	"currentCompany":                  "current_company",
	"jobTitle":                        "current_title",
	"salaryExpectation":               "desired_salary",
	"sourceDropdown":                  "referral_source",
	"candidateIsPreviousWorker":       "previous_worker",
	"governmentIdentificationSection": "government_id",
}

var workdayLabels = map[string]string{
	"legal first name":   "first_name",
	"legal last name":    "last_name",
	"country phone code": "phone_country_code",
	"how did you hear about us": "referral_source",
}

func (w *Workday) AutomationIDMap() map[string]string { return workdayAutomationIDs }

func (w *Workday) LabelMap() map[string]string { return workdayLabels }

// DetectFieldType overrides the scanner's inference for Workday's composite
// widgets, which render as plain text inputs but behave like dropdowns or
// segmented date pickers.
func (w *Workday) DetectFieldType(f schemas.FieldModel) (schemas.FieldType, bool) {
	id := strings.ToLower(f.AutomationID)
	switch {
	case strings.Contains(id, "dropdown"), strings.Contains(id, "selectinput"):
		return schemas.FieldTypeCustomDropdown, true
	case strings.Contains(id, "datesectionmonth"),
		strings.Contains(id, "datesectionday"),
		strings.Contains(id, "datesectionyear"):
		return schemas.FieldTypeDate, true
	case strings.Contains(id, "searchbox"):
		return schemas.FieldTypeTypeahead, true
	default:
		return "", false
	}
}
