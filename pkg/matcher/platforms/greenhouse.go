package platforms

import "github.com/autoapply/fillengine/api/schemas"

// Greenhouse uses conventional input ids rather than automation attributes,
// so its handler mainly contributes a label table.
type Greenhouse struct{}

func (g *Greenhouse) Name() string { return "greenhouse" }

var greenhouseAutomationIDs = map[string]string{
	"first_name": "first_name",
	"last_name":  "last_name",
	"email":      "email",
	"phone":      "phone",
}

var greenhouseLabels = map[string]string{
	"preferred name":                  "preferred_name",
	"linkedin profile":                "linkedin",
	"website":                         "website",
	"how did you hear about this job": "referral_source",
}

func (g *Greenhouse) AutomationIDMap() map[string]string { return greenhouseAutomationIDs }

func (g *Greenhouse) LabelMap() map[string]string { return greenhouseLabels }

func (g *Greenhouse) DetectFieldType(schemas.FieldModel) (schemas.FieldType, bool) {
	return "", false
}
