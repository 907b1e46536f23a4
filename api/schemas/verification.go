package schemas

// VerificationResult is produced once per executed action by reading the DOM
// back and fuzzy-comparing against the expected value. It is data, not an
// error; retrying is a caller decision.
type VerificationResult struct {
	Field    FieldModel `json:"field"`
	Expected string     `json:"expected"`
	Actual   string     `json:"actual"`
	Passed   bool       `json:"passed"`
	Reason   string     `json:"reason"`
}
