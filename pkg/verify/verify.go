// Package verify reads a field's value back from the DOM after a fill attempt
// and fuzzy-compares it to the expected value. Verification failures are data,
// not errors, and are never retried here; retry is a caller decision.
package verify

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"

	"github.com/autoapply/fillengine/api/schemas"
	"github.com/autoapply/fillengine/pkg/interfaces"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// truthyValues are the expected values that count as "checked" for checkboxes.
var truthyValues = map[string]bool{
	"true": true, "yes": true, "1": true, "checked": true, "on": true,
}

var (
	nonDigitRe   = regexp.MustCompile(`\D+`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// Verifier reads values back through the driver and applies the type-aware
// comparison rules.
type Verifier struct {
	logger *zap.Logger
	driver interfaces.Driver
}

func New(logger *zap.Logger, driver interfaces.Driver) *Verifier {
	return &Verifier{logger: logger.Named("verify"), driver: driver}
}

// Verify reads the field's current value and compares it to expected.
func (v *Verifier) Verify(ctx context.Context, field schemas.FieldModel, expected string) (*schemas.VerificationResult, error) {
	actual, err := v.Readback(ctx, field)
	if err != nil {
		return nil, fmt.Errorf("readback %s: %w", field.Selector, err)
	}
	passed, reason := Compare(field.Type, expected, actual)
	res := &schemas.VerificationResult{
		Field:    field,
		Expected: expected,
		Actual:   actual,
		Passed:   passed,
		Reason:   reason,
	}
	if !passed {
		v.logger.Debug("verification failed",
			zap.String("selector", field.Selector),
			zap.String("reason", reason))
	}
	return res, nil
}

// Readback returns the field's current value through the per-type routine
// mirroring the fill routines.
func (v *Verifier) Readback(ctx context.Context, field schemas.FieldModel) (string, error) {
	kind := readValue
	switch field.Type {
	case schemas.FieldTypeSelect:
		kind = readSelect
	case schemas.FieldTypeRadio, schemas.FieldTypeAriaRadio:
		kind = readRadio
	case schemas.FieldTypeCheckbox:
		kind = readCheckbox
	case schemas.FieldTypeCustomDropdown:
		kind = readDropdownText
	case schemas.FieldTypeContentEditable:
		kind = readContentEditable
	}
	raw, err := v.driver.ExecuteScript(ctx, readbackJS(field.Selector, field.RadioGroup, field.Placeholder, kind))
	if err != nil {
		return "", err
	}
	var out struct {
		Value string `json:"value"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("decode readback: %w", err)
	}
	return out.Value, nil
}

// Compare applies the type-aware fuzzy comparison rules. It is a pure
// function; the cookbook replayer uses it against its own readbacks. The
// reason string always embeds the literal expected and actual values.
func Compare(fieldType schemas.FieldType, expected, actual string) (bool, string) {
	normExpected := normalize(fieldType, expected)
	normActual := normalize(fieldType, actual)

	// Empty against empty means nothing was actually filled.
	if normActual == "" {
		return false, "field is empty"
	}
	if normExpected == normActual {
		return true, fmt.Sprintf("verified: expected %q, got %q", expected, actual)
	}

	switch fieldType {
	case schemas.FieldTypeCheckbox:
		if truthyValues[normExpected] && normActual == "checked" {
			return true, fmt.Sprintf("verified: expected %q, got %q", expected, actual)
		}
	case schemas.FieldTypePhone:
		// Last-7-digit comparison tolerates country codes and formatting.
		// Short values fall through to the general substring rules.
		if len(normExpected) >= 7 && len(normActual) >= 7 {
			if normExpected[len(normExpected)-7:] == normActual[len(normActual)-7:] {
				return true, fmt.Sprintf("verified: expected %q, got %q", expected, actual)
			}
		} else if strings.Contains(normActual, normExpected) || strings.Contains(normExpected, normActual) {
			return true, fmt.Sprintf("verified: expected %q, got %q", expected, actual)
		}
	case schemas.FieldTypeDate:
		// Digit-only equality already covered by the exact check above; a
		// mismatch here is a real mismatch regardless of separator style.
	case schemas.FieldTypeSelect, schemas.FieldTypeCustomDropdown, schemas.FieldTypeRadio, schemas.FieldTypeAriaRadio:
		if strings.Contains(normActual, normExpected) || strings.Contains(normExpected, normActual) {
			return true, fmt.Sprintf("verified: expected %q, got %q", expected, actual)
		}
		// Long option text often gets truncated in the display; accept a
		// prefix match.
		if len(normExpected) > 10 && strings.HasPrefix(normActual, normExpected[:10]) {
			return true, fmt.Sprintf("verified: expected %q, got %q", expected, actual)
		}
	default:
		if strings.Contains(normActual, normExpected) || strings.Contains(normExpected, normActual) {
			return true, fmt.Sprintf("verified: expected %q, got %q", expected, actual)
		}
	}

	return false, fmt.Sprintf("mismatch: expected %q, got %q", expected, actual)
}

// normalize trims, lowercases, and collapses whitespace, with type-specific
// extra normalization: phone and date values reduce to digits only.
func normalize(fieldType schemas.FieldType, s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = whitespaceRe.ReplaceAllString(s, " ")
	switch fieldType {
	case schemas.FieldTypePhone, schemas.FieldTypeDate:
		return nonDigitRe.ReplaceAllString(s, "")
	default:
		return s
	}
}
