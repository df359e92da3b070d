package scenario

import (
	"strings"
)

// ValidationTemperature is lower than the response temperature for more
// consistent completeness judgments.
const ValidationTemperature = 0.3

// ValidationResult is the parsed output of a validation-kind model call.
type ValidationResult struct {
	Complete bool
	Missing  string
}

// ParseValidation parses the fixed validation reply format:
//
//	COMPLETE: Yes or No
//	MISSING: [items, or "None"]
//
// Anything unparseable counts as incomplete so the question loop continues.
func ParseValidation(text string) ValidationResult {
	result := ValidationResult{Missing: "Unknown"}

	upper := strings.ToUpper(text)
	if strings.Contains(upper, "COMPLETE: YES") || strings.Contains(upper, "COMPLETE:YES") {
		result.Complete = true
	}

	if idx := strings.LastIndex(text, "MISSING:"); idx >= 0 {
		missing := strings.TrimSpace(text[idx+len("MISSING:"):])
		if missing != "" {
			result.Missing = missing
		}
	}

	return result
}
