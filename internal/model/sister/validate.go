package sister

import (
	"fmt"
	"net/url"
	"strings"
)

// ValidationResult reports the outcome of validating a candidate record.
// Errors is ordered by check; Valid is true iff Errors is empty.
type ValidationResult struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

// Validate checks a candidate record before an editing surface persists it.
// All checks run; failures accumulate rather than short-circuiting. A missing
// Images field means there is nothing to check, not an error.
func Validate(candidate Sister) ValidationResult {
	errs := make([]string, 0, 4)

	if strings.TrimSpace(candidate.Name) == "" {
		errs = append(errs, "Name is required")
	}
	if strings.TrimSpace(candidate.Greeting) == "" {
		errs = append(errs, "Greeting is required")
	}
	if strings.TrimSpace(candidate.Message) == "" {
		errs = append(errs, "Message is required")
	}

	for i, image := range candidate.Images {
		if strings.TrimSpace(image) == "" {
			continue
		}
		if !validImageURL(image) {
			errs = append(errs, fmt.Sprintf("Image URL %d is not valid", i+1))
		}
	}

	return ValidationResult{Valid: len(errs) == 0, Errors: errs}
}

// validImageURL accepts only absolute URLs with a scheme and authority.
func validImageURL(raw string) bool {
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return false
	}
	return parsed.Scheme != "" && parsed.Host != ""
}
