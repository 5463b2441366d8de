package builder

import (
	"fmt"
	"slices"
	"strings"
)

// BuildErrors is a collection of errors accumulated during building.
type BuildErrors []error

// Error implements the error interface with a formatted multi-error message.
func (errs BuildErrors) Error() string {
	if len(errs) == 0 {
		return ""
	}
	if len(errs) == 1 {
		if errs[0] == nil {
			return ""
		}
		return errs[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("builder: %d error(s):\n", len(errs)))
	for _, e := range errs {
		if e == nil {
			continue
		}
		sb.WriteString("  - ")
		// Strip the "builder: " prefix for nested errors to avoid repetition
		sb.WriteString(strings.TrimPrefix(e.Error(), "builder: "))
		sb.WriteString("\n")
	}

	return strings.TrimSuffix(sb.String(), "\n")
}

// Unwrap returns the errors for Go 1.20+ error wrapping semantics,
// enabling errors.Is and errors.As to work with multiple wrapped errors.
func (errs BuildErrors) Unwrap() []error {
	result := make([]error, 0, len(errs))
	for _, e := range errs {
		if e == nil {
			continue
		}
		result = append(result, e)
	}
	return result
}

// buildErr converts accumulated errors into a single error value.
// The slice is cloned so the builder can keep accumulating afterwards.
func buildErr(errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	return BuildErrors(slices.Clone(errs))
}
