package transform

import (
	"fmt"
	"strings"

	"github.com/staxtools/stax/document"
	"github.com/staxtools/stax/internal/severity"
	"github.com/staxtools/stax/staxerrors"
)

// WarningCategory identifies the type of transform warning.
type WarningCategory string

const (
	// WarnDanglingReference indicates a reference that points outside the
	// document set. References broken by a rename are fatal errors, not
	// warnings.
	WarnDanglingReference WarningCategory = "dangling_reference"

	// WarnPathNotFound indicates a SetField path whose intermediate
	// segments were missing or not mappings in a document; that document
	// was skipped.
	WarnPathNotFound WarningCategory = "path_not_found"

	// WarnNoTargets indicates a transform whose scope matched no document.
	WarnNoTargets WarningCategory = "no_targets"
)

// Warning represents a structured warning from transform application.
// It provides detailed context about non-fatal issues encountered while
// applying a pipeline.
type Warning struct {
	// Category identifies the type of warning.
	Category WarningCategory
	// TransformIndex is the zero-based index of the transform in the
	// pipeline.
	TransformIndex int
	// Identity is the document the warning concerns (zero when the warning
	// applies to the whole set).
	Identity document.Identity
	// Path is the field path involved, if any.
	Path string
	// Message describes the warning.
	Message string
	// Severity indicates warning severity (default: SeverityWarning).
	Severity severity.Severity
	// Cause is the underlying typed error, if applicable.
	Cause error
}

// String returns a formatted warning message.
func (w *Warning) String() string {
	prefix := fmt.Sprintf("transform[%d]", w.TransformIndex)
	if !w.Identity.IsZero() {
		prefix += " " + w.Identity.String()
	}
	if w.Message != "" {
		return prefix + ": " + w.Message
	}
	if w.Cause != nil {
		return fmt.Sprintf("%s: %v", prefix, w.Cause)
	}
	return fmt.Sprintf("%s: %s", prefix, w.Category)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (w *Warning) Unwrap() error {
	return w.Cause
}

// NewPathNotFoundWarning creates a warning when a SetField path does not
// resolve in a document.
func NewPathNotFoundWarning(index int, id document.Identity, path, segment string) *Warning {
	cause := &staxerrors.PathNotFoundError{
		Kind:    id.Kind,
		Name:    id.Name,
		Path:    path,
		Segment: segment,
	}
	return &Warning{
		Category:       WarnPathNotFound,
		TransformIndex: index,
		Identity:       id,
		Path:           path,
		Message:        fmt.Sprintf("path %q does not resolve (missing segment: %s), document skipped", path, segment),
		Severity:       severity.SeverityWarning,
		Cause:          cause,
	}
}

// NewDanglingReferenceWarning creates a warning for a reference that points
// outside the document set.
func NewDanglingReferenceWarning(index int, from, ref document.Identity, path string) *Warning {
	cause := &staxerrors.DanglingReferenceError{
		FromKind: from.Kind,
		FromName: from.Name,
		RefKind:  ref.Kind,
		RefName:  ref.Name,
		Path:     path,
		External: true,
	}
	return &Warning{
		Category:       WarnDanglingReference,
		TransformIndex: index,
		Identity:       from,
		Path:           path,
		Message:        fmt.Sprintf("reference to %s at %s points outside the document set", ref, path),
		Severity:       severity.SeverityWarning,
		Cause:          cause,
	}
}

// NewNoTargetsWarning creates a warning when a transform's scope matches no
// document.
func NewNoTargetsWarning(index int, kind Kind) *Warning {
	return &Warning{
		Category:       WarnNoTargets,
		TransformIndex: index,
		Message:        fmt.Sprintf("%s matched no documents", kind),
		Severity:       severity.SeverityInfo,
	}
}

// Warnings is a collection of Warning.
type Warnings []*Warning

// Strings returns the formatted warning messages.
func (ws Warnings) Strings() []string {
	result := make([]string, 0, len(ws))
	for _, w := range ws {
		if w == nil {
			continue
		}
		result = append(result, w.String())
	}
	return result
}

// ByCategory filters warnings by category.
func (ws Warnings) ByCategory(cat WarningCategory) Warnings {
	var result Warnings
	for _, w := range ws {
		if w != nil && w.Category == cat {
			result = append(result, w)
		}
	}
	return result
}

// Summary returns a formatted summary of warnings.
func (ws Warnings) Summary() string {
	if len(ws) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d warning(s):\n", len(ws)))
	for _, w := range ws {
		sb.WriteString("  - ")
		sb.WriteString(w.String())
		sb.WriteString("\n")
	}
	return strings.TrimSuffix(sb.String(), "\n")
}
