package merge

import (
	"fmt"

	"github.com/staxtools/stax/document"
)

// WarningCategory identifies the type of merge warning.
type WarningCategory string

const (
	// WarnTypeConflict indicates the base and patch held different node
	// kinds at the same path; the patch value won.
	WarnTypeConflict WarningCategory = "type_conflict"

	// WarnMissingMergeKey indicates a sequence element had no usable merge
	// key under SequenceMergeByIdentity; the sequence fell back to
	// replacement.
	WarnMissingMergeKey WarningCategory = "missing_merge_key"
)

// Warning represents a non-fatal issue encountered during a merge.
// Warnings never abort a merge; they provide context about places where the
// inputs disagreed and a default resolution was applied.
type Warning struct {
	// Category identifies the type of warning.
	Category WarningCategory

	// Path is the field path of the node the warning concerns.
	Path string

	// BaseKind and PatchKind record the colliding node kinds for
	// type conflict warnings.
	BaseKind  document.NodeKind
	PatchKind document.NodeKind

	// MergeKey is the configured merge key for missing merge key warnings.
	MergeKey string

	// Message describes the warning.
	Message string
}

// String returns a formatted warning message.
func (w *Warning) String() string {
	if w.Message != "" {
		return fmt.Sprintf("path %q: %s", w.Path, w.Message)
	}
	return fmt.Sprintf("path %q: %s", w.Path, w.Category)
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

// Result contains the outcome of a merge.
type Result struct {
	// Document is the merged document. It shares no nodes with either
	// input.
	Document *document.Document

	// Warnings contains non-fatal issues encountered during the merge.
	Warnings Warnings
}

// AddWarning appends a warning to the result.
func (r *Result) AddWarning(w *Warning) {
	r.Warnings = append(r.Warnings, w)
}

// HasWarnings returns true if any warnings were generated.
func (r *Result) HasWarnings() bool {
	return len(r.Warnings) > 0
}
