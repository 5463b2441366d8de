package compose

import (
	"fmt"
	"strings"

	"github.com/staxtools/stax/document"
	"github.com/staxtools/stax/internal/severity"
	"github.com/staxtools/stax/merge"
	"github.com/staxtools/stax/transform"
)

// Severity levels for diagnostics, re-exported for callers.
type Severity = severity.Severity

// Severity levels from least to most severe concern.
const (
	SeverityInfo     = severity.SeverityInfo
	SeverityWarning  = severity.SeverityWarning
	SeverityError    = severity.SeverityError
	SeverityCritical = severity.SeverityCritical
)

// Stages at which diagnostics arise during composition.
const (
	// StageMerge covers patch merging: type conflicts and merge key
	// fallbacks.
	StageMerge = "merge"

	// StageTransform covers the transform pipeline: skipped paths, external
	// references, empty scopes.
	StageTransform = "transform"

	// StageCompose covers the composition itself.
	StageCompose = "compose"
)

// Diagnostic is one non-fatal issue recorded during composition.
//
// Diagnostics never abort a composition; fatal conditions are returned as
// errors with no result instead.
type Diagnostic struct {
	// Stage is the composition stage that produced the diagnostic
	// (StageMerge, StageTransform, or StageCompose).
	Stage string

	// Category is the stage-specific category string, such as
	// "type_conflict" or "path_not_found".
	Category string

	// Severity indicates how seriously to take the diagnostic.
	Severity Severity

	// Identity names the document concerned, when one is identifiable.
	Identity document.Identity

	// Path is the field path concerned, when one applies.
	Path string

	// Message is the human-readable description.
	Message string

	// Cause is the underlying error, if any.
	Cause error
}

// String returns a single-line rendering of the diagnostic.
func (d *Diagnostic) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s", d.Stage, d.Category)
	if !d.Identity.IsZero() {
		b.WriteString(" " + d.Identity.String())
	}
	if d.Path != "" {
		b.WriteString(" at " + d.Path)
	}
	switch {
	case d.Message != "":
		b.WriteString(": " + d.Message)
	case d.Cause != nil:
		b.WriteString(": " + d.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error for use with errors.Is and errors.As.
func (d *Diagnostic) Unwrap() error {
	return d.Cause
}

// Diagnostics is a collection of diagnostics from one composition.
type Diagnostics []*Diagnostic

// Strings renders every diagnostic on its own line.
func (ds Diagnostics) Strings() []string {
	out := make([]string, 0, len(ds))
	for _, d := range ds {
		if d == nil {
			continue
		}
		out = append(out, d.String())
	}
	return out
}

// ByStage returns the diagnostics produced by the given stage.
func (ds Diagnostics) ByStage(stage string) Diagnostics {
	var out Diagnostics
	for _, d := range ds {
		if d != nil && d.Stage == stage {
			out = append(out, d)
		}
	}
	return out
}

// HasWarnings reports whether any diagnostic is more serious than an
// informational notice.
func (ds Diagnostics) HasWarnings() bool {
	for _, d := range ds {
		if d != nil && d.Severity != SeverityInfo {
			return true
		}
	}
	return false
}

// mergeDiagnostic converts a merge warning into a diagnostic attributed to
// the patched document.
func mergeDiagnostic(w *merge.Warning, id document.Identity) *Diagnostic {
	return &Diagnostic{
		Stage:    StageMerge,
		Category: string(w.Category),
		Severity: SeverityWarning,
		Identity: id,
		Path:     w.Path,
		Message:  w.Message,
	}
}

// transformDiagnostic converts a transform warning into a diagnostic.
func transformDiagnostic(w *transform.Warning) *Diagnostic {
	return &Diagnostic{
		Stage:    StageTransform,
		Category: string(w.Category),
		Severity: w.Severity,
		Identity: w.Identity,
		Path:     w.Path,
		Message:  w.Message,
		Cause:    w.Cause,
	}
}
