package compose

import (
	"github.com/staxtools/stax/document"
)

// Stats summarizes what a composition did.
type Stats struct {
	// BaseCount is the number of documents in the base set.
	BaseCount int

	// PatchedCount is the number of base documents that received at least
	// one patch.
	PatchedCount int

	// AddedCount is the number of patches appended as new documents
	// because no base document shared their identity.
	AddedCount int

	// TransformCount is the number of transforms applied.
	TransformCount int

	// WarningCount is the number of diagnostics above informational
	// severity.
	WarningCount int
}

// Result is the outcome of a successful composition.
type Result struct {
	// Documents is the composed document set: base documents in their
	// original order, then added patches in patch order.
	Documents []*document.Document

	// Diagnostics are the non-fatal issues recorded along the way.
	Diagnostics Diagnostics

	// Stats summarizes the composition.
	Stats Stats
}

// addDiagnostic appends a diagnostic and keeps the warning count current.
func (r *Result) addDiagnostic(d *Diagnostic) {
	r.Diagnostics = append(r.Diagnostics, d)
	if d.Severity != SeverityInfo {
		r.Stats.WarningCount++
	}
}

// PatchPreview describes what one patch would do.
type PatchPreview struct {
	// PatchIndex is the position of the patch in the layer.
	PatchIndex int

	// Identity is the patch document's identity.
	Identity document.Identity

	// Operation is "merge" when a base document shares the identity and
	// "add" when the patch would be appended.
	Operation string
}

// TransformPreview describes what one transform would do.
type TransformPreview struct {
	// TransformIndex is the position of the transform in the layer.
	TransformIndex int

	// Kind is the canonical transform kind.
	Kind string

	// MatchCount is the number of documents in the transform's scope at
	// the point it would run.
	MatchCount int
}

// Preview is the outcome of a dry run: what a composition would do without
// the composed documents themselves.
type Preview struct {
	// Patches describes each patch in layer order.
	Patches []PatchPreview

	// Transforms describes each transform in layer order.
	Transforms []TransformPreview

	// WouldMerge is the number of patches that would merge into base
	// documents.
	WouldMerge int

	// WouldAdd is the number of patches that would be appended as new
	// documents.
	WouldAdd int

	// Diagnostics are the non-fatal issues the composition would record.
	Diagnostics Diagnostics
}
