// Package severity provides severity level constants and utilities
// for issues reported by the merge, transform, and compose packages.
//
// All four severity levels are exported by each public package that uses them:
//   - SeverityInfo: Informational messages about choices made
//   - SeverityWarning: Recoverable issues such as type conflicts or skipped targets
//   - SeverityError: Problems that make a composition invalid
//   - SeverityCritical: Problems that cannot be processed without data loss
//
// The severity levels are ordered from least to most severe:
// Info < Warning < Error < Critical
package severity

// Severity indicates the severity level of an issue reported while merging
// documents, applying transforms, or composing a layer.
type Severity int

const (
	// SeverityInfo indicates informational messages about processing choices.
	// These are non-actionable notices that may be useful for debugging.
	SeverityInfo Severity = iota

	// SeverityWarning indicates recoverable issues such as type conflicts,
	// skipped field paths, or references outside the composed set. These do
	// not prevent processing but should be reviewed.
	SeverityWarning

	// SeverityError indicates a problem that makes the composition invalid.
	// Issues at this level normally surface as fatal errors instead.
	SeverityError

	// SeverityCritical indicates input that cannot be processed without data loss.
	SeverityCritical
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}
