package staxerrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
// These allow quick checks without type assertions.
var (
	// ErrFormat indicates malformed or structurally invalid input.
	ErrFormat = errors.New("format error")

	// ErrIdentity indicates a document without a resolvable identity.
	ErrIdentity = errors.New("identity error")

	// ErrDuplicateIdentity indicates two documents share one identity key.
	ErrDuplicateIdentity = errors.New("duplicate identity")

	// ErrDanglingReference indicates a reference that cannot be resolved.
	ErrDanglingReference = errors.New("dangling reference")

	// ErrExternalReference indicates a reference to a document outside the input set.
	ErrExternalReference = errors.New("external reference")

	// ErrPathNotFound indicates a field path that does not exist in a document.
	ErrPathNotFound = errors.New("path not found")

	// ErrDepthLimit indicates the nesting depth limit was exceeded.
	ErrDepthLimit = errors.New("depth limit exceeded")

	// ErrConfig indicates an invalid configuration.
	ErrConfig = errors.New("configuration error")
)

// FormatError represents a failure to parse or construct a document.
// This includes YAML deserialization errors, duplicate mapping keys,
// and non-mapping document roots.
type FormatError struct {
	// Source is the file path or source identifier
	Source string
	// Line is the line number where the error occurred (0 if unknown)
	Line int
	// Column is the column number where the error occurred (0 if unknown)
	Column int
	// Message describes the format failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *FormatError) Error() string {
	msg := "format error"
	if e.Source != "" {
		msg += " in " + e.Source
	}
	if e.Line > 0 {
		msg += fmt.Sprintf(" at line %d", e.Line)
		if e.Column > 0 {
			msg += fmt.Sprintf(", column %d", e.Column)
		}
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *FormatError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *FormatError) Is(target error) bool {
	return target == ErrFormat
}

// IdentityError represents a document whose identity cannot be resolved.
// This occurs when the kind or metadata.name field is absent or not a scalar.
type IdentityError struct {
	// Source is the file path or source identifier of the document
	Source string
	// Field is the identity field that failed to resolve ("kind" or "metadata.name")
	Field string
	// Message describes the identity failure
	Message string
}

// Error returns a human-readable error message.
func (e *IdentityError) Error() string {
	msg := "identity error"
	if e.Source != "" {
		msg += " in " + e.Source
	}
	if e.Field != "" {
		msg += " for " + e.Field
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Unwrap returns nil as IdentityError has no underlying cause.
func (e *IdentityError) Unwrap() error {
	return nil
}

// Is reports whether target matches this error type.
func (e *IdentityError) Is(target error) bool {
	return target == ErrIdentity
}

// DuplicateIdentityError represents two documents sharing one identity key.
type DuplicateIdentityError struct {
	// Kind is the document kind of the colliding identity
	Kind string
	// Name is the document name of the colliding identity
	Name string
	// FirstSource identifies where the identity first appeared (may be empty)
	FirstSource string
	// SecondSource identifies the colliding occurrence (may be empty)
	SecondSource string
}

// Error returns a human-readable error message.
func (e *DuplicateIdentityError) Error() string {
	msg := "duplicate identity"
	if e.Kind != "" || e.Name != "" {
		msg += ": " + e.Kind + "/" + e.Name
	}
	if e.FirstSource != "" && e.SecondSource != "" {
		msg += fmt.Sprintf(" (first: %s, second: %s)", e.FirstSource, e.SecondSource)
	}
	return msg
}

// Unwrap returns nil as DuplicateIdentityError has no underlying cause.
func (e *DuplicateIdentityError) Unwrap() error {
	return nil
}

// Is reports whether target matches this error type.
func (e *DuplicateIdentityError) Is(target error) bool {
	return target == ErrDuplicateIdentity
}

// DanglingReferenceError represents a reference to a document that cannot
// be resolved within the composed set.
type DanglingReferenceError struct {
	// FromKind is the kind of the document holding the reference
	FromKind string
	// FromName is the name of the document holding the reference
	FromName string
	// RefKind is the kind the reference points at
	RefKind string
	// RefName is the name the reference points at
	RefName string
	// Path is the field path of the reference within the holding document
	Path string
	// External is true when the target was never part of the input set.
	// External references are reported as diagnostics rather than fatal errors.
	External bool
}

// Error returns a human-readable error message.
func (e *DanglingReferenceError) Error() string {
	msg := "dangling reference"
	if e.External {
		msg = "external reference"
	}
	if e.RefKind != "" || e.RefName != "" {
		msg += ": " + e.RefKind + "/" + e.RefName
	}
	if e.FromKind != "" || e.FromName != "" {
		msg += " from " + e.FromKind + "/" + e.FromName
	}
	if e.Path != "" {
		msg += " at " + e.Path
	}
	return msg
}

// Unwrap returns nil as DanglingReferenceError has no underlying cause.
func (e *DanglingReferenceError) Unwrap() error {
	return nil
}

// Is reports whether target matches this error type.
// Matches ErrDanglingReference, and also ErrExternalReference when the
// External flag is set.
func (e *DanglingReferenceError) Is(target error) bool {
	if target == ErrDanglingReference {
		return true
	}
	if target == ErrExternalReference && e.External {
		return true
	}
	return false
}

// PathNotFoundError represents a field path that does not exist in a document.
// SetField transforms record this per skipped document.
type PathNotFoundError struct {
	// Kind is the kind of the document that was skipped
	Kind string
	// Name is the name of the document that was skipped
	Name string
	// Path is the full field path that failed to resolve
	Path string
	// Segment is the first path segment that was missing or not a mapping
	Segment string
}

// Error returns a human-readable error message.
func (e *PathNotFoundError) Error() string {
	msg := "path not found"
	if e.Kind != "" || e.Name != "" {
		msg += " in " + e.Kind + "/" + e.Name
	}
	if e.Path != "" {
		msg += ": " + e.Path
	}
	if e.Segment != "" {
		msg += fmt.Sprintf(" (missing segment: %s)", e.Segment)
	}
	return msg
}

// Unwrap returns nil as PathNotFoundError has no underlying cause.
func (e *PathNotFoundError) Unwrap() error {
	return nil
}

// Is reports whether target matches this error type.
func (e *PathNotFoundError) Is(target error) bool {
	return target == ErrPathNotFound
}

// DepthLimitError represents a nesting depth overrun.
// This occurs when parsing, cloning, or merging exceeds the configured limit.
type DepthLimitError struct {
	// Limit is the configured maximum nesting depth
	Limit int
	// Path is the field path where the limit was hit (may be empty)
	Path string
}

// Error returns a human-readable error message.
func (e *DepthLimitError) Error() string {
	msg := "depth limit exceeded"
	if e.Limit > 0 {
		msg += fmt.Sprintf(" (limit: %d)", e.Limit)
	}
	if e.Path != "" {
		msg += " at " + e.Path
	}
	return msg
}

// Unwrap returns nil as DepthLimitError has no underlying cause.
func (e *DepthLimitError) Unwrap() error {
	return nil
}

// Is reports whether target matches this error type.
func (e *DepthLimitError) Is(target error) bool {
	return target == ErrDepthLimit
}

// ConfigError represents an invalid configuration or input.
// This includes invalid options, missing required inputs, and conflicting settings.
type ConfigError struct {
	// Option is the name of the problematic configuration option
	Option string
	// Value is the invalid value that was provided (may be nil)
	Value any
	// Message describes the configuration error
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ConfigError) Error() string {
	msg := "configuration error"
	if e.Option != "" {
		msg += " for " + e.Option
	}
	if e.Value != nil {
		msg += fmt.Sprintf(" (value: %v)", e.Value)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}
