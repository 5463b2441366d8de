// Package staxerrors provides structured error types for the stax library.
//
// Import path: github.com/staxtools/stax/staxerrors
//
// This package enables programmatic error handling via [errors.Is] and [errors.As],
// allowing callers to distinguish between different categories of errors and implement
// appropriate recovery strategies.
//
// # Error Types
//
// The package provides seven core error types:
//
//   - [FormatError]: YAML parsing failures and structural issues
//   - [IdentityError]: Missing or malformed document identity fields
//   - [DuplicateIdentityError]: Two documents sharing one identity key
//   - [DanglingReferenceError]: A reference to a document that cannot be resolved
//   - [PathNotFoundError]: A field path that does not exist in a document
//   - [DepthLimitError]: Nesting depth limit exceeded
//   - [ConfigError]: Invalid configuration or input options
//
// # Sentinel Errors
//
// Each error type has a corresponding sentinel error for use with errors.Is():
//
//   - [ErrFormat]: Matches any [FormatError]
//   - [ErrIdentity]: Matches any [IdentityError]
//   - [ErrDuplicateIdentity]: Matches any [DuplicateIdentityError]
//   - [ErrDanglingReference]: Matches any [DanglingReferenceError]
//   - [ErrExternalReference]: Matches [DanglingReferenceError] with External=true
//   - [ErrPathNotFound]: Matches any [PathNotFoundError]
//   - [ErrDepthLimit]: Matches any [DepthLimitError]
//   - [ErrConfig]: Matches any [ConfigError]
//
// # Usage Examples
//
// Check error category with errors.Is():
//
//	docs, err := document.ParseFile("base.yaml")
//	if errors.Is(err, staxerrors.ErrFormat) {
//	    // Handle malformed input
//	}
//
// Extract error details with errors.As():
//
//	var dupErr *staxerrors.DuplicateIdentityError
//	if errors.As(err, &dupErr) {
//	    fmt.Printf("Conflicting documents: %s/%s\n", dupErr.Kind, dupErr.Name)
//	}
//
// Check for specific conditions:
//
//	if errors.Is(err, staxerrors.ErrExternalReference) {
//	    // Reference points outside the composed set - may be acceptable
//	}
//
// # Error Chaining
//
// Error types that can carry an underlying cause support chaining via the
// Cause field and Unwrap() method. This allows finding root causes through
// the standard error chain:
//
//	var fmtErr *staxerrors.FormatError
//	if errors.As(err, &fmtErr) {
//	    if errors.Is(fmtErr.Cause, os.ErrNotExist) {
//	        // The input file doesn't exist
//	    }
//	}
package staxerrors
