// Package naming provides shared case conversion utilities for stax packages.
//
// This internal package contains common string transformation functions used
// by multiple stax packages including transform and compose. Functions include
// ToPascalCase, ToCamelCase, ToSnakeCase, ToKebabCase, and DisplayName.
//
// These functions are used for:
//   - Transform package: Canonicalizing transform kind aliases from layer files
//   - Compose package: Human-readable transform names in previews and reports
//
// As an internal package, these functions are not part of the public API
// and may change without notice.
package naming
