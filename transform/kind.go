package transform

import (
	"github.com/staxtools/stax/internal/naming"
)

// Kind identifies a transform operation.
type Kind string

const (
	// AddCommonLabel adds a label to every matching document, including the
	// selector and template label blocks of workload documents.
	AddCommonLabel Kind = "AddCommonLabel"

	// AddCommonAnnotation adds an annotation to every matching document,
	// including the template annotation block when present.
	AddCommonAnnotation Kind = "AddCommonAnnotation"

	// SetNamePrefix prepends a prefix to the name of every matching
	// document and rewrites references across the whole set.
	SetNamePrefix Kind = "SetNamePrefix"

	// SetNameSuffix appends a suffix to the name of every matching document
	// and rewrites references across the whole set.
	SetNameSuffix Kind = "SetNameSuffix"

	// SetField sets a scalar value at a field path in every matching
	// document.
	SetField Kind = "SetField"

	// PatchSequenceByIdentity switches the sequence at a field path to
	// element-wise merging during the merge stage. It does not modify
	// documents itself.
	PatchSequenceByIdentity Kind = "PatchSequenceByIdentity"
)

// ValidKinds returns all defined transform kinds in declaration order.
func ValidKinds() []Kind {
	return []Kind{
		AddCommonLabel,
		AddCommonAnnotation,
		SetNamePrefix,
		SetNameSuffix,
		SetField,
		PatchSequenceByIdentity,
	}
}

// ParseKind canonicalizes a transform kind name. It accepts the PascalCase
// form plus kebab-case, snake_case, and camelCase aliases ("add-common-label",
// "add_common_label", "addCommonLabel" all name AddCommonLabel).
func ParseKind(s string) (Kind, bool) {
	canonical := naming.ToPascalCase(s)
	for _, k := range ValidKinds() {
		if string(k) == canonical {
			return k, true
		}
	}
	return "", false
}

// IsValidKind reports whether s names a transform kind in any accepted
// spelling.
func IsValidKind(s string) bool {
	_, ok := ParseKind(s)
	return ok
}

// DisplayName returns a human-readable name for the kind ("Add Common
// Label").
func (k Kind) DisplayName() string {
	return naming.DisplayName(string(k))
}
