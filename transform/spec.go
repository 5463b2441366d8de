package transform

import (
	"fmt"
	"slices"

	"github.com/staxtools/stax/document"
	"github.com/staxtools/stax/internal/fieldpath"
	"github.com/staxtools/stax/staxerrors"
)

// Scope restricts a transform to documents with matching identities.
type Scope struct {
	// Kinds lists document kinds to match. Empty matches every kind.
	Kinds []string `yaml:"kinds,omitempty" json:"kinds,omitempty"`

	// Names lists document names to match. Empty matches every name.
	Names []string `yaml:"names,omitempty" json:"names,omitempty"`
}

// Matches reports whether the identity falls inside the scope. A nil scope
// matches everything.
func (s *Scope) Matches(id document.Identity) bool {
	if s == nil {
		return true
	}
	if len(s.Kinds) > 0 && !slices.Contains(s.Kinds, id.Kind) {
		return false
	}
	if len(s.Names) > 0 && !slices.Contains(s.Names, id.Name) {
		return false
	}
	return true
}

// Spec declares a single transform.
//
// Which fields are required depends on the Kind; Validate reports specs
// whose parameters are incomplete or malformed.
type Spec struct {
	// Kind selects the operation.
	Kind Kind `yaml:"kind" json:"kind"`

	// Key is the label or annotation key for AddCommonLabel and
	// AddCommonAnnotation.
	Key string `yaml:"key,omitempty" json:"key,omitempty"`

	// Value carries the operation payload: the label or annotation value,
	// the name prefix or suffix (a string), or the scalar for SetField.
	Value any `yaml:"value,omitempty" json:"value,omitempty"`

	// Path is the field path for SetField and PatchSequenceByIdentity.
	Path string `yaml:"path,omitempty" json:"path,omitempty"`

	// MergeKey overrides the element pairing key for
	// PatchSequenceByIdentity. Empty uses the merge configuration's key.
	MergeKey string `yaml:"mergeKey,omitempty" json:"mergeKey,omitempty"`

	// Scope restricts the transform to matching documents. Nil matches
	// every document.
	Scope *Scope `yaml:"scope,omitempty" json:"scope,omitempty"`
}

// Validate checks a transform list for configuration problems.
//
// It returns one ConfigError per invalid spec, each naming the spec by its
// index ("transforms[2].path"). An empty slice indicates the list is valid.
func Validate(specs []Spec) []error {
	var errs []error

	for i, spec := range specs {
		errs = append(errs, validateSpec(spec, i)...)
	}

	return errs
}

// validateSpec validates a single spec.
func validateSpec(spec Spec, index int) []error {
	var errs []error
	option := fmt.Sprintf("transforms[%d]", index)

	kind, ok := ParseKind(string(spec.Kind))
	if !ok {
		return []error{&staxerrors.ConfigError{
			Option:  option + ".kind",
			Value:   string(spec.Kind),
			Message: "unknown transform kind",
		}}
	}

	switch kind {
	case AddCommonLabel, AddCommonAnnotation:
		if spec.Key == "" {
			errs = append(errs, &staxerrors.ConfigError{
				Option:  option + ".key",
				Message: "key is required",
			})
		}
		if _, err := scalarValue(spec.Value); err != nil {
			errs = append(errs, &staxerrors.ConfigError{
				Option:  option + ".value",
				Value:   spec.Value,
				Message: "value must be a scalar",
				Cause:   err,
			})
		}

	case SetNamePrefix, SetNameSuffix:
		if s, ok := spec.Value.(string); !ok || s == "" {
			errs = append(errs, &staxerrors.ConfigError{
				Option:  option + ".value",
				Value:   spec.Value,
				Message: "value must be a non-empty string",
			})
		}

	case SetField:
		errs = append(errs, validatePath(spec.Path, option)...)
		if _, err := scalarValue(spec.Value); err != nil {
			errs = append(errs, &staxerrors.ConfigError{
				Option:  option + ".value",
				Value:   spec.Value,
				Message: "value must be a scalar",
				Cause:   err,
			})
		}

	case PatchSequenceByIdentity:
		errs = append(errs, validatePath(spec.Path, option)...)
	}

	return errs
}

// validatePath checks that a spec path is present and parseable.
func validatePath(path, option string) []error {
	if path == "" {
		return []error{&staxerrors.ConfigError{
			Option:  option + ".path",
			Message: "path is required",
		}}
	}
	if _, err := fieldpath.Parse(path); err != nil {
		return []error{&staxerrors.ConfigError{
			Option:  option + ".path",
			Value:   path,
			Message: "invalid field path",
			Cause:   err,
		}}
	}
	return nil
}

// scalarValue converts a spec value into a scalar document node, preserving
// the YAML type of values decoded from layer files.
func scalarValue(v any) (*document.Node, error) {
	node, err := document.ScalarOf(v)
	if err != nil {
		return nil, fmt.Errorf("transform: unsupported value type %T", v)
	}
	return node, nil
}
