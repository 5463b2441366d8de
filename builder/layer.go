package builder

import (
	"fmt"
	"slices"

	"github.com/staxtools/stax/compose"
	"github.com/staxtools/stax/document"
	"github.com/staxtools/stax/staxerrors"
	"github.com/staxtools/stax/transform"
)

// LayerBuilder constructs configuration layers programmatically, as an
// alternative to parsing layer files. Methods accumulate patches and
// transforms and record problems instead of failing fast; Build surfaces
// everything that went wrong in one error.
//
// Concurrency: LayerBuilder instances are not safe for concurrent use.
// Create separate instances for concurrent operations.
type LayerBuilder struct {
	name    string
	patches []*document.Document
	specs   []transform.Spec
	errs    []error
}

// NewLayer creates a LayerBuilder. The name labels the layer in logs and
// may be empty.
//
// Example:
//
//	layer, err := builder.NewLayer("production").
//		PatchYAML([]byte("kind: Deployment\nmetadata:\n  name: web\nspec:\n  replicas: 5\n")).
//		AddCommonLabel("stage", "prod").
//		SetNamePrefix("prod-").
//		Build()
func NewLayer(name string) *LayerBuilder {
	return &LayerBuilder{name: name}
}

// Patch appends a patch document to the layer. The document is used as
// given, so callers must not mutate it afterwards.
func (b *LayerBuilder) Patch(doc *document.Document) *LayerBuilder {
	if doc == nil {
		b.errs = append(b.errs, &staxerrors.ConfigError{
			Option:  "patch",
			Message: "patch document cannot be nil",
		})
		return b
	}
	b.patches = append(b.patches, doc)
	return b
}

// PatchYAML parses data as a single YAML document and appends it as a patch.
func (b *LayerBuilder) PatchYAML(data []byte) *LayerBuilder {
	doc, err := document.Parse(data)
	if err != nil {
		b.errs = append(b.errs, err)
		return b
	}
	doc.Source = fmt.Sprintf("patches[%d]", len(b.patches))
	b.patches = append(b.patches, doc)
	return b
}

// Transform appends a transform spec to the layer. The spec is validated
// at Build time.
func (b *LayerBuilder) Transform(spec transform.Spec) *LayerBuilder {
	b.specs = append(b.specs, spec)
	return b
}

// AddCommonLabel appends a transform that sets the label on every document
// in the composed set.
func (b *LayerBuilder) AddCommonLabel(key, value string) *LayerBuilder {
	return b.Transform(transform.Spec{
		Kind:  transform.AddCommonLabel,
		Key:   key,
		Value: value,
	})
}

// AddCommonAnnotation appends a transform that sets the annotation on every
// document in the composed set.
func (b *LayerBuilder) AddCommonAnnotation(key, value string) *LayerBuilder {
	return b.Transform(transform.Spec{
		Kind:  transform.AddCommonAnnotation,
		Key:   key,
		Value: value,
	})
}

// SetNamePrefix appends a transform that prepends prefix to every document
// name and rewrites references between renamed documents.
func (b *LayerBuilder) SetNamePrefix(prefix string) *LayerBuilder {
	return b.Transform(transform.Spec{
		Kind:  transform.SetNamePrefix,
		Value: prefix,
	})
}

// SetNameSuffix appends a transform that appends suffix to every document
// name and rewrites references between renamed documents.
func (b *LayerBuilder) SetNameSuffix(suffix string) *LayerBuilder {
	return b.Transform(transform.Spec{
		Kind:  transform.SetNameSuffix,
		Value: suffix,
	})
}

// SetField appends a transform that sets a scalar value at the field path
// on every document whose path resolves.
func (b *LayerBuilder) SetField(path string, value any) *LayerBuilder {
	return b.Transform(transform.Spec{
		Kind:  transform.SetField,
		Path:  path,
		Value: value,
	})
}

// PatchSequenceByIdentity appends a declaration that sequences at the field
// path merge element-by-element during patching. An empty mergeKey uses the
// composer's default.
func (b *LayerBuilder) PatchSequenceByIdentity(path, mergeKey string) *LayerBuilder {
	return b.Transform(transform.Spec{
		Kind:     transform.PatchSequenceByIdentity,
		Path:     path,
		MergeKey: mergeKey,
	})
}

// Build validates the accumulated state and returns the layer.
// The returned layer holds copies of the patch and transform slices, so
// the builder stays usable for further mutation and subsequent Build calls.
func (b *LayerBuilder) Build() (*compose.Layer, error) {
	errs := slices.Clone(b.errs)
	errs = append(errs, transform.Validate(b.specs)...)
	if err := buildErr(errs); err != nil {
		return nil, err
	}
	return &compose.Layer{
		Name:       b.name,
		Patches:    slices.Clone(b.patches),
		Transforms: slices.Clone(b.specs),
	}, nil
}
