package builder

import (
	"github.com/staxtools/stax/document"
	"github.com/staxtools/stax/internal/fieldpath"
	"github.com/staxtools/stax/staxerrors"
)

// DocumentBuilder constructs configuration documents programmatically.
// Methods accumulate state and record problems instead of failing fast;
// Build surfaces everything that went wrong in one error.
//
// Concurrency: DocumentBuilder instances are not safe for concurrent use.
// Create separate instances for concurrent operations.
type DocumentBuilder struct {
	root *document.Node
	errs []error
}

// NewDocument creates a DocumentBuilder for a document with the given
// kind and metadata.name. Both fields form the document's identity and
// must be non-empty.
//
// Example:
//
//	doc, err := builder.NewDocument("Deployment", "web").
//		APIVersion("apps/v1").
//		Label("app", "web").
//		Field("spec.replicas", 3).
//		Build()
func NewDocument(kind, name string) *DocumentBuilder {
	b := &DocumentBuilder{root: document.MappingNode()}
	if kind == "" {
		b.errs = append(b.errs, &staxerrors.ConfigError{
			Option:  "kind",
			Message: "kind cannot be empty",
		})
	} else {
		b.root.Set("kind", document.StringNode(kind))
	}
	if name == "" {
		b.errs = append(b.errs, &staxerrors.ConfigError{
			Option:  "name",
			Message: "name cannot be empty",
		})
	} else {
		b.root.EnsureMapping("metadata").Set("name", document.StringNode(name))
	}
	return b
}

// APIVersion sets the document's top-level apiVersion field.
func (b *DocumentBuilder) APIVersion(version string) *DocumentBuilder {
	if version == "" {
		b.errs = append(b.errs, &staxerrors.ConfigError{
			Option:  "apiVersion",
			Message: "version cannot be empty",
		})
		return b
	}
	b.root.Set("apiVersion", document.StringNode(version))
	return b
}

// Label sets one metadata.labels entry, creating the labels mapping if needed.
func (b *DocumentBuilder) Label(key, value string) *DocumentBuilder {
	return b.metadataEntry("labels", key, value)
}

// Annotation sets one metadata.annotations entry, creating the annotations
// mapping if needed.
func (b *DocumentBuilder) Annotation(key, value string) *DocumentBuilder {
	return b.metadataEntry("annotations", key, value)
}

func (b *DocumentBuilder) metadataEntry(section, key, value string) *DocumentBuilder {
	if key == "" {
		b.errs = append(b.errs, &staxerrors.ConfigError{
			Option:  "metadata." + section,
			Message: "key cannot be empty",
		})
		return b
	}
	meta := b.root.EnsureMapping("metadata")
	if meta == nil {
		b.errs = append(b.errs, &staxerrors.ConfigError{
			Option:  "metadata",
			Message: "existing value is not a mapping",
		})
		return b
	}
	entries := meta.EnsureMapping(section)
	if entries == nil {
		b.errs = append(b.errs, &staxerrors.ConfigError{
			Option:  "metadata." + section,
			Message: "existing value is not a mapping",
		})
		return b
	}
	entries.Set(key, document.StringNode(value))
	return b
}

// Field sets a scalar value at a dotted field path, creating intermediate
// mappings as needed. Supported value types are nil, string, bool, int,
// int64, uint64, and float64. Use FieldNode for non-scalar values.
func (b *DocumentBuilder) Field(path string, value any) *DocumentBuilder {
	node, err := document.ScalarOf(value)
	if err != nil {
		b.errs = append(b.errs, &staxerrors.ConfigError{
			Option:  "value",
			Value:   value,
			Message: "unsupported field value",
			Cause:   err,
		})
		return b
	}
	return b.FieldNode(path, node)
}

// FieldNode sets an arbitrary node at a dotted field path, creating
// intermediate mappings as needed. The node is used as given, so callers
// must not mutate it afterwards.
func (b *DocumentBuilder) FieldNode(path string, node *document.Node) *DocumentBuilder {
	if node == nil {
		b.errs = append(b.errs, &staxerrors.ConfigError{
			Option:  "path",
			Value:   path,
			Message: "node cannot be nil",
		})
		return b
	}
	p, err := fieldpath.Parse(path)
	if err != nil {
		b.errs = append(b.errs, &staxerrors.ConfigError{
			Option:  "path",
			Value:   path,
			Message: "invalid field path",
			Cause:   err,
		})
		return b
	}
	parent, err := p.EnsureParent(b.root)
	if err != nil {
		b.errs = append(b.errs, &staxerrors.ConfigError{
			Option:  "path",
			Value:   path,
			Message: "cannot create field path",
			Cause:   err,
		})
		return b
	}
	parent.Set(p.Last(), node)
	return b
}

// Build validates the accumulated state and returns the document.
// The returned document holds a deep clone of the builder's state, so the
// builder stays usable for further mutation and subsequent Build calls.
func (b *DocumentBuilder) Build() (*document.Document, error) {
	if err := buildErr(b.errs); err != nil {
		return nil, err
	}
	doc, err := document.New(b.root.Clone())
	if err != nil {
		return nil, err
	}
	// Field calls can overwrite kind or metadata, so identity must still
	// resolve at build time.
	if _, err := document.IdentityOf(doc); err != nil {
		return nil, err
	}
	return doc, nil
}
