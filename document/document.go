package document

import (
	"github.com/staxtools/stax/staxerrors"
)

// Document is one configuration document: a mapping root plus the source
// it was loaded from.
type Document struct {
	root *Node

	// Source is the file path or synthetic name this document came from.
	// It appears in error messages and diagnostics and is ignored by Equal.
	Source string
}

// New wraps a mapping node as a Document.
// Returns a FormatError when root is nil or not a mapping.
func New(root *Node) (*Document, error) {
	if root == nil || root.Kind != KindMapping {
		kind := "nothing"
		if root != nil {
			kind = root.Kind.String()
		}
		return nil, &staxerrors.FormatError{
			Message: "document root must be a mapping, got " + kind,
		}
	}
	return &Document{root: root}, nil
}

// Root returns the document's root mapping node.
func (d *Document) Root() *Node {
	if d == nil {
		return nil
	}
	return d.root
}

// Kind returns the document's top-level kind field, or "" when absent
// or not a scalar.
func (d *Document) Kind() string {
	return d.Root().Get("kind").StringValue()
}

// Name returns the document's metadata.name field, or "" when absent
// or not a scalar.
func (d *Document) Name() string {
	return d.Root().GetPath("metadata", "name").StringValue()
}

// APIVersion returns the document's top-level apiVersion field, or ""
// when absent. The apiVersion is carried verbatim and plays no part in
// document identity.
func (d *Document) APIVersion() string {
	return d.Root().Get("apiVersion").StringValue()
}

// SetName rewrites metadata.name, creating the metadata mapping if needed.
// It returns false when metadata exists but is not a mapping.
func (d *Document) SetName(name string) bool {
	meta := d.Root().EnsureMapping("metadata")
	if meta == nil {
		return false
	}
	meta.Set("name", StringNode(name))
	return true
}

// Identity is the identity key of a document: its kind plus its name.
// Two documents with equal identities describe the same logical object.
type Identity struct {
	// Kind is the document's top-level kind field.
	Kind string
	// Name is the document's metadata.name field.
	Name string
}

// String returns the identity in "Kind/name" form.
func (id Identity) String() string {
	return id.Kind + "/" + id.Name
}

// IsZero returns true when both components are empty.
func (id Identity) IsZero() bool {
	return id.Kind == "" && id.Name == ""
}

// IdentityOf resolves the identity key of a document.
// Returns an IdentityError when kind or metadata.name is absent, empty,
// or not a scalar.
func IdentityOf(d *Document) (Identity, error) {
	root := d.Root()

	kind := root.Get("kind")
	if !kind.IsScalar() || kind.Value == "" || kind.IsNull() {
		return Identity{}, &staxerrors.IdentityError{
			Source:  d.Source,
			Field:   "kind",
			Message: "missing or not a scalar",
		}
	}

	name := root.GetPath("metadata", "name")
	if !name.IsScalar() || name.Value == "" || name.IsNull() {
		return Identity{}, &staxerrors.IdentityError{
			Source:  d.Source,
			Field:   "metadata.name",
			Message: "missing or not a scalar",
		}
	}

	return Identity{Kind: kind.Value, Name: name.Value}, nil
}

// IndexByIdentity builds an identity index over a document set.
// Returns an IdentityError for any document without a resolvable identity
// and a DuplicateIdentityError when two documents share one identity key.
func IndexByIdentity(docs []*Document) (map[Identity]*Document, error) {
	index := make(map[Identity]*Document, len(docs))
	for _, doc := range docs {
		id, err := IdentityOf(doc)
		if err != nil {
			return nil, err
		}
		if existing, ok := index[id]; ok {
			return nil, &staxerrors.DuplicateIdentityError{
				Kind:         id.Kind,
				Name:         id.Name,
				FirstSource:  existing.Source,
				SecondSource: doc.Source,
			}
		}
		index[id] = doc
	}
	return index, nil
}
