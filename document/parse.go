package document

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"go.yaml.in/yaml/v4"

	"github.com/staxtools/stax/staxerrors"
)

// DefaultMaxDepth is the nesting depth limit applied by the package-level
// parse functions. Nodes nested deeper than this abort parsing with a
// DepthLimitError.
const DefaultMaxDepth = 100

// Decoder converts YAML input into documents. The zero value is not ready
// for use; create one with NewDecoder and adjust the fields before decoding.
type Decoder struct {
	// MaxDepth limits the nesting depth of decoded documents.
	MaxDepth int

	// Source labels decoded documents for error messages and diagnostics.
	// Typically a file path; may be empty for in-memory input.
	Source string
}

// NewDecoder returns a Decoder with the default depth limit.
func NewDecoder() *Decoder {
	return &Decoder{MaxDepth: DefaultMaxDepth}
}

// Decode parses input holding exactly one document.
// Returns a FormatError when the input is malformed, empty, or holds more
// than one document.
func (d *Decoder) Decode(data []byte) (*Document, error) {
	docs, err := d.DecodeAll(data)
	if err != nil {
		return nil, err
	}
	switch len(docs) {
	case 0:
		return nil, &staxerrors.FormatError{
			Source:  d.Source,
			Message: "no documents found",
		}
	case 1:
		return docs[0], nil
	default:
		return nil, &staxerrors.FormatError{
			Source:  d.Source,
			Message: fmt.Sprintf("expected a single document, found %d", len(docs)),
		}
	}
}

// DecodeAll parses a stream of documents separated by "---" markers.
// Empty documents are skipped. Every document root must be a mapping with
// unique keys at every level.
func (d *Decoder) DecodeAll(data []byte) ([]*Document, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))

	var docs []*Document
	for {
		var root yaml.Node
		err := dec.Decode(&root)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &staxerrors.FormatError{
				Source:  d.Source,
				Message: "malformed YAML",
				Cause:   err,
			}
		}

		content := documentContent(&root)
		if content == nil {
			continue
		}

		node, err := d.convert(content, "", 0)
		if err != nil {
			return nil, err
		}
		if node.Kind != KindMapping {
			return nil, &staxerrors.FormatError{
				Source:  d.Source,
				Line:    content.Line,
				Column:  content.Column,
				Message: "document root must be a mapping, got " + node.Kind.String(),
			}
		}

		docs = append(docs, &Document{root: node, Source: d.Source})
	}
	return docs, nil
}

// DecodeNode converts an already-decoded YAML node into a document, for
// callers that embed documents inside larger YAML structures. The node must
// hold a mapping; key uniqueness and the depth limit are enforced the same
// as Decode.
func (d *Decoder) DecodeNode(root *yaml.Node) (*Document, error) {
	if root == nil {
		return nil, &staxerrors.FormatError{
			Source:  d.Source,
			Message: "no document found",
		}
	}
	content := documentContent(root)
	if content == nil {
		return nil, &staxerrors.FormatError{
			Source:  d.Source,
			Message: "no document found",
		}
	}
	node, err := d.convert(content, "", 0)
	if err != nil {
		return nil, err
	}
	if node.Kind != KindMapping {
		return nil, &staxerrors.FormatError{
			Source:  d.Source,
			Line:    content.Line,
			Column:  content.Column,
			Message: "document root must be a mapping, got " + node.Kind.String(),
		}
	}
	return &Document{root: node, Source: d.Source}, nil
}

// documentContent unwraps a DocumentNode and returns nil for empty documents.
func documentContent(root *yaml.Node) *yaml.Node {
	node := root
	if node.Kind == yaml.DocumentNode {
		if len(node.Content) == 0 {
			return nil
		}
		node = node.Content[0]
	}
	if node.Kind == 0 {
		return nil
	}
	// A bare "---" parses as an empty null scalar.
	if node.Kind == yaml.ScalarNode && node.ShortTag() == TagNull && node.Value == "" {
		return nil
	}
	return node
}

// convert translates a yaml.Node subtree into the document model, checking
// key uniqueness and the depth limit along the way.
func (d *Decoder) convert(node *yaml.Node, path string, depth int) (*Node, error) {
	if d.MaxDepth > 0 && depth > d.MaxDepth {
		return nil, &staxerrors.DepthLimitError{Limit: d.MaxDepth, Path: path}
	}

	switch node.Kind {
	case yaml.AliasNode:
		// Aliases are resolved by expanding the anchored subtree. Recursive
		// aliases are caught by the depth limit.
		return d.convert(node.Alias, path, depth)

	case yaml.ScalarNode:
		return &Node{
			Kind:   KindScalar,
			Value:  node.Value,
			Tag:    node.ShortTag(),
			Line:   node.Line,
			Column: node.Column,
		}, nil

	case yaml.MappingNode:
		result := &Node{
			Kind:   KindMapping,
			Fields: make([]*Field, 0, len(node.Content)/2),
			Line:   node.Line,
			Column: node.Column,
		}
		seen := make(map[string]bool, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			keyNode := node.Content[i]
			if keyNode.Kind != yaml.ScalarNode {
				return nil, &staxerrors.FormatError{
					Source:  d.Source,
					Line:    keyNode.Line,
					Column:  keyNode.Column,
					Message: "mapping key is not a scalar",
				}
			}
			key := keyNode.Value
			if seen[key] {
				return nil, &staxerrors.FormatError{
					Source:  d.Source,
					Line:    keyNode.Line,
					Column:  keyNode.Column,
					Message: fmt.Sprintf("duplicate mapping key %q", key),
				}
			}
			seen[key] = true

			value, err := d.convert(node.Content[i+1], childPath(path, key), depth+1)
			if err != nil {
				return nil, err
			}
			result.Fields = append(result.Fields, &Field{Key: key, Value: value})
		}
		return result, nil

	case yaml.SequenceNode:
		result := &Node{
			Kind:   KindSequence,
			Items:  make([]*Node, 0, len(node.Content)),
			Line:   node.Line,
			Column: node.Column,
		}
		for i, item := range node.Content {
			converted, err := d.convert(item, indexPath(path, i), depth+1)
			if err != nil {
				return nil, err
			}
			result.Items = append(result.Items, converted)
		}
		return result, nil

	default:
		return nil, &staxerrors.FormatError{
			Source:  d.Source,
			Line:    node.Line,
			Column:  node.Column,
			Message: fmt.Sprintf("unsupported YAML node kind %d", node.Kind),
		}
	}
}

// Parse parses input holding exactly one document using the default limits.
func Parse(data []byte) (*Document, error) {
	return NewDecoder().Decode(data)
}

// ParseAll parses a multi-document stream using the default limits.
func ParseAll(data []byte) ([]*Document, error) {
	return NewDecoder().DecodeAll(data)
}

// ParseFile reads path and parses it as a multi-document stream.
// Each returned document carries path as its Source.
func ParseFile(path string) ([]*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("document: failed to read file: %w", err)
	}
	d := NewDecoder()
	d.Source = path
	return d.DecodeAll(data)
}
