package document

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"go.yaml.in/yaml/v4"
)

// MarshalYAML serializes one or more documents to YAML with mapping field
// order preserved. Multiple documents are separated by "---" markers in the
// order given. The output is deterministic for structurally equal input.
func MarshalYAML(docs ...*Document) ([]byte, error) {
	if len(docs) == 0 {
		return nil, nil
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	for _, doc := range docs {
		node, err := toYAMLNode(doc.Root())
		if err != nil {
			return nil, err
		}
		if err := enc.Encode(node); err != nil {
			return nil, fmt.Errorf("document: failed to encode YAML: %w", err)
		}
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("document: failed to finish YAML output: %w", err)
	}
	return buf.Bytes(), nil
}

// MarshalJSON serializes a document to compact JSON with mapping field
// order preserved.
func MarshalJSON(doc *Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeNodeJSON(&buf, doc.Root()); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MarshalJSONIndent serializes a document to indented JSON with mapping
// field order preserved.
func MarshalJSONIndent(doc *Document, prefix, indent string) ([]byte, error) {
	data, err := MarshalJSON(doc)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, prefix, indent); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// toYAMLNode converts a document node into a yaml.Node tree for encoding.
func toYAMLNode(n *Node) (*yaml.Node, error) {
	if n == nil {
		return scalarYAMLNode(TagNull, "null"), nil
	}
	switch n.Kind {
	case KindScalar:
		return scalarYAMLNode(n.Tag, n.Value), nil
	case KindMapping:
		out := &yaml.Node{
			Kind:    yaml.MappingNode,
			Content: make([]*yaml.Node, 0, len(n.Fields)*2),
		}
		for _, f := range n.Fields {
			value, err := toYAMLNode(f.Value)
			if err != nil {
				return nil, err
			}
			out.Content = append(out.Content, scalarYAMLNode(TagString, f.Key), value)
		}
		return out, nil
	case KindSequence:
		out := &yaml.Node{
			Kind:    yaml.SequenceNode,
			Content: make([]*yaml.Node, 0, len(n.Items)),
		}
		for _, item := range n.Items {
			value, err := toYAMLNode(item)
			if err != nil {
				return nil, err
			}
			out.Content = append(out.Content, value)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("document: cannot marshal node kind %q", n.Kind)
	}
}

// scalarYAMLNode creates a yaml.Node for a scalar value.
func scalarYAMLNode(tag, value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
}

// writeNodeJSON writes a node subtree to buf as JSON, preserving mapping
// field order. Scalar renderings follow the node's YAML tag; values that
// have no JSON equivalent (such as non-finite floats) fall back to strings.
func writeNodeJSON(buf *bytes.Buffer, n *Node) error {
	if n == nil {
		buf.WriteString("null")
		return nil
	}
	switch n.Kind {
	case KindScalar:
		return writeScalarJSON(buf, n)
	case KindMapping:
		buf.WriteByte('{')
		for i, f := range n.Fields {
			if i > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(f.Key)
			if err != nil {
				return err
			}
			buf.Write(key)
			buf.WriteByte(':')
			if err := writeNodeJSON(buf, f.Value); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
		return nil
	case KindSequence:
		buf.WriteByte('[')
		for i, item := range n.Items {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeNodeJSON(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil
	default:
		return fmt.Errorf("document: cannot marshal node kind %q", n.Kind)
	}
}

// writeScalarJSON renders a scalar according to its tag.
func writeScalarJSON(buf *bytes.Buffer, n *Node) error {
	switch n.Tag {
	case TagNull:
		buf.WriteString("null")
		return nil
	case TagBool:
		if n.Value == "true" || n.Value == "false" {
			buf.WriteString(n.Value)
			return nil
		}
	case TagInt:
		if _, err := strconv.ParseInt(n.Value, 10, 64); err == nil {
			buf.WriteString(n.Value)
			return nil
		}
	case TagFloat:
		if f, err := strconv.ParseFloat(n.Value, 64); err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
			buf.WriteString(n.Value)
			return nil
		}
	}
	// Everything else, including unrepresentable numerics, renders as a string.
	data, err := json.Marshal(n.Value)
	if err != nil {
		return err
	}
	buf.Write(data)
	return nil
}
