package document

import (
	"fmt"
	"strconv"
)

// NodeKind identifies the structural kind of a Node.
type NodeKind int

const (
	// KindScalar is a leaf value: string, number, boolean, or null.
	KindScalar NodeKind = iota

	// KindMapping is an ordered collection of key/value fields with unique keys.
	KindMapping

	// KindSequence is an ordered list of nodes.
	KindSequence
)

// String returns the string representation of the node kind.
func (k NodeKind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindMapping:
		return "mapping"
	case KindSequence:
		return "sequence"
	default:
		return "unknown"
	}
}

// IsValid returns true if the node kind is one of the defined constants.
func (k NodeKind) IsValid() bool {
	return k >= KindScalar && k <= KindSequence
}

// YAML short tags carried by scalar nodes. Parsing resolves every scalar to
// one of these; the tag decides how the scalar is rendered in JSON output.
const (
	TagString = "!!str"
	TagInt    = "!!int"
	TagFloat  = "!!float"
	TagBool   = "!!bool"
	TagNull   = "!!null"
)

// Field is one key/value entry of a mapping node.
type Field struct {
	// Key is the field name. Keys are unique within one mapping.
	Key string
	// Value is the field's value node.
	Value *Node
}

// Node is one node of a document tree.
//
// Exactly one payload is meaningful per kind: Value and Tag for scalars,
// Fields for mappings, Items for sequences. Line and Column record the
// source position when the node came from parsed input (1-based, 0 when
// unknown); they are ignored by Equal and not copied into merge output.
type Node struct {
	// Kind is the structural kind of this node.
	Kind NodeKind

	// Value is the raw scalar rendering exactly as it appeared in the source.
	Value string
	// Tag is the resolved YAML short tag of a scalar (TagString, TagInt, ...).
	Tag string

	// Fields holds the ordered key/value entries of a mapping.
	Fields []*Field

	// Items holds the ordered elements of a sequence.
	Items []*Node

	// Line is the 1-based source line (0 if unknown).
	Line int
	// Column is the 1-based source column (0 if unknown).
	Column int
}

// ScalarNode creates a scalar node with an explicit tag and raw value.
// Most callers should prefer the typed constructors below.
func ScalarNode(tag, value string) *Node {
	return &Node{Kind: KindScalar, Tag: tag, Value: value}
}

// StringNode creates a string scalar node.
func StringNode(value string) *Node {
	return ScalarNode(TagString, value)
}

// IntNode creates an integer scalar node.
func IntNode(value int) *Node {
	return ScalarNode(TagInt, strconv.Itoa(value))
}

// FloatNode creates a floating point scalar node.
func FloatNode(value float64) *Node {
	return ScalarNode(TagFloat, strconv.FormatFloat(value, 'g', -1, 64))
}

// BoolNode creates a boolean scalar node.
func BoolNode(value bool) *Node {
	return ScalarNode(TagBool, strconv.FormatBool(value))
}

// NullNode creates a null scalar node.
func NullNode() *Node {
	return ScalarNode(TagNull, "null")
}

// ScalarOf converts a plain Go value into a scalar node. It accepts the
// types YAML decoding produces for scalars (nil, string, bool, int, int64,
// uint64, float64) and rejects everything else.
func ScalarOf(v any) (*Node, error) {
	switch val := v.(type) {
	case nil:
		return NullNode(), nil
	case string:
		return StringNode(val), nil
	case bool:
		return BoolNode(val), nil
	case int:
		return IntNode(val), nil
	case int64:
		return ScalarNode(TagInt, strconv.FormatInt(val, 10)), nil
	case uint64:
		return ScalarNode(TagInt, strconv.FormatUint(val, 10)), nil
	case float64:
		return FloatNode(val), nil
	default:
		return nil, fmt.Errorf("document: unsupported scalar type %T", v)
	}
}

// MappingNode creates a mapping node from the given fields.
// Callers are responsible for key uniqueness; Set enforces it.
func MappingNode(fields ...*Field) *Node {
	return &Node{Kind: KindMapping, Fields: fields}
}

// SequenceNode creates a sequence node from the given items.
func SequenceNode(items ...*Node) *Node {
	return &Node{Kind: KindSequence, Items: items}
}

// IsScalar returns true if the node is a scalar.
func (n *Node) IsScalar() bool {
	return n != nil && n.Kind == KindScalar
}

// IsMapping returns true if the node is a mapping.
func (n *Node) IsMapping() bool {
	return n != nil && n.Kind == KindMapping
}

// IsSequence returns true if the node is a sequence.
func (n *Node) IsSequence() bool {
	return n != nil && n.Kind == KindSequence
}

// IsNull returns true if the node is a null scalar.
func (n *Node) IsNull() bool {
	return n != nil && n.Kind == KindScalar && n.Tag == TagNull
}

// StringValue returns the raw scalar value, or "" for nil and non-scalar nodes.
func (n *Node) StringValue() string {
	if n == nil || n.Kind != KindScalar {
		return ""
	}
	return n.Value
}

// Len returns the number of fields of a mapping or items of a sequence.
// Scalars and nil nodes have length 0.
func (n *Node) Len() int {
	if n == nil {
		return 0
	}
	switch n.Kind {
	case KindMapping:
		return len(n.Fields)
	case KindSequence:
		return len(n.Items)
	default:
		return 0
	}
}

// Get returns the value for key in a mapping node.
// It returns nil when the node is nil, not a mapping, or the key is absent.
func (n *Node) Get(key string) *Node {
	if n == nil || n.Kind != KindMapping {
		return nil
	}
	for _, f := range n.Fields {
		if f.Key == key {
			return f.Value
		}
	}
	return nil
}

// GetPath follows a chain of mapping keys and returns the node at the end,
// or nil when any step is absent or not a mapping.
func (n *Node) GetPath(keys ...string) *Node {
	current := n
	for _, key := range keys {
		current = current.Get(key)
		if current == nil {
			return nil
		}
	}
	return current
}

// Has returns true if the mapping node has the given key.
func (n *Node) Has(key string) bool {
	return n.Get(key) != nil
}

// Keys returns the mapping's keys in insertion order.
func (n *Node) Keys() []string {
	if n == nil || n.Kind != KindMapping {
		return nil
	}
	keys := make([]string, 0, len(n.Fields))
	for _, f := range n.Fields {
		keys = append(keys, f.Key)
	}
	return keys
}

// Set stores value under key in a mapping node. An existing field is
// overwritten in place so the mapping's key order is preserved; a new key
// is appended at the end. Set is a no-op on nil and non-mapping nodes.
func (n *Node) Set(key string, value *Node) {
	if n == nil || n.Kind != KindMapping {
		return
	}
	for _, f := range n.Fields {
		if f.Key == key {
			f.Value = value
			return
		}
	}
	n.Fields = append(n.Fields, &Field{Key: key, Value: value})
}

// Delete removes key from a mapping node, preserving the order of the
// remaining fields. It returns true if the key was present.
func (n *Node) Delete(key string) bool {
	if n == nil || n.Kind != KindMapping {
		return false
	}
	for i, f := range n.Fields {
		if f.Key == key {
			n.Fields = append(n.Fields[:i], n.Fields[i+1:]...)
			return true
		}
	}
	return false
}

// EnsureMapping returns the mapping stored under key, creating an empty
// mapping field when the key is absent. It returns nil when the receiver is
// not a mapping or the key already holds a non-mapping value; callers decide
// whether that is an error or a reason to skip.
func (n *Node) EnsureMapping(key string) *Node {
	if n == nil || n.Kind != KindMapping {
		return nil
	}
	if existing := n.Get(key); existing != nil {
		if existing.Kind != KindMapping {
			return nil
		}
		return existing
	}
	created := MappingNode()
	n.Set(key, created)
	return created
}
