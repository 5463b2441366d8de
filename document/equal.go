package document

// Equal reports structural equality of two documents. Source and node
// positions are ignored; mapping field order is significant.
func (d *Document) Equal(other *Document) bool {
	if d == nil || other == nil {
		return d == other
	}
	return d.root.Equal(other.root)
}

// Equal reports structural equality of two node subtrees: same kinds, same
// scalar tags and values, same field keys in the same order, and same item
// order. Positions are ignored.
func (n *Node) Equal(other *Node) bool {
	if n == nil || other == nil {
		return n == other
	}
	if n.Kind != other.Kind {
		return false
	}
	switch n.Kind {
	case KindScalar:
		return n.Tag == other.Tag && n.Value == other.Value
	case KindMapping:
		if len(n.Fields) != len(other.Fields) {
			return false
		}
		for i, f := range n.Fields {
			o := other.Fields[i]
			if f.Key != o.Key || !f.Value.Equal(o.Value) {
				return false
			}
		}
		return true
	case KindSequence:
		if len(n.Items) != len(other.Items) {
			return false
		}
		for i, item := range n.Items {
			if !item.Equal(other.Items[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
