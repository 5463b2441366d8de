package document

// Clone returns a deep copy of the document. The copy shares no nodes with
// the original; mutating one never affects the other. Source is carried over.
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}
	return &Document{
		root:   d.root.Clone(),
		Source: d.Source,
	}
}

// Clone returns a deep copy of the node subtree.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	out := &Node{
		Kind:   n.Kind,
		Value:  n.Value,
		Tag:    n.Tag,
		Line:   n.Line,
		Column: n.Column,
	}
	if n.Fields != nil {
		out.Fields = make([]*Field, len(n.Fields))
		for i, f := range n.Fields {
			out.Fields[i] = &Field{Key: f.Key, Value: f.Value.Clone()}
		}
	}
	if n.Items != nil {
		out.Items = make([]*Node, len(n.Items))
		for i, item := range n.Items {
			out.Items[i] = item.Clone()
		}
	}
	return out
}

// CloneAll deep copies a document set, preserving order.
func CloneAll(docs []*Document) []*Document {
	if docs == nil {
		return nil
	}
	out := make([]*Document, len(docs))
	for i, doc := range docs {
		out[i] = doc.Clone()
	}
	return out
}
