// Package document provides the tree model for configuration documents.
//
// Import path: github.com/staxtools/stax/document
//
// A document is a tree of three node kinds: scalars (with YAML type tags),
// mappings (ordered key/value fields with unique keys), and sequences. Every
// other stax package operates on this model. Parsing goes through yaml.Node
// so that key order, scalar renderings, and source positions survive a full
// parse/serialize round trip.
//
// # Parsing
//
// Parse a single document or a multi-document stream:
//
//	doc, err := document.Parse(data)
//	docs, err := document.ParseAll(data)
//	docs, err := document.ParseFile("base.yaml")
//
// Parsing rejects malformed YAML, non-mapping document roots, duplicate
// mapping keys at any depth, and nesting beyond the depth limit. All of
// these surface as typed errors from the staxerrors package.
//
// # Identity
//
// Documents are identified by their kind field plus metadata.name:
//
//	id, err := document.IdentityOf(doc)      // Identity{Kind, Name}
//	index, err := document.IndexByIdentity(docs)
//
// # Construction
//
// Nodes can be built programmatically with the scalar constructors and
// mapping/sequence helpers:
//
//	root := document.MappingNode(
//		&document.Field{Key: "kind", Value: document.StringNode("ConfigMap")},
//	)
//	doc, err := document.New(root)
//
// # Traversal
//
// Walk visits every node depth first. The visit callback steers traversal
// with Continue, SkipChildren, or Stop:
//
//	doc.Walk(func(path string, n *document.Node) document.Action {
//		if n.Kind == document.KindMapping && n.Has("name") {
//			return document.SkipChildren
//		}
//		return document.Continue
//	})
//
// # Serialization
//
// MarshalYAML emits one or more documents with field order preserved;
// MarshalJSON and MarshalJSONIndent do the same for JSON output.
package document
