// Package stax provides tools for composing layered configuration documents.
//
// stax implements an overlay model for structured configuration: a base set of
// documents is combined with named layers of patches and transforms to produce
// environment-specific variants without duplicating the base. The engine works
// on an ordered document tree, merges patches by identity, and applies
// declarative transforms such as common labels and name prefixes.
//
// # Overview
//
// The library consists of four primary packages:
//
//   - document: Parse, clone, compare, and serialize configuration documents
//   - merge: Merge a patch document into a base document
//   - transform: Declarative document transforms (labels, renames, field edits)
//   - compose: Apply a layer (patches + transforms) to a base document set
//
// Supporting packages:
//
//   - staxerrors: Typed errors shared across all packages
//   - builder: Fluent construction of documents and layers for code and tests
//
// # Installation
//
// Install the library using go get:
//
//	go get github.com/staxtools/stax
//
// # Quick Start
//
// Parse a document set:
//
//	import "github.com/staxtools/stax/document"
//
//	docs, err := document.ParseFile("base.yaml")
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, doc := range docs {
//		id, _ := document.IdentityOf(doc)
//		fmt.Println(id)
//	}
//
// Compose a layer onto a base:
//
//	import "github.com/staxtools/stax/compose"
//
//	result, err := compose.ComposeWithOptions(
//		compose.WithBaseFile("base.yaml"),
//		compose.WithLayerFile("production.yaml"),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	out, err := document.MarshalYAML(result.Documents...)
//
// Merge two documents directly:
//
//	import "github.com/staxtools/stax/merge"
//
//	m, err := merge.New(merge.DefaultConfig())
//	if err != nil {
//		log.Fatal(err)
//	}
//	res, err := m.Merge(base, patch)
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, w := range res.Warnings {
//		fmt.Println(w)
//	}
//
// # Document Package
//
// The document package defines the tree model every other package operates
// on: scalars with YAML tags, mappings with ordered unique keys, and
// sequences. Parsing preserves key order and source positions, rejects
// duplicate keys, and enforces a nesting depth limit.
//
// Key features:
//   - Multi-document YAML streams
//   - Identity resolution (kind + metadata.name)
//   - Deep clone and structural equality
//   - Order-preserving YAML and JSON output
//   - Depth-first traversal with skip and stop control
//
// # Merge Package
//
// The merge package combines a patch document with a base document. Mappings
// merge recursively by key union, scalars are overwritten by the patch, and
// sequences are replaced unless a per-path strategy opts into merging
// elements by a shared identity key. Type conflicts resolve in favor of the
// patch and are reported as warnings rather than errors.
//
// Example:
//
//	config := merge.DefaultConfig()
//	config.StrategyPaths = map[string]merge.SequenceStrategy{
//		"spec.containers": merge.SequenceMergeByIdentity,
//	}
//	m, err := merge.New(config)
//	if err != nil {
//		log.Fatal(err)
//	}
//	res, err := m.Merge(base, patch)
//
// # Transform Package
//
// The transform package applies declarative edits across a document set:
// common labels and annotations (written through to selectors and templates
// so they stay consistent), name prefixes and suffixes with cross-document
// reference rewriting, and targeted field updates.
//
// Example:
//
//	specs := []transform.Spec{
//		{Kind: transform.AddCommonLabel, Key: "stage", Value: "prod"},
//		{Kind: transform.SetNamePrefix, Value: "prod-"},
//	}
//	pipeline, err := transform.NewPipeline(specs)
//	if err != nil {
//		log.Fatal(err)
//	}
//	docs, warnings, err := pipeline.Apply(docs)
//
// # Compose Package
//
// The compose package ties the model together: it indexes the base by
// identity, merges or appends each patch, runs the transform pipeline, and
// returns the finished document set with diagnostics describing every
// non-fatal issue encountered along the way.
//
// Example:
//
//	layer, err := compose.ParseLayerFile("production.yaml")
//	if err != nil {
//		log.Fatal(err)
//	}
//	c := compose.New(compose.DefaultConfig())
//	result, err := c.Compose(baseDocs, layer)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Printf("%d documents, %d diagnostics\n",
//		len(result.Documents), len(result.Diagnostics))
//
// # Determinism
//
// Composition is deterministic: output documents keep the base order with
// additions appended in patch order, mapping keys keep their insertion
// order through merges, and the same inputs always produce byte-identical
// serialized output. Inputs are never mutated; every result is built from
// fresh clones, so a Composer or Merger may be shared across goroutines.
//
// # Resource Limits
//
// All tree operations enforce a nesting depth limit (default: 100) to
// prevent resource exhaustion on pathological input. Layer files may
// reference patch files only within the layer file's directory tree.
//
// # Error Handling
//
// All packages follow consistent error handling patterns:
//
//   - Malformed input, identity problems, duplicate identities, broken
//     references, and depth overruns are returned as typed errors from
//     the staxerrors package and abort the operation with no result
//   - Recoverable issues (type conflicts, missing field paths, references
//     to documents outside the input set) are collected as warnings or
//     diagnostics alongside the result
//
// Always check both the error return value and the diagnostics collection
// in result objects.
//
// # Command-Line Interface
//
// In addition to the library packages, stax provides a command-line
// interface:
//
//	# Compose a base with a layer
//	stax compose -base base.yaml -layer production.yaml -o out.yaml
//
//	# Merge two documents
//	stax merge base.yaml patch.yaml
//
//	# Validate a layer file
//	stax validate production.yaml
//
//	# List document identities
//	stax identify base.yaml
//
// Install the CLI:
//
//	go install github.com/staxtools/stax/cmd/stax@latest
//
// # Additional Resources
//
//   - GitHub Repository: https://github.com/staxtools/stax
//   - Go Package Documentation: https://pkg.go.dev/github.com/staxtools/stax
package stax
