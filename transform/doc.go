// Package transform applies declarative transformations to sets of
// configuration documents.
//
// A transform is declared as a [Spec] naming a [Kind] and its parameters.
// Specs are grouped into a [Pipeline] and applied in declaration order over
// a whole document set, so cross-document operations (renames that rewrite
// references elsewhere) see every document at once.
//
// # Quick Start
//
//	pipeline, err := transform.NewPipeline([]transform.Spec{
//	    {Kind: transform.AddCommonLabel, Key: "stage", Value: "prod"},
//	    {Kind: transform.SetNamePrefix, Value: "prod-"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	docs, warnings, err := pipeline.Apply(docs)
//
// Apply modifies the documents it is given. Callers that need the originals
// intact should clone them first; the compose package does exactly that, so
// composition keeps its pure contract.
//
// # Transform Kinds
//
//   - [AddCommonLabel]: writes a key/value under metadata.labels of every
//     matching document, and additionally under spec.selector.matchLabels
//     and spec.template.metadata.labels when those parents exist, keeping
//     workload selectors consistent with the labels they select on.
//   - [AddCommonAnnotation]: writes under metadata.annotations, and under
//     spec.template.metadata.annotations when spec.template exists.
//   - [SetNamePrefix], [SetNameSuffix]: rename matching documents and
//     rewrite every reference to them across the whole set. A reference is
//     any mapping (other than a document root) carrying scalar kind and
//     name fields. References this set cannot satisfy are classified:
//     references broken by the rename are fatal, references that never
//     pointed into the set are warnings.
//   - [SetField]: sets a scalar at a field path in every matching document;
//     documents where the path's intermediate mappings are missing are
//     skipped with a warning.
//   - [PatchSequenceByIdentity]: declares that the sequence at a path merges
//     element-wise by identity instead of being replaced. It configures the
//     merge stage and is a no-op during Apply; the compose package hoists it
//     into the merger before merging patches.
//
// # Scoping
//
// Every spec may carry a [Scope] restricting it to documents with matching
// kinds and names. An empty scope list matches everything. A transform whose
// scope matches no document records a no-targets warning rather than failing.
//
// # Warnings
//
// Non-fatal issues are collected as structured [Warning] values and returned
// alongside the transformed documents. Fatal conditions (invalid specs,
// references broken by a rename) abort with errors from
// [github.com/staxtools/stax/staxerrors].
//
// # Related Packages
//
// The transform package integrates with other stax packages:
//   - [github.com/staxtools/stax/document] - Parse and model documents
//   - [github.com/staxtools/stax/merge] - Structural merging
//   - [github.com/staxtools/stax/compose] - Layered composition driving this package
package transform
