// Package merge provides structural merging of configuration documents.
//
// A merge combines a base document with a patch document into a fresh result.
// Merging is recursive and kind-directed: scalars are overwritten by the
// patch, mappings merge key by key, and sequences follow a configurable
// strategy. Neither input is ever modified.
//
// # Quick Start
//
// Merge two parsed documents with the default configuration:
//
//	m, err := merge.New(merge.DefaultConfig())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := m.Merge(base, patch)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	out, _ := document.MarshalYAML(result.Document)
//
// # Merge Rules
//
// The patch is merged into the base node by node:
//   - Scalar over scalar: the patch value and tag win.
//   - Mapping over mapping: keys present in both merge recursively; keys only
//     in the base keep their base order; keys only in the patch are appended
//     after them in patch order.
//   - Sequence over sequence: the strategy for the sequence's path decides
//     (see below).
//   - Mismatched kinds: the patch node wins and a type conflict warning is
//     recorded with the path of the collision.
//
// Null is an ordinary scalar value: a null in the patch overwrites the base
// value rather than deleting the key.
//
// # Sequence Strategies
//
// [SequenceReplace] (the default) discards the base sequence and uses the
// patch sequence. [SequenceMergeByIdentity] pairs mapping elements from both
// sequences by a scalar merge key ("name" by default), merges the pairs, and
// appends unmatched patch elements after the base elements. Elements missing
// the merge key force a fallback to replacement for that sequence, with a
// warning.
//
// Strategies can be set globally via [Config.Strategy] or per field path via
// [Config.StrategyPaths], and the merge key can vary per path via
// [Config.MergeKeyPaths]:
//
//	cfg := merge.DefaultConfig()
//	cfg.StrategyPaths = map[string]merge.SequenceStrategy{
//	    "spec.template.spec.containers": merge.SequenceMergeByIdentity,
//	    "spec.endpoints":                merge.SequenceMergeByIdentity,
//	}
//	cfg.MergeKeyPaths = map[string]string{"spec.endpoints": "host"}
//
// # Warnings
//
// Non-fatal issues (type conflicts, missing merge keys) never abort a merge.
// They are collected as structured [Warning] values on the [Result]. Fatal
// conditions (nesting beyond [Config.MaxDepth]) abort with an error from
// [github.com/staxtools/stax/staxerrors].
//
// # Related Packages
//
// The merge package integrates with other stax packages:
//   - [github.com/staxtools/stax/document] - Parse and model documents
//   - [github.com/staxtools/stax/compose] - Layered composition on top of merge
//   - [github.com/staxtools/stax/transform] - Document-set transformations
package merge
