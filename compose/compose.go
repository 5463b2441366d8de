// Package compose applies configuration layers to base document sets.
//
// A layer carries patch documents and transform declarations. Composition
// clones the base set, merges each patch into the base document sharing its
// identity (appending patches that match nothing), runs the transforms in
// declaration order, and returns the result together with the diagnostics
// collected along the way. The inputs are never modified, so a single
// Composer can serve concurrent compositions.
package compose

import (
	"github.com/staxtools/stax/document"
	"github.com/staxtools/stax/merge"
	"github.com/staxtools/stax/staxerrors"
	"github.com/staxtools/stax/transform"
)

// Config controls how a Composer merges and transforms.
type Config struct {
	// MaxDepth bounds recursion depth when merging patch documents.
	// Values <= 0 use document.DefaultMaxDepth.
	MaxDepth int

	// SequenceMergeKey pairs sequence elements for sequences opted into
	// merge-by-identity. Empty uses merge.DefaultMergeKey.
	SequenceMergeKey string

	// Logger receives composition progress. Nil uses NopLogger.
	Logger Logger
}

// DefaultConfig returns the default composition configuration.
func DefaultConfig() Config {
	return Config{
		MaxDepth:         document.DefaultMaxDepth,
		SequenceMergeKey: merge.DefaultMergeKey,
		Logger:           NopLogger{},
	}
}

// Composer applies layers to base document sets.
//
// A Composer holds no mutable state and is safe for concurrent use.
type Composer struct {
	config Config
}

// New creates a Composer. Zero-value configuration fields fall back to
// their DefaultConfig values.
func New(config Config) *Composer {
	if config.MaxDepth <= 0 {
		config.MaxDepth = document.DefaultMaxDepth
	}
	if config.SequenceMergeKey == "" {
		config.SequenceMergeKey = merge.DefaultMergeKey
	}
	if config.Logger == nil {
		config.Logger = NopLogger{}
	}
	return &Composer{config: config}
}

// Compose applies the layer to the base documents and returns the composed
// set.
//
// The inputs are never modified; every returned document is a fresh clone.
// Patches merge into the base document sharing their identity and append
// otherwise, then transforms run in declaration order. The output keeps
// base documents first, in input order, followed by additions in patch
// order.
//
// Compose performs no I/O. It returns an error only for fatal conditions:
// invalid transform configuration, documents without a resolvable identity,
// duplicate identities, or merge depth exhaustion. Everything recoverable
// is recorded as a Diagnostic on the result.
func (c *Composer) Compose(base []*document.Document, layer *Layer) (*Result, error) {
	if layer == nil {
		layer = &Layer{}
	}
	log := c.config.Logger
	if layer.Name != "" {
		log = log.With("layer", layer.Name)
	}

	if errs := transform.Validate(layer.Transforms); len(errs) > 0 {
		return nil, errs[0]
	}

	result := &Result{Stats: Stats{
		BaseCount:      len(base),
		TransformCount: len(layer.Transforms),
	}}

	docs := document.CloneAll(base)
	positions, err := indexPositions(docs)
	if err != nil {
		return nil, err
	}
	log.Debug("indexed base documents", "count", len(docs))

	merger, err := c.merger(layer)
	if err != nil {
		return nil, err
	}

	baseCount := len(docs)
	patched := make(map[int]bool)
	for i, patch := range layer.Patches {
		id, err := document.IdentityOf(patch)
		if err != nil {
			return nil, err
		}
		pos, ok := positions[id]
		if !ok {
			positions[id] = len(docs)
			docs = append(docs, patch.Clone())
			result.Stats.AddedCount++
			log.Debug("added patch as new document", "patch", i, "identity", id.String())
			continue
		}
		merged, err := merger.Merge(docs[pos], patch)
		if err != nil {
			return nil, err
		}
		for _, w := range merged.Warnings {
			result.addDiagnostic(mergeDiagnostic(w, id))
		}
		docs[pos] = merged.Document
		if pos < baseCount {
			patched[pos] = true
		}
		log.Debug("merged patch", "patch", i, "identity", id.String(), "warnings", len(merged.Warnings))
	}
	result.Stats.PatchedCount = len(patched)

	pipeline, err := transform.NewPipeline(layer.Transforms)
	if err != nil {
		return nil, err
	}
	docs, warnings, err := pipeline.Apply(docs)
	if err != nil {
		return nil, err
	}
	for _, w := range warnings {
		result.addDiagnostic(transformDiagnostic(w))
	}
	log.Debug("applied transforms", "count", pipeline.Len(), "warnings", len(warnings))

	// Transforms can rename documents, so uniqueness must hold at the end
	// as well as the start.
	if _, err := document.IndexByIdentity(docs); err != nil {
		return nil, err
	}

	result.Documents = docs
	log.Info("composed layer",
		"base", result.Stats.BaseCount,
		"patched", result.Stats.PatchedCount,
		"added", result.Stats.AddedCount,
		"transforms", result.Stats.TransformCount,
		"warnings", result.Stats.WarningCount)
	return result, nil
}

// merger builds the merge engine for a layer, folding the layer's sequence
// merge declarations into the composer's configuration.
func (c *Composer) merger(layer *Layer) (*merge.Merger, error) {
	cfg := merge.Config{
		Strategy: merge.SequenceReplace,
		MergeKey: c.config.SequenceMergeKey,
		MaxDepth: c.config.MaxDepth,
	}
	rules := transform.SequenceMergeRules(layer.Transforms)
	if len(rules) > 0 {
		cfg.StrategyPaths = make(map[string]merge.SequenceStrategy, len(rules))
		cfg.MergeKeyPaths = make(map[string]string)
		for _, rule := range rules {
			cfg.StrategyPaths[rule.Path] = merge.SequenceMergeByIdentity
			if rule.MergeKey != "" {
				cfg.MergeKeyPaths[rule.Path] = rule.MergeKey
			}
		}
	}
	return merge.New(cfg)
}

// indexPositions maps each document's identity to its slice position,
// failing on unidentifiable or duplicated documents.
func indexPositions(docs []*document.Document) (map[document.Identity]int, error) {
	positions := make(map[document.Identity]int, len(docs))
	for i, d := range docs {
		id, err := document.IdentityOf(d)
		if err != nil {
			return nil, err
		}
		if first, ok := positions[id]; ok {
			return nil, &staxerrors.DuplicateIdentityError{
				Kind:         id.Kind,
				Name:         id.Name,
				FirstSource:  docs[first].Source,
				SecondSource: d.Source,
			}
		}
		positions[id] = i
	}
	return positions, nil
}
