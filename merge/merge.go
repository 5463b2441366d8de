package merge

import (
	"fmt"

	"github.com/staxtools/stax/document"
	"github.com/staxtools/stax/internal/fieldpath"
	"github.com/staxtools/stax/staxerrors"
)

// Merger merges patch documents into base documents.
//
// A Merger holds only read-only configuration and is safe for concurrent use
// by multiple goroutines.
type Merger struct {
	config Config

	// strategyPaths holds Config.StrategyPaths with canonicalized keys.
	strategyPaths map[string]SequenceStrategy

	// mergeKeyPaths holds Config.MergeKeyPaths with canonicalized keys.
	mergeKeyPaths map[string]string
}

// New creates a Merger from the configuration.
//
// Zero values fall back to the DefaultConfig values. An invalid strategy or
// an unparseable strategy path returns a ConfigError.
func New(config Config) (*Merger, error) {
	if !config.Strategy.IsValid() {
		return nil, &staxerrors.ConfigError{
			Option:  "Strategy",
			Value:   int(config.Strategy),
			Message: "unknown sequence strategy",
		}
	}
	if config.MergeKey == "" {
		config.MergeKey = DefaultMergeKey
	}
	if config.MaxDepth <= 0 {
		config.MaxDepth = document.DefaultMaxDepth
	}

	strategyPaths := make(map[string]SequenceStrategy, len(config.StrategyPaths))
	for raw, strategy := range config.StrategyPaths {
		if !strategy.IsValid() {
			return nil, &staxerrors.ConfigError{
				Option:  "StrategyPaths",
				Value:   raw,
				Message: "unknown sequence strategy",
			}
		}
		path, err := fieldpath.Parse(raw)
		if err != nil {
			return nil, &staxerrors.ConfigError{
				Option:  "StrategyPaths",
				Value:   raw,
				Message: "invalid field path",
				Cause:   err,
			}
		}
		strategyPaths[path.String()] = strategy
	}

	mergeKeyPaths := make(map[string]string, len(config.MergeKeyPaths))
	for raw, key := range config.MergeKeyPaths {
		if key == "" {
			return nil, &staxerrors.ConfigError{
				Option:  "MergeKeyPaths",
				Value:   raw,
				Message: "merge key must not be empty",
			}
		}
		path, err := fieldpath.Parse(raw)
		if err != nil {
			return nil, &staxerrors.ConfigError{
				Option:  "MergeKeyPaths",
				Value:   raw,
				Message: "invalid field path",
				Cause:   err,
			}
		}
		mergeKeyPaths[path.String()] = key
	}

	return &Merger{
		config:        config,
		strategyPaths: strategyPaths,
		mergeKeyPaths: mergeKeyPaths,
	}, nil
}

// Merge merges the patch document into the base document and returns a fresh
// result document. Neither input is modified; the result shares no nodes
// with either input.
func (m *Merger) Merge(base, patch *document.Document) (*Result, error) {
	if base == nil {
		return nil, &staxerrors.ConfigError{Option: "base", Message: "document is nil"}
	}
	if patch == nil {
		return nil, &staxerrors.ConfigError{Option: "patch", Message: "document is nil"}
	}

	root, warnings, err := m.mergeNodes(base.Root(), patch.Root(), "", 0)
	if err != nil {
		return nil, err
	}

	doc, err := document.New(root)
	if err != nil {
		return nil, err
	}
	doc.Source = base.Source

	return &Result{Document: doc, Warnings: warnings}, nil
}

// MergeNodes merges the patch node into the base node using the default
// configuration and returns a fresh node. It is a convenience for callers
// working below the document level.
func MergeNodes(base, patch *document.Node) (*document.Node, Warnings, error) {
	m, err := New(DefaultConfig())
	if err != nil {
		return nil, nil, err
	}
	return m.MergeNodes(base, patch)
}

// MergeNodes merges the patch node into the base node using the Merger's
// configuration and returns a fresh node.
func (m *Merger) MergeNodes(base, patch *document.Node) (*document.Node, Warnings, error) {
	return m.mergeNodes(base, patch, "", 0)
}

// mergeNodes dispatches on node kind. A nil side yields a clone of the other
// side; mismatched kinds resolve in favor of the patch with a warning.
func (m *Merger) mergeNodes(base, patch *document.Node, path string, depth int) (*document.Node, Warnings, error) {
	if depth > m.config.MaxDepth {
		return nil, nil, &staxerrors.DepthLimitError{Limit: m.config.MaxDepth, Path: path}
	}

	if base == nil {
		return patch.Clone(), nil, nil
	}
	if patch == nil {
		return base.Clone(), nil, nil
	}

	if base.Kind != patch.Kind {
		w := &Warning{
			Category:  WarnTypeConflict,
			Path:      path,
			BaseKind:  base.Kind,
			PatchKind: patch.Kind,
			Message:   fmt.Sprintf("cannot merge %s into %s, patch value wins", patch.Kind, base.Kind),
		}
		return patch.Clone(), Warnings{w}, nil
	}

	switch base.Kind {
	case document.KindScalar:
		return patch.Clone(), nil, nil
	case document.KindMapping:
		return m.mergeMappings(base, patch, path, depth)
	case document.KindSequence:
		return m.mergeSequences(base, patch, path, depth)
	default:
		return nil, nil, fmt.Errorf("merge: unsupported node kind %q at path %q", base.Kind, path)
	}
}

// mergeMappings merges two mappings key by key. Keys present in both merge
// recursively in base order; patch-only keys are appended after them in
// patch order.
func (m *Merger) mergeMappings(base, patch *document.Node, path string, depth int) (*document.Node, Warnings, error) {
	out := &document.Node{
		Kind:   document.KindMapping,
		Fields: make([]*document.Field, 0, len(base.Fields)+len(patch.Fields)),
		Line:   base.Line,
		Column: base.Column,
	}
	var warnings Warnings

	for _, f := range base.Fields {
		patchValue := patch.Get(f.Key)
		if patchValue == nil {
			out.Fields = append(out.Fields, &document.Field{Key: f.Key, Value: f.Value.Clone()})
			continue
		}
		merged, warns, err := m.mergeNodes(f.Value, patchValue, fieldpath.Child(path, f.Key), depth+1)
		if err != nil {
			return nil, nil, err
		}
		warnings = append(warnings, warns...)
		out.Fields = append(out.Fields, &document.Field{Key: f.Key, Value: merged})
	}

	for _, f := range patch.Fields {
		if base.Has(f.Key) {
			continue
		}
		out.Fields = append(out.Fields, &document.Field{Key: f.Key, Value: f.Value.Clone()})
	}

	return out, warnings, nil
}

// mergeSequences merges two sequences according to the strategy configured
// for the sequence's path.
func (m *Merger) mergeSequences(base, patch *document.Node, path string, depth int) (*document.Node, Warnings, error) {
	if m.strategyFor(path) == SequenceReplace {
		return patch.Clone(), nil, nil
	}

	// Merge by identity requires every element on both sides to carry the
	// merge key; otherwise the whole sequence falls back to replacement.
	if w := m.checkMergeKeys(base, patch, path); w != nil {
		return patch.Clone(), Warnings{w}, nil
	}

	out := &document.Node{
		Kind:   document.KindSequence,
		Items:  make([]*document.Node, 0, len(base.Items)+len(patch.Items)),
		Line:   base.Line,
		Column: base.Column,
	}
	var warnings Warnings
	mergeKey := m.mergeKeyFor(path)

	patchIndex := make(map[string]int, len(patch.Items))
	for i, item := range patch.Items {
		key := item.Get(mergeKey).StringValue()
		if _, exists := patchIndex[key]; !exists {
			patchIndex[key] = i
		}
	}
	used := make([]bool, len(patch.Items))

	for i, item := range base.Items {
		key := item.Get(mergeKey).StringValue()
		j, ok := patchIndex[key]
		if !ok || used[j] {
			out.Items = append(out.Items, item.Clone())
			continue
		}
		used[j] = true
		merged, warns, err := m.mergeNodes(item, patch.Items[j], fieldpath.Index(path, i), depth+1)
		if err != nil {
			return nil, nil, err
		}
		warnings = append(warnings, warns...)
		out.Items = append(out.Items, merged)
	}

	for j, item := range patch.Items {
		if used[j] {
			continue
		}
		out.Items = append(out.Items, item.Clone())
	}

	return out, warnings, nil
}

// checkMergeKeys verifies that every element of both sequences is a mapping
// carrying a non-empty scalar merge key. It returns a warning describing the
// first offending element, or nil when identity merging can proceed.
func (m *Merger) checkMergeKeys(base, patch *document.Node, path string) *Warning {
	mergeKey := m.mergeKeyFor(path)
	for _, seq := range []*document.Node{base, patch} {
		for i, item := range seq.Items {
			if hasMergeKey(item, mergeKey) {
				continue
			}
			return &Warning{
				Category: WarnMissingMergeKey,
				Path:     fieldpath.Index(path, i),
				MergeKey: mergeKey,
				Message: fmt.Sprintf("sequence element has no scalar %q key, replacing the whole sequence",
					mergeKey),
			}
		}
	}
	return nil
}

// hasMergeKey reports whether the element is a mapping with a non-empty
// scalar value under the merge key.
func hasMergeKey(item *document.Node, mergeKey string) bool {
	if !item.IsMapping() {
		return false
	}
	value := item.Get(mergeKey)
	return value.IsScalar() && !value.IsNull() && value.Value != ""
}

// strategyFor returns the sequence strategy for a path, preferring a
// per-path entry over the global strategy.
func (m *Merger) strategyFor(path string) SequenceStrategy {
	if s, ok := m.strategyPaths[path]; ok {
		return s
	}
	return m.config.Strategy
}

// mergeKeyFor returns the merge key for a sequence path, preferring a
// per-path entry over the global key.
func (m *Merger) mergeKeyFor(path string) string {
	if k, ok := m.mergeKeyPaths[path]; ok {
		return k
	}
	return m.config.MergeKey
}
