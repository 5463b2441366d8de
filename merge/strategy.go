package merge

import (
	"github.com/staxtools/stax/document"
)

// SequenceStrategy selects how two sequences combine during a merge.
type SequenceStrategy int

const (
	// SequenceReplace discards the base sequence and uses the patch
	// sequence. This is the default strategy.
	SequenceReplace SequenceStrategy = iota

	// SequenceMergeByIdentity pairs mapping elements from both sequences by
	// a scalar merge key, merges matched pairs, and appends unmatched patch
	// elements after the base elements.
	SequenceMergeByIdentity
)

// String returns the string representation of the strategy.
func (s SequenceStrategy) String() string {
	switch s {
	case SequenceReplace:
		return "replace"
	case SequenceMergeByIdentity:
		return "merge-by-identity"
	default:
		return "unknown"
	}
}

// IsValid returns true if the strategy is one of the defined constants.
func (s SequenceStrategy) IsValid() bool {
	return s >= SequenceReplace && s <= SequenceMergeByIdentity
}

// DefaultMergeKey is the mapping key used to pair sequence elements when no
// merge key is configured.
const DefaultMergeKey = "name"

// Config controls merge behavior.
type Config struct {
	// Strategy is the sequence strategy applied where StrategyPaths has no
	// entry for the sequence's path.
	Strategy SequenceStrategy

	// StrategyPaths maps field paths (from the document root, for example
	// "spec.template.spec.containers") to the strategy for the sequence at
	// that path. Paths are canonicalized, so quoting style does not matter.
	StrategyPaths map[string]SequenceStrategy

	// MergeKey is the scalar mapping key used to pair sequence elements
	// under SequenceMergeByIdentity. Defaults to DefaultMergeKey.
	MergeKey string

	// MergeKeyPaths overrides MergeKey for the sequences at specific field
	// paths. Keys are canonicalized like StrategyPaths.
	MergeKeyPaths map[string]string

	// MaxDepth bounds the nesting depth of merged trees. Values <= 0 use
	// document.DefaultMaxDepth.
	MaxDepth int
}

// DefaultConfig returns the default merge configuration: sequences replace,
// elements pair by "name", and depth is bounded at document.DefaultMaxDepth.
func DefaultConfig() Config {
	return Config{
		Strategy: SequenceReplace,
		MergeKey: DefaultMergeKey,
		MaxDepth: document.DefaultMaxDepth,
	}
}
