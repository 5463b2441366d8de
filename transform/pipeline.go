package transform

import (
	"fmt"

	"github.com/staxtools/stax/document"
)

// Pipeline applies an ordered list of transforms to a document set.
// Construct one with NewPipeline; the zero value applies nothing.
type Pipeline struct {
	specs []Spec
}

// NewPipeline validates the given transforms and returns a pipeline that
// applies them in declaration order. The first configuration problem is
// returned as the error; use Validate to collect all of them.
func NewPipeline(specs []Spec) (*Pipeline, error) {
	if errs := Validate(specs); len(errs) > 0 {
		return nil, errs[0]
	}
	canonical := make([]Spec, len(specs))
	copy(canonical, specs)
	for i := range canonical {
		// Validate accepted the kind, so ParseKind cannot miss here.
		kind, _ := ParseKind(string(canonical[i].Kind))
		canonical[i].Kind = kind
	}
	return &Pipeline{specs: canonical}, nil
}

// Len returns the number of transforms in the pipeline.
func (p *Pipeline) Len() int {
	if p == nil {
		return 0
	}
	return len(p.specs)
}

// Specs returns a copy of the pipeline's transforms with canonical kinds.
func (p *Pipeline) Specs() []Spec {
	if p == nil {
		return nil
	}
	out := make([]Spec, len(p.specs))
	copy(out, p.specs)
	return out
}

// Apply runs every transform over the document set in declaration order and
// returns the same slice. The documents are mutated in place: clone them
// first (document.CloneAll) when the originals must survive.
//
// Non-fatal conditions are collected as Warnings. A fatal condition, such as
// a rename that breaks a reference between two documents in the set, aborts
// the pipeline and returns the error with no warnings.
func (p *Pipeline) Apply(docs []*document.Document) ([]*document.Document, Warnings, error) {
	if p == nil {
		return docs, nil, nil
	}
	var warnings Warnings
	for i, spec := range p.specs {
		warns, err := applySpec(docs, spec, i)
		if err != nil {
			return nil, nil, err
		}
		warnings = append(warnings, warns...)
	}
	return docs, warnings, nil
}

// Apply validates specs and applies them to docs in one call.
// It is shorthand for NewPipeline followed by Pipeline.Apply.
func Apply(docs []*document.Document, specs []Spec) ([]*document.Document, Warnings, error) {
	p, err := NewPipeline(specs)
	if err != nil {
		return nil, nil, err
	}
	return p.Apply(docs)
}

func applySpec(docs []*document.Document, spec Spec, index int) (Warnings, error) {
	switch spec.Kind {
	case AddCommonLabel:
		return applyCommonEntry(docs, spec, index, false)
	case AddCommonAnnotation:
		return applyCommonEntry(docs, spec, index, true)
	case SetNamePrefix:
		return applyRename(docs, spec, index, true)
	case SetNameSuffix:
		return applyRename(docs, spec, index, false)
	case SetField:
		return applySetField(docs, spec, index)
	case PatchSequenceByIdentity:
		// Declarative merge configuration with no effect of its own.
		// The compose package reads it off the layer before merging.
		return nil, nil
	}
	return nil, fmt.Errorf("transform: unhandled kind %q", spec.Kind)
}

// docIdentity reads a document's identity without requiring it to resolve.
// Either component may be empty; scope matching and reference rewriting
// treat such documents as unaddressable but still transformable.
func docIdentity(d *document.Document) document.Identity {
	return document.Identity{Kind: d.Kind(), Name: d.Name()}
}

// SequenceMergeRule is one PatchSequenceByIdentity declaration, extracted
// for the merge configuration.
type SequenceMergeRule struct {
	// Path is the field path of the sequence to merge by identity.
	Path string
	// MergeKey is the identity field within sequence elements.
	// Empty means the merge engine's default applies.
	MergeKey string
}

// SequenceMergeRules extracts the PatchSequenceByIdentity declarations from
// a transform list, in declaration order. Later rules for the same path
// override earlier ones when the caller folds them into a configuration map.
func SequenceMergeRules(specs []Spec) []SequenceMergeRule {
	var rules []SequenceMergeRule
	for _, spec := range specs {
		kind, ok := ParseKind(string(spec.Kind))
		if !ok || kind != PatchSequenceByIdentity {
			continue
		}
		rules = append(rules, SequenceMergeRule{Path: spec.Path, MergeKey: spec.MergeKey})
	}
	return rules
}
