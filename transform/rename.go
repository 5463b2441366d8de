package transform

import (
	"github.com/staxtools/stax/document"
	"github.com/staxtools/stax/staxerrors"
)

// applyRename prefixes or suffixes the name of every in-scope document and
// rewrites references to the renamed documents across the whole set.
//
// Renaming is a graph problem: a reference held by one document must keep
// resolving after its target changes name. The transform therefore runs in
// two passes over the full set. Pass one collects the rename map without
// touching anything; pass two applies the renames and rewrites every
// matching reference, so the outcome does not depend on document order.
//
// Afterwards each remaining unresolved reference is classified. A reference
// whose target was part of the input set but no longer resolves is a fatal
// DanglingReferenceError. A reference that never pointed into the set is an
// external reference and only recorded as a warning.
func applyRename(docs []*document.Document, spec Spec, index int, prefix bool) (Warnings, error) {
	affix, _ := spec.Value.(string)

	inputIDs := make(map[document.Identity]bool, len(docs))
	renames := make(map[document.Identity]string)
	matched := 0
	for _, d := range docs {
		id := docIdentity(d)
		if id.Kind == "" || id.Name == "" {
			continue
		}
		inputIDs[id] = true
		if !spec.Scope.Matches(id) {
			continue
		}
		matched++
		if prefix {
			renames[id] = affix + id.Name
		} else {
			renames[id] = id.Name + affix
		}
	}

	var warnings Warnings
	if matched == 0 {
		warnings = append(warnings, NewNoTargetsWarning(index, spec.Kind))
	}
	if len(renames) == 0 {
		return warnings, nil
	}

	finalIDs := make(map[document.Identity]bool, len(inputIDs))
	for _, d := range docs {
		id := docIdentity(d)
		if newName, ok := renames[id]; ok {
			d.SetName(newName)
			id.Name = newName
		}
		if id.Kind != "" && id.Name != "" {
			finalIDs[id] = true
		}
	}

	for _, d := range docs {
		rewriteReferences(d, renames)
	}

	for _, d := range docs {
		if err := validateReferences(d, index, inputIDs, finalIDs, &warnings); err != nil {
			return nil, err
		}
	}
	return warnings, nil
}

// rewriteReferences renames every reference whose identity is in the rename
// map. References held by out-of-scope documents are rewritten too: scope
// restricts which documents change name, not which ones point at them.
func rewriteReferences(d *document.Document, renames map[document.Identity]string) {
	d.Walk(func(path string, n *document.Node) document.Action {
		if path == "" {
			return document.Continue
		}
		ref, ok := referenceIdentity(n)
		if !ok {
			return document.Continue
		}
		if newName, ok := renames[ref]; ok {
			n.Set("name", document.StringNode(newName))
		}
		return document.Continue
	})
}

// validateReferences walks one document and classifies every reference that
// does not resolve against the post-rename document set. The first broken
// internal reference is returned as a fatal error; external references are
// appended to warnings.
func validateReferences(d *document.Document, index int, inputIDs, finalIDs map[document.Identity]bool, warnings *Warnings) error {
	from := docIdentity(d)
	var fatal error
	d.Walk(func(path string, n *document.Node) document.Action {
		if path == "" {
			return document.Continue
		}
		ref, ok := referenceIdentity(n)
		if !ok || finalIDs[ref] {
			return document.Continue
		}
		if inputIDs[ref] {
			fatal = &staxerrors.DanglingReferenceError{
				FromKind: from.Kind,
				FromName: from.Name,
				RefKind:  ref.Kind,
				RefName:  ref.Name,
				Path:     path,
			}
			return document.Stop
		}
		*warnings = append(*warnings, NewDanglingReferenceWarning(index, from, ref, path))
		return document.Continue
	})
	return fatal
}

// referenceIdentity reports whether a node is a cross-document reference:
// any mapping below a document root carrying non-empty scalar kind and name
// fields. The document root itself is excluded by the callers (its name
// lives under metadata, not beside kind).
func referenceIdentity(n *document.Node) (document.Identity, bool) {
	if !n.IsMapping() {
		return document.Identity{}, false
	}
	kind := n.Get("kind")
	name := n.Get("name")
	if !kind.IsScalar() || kind.IsNull() || kind.Value == "" {
		return document.Identity{}, false
	}
	if !name.IsScalar() || name.IsNull() || name.Value == "" {
		return document.Identity{}, false
	}
	return document.Identity{Kind: kind.Value, Name: name.Value}, true
}
