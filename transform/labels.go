package transform

import (
	"github.com/staxtools/stax/document"
	"github.com/staxtools/stax/staxerrors"
)

// applyCommonEntry adds one key/value entry to the metadata labels or
// annotations of every in-scope document.
//
// Labels are additionally written anywhere a document matches against its
// own labels: spec.selector.matchLabels (or a bare mapping spec.selector)
// and spec.template.metadata.labels. A workload whose selector matched its
// template before the transform must still match it afterwards.
// Annotations have no matching semantics, so they are written only to
// metadata and to the pod template.
func applyCommonEntry(docs []*document.Document, spec Spec, index int, annotations bool) (Warnings, error) {
	value, err := scalarValue(spec.Value)
	if err != nil {
		return nil, &staxerrors.ConfigError{
			Option: "value",
			Value:  spec.Value,
			Cause:  err,
		}
	}

	field := "labels"
	if annotations {
		field = "annotations"
	}

	var warnings Warnings
	matched := 0
	for _, d := range docs {
		id := docIdentity(d)
		if !spec.Scope.Matches(id) {
			continue
		}
		matched++
		root := d.Root()

		if target, bad := ensureChain(root, "metadata", field); target != nil {
			target.Set(spec.Key, value.Clone())
		} else {
			warnings = append(warnings, NewPathNotFoundWarning(index, id, "metadata."+field, bad))
		}

		if !annotations {
			if selector := root.GetPath("spec", "selector"); selector.IsMapping() {
				// Selectors come in two shapes: a matchLabels wrapper or a
				// bare label mapping. Write into matchLabels when present,
				// otherwise treat the selector itself as the label set.
				target := selector
				if selector.Has("matchLabels") || selector.Has("matchExpressions") {
					var bad string
					target, bad = ensureChain(selector, "matchLabels")
					if target == nil {
						warnings = append(warnings, NewPathNotFoundWarning(index, id, "spec.selector.matchLabels", bad))
					}
				}
				if target != nil {
					target.Set(spec.Key, value.Clone())
				}
			}
		}

		if template := root.GetPath("spec", "template"); template.IsMapping() {
			if target, bad := ensureChain(template, "metadata", field); target != nil {
				target.Set(spec.Key, value.Clone())
			} else {
				warnings = append(warnings, NewPathNotFoundWarning(index, id, "spec.template.metadata."+field, bad))
			}
		}
	}
	if matched == 0 {
		warnings = append(warnings, NewNoTargetsWarning(index, spec.Kind))
	}
	return warnings, nil
}

// ensureChain walks nested mappings by key, creating any that are missing,
// and returns the final mapping. When an existing value along the way is
// not a mapping it returns nil and the offending key.
func ensureChain(root *document.Node, keys ...string) (*document.Node, string) {
	current := root
	for _, key := range keys {
		next := current.EnsureMapping(key)
		if next == nil {
			return nil, key
		}
		current = next
	}
	return current, ""
}
