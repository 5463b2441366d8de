package transform

import (
	"github.com/staxtools/stax/document"
	"github.com/staxtools/stax/internal/fieldpath"
	"github.com/staxtools/stax/staxerrors"
)

// applySetField overwrites the scalar at a fixed field path in every
// in-scope document. Not every kind of document has every field: a document
// whose shape does not reach the path's parent mapping is skipped with a
// path-not-found warning rather than failing the pipeline. The final path
// segment may be absent; it is created then.
func applySetField(docs []*document.Document, spec Spec, index int) (Warnings, error) {
	path, err := fieldpath.Parse(spec.Path)
	if err != nil {
		return nil, &staxerrors.ConfigError{
			Option: "path",
			Value:  spec.Path,
			Cause:  err,
		}
	}
	value, err := scalarValue(spec.Value)
	if err != nil {
		return nil, &staxerrors.ConfigError{
			Option: "value",
			Value:  spec.Value,
			Cause:  err,
		}
	}

	var warnings Warnings
	matched := 0
	for _, d := range docs {
		id := docIdentity(d)
		if !spec.Scope.Matches(id) {
			continue
		}
		matched++
		parent, missing, ok := path.ResolveParent(d.Root())
		if !ok {
			warnings = append(warnings, NewPathNotFoundWarning(index, id, path.String(), missing))
			continue
		}
		parent.Set(path.Last(), value.Clone())
	}
	if matched == 0 {
		warnings = append(warnings, NewNoTargetsWarning(index, spec.Kind))
	}
	return warnings, nil
}
