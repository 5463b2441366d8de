package compose

import (
	"github.com/staxtools/stax/document"
	"github.com/staxtools/stax/transform"
)

// Patch operations reported by DryRun.
const (
	// OperationMerge means a base document shares the patch's identity and
	// the patch would merge into it.
	OperationMerge = "merge"

	// OperationAdd means no base document shares the patch's identity and
	// the patch would be appended as a new document.
	OperationAdd = "add"
)

// DryRun reports what Compose would do with the same inputs, without
// returning the composed documents.
//
// The preview comes from running the full composition against clones, so it
// surfaces exactly the diagnostics and fatal errors Compose would. Each
// transform's MatchCount is measured at the point the transform would run,
// after earlier patches and transforms have taken effect.
func (c *Composer) DryRun(base []*document.Document, layer *Layer) (*Preview, error) {
	if layer == nil {
		layer = &Layer{}
	}
	if errs := transform.Validate(layer.Transforms); len(errs) > 0 {
		return nil, errs[0]
	}

	preview := &Preview{}
	docs := document.CloneAll(base)
	positions, err := indexPositions(docs)
	if err != nil {
		return nil, err
	}

	merger, err := c.merger(layer)
	if err != nil {
		return nil, err
	}

	for i, patch := range layer.Patches {
		id, err := document.IdentityOf(patch)
		if err != nil {
			return nil, err
		}
		pos, ok := positions[id]
		if !ok {
			positions[id] = len(docs)
			docs = append(docs, patch.Clone())
			preview.Patches = append(preview.Patches, PatchPreview{
				PatchIndex: i,
				Identity:   id,
				Operation:  OperationAdd,
			})
			preview.WouldAdd++
			continue
		}
		merged, err := merger.Merge(docs[pos], patch)
		if err != nil {
			return nil, err
		}
		for _, w := range merged.Warnings {
			preview.Diagnostics = append(preview.Diagnostics, mergeDiagnostic(w, id))
		}
		docs[pos] = merged.Document
		preview.Patches = append(preview.Patches, PatchPreview{
			PatchIndex: i,
			Identity:   id,
			Operation:  OperationMerge,
		})
		preview.WouldMerge++
	}

	for i, spec := range layer.Transforms {
		kind, _ := transform.ParseKind(string(spec.Kind))
		tp := TransformPreview{TransformIndex: i, Kind: string(kind)}
		// Sequence merge declarations act during patch merging, not at
		// transform time, so they target no documents here.
		if kind != transform.PatchSequenceByIdentity {
			for _, d := range docs {
				id := document.Identity{Kind: d.Kind(), Name: d.Name()}
				if spec.Scope.Matches(id) {
					tp.MatchCount++
				}
			}
		}
		next, warnings, err := transform.Apply(docs, []transform.Spec{spec})
		if err != nil {
			return nil, err
		}
		docs = next
		for _, w := range warnings {
			preview.Diagnostics = append(preview.Diagnostics, transformDiagnostic(w))
		}
		preview.Transforms = append(preview.Transforms, tp)
	}

	if _, err := document.IndexByIdentity(docs); err != nil {
		return nil, err
	}
	return preview, nil
}
