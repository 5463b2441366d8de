package mcpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/staxtools/stax/compose"
	"github.com/staxtools/stax/document"
)

type composeInput struct {
	Base   sourceInput `json:"base"              jsonschema:"The base document set"`
	Layer  sourceInput `json:"layer"             jsonschema:"The layer (patches and transforms) to apply"`
	DryRun bool        `json:"dry_run,omitempty" jsonschema:"Preview per-patch operations and per-transform match counts without producing documents"`
	Output string      `json:"output,omitempty"  jsonschema:"File path to write the composed documents. If omitted the documents are returned inline."`
	Format string      `json:"format,omitempty"  jsonschema:"Output format: yaml or json. Defaults to STAX_OUTPUT_FORMAT."`
}

type composePatchPreview struct {
	PatchIndex int    `json:"patch_index"`
	Identity   string `json:"identity"`
	Operation  string `json:"operation"`
}

type composeTransformPreview struct {
	TransformIndex int    `json:"transform_index"`
	Kind           string `json:"kind"`
	MatchCount     int    `json:"match_count"`
}

type composeOutput struct {
	BaseCount      int                       `json:"base_count"`
	PatchedCount   int                       `json:"patched_count"`
	AddedCount     int                       `json:"added_count"`
	TransformCount int                       `json:"transform_count"`
	Diagnostics    []string                  `json:"diagnostics,omitempty"`
	Patches        []composePatchPreview     `json:"patches,omitempty"`
	Transforms     []composeTransformPreview `json:"transforms,omitempty"`
	WrittenTo      string                    `json:"written_to,omitempty"`
	Documents      string                    `json:"documents,omitempty"`
	Summary        string                    `json:"summary"`
}

func handleCompose(_ context.Context, _ *mcp.CallToolRequest, input composeInput) (*mcp.CallToolResult, composeOutput, error) {
	base, err := input.Base.resolveDocs()
	if err != nil {
		return errResult(err), composeOutput{}, nil
	}
	layer, err := input.Layer.resolveLayer()
	if err != nil {
		return errResult(err), composeOutput{}, nil
	}

	format, err := resolveFormat(input.Format)
	if err != nil {
		return errResult(err), composeOutput{}, nil
	}

	composer := compose.New(compose.Config{
		MaxDepth:         cfg.MaxDepth,
		SequenceMergeKey: cfg.SequenceMergeKey,
	})

	if input.DryRun {
		return handleComposeDryRun(composer, base, layer)
	}

	result, err := composer.Compose(base, layer)
	if err != nil {
		return errResult(err), composeOutput{}, nil
	}

	output := composeOutput{
		BaseCount:      result.Stats.BaseCount,
		PatchedCount:   result.Stats.PatchedCount,
		AddedCount:     result.Stats.AddedCount,
		TransformCount: result.Stats.TransformCount,
		Diagnostics:    sanitizeStrings(result.Diagnostics.Strings()),
	}
	output.Summary = buildComposeSummary(result.Stats, len(result.Diagnostics))

	data, err := marshalDocs(result.Documents, format)
	if err != nil {
		return errResult(err), composeOutput{}, nil
	}

	if input.Output != "" {
		if err := os.WriteFile(input.Output, data, 0o644); err != nil {
			return errResult(fmt.Errorf("failed to write output file: %w", err)), composeOutput{}, nil
		}
		output.WrittenTo = input.Output
	} else {
		output.Documents = string(data)
	}

	return nil, output, nil
}

func handleComposeDryRun(composer *compose.Composer, base []*document.Document, layer *compose.Layer) (*mcp.CallToolResult, composeOutput, error) {
	preview, err := composer.DryRun(base, layer)
	if err != nil {
		return errResult(err), composeOutput{}, nil
	}

	output := composeOutput{
		BaseCount:      len(base),
		PatchedCount:   preview.WouldMerge,
		AddedCount:     preview.WouldAdd,
		TransformCount: len(preview.Transforms),
		Diagnostics:    sanitizeStrings(preview.Diagnostics.Strings()),
	}

	output.Patches = makeSlice[composePatchPreview](len(preview.Patches))
	for _, p := range preview.Patches {
		output.Patches = append(output.Patches, composePatchPreview{
			PatchIndex: p.PatchIndex,
			Identity:   p.Identity.String(),
			Operation:  p.Operation,
		})
	}

	output.Transforms = makeSlice[composeTransformPreview](len(preview.Transforms))
	for _, tr := range preview.Transforms {
		output.Transforms = append(output.Transforms, composeTransformPreview{
			TransformIndex: tr.TransformIndex,
			Kind:           tr.Kind,
			MatchCount:     tr.MatchCount,
		})
	}

	output.Summary = fmt.Sprintf("%s would merge, %s would be added",
		formatCount(preview.WouldMerge, "patch"), formatCount(preview.WouldAdd, "patch"))
	if n := len(preview.Diagnostics); n > 0 {
		output.Summary += " with " + formatCount(n, "diagnostic")
	}
	output.Summary += " (dry run - no documents produced)."

	return nil, output, nil
}

func buildComposeSummary(stats compose.Stats, diagnostics int) string {
	total := stats.BaseCount + stats.AddedCount
	summary := fmt.Sprintf("Composed %s: %d patched, %d added, %s applied",
		formatCount(total, "document"), stats.PatchedCount, stats.AddedCount,
		formatCount(stats.TransformCount, "transform"))
	if diagnostics > 0 {
		summary += " with " + formatCount(diagnostics, "diagnostic")
	}
	summary += "."
	return summary
}

// resolveFormat validates an explicit format parameter, falling back to the
// configured default when empty.
func resolveFormat(format string) (string, error) {
	switch format {
	case "":
		return cfg.OutputFormat, nil
	case formatYAML, formatJSON:
		return format, nil
	default:
		return "", fmt.Errorf("invalid format %q; valid values: %s, %s", format, formatYAML, formatJSON)
	}
}

// marshalDocs renders a document set in the requested format. YAML output
// separates documents with "---" markers; JSON output is an indented array.
func marshalDocs(docs []*document.Document, format string) ([]byte, error) {
	if format != formatJSON {
		return document.MarshalYAML(docs...)
	}

	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, doc := range docs {
		if i > 0 {
			buf.WriteByte(',')
		}
		data, err := document.MarshalJSON(doc)
		if err != nil {
			return nil, err
		}
		buf.Write(data)
	}
	buf.WriteByte(']')

	var out bytes.Buffer
	if err := json.Indent(&out, buf.Bytes(), "", "  "); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}
