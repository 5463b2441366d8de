package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/staxtools/stax/document"
	"github.com/staxtools/stax/merge"
)

type mergeInput struct {
	Base               sourceInput       `json:"base"                           jsonschema:"The base document (exactly one)"`
	Patch              sourceInput       `json:"patch"                          jsonschema:"The patch document to merge into the base (exactly one)"`
	SequenceMergePaths map[string]string `json:"sequence_merge_paths,omitempty" jsonschema:"Field paths whose sequences merge element-wise, mapped to the identity key for pairing elements (empty value uses STAX_SEQUENCE_MERGE_KEY)"`
	Format             string            `json:"format,omitempty"               jsonschema:"Output format: yaml or json. Defaults to STAX_OUTPUT_FORMAT."`
}

type mergeOutput struct {
	Warnings []string `json:"warnings,omitempty"`
	Document string   `json:"document"`
	Summary  string   `json:"summary"`
}

func handleMerge(_ context.Context, _ *mcp.CallToolRequest, input mergeInput) (*mcp.CallToolResult, mergeOutput, error) {
	base, err := input.Base.resolveDoc()
	if err != nil {
		return errResult(fmt.Errorf("base: %w", err)), mergeOutput{}, nil
	}
	patch, err := input.Patch.resolveDoc()
	if err != nil {
		return errResult(fmt.Errorf("patch: %w", err)), mergeOutput{}, nil
	}

	format, err := resolveFormat(input.Format)
	if err != nil {
		return errResult(err), mergeOutput{}, nil
	}

	config := merge.Config{
		MergeKey: cfg.SequenceMergeKey,
		MaxDepth: cfg.MaxDepth,
	}
	for path, key := range input.SequenceMergePaths {
		if config.StrategyPaths == nil {
			config.StrategyPaths = make(map[string]merge.SequenceStrategy, len(input.SequenceMergePaths))
			config.MergeKeyPaths = make(map[string]string)
		}
		config.StrategyPaths[path] = merge.SequenceMergeByIdentity
		if key != "" {
			config.MergeKeyPaths[path] = key
		}
	}

	merger, err := merge.New(config)
	if err != nil {
		return errResult(err), mergeOutput{}, nil
	}

	result, err := merger.Merge(base, patch)
	if err != nil {
		return errResult(err), mergeOutput{}, nil
	}

	var data []byte
	switch format {
	case formatJSON:
		data, err = document.MarshalJSONIndent(result.Document, "", "  ")
	default:
		data, err = document.MarshalYAML(result.Document)
	}
	if err != nil {
		return errResult(err), mergeOutput{}, nil
	}

	output := mergeOutput{
		Warnings: sanitizeStrings(result.Warnings.Strings()),
		Document: string(data),
	}
	output.Summary = "Merged 1 document"
	if n := len(result.Warnings); n > 0 {
		output.Summary += " with " + formatCount(n, "warning")
	}
	output.Summary += "."

	return nil, output, nil
}
