package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/staxtools/stax/document"
)

type identifyInput struct {
	Docs sourceInput `json:"docs" jsonschema:"The document set to identify"`
}

type identityEntry struct {
	Kind   string `json:"kind"`
	Name   string `json:"name"`
	Source string `json:"source,omitempty"`
}

type identifyOutput struct {
	Count      int             `json:"count"`
	Identities []identityEntry `json:"identities,omitempty"`
	Duplicates []string        `json:"duplicates,omitempty"`
	Invalid    []string        `json:"invalid,omitempty"`
	Summary    string          `json:"summary"`
}

func handleIdentify(_ context.Context, _ *mcp.CallToolRequest, input identifyInput) (*mcp.CallToolResult, identifyOutput, error) {
	docs, err := input.Docs.resolveDocs()
	if err != nil {
		return errResult(err), identifyOutput{}, nil
	}

	output := identifyOutput{Count: len(docs)}
	output.Identities = makeSlice[identityEntry](len(docs))

	seen := make(map[document.Identity]bool, len(docs))
	for _, doc := range docs {
		id, err := document.IdentityOf(doc)
		if err != nil {
			output.Invalid = append(output.Invalid, sanitizeError(err))
			continue
		}
		if seen[id] {
			output.Duplicates = append(output.Duplicates, id.String())
		}
		seen[id] = true
		output.Identities = append(output.Identities, identityEntry{
			Kind:   id.Kind,
			Name:   id.Name,
			Source: pathPattern.ReplaceAllString(doc.Source, "<path>"),
		})
	}

	output.Summary = fmt.Sprintf("%s: %d identified", formatCount(output.Count, "document"), len(output.Identities))
	if n := len(output.Duplicates); n > 0 {
		output.Summary += ", " + formatCount(n, "duplicate")
	}
	if n := len(output.Invalid); n > 0 {
		output.Summary += ", " + formatCount(n, "invalid document")
	}
	output.Summary += "."

	return nil, output, nil
}
