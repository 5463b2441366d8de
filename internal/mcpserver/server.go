// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes stax capabilities as MCP tools over stdio.
package mcpserver

import (
	"context"
	"regexp"
	"strconv"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/staxtools/stax"
)

const serverInstructions = `stax MCP server — composes configuration layers onto base document sets, merges documents, validates layer files, and lists document identities.

Configuration: All defaults are configurable via STAX_* environment variables set in your MCP client config. The Go MCP SDK does not support initializationOptions; use env vars instead.

Key settings:
- STAX_MAX_DEPTH (default: 100) — document nesting depth limit for parse and merge
- STAX_SEQUENCE_MERGE_KEY (default: name) — element identity key for merged sequences
- STAX_OUTPUT_FORMAT (default: yaml) — default output format (yaml or json)
- STAX_MAX_INLINE_SIZE (default: 4194304) — maximum inline content size in bytes

Inputs: tools accept documents as {file: <path>} or {content: <inline YAML>}. Multi-document YAML streams are supported wherever a document set is expected. There is no URL fetching; MCP clients should download remote files themselves.`

// Run starts the MCP server over stdio and blocks until the client disconnects
// or the context is cancelled.
func Run(ctx context.Context) error {
	server := mcp.NewServer(
		&mcp.Implementation{Name: "stax", Version: stax.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "compose",
		Description: "Apply a configuration layer (patches + transforms) to a base document set. Patches merge into base documents sharing their kind/name identity and append otherwise; transforms then run in order. Returns the composed documents with diagnostics for type conflicts, skipped paths, and dangling references. Use dry_run=true to preview per-patch operations and per-transform match counts without output documents. Use output to write to a file instead of returning inline.",
	}, handleCompose)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "merge",
		Description: "Merge a single patch document into a single base document. Mappings merge recursively by key union, patch scalars win, and sequences are replaced unless sequence_merge_paths opts specific paths into element-wise merging by identity key. Returns the merged document and merge warnings.",
	}, handleMerge)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "validate_layer",
		Description: "Validate a layer document (transforms, inline patches, patch file references). Reports every problem instead of stopping at the first: unknown transform kinds, missing parameters, invalid field paths, undecodable patches, and patches without a kind/name identity. File inputs also verify that referenced patch files resolve inside the layer directory and parse.",
	}, handleValidateLayer)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "identify",
		Description: "List the kind/name identities of a document set, flagging documents without a resolvable identity and duplicate identities. Useful for checking what a base or patch set contains before composing.",
	}, handleIdentify)
}

// sanitizeError strips absolute filesystem paths from error messages
// to prevent leaking internal directory structure to MCP clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}

// makeSlice returns nil when n is 0 (preserving omitempty JSON semantics),
// otherwise returns make([]T, 0, n) for pre-allocated appending.
func makeSlice[T any](n int) []T {
	if n == 0 {
		return nil
	}
	return make([]T, 0, n)
}

func formatCount(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return strconv.Itoa(n) + " " + noun + "s"
}

// sanitizeStrings applies sanitizeError's path stripping to plain strings,
// used for diagnostics that may embed source file paths.
func sanitizeStrings(in []string) []string {
	out := makeSlice[string](len(in))
	for _, s := range in {
		out = append(out, pathPattern.ReplaceAllString(s, "<path>"))
	}
	return out
}
