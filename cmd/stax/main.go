package main

import (
	"fmt"
	"os"

	"github.com/staxtools/stax"
	"github.com/staxtools/stax/cmd/stax/commands"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "version", "-v", "--version":
		fmt.Println(stax.BuildInfo())
	case "help", "-h", "--help":
		printUsage()
	case "compose":
		if err := commands.HandleCompose(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "merge":
		if err := commands.HandleMerge(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "validate":
		if err := commands.HandleValidate(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "identify":
		if err := commands.HandleIdentify(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "mcp":
		if err := commands.HandleMCP(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		if suggestion := suggestCommand(command); suggestion != "" {
			fmt.Fprintf(os.Stderr, "Did you mean '%s'?\n", suggestion)
		}
		fmt.Fprintln(os.Stderr)
		printUsage()
		os.Exit(1)
	}
}

// knownCommands lists every command suggestCommand may propose.
var knownCommands = []string{
	"compose", "merge", "validate", "identify", "mcp", "version", "help",
}

// suggestCommand returns the closest known command within an edit distance
// of 2, or "" when nothing is close enough to be a likely typo.
func suggestCommand(input string) string {
	best := ""
	bestDistance := 3
	for _, cmd := range knownCommands {
		if d := editDistance(input, cmd); d < bestDistance {
			best = cmd
			bestDistance = d
		}
	}
	return best
}

// editDistance computes the Levenshtein distance between two strings.
func editDistance(a, b string) int {
	if a == b {
		return 0
	}
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := 0; j <= len(b); j++ {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

func printUsage() {
	fmt.Println(`stax - Configuration Layer Composition Tools

Usage:
  stax <command> [options]

Commands:
  compose     Apply one or more layers to a base document set
  merge       Merge a patch document into a base document
  validate    Validate a layer file
  identify    List the identities of a document set
  mcp         Run the MCP server over stdio
  version     Show version information
  help        Show this help message

Examples:
  stax compose -base base.yaml -layer production.yaml
  stax compose -base base.yaml -layer common.yaml -layer production.yaml -o out.yaml
  stax merge base.yaml patch.yaml
  stax validate layers/production.yaml
  stax identify base.yaml

Run 'stax <command> --help' for more information on a command.`)
}
