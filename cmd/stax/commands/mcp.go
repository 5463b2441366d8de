package commands

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/staxtools/stax/internal/mcpserver"
)

// SetupMCPFlags creates the flag set for the mcp command.
func SetupMCPFlags() *flag.FlagSet {
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	fs.Usage = func() {
		Writef(os.Stderr, "Usage: stax mcp\n\n")
		Writef(os.Stderr, "Run the MCP server over stdio. The server exposes compose, merge,\n")
		Writef(os.Stderr, "validate_layer, and identify as MCP tools and is configured through\n")
		Writef(os.Stderr, "STAX_* environment variables.\n")
	}
	return fs
}

// HandleMCP executes the mcp command. It blocks until the client disconnects
// or the process receives SIGINT or SIGTERM.
func HandleMCP(args []string) error {
	fs := SetupMCPFlags()
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if fs.NArg() > 0 {
		fs.Usage()
		return errors.New("mcp takes no arguments")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return mcpserver.Run(ctx)
}
