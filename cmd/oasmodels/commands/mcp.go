package commands

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/erraggy/oasmodels/internal/mcpserver"
)

// SetupMCPFlags creates the FlagSet of the mcp command. The command takes no
// flags; configuration comes from OASMODELS_* environment variables.
func SetupMCPFlags() *flag.FlagSet {
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	fs.Usage = func() {
		output := fs.Output()
		Writef(output, "Usage: oasmodels mcp\n\n")
		Writef(output, "Run the MCP (Model Context Protocol) server over stdio.\n\n")
		Writef(output, "Tools:\n")
		Writef(output, "  resolve_schema   flatten schema compositions\n")
		Writef(output, "  map_types        map the fields of one schema to dart or go types\n")
		Writef(output, "  generate_models  render model files\n")
		Writef(output, "\nConfiguration:\n")
		Writef(output, "  OASMODELS_TARGET, OASMODELS_CLASS_NAME_PREFIX, OASMODELS_CACHE_*,\n")
		Writef(output, "  OASMODELS_MAX_INLINE_SIZE, OASMODELS_MAX_CONTENT_FILES, OASMODELS_ALLOW_PRIVATE_IPS\n")
	}
	return fs
}

// HandleMCP executes the mcp command
func HandleMCP(args []string) error {
	fs := SetupMCPFlags()
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return mcpserver.Run(ctx)
}
