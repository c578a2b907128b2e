package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gzhole/mcpfsbridge/internal/audit"
	"github.com/gzhole/mcpfsbridge/internal/config"
	"github.com/gzhole/mcpfsbridge/internal/mcpserver"
	"github.com/gzhole/mcpfsbridge/internal/security"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the MCP filesystem bridge over stdio",
	Long: `Load the config, open the audit log, and serve read_file, write_file,
and list_directory as MCP tools over stdio until the client disconnects.

  mcpfsbridge serve --config ~/.mcpfsbridge/config.yaml`,
	RunE: serveCommand,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func serveCommand(cmd *cobra.Command, args []string) error {
	cfg, warnings, err := config.Load(configPath)
	if err != nil {
		return err
	}
	for _, w := range warnings {
		fmt.Fprintf(os.Stderr, "mcpfsbridge: warning: %s\n", w)
	}

	auditLog, err := audit.New(cfg.Audit.Path, audit.WithMaxBytes(cfg.Audit.MaxSizeBytes))
	if err != nil {
		return fmt.Errorf("open audit log: %w", err)
	}
	defer auditLog.Close()

	manager := security.New(cfg, auditLog)
	dispatcher := mcpserver.New(manager)

	return dispatcher.Serve(&cfg.Server)
}
