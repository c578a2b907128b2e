// Package cli implements the CLI (P): the Cobra command tree for running
// and inspecting the bridge, grounded on the teacher's internal/cli
// command tree.
package cli

import (
	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "mcpfsbridge",
	Short: "mcpfsbridge - a policy-gated filesystem MCP server",
	Long: `mcpfsbridge exposes read_file, write_file, and list_directory as MCP
tools, mediating every call through a path validator, permission rules, and
a named-policy engine before any I/O happens.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config YAML (default: ~/.mcpfsbridge/config.yaml)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
