package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gzhole/mcpfsbridge/internal/config"
)

var validateConfigCmd = &cobra.Command{
	Use:   "validate-config",
	Short: "Load and validate the config without serving",
	Long: `Parse the config file, run §6.2's validation rules, and print any
non-fatal warnings. Exits non-zero on a validation error.

  mcpfsbridge validate-config --config ~/.mcpfsbridge/config.yaml`,
	RunE: validateConfigCommand,
}

func init() {
	rootCmd.AddCommand(validateConfigCmd)
}

func validateConfigCommand(cmd *cobra.Command, args []string) error {
	cfg, warnings, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "mcpfsbridge: %v\n", err)
		os.Exit(1)
		return nil
	}

	fmt.Printf("config OK: %s\n", cfg.Path)
	fmt.Printf("  %d polic(ies), %d allowed path pattern(s)\n", len(cfg.Policies), len(cfg.Filesystem.AllowedPaths))

	if len(warnings) == 0 {
		return nil
	}

	fmt.Println("warnings:")
	for _, w := range warnings {
		fmt.Printf("  ⚠  %s\n", w)
	}
	return nil
}
