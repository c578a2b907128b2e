package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gzhole/mcpfsbridge/internal/audit"
	"github.com/gzhole/mcpfsbridge/internal/config"
	"github.com/gzhole/mcpfsbridge/internal/security"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show config, policy coverage, and audit log health",
	Long: `Load the configured policy set and report how many policies and
allowed/denied path patterns are active, where the config and audit log
live, and whether the audit log is writable.

  mcpfsbridge status`,
	RunE: statusCommand,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func statusCommand(cmd *cobra.Command, args []string) error {
	cfg, warnings, err := config.Load(configPath)
	if err != nil {
		return err
	}

	fmt.Println("═══════════════════════════════════════════════════════")
	fmt.Println("  mcpfsbridge status")
	fmt.Println("═══════════════════════════════════════════════════════")
	fmt.Println()

	fmt.Printf("  Config:    %s\n", cfg.Path)
	fmt.Printf("  Server:    %s %s\n", cfg.Server.Name, cfg.Server.Version)
	fmt.Println()

	fmt.Println("─── Filesystem ─────────────────────────────────────────")
	fmt.Printf("  Allowed paths: %d pattern(s)\n", len(cfg.Filesystem.AllowedPaths))
	fmt.Printf("  Denied paths:  %d pattern(s)\n", len(cfg.Filesystem.DeniedPaths))
	fmt.Println()

	fmt.Println("─── Operations ─────────────────────────────────────────")
	fmt.Printf("  read_allowed:                   %v\n", cfg.Operations.ReadAllowed)
	fmt.Printf("  write_requires_policy:          %v\n", cfg.Operations.WriteRequiresPolicy)
	fmt.Printf("  delete_requires_explicit_allow: %v\n", cfg.Operations.DeleteRequiresExplicitAllow)
	fmt.Printf("  create_dir_allowed:             %v\n", cfg.Operations.CreateDirAllowed)
	fmt.Println()

	fmt.Println("─── Policy ────────────────────────────────────────────")
	stats := security.ComputeCoverageStats(cfg)
	fmt.Printf("  ✅ %d polic(ies) loaded\n", stats.PolicyCount)
	for name, p := range cfg.Policies {
		fmt.Printf("     - %s: %d pattern(s), ops=%v, risk=%s\n", name, len(p.Patterns), p.Operations, p.RiskLevel)
	}
	fmt.Println()

	fmt.Println("─── Approval Gate ─────────────────────────────────────")
	if cfg.Approval.Enabled {
		fmt.Printf("  ✅ enabled for: %v (timeout %ds)\n", cfg.Approval.RequiresApprovalFor, cfg.Approval.TimeoutSeconds)
	} else {
		fmt.Println("  ⬚  disabled")
	}
	fmt.Println()

	fmt.Println("─── Audit Log ─────────────────────────────────────────")
	checkAuditLog(cfg.Audit.Path)
	fmt.Println()

	if len(warnings) > 0 {
		fmt.Println("─── Warnings ──────────────────────────────────────────")
		for _, w := range warnings {
			fmt.Printf("  ⚠  %s\n", w)
		}
		fmt.Println()
	}

	return nil
}

func checkAuditLog(path string) {
	if path == "" {
		fmt.Println("  ⬚  no audit log path configured")
		return
	}

	if info, err := os.Stat(path); err == nil {
		sizeKB := info.Size() / 1024
		fmt.Printf("  ✅ %s (%d KB)\n", path, sizeKB)
		return
	}

	l, err := audit.New(path)
	if err != nil {
		fmt.Printf("  ✗  %s: not writable (%v)\n", path, err)
		return
	}
	l.Close()
	os.Remove(path)
	fmt.Printf("  ⬚  %s (not yet created — writable, will start on first event)\n", path)
}
