package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"mini-orm/core/database"
	"mini-orm/core/metrics"
	"mini-orm/core/orm"
	"mini-orm/feature/hr"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	dryRunDemo bool
	initDemo   bool
	yesConfirm bool
)

// demoCmd runs the sample save cycle against the configured database.
var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run the sample HR save cycle",
	Long: `Load the HR database, then in one save cycle:
hire an employee into the first department, rename the last employee,
open a new department and drop the first project assignment.

Examples:
  # Preview the pending changes only
  demo --dry-run

  # Create and seed the sample tables, then save with auto-confirm
  demo --init --yes`,
	RunE: runDemo,
}

func init() {
	demoCmd.Flags().BoolVar(&dryRunDemo, "dry-run", false, "Preview the pending changes without saving")
	demoCmd.Flags().BoolVar(&initDemo, "init", false, "Create and seed the sample tables when missing")
	demoCmd.Flags().BoolVar(&yesConfirm, "yes", false, "Auto-confirm the save (non-interactive)")

	RootCmd.AddCommand(demoCmd)
}

func runDemo(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, l, err := setup()
	if err != nil {
		return err
	}
	defer l.Sync()

	conn, err := database.Open(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer conn.Close()

	if initDemo {
		if err := hr.Bootstrap(ctx, conn); err != nil {
			return err
		}
		l.Info("Sample tables ready")
	}

	var m *metrics.Collector
	if cfg.Metrics.Enabled {
		m = metrics.New(cfg.Metrics.Namespace)
	}
	svc := hr.NewService(conn, l, m)

	report, err := svc.RunDemo(ctx, hr.DemoOptions{
		DryRun: dryRunDemo,
		Confirm: func(planned []orm.ChangeSummary) bool {
			printPlan(l, planned)
			return confirmSave()
		},
	})
	if err != nil {
		if report != nil {
			l.Error("Save cycle failed", zap.String("state", report.State))
		}
		return fmt.Errorf("demo failed: %w", err)
	}

	if dryRunDemo {
		printPlan(l, report.Planned)
		l.Info("Dry-run mode: No changes were made.")
		return nil
	}
	if !report.Applied {
		l.Warn("Operation cancelled by user. No changes were made.")
		return nil
	}

	l.Info("Changes saved", zap.String("state", report.State))
	return nil
}

// printPlan logs the pending work of every table that has any.
func printPlan(l *zap.Logger, planned []orm.ChangeSummary) {
	for _, p := range planned {
		if p.Empty() {
			continue
		}
		l.Info("Pending changes",
			zap.String("table", p.Table),
			zap.Int("added", p.Added),
			zap.Int("modified", p.Modified),
			zap.Int("removed", p.Removed),
		)
	}
}

// confirmSave prompts the user for confirmation or uses the --yes flag.
func confirmSave() bool {
	if yesConfirm {
		fmt.Println("\n✓ Auto-confirmed via --yes flag")
		return true
	}

	fmt.Print("\n⚠️  Type 'yes' to save these changes: ")
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	return strings.TrimSpace(response) == "yes"
}
