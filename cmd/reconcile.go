package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"seedfix/core/reconcile"
	"seedfix/feature/seed"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	dryRun        bool
	yesConfirm    bool
	replaceBlocks bool
	strictPlan    bool
	noRemap       bool
	noTable       bool
)

// reconcileCmd plans and applies identifier reconciliation on a seed document.
var reconcileCmd = &cobra.Command{
	Use:   "reconcile [document]",
	Short: "Reconcile parent and child identifiers in a seed document",
	Long: `Reconcile the seed document so that parent identifiers are unique and every
child foreign key resolves to a parent identifier.

The plan is always printed first. Changes are written only after confirmation.

Examples:
  # Plan only
  seedfix reconcile --dry-run

  # Apply with interactive confirmation
  seedfix reconcile database-init.sql

  # Replace both blocks with the canonical fixtures, non-interactive
  seedfix reconcile --replace-blocks --yes

  # Fail instead of skipping a strategy whose mapping is invalid
  seedfix reconcile --strict`,
	Args: cobra.MaximumNArgs(1),
	RunE: runReconcile,
}

func init() {
	reconcileCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Plan and verify without writing the document")
	reconcileCmd.Flags().BoolVar(&yesConfirm, "yes", false, "Auto-confirm writing the document (non-interactive)")
	reconcileCmd.Flags().BoolVar(&replaceBlocks, "replace-blocks", false, "Replace parent and child blocks with their canonical text")
	reconcileCmd.Flags().BoolVar(&strictPlan, "strict", false, "Treat invalid mappings as errors instead of warnings")
	reconcileCmd.Flags().BoolVar(&noRemap, "no-remap", false, "Disable the positional placeholder remap")
	reconcileCmd.Flags().BoolVar(&noTable, "no-table", false, "Disable the fixed replacement table")

	RootCmd.AddCommand(reconcileCmd)
}

func runReconcile(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	e, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = e.log.Sync() }()

	opts := reconcile.Options{
		Remap:         !noRemap,
		Table:         !noTable,
		ReplaceBlocks: replaceBlocks,
		Strict:        strictPlan,
	}

	// Step 1: Plan (always runs)
	e.log.Info("Planning reconciliation...")
	run, err := e.service.Plan(ctx, documentArg(args), opts)
	if err != nil {
		return err
	}

	// Step 2: Print report
	printReconcileReport(e.log, run)
	renderPlan(cmd.OutOrStdout(), run.Plan)

	if !run.Plan.Changed() {
		// Nothing to apply does not mean the document is sound.
		if err := integrityError(run.Name, run.Before); err != nil {
			renderVerify(cmd.OutOrStdout(), run.Before)
			e.log.Warn("No applicable changes, but the document is not reconciled",
				zap.Int("warnings", len(run.Plan.Warnings)))
			return err
		}
		e.log.Info("Document already reconciled. No changes required.")
		return nil
	}

	// Step 3: Apply (if confirmed)
	applyOpts := seed.ApplyOptions{DryRun: dryRun}
	if !dryRun {
		if !confirmWrite() {
			e.log.Warn("Operation cancelled by user. No changes were made.")
			return nil
		}
		applyOpts.Confirmed = true
	}

	result, err := e.service.Apply(ctx, run, applyOpts)
	if err != nil {
		return fmt.Errorf("failed to apply plan: %w", err)
	}

	renderVerify(cmd.OutOrStdout(), result.Verify)

	if dryRun {
		e.log.Info("Dry-run mode: No changes were made.", zap.Bool("healthy", result.Verify.Healthy()))
	} else {
		e.log.Info("Successfully reconciled document",
			zap.String("document", run.Name),
			zap.Int("substitutions", result.Report.Total()),
			zap.Int("replaced_blocks", len(result.Report.ReplacedBlocks)),
		)
	}

	return integrityError(run.Name, result.Verify)
}

// integrityError returns nil when report is healthy, and an error describing the
// remaining violations otherwise.
func integrityError(name string, report *reconcile.VerifyReport) error {
	if report.Healthy() {
		return nil
	}

	missing := 0
	for _, w := range report.Warnings {
		if w.Kind == reconcile.WarnMissingBlock {
			missing++
		}
	}
	return fmt.Errorf("document %s still violates integrity: %d duplicate(s), %d orphan(s), %d missing block(s)",
		name, len(report.Duplicates), len(report.Orphans), missing)
}

// printReconcileReport prints the plan summary using the logger.
func printReconcileReport(l *zap.Logger, run *seed.Run) {
	s := run.Plan.Summary

	l.Info("Reconciliation report",
		zap.String("document", run.Name),
		zap.Int("canonical_ids", s.CanonicalIDs),
		zap.Int("orphans_before", len(run.Before.Orphans)),
		zap.Int("duplicates_before", len(run.Before.Duplicates)),
	)

	if len(run.Plan.Actions) > 0 {
		l.Info("Planned actions",
			zap.Int("block_replacements", s.BlockReplacements),
			zap.Int("remap_actions", s.RemapActions),
			zap.Int("table_actions", s.TableActions),
			zap.Int("pending_substitutions", s.PendingSubstitutions),
		)
	}
}

// confirmWrite prompts the user for confirmation or uses --yes flag.
func confirmWrite() bool {
	if yesConfirm {
		fmt.Println("\n✓ Auto-confirmed via --yes flag")
		return true
	}

	fmt.Print("\n⚠️  Type 'yes' to write the reconciled document: ")
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	return strings.TrimSpace(response) == "yes"
}
