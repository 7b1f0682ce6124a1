package cmd

import (
	"context"
	"errors"
	"fmt"

	"seedfix/core/database"
	"seedfix/feature/seed"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var checkDB bool

// checkCmd verifies a seed document, and optionally the database seeded from it.
var checkCmd = &cobra.Command{
	Use:   "check [document]",
	Short: "Verify identifier uniqueness and referential integrity",
	Long: `Check the seed document without changing it. Reports duplicate parent
identifiers, orphaned child references and identifiers that are not canonical
UUIDs. With --db the same checks run against the configured database.

Exits non-zero when a violation is found.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().BoolVar(&checkDB, "db", false, "Also check the seeded database")
	RootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	e, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = e.log.Sync() }()

	report, err := e.service.Check(ctx, documentArg(args))
	if err != nil {
		return err
	}
	for _, w := range report.Warnings {
		e.log.Warn("Check warning", zap.String("kind", string(w.Kind)), zap.String("detail", w.Message))
	}
	renderVerify(cmd.OutOrStdout(), report)

	healthy := report.Healthy()

	if checkDB {
		db, err := database.Connect(e.cfg.Database)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		if sqlDB, err := db.DB(); err == nil {
			defer sqlDB.Close()
		}

		dbReport, err := seed.CheckDatabase(ctx, db, e.cfg.Seed)
		if err != nil {
			return err
		}
		renderDBReport(cmd.OutOrStdout(), dbReport)
		e.log.Info("Database verified",
			zap.Bool("healthy", dbReport.Healthy()),
			zap.Int("duplicates", len(dbReport.Duplicates)),
			zap.Int("orphans", len(dbReport.Orphans)),
		)
		healthy = healthy && dbReport.Healthy()
	}

	if !healthy {
		return errors.New("integrity violations found")
	}
	e.log.Info("No integrity violations found")
	return nil
}
