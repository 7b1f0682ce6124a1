package cmd

import (
	"fmt"
	"os"

	"seedfix/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "seedfix",
	Short: "Seed document identifier reconciliation",
	Long: `seedfix repairs identifier consistency in a generated SQL seed document.
It makes parent identifiers unique and every child foreign key resolve to a
parent identifier, preserving all other bytes of the document.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Console format with the development config gives readable timestamps.
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Println(err)
		}
		os.Exit(1)
	}
}
