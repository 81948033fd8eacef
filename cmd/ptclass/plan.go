package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gyeh/ptclass/internal/exitcode"
	"github.com/gyeh/ptclass/internal/logging"
	"github.com/gyeh/ptclass/internal/normalize"
	"github.com/gyeh/ptclass/internal/pipeline"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Dry-run column and rule checks (no writes)",
	RunE:  runPlan,
}

func init() {
	addFileFlags(planCmd)
	planCmd.Flags().StringVar(&cfg.Method, "method", "", "Rule set to check against (default cluster)")
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	loadConfig()
	log := logging.Setup(cfg.LogFormat, verbose)

	sha, err := normalize.FileHash(cfg.FilePath)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash file")
		os.Exit(exitcode.ReadError)
	}

	report, err := pipeline.Plan(&cfg)
	if err != nil {
		exitOnPipelineError(log, err)
	}

	fmt.Println("=== ptclass plan ===")
	fmt.Printf("File:       %s\n", cfg.FilePath)
	fmt.Printf("Format:     %s\n", cfg.InputKind())
	fmt.Printf("SHA-256:    %s\n", sha)
	fmt.Printf("Total rows: %d\n", report.Info.Rows)
	fmt.Printf("Columns:    %v\n", report.Info.Columns)
	fmt.Printf("Method:     %s\n", report.Method)
	fmt.Println()
	printRuleReport(report.Rules)
	fmt.Println()

	if report.ColumnsErr != nil {
		fmt.Printf("Column check: FAILED (%v)\n", report.ColumnsErr)
		os.Exit(exitcode.ValidationError)
	}
	fmt.Println("Column check: OK")
	return nil
}
