package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gyeh/ptclass/internal/logging"
	"github.com/gyeh/ptclass/internal/pipeline"
)

var durationCmd = &cobra.Command{
	Use:   "duration",
	Short: "Derive contact duration from start/end dates and times",
	RunE:  runDuration,
}

func init() {
	addFileFlags(durationCmd)
	durationCmd.Flags().StringVar(&cfg.Unit, "unit", "", "Duration unit: seconds, minutes, hours or days (default hours)")
	rootCmd.AddCommand(durationCmd)
}

func runDuration(cmd *cobra.Command, args []string) error {
	loadConfig()
	log := logging.Setup(cfg.LogFormat, verbose)

	summary, err := pipeline.Run(log, &cfg, pipeline.ModeDuration)
	if err != nil {
		exitOnPipelineError(log, err)
	}

	fmt.Printf("Derived duration in %s for %d contacts (%d duplicates removed, %.1fs)\n",
		summary.Unit, summary.RowsWritten, summary.RowsDeduped, summary.DurationTotal.Seconds())
	if summary.OutputPath != "" {
		fmt.Printf("Output: %s\n", summary.OutputPath)
	}
	return nil
}
