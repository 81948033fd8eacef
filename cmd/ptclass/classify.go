package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gyeh/ptclass/internal/exitcode"
	"github.com/gyeh/ptclass/internal/logging"
	"github.com/gyeh/ptclass/internal/model"
	"github.com/gyeh/ptclass/internal/pipeline"
)

var classifyCmd = &cobra.Command{
	Use:   "classify",
	Short: "Label every contact with a patient type",
	RunE:  runClassify,
}

func init() {
	addFileFlags(classifyCmd)
	classifyCmd.Flags().StringVar(&cfg.Method, "method", "", "Rule set: cluster, hybrid or hybrid-department (default cluster)")
	rootCmd.AddCommand(classifyCmd)
}

func runClassify(cmd *cobra.Command, args []string) error {
	loadConfig()
	log := logging.Setup(cfg.LogFormat, verbose)

	summary, err := pipeline.Run(log, &cfg, pipeline.ModeClassify)
	if err != nil {
		exitOnPipelineError(log, err)
	}

	fmt.Printf("Classified %d contacts with the %s method (%.1fs)\n",
		summary.RowsWritten, summary.Method, summary.DurationTotal.Seconds())
	for _, pt := range model.AllPatientTypes {
		fmt.Printf("  %-20s %d\n", pt, summary.LabelCounts[pt])
	}
	fmt.Printf("  %-20s %d\n", "(unlabeled)", summary.RowsUnlabeled)
	if summary.OutputPath != "" {
		fmt.Printf("Output: %s\n", summary.OutputPath)
	}
	if summary.RowsUnlabeled > 0 {
		os.Exit(exitcode.PartialSuccess)
	}
	return nil
}
