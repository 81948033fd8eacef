package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/gyeh/ptclass/internal/config"
	"github.com/gyeh/ptclass/internal/exitcode"
	"github.com/gyeh/ptclass/internal/logging"
)

var (
	cfg        config.Config
	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "ptclass",
	Short: "Hospital contact patient-type classifier",
	Long: "Derives contact duration from registry start/end timestamps and labels each " +
		"contact Inpatient, Acute Outpatient or Elective Outpatient.",
	SilenceUsage: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfg.LogFormat, "log-format", "text", "Log format: text or json")
	pf.StringVar(&configPath, "config", "", "Optional YAML config file")
	pf.BoolVar(&verbose, "verbose", false, "Enable debug logging")
}

// addFileFlags registers the input/output flags shared by the commands that
// read a contact file.
func addFileFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&cfg.FilePath, "file", "", "Path to CSV or Parquet contact file (required)")
	f.StringVar(&cfg.InputFormat, "format", "", "Input format: csv or parquet (default csv)")
	f.StringVar(&cfg.OutputFormat, "output-format", "", "Output format: csv, parquet or none (default: input format)")
	f.StringSliceVar(&cfg.TextColumns, "text-column", nil, "Extra CSV column to keep as text (repeatable)")
	_ = cmd.MarkFlagRequired("file")
}

// loadConfig merges the optional config file and validates the result,
// exiting with a usage error on failure.
func loadConfig() {
	log := logging.Setup(cfg.LogFormat, verbose)
	if configPath != "" {
		if err := cfg.LoadFromFile(configPath); err != nil {
			log.Error().Err(err).Str("config", configPath).Msg("config file invalid")
			os.Exit(exitcode.UsageError)
		}
	}
	if err := cfg.Validate(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}
}
