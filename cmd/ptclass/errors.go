package main

import (
	"errors"
	"os"

	"github.com/rs/zerolog"

	"github.com/gyeh/ptclass/internal/exitcode"
	"github.com/gyeh/ptclass/internal/model"
	"github.com/gyeh/ptclass/internal/pipeline"
)

// exitOnPipelineError logs err and exits with the code for its phase.
func exitOnPipelineError(log zerolog.Logger, err error) {
	var mce *model.MissingColumnsError
	if errors.As(err, &mce) {
		log.Error().Strs("missing", mce.Missing).Str("requirement", mce.Requirement).Msg("input lacks required columns")
		os.Exit(exitcode.ValidationError)
	}

	var pe *pipeline.PipelineError
	if errors.As(err, &pe) {
		log.Error().Err(pe.Err).Str("phase", pe.Phase).Msg("run failed")
		switch pe.Phase {
		case "read":
			os.Exit(exitcode.ReadError)
		case "write":
			os.Exit(exitcode.WriteError)
		default:
			os.Exit(exitcode.TransformError)
		}
	}
	log.Error().Err(err).Msg("run failed")
	os.Exit(exitcode.TransformError)
}
