package pipeline

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/gyeh/ptclass/internal/classify"
	"github.com/gyeh/ptclass/internal/config"
	"github.com/gyeh/ptclass/internal/duration"
	"github.com/gyeh/ptclass/internal/model"
	"github.com/gyeh/ptclass/internal/normalize"
	"github.com/gyeh/ptclass/internal/table"
	"github.com/gyeh/ptclass/internal/tableio"
)

// Mode selects what a run derives.
type Mode string

const (
	ModeClassify Mode = "classify"
	ModeDuration Mode = "duration"
)

// PipelineError wraps an error with the phase where it occurred.
type PipelineError struct {
	Phase string
	Err   error
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("%s: %s", e.Phase, e.Err)
}

func (e *PipelineError) Unwrap() error {
	return e.Err
}

// Run executes read → derive → write for one file. cfg must have been
// validated.
func Run(log zerolog.Logger, cfg *config.Config, mode Mode) (*model.RunSummary, error) {
	totalStart := time.Now()
	summary := &model.RunSummary{
		RunID:     uuid.New().String(),
		Mode:      string(mode),
		InputPath: cfg.FilePath,
	}
	log = log.With().Str("run_id", summary.RunID).Logger()

	// Phase 1: Read
	readStart := time.Now()
	sha, err := normalize.FileHash(cfg.FilePath)
	if err != nil {
		return nil, &PipelineError{Phase: "read", Err: err}
	}
	summary.InputSHA256 = sha

	t, err := tableio.Read(cfg.InputKind(), cfg.FilePath, cfg.TextColumns...)
	if err != nil {
		return nil, &PipelineError{Phase: "read", Err: err}
	}
	summary.RowsRead = int64(t.NumRows())
	summary.DurationRead = time.Since(readStart)
	log.Info().
		Str("file", filepath.Base(cfg.FilePath)).
		Str("format", cfg.InputKind().String()).
		Str("sha256", sha).
		Int64("rows", summary.RowsRead).
		Int("columns", len(t.Names())).
		Dur("duration", summary.DurationRead).
		Msg("input loaded")

	// Phase 2: Derive
	deriveStart := time.Now()
	switch mode {
	case ModeDuration:
		t, err = runDuration(log, cfg, t, summary)
	default:
		t, err = runClassify(log, cfg, t, summary)
	}
	if err != nil {
		return nil, err
	}
	summary.DurationDerive = time.Since(deriveStart)
	summary.RowsWritten = int64(t.NumRows())

	// Phase 3: Write
	if !cfg.NoOutput() {
		writeStart := time.Now()
		out := tableio.OutputPath(cfg.FilePath, cfg.OutputKind())
		if err := tableio.Write(cfg.OutputKind(), out, t); err != nil {
			return nil, &PipelineError{Phase: "write", Err: err}
		}
		summary.OutputPath = out
		summary.DurationWrite = time.Since(writeStart)
		log.Info().
			Str("file", out).
			Int64("rows", summary.RowsWritten).
			Dur("duration", summary.DurationWrite).
			Msg("output written")
	}

	summary.DurationTotal = time.Since(totalStart)
	log.Info().
		Str("mode", summary.Mode).
		Int64("rows_read", summary.RowsRead).
		Int64("rows_written", summary.RowsWritten).
		Int64("rows_deduped", summary.RowsDeduped).
		Int64("rows_unlabeled", summary.RowsUnlabeled).
		Str("total_duration", summary.DurationTotal.String()).
		Msg("run complete")

	return summary, nil
}

func runDuration(log zerolog.Logger, cfg *config.Config, t *table.Table, summary *model.RunSummary) (*table.Table, error) {
	unit := cfg.DurationUnit()
	summary.Unit = unit.String()

	out, stats, err := duration.Derive(t, unit)
	if err != nil {
		return nil, &PipelineError{Phase: "duration", Err: err}
	}
	summary.RowsDeduped = int64(stats.Deduped)
	logDurationStats(log, stats)
	log.Info().Str("unit", unit.String()).Str("column", unit.Column()).Msg("duration derived")
	return out, nil
}

func runClassify(log zerolog.Logger, cfg *config.Config, t *table.Table, summary *model.RunSummary) (*table.Table, error) {
	method := cfg.ClassifyMethod()
	summary.Method = method.String()

	res, err := classify.Classify(t, method, classify.WithLogger(log))
	if err != nil {
		return nil, &PipelineError{Phase: "classify", Err: err}
	}
	summary.RowsDeduped = int64(res.Duration.Deduped)
	summary.RowsUnlabeled = int64(res.Unlabeled)
	summary.LabelCounts = make(map[model.PatientType]int64, len(res.Counts))
	for label, n := range res.Counts {
		summary.LabelCounts[label] = int64(n)
	}
	logDurationStats(log, res.Duration)

	ev := log.Info().Str("method", method.String()).Strs("derived", res.Derived)
	for _, pt := range model.AllPatientTypes {
		ev = ev.Int(string(pt), res.Counts[pt])
	}
	ev.Int("unlabeled", res.Unlabeled).Msg("contacts classified")
	return res.Table, nil
}

func logDurationStats(log zerolog.Logger, stats duration.Stats) {
	if stats.NullDurations > 0 {
		log.Warn().Int("rows", stats.NullDurations).Msg("unparseable date or time; duration left null")
	}
	if stats.Negative > 0 {
		log.Warn().Int("rows", stats.Negative).Msg("contacts end before they start")
	}
	if stats.Deduped > 0 {
		log.Info().Int("rows", stats.Deduped).Msg("exact duplicate rows removed")
	}
}
