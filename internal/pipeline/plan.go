package pipeline

import (
	"github.com/gyeh/ptclass/internal/classify"
	"github.com/gyeh/ptclass/internal/config"
	"github.com/gyeh/ptclass/internal/rules"
	"github.com/gyeh/ptclass/internal/table"
	"github.com/gyeh/ptclass/internal/tableio"
)

// PlanReport is the outcome of a dry run: nothing is derived or written.
type PlanReport struct {
	Info       *tableio.Info
	Method     classify.Method
	ColumnsErr error // nil when the file can be classified with Method
	Rules      rules.Report
}

// Plan inspects the input file and checks it against the configured method
// without loading its rows. cfg must have been validated.
func Plan(cfg *config.Config) (*PlanReport, error) {
	info, err := tableio.Inspect(cfg.InputKind(), cfg.FilePath)
	if err != nil {
		return nil, &PipelineError{Phase: "read", Err: err}
	}

	// A zero-row table is enough for column checks.
	cols := make([]*table.Column, len(info.Columns))
	for i, name := range info.Columns {
		cols[i] = table.NewString(name, nil, nil)
	}
	shape, err := table.New(cols...)
	if err != nil {
		return nil, &PipelineError{Phase: "read", Err: err}
	}

	method := cfg.ClassifyMethod()
	return &PlanReport{
		Info:       info,
		Method:     method,
		ColumnsErr: classify.CheckColumns(shape, method),
		Rules:      classify.Exhaustiveness(method),
	}, nil
}
