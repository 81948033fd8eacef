package model

import "time"

// RunSummary captures metrics from a single classify or duration run.
type RunSummary struct {
	RunID          string
	Mode           string
	InputPath      string
	InputSHA256    string
	OutputPath     string
	Method         string
	Unit           string
	RowsRead       int64
	RowsWritten    int64
	RowsDeduped    int64
	RowsUnlabeled  int64
	LabelCounts    map[PatientType]int64
	DurationRead   time.Duration
	DurationDerive time.Duration
	DurationWrite  time.Duration
	DurationTotal  time.Duration
}
