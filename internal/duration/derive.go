// Package duration derives contact duration from raw start/end date and
// time-of-day text columns.
package duration

import (
	"strings"
	"time"

	"github.com/gyeh/ptclass/internal/model"
	"github.com/gyeh/ptclass/internal/normalize"
	"github.com/gyeh/ptclass/internal/table"
)

// Stats describes what a derivation did besides adding the column.
type Stats struct {
	Rows          int // rows in the input
	NullDurations int // rows whose date or time failed to parse
	Negative      int // rows whose end precedes their start
	Deduped       int // exact duplicate rows removed
}

// Derive appends unit.Column() holding end minus start, in whole units, and
// returns the deduplicated result. The input table is not modified.
//
// Unparseable dates or times yield a null duration for that row rather than
// an error. Only a missing timestamp column fails the call.
func Derive(t *table.Table, unit Unit) (*table.Table, Stats, error) {
	stats := Stats{Rows: t.NumRows()}
	if missing := t.Missing(model.TimestampColumns...); len(missing) > 0 {
		return nil, stats, &model.MissingColumnsError{
			Requirement: strings.Join(model.TimestampColumns, ", "),
			Missing:     missing,
		}
	}

	starts := Timestamps(t, model.ColDateStart, model.ColTimeStart)
	ends := Timestamps(t, model.ColDateEnd, model.ColTimeEnd)

	vals := make([]int64, t.NumRows())
	valid := make([]bool, t.NumRows())
	for i := range vals {
		if starts[i] == nil || ends[i] == nil {
			stats.NullDurations++
			continue
		}
		d := ends[i].Sub(*starts[i])
		if d < 0 {
			stats.Negative++
		}
		vals[i] = unit.Convert(d)
		valid[i] = true
	}

	out := t.Clone()
	if err := out.Add(table.NewInt(unit.Column(), vals, valid)); err != nil {
		return nil, stats, err
	}
	out, stats.Deduped = out.Dedup()
	return out, stats, nil
}

// Timestamps combines a date column and a time-of-day column into one
// timestamp per row, nil where either part is null or unparseable.
func Timestamps(t *table.Table, dateCol, timeCol string) []*time.Time {
	dates := Dates(t, dateCol)
	clocks := t.Column(timeCol)
	out := make([]*time.Time, t.NumRows())
	for i := range out {
		s, ok := clocks.Format(i)
		if !ok {
			continue
		}
		out[i] = normalize.Combine(dates[i], normalize.ParseTimeOfDay(s))
	}
	return out
}

// Dates parses a month/day/year text column, nil where null or unparseable.
func Dates(t *table.Table, col string) []*time.Time {
	c := t.Column(col)
	out := make([]*time.Time, t.NumRows())
	for i := range out {
		if s, ok := c.Format(i); ok {
			out[i] = normalize.ParseDate(s)
		}
	}
	return out
}
