// Package classify labels hospital contacts as Inpatient, Acute Outpatient or
// Elective Outpatient, deriving any missing indicator columns first.
package classify

import (
	"strings"

	"github.com/rs/zerolog"

	"github.com/gyeh/ptclass/internal/duration"
	"github.com/gyeh/ptclass/internal/model"
	"github.com/gyeh/ptclass/internal/rules"
	"github.com/gyeh/ptclass/internal/table"
)

// AcutePriorityPrefix marks an acute contact in the registry priority code.
// Acute means not elective: a matching priority derives elective = 0.
const AcutePriorityPrefix = "ATA1"

// Result is a labeled table plus what it took to produce it.
type Result struct {
	Table     *table.Table
	Method    Method
	Counts    map[model.PatientType]int
	Unlabeled int
	// Derived lists the indicator columns computed by this call, in order.
	Derived  []string
	Duration duration.Stats
}

type options struct {
	log zerolog.Logger
}

// Option configures Classify.
type Option func(*options)

// WithLogger routes derivation and unlabeled-row messages to log.
func WithLogger(log zerolog.Logger) Option {
	return func(o *options) { o.log = log }
}

// Classify appends patient_type to a copy of t using method m. Columns that
// already exist are used as-is; missing ones are derived in the order
// duration_h, elective, overnight, over24h.
//
// Rows no rule matches (in practice rows with a null input) get a null
// label. They are counted in Result.Unlabeled and logged as a warning.
func Classify(t *table.Table, m Method, opts ...Option) (*Result, error) {
	o := options{log: zerolog.Nop()}
	for _, opt := range opts {
		opt(&o)
	}

	if err := CheckColumns(t, m); err != nil {
		return nil, err
	}

	res := &Result{Method: m, Counts: make(map[model.PatientType]int)}
	out := t.Clone()

	if m.contactLevel() && !out.Has(model.ColDurationH) {
		derived, stats, err := duration.Derive(out, duration.Hours)
		if err != nil {
			return nil, err
		}
		out = derived
		res.Duration = stats
		res.Derived = append(res.Derived, model.ColDurationH)
		o.log.Debug().
			Int("null_durations", stats.NullDurations).
			Int("negative", stats.Negative).
			Int("deduped", stats.Deduped).
			Msg("derived duration_h")
	}

	if !out.Has(model.ColElective) {
		if err := out.Add(DeriveElective(out)); err != nil {
			return nil, err
		}
		res.Derived = append(res.Derived, model.ColElective)
	}

	if m.contactLevel() {
		if !out.Has(model.ColOvernight) {
			if err := out.Add(DeriveOvernight(out)); err != nil {
				return nil, err
			}
			res.Derived = append(res.Derived, model.ColOvernight)
		}
		if !out.Has(model.ColOver24h) {
			if err := out.Add(DeriveOver24h(out)); err != nil {
				return nil, err
			}
			res.Derived = append(res.Derived, model.ColOver24h)
		}
	}

	labels, unmatched := m.RuleSet().Apply(rules.TableFrame(out))
	vals := make([]string, len(labels))
	valid := make([]bool, len(labels))
	for i, l := range labels {
		if l == "" {
			continue
		}
		vals[i], valid[i] = string(l), true
		res.Counts[l]++
	}
	if err := out.Add(table.NewString(model.ColPatientType, vals, valid)); err != nil {
		return nil, err
	}
	res.Table = out
	res.Unlabeled = unmatched

	if unmatched > 0 {
		o.log.Warn().
			Str("method", m.String()).
			Int("unlabeled", unmatched).
			Int("rows", out.NumRows()).
			Msg("rows matched no rule; patient_type left null")
	}
	return res, nil
}

// CheckColumns verifies that t carries, or can derive, every input m needs.
// All unmet requirements are reported together.
func CheckColumns(t *table.Table, m Method) error {
	var reqs []string
	var missing []string
	need := func(have string, alt ...string) {
		if t.Has(have) {
			return
		}
		gone := t.Missing(alt...)
		if len(gone) == 0 {
			return
		}
		reqs = append(reqs, have+" or ("+strings.Join(alt, ", ")+")")
		missing = append(missing, have)
		missing = append(missing, gone...)
	}

	if m.contactLevel() {
		need(model.ColDurationH, model.TimestampColumns...)
		need(model.ColOvernight, model.ColDateStart, model.ColDateEnd)
	} else if !t.Has(model.ColPOvernight) {
		reqs = append(reqs, model.ColPOvernight)
		missing = append(missing, model.ColPOvernight)
	}
	need(model.ColElective, model.ColPriority)

	if len(reqs) == 0 {
		return nil
	}
	return &model.MissingColumnsError{
		Requirement: strings.Join(reqs, "; "),
		Missing:     dedupStrings(missing),
	}
}

func dedupStrings(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := in[:0]
	for _, s := range in {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}
