package classify

import (
	"strings"

	"github.com/gyeh/ptclass/internal/duration"
	"github.com/gyeh/ptclass/internal/model"
	"github.com/gyeh/ptclass/internal/normalize"
	"github.com/gyeh/ptclass/internal/rules"
	"github.com/gyeh/ptclass/internal/table"
)

// DeriveElective builds the elective column from priority: 0 when the code
// starts with AcutePriorityPrefix, 1 otherwise, null when priority is null.
func DeriveElective(t *table.Table) *table.Column {
	prio := t.Column(model.ColPriority)
	vals := make([]int64, t.NumRows())
	valid := make([]bool, t.NumRows())
	for i := range vals {
		s, ok := prio.Format(i)
		if !ok {
			continue
		}
		valid[i] = true
		if !strings.HasPrefix(strings.TrimSpace(s), AcutePriorityPrefix) {
			vals[i] = 1
		}
	}
	return table.NewInt(model.ColElective, vals, valid)
}

// DeriveOvernight builds the overnight column: 1 when the start and end
// dates differ, 0 when equal, null when either fails to parse.
func DeriveOvernight(t *table.Table) *table.Column {
	starts := duration.Dates(t, model.ColDateStart)
	ends := duration.Dates(t, model.ColDateEnd)
	vals := make([]int64, t.NumRows())
	valid := make([]bool, t.NumRows())
	for i := range vals {
		if starts[i] == nil || ends[i] == nil {
			continue
		}
		valid[i] = true
		if !normalize.SameDay(*starts[i], *ends[i]) {
			vals[i] = 1
		}
	}
	return table.NewInt(model.ColOvernight, vals, valid)
}

// DeriveOver24h builds the over24h column: 1 when duration_h >= 24, null
// when duration_h is null or not a finite number. duration_h is read the
// same way the rules read it, so text cells like "30" count.
func DeriveOver24h(t *table.Table) *table.Column {
	hours, ok, _ := rules.TableFrame(t).Values(model.ColDurationH)
	vals := make([]int64, t.NumRows())
	valid := make([]bool, t.NumRows())
	for i := range vals {
		if !ok[i] {
			continue
		}
		valid[i] = true
		if hours[i] >= 24 {
			vals[i] = 1
		}
	}
	return table.NewInt(model.ColOver24h, vals, valid)
}
