package rules

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/gyeh/ptclass/internal/table"
)

type tableFrame struct {
	t     *table.Table
	cache map[string]frameCol
}

type frameCol struct {
	vals  []float64
	valid []bool
}

// TableFrame exposes the numeric columns of t to rule evaluation. Int and
// Float columns are read as float64. String cells that parse as numbers or
// booleans (true → 1, false → 0) are accepted, anything else is null.
// NaN and infinities are null in every column kind.
func TableFrame(t *table.Table) Frame {
	return &tableFrame{t: t, cache: make(map[string]frameCol)}
}

func (f *tableFrame) Len() int { return f.t.NumRows() }

func (f *tableFrame) Values(field string) ([]float64, []bool, bool) {
	if fc, ok := f.cache[field]; ok {
		return fc.vals, fc.valid, true
	}
	c := f.t.Column(field)
	if c == nil {
		return nil, nil, false
	}
	fc := frameCol{vals: make([]float64, c.Len()), valid: make([]bool, c.Len())}
	for i := range fc.vals {
		var v float64
		var ok bool
		if c.Kind == table.String {
			v, ok = parseCell(c, i)
		} else {
			v, ok = c.Float(i)
		}
		if !ok || math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		fc.vals[i], fc.valid[i] = v, true
	}
	f.cache[field] = fc
	return fc.vals, fc.valid, true
}

func parseCell(c *table.Column, i int) (float64, bool) {
	s, ok := c.Str(i)
	if !ok {
		return 0, false
	}
	s = strings.TrimSpace(s)
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return v, true
	}
	if b, err := strconv.ParseBool(s); err == nil {
		if b {
			return 1, true
		}
		return 0, true
	}
	return 0, false
}

// Point is a single-row frame. Absent keys evaluate as missing fields.
type Point map[string]float64

func (p Point) Len() int { return 1 }

func (p Point) Values(field string) ([]float64, []bool, bool) {
	v, ok := p[field]
	if !ok {
		return nil, nil, false
	}
	return []float64{v}, []bool{true}, true
}

func (p Point) String() string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + "=" + strconv.FormatFloat(p[k], 'g', -1, 64)
	}
	return strings.Join(parts, " ")
}
