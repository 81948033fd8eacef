package rules

import (
	"sort"

	"github.com/gyeh/ptclass/internal/model"
)

const probeEpsilon = 1e-6

// Finding is one probe point and the labels whose rules fired there.
type Finding struct {
	Point  Point
	Labels []model.PatientType
}

// Report is the outcome of CheckExhaustive.
type Report struct {
	RuleSet  string
	Probes   int
	Gaps     []Finding // no rule fired
	Overlaps []Finding // more than one rule fired; first match decides
}

// Exhaustive reports whether every probed point received a label.
func (r Report) Exhaustive() bool {
	return len(r.Gaps) == 0
}

// Constraint filters probe points that cannot occur in real data, for
// example a flag that is derived from a numeric field.
type Constraint func(p Point) bool

// CheckExhaustive probes the rule set over its whole input space: every
// combination of the binary fields (those used through Flag) crossed with
// every numeric field at 0, at each threshold, just either side of it, and
// past the largest threshold. Points rejected by any constraint are skipped.
func CheckExhaustive(s RuleSet, constraints ...Constraint) Report {
	binary, numeric := s.domain()
	report := Report{RuleSet: s.Name}

	axes := make([]axis, 0, len(binary)+len(numeric))
	for _, f := range binary {
		axes = append(axes, axis{field: f, points: []float64{0, 1}})
	}
	for _, f := range sortedKeys(numeric) {
		axes = append(axes, axis{field: f, points: probePoints(numeric[f])})
	}

	enumerate(axes, Point{}, func(p Point) {
		for _, c := range constraints {
			if !c(p) {
				return
			}
		}
		report.Probes++
		labels := s.Matches(p)
		switch {
		case len(labels) == 0:
			report.Gaps = append(report.Gaps, Finding{Point: p.clone()})
		case len(labels) > 1:
			report.Overlaps = append(report.Overlaps, Finding{Point: p.clone(), Labels: labels})
		}
	})
	return report
}

type axis struct {
	field  string
	points []float64
}

func enumerate(axes []axis, p Point, visit func(Point)) {
	if len(axes) == 0 {
		visit(p)
		return
	}
	a := axes[0]
	for _, v := range a.points {
		p[a.field] = v
		enumerate(axes[1:], p, visit)
	}
	delete(p, a.field)
}

func (p Point) clone() Point {
	out := make(Point, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// domain splits the rule set's fields into binary flags and numeric fields
// with their comparison thresholds.
func (s RuleSet) domain() (binary []string, numeric map[string][]float64) {
	numeric = make(map[string][]float64)
	seen := make(map[string]bool)
	for _, r := range s.Rules {
		r.When.walk(func(e Expr) {
			switch x := e.(type) {
			case flagExpr:
				if !seen[x.field] {
					seen[x.field] = true
					binary = append(binary, x.field)
				}
			case cmpExpr:
				numeric[x.field] = append(numeric[x.field], x.value)
			}
		})
	}
	return binary, numeric
}

func probePoints(thresholds []float64) []float64 {
	set := map[float64]bool{0: true}
	max := 0.0
	for _, th := range thresholds {
		for _, v := range []float64{th - probeEpsilon, th, th + probeEpsilon} {
			if v >= 0 {
				set[v] = true
			}
		}
		if th > max {
			max = th
		}
	}
	set[2*max+1] = true
	points := make([]float64, 0, len(set))
	for v := range set {
		points = append(points, v)
	}
	sort.Float64s(points)
	return points
}

func sortedKeys(m map[string][]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
