package rules

import (
	"github.com/gyeh/ptclass/internal/model"
)

// Rule assigns Label to rows where When is True.
type Rule struct {
	When  Expr
	Label model.PatientType
}

// RuleSet is an ordered first-match priority list.
type RuleSet struct {
	Name  string
	Rules []Rule
}

// Fields returns every field any rule reads, in first-seen order.
func (s RuleSet) Fields() []string {
	xs := make([]Expr, len(s.Rules))
	for i, r := range s.Rules {
		xs[i] = r.When
	}
	return collectFields(xs)
}

// Apply labels each frame row with the first rule whose predicate is True.
// Rows no rule claims keep the empty label; unmatched counts them.
func (s RuleSet) Apply(f Frame) (labels []model.PatientType, unmatched int) {
	labels = make([]model.PatientType, f.Len())
	open := f.Len()
	for _, r := range s.Rules {
		if open == 0 {
			break
		}
		for i, v := range r.When.Eval(f) {
			if v == True && labels[i] == "" {
				labels[i] = r.Label
				open--
			}
		}
	}
	return labels, open
}

// Matches returns the labels of every rule whose predicate is True for the
// single-row frame f, in rule order. Used to detect overlapping branches.
func (s RuleSet) Matches(f Frame) []model.PatientType {
	var out []model.PatientType
	for _, r := range s.Rules {
		if r.When.Eval(f)[0] == True {
			out = append(out, r.Label)
		}
	}
	return out
}
