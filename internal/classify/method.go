package classify

import (
	"fmt"
	"strings"

	"github.com/gyeh/ptclass/internal/model"
	"github.com/gyeh/ptclass/internal/rules"
)

// Method selects the rule set used to label contacts.
type Method int

const (
	// Cluster is the default contact-level rule set.
	Cluster Method = iota
	// Hybrid is the contact-level rule set with shorter duration cut-offs.
	Hybrid
	// HybridDepartment labels from the department overnight share instead
	// of contact duration.
	HybridDepartment
)

// AllMethods lists the supported methods.
var AllMethods = []Method{Cluster, Hybrid, HybridDepartment}

// ParseMethod maps a method name to a Method. The empty string selects Cluster.
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "cluster":
		return Cluster, nil
	case "hybrid":
		return Hybrid, nil
	case "hybrid-department", "hybrid_department", "department":
		return HybridDepartment, nil
	}
	return 0, fmt.Errorf("unknown method %q (want cluster, hybrid or hybrid-department)", s)
}

func (m Method) String() string {
	switch m {
	case Cluster:
		return "cluster"
	case Hybrid:
		return "hybrid"
	case HybridDepartment:
		return "hybrid-department"
	}
	return fmt.Sprintf("Method(%d)", int(m))
}

// RuleSet returns the ordered rules for m.
func (m Method) RuleSet() rules.RuleSet {
	switch m {
	case Hybrid:
		return hybridRules
	case HybridDepartment:
		return hybridDepartmentRules
	}
	return clusterRules
}

// contactLevel reports whether m reads per-contact duration and overnight.
func (m Method) contactLevel() bool {
	return m != HybridDepartment
}

var (
	elective  = rules.Flag(model.ColElective)
	overnight = rules.Flag(model.ColOvernight)
	over24h   = rules.Flag(model.ColOver24h)
	acute     = rules.Not(elective)
)

var clusterRules = rules.RuleSet{
	Name: Cluster.String(),
	Rules: []rules.Rule{
		{
			When:  rules.And(acute, rules.Not(over24h), rules.Lt(model.ColDurationH, 9)),
			Label: model.AcuteOutpatient,
		},
		{
			When: rules.Or(
				rules.And(acute, over24h),
				rules.And(acute, rules.Not(over24h), rules.Ge(model.ColDurationH, 9)),
				rules.And(elective, overnight),
				rules.And(elective, rules.Not(overnight), rules.Ge(model.ColDurationH, 3.5)),
			),
			Label: model.Inpatient,
		},
		{
			When:  rules.And(elective, rules.Not(overnight), rules.Lt(model.ColDurationH, 3.5)),
			Label: model.ElectiveOutpatient,
		},
	},
}

var hybridRules = rules.RuleSet{
	Name: Hybrid.String(),
	Rules: []rules.Rule{
		{
			When:  rules.And(elective, rules.Not(overnight), rules.Lt(model.ColDurationH, 2.6)),
			Label: model.ElectiveOutpatient,
		},
		{
			When: rules.Or(
				rules.And(elective, overnight),
				rules.And(elective, rules.Not(overnight), rules.Ge(model.ColDurationH, 2.6)),
				rules.And(acute, over24h),
				rules.And(acute, rules.Not(over24h), rules.Ge(model.ColDurationH, 4)),
			),
			Label: model.Inpatient,
		},
		{
			When:  rules.And(acute, rules.Not(over24h), rules.Lt(model.ColDurationH, 4)),
			Label: model.AcuteOutpatient,
		},
	},
}

var hybridDepartmentRules = rules.RuleSet{
	Name: HybridDepartment.String(),
	Rules: []rules.Rule{
		{
			When: rules.Or(
				rules.And(acute, rules.Ge(model.ColPOvernight, 0.23)),
				rules.And(elective, rules.Ge(model.ColPOvernight, 0.3)),
			),
			Label: model.Inpatient,
		},
		{
			When:  rules.And(acute, rules.Lt(model.ColPOvernight, 0.23)),
			Label: model.AcuteOutpatient,
		},
		{
			When:  rules.And(elective, rules.Lt(model.ColPOvernight, 0.3)),
			Label: model.ElectiveOutpatient,
		},
	},
}

// Exhaustiveness probes m's rule set for inputs no rule labels. For the
// contact-level methods over24h is tied to duration_h, so probe points where
// the two disagree are skipped.
func Exhaustiveness(m Method) rules.Report {
	if !m.contactLevel() {
		return rules.CheckExhaustive(m.RuleSet())
	}
	return rules.CheckExhaustive(m.RuleSet(), func(p rules.Point) bool {
		return (p[model.ColOver24h] == 1) == (p[model.ColDurationH] >= 24)
	})
}
