package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gyeh/ptclass/internal/classify"
	"github.com/gyeh/ptclass/internal/rules"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Print every rule set and its exhaustiveness check",
	RunE:  runRules,
}

func init() {
	rootCmd.AddCommand(rulesCmd)
}

func runRules(cmd *cobra.Command, args []string) error {
	for _, m := range classify.AllMethods {
		fmt.Printf("=== %s ===\n", m)
		for i, r := range m.RuleSet().Rules {
			fmt.Printf("  %d. %-20s ← %s\n", i+1, r.Label, r.When)
		}
		printRuleReport(classify.Exhaustiveness(m))
		fmt.Println()
	}
	return nil
}

func printRuleReport(r rules.Report) {
	fmt.Printf("Rule set %s: %d probe points, %d gaps, %d overlaps\n",
		r.RuleSet, r.Probes, len(r.Gaps), len(r.Overlaps))
	for _, g := range r.Gaps {
		fmt.Printf("  gap:     %s\n", g.Point)
	}
	for _, o := range r.Overlaps {
		fmt.Printf("  overlap: %s → %v\n", o.Point, o.Labels)
	}
}
