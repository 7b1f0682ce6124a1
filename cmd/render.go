package cmd

import (
	"fmt"
	"io"

	"seedfix/core/database"
	"seedfix/core/reconcile"
	"seedfix/feature/seed"

	"github.com/jedib0t/go-pretty/v6/table"
)

func newTable(w io.Writer, title string) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.SetTitle(title)
	return t
}

// renderPlan prints the planned actions.
func renderPlan(w io.Writer, plan *reconcile.ReconcilePlan) {
	if len(plan.Actions) == 0 {
		_, _ = fmt.Fprintln(w, "(no actions)")
		return
	}

	t := newTable(w, "Planned actions")
	t.AppendHeader(table.Row{"Type", "Key", "Target", "Count"})
	for _, a := range plan.Actions {
		t.AppendRow(table.Row{a.Type, a.Key, a.Target, a.Count})
	}
	t.AppendFooter(table.Row{"", "", "Total", plan.Summary.PendingSubstitutions + plan.Summary.BlockReplacements})
	t.Render()
}

// renderVerify prints the violations of a verification report.
func renderVerify(w io.Writer, report *reconcile.VerifyReport) {
	if report.Healthy() && len(report.Malformed) == 0 {
		_, _ = fmt.Fprintf(w, "OK: %d parent id(s), %d child reference(s)\n", len(report.ParentIDs), len(report.ChildRefs))
		return
	}

	t := newTable(w, "Violations")
	t.AppendHeader(table.Row{"Kind", "Identifier", "Detail"})
	for _, id := range report.Duplicates {
		t.AppendRow(table.Row{"duplicate", id, "parent identifier occurs more than once"})
	}
	for _, o := range report.Orphans {
		t.AppendRow(table.Row{"orphan", o.ID, fmt.Sprintf("child tuple #%d", o.Index)})
	}
	for _, id := range report.Malformed {
		t.AppendRow(table.Row{"malformed", id, "not a canonical UUID"})
	}
	for _, warn := range report.Warnings {
		if warn.Kind == reconcile.WarnMissingBlock {
			t.AppendRow(table.Row{"missing", "", warn.Message})
		}
	}
	t.Render()
}

// renderDBReport prints database violations.
func renderDBReport(w io.Writer, report *seed.DBReport) {
	if report.Healthy() {
		_, _ = fmt.Fprintln(w, "OK: database")
		return
	}

	t := newTable(w, "Database violations")
	t.AppendHeader(table.Row{"Kind", "Identifier", "Rows"})
	appendCounts := func(kind string, counts []database.KeyCount) {
		for _, c := range counts {
			t.AppendRow(table.Row{kind, c.Ref, c.Occurrences})
		}
	}
	appendCounts("duplicate", report.Duplicates)
	appendCounts("orphan", report.Orphans)
	t.Render()
}
