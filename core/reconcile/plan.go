package reconcile

import (
	"fmt"
	"slices"
)

// Action represents a planned change to the document.
type Action struct {
	// Type specifies the strategy that produced the action.
	Type ActionType `json:"type"`

	// Key is the block label for block replacements, or the old identifier.
	Key string `json:"key"`

	// Target is the new identifier. Empty for block replacements.
	Target string `json:"target,omitempty"`

	// Count is the number of occurrences the action rewrites.
	Count int `json:"count"`

	// Reason explains why this action is needed.
	Reason string `json:"reason"`
}

// PlanSummary provides aggregate statistics for a reconcile plan.
type PlanSummary struct {
	// CanonicalIDs is the length of the canonical parent sequence.
	CanonicalIDs int `json:"canonical_ids"`

	// BlockReplacements counts blocks that differ from their canonical text.
	BlockReplacements int `json:"block_replacements"`

	// RemapActions counts placeholder pairs with pending occurrences.
	RemapActions int `json:"remap_actions"`

	// TableActions counts replacement-table pairs with pending occurrences.
	TableActions int `json:"table_actions"`

	// PendingSubstitutions is the total number of identifier occurrences to rewrite.
	PendingSubstitutions int `json:"pending_substitutions"`
}

// ReconcilePlan contains the planned actions and the inputs needed to apply them.
type ReconcilePlan struct {
	// Actions lists the changes that would alter the document.
	Actions []Action `json:"actions"`

	// Mapping is the merged, validated substitution list.
	Mapping Mapping `json:"mapping"`

	// Replacements are the block replacements that change the document.
	Replacements []BlockReplacement `json:"-"`

	// Canonical is the parent identifier sequence the mapping was derived from.
	Canonical []string `json:"canonical"`

	// Warnings holds non-fatal problems found while planning.
	Warnings []Warning `json:"warnings"`

	// Summary provides aggregate counts.
	Summary PlanSummary `json:"summary"`
}

// Changed reports whether applying the plan would alter the document.
func (p *ReconcilePlan) Changed() bool {
	return len(p.Actions) > 0
}

// ApplyReport describes what ApplyPlan changed.
type ApplyReport struct {
	// ReplacedBlocks lists the labels of replaced blocks.
	ReplacedBlocks []string `json:"replaced_blocks"`

	// Substitutions holds per-pair occurrence counts, in mapping order.
	Substitutions []Substitution `json:"substitutions"`

	// Warnings holds non-fatal problems found while applying.
	Warnings []Warning `json:"warnings"`
}

// Total returns the number of rewritten identifier occurrences.
func (r *ApplyReport) Total() int {
	n := 0
	for _, s := range r.Substitutions {
		n += s.Count
	}
	return n
}

// Plan computes the actions needed to reconcile doc. It does NOT modify doc;
// use ApplyPlan for that.
//
// Block replacements are evaluated first, then the canonical sequence is extracted
// from the resulting parent block, then positional and table mappings are merged.
// Missing blocks and invalid mappings become warnings and the affected strategy is
// skipped, unless opts.Strict is set, in which case planning errors are returned.
func Plan(doc Document, spec *Spec, opts Options) (*ReconcilePlan, error) {
	plan := &ReconcilePlan{}
	working := doc

	if opts.ReplaceBlocks {
		for _, r := range spec.Replacements {
			next, err := ReplaceBlock(working, r.Target, r.Text)
			if err != nil {
				plan.Warnings = append(plan.Warnings, missingWarning(err))
				continue
			}
			if next == working {
				continue
			}
			plan.Replacements = append(plan.Replacements, r)
			plan.Actions = append(plan.Actions, Action{
				Type:   ActionReplaceBlock,
				Key:    r.Target.Label,
				Count:  1,
				Reason: "block differs from canonical text",
			})
			plan.Summary.BlockReplacements++
			working = next
		}
	}

	parent, err := LocateBlock(working, spec.Parent.Markers)
	if err != nil {
		plan.Warnings = append(plan.Warnings, missingWarning(err))
	} else {
		plan.Canonical = slices.Collect(Identifiers(parent.Text, spec.Parent.KeyColumn))
	}
	plan.Summary.CanonicalIDs = len(plan.Canonical)

	var parts []Mapping
	if opts.Remap && plan.Canonical != nil {
		remap, err := PositionalRemap(spec.Placeholders, plan.Canonical)
		if err != nil {
			if opts.Strict {
				return nil, fmt.Errorf("positional remap: %w", err)
			}
			plan.Warnings = append(plan.Warnings, Warning{Kind: WarnPlanning, Message: "positional remap skipped: " + err.Error()})
		} else {
			parts = append(parts, remap)
		}
	}
	if opts.Table {
		parts = append(parts, ReplacementTable(spec.Table))
	}

	// Each strategy is checked against the ones already accepted, so an invalid
	// one is dropped on its own.
	var accepted []Mapping
	for _, part := range parts {
		if _, err := Merge(append(slices.Clone(accepted), part)...); err != nil {
			source := partSource(part)
			if opts.Strict {
				return nil, fmt.Errorf("%s mapping: %w", source, err)
			}
			plan.Warnings = append(plan.Warnings, Warning{
				Kind:    WarnPlanning,
				Message: fmt.Sprintf("%s substitutions skipped: %v", source, err),
			})
			continue
		}
		accepted = append(accepted, part)
	}

	mapping, err := Merge(accepted...)
	if err != nil {
		return nil, fmt.Errorf("merge mappings: %w", err)
	}
	plan.Mapping = mapping

	// Preview counts by applying to the working copy; only pairs that match are actions.
	_, subs := ApplyMapping(working, mapping)
	for _, s := range subs {
		if s.Count == 0 {
			continue
		}
		plan.Actions = append(plan.Actions, Action{
			Type:   s.Source,
			Key:    s.Old,
			Target: s.New,
			Count:  s.Count,
			Reason: fmt.Sprintf("%d occurrence(s) to rewrite", s.Count),
		})
		switch s.Source {
		case ActionRemap:
			plan.Summary.RemapActions++
		case ActionTable:
			plan.Summary.TableActions++
		}
		plan.Summary.PendingSubstitutions += s.Count
	}

	return plan, nil
}

// partSource names the strategy a mapping came from.
func partSource(m Mapping) ActionType {
	if len(m) == 0 {
		return ActionTable
	}
	return m[0].Source
}

// ApplyPlan applies the plan's block replacements and then its mapping to doc.
// It is a pure function of (doc, plan).
func ApplyPlan(doc Document, plan *ReconcilePlan) (Document, *ApplyReport) {
	report := &ApplyReport{}
	working := doc

	for _, r := range plan.Replacements {
		next, err := ReplaceBlock(working, r.Target, r.Text)
		if err != nil {
			report.Warnings = append(report.Warnings, missingWarning(err))
			continue
		}
		if next != working {
			report.ReplacedBlocks = append(report.ReplacedBlocks, r.Target.Label)
		}
		working = next
	}

	working, report.Substitutions = ApplyMapping(working, plan.Mapping)
	return working, report
}

// Reconcile is a convenience wrapper that plans and applies in one step.
func Reconcile(doc Document, spec *Spec, opts Options) (Document, *ReconcilePlan, *ApplyReport, error) {
	plan, err := Plan(doc, spec, opts)
	if err != nil {
		return doc, nil, nil, err
	}
	out, report := ApplyPlan(doc, plan)
	return out, plan, report, nil
}
