package reconcile

import (
	"errors"
	"fmt"
	"slices"

	"github.com/google/uuid"
)

// Orphan is a child tuple whose foreign key does not resolve to a parent identifier.
type Orphan struct {
	// Index is the zero-based position of the tuple in the child block.
	Index int `json:"index"`
	// ID is the unresolved foreign key.
	ID string `json:"id"`
}

// VerifyReport describes how far a document is from the reconciled state.
type VerifyReport struct {
	// ParentIDs is the canonical identifier sequence of the parent block.
	ParentIDs []string `json:"parent_ids"`

	// ChildRefs is the foreign key sequence of the child block.
	ChildRefs []string `json:"child_refs"`

	// Duplicates lists parent identifiers that occur more than once.
	Duplicates []string `json:"duplicates"`

	// Orphans lists child references missing from the parent set.
	Orphans []Orphan `json:"orphans"`

	// Malformed lists identifiers that are not canonical UUIDs.
	Malformed []string `json:"malformed"`

	// Warnings holds missing-block and shape warnings.
	Warnings []Warning `json:"warnings"`
}

// Healthy reports whether both blocks were found and the uniqueness and
// referential integrity invariants hold.
func (r *VerifyReport) Healthy() bool {
	for _, w := range r.Warnings {
		if w.Kind == WarnMissingBlock {
			return false
		}
	}
	return len(r.Duplicates) == 0 && len(r.Orphans) == 0
}

// Verify checks the parent uniqueness and child referential integrity invariants.
// Identifier shape problems are reported but do not make the report unhealthy.
func Verify(doc Document, spec *Spec) *VerifyReport {
	report := &VerifyReport{}

	parent, err := LocateBlock(doc, spec.Parent.Markers)
	if err != nil {
		report.Warnings = append(report.Warnings, missingWarning(err))
	} else {
		report.ParentIDs = slices.Collect(Identifiers(parent.Text, spec.Parent.KeyColumn))
	}

	child, err := LocateBlock(doc, spec.Child.Markers)
	if err != nil {
		report.Warnings = append(report.Warnings, missingWarning(err))
	} else {
		report.ChildRefs = slices.Collect(Identifiers(child.Text, spec.Child.KeyColumn))
	}

	known := make(map[string]int, len(report.ParentIDs))
	for _, id := range report.ParentIDs {
		known[id]++
		if known[id] == 2 {
			report.Duplicates = append(report.Duplicates, id)
		}
	}

	if parent.Text != "" {
		for i, ref := range report.ChildRefs {
			if _, ok := known[ref]; !ok {
				report.Orphans = append(report.Orphans, Orphan{Index: i, ID: ref})
			}
		}
	}

	seen := make(map[string]struct{})
	for _, id := range slices.Concat(report.ParentIDs, report.ChildRefs) {
		if _, done := seen[id]; done {
			continue
		}
		seen[id] = struct{}{}
		if !IsCanonicalID(id) {
			report.Malformed = append(report.Malformed, id)
			report.Warnings = append(report.Warnings, Warning{
				Kind:    WarnMalformedID,
				Message: fmt.Sprintf("identifier %q is not a canonical UUID", id),
			})
		}
	}

	return report
}

// IsCanonicalID reports whether id is a 36-character hyphenated hexadecimal UUID.
func IsCanonicalID(id string) bool {
	return len(id) == 36 && uuid.Validate(id) == nil
}

func missingWarning(err error) Warning {
	var missing *MissingBlockError
	if errors.As(err, &missing) {
		return Warning{Kind: WarnMissingBlock, Message: missing.Error()}
	}
	return Warning{Kind: WarnMissingBlock, Message: err.Error()}
}
