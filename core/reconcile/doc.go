// Package reconcile provides the identifier reconciliation engine for seed documents.
//
// A seed document is a generated SQL file with a parent insert block (records with
// primary identifiers) and a child insert block (records referencing the parent by
// identifier). The engine makes the parent identifiers unique and every child
// reference resolvable, by rewriting text while preserving every other byte.
//
// # Architecture
//
// The engine consists of four components, each a pure function over a Document value:
//
// 1. Block Locator (LocateBlock): finds a block between a start marker (label comment)
//    and an end marker (statement terminator), ignoring terminators inside literals.
//
// 2. Identifier Extractor (Tuples, Identifiers): lazily yields the fields of each
//    record tuple in textual order. Malformed tuples are skipped.
//
// 3. Mapping Planner (PositionalRemap, ReplacementTable, Merge): builds an ordered
//    old to new identifier mapping and rejects mappings that would not be idempotent.
//
// 4. Document Patcher (ApplyMapping, ReplaceBlock): applies token-exact substitutions
//    or whole-block replacements.
//
// Plan and ApplyPlan tie the components together; Verify checks the result.
//
// # Error Handling
//
// A missing block is never fatal: it is returned as a *MissingBlockError (matching
// ErrBlockNotFound) and surfaced by Plan as a Warning. Planning errors are warnings
// too, unless Options.Strict is set.
//
// # Usage Example
//
//	spec := &reconcile.Spec{
//	    Parent:       reconcile.BlockSpec{Markers: parentMarkers, KeyColumn: 0},
//	    Child:        reconcile.BlockSpec{Markers: childMarkers, KeyColumn: 1},
//	    Placeholders: placeholders,
//	}
//
//	plan, err := reconcile.Plan(doc, spec, reconcile.DefaultOptions())
//	if err != nil {
//	    return err
//	}
//	fixed, report := reconcile.ApplyPlan(doc, plan)
//	if !reconcile.Verify(fixed, spec).Healthy() {
//	    // re-run or inspect the report
//	}
package reconcile
