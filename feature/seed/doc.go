// Package seed wires the reconciliation engine to the content-storage seed document.
//
// The profile (Config) names the two insert blocks, the placeholder references left
// by the generator, a fixed replacement table and the canonical blocks that can be
// written over the document. Defaults reproduce the bundled database-init.sql; the
// canonical blocks are embedded from fixtures/ and can be overridden by file.
//
// Service drives one run: Plan loads and plans, the caller confirms, Apply writes
// the result through the gateway after verifying it. CheckDatabase runs the same
// invariants against a database that was seeded from the document.
package seed
