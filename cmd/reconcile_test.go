package cmd

import (
	"testing"

	"seedfix/core/reconcile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntegrityError(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		report := &reconcile.VerifyReport{ParentIDs: []string{"A1"}, ChildRefs: []string{"A1"}}
		assert.NoError(t, integrityError("seed.sql", report))
	})

	t.Run("orphans without pending changes", func(t *testing.T) {
		// An unchanged plan over this document must not be reported as reconciled.
		spec := &reconcile.Spec{
			Parent: reconcile.BlockSpec{Markers: reconcile.MustMarkers("contents", `-- parent rows`, `\);`)},
			Child: reconcile.BlockSpec{
				Markers:   reconcile.MustMarkers("content_analytics", `-- child rows`, `\);`),
				KeyColumn: 1,
			},
		}
		doc := reconcile.Document("-- parent rows\nVALUES ('A1', 'x');\n-- child rows\nVALUES ('C1', 'Q9');\n")

		plan, err := reconcile.Plan(doc, spec, reconcile.DefaultOptions())
		require.NoError(t, err)
		require.False(t, plan.Changed())

		err = integrityError("seed.sql", reconcile.Verify(doc, spec))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "1 orphan(s)")
	})

	t.Run("missing block", func(t *testing.T) {
		report := &reconcile.VerifyReport{
			Warnings: []reconcile.Warning{{Kind: reconcile.WarnMissingBlock, Message: "content_analytics: block not found"}},
		}
		err := integrityError("seed.sql", report)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "1 missing block(s)")
	})
}
