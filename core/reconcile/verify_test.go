package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerify_OrphansBeforeReconcile(t *testing.T) {
	report := Verify(Document(sampleDoc), testSpec())

	assert.False(t, report.Healthy())
	assert.Equal(t, []string{"A1", "A2", "A3", "A4", "A5"}, report.ParentIDs)
	assert.Len(t, report.ChildRefs, 10)
	assert.Empty(t, report.Duplicates)
	require.Len(t, report.Orphans, 10)
	assert.Equal(t, Orphan{Index: 0, ID: "P1"}, report.Orphans[0])
	assert.Equal(t, Orphan{Index: 9, ID: "P5"}, report.Orphans[9])
}

func TestVerify_HealthyAfterReconcile(t *testing.T) {
	spec := testSpec()
	out, _, _, err := Reconcile(Document(sampleDoc), spec, DefaultOptions())
	require.NoError(t, err)

	report := Verify(out, spec)
	assert.True(t, report.Healthy())
	assert.Empty(t, report.Orphans)
	assert.Equal(t, []string{"A1", "A2", "A3", "A4", "A5", "A1", "A2", "A3", "A4", "A5"}, report.ChildRefs)
}

func TestVerify_Duplicates(t *testing.T) {
	doc := Document(`-- parent rows
VALUES ('A1', 'x'), ('A2', 'y'), ('A1', 'z');
-- child rows
VALUES ('C1', 'A1');`)

	report := Verify(doc, testSpec())
	assert.Equal(t, []string{"A1"}, report.Duplicates)
	assert.Empty(t, report.Orphans)
	assert.False(t, report.Healthy())
}

func TestVerify_MalformedIdentifiers(t *testing.T) {
	const (
		parentID = "10000001-1000-1000-1000-100000000001"
		childID  = "10000001-1000-1000-1000-10000000000a"
	)
	doc := Document(`-- parent rows
VALUES ('` + parentID + `', 'x'), ('short-id', 'y');
-- child rows
VALUES ('` + childID + `', '` + parentID + `');`)

	spec := testSpec()
	spec.Child.KeyColumn = 1
	report := Verify(doc, spec)

	assert.Equal(t, []string{"short-id"}, report.Malformed)
	require.Len(t, report.Warnings, 1)
	assert.Equal(t, WarnMalformedID, report.Warnings[0].Kind)

	// Shape problems alone do not make the document unhealthy.
	assert.True(t, report.Healthy())
}

func TestVerify_MissingBlocks(t *testing.T) {
	t.Run("child missing", func(t *testing.T) {
		doc := Document("-- parent rows\nVALUES ('A1', 'x');\n")
		report := Verify(doc, testSpec())

		assert.False(t, report.Healthy())
		assert.Empty(t, report.Orphans)
		require.NotEmpty(t, report.Warnings)
		assert.Equal(t, WarnMissingBlock, report.Warnings[0].Kind)
		assert.Contains(t, report.Warnings[0].Message, "content_analytics")
	})

	t.Run("parent missing reports no orphans", func(t *testing.T) {
		doc := Document("-- child rows\nVALUES ('C1', 'P1');\n")
		report := Verify(doc, testSpec())

		assert.False(t, report.Healthy())
		assert.Nil(t, report.ParentIDs)
		assert.Equal(t, []string{"P1"}, report.ChildRefs)
		assert.Empty(t, report.Orphans)
	})
}

func TestIsCanonicalID(t *testing.T) {
	assert.True(t, IsCanonicalID("6d53e189-76e0-4c4a-b94d-4e942e25bf60"))
	assert.True(t, IsCanonicalID("10000001-1000-1000-1000-100000000001"))
	assert.False(t, IsCanonicalID("6d53e18976e04c4ab94d4e942e25bf60"))
	assert.False(t, IsCanonicalID("{6d53e189-76e0-4c4a-b94d-4e942e25bf60}"))
	assert.False(t, IsCanonicalID("A1"))
	assert.False(t, IsCanonicalID(""))
}
