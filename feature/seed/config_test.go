package seed

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"seedfix/core/reconcile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Spec(t *testing.T) {
	spec, err := DefaultConfig().Spec()
	require.NoError(t, err)

	assert.Equal(t, "contents", spec.Parent.Label)
	assert.Equal(t, 1, spec.Child.KeyColumn)
	assert.Len(t, spec.Placeholders, 5)
	require.Len(t, spec.Table, 5)
	assert.Equal(t, reconcile.Pair{
		Old: "20000001-1111-1111-1111-111111111111",
		New: "10000001-1111-1111-1111-111111111111",
	}, spec.Table[0])

	require.Len(t, spec.Replacements, 2)
	assert.True(t, strings.HasPrefix(spec.Replacements[0].Text, "-- 插入测试内容"))
	assert.True(t, strings.HasSuffix(spec.Replacements[1].Text, ");"))
}

// TestFixtures_Healthy tests that the embedded canonical blocks satisfy both invariants.
func TestFixtures_Healthy(t *testing.T) {
	spec, err := DefaultConfig().Spec()
	require.NoError(t, err)

	doc := reconcile.Document(spec.Replacements[0].Text + "\n\n" + spec.Replacements[1].Text + "\n")
	report := reconcile.Verify(doc, spec)

	assert.True(t, report.Healthy())
	assert.Len(t, report.ParentIDs, 5)
	assert.Len(t, report.ChildRefs, 10)
	assert.Empty(t, report.Malformed)
}

func TestConfig_Spec_BlockFileOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contents.sql")
	require.NoError(t, os.WriteFile(path, []byte("-- 插入测试内容\nVALUES ('x');\n\n"), 0o644))

	cfg := DefaultConfig()
	cfg.ParentBlockFile = path

	spec, err := cfg.Spec()
	require.NoError(t, err)
	assert.Equal(t, "-- 插入测试内容\nVALUES ('x');", spec.Replacements[0].Text)

	cfg.ChildBlockFile = filepath.Join(t.TempDir(), "absent.sql")
	_, err = cfg.Spec()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "absent.sql")
}

func TestConfig_Spec_InvalidMarker(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ChildEnd = "("

	_, err := cfg.Spec()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "content_analytics")
}

func TestParseTable(t *testing.T) {
	pairs, err := ParseTable([]string{" a = b ", "", "c=d"})
	require.NoError(t, err)
	assert.Equal(t, []reconcile.Pair{{Old: "a", New: "b"}, {Old: "c", New: "d"}}, pairs)

	for _, bad := range []string{"a", "=b", "a="} {
		_, err := ParseTable([]string{bad})
		assert.Error(t, err, bad)
	}
}
