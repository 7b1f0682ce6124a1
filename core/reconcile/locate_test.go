package reconcile

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLocateBlock_Span tests that the span runs from the start marker through the end marker.
func TestLocateBlock_Span(t *testing.T) {
	block, err := LocateBlock(Document(sampleDoc), parentMarkers)
	require.NoError(t, err)

	assert.Equal(t, "contents", block.Label)
	assert.True(t, strings.HasPrefix(block.Text, "-- parent rows"))
	assert.True(t, strings.HasSuffix(block.Text, "('A5', 'fifth');"))
	assert.Equal(t, sampleDoc[block.Start:block.End], block.Text)
}

// TestLocateBlock_IgnoresTerminatorInLiteral tests that ");" inside a quoted value does not end the block.
func TestLocateBlock_IgnoresTerminatorInLiteral(t *testing.T) {
	block, err := LocateBlock(Document(sampleDoc), parentMarkers)
	require.NoError(t, err)

	assert.Contains(t, block.Text, "('A3', 'third')")
	assert.Contains(t, block.Text, "('A5', 'fifth')")
}

// TestLocateBlock_IgnoresTerminatorInComment tests that a terminator in a line comment is skipped.
func TestLocateBlock_IgnoresTerminatorInComment(t *testing.T) {
	doc := Document("-- block\nINSERT INTO t VALUES\n  -- note: ends with );\n  ('x');\n")
	m := MustMarkers("t", `-- block`, `\);`)

	block, err := LocateBlock(doc, m)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(block.Text, "('x');"))
}

// TestLocateBlock_Missing tests that absent markers are reported as ErrBlockNotFound.
func TestLocateBlock_Missing(t *testing.T) {
	tests := []struct {
		name   string
		doc    string
		marker string
	}{
		{
			name:   "start marker absent",
			doc:    "INSERT INTO t VALUES ('x');",
			marker: "start",
		},
		{
			name:   "end marker absent",
			doc:    "-- block\nINSERT INTO t VALUES ('x')",
			marker: "end",
		},
		{
			name:   "end marker only inside literal",
			doc:    "-- block\nINSERT INTO t VALUES ('x);",
			marker: "end",
		},
	}

	m := MustMarkers("t", `-- block`, `\);`)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LocateBlock(Document(tt.doc), m)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrBlockNotFound))

			var missing *MissingBlockError
			require.ErrorAs(t, err, &missing)
			assert.Equal(t, tt.marker, missing.Marker)
			assert.Equal(t, "t", missing.Label)
		})
	}
}

// TestNewMarkers_InvalidPattern tests that bad patterns are rejected with the label in the message.
func TestNewMarkers_InvalidPattern(t *testing.T) {
	_, err := NewMarkers("contents", `(`, `;`)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "contents")

	_, err = NewMarkers("contents", `--`, `[`)
	assert.Error(t, err)
}
