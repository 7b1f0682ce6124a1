package reconcile

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPositionalRemap(t *testing.T) {
	tests := []struct {
		name         string
		placeholders []string
		canonical    []string
		want         Mapping
	}{
		{
			name:         "equal lengths",
			placeholders: []string{"P1", "P2"},
			canonical:    []string{"A1", "A2"},
			want: Mapping{
				{Old: "P1", New: "A1", Source: ActionRemap},
				{Old: "P2", New: "A2", Source: ActionRemap},
			},
		},
		{
			name:         "canonical shorter degrades to identity",
			placeholders: []string{"P1", "P2", "P3"},
			canonical:    []string{"A1"},
			want: Mapping{
				{Old: "P1", New: "A1", Source: ActionRemap},
			},
		},
		{
			name:         "canonical longer ignores extra ids",
			placeholders: []string{"P1"},
			canonical:    []string{"A1", "A2", "A3"},
			want: Mapping{
				{Old: "P1", New: "A1", Source: ActionRemap},
			},
		},
		{
			name:         "identity pairs filtered",
			placeholders: []string{"A1", "P2"},
			canonical:    []string{"A1", "A2"},
			want: Mapping{
				{Old: "P2", New: "A2", Source: ActionRemap},
			},
		},
		{
			name:         "empty canonical",
			placeholders: []string{"P1"},
			canonical:    nil,
			want:         Mapping{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			placeholders := append([]string(nil), tt.placeholders...)
			canonical := append([]string(nil), tt.canonical...)

			got, err := PositionalRemap(placeholders, canonical)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			// Inputs are never mutated.
			assert.Equal(t, tt.placeholders, placeholders)
			assert.Equal(t, tt.canonical, canonical)
		})
	}
}

func TestPositionalRemap_AmbiguousOrder(t *testing.T) {
	_, err := PositionalRemap([]string{"P1", "P2"}, []string{"A1", "A1"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrAmbiguousOrder))
	assert.Contains(t, err.Error(), `"A1"`)
}

func TestPositionalRemap_DuplicatePlaceholder(t *testing.T) {
	_, err := PositionalRemap([]string{"P1", "P1", "P3"}, []string{"A1", "A2", "A3"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConflictingMapping))
	assert.Contains(t, err.Error(), `placeholder "P1" at positions 0 and 1`)
}

func TestReplacementTable(t *testing.T) {
	got := ReplacementTable([]Pair{
		{Old: "B1", New: "A1"},
		{Old: "A2", New: "A2"},
		{Old: "", New: "A3"},
	})
	assert.Equal(t, Mapping{{Old: "B1", New: "A1", Source: ActionTable}}, got)
}

func TestMerge(t *testing.T) {
	remap := Mapping{
		{Old: "P1", New: "A1", Source: ActionRemap},
		{Old: "P2", New: "A2", Source: ActionRemap},
	}

	t.Run("later part is superseded for the same identifier", func(t *testing.T) {
		table := Mapping{
			{Old: "P1", New: "T1", Source: ActionTable},
			{Old: "B3", New: "A3", Source: ActionTable},
		}
		got, err := Merge(remap, table)
		require.NoError(t, err)
		assert.Equal(t, []string{"P1", "P2", "B3"}, got.Olds())
		assert.Equal(t, "A1", got[0].New)
	})

	t.Run("exact duplicates are dropped", func(t *testing.T) {
		got, err := Merge(remap, Mapping{{Old: "P2", New: "A2", Source: ActionTable}})
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("conflict within one part", func(t *testing.T) {
		table := Mapping{
			{Old: "B1", New: "A1", Source: ActionTable},
			{Old: "B1", New: "A2", Source: ActionTable},
		}
		_, err := Merge(table)
		assert.True(t, errors.Is(err, ErrConflictingMapping))
	})

	t.Run("chain is rejected", func(t *testing.T) {
		_, err := Merge(remap, Mapping{{Old: "A1", New: "Z1", Source: ActionTable}})
		assert.True(t, errors.Is(err, ErrChainedMapping))
	})

	t.Run("positional chain is rejected", func(t *testing.T) {
		m, err := PositionalRemap([]string{"A2", "P2"}, []string{"A1", "A2"})
		require.NoError(t, err)
		_, err = Merge(m)
		assert.True(t, errors.Is(err, ErrChainedMapping))
	})

	t.Run("no parts", func(t *testing.T) {
		got, err := Merge()
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}
