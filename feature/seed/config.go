package seed

import (
	"fmt"
	"os"
	"strings"

	"seedfix/core/reconcile"
)

// Config describes the seed document profile: where the blocks are, which
// identifiers are placeholders, and which tables back the live database check.
type Config struct {
	// Document is the default document name passed to the gateway.
	Document string `mapstructure:"document" default:"database-init.sql"`

	// ParentLabel names the parent block in reports.
	ParentLabel string `mapstructure:"parent_label" default:"contents"`
	// ParentStart is the start marker pattern of the parent block.
	ParentStart string `mapstructure:"parent_start" default:"-- 插入测试内容"`
	// ParentEnd is the end marker pattern of the parent block.
	ParentEnd string `mapstructure:"parent_end" default:"\\);"`
	// ParentKeyColumn is the tuple field holding the primary key.
	ParentKeyColumn int `mapstructure:"parent_key_column" default:"0"`

	// ChildLabel names the child block in reports.
	ChildLabel string `mapstructure:"child_label" default:"content_analytics"`
	// ChildStart is the start marker pattern of the child block.
	ChildStart string `mapstructure:"child_start" default:"-- 插入内容分析数据"`
	// ChildEnd is the end marker pattern of the child block.
	ChildEnd string `mapstructure:"child_end" default:"\\);"`
	// ChildKeyColumn is the tuple field holding the foreign key.
	ChildKeyColumn int `mapstructure:"child_key_column" default:"1"`

	// Placeholders are the child references remapped positionally onto the parent order.
	Placeholders []string `mapstructure:"placeholders" default:"20000001-1111-1111-1111-111111111111,20000002-2222-2222-2222-222222222222,20000003-3333-3333-3333-333333333333,20000004-4444-4444-4444-444444444444,20000005-5555-5555-5555-555555555555"`
	// Table holds fixed "old=new" identifier replacements.
	Table []string `mapstructure:"table" default:"20000001-1111-1111-1111-111111111111=10000001-1111-1111-1111-111111111111,20000002-2222-2222-2222-222222222222=10000002-2222-2222-2222-222222222222,20000003-3333-3333-3333-333333333333=10000003-3333-3333-3333-333333333333,20000004-4444-4444-4444-444444444444=10000004-4444-4444-4444-444444444444,20000005-5555-5555-5555-555555555555=10000005-5555-5555-5555-555555555555"`

	// ParentBlockFile overrides the embedded canonical parent block.
	ParentBlockFile string `mapstructure:"parent_block_file" default:""`
	// ChildBlockFile overrides the embedded canonical child block.
	ChildBlockFile string `mapstructure:"child_block_file" default:""`

	// ParentTable and ParentKey locate the parent rows in a seeded database.
	ParentTable string `mapstructure:"parent_table" default:"contents"`
	ParentKey   string `mapstructure:"parent_key" default:"id"`
	// ChildTable and ChildForeignKey locate the child references in a seeded database.
	ChildTable      string `mapstructure:"child_table" default:"content_analytics"`
	ChildForeignKey string `mapstructure:"child_foreign_key" default:"content_id"`
}

// DefaultConfig returns the profile of the bundled content-storage seed.
func DefaultConfig() Config {
	return Config{
		Document:        "database-init.sql",
		ParentLabel:     "contents",
		ParentStart:     "-- 插入测试内容",
		ParentEnd:       `\);`,
		ParentKeyColumn: 0,
		ChildLabel:      "content_analytics",
		ChildStart:      "-- 插入内容分析数据",
		ChildEnd:        `\);`,
		ChildKeyColumn:  1,
		Placeholders: []string{
			"20000001-1111-1111-1111-111111111111",
			"20000002-2222-2222-2222-222222222222",
			"20000003-3333-3333-3333-333333333333",
			"20000004-4444-4444-4444-444444444444",
			"20000005-5555-5555-5555-555555555555",
		},
		Table: []string{
			"20000001-1111-1111-1111-111111111111=10000001-1111-1111-1111-111111111111",
			"20000002-2222-2222-2222-222222222222=10000002-2222-2222-2222-222222222222",
			"20000003-3333-3333-3333-333333333333=10000003-3333-3333-3333-333333333333",
			"20000004-4444-4444-4444-444444444444=10000004-4444-4444-4444-444444444444",
			"20000005-5555-5555-5555-555555555555=10000005-5555-5555-5555-555555555555",
		},
		ParentTable:     "contents",
		ParentKey:       "id",
		ChildTable:      "content_analytics",
		ChildForeignKey: "content_id",
	}
}

// Spec compiles the profile into a reconcile.Spec.
func (c Config) Spec() (*reconcile.Spec, error) {
	parent, err := reconcile.NewMarkers(c.ParentLabel, c.ParentStart, c.ParentEnd)
	if err != nil {
		return nil, err
	}
	child, err := reconcile.NewMarkers(c.ChildLabel, c.ChildStart, c.ChildEnd)
	if err != nil {
		return nil, err
	}

	table, err := ParseTable(c.Table)
	if err != nil {
		return nil, err
	}

	parentBlock, err := loadBlock(c.ParentBlockFile, fixtureContents)
	if err != nil {
		return nil, err
	}
	childBlock, err := loadBlock(c.ChildBlockFile, fixtureAnalytics)
	if err != nil {
		return nil, err
	}

	return &reconcile.Spec{
		Parent:       reconcile.BlockSpec{Markers: parent, KeyColumn: c.ParentKeyColumn},
		Child:        reconcile.BlockSpec{Markers: child, KeyColumn: c.ChildKeyColumn},
		Placeholders: trimAll(c.Placeholders),
		Table:        table,
		Replacements: []reconcile.BlockReplacement{
			{Target: parent, Text: parentBlock},
			{Target: child, Text: childBlock},
		},
	}, nil
}

// ParseTable parses "old=new" entries. Blank entries are ignored.
func ParseTable(entries []string) ([]reconcile.Pair, error) {
	pairs := make([]reconcile.Pair, 0, len(entries))
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		oldID, newID, ok := strings.Cut(entry, "=")
		oldID, newID = strings.TrimSpace(oldID), strings.TrimSpace(newID)
		if !ok || oldID == "" || newID == "" {
			return nil, fmt.Errorf("invalid table entry %q: expected old=new", entry)
		}
		pairs = append(pairs, reconcile.Pair{Old: oldID, New: newID})
	}
	return pairs, nil
}

// loadBlock reads a canonical block from path, or returns the embedded fallback.
func loadBlock(path, fallback string) (string, error) {
	if path == "" {
		return strings.TrimSpace(fallback), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read canonical block %s: %w", path, err)
	}
	return strings.TrimSpace(string(data)), nil
}

func trimAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
