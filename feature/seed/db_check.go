package seed

import (
	"context"
	"fmt"

	"seedfix/core/database"

	"gorm.io/gorm"
)

// DBReport holds integrity violations found in a seeded database.
type DBReport struct {
	Duplicates []database.KeyCount
	Orphans    []database.KeyCount
}

// Healthy reports whether no violations were found.
func (r *DBReport) Healthy() bool {
	return len(r.Duplicates) == 0 && len(r.Orphans) == 0
}

// CheckDatabase runs the uniqueness and referential integrity checks against
// the tables the seed document populates.
func CheckDatabase(ctx context.Context, db *gorm.DB, cfg Config) (*DBReport, error) {
	dups, err := database.FindDuplicateKeys(ctx, db, cfg.ParentTable, cfg.ParentKey)
	if err != nil {
		return nil, fmt.Errorf("duplicate key check failed: %w", err)
	}

	orphans, err := database.FindOrphans(ctx, db, cfg.ChildTable, cfg.ChildForeignKey, cfg.ParentTable, cfg.ParentKey)
	if err != nil {
		return nil, fmt.Errorf("orphan check failed: %w", err)
	}

	return &DBReport{Duplicates: dups, Orphans: orphans}, nil
}
