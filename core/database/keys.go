package database

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"gorm.io/gorm"
)

var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// KeyCount is a key value and the number of rows carrying it.
type KeyCount struct {
	Ref         string `gorm:"column:ref"`
	Occurrences int    `gorm:"column:occurrences"`
}

// FindDuplicateKeys returns the values of column that occur in more than one row of table.
func FindDuplicateKeys(ctx context.Context, db *gorm.DB, table, column string) ([]KeyCount, error) {
	if err := checkIdents(table, column); err != nil {
		return nil, err
	}

	qt, qc := quote(db, table), quote(db, column)
	query := fmt.Sprintf("SELECT %s AS ref, COUNT(*) AS occurrences FROM %s GROUP BY %s HAVING COUNT(*) > 1 ORDER BY %s",
		qc, qt, qc, qc)

	return scanKeyCounts(db.WithContext(ctx).Raw(query), table)
}

// FindOrphans returns the values of childTable.fkColumn that have no matching
// parentTable.keyColumn row, with the number of child rows carrying each.
func FindOrphans(ctx context.Context, db *gorm.DB, childTable, fkColumn, parentTable, keyColumn string) ([]KeyCount, error) {
	if err := checkIdents(childTable, fkColumn, parentTable, keyColumn); err != nil {
		return nil, err
	}

	fk, key := quote(db, fkColumn), quote(db, keyColumn)
	query := fmt.Sprintf("SELECT c.%s AS ref, COUNT(*) AS occurrences FROM %s c LEFT JOIN %s p ON p.%s = c.%s WHERE p.%s IS NULL GROUP BY c.%s ORDER BY c.%s",
		fk, quote(db, childTable), quote(db, parentTable), key, fk, key, fk, fk)

	return scanKeyCounts(db.WithContext(ctx).Raw(query), childTable)
}

func scanKeyCounts(tx *gorm.DB, table string) ([]KeyCount, error) {
	var counts []KeyCount
	if err := tx.Scan(&counts).Error; err != nil {
		return nil, fmt.Errorf("failed to query table %s: %w", table, err)
	}
	return counts, nil
}

func checkIdents(names ...string) error {
	for _, name := range names {
		if !identPattern.MatchString(name) {
			return fmt.Errorf("invalid identifier %q", name)
		}
	}
	return nil
}

// quote renders name with the dialect's identifier quoting.
func quote(db *gorm.DB, name string) string {
	var b strings.Builder
	db.Dialector.QuoteTo(&b, name)
	return b.String()
}
