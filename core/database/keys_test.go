package database

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

func TestFindDuplicateKeys(t *testing.T) {
	db, mock := setupMockDB(t)

	rows := sqlmock.NewRows([]string{"ref", "occurrences"}).
		AddRow("10000001-1000-1000-1000-100000000001", int64(2))
	mock.ExpectQuery("SELECT `id` AS ref, COUNT\\(\\*\\) AS occurrences FROM `contents` GROUP BY `id` HAVING COUNT\\(\\*\\) > 1").
		WillReturnRows(rows)

	got, err := FindDuplicateKeys(context.Background(), db, "contents", "id")
	require.NoError(t, err)
	assert.Equal(t, []KeyCount{{Ref: "10000001-1000-1000-1000-100000000001", Occurrences: 2}}, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindOrphans(t *testing.T) {
	db, mock := setupMockDB(t)

	rows := sqlmock.NewRows([]string{"ref", "occurrences"}).
		AddRow([]byte("20000001-2000-2000-2000-200000000001"), int64(2)).
		AddRow([]byte("20000002-2000-2000-2000-200000000002"), int64(1))
	mock.ExpectQuery("SELECT c.`content_id` AS ref, COUNT\\(\\*\\) AS occurrences FROM `content_analytics` c LEFT JOIN `contents` p ON p.`id` = c.`content_id` WHERE p.`id` IS NULL").
		WillReturnRows(rows)

	got, err := FindOrphans(context.Background(), db, "content_analytics", "content_id", "contents", "id")
	require.NoError(t, err)
	assert.Equal(t, []KeyCount{
		{Ref: "20000001-2000-2000-2000-200000000001", Occurrences: 2},
		{Ref: "20000002-2000-2000-2000-200000000002", Occurrences: 1},
	}, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindOrphans_Empty(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectQuery("SELECT c.`content_id` AS ref").
		WillReturnRows(sqlmock.NewRows([]string{"ref", "occurrences"}))

	got, err := FindOrphans(context.Background(), db, "content_analytics", "content_id", "contents", "id")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFindDuplicateKeys_Errors(t *testing.T) {
	t.Run("Query Error", func(t *testing.T) {
		db, mock := setupMockDB(t)
		mock.ExpectQuery("SELECT").WillReturnError(errors.New("table missing"))

		_, err := FindDuplicateKeys(context.Background(), db, "contents", "id")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "contents")
		assert.Contains(t, err.Error(), "table missing")
	})

	t.Run("Invalid Identifier", func(t *testing.T) {
		db, mock := setupMockDB(t)

		_, err := FindDuplicateKeys(context.Background(), db, "contents;--", "id")
		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
