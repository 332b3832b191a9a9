package db

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/lunover/attendly/internal/models"
	"gorm.io/gorm"
)

func newTestDatabase(t *testing.T) *gorm.DB {
	t.Helper()

	databasePath := filepath.Join(t.TempDir(), "attendly-test.db")
	database, err := OpenSQLite(databasePath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	return database
}

func makeCachedEntry(entryID int64, spentDate string, userID int64, hours float64, rangeStart string, rangeEnd string) models.CachedTimeEntry {
	return models.CachedTimeEntry{
		EntryID:     entryID,
		SpentDate:   spentDate,
		UserID:      userID,
		UserName:    "Test User",
		ProjectID:   1,
		ProjectName: "Internal",
		ClientID:    1,
		ClientName:  "Acme",
		TaskID:      1,
		TaskName:    "Development",
		Hours:       hours,
		Billable:    true,
		RangeStart:  rangeStart,
		RangeEnd:    rangeEnd,
		CachedAt:    time.Now(),
	}
}
