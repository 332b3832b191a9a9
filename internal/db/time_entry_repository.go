package db

import (
	"time"

	"github.com/lunover/attendly/internal/models"
	"gorm.io/gorm"
)

type TimeEntryRepository struct {
	database *gorm.DB
}

func NewTimeEntryRepository(database *gorm.DB) *TimeEntryRepository {
	return &TimeEntryRepository{database: database}
}

// RangeInfo describes what the cache holds for one exact range key.
type RangeInfo struct {
	Exists     bool
	EntryCount int64
	CachedAt   *time.Time
}

// ReplaceForRange swaps the cached entry set for an exact range key: delete
// then bulk insert, inside a single transaction so a reader never sees the
// range half-written.
func (repo *TimeEntryRepository) ReplaceForRange(entries []models.CachedTimeEntry, rangeStart string, rangeEnd string) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("range_start = ? AND range_end = ?", rangeStart, rangeEnd).
			Delete(&models.CachedTimeEntry{}).Error; err != nil {
			return err
		}
		if len(entries) == 0 {
			return nil
		}
		return tx.CreateInBatches(entries, 200).Error
	})
}

func (repo *TimeEntryRepository) ListByRange(rangeStart string, rangeEnd string) ([]models.CachedTimeEntry, error) {
	entries := make([]models.CachedTimeEntry, 0)
	if err := repo.database.
		Where("range_start = ? AND range_end = ?", rangeStart, rangeEnd).
		Order("spent_date ASC, entry_id ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (repo *TimeEntryRepository) DeleteRange(rangeStart string, rangeEnd string) error {
	return repo.database.
		Where("range_start = ? AND range_end = ?", rangeStart, rangeEnd).
		Delete(&models.CachedTimeEntry{}).Error
}

func (repo *TimeEntryRepository) RangeInfo(rangeStart string, rangeEnd string) (RangeInfo, error) {
	var row struct {
		EntryCount int64      `gorm:"column:entry_count"`
		CachedAt   *time.Time `gorm:"column:cached_at"`
	}
	if err := repo.database.Model(&models.CachedTimeEntry{}).
		Select("count(*) AS entry_count, max(cached_at) AS cached_at").
		Where("range_start = ? AND range_end = ?", rangeStart, rangeEnd).
		Scan(&row).Error; err != nil {
		return RangeInfo{}, err
	}
	return RangeInfo{
		Exists:     row.EntryCount > 0,
		EntryCount: row.EntryCount,
		CachedAt:   row.CachedAt,
	}, nil
}

// SetOvertime flips the overtime flag on the single row matched by the
// composite (entry, range) key. Matching zero rows is not an error: the
// entry simply is not cached under that key.
func (repo *TimeEntryRepository) SetOvertime(entryID int64, rangeStart string, rangeEnd string, overtime bool) error {
	return repo.database.Model(&models.CachedTimeEntry{}).
		Where("entry_id = ? AND range_start = ? AND range_end = ?", entryID, rangeStart, rangeEnd).
		Update("overtime", overtime).Error
}
