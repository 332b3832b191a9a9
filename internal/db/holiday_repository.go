package db

import (
	"errors"
	"time"

	"github.com/lunover/attendly/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type HolidayRepository struct {
	database *gorm.DB
}

func NewHolidayRepository(database *gorm.DB) *HolidayRepository {
	return &HolidayRepository{database: database}
}

func (repo *HolidayRepository) ListAll() ([]models.Holiday, error) {
	holidays := make([]models.Holiday, 0)
	if err := repo.database.Order("date ASC").Find(&holidays).Error; err != nil {
		return nil, err
	}
	return holidays, nil
}

// ListRangeDates returns the holiday dates falling inside [from, to] as ISO
// strings, ordered ascending.
func (repo *HolidayRepository) ListRangeDates(from string, to string) ([]string, error) {
	holidays := make([]models.Holiday, 0)
	if err := repo.database.
		Select("date").
		Where("date >= ? AND date <= ?", from, to).
		Order("date ASC").
		Find(&holidays).Error; err != nil {
		return nil, err
	}

	dates := make([]string, 0, len(holidays))
	for _, holiday := range holidays {
		dates = append(dates, holiday.Date)
	}
	return dates, nil
}

func (repo *HolidayRepository) Exists(date string) (bool, error) {
	var matched int64
	if err := repo.database.Model(&models.Holiday{}).
		Where("date = ?", date).
		Count(&matched).Error; err != nil {
		return false, err
	}
	return matched > 0, nil
}

// Upsert adds or renames a holiday. When the row already exists its
// created_at survives; only name and updated_at change.
func (repo *HolidayRepository) Upsert(date string, name string) error {
	now := time.Now()

	var existing models.Holiday
	createdAt := now
	err := repo.database.Select("created_at").Where("date = ?", date).First(&existing).Error
	if err == nil {
		createdAt = existing.CreatedAt
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	holiday := models.Holiday{
		Date:      date,
		Name:      name,
		CreatedAt: createdAt,
		UpdatedAt: now,
	}
	return repo.database.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "updated_at"}),
	}).Create(&holiday).Error
}

func (repo *HolidayRepository) Remove(date string) error {
	return repo.database.Where("date = ?", date).Delete(&models.Holiday{}).Error
}

// Toggle flips the holiday state of a date and reports the new state.
func (repo *HolidayRepository) Toggle(date string, name string) (bool, error) {
	exists, err := repo.Exists(date)
	if err != nil {
		return false, err
	}
	if exists {
		if err := repo.Remove(date); err != nil {
			return false, err
		}
		return false, nil
	}
	if err := repo.Upsert(date, name); err != nil {
		return false, err
	}
	return true, nil
}
