package db

import "gorm.io/gorm"

type Repositories struct {
	TimeEntries *TimeEntryRepository
	Holidays    *HolidayRepository
	Visibility  *VisibilityRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		TimeEntries: NewTimeEntryRepository(database),
		Holidays:    NewHolidayRepository(database),
		Visibility:  NewVisibilityRepository(database),
	}
}
