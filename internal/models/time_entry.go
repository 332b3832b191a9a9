package models

import "time"

// CachedTimeEntry is one remote time entry mirrored into the local cache.
// The same entry may be cached under several range keys; each copy carries
// its own overtime flag.
type CachedTimeEntry struct {
	ID          uint   `gorm:"primaryKey"`
	EntryID     int64  `gorm:"not null;uniqueIndex:uidx_entry_range"`
	SpentDate   string `gorm:"not null;index:idx_spent_date"`
	UserID      int64  `gorm:"not null;index:idx_user_id"`
	UserName    string `gorm:"not null"`
	ProjectID   int64  `gorm:"not null"`
	ProjectName string `gorm:"not null"`
	ClientID    int64  `gorm:"not null"`
	ClientName  string `gorm:"not null"`
	TaskID      int64  `gorm:"not null"`
	TaskName    string `gorm:"not null"`
	Notes       string
	Hours       float64   `gorm:"not null"`
	Billable    bool      `gorm:"not null;default:false"`
	Overtime    bool      `gorm:"not null;default:false"`
	RangeStart  string    `gorm:"not null;uniqueIndex:uidx_entry_range;index:idx_range"`
	RangeEnd    string    `gorm:"not null;uniqueIndex:uidx_entry_range;index:idx_range"`
	CachedAt    time.Time `gorm:"not null"`
}

func (CachedTimeEntry) TableName() string {
	return "time_entries_cache"
}
