package models

import "time"

// Holiday marks one calendar date as non-working. Date is the unique key,
// stored as an ISO YYYY-MM-DD string.
type Holiday struct {
	ID        uint   `gorm:"primaryKey"`
	Date      string `gorm:"not null;uniqueIndex"`
	Name      string
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}
