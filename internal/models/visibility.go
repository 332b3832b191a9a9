package models

import "time"

// UserVisibility hides a user from the attendance table. Rows exist only
// for users someone toggled; a missing row means visible.
type UserVisibility struct {
	ID        uint      `gorm:"primaryKey"`
	Email     string    `gorm:"not null;uniqueIndex"`
	Visible   bool      `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (UserVisibility) TableName() string {
	return "user_visibility"
}
