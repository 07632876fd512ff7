package models

import "time"

// Category is a user-owned expense category. Names are not unique per
// user; duplicates are allowed.
type Category struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"index;not null"`
	Name      string `gorm:"size:64;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
