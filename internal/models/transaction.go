package models

import "time"

// Transaction kinds as they appear on the wire.
const (
	KindIncome  = "receita"
	KindExpense = "despesa"
)

// Transaction is a single dated income or expense record owned by one
// user. Amounts are stored in cents to avoid float drift; the stored
// value is always positive and the sign is implied by Kind.
//
// CategoryID is meaningful only for expenses and is always nil for
// income rows. Deleting a category sets the reference to NULL, it never
// removes the rows.
type Transaction struct {
	ID          uint      `gorm:"primaryKey"`
	UserID      uint      `gorm:"index;not null"`
	Description string    `gorm:"size:255;not null"`
	AmountCents int64     `gorm:"not null"`
	Kind        string    `gorm:"size:16;index;not null"`
	Date        time.Time `gorm:"index;not null"` // UTC calendar date, no time-of-day
	CategoryID  *uint     `gorm:"index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Category *Category `gorm:"constraint:OnDelete:SET NULL"`
}
