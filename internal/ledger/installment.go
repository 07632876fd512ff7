package ledger

import (
	"fmt"
	"time"

	"github.com/arthurlfarjanes/PlanilhaGastos/internal/models"

	"gorm.io/gorm"
)

// InstallmentPlan is one purchase intent to be expanded into monthly
// expense rows. FirstDate is a UTC calendar date.
type InstallmentPlan struct {
	UserID      uint
	Description string
	TotalCents  int64
	CategoryID  uint
	FirstDate   time.Time
	Count       int
}

// Validate checks the plan before any store access.
func (p InstallmentPlan) Validate() error {
	if p.Description == "" {
		return ValidationError("description is required")
	}
	if p.TotalCents <= 0 {
		return ValidationError("amount must be positive")
	}
	if p.CategoryID == 0 {
		return ValidationError("category is required")
	}
	if p.FirstDate.IsZero() {
		return ValidationError("date is required")
	}
	if p.Count < 2 {
		return ValidationError("installment count must be at least 2")
	}
	return nil
}

// Installments computes the dated rows without touching the store.
//
// Each row gets total/count rounded to whole cents (see SplitEven; the
// rounding drift against the total is deliberately left in place) and a
// date advanced by i-1 calendar months. Month-end overflow follows
// AddDate normalization: 2024-01-31 plus one month lands on 2024-03-02.
func (p InstallmentPlan) Installments() []models.Transaction {
	per := SplitEven(p.TotalCents, p.Count)
	rows := make([]models.Transaction, 0, p.Count)
	for i := 1; i <= p.Count; i++ {
		categoryID := p.CategoryID
		rows = append(rows, models.Transaction{
			UserID:      p.UserID,
			Description: fmt.Sprintf("%s (%d/%d)", p.Description, i, p.Count),
			AmountCents: per,
			Kind:        models.KindExpense,
			Date:        p.FirstDate.AddDate(0, i-1, 0),
			CategoryID:  &categoryID,
		})
	}
	return rows
}

// Expand validates the plan, verifies that the category belongs to the
// plan's user and inserts every installment in one store transaction.
// A failure on any insert rolls back the whole batch.
func Expand(db *gorm.DB, plan InstallmentPlan) ([]models.Transaction, error) {
	if err := plan.Validate(); err != nil {
		return nil, err
	}

	rows := plan.Installments()
	err := db.Transaction(func(tx *gorm.DB) error {
		var owned int64
		if err := tx.Model(&models.Category{}).
			Where("id = ? AND user_id = ?", plan.CategoryID, plan.UserID).
			Count(&owned).Error; err != nil {
			return fmt.Errorf("check category: %w", err)
		}
		if owned == 0 {
			return ErrNotFound
		}

		for i := range rows {
			if err := tx.Create(&rows[i]).Error; err != nil {
				return fmt.Errorf("insert installment %d/%d: %w", i+1, len(rows), err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}
