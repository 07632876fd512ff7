package ledger

import (
	"fmt"
	"strings"
	"time"

	"github.com/arthurlfarjanes/PlanilhaGastos/internal/models"

	"gorm.io/gorm"
)

// Filter is the optional predicate set for listing a user's
// transactions. Zero values mean "not present"; present predicates are
// ANDed together.
type Filter struct {
	Kind        string
	CategoryID  uint
	DateFrom    time.Time
	DateTo      time.Time
	Description string // case-insensitive substring match
}

// Row is one listed transaction with its category name joined in.
// CategoryName is nil for uncategorized rows.
type Row struct {
	models.Transaction
	CategoryName *string
}

// Apply narrows q to the owner's rows plus every present predicate.
// The owner scope comes first; a filter can only ever shrink the
// user's own set, never reach into another user's.
func (f Filter) Apply(q *gorm.DB, userID uint) *gorm.DB {
	q = q.Where("transactions.user_id = ?", userID)
	if f.Kind != "" {
		q = q.Where("transactions.kind = ?", f.Kind)
	}
	if f.CategoryID != 0 {
		q = q.Where("transactions.category_id = ?", f.CategoryID)
	}
	if !f.DateFrom.IsZero() {
		q = q.Where("transactions.date >= ?", f.DateFrom)
	}
	if !f.DateTo.IsZero() {
		q = q.Where("transactions.date <= ?", f.DateTo)
	}
	if f.Description != "" {
		q = q.Where("LOWER(transactions.description) LIKE ?",
			"%"+strings.ToLower(f.Description)+"%")
	}
	return q
}

// List returns the user's transactions matching the filter, most
// recent date first, ties broken by newest id. An empty filter returns
// the whole set in that order.
func List(db *gorm.DB, userID uint, f Filter) ([]Row, error) {
	var rows []Row
	q := f.Apply(db.Model(&models.Transaction{}), userID).
		Select("transactions.*, categories.name AS category_name").
		Joins("LEFT JOIN categories ON categories.id = transactions.category_id").
		Order("transactions.date DESC, transactions.id DESC")
	if err := q.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return rows, nil
}
