package ledger

import (
	"fmt"
	"time"

	"github.com/arthurlfarjanes/PlanilhaGastos/internal/models"

	"gorm.io/gorm"
)

// Window is an optional inclusive date range for the report. It only
// applies when both bounds are set; a one-sided range is ignored
// entirely, never applied as a single bound.
type Window struct {
	From time.Time
	To   time.Time
}

func (w Window) enabled() bool {
	return !w.From.IsZero() && !w.To.IsZero()
}

// CategoryTotal is one slice of the expense breakdown.
type CategoryTotal struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Summary is the revenue/expense comparison for one user. All monetary
// fields are decimal text with two fraction digits.
type Summary struct {
	TotalIncome  string          `json:"totalReceitas"`
	TotalExpense string          `json:"totalDespesas"`
	Balance      string          `json:"balanco"`
	ByCategory   []CategoryTotal `json:"gastosPorCategoria"`
}

// Report aggregates the user's transactions inside the window.
//
// Uncategorized expenses count toward TotalExpense and Balance but are
// absent from ByCategory; categories without a qualifying expense are
// omitted rather than listed with a zero.
func Report(db *gorm.DB, userID uint, w Window) (*Summary, error) {
	var totals []struct {
		Kind  string
		Cents int64
	}
	q := db.Model(&models.Transaction{}).
		Select("kind, SUM(amount_cents) AS cents").
		Where("user_id = ?", userID)
	if w.enabled() {
		q = q.Where("date BETWEEN ? AND ?", w.From, w.To)
	}
	if err := q.Group("kind").Scan(&totals).Error; err != nil {
		return nil, fmt.Errorf("sum by kind: %w", err)
	}

	var incomeCents, expenseCents int64
	for _, t := range totals {
		switch t.Kind {
		case models.KindIncome:
			incomeCents = t.Cents
		case models.KindExpense:
			expenseCents = t.Cents
		}
	}

	var cats []struct {
		Name  string
		Cents int64
	}
	cq := db.Model(&models.Transaction{}).
		Select("categories.name AS name, SUM(transactions.amount_cents) AS cents").
		Joins("JOIN categories ON categories.id = transactions.category_id").
		Where("transactions.user_id = ? AND transactions.kind = ?", userID, models.KindExpense)
	if w.enabled() {
		cq = cq.Where("transactions.date BETWEEN ? AND ?", w.From, w.To)
	}
	if err := cq.Group("categories.name").
		Order("categories.name ASC").
		Scan(&cats).Error; err != nil {
		return nil, fmt.Errorf("sum by category: %w", err)
	}

	byCategory := make([]CategoryTotal, 0, len(cats))
	for _, c := range cats {
		byCategory = append(byCategory, CategoryTotal{
			Name:  c.Name,
			Value: FormatCents(c.Cents),
		})
	}

	return &Summary{
		TotalIncome:  FormatCents(incomeCents),
		TotalExpense: FormatCents(expenseCents),
		Balance:      FormatCents(incomeCents - expenseCents),
		ByCategory:   byCategory,
	}, nil
}
