package ledger

import (
	"testing"
	"time"

	"github.com/arthurlfarjanes/PlanilhaGastos/internal/models"

	"gorm.io/gorm"
)

// seedReportFixture: alice has 5000.00 + 1200.00 income, expenses of
// 350.00 (Mercado), 80.00 (Mercado), 120.00 (Lazer) and an
// uncategorized 45.00. Bob's rows must never leak in.
func seedReportFixture(t *testing.T, db *gorm.DB) (alice uint) {
	t.Helper()
	alice = seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	mercado := seedCategory(t, db, alice, "Mercado")
	lazer := seedCategory(t, db, alice, "Lazer")
	bobCat := seedCategory(t, db, bob, "Mercado")

	seedTransaction(t, db, alice, "Salario", 500000, models.KindIncome, date(2024, time.May, 1), nil)
	seedTransaction(t, db, alice, "Freela", 120000, models.KindIncome, date(2024, time.June, 5), nil)
	seedTransaction(t, db, alice, "Compras", 35000, models.KindExpense, date(2024, time.May, 10), ptr(mercado))
	seedTransaction(t, db, alice, "Feira", 8000, models.KindExpense, date(2024, time.June, 2), ptr(mercado))
	seedTransaction(t, db, alice, "Cinema", 12000, models.KindExpense, date(2024, time.May, 20), ptr(lazer))
	seedTransaction(t, db, alice, "Avulso", 4500, models.KindExpense, date(2024, time.May, 25), nil)

	seedTransaction(t, db, bob, "Salario", 999900, models.KindIncome, date(2024, time.May, 1), nil)
	seedTransaction(t, db, bob, "Compras", 77700, models.KindExpense, date(2024, time.May, 2), ptr(bobCat))
	return alice
}

func findCategory(s *Summary, name string) (string, bool) {
	for _, c := range s.ByCategory {
		if c.Name == name {
			return c.Value, true
		}
	}
	return "", false
}

func TestReport_Unfiltered(t *testing.T) {
	db := testDB(t)
	alice := seedReportFixture(t, db)

	s, err := Report(db, alice, Window{})
	if err != nil {
		t.Fatalf("Report() error = %v", err)
	}

	if s.TotalIncome != "6200.00" {
		t.Errorf("TotalIncome = %q, want 6200.00", s.TotalIncome)
	}
	// uncategorized 45.00 counts toward the total
	if s.TotalExpense != "595.00" {
		t.Errorf("TotalExpense = %q, want 595.00", s.TotalExpense)
	}
	if s.Balance != "5605.00" {
		t.Errorf("Balance = %q, want 5605.00", s.Balance)
	}

	if len(s.ByCategory) != 2 {
		t.Fatalf("ByCategory = %+v, want Mercado and Lazer only", s.ByCategory)
	}
	if v, ok := findCategory(s, "Mercado"); !ok || v != "430.00" {
		t.Errorf("Mercado = %q (%v), want 430.00", v, ok)
	}
	if v, ok := findCategory(s, "Lazer"); !ok || v != "120.00" {
		t.Errorf("Lazer = %q (%v), want 120.00", v, ok)
	}
}

func TestReport_Windowed(t *testing.T) {
	db := testDB(t)
	alice := seedReportFixture(t, db)

	s, err := Report(db, alice, Window{
		From: date(2024, time.May, 1),
		To:   date(2024, time.May, 31),
	})
	if err != nil {
		t.Fatalf("Report() error = %v", err)
	}

	if s.TotalIncome != "5000.00" {
		t.Errorf("TotalIncome = %q, want 5000.00", s.TotalIncome)
	}
	if s.TotalExpense != "515.00" {
		t.Errorf("TotalExpense = %q, want 515.00", s.TotalExpense)
	}
	if s.Balance != "4485.00" {
		t.Errorf("Balance = %q, want 4485.00", s.Balance)
	}
	// June's Feira falls outside the window
	if v, ok := findCategory(s, "Mercado"); !ok || v != "350.00" {
		t.Errorf("Mercado = %q (%v), want 350.00", v, ok)
	}
}

// A one-sided range is ignored entirely, never applied as one bound.
func TestReport_OneSidedWindowIgnored(t *testing.T) {
	db := testDB(t)
	alice := seedReportFixture(t, db)

	unfiltered, err := Report(db, alice, Window{})
	if err != nil {
		t.Fatalf("Report() error = %v", err)
	}
	oneSided, err := Report(db, alice, Window{From: date(2024, time.June, 1)})
	if err != nil {
		t.Fatalf("Report() error = %v", err)
	}

	if oneSided.TotalIncome != unfiltered.TotalIncome ||
		oneSided.TotalExpense != unfiltered.TotalExpense ||
		oneSided.Balance != unfiltered.Balance {
		t.Errorf("one-sided window changed totals: %+v vs %+v", oneSided, unfiltered)
	}
}

func TestReport_EmptyLedger(t *testing.T) {
	db := testDB(t)
	alice := seedUser(t, db, "alice")

	s, err := Report(db, alice, Window{})
	if err != nil {
		t.Fatalf("Report() error = %v", err)
	}
	if s.TotalIncome != "0.00" || s.TotalExpense != "0.00" || s.Balance != "0.00" {
		t.Errorf("empty ledger totals = %s/%s/%s, want 0.00 each",
			s.TotalIncome, s.TotalExpense, s.Balance)
	}
	if len(s.ByCategory) != 0 {
		t.Errorf("ByCategory = %+v, want empty", s.ByCategory)
	}
}

func TestReport_NegativeBalance(t *testing.T) {
	db := testDB(t)
	alice := seedUser(t, db, "alice")
	cat := seedCategory(t, db, alice, "Contas")
	seedTransaction(t, db, alice, "Aluguel", 150000, models.KindExpense, date(2024, time.May, 5), ptr(cat))
	seedTransaction(t, db, alice, "Bico", 50000, models.KindIncome, date(2024, time.May, 6), nil)

	s, err := Report(db, alice, Window{})
	if err != nil {
		t.Fatalf("Report() error = %v", err)
	}
	if s.Balance != "-1000.00" {
		t.Errorf("Balance = %q, want -1000.00", s.Balance)
	}
}

func TestReport_OwnershipIsolation(t *testing.T) {
	db := testDB(t)
	alice := seedReportFixture(t, db)

	s, err := Report(db, alice, Window{})
	if err != nil {
		t.Fatalf("Report() error = %v", err)
	}
	// bob's 9999.00 income and 777.00 expense must not appear
	if s.TotalIncome == "16199.00" || s.TotalExpense == "1372.00" {
		t.Fatalf("report leaked another user's rows: %+v", s)
	}
	if s.TotalIncome != "6200.00" {
		t.Errorf("TotalIncome = %q, want 6200.00", s.TotalIncome)
	}
}

// Zero-expense categories are omitted, not returned as zero entries.
func TestReport_ZeroExpenseCategoryOmitted(t *testing.T) {
	db := testDB(t)
	alice := seedUser(t, db, "alice")
	seedCategory(t, db, alice, "Vazia")
	used := seedCategory(t, db, alice, "Usada")
	seedTransaction(t, db, alice, "Compra", 1000, models.KindExpense, date(2024, time.May, 1), ptr(used))

	s, err := Report(db, alice, Window{})
	if err != nil {
		t.Fatalf("Report() error = %v", err)
	}
	if len(s.ByCategory) != 1 || s.ByCategory[0].Name != "Usada" {
		t.Errorf("ByCategory = %+v, want only Usada", s.ByCategory)
	}
}
