package ledger

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/arthurlfarjanes/PlanilhaGastos/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testDB opens a fresh in-memory sqlite database with the full schema.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := db.AutoMigrate(&models.User{}, &models.Category{}, &models.Transaction{}); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username string) uint {
	t.Helper()
	user := models.User{Username: username, PasswordHash: "x"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed user %s: %v", username, err)
	}
	return user.ID
}

func seedCategory(t *testing.T, db *gorm.DB, userID uint, name string) uint {
	t.Helper()
	cat := models.Category{UserID: userID, Name: name}
	if err := db.Create(&cat).Error; err != nil {
		t.Fatalf("seed category %s: %v", name, err)
	}
	return cat.ID
}

func seedTransaction(t *testing.T, db *gorm.DB, userID uint, desc string, cents int64, kind string, date time.Time, categoryID *uint) uint {
	t.Helper()
	tx := models.Transaction{
		UserID:      userID,
		Description: desc,
		AmountCents: cents,
		Kind:        kind,
		Date:        date,
		CategoryID:  categoryID,
	}
	if err := db.Create(&tx).Error; err != nil {
		t.Fatalf("seed transaction %s: %v", desc, err)
	}
	return tx.ID
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ptr(v uint) *uint { return &v }
