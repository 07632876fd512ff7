package ledger

import (
	"fmt"

	"github.com/arthurlfarjanes/PlanilhaGastos/internal/models"

	"gorm.io/gorm"
)

// DeleteCategory removes one of the user's categories. Transactions
// that referenced it survive with their category reference cleared;
// deletion never cascades to the rows. Both steps run in one store
// transaction.
func DeleteCategory(db *gorm.DB, userID, categoryID uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Transaction{}).
			Where("category_id = ? AND user_id = ?", categoryID, userID).
			Update("category_id", nil)
		if res.Error != nil {
			return fmt.Errorf("detach transactions: %w", res.Error)
		}

		res = tx.Where("id = ? AND user_id = ?", categoryID, userID).
			Delete(&models.Category{})
		if res.Error != nil {
			return fmt.Errorf("delete category: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}
