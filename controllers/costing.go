package controllers

import (
	"go-postgres-stockledger/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// recomputeStandardCost runs after every receipt line: when the item's total
// on-hand across all locations is positive, the incoming line's unit cost
// becomes the new standard cost. Issues never call this. The whole costing
// rule lives in this function.
func recomputeStandardCost(tx *gorm.DB, itemID uint, incoming decimal.Decimal) error {
	var row struct {
		Total decimal.Decimal
	}
	if err := tx.Model(&models.StockBalance{}).
		Select("COALESCE(SUM(quantity), 0) AS total").
		Where("item_id = ?", itemID).
		Scan(&row).Error; err != nil {
		return err
	}
	if !row.Total.IsPositive() {
		return nil
	}
	return tx.Model(&models.Item{}).
		Where("id = ?", itemID).
		UpdateColumn("standard_cost", incoming).Error
}
