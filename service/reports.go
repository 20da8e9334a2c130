package service

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"go-postgres-stockledger/models"
)

// ===== Report row DTOs =====

type StockReportRow struct {
	ItemID        uint            `json:"item_id"`
	SKU           string          `json:"sku"`
	ItemName      string          `json:"item_name"`
	UOM           string          `json:"uom"`
	LocationID    uint            `json:"location_id"`
	LocationName  string          `json:"location_name"`
	WarehouseName string          `json:"warehouse_name"`
	Quantity      decimal.Decimal `json:"quantity"`
	MinStock      decimal.Decimal `json:"min_stock"`
	StockStatus   string          `json:"stock_status"`
}

type ValuationRow struct {
	ItemID       uint            `json:"item_id"`
	SKU          string          `json:"sku"`
	ItemName     string          `json:"item_name"`
	OnHand       decimal.Decimal `json:"on_hand"`
	StandardCost decimal.Decimal `json:"standard_cost"`
	Value        decimal.Decimal `json:"value"`
}

type LowStockRow struct {
	ItemID   uint            `json:"item_id"`
	SKU      string          `json:"sku"`
	ItemName string          `json:"item_name"`
	OnHand   decimal.Decimal `json:"on_hand"`
	MinStock decimal.Decimal `json:"min_stock"`
}

type MovementTotals struct {
	TotalIn       decimal.Decimal `json:"total_in"`
	TotalOut      decimal.Decimal `json:"total_out"`
	MovementCount int64           `json:"movement_count"`
}

type StockReportFilter struct {
	WarehouseID uint
	LocationID  uint
	CategoryID  uint
}

// ===== Queries =====

func StockReport(db *gorm.DB, f StockReportFilter) ([]StockReportRow, error) {
	q := db.Model(&models.StockBalance{}).
		Select(`stock_balances.item_id,
			items.sku,
			items.name AS item_name,
			uoms.code AS uom,
			stock_balances.location_id,
			locations.name AS location_name,
			warehouses.name AS warehouse_name,
			stock_balances.quantity,
			COALESCE(items.min_stock, 0) AS min_stock`).
		Joins("JOIN items ON items.id = stock_balances.item_id").
		Joins("JOIN uoms ON uoms.id = items.uom_id").
		Joins("JOIN locations ON locations.id = stock_balances.location_id").
		Joins("JOIN warehouses ON warehouses.id = locations.warehouse_id")

	if f.WarehouseID > 0 {
		q = q.Where("locations.warehouse_id = ?", f.WarehouseID)
	}
	if f.LocationID > 0 {
		q = q.Where("stock_balances.location_id = ?", f.LocationID)
	}
	if f.CategoryID > 0 {
		q = q.Where("items.category_id = ?", f.CategoryID)
	}

	var rows []StockReportRow
	if err := q.Order("items.sku, stock_balances.location_id").Scan(&rows).Error; err != nil {
		return nil, err
	}
	for i := range rows {
		rows[i].StockStatus = "OK"
		if rows[i].MinStock.IsPositive() && rows[i].Quantity.LessThan(rows[i].MinStock) {
			rows[i].StockStatus = "LOW"
		}
	}
	return rows, nil
}

func ValuationReport(db *gorm.DB) ([]ValuationRow, decimal.Decimal, error) {
	var rows []ValuationRow
	err := db.Model(&models.Item{}).
		Select(`items.id AS item_id,
			items.sku,
			items.name AS item_name,
			COALESCE(SUM(stock_balances.quantity), 0) AS on_hand,
			items.standard_cost`).
		Joins("LEFT JOIN stock_balances ON stock_balances.item_id = items.id AND stock_balances.deleted_at IS NULL").
		Group("items.id, items.sku, items.name, items.standard_cost").
		Order("items.sku").
		Scan(&rows).Error
	if err != nil {
		return nil, decimal.Zero, err
	}

	total := decimal.Zero
	for i := range rows {
		rows[i].Value = rows[i].OnHand.Mul(rows[i].StandardCost)
		total = total.Add(rows[i].Value)
	}
	return rows, total, nil
}

func LowStockReport(db *gorm.DB) ([]LowStockRow, error) {
	var rows []LowStockRow
	err := db.Model(&models.Item{}).
		Select(`items.id AS item_id,
			items.sku,
			items.name AS item_name,
			COALESCE(SUM(stock_balances.quantity), 0) AS on_hand,
			items.min_stock`).
		Joins("LEFT JOIN stock_balances ON stock_balances.item_id = items.id AND stock_balances.deleted_at IS NULL").
		Where("items.min_stock IS NOT NULL").
		Group("items.id, items.sku, items.name, items.min_stock").
		Having("COALESCE(SUM(stock_balances.quantity), 0) < items.min_stock").
		Order("items.sku").
		Scan(&rows).Error
	return rows, err
}

func MovementReport(db *gorm.DB, from, to string) (MovementTotals, error) {
	q := db.Model(&models.StockMovement{})
	if from != "" {
		q = q.Where("created_at >= ?", from)
	}
	if to != "" {
		q = q.Where("created_at < ?", to)
	}

	var totals MovementTotals
	if err := q.
		Select("COALESCE(SUM(qty_in), 0) AS total_in, COALESCE(SUM(qty_out), 0) AS total_out, COUNT(*) AS movement_count").
		Scan(&totals).Error; err != nil {
		return MovementTotals{}, err
	}
	return totals, nil
}
