package service

import (
	"fmt"
	"testing"

	"go-postgres-stockledger/models"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newReportDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Brand{},
		&models.UOM{},
		&models.Company{},
		&models.Warehouse{},
		&models.Location{},
		&models.Item{},
		&models.StockBalance{},
		&models.TransactionHeader{},
		&models.TransactionLine{},
		&models.StockMovement{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("decimal %q: %v", s, err)
	}
	return d
}

func seedReportData(t *testing.T, db *gorm.DB) (models.Item, models.Location) {
	t.Helper()

	uom := models.UOM{Name: "Pieces", Code: "PCS"}
	if err := db.Create(&uom).Error; err != nil {
		t.Fatalf("uom: %v", err)
	}
	wh := models.Warehouse{Name: "Main", Code: "MAIN"}
	if err := db.Create(&wh).Error; err != nil {
		t.Fatalf("warehouse: %v", err)
	}
	loc := models.Location{WarehouseID: wh.ID, Name: "Default", IsActive: true}
	if err := db.Create(&loc).Error; err != nil {
		t.Fatalf("location: %v", err)
	}

	min := dec(t, "5")
	item := models.Item{
		SKU:          "WID-001",
		Name:         "Widget",
		UOMID:        uom.ID,
		StandardCost: dec(t, "2.50"),
		MinStock:     &min,
		IsActive:     true,
	}
	if err := db.Create(&item).Error; err != nil {
		t.Fatalf("item: %v", err)
	}
	return item, loc
}

func TestStockReportFlagsLowStock(t *testing.T) {
	db := newReportDB(t)
	item, loc := seedReportData(t, db)

	if err := db.Create(&models.StockBalance{
		ItemID:     item.ID,
		LocationID: loc.ID,
		Quantity:   dec(t, "3"),
	}).Error; err != nil {
		t.Fatalf("balance: %v", err)
	}

	rows, err := StockReport(db, StockReportFilter{})
	if err != nil {
		t.Fatalf("StockReport: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("want 1 row, got %d", len(rows))
	}
	if rows[0].StockStatus != "LOW" {
		t.Fatalf("want LOW status for qty 3 < min 5, got %s", rows[0].StockStatus)
	}
	if rows[0].SKU != "WID-001" || rows[0].WarehouseName != "Main" {
		t.Fatalf("row: %+v", rows[0])
	}
}

func TestValuationReportMultipliesOnHandByCost(t *testing.T) {
	db := newReportDB(t)
	item, loc := seedReportData(t, db)

	if err := db.Create(&models.StockBalance{
		ItemID:     item.ID,
		LocationID: loc.ID,
		Quantity:   dec(t, "10"),
	}).Error; err != nil {
		t.Fatalf("balance: %v", err)
	}

	rows, total, err := ValuationReport(db)
	if err != nil {
		t.Fatalf("ValuationReport: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("want 1 row, got %d", len(rows))
	}
	if !rows[0].Value.Equal(dec(t, "25")) {
		t.Fatalf("value: want 25, got %s", rows[0].Value)
	}
	if !total.Equal(dec(t, "25")) {
		t.Fatalf("total: want 25, got %s", total)
	}
}

func TestLowStockReportUsesTotalAcrossLocations(t *testing.T) {
	db := newReportDB(t)
	item, loc := seedReportData(t, db)

	wh := models.Warehouse{Name: "Second", Code: "SEC"}
	if err := db.Create(&wh).Error; err != nil {
		t.Fatalf("warehouse: %v", err)
	}
	loc2 := models.Location{WarehouseID: wh.ID, Name: "Overflow", IsActive: true}
	if err := db.Create(&loc2).Error; err != nil {
		t.Fatalf("location: %v", err)
	}

	// 2 + 2 on hand across locations, min stock 5: still low.
	for _, l := range []models.Location{loc, loc2} {
		if err := db.Create(&models.StockBalance{
			ItemID:     item.ID,
			LocationID: l.ID,
			Quantity:   dec(t, "2"),
		}).Error; err != nil {
			t.Fatalf("balance: %v", err)
		}
	}

	rows, err := LowStockReport(db)
	if err != nil {
		t.Fatalf("LowStockReport: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("want 1 low-stock row, got %d", len(rows))
	}
	if !rows[0].OnHand.Equal(dec(t, "4")) {
		t.Fatalf("on hand: want 4, got %s", rows[0].OnHand)
	}

	// Push it above the threshold and the row disappears.
	if err := db.Model(&models.StockBalance{}).
		Where("location_id = ?", loc2.ID).
		UpdateColumn("quantity", dec(t, "4")).Error; err != nil {
		t.Fatalf("update: %v", err)
	}
	rows, err = LowStockReport(db)
	if err != nil {
		t.Fatalf("LowStockReport: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("want 0 rows, got %d", len(rows))
	}
}

func TestMovementReportTotals(t *testing.T) {
	db := newReportDB(t)
	item, loc := seedReportData(t, db)

	movements := []models.StockMovement{
		{ItemID: item.ID, ToLocationID: &loc.ID, QtyIn: dec(t, "10"), UnitCost: dec(t, "1"), HeaderID: 1, LineID: 1},
		{ItemID: item.ID, FromLocationID: &loc.ID, QtyOut: dec(t, "4"), UnitCost: dec(t, "1"), HeaderID: 2, LineID: 2},
	}
	for i := range movements {
		if err := db.Create(&movements[i]).Error; err != nil {
			t.Fatalf("movement: %v", err)
		}
	}

	totals, err := MovementReport(db, "", "")
	if err != nil {
		t.Fatalf("MovementReport: %v", err)
	}
	if !totals.TotalIn.Equal(dec(t, "10")) || !totals.TotalOut.Equal(dec(t, "4")) {
		t.Fatalf("totals: %+v", totals)
	}
	if totals.MovementCount != 2 {
		t.Fatalf("count: want 2, got %d", totals.MovementCount)
	}
}
