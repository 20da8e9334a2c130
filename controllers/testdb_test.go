package controllers

import (
	"fmt"
	"testing"

	"go-postgres-stockledger/audit"
	"go-postgres-stockledger/config"
	"go-postgres-stockledger/models"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a fresh in-memory database, migrates the schema and wires
// it into the package globals the handlers read.
func newTestDB(t *testing.T) *gorm.DB {
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
		&models.Permission{},
		&models.UserPermission{},
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
		&models.AuditLog{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	config.DB = db
	audit.Default = audit.NopSink{}
	return db
}

type fixtures struct {
	User     models.User
	Location models.Location
	Item     models.Item
}

func seedFixtures(t *testing.T, db *gorm.DB) fixtures {
	t.Helper()

	user := models.User{Username: "tester", FullName: "Tester", Role: models.RoleAdmin, IsActive: true}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}

	uom := models.UOM{Name: "Pieces", Code: "PCS"}
	if err := db.Create(&uom).Error; err != nil {
		t.Fatalf("seed uom: %v", err)
	}

	wh := models.Warehouse{Name: "Main", Code: "MAIN"}
	if err := db.Create(&wh).Error; err != nil {
		t.Fatalf("seed warehouse: %v", err)
	}
	loc := models.Location{WarehouseID: wh.ID, Name: "Default", Code: "MAIN-01", IsActive: true}
	if err := db.Create(&loc).Error; err != nil {
		t.Fatalf("seed location: %v", err)
	}

	item := models.Item{SKU: "WID-001", Name: "Widget", UOMID: uom.ID, IsActive: true}
	if err := db.Create(&item).Error; err != nil {
		t.Fatalf("seed item: %v", err)
	}

	return fixtures{User: user, Location: loc, Item: item}
}

func seedBalance(t *testing.T, db *gorm.DB, itemID, locationID uint, qty string) models.StockBalance {
	t.Helper()
	bal := models.StockBalance{
		ItemID:     itemID,
		LocationID: locationID,
		Quantity:   mustDecimal(t, qty),
	}
	if err := db.Create(&bal).Error; err != nil {
		t.Fatalf("seed balance: %v", err)
	}
	return bal
}

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("decimal %q: %v", s, err)
	}
	return d
}

func assertDecimalEqual(t *testing.T, want, got decimal.Decimal, label string) {
	t.Helper()
	if !want.Equal(got) {
		t.Fatalf("%s: want %s, got %s", label, want, got)
	}
}
