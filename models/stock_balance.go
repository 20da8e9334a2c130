package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// StockBalance holds current on-hand quantity per (item, location, lot).
// Rows are created lazily on first receipt and mutated only through atomic
// quantity = quantity +- delta updates inside posting transactions, so the
// quantity can never go negative. The partial unique index keeps one row
// per (item, location) while lot is null; two first receipts racing to
// create the row resolve through the posting retry on unique violation.
type StockBalance struct {
	gorm.Model
	ItemID uint `gorm:"uniqueIndex:idx_balance_item_loc,priority:1,where:lot IS NULL;not null" json:"item_id"`
	Item   Item `gorm:"foreignKey:ItemID" json:"item"`

	LocationID uint     `gorm:"uniqueIndex:idx_balance_item_loc,priority:2;not null" json:"location_id"`
	Location   Location `gorm:"foreignKey:LocationID" json:"location"`

	Lot *string `gorm:"size:80" json:"lot"`

	Quantity decimal.Decimal `gorm:"type:decimal(20,4);not null;default:0" json:"quantity"`
}
