package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockMovement is the append-only quantity ledger, one row per posted line.
// Exactly one of QtyIn / QtyOut is nonzero. Rows are never updated or
// deleted; they are the audit trail of record for stock history.
type StockMovement struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	ItemID uint `gorm:"index;not null" json:"item_id"`
	Item   Item `gorm:"foreignKey:ItemID" json:"item"`

	FromLocationID *uint     `gorm:"index" json:"from_location_id"`
	FromLocation   *Location `gorm:"foreignKey:FromLocationID" json:"from_location,omitempty"`

	ToLocationID *uint     `gorm:"index" json:"to_location_id"`
	ToLocation   *Location `gorm:"foreignKey:ToLocationID" json:"to_location,omitempty"`

	QtyIn  decimal.Decimal `gorm:"type:decimal(20,4);not null;default:0" json:"qty_in"`
	QtyOut decimal.Decimal `gorm:"type:decimal(20,4);not null;default:0" json:"qty_out"`

	// UnitCost is the cost snapshot at posting time, not a live reference
	// to the item's standard cost.
	UnitCost decimal.Decimal `gorm:"type:decimal(20,4);not null;default:0" json:"unit_cost"`

	HeaderID uint              `gorm:"index;not null" json:"header_id"`
	Header   TransactionHeader `gorm:"foreignKey:HeaderID" json:"-"`
	LineID   uint              `gorm:"index;not null" json:"line_id"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
