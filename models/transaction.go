package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	DocTypeGRN   = "GRN"
	DocTypeIssue = "ISSUE"

	StatusPosted = "POSTED"
)

// TransactionHeader groups one posted document (GRN or ISSUE) and owns its
// lines and the ledger entries created alongside them.
type TransactionHeader struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	DocNo   string `gorm:"uniqueIndex;size:40;not null" json:"doc_no"`
	DocType string `gorm:"size:10;index;not null"       json:"doc_type"` // GRN | ISSUE
	DocSeq  uint   `gorm:"not null"                     json:"doc_seq"`
	Status  string `gorm:"size:10;default:POSTED"      json:"status"`

	CompanyID *uint    `json:"company_id"`
	Company   *Company `gorm:"foreignKey:CompanyID" json:"company,omitempty"`

	PostedByID uint      `gorm:"index;not null" json:"posted_by_id"`
	PostedBy   User      `gorm:"foreignKey:PostedByID" json:"posted_by"`
	PostedAt   time.Time `gorm:"not null" json:"posted_at"`

	Lines []TransactionLine `gorm:"foreignKey:HeaderID" json:"lines"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TransactionLine is immutable after posting.
type TransactionLine struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	HeaderID uint `gorm:"index;not null" json:"header_id"`

	ItemID uint `gorm:"index;not null" json:"item_id"`
	Item   Item `gorm:"foreignKey:ItemID" json:"item"`

	UOMID uint `gorm:"not null" json:"uom_id"`
	UOM   UOM  `gorm:"foreignKey:UOMID" json:"uom"`

	LocationID uint     `gorm:"index;not null" json:"location_id"`
	Location   Location `gorm:"foreignKey:LocationID" json:"location"`

	Qty      decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"qty"`
	UnitCost decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"unit_cost"`

	CreatedAt time.Time `json:"created_at"`
}
