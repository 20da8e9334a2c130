package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Item struct {
	gorm.Model
	SKU  string `gorm:"uniqueIndex;size:80;not null" json:"sku"`
	Name string `gorm:"size:180;not null"            json:"name"`

	CategoryID *uint     `json:"category_id"`
	Category   *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`

	BrandID *uint  `json:"brand_id"`
	Brand   *Brand `gorm:"foreignKey:BrandID" json:"brand,omitempty"`

	UOMID uint `gorm:"not null" json:"uom_id"`
	UOM   UOM  `gorm:"foreignKey:UOMID" json:"uom"`

	SupplierID *uint    `json:"supplier_id"`
	Supplier   *Company `gorm:"foreignKey:SupplierID" json:"supplier,omitempty"`

	// StandardCost is owned by the costing recompute on receipt posting;
	// item updates never touch it.
	StandardCost decimal.Decimal  `gorm:"type:decimal(20,4);default:0" json:"standard_cost"`
	MinStock     *decimal.Decimal `gorm:"type:decimal(20,4)"           json:"min_stock"`
	IsActive     bool             `gorm:"default:true"                 json:"is_active"`
}
