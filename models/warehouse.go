package models

import "gorm.io/gorm"

type Warehouse struct {
	gorm.Model
	Name    string `gorm:"size:180;not null"    json:"name"`
	Code    string `gorm:"uniqueIndex;size:60"  json:"code"`
	Address string `gorm:"size:255"             json:"address"`
}

// Location is a stock-holding point inside a warehouse. Once movements
// reference it only the active flag may change.
type Location struct {
	gorm.Model
	WarehouseID uint      `gorm:"index;not null" json:"warehouse_id"`
	Warehouse   Warehouse `gorm:"foreignKey:WarehouseID" json:"warehouse"`

	Name     string `gorm:"size:180;not null" json:"name"`
	Code     string `gorm:"size:60"           json:"code"`
	IsActive bool   `gorm:"default:true"      json:"is_active"`
}
