package models

import "gorm.io/gorm"

type Category struct {
	gorm.Model
	Name string `gorm:"size:180;not null" json:"name"`
	Code string `gorm:"size:60"           json:"code"`
}

type Brand struct {
	gorm.Model
	Name string `gorm:"size:180;not null" json:"name"`
}

// UOM is a unit of measure, e.g. PCS, BOX, KG.
type UOM struct {
	gorm.Model
	Name string `gorm:"size:120;not null"        json:"name"`
	Code string `gorm:"uniqueIndex;size:20;not null" json:"code"`
}
