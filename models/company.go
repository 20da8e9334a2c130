package models

import "gorm.io/gorm"

const (
	CompanySupplier = "SUPPLIER"
	CompanyCustomer = "CUSTOMER"
)

// Company is a counterparty: supplier on receipts, customer on issues.
type Company struct {
	gorm.Model
	Name     string `gorm:"size:180;not null" json:"name"`
	Type     string `gorm:"size:20;not null"  json:"type"` // SUPPLIER | CUSTOMER
	Email    string `gorm:"size:180"          json:"email"`
	Phone    string `gorm:"size:60"           json:"phone"`
	Address  string `gorm:"size:255"          json:"address"`
	IsActive bool   `gorm:"default:true"      json:"is_active"`
}
