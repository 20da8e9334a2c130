package config

import (
	"log"
	"os"

	"go-postgres-stockledger/models"

	"golang.org/x/crypto/bcrypt"
)

func SeedPermissions() {
	codes := []models.Permission{
		{Code: "POST_GRN", Name: "Post Goods Receipt"},
		{Code: "POST_ISSUE", Name: "Post Stock Issue"},
		{Code: "CREATE_ITEM", Name: "Create Item"},
		{Code: "EDIT_ITEM", Name: "Edit Item"},
		{Code: "MANAGE_CATALOG", Name: "Manage Categories, Brands & UOMs"},
		{Code: "MANAGE_WAREHOUSE", Name: "Manage Warehouses & Locations"},
		{Code: "MANAGE_COMPANY", Name: "Manage Suppliers & Customers"},
		{Code: "REPORT_VIEW", Name: "View Reports"},
		{Code: "REPORT_STOCK_VIEW", Name: "View Stock Reports"},
		{Code: "MANAGE_USERS", Name: "Manage Users & Permissions"},
		{Code: "AUDIT_VIEW", Name: "View Audit Log"},
	}
	for _, p := range codes {
		var cnt int64
		DB.Model(&models.Permission{}).Where("code = ?", p.Code).Count(&cnt)
		if cnt == 0 {
			DB.Create(&p)
		}
	}
}

// SeedDefaultWarehouse guarantees at least one active location exists so a
// GRN without an explicit location has somewhere to land.
func SeedDefaultWarehouse() {
	var cnt int64
	DB.Model(&models.Warehouse{}).Count(&cnt)
	if cnt > 0 {
		return
	}
	wh := models.Warehouse{Name: "Main Warehouse", Code: "MAIN"}
	if err := DB.Create(&wh).Error; err != nil {
		log.Printf("warning: seed warehouse failed: %v", err)
		return
	}
	loc := models.Location{WarehouseID: wh.ID, Name: "Default", Code: "MAIN-01", IsActive: true}
	if err := DB.Create(&loc).Error; err != nil {
		log.Printf("warning: seed location failed: %v", err)
	}
}

func SeedAdmin() {
	var cnt int64
	DB.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&cnt)
	if cnt > 0 {
		return
	}
	username := envOr("ADMIN_USERNAME", "admin")
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		log.Println("no admin user and ADMIN_PASSWORD not set; skipping admin seed")
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("warning: seed admin failed: %v", err)
		return
	}
	admin := models.User{
		Username:     username,
		FullName:     "Administrator",
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
		IsActive:     true,
	}
	if err := DB.Create(&admin).Error; err != nil {
		log.Printf("warning: seed admin failed: %v", err)
	}
}
