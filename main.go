package main

import (
	"os"

	"go-postgres-stockledger/audit"
	"go-postgres-stockledger/config"
	"go-postgres-stockledger/middlewares"
	"go-postgres-stockledger/models"
	"go-postgres-stockledger/routes"
	"go-postgres-stockledger/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.ConnectDB()

	config.DB.AutoMigrate(
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
	)

	config.SeedPermissions()
	config.SeedDefaultWarehouse()
	config.SeedAdmin()

	utils.SetSecret(os.Getenv("JWT_SECRET"))

	audit.Default = &audit.DBSink{DB: config.DB, Log: config.GetLogger()}

	r := gin.Default()
	r.Use(middlewares.RequestMeta())
	routes.SetupRoutes(r)

	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "Stock Ledger API is running"})
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	_ = r.Run(":" + port)
}
