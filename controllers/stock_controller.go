package controllers

import (
	"net/http"
	"strings"

	"go-postgres-stockledger/config"
	"go-postgres-stockledger/models"

	"github.com/gin-gonic/gin"
)

// GET /api/stock — current balances, filterable by item/location/warehouse.
func StockList(c *gin.Context) {
	db := config.DB

	q := db.Model(&models.StockBalance{}).
		Preload("Item").
		Preload("Item.UOM").
		Preload("Location").
		Preload("Location.Warehouse")

	if itemID := getInt(c, "item_id", 0); itemID > 0 {
		q = q.Where("item_id = ?", itemID)
	}
	if locID := getInt(c, "location_id", 0); locID > 0 {
		q = q.Where("location_id = ?", locID)
	}
	if whID := getInt(c, "warehouse_id", 0); whID > 0 {
		q = q.Joins("JOIN locations ON locations.id = stock_balances.location_id").
			Where("locations.warehouse_id = ?", whID)
	}
	if qstr := strings.TrimSpace(c.Query("q")); qstr != "" {
		like := "%" + qstr + "%"
		q = q.Joins("JOIN items ON items.id = stock_balances.item_id").
			Where("items.name ILIKE ? OR items.sku ILIKE ?", like, like)
	}

	page := getInt(c, "page", 1)
	size := getInt(c, "page_size", 100)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var rows []models.StockBalance
	if err := q.
		Order("id DESC").
		Offset((page - 1) * size).
		Limit(size).
		Find(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": rows,
		"pagination": gin.H{
			"page":      page,
			"page_size": size,
			"total":     total,
		},
	})
}

// GET /api/stock/movements — the ledger, newest first.
func MovementList(c *gin.Context) {
	q := config.DB.Model(&models.StockMovement{}).
		Preload("Item").
		Preload("FromLocation").
		Preload("ToLocation")

	if itemID := getInt(c, "item_id", 0); itemID > 0 {
		q = q.Where("item_id = ?", itemID)
	}
	if locID := getInt(c, "location_id", 0); locID > 0 {
		q = q.Where("from_location_id = ? OR to_location_id = ?", locID, locID)
	}
	switch strings.ToLower(c.Query("direction")) {
	case "in":
		q = q.Where("qty_in > 0")
	case "out":
		q = q.Where("qty_out > 0")
	}
	if from := c.Query("from"); from != "" {
		q = q.Where("created_at >= ?", from)
	}
	if to := c.Query("to"); to != "" {
		q = q.Where("created_at < ?", to)
	}

	page := getInt(c, "page", 1)
	size := getInt(c, "page_size", 100)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var rows []models.StockMovement
	if err := q.
		Order("id DESC").
		Offset((page - 1) * size).
		Limit(size).
		Find(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": rows,
		"pagination": gin.H{
			"page":      page,
			"page_size": size,
			"total":     total,
		},
	})
}
