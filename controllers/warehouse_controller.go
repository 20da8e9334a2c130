package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"go-postgres-stockledger/config"
	"go-postgres-stockledger/models"
	"go-postgres-stockledger/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type WarehouseInput struct {
	Name    string `json:"name" binding:"required"`
	Code    string `json:"code" binding:"required"`
	Address string `json:"address"`
}

// POST /api/warehouses
func CreateWarehouse(c *gin.Context) {
	var in WarehouseInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	code := strings.ToUpper(strings.TrimSpace(in.Code))
	var cnt int64
	config.DB.Model(&models.Warehouse{}).Where("code = ?", code).Count(&cnt)
	if cnt > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "warehouse code already exists"})
		return
	}
	wh := models.Warehouse{Name: strings.TrimSpace(in.Name), Code: code, Address: in.Address}
	if err := config.DB.Create(&wh).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	recordAudit(c, "CREATE", "warehouse", wh.ID, gin.H{"code": wh.Code})
	utils.Success(c, "warehouse created", wh)
}

// GET /api/warehouses
func ListWarehouses(c *gin.Context) {
	var rows []models.Warehouse
	if err := config.DB.Order("id").Find(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	utils.Success(c, "warehouses", rows)
}

// GET /api/warehouses/:id
func GetWarehouseByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var wh models.Warehouse
	if err := config.DB.First(&wh, uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "warehouse not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var locations []models.Location
	if err := config.DB.Where("warehouse_id = ?", wh.ID).Order("id").Find(&locations).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": wh, "locations": locations})
}

type LocationInput struct {
	Name string `json:"name" binding:"required"`
	Code string `json:"code"`
}

// POST /api/warehouses/:id/locations
func CreateLocation(c *gin.Context) {
	whID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid warehouse id"})
		return
	}
	var in LocationInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	var wh models.Warehouse
	if err := config.DB.First(&wh, uint(whID)).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "warehouse not found"})
		return
	}

	loc := models.Location{
		WarehouseID: wh.ID,
		Name:        strings.TrimSpace(in.Name),
		Code:        strings.TrimSpace(in.Code),
		IsActive:    true,
	}
	if err := config.DB.Create(&loc).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	recordAudit(c, "CREATE", "location", loc.ID, gin.H{"warehouse_id": wh.ID, "name": loc.Name})
	utils.Success(c, "location created", loc)
}

type LocationUpdateInput struct {
	Name     *string `json:"name"`
	Code     *string `json:"code"`
	IsActive *bool   `json:"is_active"`
}

// PUT /api/locations/:id — once movements reference a location only the
// active flag and labels may change; there is no delete, deactivate instead.
func UpdateLocation(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var in LocationUpdateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	var loc models.Location
	if err := config.DB.First(&loc, uint(id)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "location not found"})
		return
	}

	updates := map[string]any{}
	if in.Name != nil {
		updates["name"] = strings.TrimSpace(*in.Name)
	}
	if in.Code != nil {
		updates["code"] = strings.TrimSpace(*in.Code)
	}
	if in.IsActive != nil {
		updates["is_active"] = *in.IsActive
	}
	if len(updates) > 0 {
		if err := config.DB.Model(&loc).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	}
	recordAudit(c, "UPDATE", "location", loc.ID, updates)
	utils.Success(c, "location updated", loc)
}
