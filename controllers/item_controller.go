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
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ItemInput struct {
	SKU        string           `json:"sku" binding:"required"`
	Name       string           `json:"name" binding:"required"`
	CategoryID *uint            `json:"category_id"`
	BrandID    *uint            `json:"brand_id"`
	UOMID      uint             `json:"uom_id" binding:"required"`
	SupplierID *uint            `json:"supplier_id"`
	MinStock   *decimal.Decimal `json:"min_stock"`
}

// POST /api/items
func CreateItem(c *gin.Context) {
	var in ItemInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload", "detail": err.Error()})
		return
	}

	var cnt int64
	config.DB.Model(&models.Item{}).Where("sku = ?", in.SKU).Count(&cnt)
	if cnt > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "SKU already exists"})
		return
	}
	if err := config.DB.First(&models.UOM{}, in.UOMID).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "UOM not found"})
		return
	}

	item := models.Item{
		SKU:        strings.TrimSpace(in.SKU),
		Name:       strings.TrimSpace(in.Name),
		CategoryID: in.CategoryID,
		BrandID:    in.BrandID,
		UOMID:      in.UOMID,
		SupplierID: in.SupplierID,
		MinStock:   in.MinStock,
		IsActive:   true,
	}
	if err := config.DB.Create(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	recordAudit(c, "CREATE", "item", item.ID, gin.H{"sku": item.SKU, "name": item.Name})
	utils.Success(c, "item created", item)
}

// GET /api/items
func ListItems(c *gin.Context) {
	q := config.DB.Model(&models.Item{}).
		Preload("Category").
		Preload("Brand").
		Preload("UOM").
		Preload("Supplier")

	if qstr := strings.TrimSpace(c.Query("q")); qstr != "" {
		like := "%" + qstr + "%"
		q = q.Where("name ILIKE ? OR sku ILIKE ?", like, like)
	}
	if active := c.Query("active"); active != "" {
		q = q.Where("is_active = ?", active == "true")
	}

	page := getInt(c, "page", 1)
	size := getInt(c, "page_size", 100)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var rows []models.Item
	if err := q.Order("id DESC").Offset((page - 1) * size).Limit(size).Find(&rows).Error; err != nil {
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

// GET /api/items/:id
func GetItemByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var item models.Item
	if err := config.DB.
		Preload("Category").
		Preload("Brand").
		Preload("UOM").
		Preload("Supplier").
		First(&item, uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "item not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": item})
}

type ItemUpdateInput struct {
	Name       *string          `json:"name"`
	CategoryID *uint            `json:"category_id"`
	BrandID    *uint            `json:"brand_id"`
	SupplierID *uint            `json:"supplier_id"`
	MinStock   *decimal.Decimal `json:"min_stock"`
	IsActive   *bool            `json:"is_active"`
}

// PUT /api/items/:id — standard cost is owned by the costing engine and
// cannot be set here.
func UpdateItem(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var in ItemUpdateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	var item models.Item
	if err := config.DB.First(&item, uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "item not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]any{}
	if in.Name != nil {
		updates["name"] = strings.TrimSpace(*in.Name)
	}
	if in.CategoryID != nil {
		updates["category_id"] = *in.CategoryID
	}
	if in.BrandID != nil {
		updates["brand_id"] = *in.BrandID
	}
	if in.SupplierID != nil {
		updates["supplier_id"] = *in.SupplierID
	}
	if in.MinStock != nil {
		updates["min_stock"] = *in.MinStock
	}
	if in.IsActive != nil {
		updates["is_active"] = *in.IsActive
	}
	if len(updates) > 0 {
		if err := config.DB.Model(&item).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	}

	recordAudit(c, "UPDATE", "item", item.ID, updates)
	utils.Success(c, "item updated", item)
}

// DELETE /api/items/:id — refused while ledger or document lines still
// reference the item.
func DeleteItem(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var item models.Item
	if err := config.DB.First(&item, uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "item not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var refs int64
	config.DB.Model(&models.StockMovement{}).Where("item_id = ?", item.ID).Count(&refs)
	if refs > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "item has stock movements and cannot be deleted"})
		return
	}
	config.DB.Model(&models.TransactionLine{}).Where("item_id = ?", item.ID).Count(&refs)
	if refs > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "item is referenced by transactions and cannot be deleted"})
		return
	}

	if err := config.DB.Delete(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	recordAudit(c, "DELETE", "item", item.ID, gin.H{"sku": item.SKU})
	utils.Success(c, "item deleted", nil)
}
