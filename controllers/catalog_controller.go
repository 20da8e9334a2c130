package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"go-postgres-stockledger/config"
	"go-postgres-stockledger/models"
	"go-postgres-stockledger/utils"

	"github.com/gin-gonic/gin"
)

// Categories, brands and UOMs share the same thin CRUD shape.

type CategoryInput struct {
	Name string `json:"name" binding:"required"`
	Code string `json:"code"`
}

func CreateCategory(c *gin.Context) {
	var in CategoryInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	cat := models.Category{Name: strings.TrimSpace(in.Name), Code: strings.TrimSpace(in.Code)}
	if err := config.DB.Create(&cat).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	recordAudit(c, "CREATE", "category", cat.ID, gin.H{"name": cat.Name})
	utils.Success(c, "category created", cat)
}

func ListCategories(c *gin.Context) {
	var rows []models.Category
	if err := config.DB.Order("name").Find(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	utils.Success(c, "categories", rows)
}

func UpdateCategory(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var in CategoryInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	var cat models.Category
	if err := config.DB.First(&cat, uint(id)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "category not found"})
		return
	}
	cat.Name = strings.TrimSpace(in.Name)
	cat.Code = strings.TrimSpace(in.Code)
	if err := config.DB.Save(&cat).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	recordAudit(c, "UPDATE", "category", cat.ID, gin.H{"name": cat.Name})
	utils.Success(c, "category updated", cat)
}

func DeleteCategory(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var refs int64
	config.DB.Model(&models.Item{}).Where("category_id = ?", uint(id)).Count(&refs)
	if refs > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "category is in use"})
		return
	}
	if err := config.DB.Delete(&models.Category{}, uint(id)).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	recordAudit(c, "DELETE", "category", uint(id), nil)
	utils.Success(c, "category deleted", nil)
}

type BrandInput struct {
	Name string `json:"name" binding:"required"`
}

func CreateBrand(c *gin.Context) {
	var in BrandInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	brand := models.Brand{Name: strings.TrimSpace(in.Name)}
	if err := config.DB.Create(&brand).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	recordAudit(c, "CREATE", "brand", brand.ID, gin.H{"name": brand.Name})
	utils.Success(c, "brand created", brand)
}

func ListBrands(c *gin.Context) {
	var rows []models.Brand
	if err := config.DB.Order("name").Find(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	utils.Success(c, "brands", rows)
}

func UpdateBrand(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var in BrandInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	var brand models.Brand
	if err := config.DB.First(&brand, uint(id)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "brand not found"})
		return
	}
	brand.Name = strings.TrimSpace(in.Name)
	if err := config.DB.Save(&brand).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	recordAudit(c, "UPDATE", "brand", brand.ID, gin.H{"name": brand.Name})
	utils.Success(c, "brand updated", brand)
}

func DeleteBrand(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var refs int64
	config.DB.Model(&models.Item{}).Where("brand_id = ?", uint(id)).Count(&refs)
	if refs > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "brand is in use"})
		return
	}
	if err := config.DB.Delete(&models.Brand{}, uint(id)).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	recordAudit(c, "DELETE", "brand", uint(id), nil)
	utils.Success(c, "brand deleted", nil)
}

type UOMInput struct {
	Name string `json:"name" binding:"required"`
	Code string `json:"code" binding:"required"`
}

func CreateUOM(c *gin.Context) {
	var in UOMInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	code := strings.ToUpper(strings.TrimSpace(in.Code))
	var cnt int64
	config.DB.Model(&models.UOM{}).Where("code = ?", code).Count(&cnt)
	if cnt > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "UOM code already exists"})
		return
	}
	uom := models.UOM{Name: strings.TrimSpace(in.Name), Code: code}
	if err := config.DB.Create(&uom).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	recordAudit(c, "CREATE", "uom", uom.ID, gin.H{"code": uom.Code})
	utils.Success(c, "uom created", uom)
}

func ListUOMs(c *gin.Context) {
	var rows []models.UOM
	if err := config.DB.Order("code").Find(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	utils.Success(c, "uoms", rows)
}

// UpdateUOM changes the display name only; the code is referenced by items
// and stays fixed.
func UpdateUOM(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var in struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	var uom models.UOM
	if err := config.DB.First(&uom, uint(id)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "UOM not found"})
		return
	}
	uom.Name = strings.TrimSpace(in.Name)
	if err := config.DB.Save(&uom).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	recordAudit(c, "UPDATE", "uom", uom.ID, gin.H{"name": uom.Name})
	utils.Success(c, "uom updated", uom)
}

func DeleteUOM(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var refs int64
	config.DB.Model(&models.Item{}).Where("uom_id = ?", uint(id)).Count(&refs)
	if refs > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "UOM is in use"})
		return
	}
	if err := config.DB.Delete(&models.UOM{}, uint(id)).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	recordAudit(c, "DELETE", "uom", uint(id), nil)
	utils.Success(c, "uom deleted", nil)
}
