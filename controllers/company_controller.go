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

type CompanyInput struct {
	Name    string `json:"name" binding:"required"`
	Type    string `json:"type" binding:"required"` // SUPPLIER | CUSTOMER
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// POST /api/companies
func CreateCompany(c *gin.Context) {
	var in CompanyInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	companyType := strings.ToUpper(strings.TrimSpace(in.Type))
	if companyType != models.CompanySupplier && companyType != models.CompanyCustomer {
		c.JSON(http.StatusBadRequest, gin.H{"error": "type must be SUPPLIER or CUSTOMER"})
		return
	}
	company := models.Company{
		Name:     strings.TrimSpace(in.Name),
		Type:     companyType,
		Email:    in.Email,
		Phone:    in.Phone,
		Address:  in.Address,
		IsActive: true,
	}
	if err := config.DB.Create(&company).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	recordAudit(c, "CREATE", "company", company.ID, gin.H{"name": company.Name, "type": company.Type})
	utils.Success(c, "company created", company)
}

// GET /api/companies?type=SUPPLIER
func ListCompanies(c *gin.Context) {
	q := config.DB.Model(&models.Company{})
	if t := strings.ToUpper(strings.TrimSpace(c.Query("type"))); t != "" {
		q = q.Where("type = ?", t)
	}
	if qstr := strings.TrimSpace(c.Query("q")); qstr != "" {
		q = q.Where("name ILIKE ?", "%"+qstr+"%")
	}
	var rows []models.Company
	if err := q.Order("name").Find(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	utils.Success(c, "companies", rows)
}

// GET /api/companies/:id
func GetCompanyByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var company models.Company
	if err := config.DB.First(&company, uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "company not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": company})
}

type CompanyUpdateInput struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	Address  *string `json:"address"`
	IsActive *bool   `json:"is_active"`
}

// PUT /api/companies/:id — type is fixed at creation.
func UpdateCompany(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var in CompanyUpdateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	var company models.Company
	if err := config.DB.First(&company, uint(id)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "company not found"})
		return
	}

	updates := map[string]any{}
	if in.Name != nil {
		updates["name"] = strings.TrimSpace(*in.Name)
	}
	if in.Email != nil {
		updates["email"] = *in.Email
	}
	if in.Phone != nil {
		updates["phone"] = *in.Phone
	}
	if in.Address != nil {
		updates["address"] = *in.Address
	}
	if in.IsActive != nil {
		updates["is_active"] = *in.IsActive
	}
	if len(updates) > 0 {
		if err := config.DB.Model(&company).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	}
	recordAudit(c, "UPDATE", "company", company.ID, updates)
	utils.Success(c, "company updated", company)
}

// DELETE /api/companies/:id
func DeleteCompany(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var refs int64
	config.DB.Model(&models.TransactionHeader{}).Where("company_id = ?", uint(id)).Count(&refs)
	if refs > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "company is referenced by transactions"})
		return
	}
	config.DB.Model(&models.Item{}).Where("supplier_id = ?", uint(id)).Count(&refs)
	if refs > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "company is set as default supplier on items"})
		return
	}
	if err := config.DB.Delete(&models.Company{}, uint(id)).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	recordAudit(c, "DELETE", "company", uint(id), nil)
	utils.Success(c, "company deleted", nil)
}
