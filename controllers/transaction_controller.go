package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"go-postgres-stockledger/config"
	"go-postgres-stockledger/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GET /api/transactions?type=GRN&from=2026-01-01&to=2026-01-31
func TransactionList(c *gin.Context) {
	q := config.DB.Model(&models.TransactionHeader{}).
		Preload("Company").
		Preload("PostedBy")

	docType := strings.ToUpper(strings.TrimSpace(c.Query("type")))
	switch docType {
	case models.DocTypeGRN, models.DocTypeIssue:
		q = q.Where("doc_type = ?", docType)
	case "":
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown document type"})
		return
	}
	if from := c.Query("from"); from != "" {
		q = q.Where("posted_at >= ?", from)
	}
	if to := c.Query("to"); to != "" {
		q = q.Where("posted_at < ?", to)
	}

	page := getInt(c, "page", 1)
	size := getInt(c, "page_size", 50)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var rows []models.TransactionHeader
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

// GET /api/transactions/:id
func TransactionDetail(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var header models.TransactionHeader
	if err := config.DB.
		Preload("Company").
		Preload("PostedBy").
		Preload("Lines.Item").
		Preload("Lines.UOM").
		Preload("Lines.Location").
		First(&header, uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "transaction not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": header})
}
