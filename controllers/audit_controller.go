package controllers

import (
	"net/http"
	"strings"

	"go-postgres-stockledger/config"
	"go-postgres-stockledger/models"

	"github.com/gin-gonic/gin"
)

// GET /api/admin/audit?actor_id=&entity=&from=&to=
func AuditList(c *gin.Context) {
	q := config.DB.Model(&models.AuditLog{})

	if actorID := getInt(c, "actor_id", 0); actorID > 0 {
		q = q.Where("actor_id = ?", actorID)
	}
	if entity := strings.TrimSpace(c.Query("entity")); entity != "" {
		q = q.Where("entity = ?", entity)
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

	var rows []models.AuditLog
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
