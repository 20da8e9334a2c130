package controllers

import (
	"net/http"
	"time"

	"go-postgres-stockledger/config"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// POST /issue
func PostIssue(c *gin.Context) {
	actorID, err := currentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var in IssueInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	if len(in.Lines) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lines must not be empty"})
		return
	}
	valid := 0
	for _, ln := range in.Lines {
		if ln.ItemID != 0 && ln.Qty.IsPositive() {
			valid++
		}
	}
	if valid == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no valid lines"})
		return
	}

	var result *postResult
	var lastErr error
	const maxRetries = 3
	for attempt := 0; attempt < maxRetries; attempt++ {
		lastErr = config.DB.Transaction(func(tx *gorm.DB) error {
			var err error
			result, err = postIssueCore(tx, actorID, in, time.Now().UTC())
			return err
		})
		if lastErr == nil || !isUniqueViolation(lastErr) {
			break
		}
	}

	if lastErr != nil {
		if isBusinessError(lastErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": lastErr.Error()})
			return
		}
		config.LogError(config.GetLogger(), "controllers", "PostIssue", "posting failed", in, lastErr)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	recordAudit(c, "POST", "issue", result.HeaderID, gin.H{
		"doc_no": result.DocNo,
		"posted": result.Posted,
		"lines":  result.Details,
	})

	c.JSON(http.StatusOK, gin.H{
		"ok":       true,
		"headerId": result.HeaderID,
		"docNo":    result.DocNo,
		"posted":   result.Posted,
	})
}
