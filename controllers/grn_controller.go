package controllers

import (
	"net/http"
	"time"

	"go-postgres-stockledger/config"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// POST /grn
func PostGRN(c *gin.Context) {
	actorID, err := currentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var in GRNInput
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
	// Retry covers two postings racing to the same document sequence.
	const maxRetries = 3
	for attempt := 0; attempt < maxRetries; attempt++ {
		lastErr = config.DB.Transaction(func(tx *gorm.DB) error {
			var err error
			result, err = postGRNCore(tx, actorID, in, time.Now().UTC())
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
		config.LogError(config.GetLogger(), "controllers", "PostGRN", "posting failed", in, lastErr)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	recordAudit(c, "POST", "grn", result.HeaderID, gin.H{
		"doc_no":  result.DocNo,
		"posted":  result.Posted,
		"skipped": result.Skipped,
		"lines":   result.Details,
	})

	c.JSON(http.StatusOK, gin.H{
		"ok":       true,
		"headerId": result.HeaderID,
		"docNo":    result.DocNo,
		"posted":   result.Posted,
		"skipped":  result.Skipped,
	})
}
