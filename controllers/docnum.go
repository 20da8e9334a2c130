package controllers

import (
	"errors"
	"strings"
	"time"

	"go-postgres-stockledger/models"
	"go-postgres-stockledger/utils"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// nextDocNumber picks the next per-type sequence. The doc_no unique index is
// the real guard; callers retry on a unique violation when two postings race
// to the same sequence.
func nextDocNumber(tx *gorm.DB, docType string, t time.Time) (uint, string, error) {
	var last models.TransactionHeader
	if err := tx.
		Where("doc_type = ?", docType).
		Order("doc_seq DESC").
		Limit(1).
		Find(&last).Error; err != nil {
		return 0, "", err
	}
	seq := uint(1)
	if last.ID != 0 {
		seq = last.DocSeq + 1
	}
	return seq, utils.FormatDocNo(docType, seq, t), nil
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
