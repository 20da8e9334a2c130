package utils

import (
	"fmt"
	"time"
)

// FormatDocNo renders a document number like GRN-2026-000042.
func FormatDocNo(docType string, seq uint, t time.Time) string {
	prefix := "TR"
	switch docType {
	case "GRN":
		prefix = "GRN"
	case "ISSUE":
		prefix = "ISS"
	}
	return fmt.Sprintf("%s-%d-%06d", prefix, t.Year(), seq)
}
