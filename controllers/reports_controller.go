package controllers

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"time"

	"go-postgres-stockledger/config"
	"go-postgres-stockledger/service"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// GET /api/reports/stock?warehouse_id=&location_id=&category_id=&format=json|csv|xlsx
func ReportStock(c *gin.Context) {
	filter := service.StockReportFilter{
		WarehouseID: uint(getInt(c, "warehouse_id", 0)),
		LocationID:  uint(getInt(c, "location_id", 0)),
		CategoryID:  uint(getInt(c, "category_id", 0)),
	}

	rows, err := service.StockReport(config.DB, filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	switch c.Query("format") {
	case "csv":
		writeStockCSV(c, rows)
	case "xlsx":
		writeStockXLSX(c, rows)
	default:
		c.JSON(http.StatusOK, gin.H{"data": rows})
	}
}

// GET /api/reports/valuation
func ReportValuation(c *gin.Context) {
	rows, total, err := service.ValuationReport(config.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": rows, "total_value": total})
}

// GET /api/reports/low-stock
func ReportLowStock(c *gin.Context) {
	rows, err := service.LowStockReport(config.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": rows})
}

// GET /api/reports/movements?from=&to=
func ReportMovements(c *gin.Context) {
	totals, err := service.MovementReport(config.DB, c.Query("from"), c.Query("to"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": totals})
}

func writeStockCSV(c *gin.Context, rows []service.StockReportRow) {
	filename := fmt.Sprintf("stock-%s.csv", time.Now().UTC().Format("20060102"))
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", "attachment; filename="+filename)

	w := csv.NewWriter(c.Writer)
	_ = w.Write([]string{"SKU", "Item", "UOM", "Warehouse", "Location", "Quantity", "Min Stock", "Status"})
	for _, r := range rows {
		_ = w.Write([]string{
			r.SKU, r.ItemName, r.UOM, r.WarehouseName, r.LocationName,
			r.Quantity.String(), r.MinStock.String(), r.StockStatus,
		})
	}
	w.Flush()
}

func writeStockXLSX(c *gin.Context, rows []service.StockReportRow) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Stock"
	f.SetSheetName("Sheet1", sheet)
	_ = f.SetSheetRow(sheet, "A1", &[]any{"SKU", "Item", "UOM", "Warehouse", "Location", "Quantity", "Min Stock", "Status"})
	for i, r := range rows {
		cell := fmt.Sprintf("A%d", i+2)
		qty, _ := r.Quantity.Float64()
		min, _ := r.MinStock.Float64()
		_ = f.SetSheetRow(sheet, cell, &[]any{
			r.SKU, r.ItemName, r.UOM, r.WarehouseName, r.LocationName, qty, min, r.StockStatus,
		})
	}

	filename := fmt.Sprintf("stock-%s.xlsx", time.Now().UTC().Format("20060102"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename="+filename)
	if err := f.Write(c.Writer); err != nil {
		config.LogError(config.GetLogger(), "controllers", "writeStockXLSX", "write workbook", nil, err)
	}
}
