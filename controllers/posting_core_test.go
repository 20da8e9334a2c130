package controllers

import (
	"strings"
	"testing"
	"time"

	"go-postgres-stockledger/config"
	"go-postgres-stockledger/models"

	"gorm.io/gorm"
)

func TestPostGRNCreatesBalanceLedgerAndCost(t *testing.T) {
	db := newTestDB(t)
	fx := seedFixtures(t, db)

	in := GRNInput{
		LocationID: &fx.Location.ID,
		Lines: []GRNLine{
			{ItemID: fx.Item.ID, Qty: mustDecimal(t, "10"), UnitCost: mustDecimal(t, "5.00")},
		},
	}

	var result *postResult
	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		result, err = postGRNCore(tx, fx.User.ID, in, time.Now().UTC())
		return err
	})
	if err != nil {
		t.Fatalf("postGRNCore: %v", err)
	}
	if result.Posted != 1 || result.Skipped != 0 {
		t.Fatalf("want posted=1 skipped=0, got posted=%d skipped=%d", result.Posted, result.Skipped)
	}

	var bal models.StockBalance
	if err := db.Where("item_id = ? AND location_id = ?", fx.Item.ID, fx.Location.ID).First(&bal).Error; err != nil {
		t.Fatalf("balance row: %v", err)
	}
	assertDecimalEqual(t, mustDecimal(t, "10"), bal.Quantity, "balance quantity")

	var item models.Item
	if err := db.First(&item, fx.Item.ID).Error; err != nil {
		t.Fatalf("reload item: %v", err)
	}
	assertDecimalEqual(t, mustDecimal(t, "5.00"), item.StandardCost, "standard cost")

	var movements []models.StockMovement
	if err := db.Where("header_id = ?", result.HeaderID).Find(&movements).Error; err != nil {
		t.Fatalf("movements: %v", err)
	}
	if len(movements) != 1 {
		t.Fatalf("want 1 movement, got %d", len(movements))
	}
	assertDecimalEqual(t, mustDecimal(t, "10"), movements[0].QtyIn, "qty_in")
	assertDecimalEqual(t, mustDecimal(t, "0"), movements[0].QtyOut, "qty_out")
	assertDecimalEqual(t, mustDecimal(t, "5.00"), movements[0].UnitCost, "movement unit cost")

	var header models.TransactionHeader
	if err := db.First(&header, result.HeaderID).Error; err != nil {
		t.Fatalf("header: %v", err)
	}
	if header.DocType != models.DocTypeGRN || header.Status != models.StatusPosted {
		t.Fatalf("header type/status: %s/%s", header.DocType, header.Status)
	}
	if !strings.HasPrefix(header.DocNo, "GRN-") {
		t.Fatalf("doc no: %s", header.DocNo)
	}
}

func TestPostGRNSkipsUnknownItems(t *testing.T) {
	db := newTestDB(t)
	fx := seedFixtures(t, db)

	in := GRNInput{
		LocationID: &fx.Location.ID,
		Lines: []GRNLine{
			{ItemID: fx.Item.ID, Qty: mustDecimal(t, "2"), UnitCost: mustDecimal(t, "1.50")},
			{ItemID: 99999, Qty: mustDecimal(t, "4"), UnitCost: mustDecimal(t, "2.00")},
		},
	}

	var result *postResult
	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		result, err = postGRNCore(tx, fx.User.ID, in, time.Now().UTC())
		return err
	})
	if err != nil {
		t.Fatalf("postGRNCore: %v", err)
	}
	if result.Posted != 1 || result.Skipped != 1 {
		t.Fatalf("want posted=1 skipped=1, got posted=%d skipped=%d", result.Posted, result.Skipped)
	}

	var lines int64
	db.Model(&models.TransactionLine{}).Where("header_id = ?", result.HeaderID).Count(&lines)
	if lines != 1 {
		t.Fatalf("want 1 line, got %d", lines)
	}
}

func TestPostGRNAllItemsUnknownFailsWholeDocument(t *testing.T) {
	db := newTestDB(t)
	fx := seedFixtures(t, db)

	in := GRNInput{
		LocationID: &fx.Location.ID,
		Lines: []GRNLine{
			{ItemID: 99998, Qty: mustDecimal(t, "3"), UnitCost: mustDecimal(t, "1.00")},
			{ItemID: 99999, Qty: mustDecimal(t, "4"), UnitCost: mustDecimal(t, "2.00")},
		},
	}
	err := db.Transaction(func(tx *gorm.DB) error {
		_, err := postGRNCore(tx, fx.User.ID, in, time.Now().UTC())
		return err
	})
	if err == nil {
		t.Fatal("expected error when every line is skipped")
	}
	if !isBusinessError(err) {
		t.Fatalf("expected business error, got %T: %v", err, err)
	}

	// The empty header and its doc number must not survive the rollback.
	var headers int64
	db.Model(&models.TransactionHeader{}).Count(&headers)
	if headers != 0 {
		t.Fatalf("want 0 headers, got %d", headers)
	}
}

func TestBalanceRowUniquePerItemAndLocation(t *testing.T) {
	db := newTestDB(t)
	fx := seedFixtures(t, db)
	seedBalance(t, db, fx.Item.ID, fx.Location.ID, "10")

	err := db.Create(&models.StockBalance{
		ItemID:     fx.Item.ID,
		LocationID: fx.Location.ID,
		Quantity:   mustDecimal(t, "1"),
	}).Error
	if err == nil {
		t.Fatal("expected unique violation for second (item, location) row")
	}
	if !isUniqueViolation(err) {
		t.Fatalf("want unique violation, got %v", err)
	}

	// With a single row guaranteed, a receipt lands on exactly that row.
	grn := GRNInput{
		LocationID: &fx.Location.ID,
		Lines:      []GRNLine{{ItemID: fx.Item.ID, Qty: mustDecimal(t, "3"), UnitCost: mustDecimal(t, "1.00")}},
	}
	if err := db.Transaction(func(tx *gorm.DB) error {
		_, err := postGRNCore(tx, fx.User.ID, grn, time.Now().UTC())
		return err
	}); err != nil {
		t.Fatalf("grn: %v", err)
	}

	var rows []models.StockBalance
	if err := db.Where("item_id = ?", fx.Item.ID).Find(&rows).Error; err != nil {
		t.Fatalf("balances: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("want 1 balance row, got %d", len(rows))
	}
	assertDecimalEqual(t, mustDecimal(t, "13"), rows[0].Quantity, "on hand after receipt")
}

func TestReceiptCostOverwritesNotAverages(t *testing.T) {
	db := newTestDB(t)
	fx := seedFixtures(t, db)

	post := func(qty, cost string) {
		t.Helper()
		in := GRNInput{
			LocationID: &fx.Location.ID,
			Lines:      []GRNLine{{ItemID: fx.Item.ID, Qty: mustDecimal(t, qty), UnitCost: mustDecimal(t, cost)}},
		}
		err := db.Transaction(func(tx *gorm.DB) error {
			_, err := postGRNCore(tx, fx.User.ID, in, time.Now().UTC())
			return err
		})
		if err != nil {
			t.Fatalf("postGRNCore: %v", err)
		}
	}

	post("10", "5.00")
	post("10", "8.00")

	var item models.Item
	if err := db.First(&item, fx.Item.ID).Error; err != nil {
		t.Fatalf("reload item: %v", err)
	}
	// A blended average would be 6.50; the rule is last receipt wins.
	assertDecimalEqual(t, mustDecimal(t, "8.00"), item.StandardCost, "standard cost")
}

func TestIssueInsufficientStockRollsBackWhole(t *testing.T) {
	db := newTestDB(t)
	fx := seedFixtures(t, db)
	seedBalance(t, db, fx.Item.ID, fx.Location.ID, "3")

	in := IssueInput{
		LocationID: &fx.Location.ID,
		Lines:      []IssueLine{{ItemID: fx.Item.ID, Qty: mustDecimal(t, "5")}},
	}
	err := db.Transaction(func(tx *gorm.DB) error {
		_, err := postIssueCore(tx, fx.User.ID, in, time.Now().UTC())
		return err
	})
	if err == nil {
		t.Fatal("expected insufficient stock error")
	}
	if !isBusinessError(err) {
		t.Fatalf("expected business error, got %T: %v", err, err)
	}
	if !strings.Contains(err.Error(), "Insufficient stock") || !strings.Contains(err.Error(), "3") {
		t.Fatalf("error message: %q", err.Error())
	}

	var bal models.StockBalance
	if err := db.Where("item_id = ?", fx.Item.ID).First(&bal).Error; err != nil {
		t.Fatalf("balance row: %v", err)
	}
	assertDecimalEqual(t, mustDecimal(t, "3"), bal.Quantity, "balance unchanged")

	var movements int64
	db.Model(&models.StockMovement{}).Count(&movements)
	if movements != 0 {
		t.Fatalf("want 0 movements after rollback, got %d", movements)
	}
	var headers int64
	db.Model(&models.TransactionHeader{}).Count(&headers)
	if headers != 0 {
		t.Fatalf("want 0 headers after rollback, got %d", headers)
	}
}

func TestIssueConsumesAtStandardCost(t *testing.T) {
	db := newTestDB(t)
	fx := seedFixtures(t, db)
	seedBalance(t, db, fx.Item.ID, fx.Location.ID, "10")
	if err := db.Model(&models.Item{}).Where("id = ?", fx.Item.ID).
		UpdateColumn("standard_cost", mustDecimal(t, "5.00")).Error; err != nil {
		t.Fatalf("set cost: %v", err)
	}

	in := IssueInput{
		LocationID: &fx.Location.ID,
		Lines:      []IssueLine{{ItemID: fx.Item.ID, Qty: mustDecimal(t, "4")}},
	}
	var result *postResult
	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		result, err = postIssueCore(tx, fx.User.ID, in, time.Now().UTC())
		return err
	})
	if err != nil {
		t.Fatalf("postIssueCore: %v", err)
	}

	var bal models.StockBalance
	if err := db.Where("item_id = ?", fx.Item.ID).First(&bal).Error; err != nil {
		t.Fatalf("balance row: %v", err)
	}
	assertDecimalEqual(t, mustDecimal(t, "6"), bal.Quantity, "balance after issue")

	var movement models.StockMovement
	if err := db.Where("header_id = ?", result.HeaderID).First(&movement).Error; err != nil {
		t.Fatalf("movement: %v", err)
	}
	assertDecimalEqual(t, mustDecimal(t, "4"), movement.QtyOut, "qty_out")
	assertDecimalEqual(t, mustDecimal(t, "0"), movement.QtyIn, "qty_in")
	assertDecimalEqual(t, mustDecimal(t, "5.00"), movement.UnitCost, "movement cost")

	var line models.TransactionLine
	if err := db.Where("header_id = ?", result.HeaderID).First(&line).Error; err != nil {
		t.Fatalf("line: %v", err)
	}
	assertDecimalEqual(t, mustDecimal(t, "5.00"), line.UnitCost, "line cost")

	// Issues never touch the standard cost.
	var item models.Item
	if err := db.First(&item, fx.Item.ID).Error; err != nil {
		t.Fatalf("reload item: %v", err)
	}
	assertDecimalEqual(t, mustDecimal(t, "5.00"), item.StandardCost, "cost after issue")
}

func TestIssueWithoutLocationDrawsFromStockedRow(t *testing.T) {
	db := newTestDB(t)
	fx := seedFixtures(t, db)

	var wh models.Warehouse
	if err := db.First(&wh).Error; err != nil {
		t.Fatalf("warehouse: %v", err)
	}
	empty := models.Location{WarehouseID: wh.ID, Name: "Empty", Code: "MAIN-02", IsActive: true}
	if err := db.Create(&empty).Error; err != nil {
		t.Fatalf("seed location: %v", err)
	}

	seedBalance(t, db, fx.Item.ID, empty.ID, "0")
	stocked := seedBalance(t, db, fx.Item.ID, fx.Location.ID, "7")

	in := IssueInput{
		Lines: []IssueLine{{ItemID: fx.Item.ID, Qty: mustDecimal(t, "2")}},
	}
	var result *postResult
	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		result, err = postIssueCore(tx, fx.User.ID, in, time.Now().UTC())
		return err
	})
	if err != nil {
		t.Fatalf("postIssueCore: %v", err)
	}

	var line models.TransactionLine
	if err := db.Where("header_id = ?", result.HeaderID).First(&line).Error; err != nil {
		t.Fatalf("line: %v", err)
	}
	if line.LocationID != stocked.LocationID {
		t.Fatalf("want draw from location %d, got %d", stocked.LocationID, line.LocationID)
	}

	var bal models.StockBalance
	if err := db.First(&bal, stocked.ID).Error; err != nil {
		t.Fatalf("balance: %v", err)
	}
	assertDecimalEqual(t, mustDecimal(t, "5"), bal.Quantity, "balance after issue")
}

func TestIssueAtomicAcrossLines(t *testing.T) {
	db := newTestDB(t)
	fx := seedFixtures(t, db)
	seedBalance(t, db, fx.Item.ID, fx.Location.ID, "10")

	var uom models.UOM
	if err := db.First(&uom).Error; err != nil {
		t.Fatalf("uom: %v", err)
	}
	scarce := models.Item{SKU: "WID-002", Name: "Scarce Widget", UOMID: uom.ID, IsActive: true}
	if err := db.Create(&scarce).Error; err != nil {
		t.Fatalf("seed item: %v", err)
	}
	seedBalance(t, db, scarce.ID, fx.Location.ID, "1")

	in := IssueInput{
		LocationID: &fx.Location.ID,
		Lines: []IssueLine{
			{ItemID: fx.Item.ID, Qty: mustDecimal(t, "4")},
			{ItemID: scarce.ID, Qty: mustDecimal(t, "2")},
		},
	}
	err := db.Transaction(func(tx *gorm.DB) error {
		_, err := postIssueCore(tx, fx.User.ID, in, time.Now().UTC())
		return err
	})
	if err == nil {
		t.Fatal("expected insufficient stock error")
	}

	// Line 1 passed inside the transaction but must not survive the rollback.
	var bal models.StockBalance
	if err := db.Where("item_id = ?", fx.Item.ID).First(&bal).Error; err != nil {
		t.Fatalf("balance: %v", err)
	}
	assertDecimalEqual(t, mustDecimal(t, "10"), bal.Quantity, "first line rolled back")

	var movements int64
	db.Model(&models.StockMovement{}).Count(&movements)
	if movements != 0 {
		t.Fatalf("want 0 movements, got %d", movements)
	}
}

func TestLedgerEntriesHaveExactlyOneDirection(t *testing.T) {
	db := newTestDB(t)
	fx := seedFixtures(t, db)

	err := db.Transaction(func(tx *gorm.DB) error {
		_, err := postGRNCore(tx, fx.User.ID, GRNInput{
			LocationID: &fx.Location.ID,
			Lines:      []GRNLine{{ItemID: fx.Item.ID, Qty: mustDecimal(t, "6"), UnitCost: mustDecimal(t, "2.00")}},
		}, time.Now().UTC())
		return err
	})
	if err != nil {
		t.Fatalf("grn: %v", err)
	}
	err = db.Transaction(func(tx *gorm.DB) error {
		_, err := postIssueCore(tx, fx.User.ID, IssueInput{
			LocationID: &fx.Location.ID,
			Lines:      []IssueLine{{ItemID: fx.Item.ID, Qty: mustDecimal(t, "2")}},
		}, time.Now().UTC())
		return err
	})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	var movements []models.StockMovement
	if err := db.Find(&movements).Error; err != nil {
		t.Fatalf("movements: %v", err)
	}
	if len(movements) != 2 {
		t.Fatalf("want 2 movements, got %d", len(movements))
	}
	for _, m := range movements {
		in := m.QtyIn.IsPositive()
		out := m.QtyOut.IsPositive()
		if in == out {
			t.Fatalf("movement %d: qty_in=%s qty_out=%s, want exactly one direction", m.ID, m.QtyIn, m.QtyOut)
		}
		if m.LineID == 0 || m.HeaderID == 0 {
			t.Fatalf("movement %d missing header/line reference", m.ID)
		}
	}
}

func TestDocNumbersAreSequentialPerType(t *testing.T) {
	db := newTestDB(t)
	fx := seedFixtures(t, db)

	for i := 0; i < 2; i++ {
		err := db.Transaction(func(tx *gorm.DB) error {
			_, err := postGRNCore(tx, fx.User.ID, GRNInput{
				LocationID: &fx.Location.ID,
				Lines:      []GRNLine{{ItemID: fx.Item.ID, Qty: mustDecimal(t, "1"), UnitCost: mustDecimal(t, "1.00")}},
			}, time.Now().UTC())
			return err
		})
		if err != nil {
			t.Fatalf("grn: %v", err)
		}
	}
	err := db.Transaction(func(tx *gorm.DB) error {
		_, err := postIssueCore(tx, fx.User.ID, IssueInput{
			LocationID: &fx.Location.ID,
			Lines:      []IssueLine{{ItemID: fx.Item.ID, Qty: mustDecimal(t, "1")}},
		}, time.Now().UTC())
		return err
	})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	var headers []models.TransactionHeader
	if err := db.Order("id").Find(&headers).Error; err != nil {
		t.Fatalf("headers: %v", err)
	}
	if len(headers) != 3 {
		t.Fatalf("want 3 headers, got %d", len(headers))
	}
	if headers[0].DocSeq != 1 || headers[1].DocSeq != 2 {
		t.Fatalf("GRN seqs: %d, %d", headers[0].DocSeq, headers[1].DocSeq)
	}
	if headers[2].DocSeq != 1 {
		t.Fatalf("ISSUE seq restarts per type, got %d", headers[2].DocSeq)
	}

	seen := map[string]bool{}
	for _, h := range headers {
		if seen[h.DocNo] {
			t.Fatalf("duplicate doc no %s", h.DocNo)
		}
		seen[h.DocNo] = true
	}
}

func TestReceiptIntoEmptyBalanceKeepsCostWhenNoStock(t *testing.T) {
	db := newTestDB(t)
	fx := seedFixtures(t, db)

	// Direct costing call with zero on-hand: cost stays untouched.
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		return recomputeStandardCost(tx, fx.Item.ID, mustDecimal(t, "9.99"))
	})
	if err != nil {
		t.Fatalf("recompute: %v", err)
	}

	var item models.Item
	if err := db.First(&item, fx.Item.ID).Error; err != nil {
		t.Fatalf("item: %v", err)
	}
	assertDecimalEqual(t, mustDecimal(t, "0"), item.StandardCost, "cost unchanged with no stock")
}
