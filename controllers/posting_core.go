package controllers

import (
	"errors"
	"time"

	"go-postgres-stockledger/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type GRNLine struct {
	ItemID   uint            `json:"itemId"`
	Qty      decimal.Decimal `json:"qty"`
	UnitCost decimal.Decimal `json:"unitCost"`
}

type GRNInput struct {
	SupplierID   *uint     `json:"supplierId"`
	SupplierName string    `json:"supplierName"`
	LocationID   *uint     `json:"locationId"`
	Lines        []GRNLine `json:"lines"`
}

type IssueLine struct {
	ItemID uint            `json:"itemId"`
	Qty    decimal.Decimal `json:"qty"`
}

type IssueInput struct {
	LocationID   *uint       `json:"locationId"`
	CustomerID   *uint       `json:"customerId"`
	CustomerName string      `json:"customerName"`
	Lines        []IssueLine `json:"lines"`
}

// lineDetail feeds the audit record with item-level facts.
type lineDetail struct {
	ItemID   uint   `json:"item_id"`
	SKU      string `json:"sku"`
	Name     string `json:"name"`
	Brand    string `json:"brand,omitempty"`
	Category string `json:"category,omitempty"`
	Qty      string `json:"qty"`
	UnitCost string `json:"unit_cost"`
}

type postResult struct {
	HeaderID uint
	DocNo    string
	Posted   int
	Skipped  int
	Details  []lineDetail
}

// postGRNCore posts a goods receipt inside the caller's transaction. Lines
// whose item no longer exists are skipped rather than failing the batch.
func postGRNCore(tx *gorm.DB, actorID uint, in GRNInput, now time.Time) (*postResult, error) {
	loc, err := resolveReceiptLocation(tx, in.LocationID)
	if err != nil {
		return nil, err
	}

	companyID, err := resolveCompany(tx, models.CompanySupplier, in.SupplierID, in.SupplierName)
	if err != nil {
		return nil, err
	}

	seq, docNo, err := nextDocNumber(tx, models.DocTypeGRN, now)
	if err != nil {
		return nil, err
	}
	header := models.TransactionHeader{
		DocNo:      docNo,
		DocType:    models.DocTypeGRN,
		DocSeq:     seq,
		Status:     models.StatusPosted,
		CompanyID:  companyID,
		PostedByID: actorID,
		PostedAt:   now,
	}
	if err := tx.Create(&header).Error; err != nil {
		return nil, err
	}

	res := &postResult{HeaderID: header.ID, DocNo: docNo}
	for _, ln := range in.Lines {
		if ln.ItemID == 0 || !ln.Qty.IsPositive() {
			continue
		}

		var item models.Item
		if err := tx.Preload("Brand").Preload("Category").
			First(&item, ln.ItemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				res.Skipped++
				continue
			}
			return nil, err
		}

		line := models.TransactionLine{
			HeaderID:   header.ID,
			ItemID:     item.ID,
			UOMID:      item.UOMID,
			LocationID: loc.ID,
			Qty:        ln.Qty,
			UnitCost:   ln.UnitCost,
		}
		if err := tx.Create(&line).Error; err != nil {
			return nil, err
		}

		movement := models.StockMovement{
			ItemID:       item.ID,
			ToLocationID: &loc.ID,
			QtyIn:        ln.Qty,
			UnitCost:     ln.UnitCost,
			HeaderID:     header.ID,
			LineID:       line.ID,
		}
		if err := tx.Create(&movement).Error; err != nil {
			return nil, err
		}

		if err := incrementBalance(tx, item.ID, loc.ID, ln.Qty); err != nil {
			return nil, err
		}

		if err := recomputeStandardCost(tx, item.ID, ln.UnitCost); err != nil {
			return nil, err
		}

		res.Posted++
		res.Details = append(res.Details, newLineDetail(&item, ln.Qty, ln.UnitCost))
	}
	if res.Posted == 0 {
		// Every line was skipped; rolling back keeps the empty header and
		// its doc number out of the books.
		return nil, businessErrf("No postable lines: none of the items exist")
	}
	return res, nil
}

// postIssueCore posts a stock issue inside the caller's transaction. Any
// line short on stock fails the whole document.
func postIssueCore(tx *gorm.DB, actorID uint, in IssueInput, now time.Time) (*postResult, error) {
	companyID, err := resolveCompany(tx, models.CompanyCustomer, in.CustomerID, in.CustomerName)
	if err != nil {
		return nil, err
	}

	seq, docNo, err := nextDocNumber(tx, models.DocTypeIssue, now)
	if err != nil {
		return nil, err
	}
	header := models.TransactionHeader{
		DocNo:      docNo,
		DocType:    models.DocTypeIssue,
		DocSeq:     seq,
		Status:     models.StatusPosted,
		CompanyID:  companyID,
		PostedByID: actorID,
		PostedAt:   now,
	}
	if err := tx.Create(&header).Error; err != nil {
		return nil, err
	}

	res := &postResult{HeaderID: header.ID, DocNo: docNo}
	for _, ln := range in.Lines {
		if ln.ItemID == 0 || !ln.Qty.IsPositive() {
			continue
		}

		var item models.Item
		if err := tx.Preload("Brand").Preload("Category").
			First(&item, ln.ItemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, businessErrf("Insufficient stock for item #%d: on hand 0, requested %s", ln.ItemID, ln.Qty)
			}
			return nil, err
		}

		bal, err := resolveIssueBalance(tx, item.ID, in.LocationID)
		if err != nil {
			return nil, err
		}
		onHand := decimal.Zero
		if bal != nil {
			onHand = bal.Quantity
		}
		if bal == nil || onHand.LessThan(ln.Qty) {
			return nil, businessErrf("Insufficient stock for %s: on hand %s, requested %s", item.Name, onHand, ln.Qty)
		}

		line := models.TransactionLine{
			HeaderID:   header.ID,
			ItemID:     item.ID,
			UOMID:      item.UOMID,
			LocationID: bal.LocationID,
			Qty:        ln.Qty,
			UnitCost:   item.StandardCost,
		}
		if err := tx.Create(&line).Error; err != nil {
			return nil, err
		}

		movement := models.StockMovement{
			ItemID:         item.ID,
			FromLocationID: &bal.LocationID,
			QtyOut:         ln.Qty,
			UnitCost:       item.StandardCost,
			HeaderID:       header.ID,
			LineID:         line.ID,
		}
		if err := tx.Create(&movement).Error; err != nil {
			return nil, err
		}

		// Guarded decrement: the quantity >= qty predicate makes the check
		// and the write one atomic statement, so a concurrent issue that
		// drained the row in between turns into RowsAffected == 0 here.
		dec := tx.Model(&models.StockBalance{}).
			Where("id = ? AND quantity >= ?", bal.ID, ln.Qty).
			UpdateColumn("quantity", gorm.Expr("quantity - ?", ln.Qty))
		if dec.Error != nil {
			return nil, dec.Error
		}
		if dec.RowsAffected == 0 {
			var fresh models.StockBalance
			onHand = decimal.Zero
			if err := tx.First(&fresh, bal.ID).Error; err == nil {
				onHand = fresh.Quantity
			}
			return nil, businessErrf("Insufficient stock for %s: on hand %s, requested %s", item.Name, onHand, ln.Qty)
		}

		res.Posted++
		res.Details = append(res.Details, newLineDetail(&item, ln.Qty, item.StandardCost))
	}
	return res, nil
}

func resolveReceiptLocation(tx *gorm.DB, locationID *uint) (*models.Location, error) {
	var loc models.Location
	if locationID != nil && *locationID != 0 {
		if err := tx.First(&loc, *locationID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, businessErrf("Location %d not found", *locationID)
			}
			return nil, err
		}
		return &loc, nil
	}
	if err := tx.Where("is_active = ?", true).Order("id").First(&loc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, businessErrf("No active location configured")
		}
		return nil, err
	}
	return &loc, nil
}

// resolveCompany looks a counterparty up by id or by name. A name that
// matches nothing leaves the header without a counterparty; a bad id is a
// caller error.
func resolveCompany(tx *gorm.DB, companyType string, id *uint, name string) (*uint, error) {
	if id != nil && *id != 0 {
		var company models.Company
		if err := tx.Where("type = ?", companyType).First(&company, *id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, businessErrf("%s %d not found", companyType, *id)
			}
			return nil, err
		}
		return &company.ID, nil
	}
	if name != "" {
		var company models.Company
		err := tx.Where("type = ? AND name = ?", companyType, name).First(&company).Error
		if err == nil {
			return &company.ID, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}
	return nil, nil
}

// resolveIssueBalance finds the row to draw from: the exact (item, location)
// row when a location is given, otherwise any row holding positive stock.
func resolveIssueBalance(tx *gorm.DB, itemID uint, locationID *uint) (*models.StockBalance, error) {
	var bal models.StockBalance
	q := tx.Where("item_id = ? AND lot IS NULL", itemID)
	if locationID != nil && *locationID != 0 {
		q = q.Where("location_id = ?", *locationID)
	} else {
		q = q.Where("quantity > ?", decimal.Zero)
	}
	if err := q.Order("id").First(&bal).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &bal, nil
}

// incrementBalance upserts the (item, location) balance row with an atomic
// increment; the row is created on first receipt.
func incrementBalance(tx *gorm.DB, itemID, locationID uint, qty decimal.Decimal) error {
	upd := tx.Model(&models.StockBalance{}).
		Where("item_id = ? AND location_id = ? AND lot IS NULL", itemID, locationID).
		UpdateColumn("quantity", gorm.Expr("quantity + ?", qty))
	if upd.Error != nil {
		return upd.Error
	}
	if upd.RowsAffected > 0 {
		return nil
	}
	return tx.Create(&models.StockBalance{
		ItemID:     itemID,
		LocationID: locationID,
		Quantity:   qty,
	}).Error
}

func newLineDetail(item *models.Item, qty, unitCost decimal.Decimal) lineDetail {
	d := lineDetail{
		ItemID:   item.ID,
		SKU:      item.SKU,
		Name:     item.Name,
		Qty:      qty.String(),
		UnitCost: unitCost.String(),
	}
	if item.Brand != nil {
		d.Brand = item.Brand.Name
	}
	if item.Category != nil {
		d.Category = item.Category.Name
	}
	return d
}
