package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/afritrim-api/internal/httperr"
	"github.com/BruksfildServices01/afritrim-api/internal/middleware"
	"github.com/BruksfildServices01/afritrim-api/internal/models"
)

// ======================================================
// TENANCY
// ======================================================
//
// Every admin-facing resource hangs off a barbershop. The helpers below
// resolve that barbershop and hand it to ownedShop, which aborts with 403
// when another admin owns it. Platform operators pass every check.

// ownerScope is the uid list filters narrow to. Empty means every tenant.
func ownerScope(c *gin.Context) string {
	if middleware.IsPlatform(c) {
		return ""
	}
	return middleware.UIDOf(c)
}

func forbidden(c *gin.Context, msg string) {
	httperr.Abort(c, http.StatusForbidden, "forbidden", msg)
}

// ownedBarber checks the barber works at a barbershop the caller owns.
func ownedBarber(c *gin.Context, db *gorm.DB, id uint) (*models.Barber, bool) {
	var barber models.Barber
	if err := db.WithContext(c.Request.Context()).First(&barber, id).Error; err != nil {
		storeError(c, err, "barber_not_found")
		return nil, false
	}
	if middleware.IsPlatform(c) {
		return &barber, true
	}
	if barber.BarbershopID == nil {
		forbidden(c, "Barber is not attached to your barbershop.")
		return nil, false
	}
	if _, ok := ownedShop(c, db, *barber.BarbershopID); !ok {
		return nil, false
	}
	return &barber, true
}

func ownedInvoice(c *gin.Context, db *gorm.DB, id uint) (*models.Invoice, bool) {
	var inv models.Invoice
	if err := db.WithContext(c.Request.Context()).First(&inv, id).Error; err != nil {
		storeError(c, err, "invoice_not_found")
		return nil, false
	}
	if _, ok := ownedShop(c, db, inv.BarbershopID); !ok {
		return nil, false
	}
	return &inv, true
}

func ownedSale(c *gin.Context, db *gorm.DB, id uint) (*models.Sale, bool) {
	var sale models.Sale
	if err := db.WithContext(c.Request.Context()).First(&sale, id).Error; err != nil {
		storeError(c, err, "sale_not_found")
		return nil, false
	}
	if _, ok := ownedShop(c, db, sale.BarbershopID); !ok {
		return nil, false
	}
	return &sale, true
}

// ownedPayment admits the admin who recorded the payment and the owner of
// the invoice or sale it settles.
func ownedPayment(c *gin.Context, db *gorm.DB, id uint) (*models.Payment, bool) {
	var p models.Payment
	if err := db.WithContext(c.Request.Context()).First(&p, id).Error; err != nil {
		storeError(c, err, "payment_not_found")
		return nil, false
	}
	if middleware.IsPlatform(c) || p.AdminID == middleware.UIDOf(c) {
		return &p, true
	}

	switch {
	case p.InvoiceID != nil:
		if _, ok := ownedInvoice(c, db, *p.InvoiceID); !ok {
			return nil, false
		}
	case p.SaleID != nil:
		if _, ok := ownedSale(c, db, *p.SaleID); !ok {
			return nil, false
		}
	default:
		forbidden(c, "Payment belongs to another admin.")
		return nil, false
	}
	return &p, true
}

// ownedShopIDs lists the barbershops the caller owns. Nil for platform
// operators, who are not narrowed.
func ownedShopIDs(c *gin.Context, db *gorm.DB) ([]uint, bool) {
	if middleware.IsPlatform(c) {
		return nil, true
	}
	ids := []uint{}
	if err := db.WithContext(c.Request.Context()).
		Model(&models.Barbershop{}).
		Where("admin_id = ?", middleware.UIDOf(c)).
		Pluck("id", &ids).Error; err != nil {
		storeError(c, err, "barbershop_not_found")
		return nil, false
	}
	return ids, true
}

// selfOrManager admits the uid itself, platform operators, and the admin
// owning the barbershop the uid works at.
func selfOrManager(c *gin.Context, db *gorm.DB, uid string) bool {
	if uid == middleware.UIDOf(c) || middleware.IsPlatform(c) {
		return true
	}

	var n int64
	err := db.WithContext(c.Request.Context()).
		Model(&models.Barber{}).
		Where("uid = ?", uid).
		Where("barbershop_id IN (?)", db.Model(&models.Barbershop{}).
			Select("id").
			Where("admin_id = ?", middleware.UIDOf(c))).
		Count(&n).Error
	if err != nil {
		storeError(c, err, "user_not_found")
		return false
	}
	if n == 0 {
		forbidden(c, "Not allowed for this user.")
		return false
	}
	return true
}

func selfOrPlatform(c *gin.Context, uid string) bool {
	if uid == middleware.UIDOf(c) || middleware.IsPlatform(c) {
		return true
	}
	forbidden(c, "Not allowed for this user.")
	return false
}
