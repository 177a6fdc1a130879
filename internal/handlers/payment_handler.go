package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/afritrim-api/internal/domain/billing"
	"github.com/BruksfildServices01/afritrim-api/internal/httperr"
	"github.com/BruksfildServices01/afritrim-api/internal/httpresp"
	"github.com/BruksfildServices01/afritrim-api/internal/middleware"
	"github.com/BruksfildServices01/afritrim-api/internal/usecase/billing"
)

type PaymentUseCases struct {
	Create *billing.CreatePayment
	Update *billing.UpdatePayment
	Delete *billing.DeletePayment
	List   *billing.ListPayments
	Latest *billing.LatestPaymentStatusForAdmin
}

type PaymentHandler struct {
	db *gorm.DB
	uc PaymentUseCases
}

func NewPaymentHandler(db *gorm.DB, uc PaymentUseCases) *PaymentHandler {
	return &PaymentHandler{db: db, uc: uc}
}

type CreatePaymentRequest struct {
	Amount    float64 `json:"amount"`
	InvoiceID *uint   `json:"invoice_id"`
	SaleID    *uint   `json:"sale_id"`
	Status    string  `json:"status"`
}

type UpdatePaymentRequest struct {
	Amount *float64 `json:"amount"`
	Status *string  `json:"status"`
}

// Create records a payment on behalf of the calling admin. A linked
// invoice or sale must belong to one of the caller's barbershops.
func (h *PaymentHandler) Create(c *gin.Context) {
	var req CreatePaymentRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.InvoiceID != nil {
		if _, ok := ownedInvoice(c, h.db, *req.InvoiceID); !ok {
			return
		}
	}
	if req.SaleID != nil {
		if _, ok := ownedSale(c, h.db, *req.SaleID); !ok {
			return
		}
	}

	p, err := h.uc.Create.Execute(c.Request.Context(), billing.CreatePaymentInput{
		AdminID:   middleware.UIDOf(c),
		Amount:    req.Amount,
		InvoiceID: req.InvoiceID,
		SaleID:    req.SaleID,
		Status:    req.Status,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusCreated, p)
}

func (h *PaymentHandler) List(c *gin.Context) {
	invoiceID, ok := queryUint(c, "invoice_id")
	if !ok {
		return
	}

	payments, err := h.uc.List.Execute(c.Request.Context(), domain.PaymentFilter{
		InvoiceID: invoiceID,
		AdminID:   c.Query("admin_id"),
		OwnerUID:  ownerScope(c),
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.List(c, payments)
}

func (h *PaymentHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req UpdatePaymentRequest
	if !bindJSON(c, &req) {
		return
	}
	if _, ok := ownedPayment(c, h.db, id); !ok {
		return
	}

	p, err := h.uc.Update.Execute(c.Request.Context(), id, billing.UpdatePaymentInput{
		Amount: req.Amount,
		Status: req.Status,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, p)
}

func (h *PaymentHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if _, ok := ownedPayment(c, h.db, id); !ok {
		return
	}

	if err := h.uc.Delete.Execute(c.Request.Context(), id); err != nil {
		httperr.FromError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// LatestStatus reports the caller's most recent payment status.
func (h *PaymentHandler) LatestStatus(c *gin.Context) {
	status, err := h.uc.Latest.Execute(c.Request.Context(), middleware.UIDOf(c))
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": status})
}
