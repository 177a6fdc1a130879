package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/afritrim-api/internal/domain/billing"
	userdomain "github.com/BruksfildServices01/afritrim-api/internal/domain/user"
	"github.com/BruksfildServices01/afritrim-api/internal/httperr"
	"github.com/BruksfildServices01/afritrim-api/internal/httpresp"
	"github.com/BruksfildServices01/afritrim-api/internal/identity"
	"github.com/BruksfildServices01/afritrim-api/internal/middleware"
	"github.com/BruksfildServices01/afritrim-api/internal/usecase/billing"
)

type InvoiceUseCases struct {
	Create       *billing.CreateInvoice
	Update       *billing.UpdateInvoice
	UpdateStatus *billing.UpdateInvoiceStatus
	Delete       *billing.DeleteInvoice
	Get          *billing.GetInvoice
	List         *billing.ListInvoices
	Checkout     *billing.CreateCheckout
}

type InvoiceHandler struct {
	db    *gorm.DB
	uc    InvoiceUseCases
	users userdomain.Repository
}

func NewInvoiceHandler(db *gorm.DB, uc InvoiceUseCases, users userdomain.Repository) *InvoiceHandler {
	return &InvoiceHandler{db: db, uc: uc, users: users}
}

type CreateInvoiceRequest struct {
	ClientID     uint    `json:"client_id" binding:"required"`
	BarbershopID uint    `json:"barbershop_id" binding:"required"`
	Amount       float64 `json:"amount"`
	Status       string  `json:"status"`
}

type UpdateInvoiceRequest struct {
	ClientID     *uint    `json:"client_id"`
	BarbershopID *uint    `json:"barbershop_id"`
	Amount       *float64 `json:"amount"`
	Status       *string  `json:"status"`
}

func (h *InvoiceHandler) Create(c *gin.Context) {
	var req CreateInvoiceRequest
	if !bindJSON(c, &req) {
		return
	}
	if _, ok := ownedShop(c, h.db, req.BarbershopID); !ok {
		return
	}

	inv, err := h.uc.Create.Execute(c.Request.Context(), billing.CreateInvoiceInput{
		ClientID:     req.ClientID,
		BarbershopID: req.BarbershopID,
		Amount:       req.Amount,
		Status:       req.Status,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusCreated, inv)
}

func (h *InvoiceHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if _, ok := ownedInvoice(c, h.db, id); !ok {
		return
	}

	inv, err := h.uc.Get.Execute(c.Request.Context(), id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, inv)
}

func (h *InvoiceHandler) List(c *gin.Context) {
	f := domain.InvoiceFilter{OwnerUID: ownerScope(c)}
	var ok bool
	if f.ClientID, ok = queryUint(c, "client_id"); !ok {
		return
	}
	if f.BarbershopID, ok = queryUint(c, "barbershop_id"); !ok {
		return
	}

	invoices, err := h.uc.List.Execute(c.Request.Context(), f)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.List(c, invoices)
}

func (h *InvoiceHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req UpdateInvoiceRequest
	if !bindJSON(c, &req) {
		return
	}
	if _, ok := ownedInvoice(c, h.db, id); !ok {
		return
	}
	if req.BarbershopID != nil {
		if _, ok := ownedShop(c, h.db, *req.BarbershopID); !ok {
			return
		}
	}

	inv, err := h.uc.Update.Execute(c.Request.Context(), id, billing.UpdateInvoiceInput{
		ClientID:     req.ClientID,
		BarbershopID: req.BarbershopID,
		Amount:       req.Amount,
		Status:       req.Status,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, inv)
}

func (h *InvoiceHandler) UpdateStatus(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if !bindJSON(c, &req) {
		return
	}
	if _, ok := ownedInvoice(c, h.db, id); !ok {
		return
	}

	inv, err := h.uc.UpdateStatus.Execute(c.Request.Context(), id, req.Status)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, inv)
}

func (h *InvoiceHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if _, ok := ownedInvoice(c, h.db, id); !ok {
		return
	}

	if err := h.uc.Delete.Execute(c.Request.Context(), id); err != nil {
		httperr.FromError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ======================================================
// CHECKOUT
// ======================================================

// Checkout opens a hosted payment page. Clients may only check out their
// own invoices and admins those of their barbershops.
func (h *InvoiceHandler) Checkout(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	ctx := c.Request.Context()

	if middleware.ClaimsOf(c).Has(identity.RoleAdmin) || middleware.IsPlatform(c) {
		if _, ok := ownedInvoice(c, h.db, id); !ok {
			return
		}
	} else {
		cl, err := h.users.FindClient(ctx, middleware.UIDOf(c))
		if err != nil {
			httperr.FromError(c, err)
			return
		}
		inv, err := h.uc.Get.Execute(ctx, id)
		if err != nil {
			httperr.FromError(c, err)
			return
		}
		if cl == nil || inv.ClientID != cl.ID {
			httperr.NotFound(c, "invoice_not_found", "Invoice not found.")
			return
		}
	}

	co, err := h.uc.Checkout.Execute(ctx, id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusCreated, co)
}
