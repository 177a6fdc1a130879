package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/afritrim-api/internal/domain/billing"
	"github.com/BruksfildServices01/afritrim-api/internal/httperr"
	"github.com/BruksfildServices01/afritrim-api/internal/httpresp"
	"github.com/BruksfildServices01/afritrim-api/internal/usecase/billing"
)

type SaleUseCases struct {
	Create  *billing.CreateSale
	Update  *billing.UpdateSale
	Delete  *billing.DeleteSale
	Get     *billing.GetSale
	List    *billing.ListSales
	Totals  *billing.GetTotalSales
	Average *billing.GetAverageSale
}

type SaleHandler struct {
	db *gorm.DB
	uc SaleUseCases
}

func NewSaleHandler(db *gorm.DB, uc SaleUseCases) *SaleHandler {
	return &SaleHandler{db: db, uc: uc}
}

type CreateSaleRequest struct {
	ClientID     uint    `json:"client_id" binding:"required"`
	BarbershopID uint    `json:"barbershop_id" binding:"required"`
	BarberID     *uint   `json:"barber_id"`
	InvoiceID    *uint   `json:"invoice_id"`
	Amount       float64 `json:"amount"`
	Expense      float64 `json:"expense"`
}

type UpdateSaleRequest struct {
	Amount    *float64 `json:"amount"`
	Expense   *float64 `json:"expense"`
	InvoiceID *uint    `json:"invoice_id"`
}

func (h *SaleHandler) Create(c *gin.Context) {
	var req CreateSaleRequest
	if !bindJSON(c, &req) {
		return
	}
	if _, ok := ownedShop(c, h.db, req.BarbershopID); !ok {
		return
	}

	sale, err := h.uc.Create.Execute(c.Request.Context(), billing.CreateSaleInput{
		ClientID:     req.ClientID,
		BarbershopID: req.BarbershopID,
		BarberID:     req.BarberID,
		InvoiceID:    req.InvoiceID,
		Amount:       req.Amount,
		Expense:      req.Expense,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusCreated, sale)
}

func (h *SaleHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if _, ok := ownedSale(c, h.db, id); !ok {
		return
	}

	sale, err := h.uc.Get.Execute(c.Request.Context(), id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, sale)
}

func (h *SaleHandler) List(c *gin.Context) {
	f := domain.SaleFilter{OwnerUID: ownerScope(c)}
	var ok bool
	if f.BarbershopID, ok = queryUint(c, "barbershop_id"); !ok {
		return
	}
	if f.BarberID, ok = queryUint(c, "barber_id"); !ok {
		return
	}
	if f.ClientID, ok = queryUint(c, "client_id"); !ok {
		return
	}

	sales, err := h.uc.List.Execute(c.Request.Context(), f)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.List(c, sales)
}

func (h *SaleHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req UpdateSaleRequest
	if !bindJSON(c, &req) {
		return
	}
	if _, ok := ownedSale(c, h.db, id); !ok {
		return
	}

	sale, err := h.uc.Update.Execute(c.Request.Context(), id, billing.UpdateSaleInput{
		Amount:    req.Amount,
		Expense:   req.Expense,
		InvoiceID: req.InvoiceID,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, sale)
}

func (h *SaleHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if _, ok := ownedSale(c, h.db, id); !ok {
		return
	}

	if err := h.uc.Delete.Execute(c.Request.Context(), id); err != nil {
		httperr.FromError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ======================================================
// AGGREGATES
// ======================================================

func (h *SaleHandler) Totals(c *gin.Context) {
	totals, err := h.uc.Totals.Execute(c.Request.Context(), domain.SaleFilter{
		OwnerUID: ownerScope(c),
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, totals)
}

func (h *SaleHandler) Average(c *gin.Context) {
	f := domain.SaleFilter{OwnerUID: ownerScope(c)}
	var ok bool
	if f.BarbershopID, ok = queryUint(c, "barbershop_id"); !ok {
		return
	}
	if f.BarberID, ok = queryUint(c, "barber_id"); !ok {
		return
	}

	avg, err := h.uc.Average.Execute(c.Request.Context(), f)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"average_sale": avg})
}
