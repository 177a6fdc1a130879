package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/afritrim-api/internal/audit"
	"github.com/BruksfildServices01/afritrim-api/internal/httperr"
	"github.com/BruksfildServices01/afritrim-api/internal/httpresp"
	"github.com/BruksfildServices01/afritrim-api/internal/models"
)

type ServiceHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewServiceHandler(db *gorm.DB, audit *audit.Dispatcher) *ServiceHandler {
	return &ServiceHandler{db: db, audit: audit}
}

// --------- Requests ---------

type CreateServiceRequest struct {
	BarbershopID uint    `json:"barbershop_id" binding:"required"`
	Name         string  `json:"name" binding:"required"`
	Price        float64 `json:"price"`
}

type UpdateServiceRequest struct {
	Name  *string  `json:"name,omitempty"`
	Price *float64 `json:"price,omitempty"`
}

// --------- Handlers ---------

func (h *ServiceHandler) List(c *gin.Context) {
	shopID, ok := queryUint(c, "barbershop_id")
	if !ok {
		return
	}
	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.WithContext(c.Request.Context()).Model(&models.Service{})
	if shopID != nil {
		q = q.Where("barbershop_id = ?", *shopID)
	}
	if query != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+query+"%")
	}

	var services []models.Service
	if err := q.Order("id ASC").Find(&services).Error; err != nil {
		storeError(c, err, "service_not_found")
		return
	}

	httpresp.List(c, services)
}

func (h *ServiceHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var svc models.Service
	if err := h.db.WithContext(c.Request.Context()).First(&svc, id).Error; err != nil {
		storeError(c, err, "service_not_found")
		return
	}

	c.JSON(http.StatusOK, svc)
}

func (h *ServiceHandler) Create(c *gin.Context) {
	var req CreateServiceRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.Price < 0 {
		httperr.BadRequest(c, "invalid_price", "Price must not be negative.")
		return
	}
	if _, ok := ownedShop(c, h.db, req.BarbershopID); !ok {
		return
	}

	svc := models.Service{
		BarbershopID: req.BarbershopID,
		Name:         strings.TrimSpace(req.Name),
		Price:        req.Price,
	}
	if err := h.db.WithContext(c.Request.Context()).Create(&svc).Error; err != nil {
		storeError(c, err, "service_not_found")
		return
	}

	h.audit.DispatchCtx(c.Request.Context(), audit.Event{
		BarbershopID: &svc.BarbershopID,
		Action:       "service_created",
		Entity:       "service",
		EntityID:     &svc.ID,
	})

	c.JSON(http.StatusCreated, svc)
}

// owned loads the service when the caller owns its shop.
func (h *ServiceHandler) owned(c *gin.Context, id uint) (*models.Service, bool) {
	var svc models.Service
	if err := h.db.WithContext(c.Request.Context()).First(&svc, id).Error; err != nil {
		storeError(c, err, "service_not_found")
		return nil, false
	}
	if _, ok := ownedShop(c, h.db, svc.BarbershopID); !ok {
		return nil, false
	}
	return &svc, true
}

func (h *ServiceHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req UpdateServiceRequest
	if !bindJSON(c, &req) {
		return
	}

	svc, ok := h.owned(c, id)
	if !ok {
		return
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			httperr.BadRequest(c, "name_required", "Name is required.")
			return
		}
		svc.Name = strings.TrimSpace(*req.Name)
	}
	if req.Price != nil {
		if *req.Price < 0 {
			httperr.BadRequest(c, "invalid_price", "Price must not be negative.")
			return
		}
		svc.Price = *req.Price
	}

	if err := h.db.WithContext(c.Request.Context()).Save(svc).Error; err != nil {
		storeError(c, err, "service_not_found")
		return
	}

	h.audit.DispatchCtx(c.Request.Context(), audit.Event{
		BarbershopID: &svc.BarbershopID,
		Action:       "service_updated",
		Entity:       "service",
		EntityID:     &svc.ID,
	})

	c.JSON(http.StatusOK, svc)
}

func (h *ServiceHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	svc, ok := h.owned(c, id)
	if !ok {
		return
	}

	if err := h.db.WithContext(c.Request.Context()).Delete(&models.Service{}, svc.ID).Error; err != nil {
		if httperr.IsForeignKeyViolation(err) {
			httperr.FromError(c, httperr.BusinessError{Kind: httperr.KindConflict, Code: "service_in_use", Err: err})
			return
		}
		storeError(c, err, "service_not_found")
		return
	}

	h.audit.DispatchCtx(c.Request.Context(), audit.Event{
		BarbershopID: &svc.BarbershopID,
		Action:       "service_deleted",
		Entity:       "service",
		EntityID:     &svc.ID,
	})

	c.Status(http.StatusNoContent)
}
