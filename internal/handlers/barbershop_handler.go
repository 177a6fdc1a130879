package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/afritrim-api/internal/audit"
	"github.com/BruksfildServices01/afritrim-api/internal/httperr"
	"github.com/BruksfildServices01/afritrim-api/internal/httpresp"
	"github.com/BruksfildServices01/afritrim-api/internal/middleware"
	"github.com/BruksfildServices01/afritrim-api/internal/models"
)

type BarbershopHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewBarbershopHandler(db *gorm.DB, audit *audit.Dispatcher) *BarbershopHandler {
	return &BarbershopHandler{db: db, audit: audit}
}

type CreateBarbershopRequest struct {
	Name     string `json:"name" binding:"required"`
	Location string `json:"location"`
}

type UpdateBarbershopRequest struct {
	Name     *string `json:"name"`
	Location *string `json:"location"`
}

// ======================================================
// READ
// ======================================================

// List searches by name and location, both case-insensitive substrings.
func (h *BarbershopHandler) List(c *gin.Context) {
	name := strings.ToLower(strings.TrimSpace(c.Query("name")))
	location := strings.ToLower(strings.TrimSpace(c.Query("location")))

	q := h.db.WithContext(c.Request.Context()).Model(&models.Barbershop{})
	if name != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+name+"%")
	}
	if location != "" {
		q = q.Where("LOWER(location) LIKE ?", "%"+location+"%")
	}

	var shops []models.Barbershop
	if err := q.Order("id ASC").Find(&shops).Error; err != nil {
		storeError(c, err, "barbershop_not_found")
		return
	}

	httpresp.List(c, shops)
}

func (h *BarbershopHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var shop models.Barbershop
	if err := h.db.WithContext(c.Request.Context()).
		Preload("Services").
		First(&shop, id).Error; err != nil {
		storeError(c, err, "barbershop_not_found")
		return
	}

	c.JSON(http.StatusOK, shop)
}

func (h *BarbershopHandler) ListBarbers(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok || !h.exists(c, id) {
		return
	}

	var barbers []models.Barber
	if err := h.db.WithContext(c.Request.Context()).
		Where("barbershop_id = ?", id).
		Order("id ASC").
		Find(&barbers).Error; err != nil {
		storeError(c, err, "barber_not_found")
		return
	}

	httpresp.List(c, barbers)
}

func (h *BarbershopHandler) ListServices(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok || !h.exists(c, id) {
		return
	}

	var services []models.Service
	if err := h.db.WithContext(c.Request.Context()).
		Where("barbershop_id = ?", id).
		Order("id ASC").
		Find(&services).Error; err != nil {
		storeError(c, err, "service_not_found")
		return
	}

	httpresp.List(c, services)
}

func (h *BarbershopHandler) exists(c *gin.Context, id uint) bool {
	var shop models.Barbershop
	if err := h.db.WithContext(c.Request.Context()).Select("id").First(&shop, id).Error; err != nil {
		storeError(c, err, "barbershop_not_found")
		return false
	}
	return true
}

// ======================================================
// WRITE
// ======================================================

func (h *BarbershopHandler) Create(c *gin.Context) {
	var req CreateBarbershopRequest
	if !bindJSON(c, &req) {
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		httperr.BadRequest(c, "name_required", "Name is required.")
		return
	}

	shop := models.Barbershop{
		AdminID:  middleware.UIDOf(c),
		Name:     strings.TrimSpace(req.Name),
		Location: strings.TrimSpace(req.Location),
	}
	if err := h.db.WithContext(c.Request.Context()).Create(&shop).Error; err != nil {
		storeError(c, err, "barbershop_not_found")
		return
	}

	h.audit.DispatchCtx(c.Request.Context(), audit.Event{
		BarbershopID: &shop.ID,
		Action:       "barbershop_created",
		Entity:       "barbershop",
		EntityID:     &shop.ID,
	})

	c.JSON(http.StatusCreated, shop)
}

func (h *BarbershopHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req UpdateBarbershopRequest
	if !bindJSON(c, &req) {
		return
	}

	shop, ok := ownedShop(c, h.db, id)
	if !ok {
		return
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			httperr.BadRequest(c, "name_required", "Name is required.")
			return
		}
		shop.Name = strings.TrimSpace(*req.Name)
	}
	if req.Location != nil {
		shop.Location = strings.TrimSpace(*req.Location)
	}

	if err := h.db.WithContext(c.Request.Context()).Omit("Services", "Barbers").Save(shop).Error; err != nil {
		storeError(c, err, "barbershop_not_found")
		return
	}

	h.audit.DispatchCtx(c.Request.Context(), audit.Event{
		BarbershopID: &shop.ID,
		Action:       "barbershop_updated",
		Entity:       "barbershop",
		EntityID:     &shop.ID,
	})

	c.JSON(http.StatusOK, shop)
}

// Delete removes the shop with its services and archives its barbers in one
// transaction. Archived barber rows keep their history but lose the shop
// reference. Services still referenced by appointments block it.
func (h *BarbershopHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	shop, ok := ownedShop(c, h.db, id)
	if !ok {
		return
	}

	err := h.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("barbershop_id = ?", shop.ID).Delete(&models.Barber{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Model(&models.Barber{}).
			Where("barbershop_id = ?", shop.ID).
			Update("barbershop_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Where("barbershop_id = ?", shop.ID).Delete(&models.Service{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Barbershop{}, shop.ID).Error
	})
	if err != nil {
		if httperr.IsForeignKeyViolation(err) {
			httperr.FromError(c, httperr.BusinessError{Kind: httperr.KindConflict, Code: "barbershop_in_use", Err: err})
			return
		}
		storeError(c, err, "barbershop_not_found")
		return
	}

	h.audit.DispatchCtx(c.Request.Context(), audit.Event{
		Action:   "barbershop_deleted",
		Entity:   "barbershop",
		EntityID: &shop.ID,
	})

	c.Status(http.StatusNoContent)
}
