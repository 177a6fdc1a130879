package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/afritrim-api/internal/audit"
	userdomain "github.com/BruksfildServices01/afritrim-api/internal/domain/user"
	"github.com/BruksfildServices01/afritrim-api/internal/httperr"
	"github.com/BruksfildServices01/afritrim-api/internal/httpresp"
	"github.com/BruksfildServices01/afritrim-api/internal/identity"
	"github.com/BruksfildServices01/afritrim-api/internal/middleware"
	"github.com/BruksfildServices01/afritrim-api/internal/models"
	"github.com/BruksfildServices01/afritrim-api/internal/usecase/user"
)

type BarberHandler struct {
	db     *gorm.DB
	audit  *audit.Dispatcher
	create *user.CreateUser
	delete *user.DeleteUser
}

func NewBarberHandler(db *gorm.DB, audit *audit.Dispatcher, create *user.CreateUser, del *user.DeleteUser) *BarberHandler {
	return &BarberHandler{db: db, audit: audit, create: create, delete: del}
}

type CreateBarberRequest struct {
	UID          string `json:"uid" binding:"required"`
	Name         string `json:"name" binding:"required"`
	Email        string `json:"email" binding:"required"`
	BarbershopID uint   `json:"barbershop_id" binding:"required"`
}

type UpdateBarberRequest struct {
	Name         *string `json:"name"`
	Email        *string `json:"email"`
	BarbershopID *uint   `json:"barbershop_id"`
}

type AvailabilityRequest struct {
	Available *bool `json:"available" binding:"required"`
}

// ======================================================
// READ
// ======================================================

func (h *BarberHandler) List(c *gin.Context) {
	shopID, ok := queryUint(c, "barbershop_id")
	if !ok {
		return
	}

	q := h.db.WithContext(c.Request.Context()).Model(&models.Barber{})
	if shopID != nil {
		q = q.Where("barbershop_id = ?", *shopID)
	}
	switch c.Query("available") {
	case "true":
		q = q.Where("available = ?", true)
	case "false":
		q = q.Where("available = ?", false)
	}

	var barbers []models.Barber
	if err := q.Order("id ASC").Find(&barbers).Error; err != nil {
		storeError(c, err, "barber_not_found")
		return
	}

	httpresp.List(c, barbers)
}

func (h *BarberHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var barber models.Barber
	if err := h.db.WithContext(c.Request.Context()).First(&barber, id).Error; err != nil {
		storeError(c, err, "barber_not_found")
		return
	}

	c.JSON(http.StatusOK, barber)
}

// ======================================================
// WRITE
// ======================================================

// Create registers an existing identity as a barber of a shop the caller owns.
func (h *BarberHandler) Create(c *gin.Context) {
	var req CreateBarberRequest
	if !bindJSON(c, &req) {
		return
	}
	if _, ok := ownedShop(c, h.db, req.BarbershopID); !ok {
		return
	}

	rec, err := h.create.Execute(c.Request.Context(), userdomain.Data{
		UID:          req.UID,
		Name:         req.Name,
		Email:        req.Email,
		BarbershopID: &req.BarbershopID,
	}, string(identity.RoleBarber))
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusCreated, rec.Barber)
}

// editable loads the barber and checks the caller may change it: the
// barber themself or the admin owning their shop.
func (h *BarberHandler) editable(c *gin.Context, id uint) (*models.Barber, bool) {
	var barber models.Barber
	if err := h.db.WithContext(c.Request.Context()).First(&barber, id).Error; err != nil {
		storeError(c, err, "barber_not_found")
		return nil, false
	}

	if barber.UID == middleware.UIDOf(c) {
		return &barber, true
	}
	if middleware.ClaimsOf(c).Has(identity.RoleAdmin) && barber.BarbershopID != nil {
		if _, ok := ownedShop(c, h.db, *barber.BarbershopID); !ok {
			return nil, false
		}
		return &barber, true
	}

	httperr.Abort(c, http.StatusForbidden, "forbidden", "Not allowed for this barber.")
	return nil, false
}

func (h *BarberHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req UpdateBarberRequest
	if !bindJSON(c, &req) {
		return
	}

	barber, ok := h.editable(c, id)
	if !ok {
		return
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			httperr.BadRequest(c, "name_required", "Name is required.")
			return
		}
		barber.Name = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		barber.Email = strings.TrimSpace(*req.Email)
	}
	if req.BarbershopID != nil {
		if _, ok := ownedShop(c, h.db, *req.BarbershopID); !ok {
			return
		}
		barber.BarbershopID = req.BarbershopID
	}

	if err := h.db.WithContext(c.Request.Context()).Omit("Reviews").Save(barber).Error; err != nil {
		storeError(c, err, "barber_not_found")
		return
	}

	h.audit.DispatchCtx(c.Request.Context(), audit.Event{
		BarbershopID: barber.BarbershopID,
		Action:       "barber_updated",
		Entity:       "barber",
		EntityID:     &barber.ID,
	})

	c.JSON(http.StatusOK, barber)
}

func (h *BarberHandler) SetAvailability(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req AvailabilityRequest
	if !bindJSON(c, &req) {
		return
	}

	barber, ok := h.editable(c, id)
	if !ok {
		return
	}

	if err := h.db.WithContext(c.Request.Context()).
		Model(barber).
		Update("available", *req.Available).Error; err != nil {
		storeError(c, err, "barber_not_found")
		return
	}
	barber.Available = *req.Available

	h.audit.DispatchCtx(c.Request.Context(), audit.Event{
		BarbershopID: barber.BarbershopID,
		Action:       "barber_availability_changed",
		Entity:       "barber",
		EntityID:     &barber.ID,
		Metadata:     map[string]bool{"available": barber.Available},
	})

	c.JSON(http.StatusOK, barber)
}

// Delete removes the barber row and the identity account behind it.
func (h *BarberHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	barber, ok := h.editable(c, id)
	if !ok {
		return
	}

	if err := h.delete.Execute(c.Request.Context(), barber.UID); err != nil {
		httperr.FromError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
