package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/afritrim-api/internal/audit"
	"github.com/BruksfildServices01/afritrim-api/internal/httperr"
	"github.com/BruksfildServices01/afritrim-api/internal/middleware"
	"github.com/BruksfildServices01/afritrim-api/internal/models"
	"github.com/BruksfildServices01/afritrim-api/internal/usecase/user"
)

type AdminHandler struct {
	db     *gorm.DB
	audit  *audit.Dispatcher
	delete *user.DeleteUser
}

func NewAdminHandler(db *gorm.DB, audit *audit.Dispatcher, del *user.DeleteUser) *AdminHandler {
	return &AdminHandler{db: db, audit: audit, delete: del}
}

type SuspendRequest struct {
	Suspended *bool `json:"suspended" binding:"required"`
}

func (h *AdminHandler) load(c *gin.Context) (*models.Admin, bool) {
	var admin models.Admin
	if err := h.db.WithContext(c.Request.Context()).
		Where("uid = ?", c.Param("uid")).
		First(&admin).Error; err != nil {
		storeError(c, err, "admin_not_found")
		return nil, false
	}
	return &admin, true
}

// Get and Delete act on the caller's own account unless the caller is a
// platform operator.
func (h *AdminHandler) Get(c *gin.Context) {
	if !selfOrPlatform(c, c.Param("uid")) {
		return
	}
	admin, ok := h.load(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, admin)
}

// Suspend flips is_active. Only platform operators reach it and none can
// suspend themself.
func (h *AdminHandler) Suspend(c *gin.Context) {
	var req SuspendRequest
	if !bindJSON(c, &req) {
		return
	}

	admin, ok := h.load(c)
	if !ok {
		return
	}
	if admin.UID == middleware.UIDOf(c) {
		httperr.BadRequest(c, "cannot_suspend_self", "Admins cannot suspend themselves.")
		return
	}

	active := !*req.Suspended
	if err := h.db.WithContext(c.Request.Context()).
		Model(admin).
		Update("is_active", active).Error; err != nil {
		storeError(c, err, "admin_not_found")
		return
	}
	admin.IsActive = active

	h.audit.DispatchCtx(c.Request.Context(), audit.Event{
		Action:   "admin_suspension_changed",
		Entity:   "admin",
		EntityID: &admin.ID,
		Metadata: map[string]bool{"suspended": *req.Suspended},
	})

	c.JSON(http.StatusOK, admin)
}

func (h *AdminHandler) Delete(c *gin.Context) {
	if !selfOrPlatform(c, c.Param("uid")) {
		return
	}
	admin, ok := h.load(c)
	if !ok {
		return
	}

	if err := h.delete.Execute(c.Request.Context(), admin.UID); err != nil {
		httperr.FromError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
