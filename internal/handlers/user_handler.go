package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	userdomain "github.com/BruksfildServices01/afritrim-api/internal/domain/user"
	"github.com/BruksfildServices01/afritrim-api/internal/httperr"
	"github.com/BruksfildServices01/afritrim-api/internal/identity"
	"github.com/BruksfildServices01/afritrim-api/internal/middleware"
	"github.com/BruksfildServices01/afritrim-api/internal/usecase/user"
)

// ======================================================
// HANDLER
// ======================================================

type UserHandler struct {
	db         *gorm.DB
	create     *user.CreateUser
	get        *user.GetUserByUID
	update     *user.UpdateUser
	updateRole *user.UpdateUserRole
	delete     *user.DeleteUser
}

func NewUserHandler(
	db *gorm.DB,
	create *user.CreateUser,
	get *user.GetUserByUID,
	update *user.UpdateUser,
	updateRole *user.UpdateUserRole,
	del *user.DeleteUser,
) *UserHandler {
	return &UserHandler{
		db:         db,
		create:     create,
		get:        get,
		update:     update,
		updateRole: updateRole,
		delete:     del,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateUserRequest struct {
	UID          string `json:"uid"`
	Name         string `json:"name" binding:"required"`
	Email        string `json:"email" binding:"required"`
	PhoneNumber  string `json:"phone_number"`
	PhotoURL     string `json:"photo_url"`
	BarbershopID *uint  `json:"barbershop_id"`
	Role         string `json:"role" binding:"required"`
}

type UpdateUserRequest struct {
	Name        *string `json:"name"`
	Email       *string `json:"email"`
	PhoneNumber *string `json:"phone_number"`
	PhotoURL    *string `json:"photo_url"`
}

type UpdateRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

func userResponse(rec *userdomain.Record) gin.H {
	return gin.H{
		"role": rec.Role,
		"user": rec.Row(),
	}
}

// ======================================================
// CREATE
// ======================================================

// Create registers the profile row. Non-admin callers may only create
// their own profile. Admins may create barbers for their own barbershops
// and clients; only platform operators create other admins.
func (h *UserHandler) Create(c *gin.Context) {
	var req CreateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	if req.UID == "" || !middleware.ClaimsOf(c).Has(identity.RoleAdmin) {
		req.UID = middleware.UIDOf(c)
	}
	if req.UID != middleware.UIDOf(c) && !h.mayCreate(c, req) {
		return
	}

	rec, err := h.create.Execute(c.Request.Context(), userdomain.Data{
		UID:          req.UID,
		Name:         req.Name,
		Email:        req.Email,
		PhoneNumber:  req.PhoneNumber,
		PhotoURL:     req.PhotoURL,
		BarbershopID: req.BarbershopID,
	}, req.Role)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusCreated, userResponse(rec))
}

func (h *UserHandler) mayCreate(c *gin.Context, req CreateUserRequest) bool {
	if middleware.IsPlatform(c) {
		return true
	}
	role, err := userdomain.ParseRole(req.Role)
	if err != nil {
		httperr.FromError(c, err)
		return false
	}

	switch role {
	case identity.RoleClient:
		return true
	case identity.RoleBarber:
		if req.BarbershopID == nil {
			forbidden(c, "Barbers must join one of your barbershops.")
			return false
		}
		_, ok := ownedShop(c, h.db, *req.BarbershopID)
		return ok
	}
	forbidden(c, "Only platform operators create admins.")
	return false
}

// ======================================================
// READ
// ======================================================

func (h *UserHandler) Me(c *gin.Context) {
	h.respondUser(c, middleware.UIDOf(c))
}

func (h *UserHandler) Get(c *gin.Context) {
	uid := c.Param("uid")
	if !selfOrManager(c, h.db, uid) {
		return
	}
	h.respondUser(c, uid)
}

func (h *UserHandler) respondUser(c *gin.Context, uid string) {
	rec, err := h.get.Execute(c.Request.Context(), uid)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	if rec == nil {
		httperr.NotFound(c, "user_not_found", "User not found.")
		return
	}

	c.JSON(http.StatusOK, userResponse(rec))
}

// ======================================================
// UPDATE
// ======================================================

func (h *UserHandler) Update(c *gin.Context) {
	uid := c.Param("uid")
	if !selfOrManager(c, h.db, uid) {
		return
	}

	var req UpdateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	rec, err := h.update.Execute(c.Request.Context(), uid, user.UpdateUserInput{
		Name:        req.Name,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		PhotoURL:    req.PhotoURL,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, userResponse(rec))
}

// UpdateRole lets an admin move barbers of their own barbershops between
// non-admin roles. Granting admin or touching anyone else takes a
// platform operator.
func (h *UserHandler) UpdateRole(c *gin.Context) {
	var req UpdateRoleRequest
	if !bindJSON(c, &req) {
		return
	}

	uid := c.Param("uid")
	if !middleware.IsPlatform(c) {
		if uid == middleware.UIDOf(c) {
			forbidden(c, "Admins cannot change their own role.")
			return
		}
		if role, _ := userdomain.ParseRole(req.Role); role == identity.RoleAdmin {
			forbidden(c, "Only platform operators grant the admin role.")
			return
		}
		if !selfOrManager(c, h.db, uid) {
			return
		}
	}

	rec, err := h.updateRole.Execute(c.Request.Context(), uid, req.Role)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, userResponse(rec))
}

// ======================================================
// DELETE
// ======================================================

func (h *UserHandler) Delete(c *gin.Context) {
	uid := c.Param("uid")
	if !selfOrManager(c, h.db, uid) {
		return
	}

	if err := h.delete.Execute(c.Request.Context(), uid); err != nil {
		httperr.FromError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
