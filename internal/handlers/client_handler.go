package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	userdomain "github.com/BruksfildServices01/afritrim-api/internal/domain/user"
	"github.com/BruksfildServices01/afritrim-api/internal/httperr"
	"github.com/BruksfildServices01/afritrim-api/internal/httpresp"
	"github.com/BruksfildServices01/afritrim-api/internal/identity"
	"github.com/BruksfildServices01/afritrim-api/internal/models"
	"github.com/BruksfildServices01/afritrim-api/internal/usecase/user"
)

type ClientHandler struct {
	db     *gorm.DB
	create *user.CreateUser
	update *user.UpdateUser
	delete *user.DeleteUser
}

func NewClientHandler(db *gorm.DB, create *user.CreateUser, update *user.UpdateUser, del *user.DeleteUser) *ClientHandler {
	return &ClientHandler{db: db, create: create, update: update, delete: del}
}

type CreateClientRequest struct {
	UID         string `json:"uid" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Email       string `json:"email" binding:"required"`
	PhoneNumber string `json:"phone_number"`
}

// ======================================================
// LIST / GET
// ======================================================

func (h *ClientHandler) List(c *gin.Context) {
	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.WithContext(c.Request.Context()).Model(&models.Client{})
	if query != "" {
		like := "%" + query + "%"
		q = q.Where(
			"LOWER(name) LIKE ? OR phone_number LIKE ? OR LOWER(email) LIKE ?",
			like, like, like,
		)
	}

	var clients []models.Client
	if err := q.Order("created_at DESC").Find(&clients).Error; err != nil {
		storeError(c, err, "client_not_found")
		return
	}

	httpresp.List(c, clients)
}

func (h *ClientHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	client, ok := h.load(c, id)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, client)
}

func (h *ClientHandler) load(c *gin.Context, id uint) (*models.Client, bool) {
	var client models.Client
	if err := h.db.WithContext(c.Request.Context()).First(&client, id).Error; err != nil {
		storeError(c, err, "client_not_found")
		return nil, false
	}
	return &client, true
}

// ======================================================
// WRITE
// ======================================================

func (h *ClientHandler) Create(c *gin.Context) {
	var req CreateClientRequest
	if !bindJSON(c, &req) {
		return
	}

	rec, err := h.create.Execute(c.Request.Context(), userdomain.Data{
		UID:         req.UID,
		Name:        req.Name,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
	}, string(identity.RoleClient))
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusCreated, rec.Client)
}

// Update lets clients edit their own row. Clients are shared between
// barbershops, so only platform operators edit or delete someone else's.
func (h *ClientHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req UpdateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	client, ok := h.load(c, id)
	if !ok || !selfOrPlatform(c, client.UID) {
		return
	}

	rec, err := h.update.Execute(c.Request.Context(), client.UID, user.UpdateUserInput{
		Name:        req.Name,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		PhotoURL:    req.PhotoURL,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, rec.Client)
}

func (h *ClientHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	client, ok := h.load(c, id)
	if !ok || !selfOrPlatform(c, client.UID) {
		return
	}

	if err := h.delete.Execute(c.Request.Context(), client.UID); err != nil {
		httperr.FromError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
