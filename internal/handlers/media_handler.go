package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	mediadomain "github.com/BruksfildServices01/afritrim-api/internal/domain/media"
	"github.com/BruksfildServices01/afritrim-api/internal/httperr"
	"github.com/BruksfildServices01/afritrim-api/internal/identity"
	"github.com/BruksfildServices01/afritrim-api/internal/middleware"
	"github.com/BruksfildServices01/afritrim-api/internal/models"
	"github.com/BruksfildServices01/afritrim-api/internal/usecase/media"
)

const maxUploadBytes = 10 << 20

type MediaHandler struct {
	db     *gorm.DB
	upload *media.UploadImage
}

func NewMediaHandler(db *gorm.DB, upload *media.UploadImage) *MediaHandler {
	return &MediaHandler{db: db, upload: upload}
}

// Upload takes a multipart "file" field and replaces the entity's photo.
func (h *MediaHandler) Upload(c *gin.Context) {
	model := c.Param("model")
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if !mediadomain.ValidModel(model) {
		httperr.BadRequest(c, "invalid_model", "Unknown model.")
		return
	}
	if !h.mayUpload(c, model, id) {
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBytes)
	fh, err := c.FormFile("file")
	if err != nil {
		httperr.BadRequest(c, "file_required", "Multipart field \"file\" is required.")
		return
	}
	f, err := fh.Open()
	if err != nil {
		httperr.BadRequest(c, "file_unreadable", "Uploaded file could not be read.")
		return
	}
	defer f.Close()

	url, err := h.upload.Execute(c.Request.Context(), model, id, f)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"photo_url": url})
}

// mayUpload limits barbers to their own picture and admins to entities of
// shops they own.
func (h *MediaHandler) mayUpload(c *gin.Context, model string, id uint) bool {
	ctx := c.Request.Context()
	uid := middleware.UIDOf(c)

	if !middleware.ClaimsOf(c).Has(identity.RoleAdmin) && !middleware.IsPlatform(c) {
		var barber models.Barber
		err := h.db.WithContext(ctx).Where("uid = ?", uid).First(&barber).Error
		if err == nil && model == mediadomain.ModelBarber && barber.ID == id {
			return true
		}
		httperr.Abort(c, http.StatusForbidden, "forbidden", "Barbers may only change their own photo.")
		return false
	}

	var shopID uint
	switch model {
	case mediadomain.ModelBarbershop:
		shopID = id
	case mediadomain.ModelService:
		var svc models.Service
		if err := h.db.WithContext(ctx).First(&svc, id).Error; err != nil {
			storeError(c, err, "service_not_found")
			return false
		}
		shopID = svc.BarbershopID
	case mediadomain.ModelBarber:
		var barber models.Barber
		if err := h.db.WithContext(ctx).First(&barber, id).Error; err != nil {
			storeError(c, err, "barber_not_found")
			return false
		}
		if barber.BarbershopID == nil {
			httperr.Abort(c, http.StatusForbidden, "forbidden", "Barber is not assigned to a barbershop.")
			return false
		}
		shopID = *barber.BarbershopID
	}

	_, ok := ownedShop(c, h.db, shopID)
	return ok
}
