package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/afritrim-api/internal/httperr"
	"github.com/BruksfildServices01/afritrim-api/internal/middleware"
	"github.com/BruksfildServices01/afritrim-api/internal/models"
)

// storeError writes a GORM error through the shared taxonomy.
func storeError(c *gin.Context, err error, notFound string) {
	httperr.FromError(c, httperr.FromStore(err, notFound))
}

// ownedShop loads the barbershop and checks that the calling admin owns it.
func ownedShop(c *gin.Context, db *gorm.DB, id uint) (*models.Barbershop, bool) {
	var shop models.Barbershop
	if err := db.WithContext(c.Request.Context()).First(&shop, id).Error; err != nil {
		storeError(c, err, "barbershop_not_found")
		return nil, false
	}

	if shop.AdminID != middleware.UIDOf(c) && !middleware.IsPlatform(c) {
		httperr.Abort(c, http.StatusForbidden, "forbidden", "Barbershop belongs to another admin.")
		return nil, false
	}
	return &shop, true
}
