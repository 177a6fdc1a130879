package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/afritrim-api/internal/domain/review"
	"github.com/BruksfildServices01/afritrim-api/internal/httperr"
	"github.com/BruksfildServices01/afritrim-api/internal/httpresp"
	"github.com/BruksfildServices01/afritrim-api/internal/identity"
	"github.com/BruksfildServices01/afritrim-api/internal/middleware"
	"github.com/BruksfildServices01/afritrim-api/internal/usecase/review"
)

type ReviewUseCases struct {
	Create   *review.CreateReview
	Update   *review.UpdateReview
	Delete   *review.DeleteReview
	Get      *review.GetReview
	List     *review.ListReviews
	Average  *review.GetAverageRatingForBarber
	CanLeave *review.CanUserLeaveReview
}

type ReviewHandler struct {
	db *gorm.DB
	uc ReviewUseCases
}

func NewReviewHandler(db *gorm.DB, uc ReviewUseCases) *ReviewHandler {
	return &ReviewHandler{db: db, uc: uc}
}

type CreateReviewRequest struct {
	BarberID uint   `json:"barber_id" binding:"required"`
	ClientID *uint  `json:"client_id"`
	Rating   int    `json:"rating"`
	Comment  string `json:"comment"`
}

type UpdateReviewRequest struct {
	Rating  *int    `json:"rating"`
	Comment *string `json:"comment"`
}

// ======================================================
// CREATE
// ======================================================

// Create lets admins post reviews for barbers of their own barbershops.
// Clients need a completed appointment with the barber and always review
// as themselves.
func (h *ReviewHandler) Create(c *gin.Context) {
	var req CreateReviewRequest
	if !bindJSON(c, &req) {
		return
	}
	ctx := c.Request.Context()

	if middleware.ClaimsOf(c).Has(identity.RoleAdmin) || middleware.IsPlatform(c) {
		if _, ok := ownedBarber(c, h.db, req.BarberID); !ok {
			return
		}
	} else {
		ok, client, err := h.uc.CanLeave.ForUID(ctx, middleware.UIDOf(c), req.BarberID)
		if err != nil {
			httperr.FromError(c, err)
			return
		}
		if !ok {
			httperr.Abort(c, http.StatusForbidden, "forbidden", "A completed appointment with this barber is required.")
			return
		}
		req.ClientID = &client.ID
	}

	rv, err := h.uc.Create.Execute(ctx, review.CreateReviewInput{
		BarberID: req.BarberID,
		ClientID: req.ClientID,
		Rating:   req.Rating,
		Comment:  req.Comment,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusCreated, rv)
}

// ======================================================
// READ
// ======================================================

func (h *ReviewHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	rv, err := h.uc.Get.Execute(c.Request.Context(), id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, rv)
}

func (h *ReviewHandler) List(c *gin.Context) {
	var f domain.Filter
	var ok bool
	if f.BarberID, ok = queryUint(c, "barber_id"); !ok {
		return
	}
	if f.ClientID, ok = queryUint(c, "client_id"); !ok {
		return
	}

	h.list(c, f)
}

func (h *ReviewHandler) ListForBarber(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	h.list(c, domain.Filter{BarberID: &id})
}

func (h *ReviewHandler) list(c *gin.Context, f domain.Filter) {
	reviews, err := h.uc.List.Execute(c.Request.Context(), f)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.List(c, reviews)
}

func (h *ReviewHandler) Average(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	avg, err := h.uc.Average.Execute(c.Request.Context(), id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"barber_id":      id,
		"average_rating": avg,
	})
}

func (h *ReviewHandler) Eligibility(c *gin.Context) {
	barberID, ok := queryUint(c, "barber_id")
	if !ok {
		return
	}
	if barberID == nil {
		httperr.BadRequest(c, "barber_id_required", "barber_id is required.")
		return
	}

	allowed, _, err := h.uc.CanLeave.ForUID(c.Request.Context(), middleware.UIDOf(c), *barberID)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"can_review": allowed})
}

// ======================================================
// UPDATE / DELETE
// ======================================================

// authorOnly limits clients to their own reviews and admins to reviews of
// barbers working at their barbershops.
func (h *ReviewHandler) authorOnly(c *gin.Context, id uint) bool {
	ctx := c.Request.Context()

	rv, err := h.uc.Get.Execute(ctx, id)
	if err != nil {
		httperr.FromError(c, err)
		return false
	}
	if middleware.ClaimsOf(c).Has(identity.RoleAdmin) || middleware.IsPlatform(c) {
		_, ok := ownedBarber(c, h.db, rv.BarberID)
		return ok
	}

	_, client, err := h.uc.CanLeave.ForUID(ctx, middleware.UIDOf(c), rv.BarberID)
	if err != nil {
		httperr.FromError(c, err)
		return false
	}
	if client == nil || rv.ClientID == nil || *rv.ClientID != client.ID {
		httperr.Abort(c, http.StatusForbidden, "forbidden", "Only the author may change this review.")
		return false
	}
	return true
}

func (h *ReviewHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req UpdateReviewRequest
	if !bindJSON(c, &req) {
		return
	}
	if !h.authorOnly(c, id) {
		return
	}

	rv, err := h.uc.Update.Execute(c.Request.Context(), id, review.UpdateReviewInput{
		Rating:  req.Rating,
		Comment: req.Comment,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, rv)
}

func (h *ReviewHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if !h.authorOnly(c, id) {
		return
	}

	if err := h.uc.Delete.Execute(c.Request.Context(), id); err != nil {
		httperr.FromError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
