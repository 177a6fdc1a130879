package review

import (
	"context"

	"github.com/BruksfildServices01/afritrim-api/internal/audit"
	domain "github.com/BruksfildServices01/afritrim-api/internal/domain/review"
	"github.com/BruksfildServices01/afritrim-api/internal/httperr"
	"github.com/BruksfildServices01/afritrim-api/internal/models"
)

// ======================================================
// CREATE
// ======================================================

type CreateReviewInput struct {
	BarberID uint
	ClientID *uint
	Rating   int
	Comment  string
}

type CreateReview struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateReview(repo domain.Repository, audit *audit.Dispatcher) *CreateReview {
	return &CreateReview{repo: repo, audit: audit}
}

func (uc *CreateReview) Execute(ctx context.Context, in CreateReviewInput) (*models.Review, error) {
	if err := domain.ValidateRating(in.Rating); err != nil {
		return nil, err
	}
	if _, err := uc.repo.GetBarber(ctx, in.BarberID); err != nil {
		return nil, err
	}

	rv := &models.Review{
		BarberID: in.BarberID,
		ClientID: in.ClientID,
		Rating:   in.Rating,
		Comment:  in.Comment,
	}
	if err := uc.repo.CreateReview(ctx, rv); err != nil {
		return nil, err
	}

	uc.audit.DispatchCtx(ctx, audit.Event{
		Action:   "review_created",
		Entity:   "review",
		EntityID: &rv.ID,
		Metadata: map[string]any{"barber_id": rv.BarberID, "rating": rv.Rating},
	})

	return rv, nil
}

// ======================================================
// UPDATE / DELETE
// ======================================================

type UpdateReviewInput struct {
	Rating  *int
	Comment *string
}

type UpdateReview struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewUpdateReview(repo domain.Repository, audit *audit.Dispatcher) *UpdateReview {
	return &UpdateReview{repo: repo, audit: audit}
}

func (uc *UpdateReview) Execute(ctx context.Context, id uint, in UpdateReviewInput) (*models.Review, error) {
	if in.Rating != nil {
		if err := domain.ValidateRating(*in.Rating); err != nil {
			return nil, err
		}
	}

	var rv *models.Review

	err := uc.repo.WithinTx(ctx, func(tx domain.Repository) error {
		var err error
		rv, err = tx.GetReviewForUpdate(ctx, id)
		if err != nil {
			return err
		}

		if in.Rating != nil {
			rv.Rating = *in.Rating
		}
		if in.Comment != nil {
			rv.Comment = *in.Comment
		}
		return tx.UpdateReview(ctx, rv)
	})
	if err != nil {
		return nil, err
	}

	uc.audit.DispatchCtx(ctx, audit.Event{Action: "review_updated", Entity: "review", EntityID: &rv.ID})
	return rv, nil
}

type DeleteReview struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewDeleteReview(repo domain.Repository, audit *audit.Dispatcher) *DeleteReview {
	return &DeleteReview{repo: repo, audit: audit}
}

func (uc *DeleteReview) Execute(ctx context.Context, id uint) error {
	if err := uc.repo.DeleteReview(ctx, id); err != nil {
		return err
	}
	uc.audit.DispatchCtx(ctx, audit.Event{Action: "review_deleted", Entity: "review", EntityID: &id})
	return nil
}

// ======================================================
// READ
// ======================================================

type GetReview struct {
	repo domain.Repository
}

func NewGetReview(repo domain.Repository) *GetReview {
	return &GetReview{repo: repo}
}

func (uc *GetReview) Execute(ctx context.Context, id uint) (*models.Review, error) {
	return uc.repo.GetReview(ctx, id)
}

type ListReviews struct {
	repo domain.Repository
}

func NewListReviews(repo domain.Repository) *ListReviews {
	return &ListReviews{repo: repo}
}

func (uc *ListReviews) Execute(ctx context.Context, f domain.Filter) ([]models.Review, error) {
	return uc.repo.ListReviews(ctx, f)
}

type GetAverageRatingForBarber struct {
	repo domain.Repository
}

func NewGetAverageRatingForBarber(repo domain.Repository) *GetAverageRatingForBarber {
	return &GetAverageRatingForBarber{repo: repo}
}

// Execute returns 0 for a barber without reviews.
func (uc *GetAverageRatingForBarber) Execute(ctx context.Context, barberID uint) (float64, error) {
	sum, n, err := uc.repo.RatingStats(ctx, barberID)
	if err != nil {
		return 0, err
	}
	return domain.Average(sum, n), nil
}

// ======================================================
// ELIGIBILITY
// ======================================================

type CanUserLeaveReview struct {
	repo domain.Repository
}

func NewCanUserLeaveReview(repo domain.Repository) *CanUserLeaveReview {
	return &CanUserLeaveReview{repo: repo}
}

// Execute allows a review once the client has a Completed appointment
// with the barber.
func (uc *CanUserLeaveReview) Execute(ctx context.Context, clientID, barberID uint) (bool, error) {
	return uc.repo.HasCompletedAppointment(ctx, clientID, barberID)
}

// ForUID resolves the client behind an identity uid first. A uid with no
// client row may not review.
func (uc *CanUserLeaveReview) ForUID(ctx context.Context, uid string, barberID uint) (bool, *models.Client, error) {
	client, err := uc.repo.FindClientByUID(ctx, uid)
	if err != nil {
		if httperr.KindOf(err) == httperr.KindNotFound {
			return false, nil, nil
		}
		return false, nil, err
	}
	ok, err := uc.Execute(ctx, client.ID, barberID)
	return ok, client, err
}
