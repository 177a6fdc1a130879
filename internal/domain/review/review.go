// Package review validates ratings and aggregates them per barber.
package review

import (
	"context"

	"github.com/BruksfildServices01/afritrim-api/internal/httperr"
	"github.com/BruksfildServices01/afritrim-api/internal/models"
)

const (
	MinRating = 1
	MaxRating = 5
)

func ValidateRating(r int) error {
	if r < MinRating || r > MaxRating {
		return httperr.ErrValidation("invalid_rating")
	}
	return nil
}

// Average is 0 for a barber without reviews.
func Average(sum float64, count int64) float64 {
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

type Filter struct {
	BarberID *uint
	ClientID *uint
}

type Repository interface {
	// WithinTx runs fn against a repository bound to one transaction.
	WithinTx(ctx context.Context, fn func(tx Repository) error) error

	GetBarber(ctx context.Context, id uint) (*models.Barber, error)
	FindClientByUID(ctx context.Context, uid string) (*models.Client, error)
	HasCompletedAppointment(ctx context.Context, clientID, barberID uint) (bool, error)

	CreateReview(ctx context.Context, r *models.Review) error
	GetReview(ctx context.Context, id uint) (*models.Review, error)
	// GetReviewForUpdate row-locks the review until the transaction ends.
	GetReviewForUpdate(ctx context.Context, id uint) (*models.Review, error)
	UpdateReview(ctx context.Context, r *models.Review) error
	DeleteReview(ctx context.Context, id uint) error
	ListReviews(ctx context.Context, f Filter) ([]models.Review, error)
	// RatingStats returns the rating sum and count for a barber.
	RatingStats(ctx context.Context, barberID uint) (float64, int64, error)
}
