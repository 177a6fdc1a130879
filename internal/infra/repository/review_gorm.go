package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/afritrim-api/internal/domain/appointment"
	domain "github.com/BruksfildServices01/afritrim-api/internal/domain/review"
	"github.com/BruksfildServices01/afritrim-api/internal/httperr"
	"github.com/BruksfildServices01/afritrim-api/internal/models"
)

type ReviewGormRepository struct {
	db *gorm.DB
}

func NewReviewGormRepository(db *gorm.DB) *ReviewGormRepository {
	return &ReviewGormRepository{db: db}
}

func (r *ReviewGormRepository) WithinTx(
	ctx context.Context,
	fn func(tx domain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&ReviewGormRepository{db: tx})
	})
}

func (r *ReviewGormRepository) GetBarber(ctx context.Context, id uint) (*models.Barber, error) {
	var barber models.Barber
	if err := first(ctx, r.db, &barber, id, "barber_not_found"); err != nil {
		return nil, err
	}
	return &barber, nil
}

func (r *ReviewGormRepository) FindClientByUID(ctx context.Context, uid string) (*models.Client, error) {
	var client models.Client
	if err := r.db.WithContext(ctx).Where("uid = ?", uid).First(&client).Error; err != nil {
		return nil, httperr.FromStore(err, "client_not_found")
	}
	return &client, nil
}

func (r *ReviewGormRepository) HasCompletedAppointment(
	ctx context.Context,
	clientID uint,
	barberID uint,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where(
			"client_id = ? AND barber_id = ? AND status = ?",
			clientID,
			barberID,
			string(appointment.StatusCompleted),
		).
		Count(&count).Error; err != nil {
		return false, httperr.FromStore(err, "")
	}
	return count > 0, nil
}

// --------------------------------------------------
// Review
// --------------------------------------------------

func (r *ReviewGormRepository) CreateReview(ctx context.Context, rv *models.Review) error {
	return httperr.FromStore(r.db.WithContext(ctx).Create(rv).Error, "")
}

func (r *ReviewGormRepository) GetReview(ctx context.Context, id uint) (*models.Review, error) {
	var rv models.Review
	if err := first(ctx, r.db, &rv, id, "review_not_found"); err != nil {
		return nil, err
	}
	return &rv, nil
}

func (r *ReviewGormRepository) GetReviewForUpdate(ctx context.Context, id uint) (*models.Review, error) {
	var rv models.Review
	if err := first(ctx, r.db.Clauses(clause.Locking{Strength: "UPDATE"}), &rv, id, "review_not_found"); err != nil {
		return nil, err
	}
	return &rv, nil
}

func (r *ReviewGormRepository) UpdateReview(ctx context.Context, rv *models.Review) error {
	return httperr.FromStore(r.db.WithContext(ctx).Save(rv).Error, "review_not_found")
}

func (r *ReviewGormRepository) DeleteReview(ctx context.Context, id uint) error {
	return deleteByID(ctx, r.db, &models.Review{}, id, "review_not_found")
}

func (r *ReviewGormRepository) ListReviews(ctx context.Context, f domain.Filter) ([]models.Review, error) {
	q := r.db.WithContext(ctx)
	if f.BarberID != nil {
		q = q.Where("barber_id = ?", *f.BarberID)
	}
	if f.ClientID != nil {
		q = q.Where("client_id = ?", *f.ClientID)
	}

	var reviews []models.Review
	if err := q.Order("id ASC").Find(&reviews).Error; err != nil {
		return nil, httperr.FromStore(err, "")
	}
	return reviews, nil
}

func (r *ReviewGormRepository) RatingStats(ctx context.Context, barberID uint) (float64, int64, error) {
	var stats struct {
		Total float64
		Count int64
	}
	if err := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Select("COALESCE(SUM(rating), 0) AS total, COUNT(*) AS count").
		Where("barber_id = ?", barberID).
		Scan(&stats).Error; err != nil {
		return 0, 0, httperr.FromStore(err, "")
	}
	return stats.Total, stats.Count, nil
}

// Compile-time check
var _ domain.Repository = (*ReviewGormRepository)(nil)
