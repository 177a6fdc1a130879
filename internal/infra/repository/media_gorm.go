package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/afritrim-api/internal/httperr"
	"github.com/BruksfildServices01/afritrim-api/internal/models"
	media "github.com/BruksfildServices01/afritrim-api/internal/domain/media"
)

type MediaGormRepository struct {
	db *gorm.DB
}

func NewMediaGormRepository(db *gorm.DB) *MediaGormRepository {
	return &MediaGormRepository{db: db}
}

func modelFor(model string) any {
	switch model {
	case media.ModelBarbershop:
		return &models.Barbershop{}
	case media.ModelBarber:
		return &models.Barber{}
	case media.ModelService:
		return &models.Service{}
	}
	return nil
}

func (r *MediaGormRepository) Exists(ctx context.Context, model string, id uint) (bool, error) {
	m := modelFor(model)
	if m == nil {
		return false, httperr.ErrValidation("invalid_model")
	}

	var count int64
	if err := r.db.WithContext(ctx).Model(m).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, httperr.FromStore(err, "")
	}
	return count > 0, nil
}

func (r *MediaGormRepository) SetPhotoURL(ctx context.Context, model string, id uint, url string) error {
	m := modelFor(model)
	if m == nil {
		return httperr.ErrValidation("invalid_model")
	}

	res := r.db.WithContext(ctx).Model(m).Where("id = ?", id).Update("photo_url", url)
	if res.Error != nil {
		return httperr.FromStore(res.Error, "")
	}
	if res.RowsAffected == 0 {
		return httperr.ErrNotFound(model + "_not_found")
	}
	return nil
}

// Compile-time check
var _ media.Repository = (*MediaGormRepository)(nil)
