package repository

import (
	"context"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/afritrim-api/internal/domain/user"
	"github.com/BruksfildServices01/afritrim-api/internal/httperr"
	"github.com/BruksfildServices01/afritrim-api/internal/models"
)

type UserGormRepository struct {
	db *gorm.DB
}

func NewUserGormRepository(db *gorm.DB) *UserGormRepository {
	return &UserGormRepository{db: db}
}

func (r *UserGormRepository) WithinTx(
	ctx context.Context,
	fn func(tx domain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&UserGormRepository{db: tx})
	})
}

// --------------------------------------------------
// Lookup
// --------------------------------------------------

func (r *UserGormRepository) FindAdmin(ctx context.Context, uid string) (*models.Admin, error) {
	var admin models.Admin
	if err := r.findByUID(ctx, &admin, uid); err != nil || admin.ID == 0 {
		return nil, err
	}
	return &admin, nil
}

func (r *UserGormRepository) FindBarber(ctx context.Context, uid string) (*models.Barber, error) {
	var barber models.Barber
	if err := r.findByUID(ctx, &barber, uid); err != nil || barber.ID == 0 {
		return nil, err
	}
	return &barber, nil
}

func (r *UserGormRepository) FindClient(ctx context.Context, uid string) (*models.Client, error) {
	var client models.Client
	if err := r.findByUID(ctx, &client, uid); err != nil || client.ID == 0 {
		return nil, err
	}
	return &client, nil
}

// findByUID leaves dest untouched when no active row matches.
func (r *UserGormRepository) findByUID(ctx context.Context, dest any, uid string) error {
	err := r.db.WithContext(ctx).Where("uid = ?", uid).First(dest).Error
	if isNotFound(err) {
		return nil
	}
	return httperr.FromStore(err, "")
}

func (r *UserGormRepository) UIDRegistered(ctx context.Context, uid string) (bool, error) {
	for _, model := range []any{&models.Admin{}, &models.Barber{}, &models.Client{}} {
		var count int64
		if err := r.db.WithContext(ctx).
			Unscoped().
			Model(model).
			Where("uid = ?", uid).
			Count(&count).Error; err != nil {
			return false, httperr.FromStore(err, "")
		}
		if count > 0 {
			return true, nil
		}
	}
	return false, nil
}

// --------------------------------------------------
// Writes
// --------------------------------------------------

func (r *UserGormRepository) Create(ctx context.Context, row any) error {
	return httperr.FromStore(r.db.WithContext(ctx).Create(row).Error, "")
}

func (r *UserGormRepository) Save(ctx context.Context, row any) error {
	return httperr.FromStore(r.db.WithContext(ctx).Save(row).Error, "user_not_found")
}

// Archive soft-deletes barber and client rows; they keep their id for
// appointments and sales that point at them.
func (r *UserGormRepository) Archive(ctx context.Context, row any) error {
	return httperr.FromStore(r.db.WithContext(ctx).Delete(row).Error, "user_not_found")
}

func (r *UserGormRepository) Delete(ctx context.Context, row any) error {
	return httperr.FromStore(r.db.WithContext(ctx).Unscoped().Delete(row).Error, "user_not_found")
}

// Compile-time check
var _ domain.Repository = (*UserGormRepository)(nil)
