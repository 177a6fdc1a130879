package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/afritrim-api/internal/httperr"
)

// first loads dest by primary key and maps a miss to notFound.
func first(ctx context.Context, db *gorm.DB, dest any, id uint, notFound string) error {
	if err := db.WithContext(ctx).First(dest, id).Error; err != nil {
		return httperr.FromStore(err, notFound)
	}
	return nil
}

// deleteByID hard-deletes model id and reports notFound when no row matched.
func deleteByID(ctx context.Context, db *gorm.DB, model any, id uint, notFound string) error {
	res := db.WithContext(ctx).Delete(model, id)
	if res.Error != nil {
		return httperr.FromStore(res.Error, notFound)
	}
	if res.RowsAffected == 0 {
		return httperr.ErrNotFound(notFound)
	}
	return nil
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

func unscoped(db *gorm.DB) *gorm.DB {
	return db.Unscoped()
}
