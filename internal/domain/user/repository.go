package user

import (
	"context"

	"github.com/BruksfildServices01/afritrim-api/internal/models"
)

type Repository interface {
	WithinTx(ctx context.Context, fn func(tx Repository) error) error

	// Find* return (nil, nil) when no active row holds the uid.
	FindAdmin(ctx context.Context, uid string) (*models.Admin, error)
	FindBarber(ctx context.Context, uid string) (*models.Barber, error)
	FindClient(ctx context.Context, uid string) (*models.Client, error)

	// UIDRegistered checks every user table, archived rows included.
	UIDRegistered(ctx context.Context, uid string) (bool, error)

	// Create, Save, Archive and Delete take a *models.Admin, *models.Barber
	// or *models.Client.
	Create(ctx context.Context, row any) error
	Save(ctx context.Context, row any) error
	Archive(ctx context.Context, row any) error
	Delete(ctx context.Context, row any) error
}
