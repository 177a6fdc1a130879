package user

import (
	"context"

	domain "github.com/BruksfildServices01/afritrim-api/internal/domain/user"
	"github.com/BruksfildServices01/afritrim-api/internal/identity"
)

type GetUserByUID struct {
	repo domain.Repository
}

func NewGetUserByUID(repo domain.Repository) *GetUserByUID {
	return &GetUserByUID{repo: repo}
}

// Execute returns (nil, nil) when no active row holds uid.
func (uc *GetUserByUID) Execute(ctx context.Context, uid string) (*domain.Record, error) {
	return lookupRecord(ctx, uc.repo, uid)
}

// lookupRecord looks in Admin, Barber and Client, in that order; the first hit
// wins.
func lookupRecord(ctx context.Context, repo domain.Repository, uid string) (*domain.Record, error) {
	admin, err := repo.FindAdmin(ctx, uid)
	if err != nil {
		return nil, err
	}
	if admin != nil {
		return &domain.Record{Role: identity.RoleAdmin, Admin: admin}, nil
	}

	barber, err := repo.FindBarber(ctx, uid)
	if err != nil {
		return nil, err
	}
	if barber != nil {
		return &domain.Record{Role: identity.RoleBarber, Barber: barber}, nil
	}

	client, err := repo.FindClient(ctx, uid)
	if err != nil {
		return nil, err
	}
	if client != nil {
		return &domain.Record{Role: identity.RoleClient, Client: client}, nil
	}

	return nil, nil
}
