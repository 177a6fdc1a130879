package user

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/afritrim-api/internal/audit"
	domain "github.com/BruksfildServices01/afritrim-api/internal/domain/user"
	"github.com/BruksfildServices01/afritrim-api/internal/httperr"
	"github.com/BruksfildServices01/afritrim-api/internal/identity"
	"github.com/BruksfildServices01/afritrim-api/internal/validators"
)

type CreateUser struct {
	repo   domain.Repository
	claims identity.ClaimsWriter
	audit  *audit.Dispatcher
}

func NewCreateUser(
	repo domain.Repository,
	claims identity.ClaimsWriter,
	audit *audit.Dispatcher,
) *CreateUser {
	return &CreateUser{repo: repo, claims: claims, audit: audit}
}

// Execute inserts the row for role and pushes matching claims. Both happen
// inside one transaction: a claims failure rolls the insert back.
func (uc *CreateUser) Execute(ctx context.Context, data domain.Data, role string) (*domain.Record, error) {
	r, err := domain.ParseRole(role)
	if err != nil {
		return nil, err
	}
	if err := domain.ValidateData(data); err != nil {
		return nil, err
	}
	if data.Email != "" && !validators.IsEmail(data.Email) {
		return nil, httperr.ErrValidation("invalid_email")
	}

	rec := domain.NewRecord(r, data)

	err = uc.repo.WithinTx(ctx, func(tx domain.Repository) error {
		taken, err := tx.UIDRegistered(ctx, data.UID)
		if err != nil {
			return err
		}
		if taken {
			return httperr.ErrConflict("uid_already_registered")
		}

		if err := tx.Create(ctx, rec.Row()); err != nil {
			return err
		}

		return pushClaims(ctx, uc.claims, data.UID, r)
	})
	if err != nil {
		return nil, err
	}

	uc.audit.DispatchCtx(ctx, audit.Event{
		Action:   "user_created",
		Entity:   string(r),
		Metadata: map[string]string{"uid": data.UID},
	})

	return rec, nil
}

func pushClaims(ctx context.Context, w identity.ClaimsWriter, uid string, r identity.Role) error {
	if err := w.SetClaims(ctx, uid, identity.ClaimsFor(r)); err != nil {
		return identityError("identity_claims_failed", err)
	}
	return nil
}

// identityError keeps typed provider errors and wraps the rest.
func identityError(code string, err error) error {
	var be httperr.BusinessError
	if errors.As(err, &be) {
		return err
	}
	return httperr.ErrPersistence(code, err)
}
