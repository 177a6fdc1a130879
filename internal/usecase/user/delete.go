package user

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/afritrim-api/internal/audit"
	domain "github.com/BruksfildServices01/afritrim-api/internal/domain/user"
	"github.com/BruksfildServices01/afritrim-api/internal/httperr"
	"github.com/BruksfildServices01/afritrim-api/internal/identity"
)

type DeleteUser struct {
	repo   domain.Repository
	claims identity.ClaimsWriter
	audit  *audit.Dispatcher
	log    zerolog.Logger
}

func NewDeleteUser(
	repo domain.Repository,
	claims identity.ClaimsWriter,
	audit *audit.Dispatcher,
	log zerolog.Logger,
) *DeleteUser {
	return &DeleteUser{repo: repo, claims: claims, audit: audit, log: log}
}

// Execute hard-deletes the local row, then the identity account. A failed
// account delete rolls the row back. When the account is gone but the
// local commit fails, the two stores disagree and the error says so.
func (uc *DeleteUser) Execute(ctx context.Context, uid string) error {
	var (
		role           identity.Role
		accountDeleted bool
	)

	err := uc.repo.WithinTx(ctx, func(tx domain.Repository) error {
		current, err := lookupRecord(ctx, tx, uid)
		if err != nil {
			return err
		}
		if current == nil {
			return httperr.ErrNotFound("user_not_found")
		}
		role = current.Role

		if err := tx.Delete(ctx, current.Row()); err != nil {
			return err
		}

		if err := uc.claims.DeleteAccount(ctx, uid); err != nil {
			return identityError("identity_delete_failed", err)
		}
		accountDeleted = true
		return nil
	})

	if err != nil && accountDeleted {
		uc.log.Error().Err(err).Str("uid", uid).Str("role", string(role)).
			Msg("identity account deleted but local row kept")

		uc.audit.DispatchCtx(ctx, audit.Event{
			Action:   "identity_reconciliation_required",
			Entity:   string(role),
			Metadata: map[string]string{"uid": uid},
		})
		return httperr.ErrPersistence("identity_reconciliation_required", err)
	}
	if err != nil {
		return err
	}

	uc.audit.DispatchCtx(ctx, audit.Event{
		Action:   "user_deleted",
		Entity:   string(role),
		Metadata: map[string]string{"uid": uid},
	})
	return nil
}
