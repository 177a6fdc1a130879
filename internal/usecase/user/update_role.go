package user

import (
	"context"

	"github.com/BruksfildServices01/afritrim-api/internal/audit"
	domain "github.com/BruksfildServices01/afritrim-api/internal/domain/user"
	"github.com/BruksfildServices01/afritrim-api/internal/httperr"
	"github.com/BruksfildServices01/afritrim-api/internal/identity"
	"github.com/BruksfildServices01/afritrim-api/internal/metrics"
)

type UpdateUserRole struct {
	repo   domain.Repository
	claims identity.ClaimsWriter
	audit  *audit.Dispatcher
}

func NewUpdateUserRole(
	repo domain.Repository,
	claims identity.ClaimsWriter,
	audit *audit.Dispatcher,
) *UpdateUserRole {
	return &UpdateUserRole{repo: repo, claims: claims, audit: audit}
}

// Execute archives the current row, creates the row for the new role and
// pushes the new claims, all in one transaction.
func (uc *UpdateUserRole) Execute(ctx context.Context, uid string, newRole string) (*domain.Record, error) {
	to, err := domain.ParseRole(newRole)
	if err != nil {
		return nil, err
	}

	var (
		from identity.Role
		next *domain.Record
	)

	err = uc.repo.WithinTx(ctx, func(tx domain.Repository) error {
		current, err := lookupRecord(ctx, tx, uid)
		if err != nil {
			return err
		}
		if current == nil {
			return httperr.ErrNotFound("user_not_found")
		}
		from = current.Role

		if err := domain.CanTransition(current.Role, to); err != nil {
			return err
		}

		if err := tx.Archive(ctx, current.Row()); err != nil {
			return err
		}

		next = domain.NewRecord(to, domain.DataOf(current))
		if err := tx.Create(ctx, next.Row()); err != nil {
			return err
		}

		return pushClaims(ctx, uc.claims, uid, to)
	})
	if err != nil {
		return nil, err
	}

	metrics.IncRoleChanged(string(from), string(to))

	uc.audit.DispatchCtx(ctx, audit.Event{
		Action:   "user_role_changed",
		Entity:   string(to),
		Metadata: map[string]string{"uid": uid, "from": string(from), "to": string(to)},
	})

	return next, nil
}
