package user

import (
	"context"

	"github.com/BruksfildServices01/afritrim-api/internal/audit"
	domain "github.com/BruksfildServices01/afritrim-api/internal/domain/user"
	"github.com/BruksfildServices01/afritrim-api/internal/httperr"
	"github.com/BruksfildServices01/afritrim-api/internal/validators"
)

// UpdateUserInput changes only the fields that are set. PhoneNumber
// applies to clients only.
type UpdateUserInput struct {
	Name        *string
	Email       *string
	PhoneNumber *string
	PhotoURL    *string
}

type UpdateUser struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewUpdateUser(repo domain.Repository, audit *audit.Dispatcher) *UpdateUser {
	return &UpdateUser{repo: repo, audit: audit}
}

func (uc *UpdateUser) Execute(ctx context.Context, uid string, in UpdateUserInput) (*domain.Record, error) {
	if in.Email != nil && !validators.IsEmail(*in.Email) {
		return nil, httperr.ErrValidation("invalid_email")
	}
	if in.Name != nil && *in.Name == "" {
		return nil, httperr.ErrValidation("name_required")
	}

	rec, err := lookupRecord(ctx, uc.repo, uid)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, httperr.ErrNotFound("user_not_found")
	}

	switch {
	case rec.Admin != nil:
		set(&rec.Admin.Name, in.Name)
		set(&rec.Admin.Email, in.Email)
	case rec.Barber != nil:
		set(&rec.Barber.Name, in.Name)
		set(&rec.Barber.Email, in.Email)
		set(&rec.Barber.PhotoURL, in.PhotoURL)
	case rec.Client != nil:
		set(&rec.Client.Name, in.Name)
		set(&rec.Client.Email, in.Email)
		set(&rec.Client.PhoneNumber, in.PhoneNumber)
		set(&rec.Client.PhotoURL, in.PhotoURL)
	}

	if err := uc.repo.Save(ctx, rec.Row()); err != nil {
		return nil, err
	}

	uc.audit.DispatchCtx(ctx, audit.Event{
		Action:   "user_updated",
		Entity:   string(rec.Role),
		Metadata: map[string]string{"uid": uid},
	})

	return rec, nil
}

func set(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
