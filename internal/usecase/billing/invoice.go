package billing

import (
	"context"
	"time"

	"github.com/BruksfildServices01/afritrim-api/internal/audit"
	domain "github.com/BruksfildServices01/afritrim-api/internal/domain/billing"
	"github.com/BruksfildServices01/afritrim-api/internal/models"
)

// ======================================================
// CREATE
// ======================================================

type CreateInvoiceInput struct {
	ClientID     uint
	BarbershopID uint
	Amount       float64
	// Status defaults to Pending.
	Status string
}

type CreateInvoice struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	now   func() time.Time
}

func NewCreateInvoice(repo domain.Repository, audit *audit.Dispatcher) *CreateInvoice {
	return &CreateInvoice{repo: repo, audit: audit, now: time.Now}
}

func (uc *CreateInvoice) Execute(ctx context.Context, in CreateInvoiceInput) (*models.Invoice, error) {
	if err := domain.ValidateAmounts(in.Amount); err != nil {
		return nil, err
	}

	status := domain.InvoicePending
	if in.Status != "" {
		var err error
		if status, err = domain.ParseInvoiceStatus(in.Status); err != nil {
			return nil, err
		}
	}

	inv := &models.Invoice{
		ClientID:     in.ClientID,
		BarbershopID: in.BarbershopID,
		Amount:       in.Amount,
		Status:       string(domain.InvoicePending),
	}
	if err := domain.TransitionInvoice(inv, status, uc.now()); err != nil {
		return nil, err
	}

	err := uc.repo.WithinTx(ctx, func(tx domain.Repository) error {
		if _, err := tx.GetClient(ctx, in.ClientID); err != nil {
			return err
		}
		if _, err := tx.GetBarbershop(ctx, in.BarbershopID); err != nil {
			return err
		}
		return tx.CreateInvoice(ctx, inv)
	})
	if err != nil {
		return nil, err
	}

	uc.audit.DispatchCtx(ctx, audit.Event{
		BarbershopID: &inv.BarbershopID,
		Action:       "invoice_created",
		Entity:       "invoice",
		EntityID:     &inv.ID,
	})

	return inv, nil
}

// ======================================================
// STATUS
// ======================================================

type UpdateInvoiceStatus struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	now   func() time.Time
}

func NewUpdateInvoiceStatus(repo domain.Repository, audit *audit.Dispatcher) *UpdateInvoiceStatus {
	return &UpdateInvoiceStatus{repo: repo, audit: audit, now: time.Now}
}

func (uc *UpdateInvoiceStatus) Execute(ctx context.Context, id uint, status string) (*models.Invoice, error) {
	var inv *models.Invoice

	err := uc.repo.WithinTx(ctx, func(tx domain.Repository) error {
		var err error
		inv, err = tx.GetInvoiceForUpdate(ctx, id)
		if err != nil {
			return err
		}

		st, err := domain.ParseInvoiceStatus(status)
		if err != nil {
			return err
		}
		if err := domain.TransitionInvoice(inv, st, uc.now()); err != nil {
			return err
		}
		return tx.UpdateInvoice(ctx, inv)
	})
	if err != nil {
		return nil, err
	}

	uc.audit.DispatchCtx(ctx, audit.Event{
		BarbershopID: &inv.BarbershopID,
		Action:       "invoice_status_changed",
		Entity:       "invoice",
		EntityID:     &inv.ID,
		Metadata:     map[string]string{"status": inv.Status},
	})

	return inv, nil
}

// ======================================================
// UPDATE
// ======================================================

// UpdateInvoiceInput changes only the fields that are set.
type UpdateInvoiceInput struct {
	ClientID     *uint
	BarbershopID *uint
	Amount       *float64
	Status       *string
}

type UpdateInvoice struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	now   func() time.Time
}

func NewUpdateInvoice(repo domain.Repository, audit *audit.Dispatcher) *UpdateInvoice {
	return &UpdateInvoice{repo: repo, audit: audit, now: time.Now}
}

func (uc *UpdateInvoice) Execute(ctx context.Context, id uint, in UpdateInvoiceInput) (*models.Invoice, error) {
	var inv *models.Invoice

	err := uc.repo.WithinTx(ctx, func(tx domain.Repository) error {
		var err error
		inv, err = tx.GetInvoiceForUpdate(ctx, id)
		if err != nil {
			return err
		}

		if in.ClientID != nil {
			if _, err := tx.GetClient(ctx, *in.ClientID); err != nil {
				return err
			}
			inv.ClientID = *in.ClientID
		}
		if in.BarbershopID != nil {
			if _, err := tx.GetBarbershop(ctx, *in.BarbershopID); err != nil {
				return err
			}
			inv.BarbershopID = *in.BarbershopID
		}
		if in.Amount != nil {
			if err := domain.ValidateAmounts(*in.Amount); err != nil {
				return err
			}
			inv.Amount = *in.Amount
		}
		if in.Status != nil {
			st, err := domain.ParseInvoiceStatus(*in.Status)
			if err != nil {
				return err
			}
			if err := domain.TransitionInvoice(inv, st, uc.now()); err != nil {
				return err
			}
		}

		return tx.UpdateInvoice(ctx, inv)
	})
	if err != nil {
		return nil, err
	}

	uc.audit.DispatchCtx(ctx, audit.Event{
		BarbershopID: &inv.BarbershopID,
		Action:       "invoice_updated",
		Entity:       "invoice",
		EntityID:     &inv.ID,
	})

	return inv, nil
}

// ======================================================
// DELETE / READ
// ======================================================

type DeleteInvoice struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewDeleteInvoice(repo domain.Repository, audit *audit.Dispatcher) *DeleteInvoice {
	return &DeleteInvoice{repo: repo, audit: audit}
}

func (uc *DeleteInvoice) Execute(ctx context.Context, id uint) error {
	if err := uc.repo.DeleteInvoice(ctx, id); err != nil {
		return err
	}
	uc.audit.DispatchCtx(ctx, audit.Event{Action: "invoice_deleted", Entity: "invoice", EntityID: &id})
	return nil
}

type GetInvoice struct {
	repo domain.Repository
}

func NewGetInvoice(repo domain.Repository) *GetInvoice {
	return &GetInvoice{repo: repo}
}

func (uc *GetInvoice) Execute(ctx context.Context, id uint) (*models.Invoice, error) {
	return uc.repo.GetInvoice(ctx, id)
}

type ListInvoices struct {
	repo domain.Repository
}

func NewListInvoices(repo domain.Repository) *ListInvoices {
	return &ListInvoices{repo: repo}
}

func (uc *ListInvoices) Execute(ctx context.Context, f domain.InvoiceFilter) ([]models.Invoice, error) {
	return uc.repo.ListInvoices(ctx, f)
}
