package billing

import (
	"context"
	"time"

	"github.com/BruksfildServices01/afritrim-api/internal/audit"
	domain "github.com/BruksfildServices01/afritrim-api/internal/domain/billing"
	"github.com/BruksfildServices01/afritrim-api/internal/metrics"
	"github.com/BruksfildServices01/afritrim-api/internal/models"
)

// ======================================================
// CREATE
// ======================================================

type CreatePaymentInput struct {
	AdminID   string
	Amount    float64
	InvoiceID *uint
	SaleID    *uint
	// Status defaults to Paid.
	Status string
}

type CreatePayment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	now   func() time.Time
}

func NewCreatePayment(repo domain.Repository, audit *audit.Dispatcher) *CreatePayment {
	return &CreatePayment{repo: repo, audit: audit, now: time.Now}
}

// Execute records the payment and settles its invoice in one transaction.
// The invoice row stays locked until commit so two concurrent payments
// cannot both see it Pending.
func (uc *CreatePayment) Execute(ctx context.Context, in CreatePaymentInput) (*models.Payment, error) {
	status, err := domain.ParsePaymentStatus(in.Status)
	if err != nil {
		return nil, err
	}
	if err := domain.ValidateAmounts(in.Amount); err != nil {
		return nil, err
	}

	now := uc.now()
	p := &models.Payment{
		AdminID:   in.AdminID,
		Amount:    in.Amount,
		InvoiceID: in.InvoiceID,
		SaleID:    in.SaleID,
		Status:    string(status),
	}
	if status.Settles() {
		p.PaidAt = &now
	}

	var barbershopID *uint

	err = uc.repo.WithinTx(ctx, func(tx domain.Repository) error {
		if in.SaleID != nil {
			if _, err := tx.GetSale(ctx, *in.SaleID); err != nil {
				return err
			}
		}

		if in.InvoiceID == nil {
			return tx.CreatePayment(ctx, p)
		}

		inv, err := tx.GetInvoiceForUpdate(ctx, *in.InvoiceID)
		if err != nil {
			return err
		}
		if err := domain.CanPay(inv); err != nil {
			return err
		}
		barbershopID = &inv.BarbershopID

		if err := tx.CreatePayment(ctx, p); err != nil {
			return err
		}

		if !status.Settles() {
			return nil
		}
		if err := domain.TransitionInvoice(inv, domain.InvoicePaid, now); err != nil {
			return err
		}
		return tx.UpdateInvoice(ctx, inv)
	})
	if err != nil {
		return nil, err
	}

	metrics.IncPaymentCreated(p.Status)

	uc.audit.DispatchCtx(ctx, audit.Event{
		BarbershopID: barbershopID,
		Action:       "payment_created",
		Entity:       "payment",
		EntityID:     &p.ID,
		Metadata: map[string]any{
			"amount":     p.Amount,
			"invoice_id": p.InvoiceID,
			"status":     p.Status,
		},
	})

	return p, nil
}

// ======================================================
// UPDATE
// ======================================================

type UpdatePaymentInput struct {
	Amount *float64
	Status *string
}

type UpdatePayment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	now   func() time.Time
}

func NewUpdatePayment(repo domain.Repository, audit *audit.Dispatcher) *UpdatePayment {
	return &UpdatePayment{repo: repo, audit: audit, now: time.Now}
}

// Execute applies the set fields. A payment that becomes settling also
// settles its invoice when that is still Pending.
func (uc *UpdatePayment) Execute(ctx context.Context, id uint, in UpdatePaymentInput) (*models.Payment, error) {
	var p *models.Payment

	err := uc.repo.WithinTx(ctx, func(tx domain.Repository) error {
		var err error
		p, err = tx.GetPaymentForUpdate(ctx, id)
		if err != nil {
			return err
		}

		if in.Amount != nil {
			if err := domain.ValidateAmounts(*in.Amount); err != nil {
				return err
			}
			p.Amount = *in.Amount
		}

		if in.Status != nil {
			st, err := domain.ParsePaymentStatus(*in.Status)
			if err != nil {
				return err
			}
			p.Status = string(st)

			if st.Settles() {
				now := uc.now()
				if p.PaidAt == nil {
					p.PaidAt = &now
				}
				if p.InvoiceID != nil {
					inv, err := tx.GetInvoiceForUpdate(ctx, *p.InvoiceID)
					if err != nil {
						return err
					}
					if !domain.IsPaid(inv) {
						if err := domain.TransitionInvoice(inv, domain.InvoicePaid, now); err != nil {
							return err
						}
						if err := tx.UpdateInvoice(ctx, inv); err != nil {
							return err
						}
					}
				}
			}
		}

		return tx.UpdatePayment(ctx, p)
	})
	if err != nil {
		return nil, err
	}

	uc.audit.DispatchCtx(ctx, audit.Event{
		Action:   "payment_updated",
		Entity:   "payment",
		EntityID: &p.ID,
	})

	return p, nil
}

// ======================================================
// DELETE / READ
// ======================================================

type DeletePayment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewDeletePayment(repo domain.Repository, audit *audit.Dispatcher) *DeletePayment {
	return &DeletePayment{repo: repo, audit: audit}
}

func (uc *DeletePayment) Execute(ctx context.Context, id uint) error {
	if err := uc.repo.DeletePayment(ctx, id); err != nil {
		return err
	}
	uc.audit.DispatchCtx(ctx, audit.Event{Action: "payment_deleted", Entity: "payment", EntityID: &id})
	return nil
}

type ListPayments struct {
	repo domain.Repository
}

func NewListPayments(repo domain.Repository) *ListPayments {
	return &ListPayments{repo: repo}
}

func (uc *ListPayments) Execute(ctx context.Context, f domain.PaymentFilter) ([]models.Payment, error) {
	return uc.repo.ListPayments(ctx, f)
}

type LatestPaymentStatusForAdmin struct {
	repo domain.Repository
}

func NewLatestPaymentStatusForAdmin(repo domain.Repository) *LatestPaymentStatusForAdmin {
	return &LatestPaymentStatusForAdmin{repo: repo}
}

// Execute returns the status of the admin's most recent payment, or
// domain.NoPaymentFound.
func (uc *LatestPaymentStatusForAdmin) Execute(ctx context.Context, adminUID string) (string, error) {
	p, err := uc.repo.LatestPaymentForAdmin(ctx, adminUID)
	if err != nil {
		return "", err
	}
	if p == nil {
		return domain.NoPaymentFound, nil
	}
	return p.Status, nil
}
