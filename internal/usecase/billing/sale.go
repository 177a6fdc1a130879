package billing

import (
	"context"

	"github.com/BruksfildServices01/afritrim-api/internal/audit"
	domain "github.com/BruksfildServices01/afritrim-api/internal/domain/billing"
	"github.com/BruksfildServices01/afritrim-api/internal/models"
)

// ======================================================
// CREATE
// ======================================================

type CreateSaleInput struct {
	ClientID     uint
	BarbershopID uint
	BarberID     *uint
	InvoiceID    *uint
	Amount       float64
	Expense      float64
}

type CreateSale struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateSale(repo domain.Repository, audit *audit.Dispatcher) *CreateSale {
	return &CreateSale{repo: repo, audit: audit}
}

func (uc *CreateSale) Execute(ctx context.Context, in CreateSaleInput) (*models.Sale, error) {
	if err := domain.ValidateAmounts(in.Amount, in.Expense); err != nil {
		return nil, err
	}

	sale := &models.Sale{
		ClientID:     in.ClientID,
		BarbershopID: in.BarbershopID,
		BarberID:     in.BarberID,
		InvoiceID:    in.InvoiceID,
		Amount:       in.Amount,
		Expense:      in.Expense,
	}
	domain.ApplyProfit(sale)

	err := uc.repo.WithinTx(ctx, func(tx domain.Repository) error {
		if _, err := tx.GetClient(ctx, in.ClientID); err != nil {
			return err
		}
		if _, err := tx.GetBarbershop(ctx, in.BarbershopID); err != nil {
			return err
		}
		var barber *models.Barber
		if in.BarberID != nil {
			b, err := tx.GetBarber(ctx, *in.BarberID)
			if err != nil {
				return err
			}
			barber = b
		}
		var inv *models.Invoice
		if in.InvoiceID != nil {
			i, err := tx.GetInvoice(ctx, *in.InvoiceID)
			if err != nil {
				return err
			}
			inv = i
		}
		if err := domain.SameBarbershop(in.BarbershopID, barber, inv); err != nil {
			return err
		}
		return tx.CreateSale(ctx, sale)
	})
	if err != nil {
		return nil, err
	}

	uc.audit.DispatchCtx(ctx, audit.Event{
		BarbershopID: &sale.BarbershopID,
		Action:       "sale_created",
		Entity:       "sale",
		EntityID:     &sale.ID,
	})

	return sale, nil
}

// ======================================================
// UPDATE
// ======================================================

// UpdateSaleInput changes only the fields that are set. Profit is always
// recomputed.
type UpdateSaleInput struct {
	Amount    *float64
	Expense   *float64
	InvoiceID *uint
}

type UpdateSale struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewUpdateSale(repo domain.Repository, audit *audit.Dispatcher) *UpdateSale {
	return &UpdateSale{repo: repo, audit: audit}
}

func (uc *UpdateSale) Execute(ctx context.Context, id uint, in UpdateSaleInput) (*models.Sale, error) {
	var sale *models.Sale

	err := uc.repo.WithinTx(ctx, func(tx domain.Repository) error {
		var err error
		sale, err = tx.GetSaleForUpdate(ctx, id)
		if err != nil {
			return err
		}

		if in.Amount != nil {
			sale.Amount = *in.Amount
		}
		if in.Expense != nil {
			sale.Expense = *in.Expense
		}
		if err := domain.ValidateAmounts(sale.Amount, sale.Expense); err != nil {
			return err
		}
		if in.InvoiceID != nil {
			inv, err := tx.GetInvoice(ctx, *in.InvoiceID)
			if err != nil {
				return err
			}
			if err := domain.SameBarbershop(sale.BarbershopID, nil, inv); err != nil {
				return err
			}
			sale.InvoiceID = in.InvoiceID
		}

		domain.ApplyProfit(sale)
		return tx.UpdateSale(ctx, sale)
	})
	if err != nil {
		return nil, err
	}

	uc.audit.DispatchCtx(ctx, audit.Event{
		BarbershopID: &sale.BarbershopID,
		Action:       "sale_updated",
		Entity:       "sale",
		EntityID:     &sale.ID,
	})

	return sale, nil
}

// ======================================================
// DELETE / READ
// ======================================================

type DeleteSale struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewDeleteSale(repo domain.Repository, audit *audit.Dispatcher) *DeleteSale {
	return &DeleteSale{repo: repo, audit: audit}
}

func (uc *DeleteSale) Execute(ctx context.Context, id uint) error {
	if err := uc.repo.DeleteSale(ctx, id); err != nil {
		return err
	}
	uc.audit.DispatchCtx(ctx, audit.Event{Action: "sale_deleted", Entity: "sale", EntityID: &id})
	return nil
}

type GetSale struct {
	repo domain.Repository
}

func NewGetSale(repo domain.Repository) *GetSale {
	return &GetSale{repo: repo}
}

func (uc *GetSale) Execute(ctx context.Context, id uint) (*models.Sale, error) {
	return uc.repo.GetSale(ctx, id)
}

type ListSales struct {
	repo domain.Repository
}

func NewListSales(repo domain.Repository) *ListSales {
	return &ListSales{repo: repo}
}

func (uc *ListSales) Execute(ctx context.Context, f domain.SaleFilter) ([]models.Sale, error) {
	return uc.repo.ListSales(ctx, f)
}

// ======================================================
// AGGREGATES
// ======================================================

type GetTotalSales struct {
	repo domain.Repository
}

func NewGetTotalSales(repo domain.Repository) *GetTotalSales {
	return &GetTotalSales{repo: repo}
}

func (uc *GetTotalSales) Execute(ctx context.Context, f domain.SaleFilter) (domain.Totals, error) {
	return uc.repo.SaleTotals(ctx, f)
}

type GetAverageSale struct {
	repo domain.Repository
}

func NewGetAverageSale(repo domain.Repository) *GetAverageSale {
	return &GetAverageSale{repo: repo}
}

// Execute averages sale amounts, narrowed by whichever filters are set.
func (uc *GetAverageSale) Execute(ctx context.Context, f domain.SaleFilter) (float64, error) {
	return uc.repo.AverageSale(ctx, f)
}
