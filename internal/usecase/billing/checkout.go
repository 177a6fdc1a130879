package billing

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	domain "github.com/BruksfildServices01/afritrim-api/internal/domain/billing"
	"github.com/BruksfildServices01/afritrim-api/internal/httperr"
)

type CreateCheckout struct {
	repo    domain.Repository
	gateway domain.CheckoutGateway
	log     zerolog.Logger
}

func NewCreateCheckout(
	repo domain.Repository,
	gateway domain.CheckoutGateway,
	log zerolog.Logger,
) *CreateCheckout {
	return &CreateCheckout{repo: repo, gateway: gateway, log: log}
}

// Execute opens a hosted checkout for a Pending invoice.
func (uc *CreateCheckout) Execute(ctx context.Context, invoiceID uint) (*domain.Checkout, error) {
	inv, err := uc.repo.GetInvoice(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if err := domain.CanPay(inv); err != nil {
		return nil, err
	}

	checkout, err := uc.gateway.CreateCheckout(ctx, domain.CheckoutItem{
		Reference: fmt.Sprintf("invoice-%d", inv.ID),
		Title:     fmt.Sprintf("Invoice #%d", inv.ID),
		Amount:    inv.Amount,
	})
	if err != nil {
		uc.log.Error().Err(err).Uint("invoice_id", inv.ID).Msg("checkout creation failed")
		return nil, httperr.ErrStorage("checkout_unavailable", err)
	}

	return checkout, nil
}
