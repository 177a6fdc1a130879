// Package gateway opens hosted checkouts on Mercado Pago.
package gateway

import (
	"context"
	"fmt"

	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/preference"

	"github.com/BruksfildServices01/afritrim-api/internal/domain/billing"
)

type preferenceCreator interface {
	Create(ctx context.Context, request preference.Request) (*preference.Response, error)
}

type MercadoPago struct {
	preferences     preferenceCreator
	currencyID      string
	notificationURL string
}

func NewMercadoPago(accessToken, currencyID, notificationURL string) (*MercadoPago, error) {
	cfg, err := config.New(accessToken)
	if err != nil {
		return nil, fmt.Errorf("mercadopago config: %w", err)
	}
	return &MercadoPago{
		preferences:     preference.NewClient(cfg),
		currencyID:      currencyID,
		notificationURL: notificationURL,
	}, nil
}

func (m *MercadoPago) CreateCheckout(ctx context.Context, item billing.CheckoutItem) (*billing.Checkout, error) {
	req := preference.Request{
		Items: []preference.ItemRequest{
			{
				ID:         item.Reference,
				Title:      item.Title,
				Quantity:   1,
				UnitPrice:  item.Amount,
				CurrencyID: m.currencyID,
			},
		},
		ExternalReference: item.Reference,
		NotificationURL:   m.notificationURL,
	}

	res, err := m.preferences.Create(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("mercadopago preference %q: %w", item.Reference, err)
	}

	return &billing.Checkout{ID: res.ID, URL: res.InitPoint}, nil
}

var _ billing.CheckoutGateway = (*MercadoPago)(nil)

// Unconfigured stands in when no access token is set; every checkout fails.
type Unconfigured struct{}

func (Unconfigured) CreateCheckout(context.Context, billing.CheckoutItem) (*billing.Checkout, error) {
	return nil, fmt.Errorf("mercadopago: access token not configured")
}

var _ billing.CheckoutGateway = Unconfigured{}
