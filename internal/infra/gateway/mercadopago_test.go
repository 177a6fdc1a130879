package gateway

import (
	"context"
	"errors"
	"testing"

	"github.com/mercadopago/sdk-go/pkg/preference"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/afritrim-api/internal/domain/billing"
)

type fakePreferences struct {
	got preference.Request
	res *preference.Response
	err error
}

func (f *fakePreferences) Create(_ context.Context, req preference.Request) (*preference.Response, error) {
	f.got = req
	return f.res, f.err
}

func TestCreateCheckoutMapsInvoice(t *testing.T) {
	fake := &fakePreferences{res: &preference.Response{ID: "pref-9", InitPoint: "https://mp.example/checkout/pref-9"}}
	gw := &MercadoPago{preferences: fake, currencyID: "BRL", notificationURL: "https://api.example/hooks/mp"}

	out, err := gw.CreateCheckout(context.Background(), billing.CheckoutItem{
		Reference: "invoice-9", Title: "Invoice #9", Amount: 150,
	})
	require.NoError(t, err)
	assert.Equal(t, &billing.Checkout{ID: "pref-9", URL: "https://mp.example/checkout/pref-9"}, out)

	require.Len(t, fake.got.Items, 1)
	assert.Equal(t, 150.0, fake.got.Items[0].UnitPrice)
	assert.Equal(t, 1, fake.got.Items[0].Quantity)
	assert.Equal(t, "BRL", fake.got.Items[0].CurrencyID)
	assert.Equal(t, "invoice-9", fake.got.ExternalReference)
	assert.Equal(t, "https://api.example/hooks/mp", fake.got.NotificationURL)
}

func TestCreateCheckoutWrapsErrors(t *testing.T) {
	gw := &MercadoPago{preferences: &fakePreferences{err: errors.New("401")}}

	_, err := gw.CreateCheckout(context.Background(), billing.CheckoutItem{Reference: "invoice-1"})
	assert.ErrorContains(t, err, `mercadopago preference "invoice-1"`)
}
