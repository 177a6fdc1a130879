package billing

import "context"

// CheckoutItem is what the payment gateway charges for one invoice.
type CheckoutItem struct {
	Reference string
	Title     string
	Amount    float64
}

type Checkout struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

type CheckoutGateway interface {
	CreateCheckout(ctx context.Context, item CheckoutItem) (*Checkout, error)
}
